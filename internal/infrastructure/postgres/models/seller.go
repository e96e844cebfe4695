package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type SellerModel struct {
	ID                  string          `gorm:"primaryKey"`
	DisplayName         string
	CommissionRate      decimal.Decimal `gorm:"type:numeric(5,4);not null"`
	TotalEarnings       decimal.Decimal `gorm:"type:numeric(20,2);not null;default:0"`
	TotalCommissionPaid decimal.Decimal `gorm:"type:numeric(20,2);not null;default:0"`
	Verified            bool
	BankName            string
	BankAccountNumber   string
	BankIBAN            string
	BankAccountHolder   string
	BankBranchCode      string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func (SellerModel) TableName() string { return "sellers" }
