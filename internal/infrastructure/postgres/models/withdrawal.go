package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type WithdrawalModel struct {
	ID                string          `gorm:"primaryKey;type:uuid"`
	Reference         string          `gorm:"uniqueIndex;not null"`
	SellerID          string          `gorm:"not null;index"`
	Amount            decimal.Decimal `gorm:"type:numeric(20,2);not null"`
	BankName          string
	BankAccountNumber string
	BankIBAN          string
	BankAccountHolder string
	BankBranchCode    string
	Status            string    `gorm:"not null"`
	RequestedAt       time.Time `gorm:"index"`
	ProcessedAt       *time.Time
	AdminNote         string
	TransactionID     string
	UpdatedAt         time.Time
}

func (WithdrawalModel) TableName() string { return "withdrawal_requests" }
