package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type CommissionModel struct {
	ID               string          `gorm:"primaryKey;type:uuid"`
	OrderID          string          `gorm:"not null;uniqueIndex:idx_commission_line_item"`
	LineItemID       string          `gorm:"not null;uniqueIndex:idx_commission_line_item"`
	SellerID         string          `gorm:"not null;index"`
	OrderAmount      decimal.Decimal `gorm:"type:numeric(20,2);not null"`
	CommissionRate   decimal.Decimal `gorm:"type:numeric(5,4);not null"`
	CommissionAmount decimal.Decimal `gorm:"type:numeric(20,2);not null"`
	Status           string          `gorm:"not null"`
	PaidAt           *time.Time
	CreatedAt        time.Time `gorm:"index"`
	UpdatedAt        time.Time
}

func (CommissionModel) TableName() string { return "commissions" }
