package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type WalletModel struct {
	ID               string          `gorm:"primaryKey;type:uuid"`
	SellerID         string          `gorm:"uniqueIndex;not null"`
	Balance          decimal.Decimal `gorm:"type:numeric(20,2);not null;default:0"`
	AvailableBalance decimal.Decimal `gorm:"type:numeric(20,2);not null;default:0"`
	PendingBalance   decimal.Decimal `gorm:"type:numeric(20,2);not null;default:0"`
	ReservedBalance  decimal.Decimal `gorm:"type:numeric(20,2);not null;default:0"`
	TotalEarnings    decimal.Decimal `gorm:"type:numeric(20,2);not null;default:0"`
	TotalWithdrawn   decimal.Decimal `gorm:"type:numeric(20,2);not null;default:0"`
	TotalSpentOnAds  decimal.Decimal `gorm:"type:numeric(20,2);not null;default:0"`
	LastUpdated      time.Time
}

func (WalletModel) TableName() string { return "seller_wallets" }

// TransactionModel is the wallet audit trail. Rows are never deleted.
type TransactionModel struct {
	ID              string          `gorm:"primaryKey;type:uuid"`
	SellerID        string          `gorm:"not null;index:idx_tx_seller_created"`
	WalletID        string          `gorm:"type:uuid;not null"`
	Type            string          `gorm:"not null;index:idx_tx_type_status_clears"`
	Amount          decimal.Decimal `gorm:"type:numeric(20,2);not null"`
	OrderID         string
	CommissionID    string
	WithdrawalID    string
	AdvertisementID string
	Status          string     `gorm:"not null;index:idx_tx_type_status_clears"`
	ClearsAt        *time.Time `gorm:"index:idx_tx_type_status_clears"`
	Description     string
	CreatedAt       time.Time `gorm:"index:idx_tx_seller_created"`
}

func (TransactionModel) TableName() string { return "wallet_transactions" }
