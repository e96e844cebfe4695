package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TxEarning           TransactionType = "earning"
	TxSettlement        TransactionType = "settlement"
	TxAdSpend           TransactionType = "ad_spend"
	TxWithdrawalReserve TransactionType = "withdrawal_reserve"
	TxWithdrawalRelease TransactionType = "withdrawal_release"
	TxWithdrawalPayout  TransactionType = "withdrawal_payout"
)

type TransactionStatus string

const (
	TxStatusPending   TransactionStatus = "pending"
	TxStatusCompleted TransactionStatus = "completed"
)

// Transaction is the append-only audit record of a wallet mutation.
type Transaction struct {
	ID              string
	SellerID        string
	WalletID        string
	Type            TransactionType
	Amount          decimal.Decimal
	OrderID         string
	CommissionID    string
	WithdrawalID    string
	AdvertisementID string
	Status          TransactionStatus
	ClearsAt        *time.Time
	Description     string
	CreatedAt       time.Time
}
