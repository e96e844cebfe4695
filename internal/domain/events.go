package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

const (
	EventWalletCredited         = "wallet.credited"
	EventWalletDebited          = "wallet.debited"
	EventWalletSettled          = "wallet.settled"
	EventWithdrawalRequested    = "withdrawal.requested"
	EventWithdrawalApproved     = "withdrawal.approved"
	EventWithdrawalRejected     = "withdrawal.rejected"
	EventWithdrawalCompleted    = "withdrawal.completed"
	EventAdvertisementPurchased = "advertisement.purchased"
	EventCommissionPaid         = "commission.paid"
)

// SettlementEvent is published after a unit of work commits.
type SettlementEvent struct {
	Type        string
	SellerID    string
	Amount      decimal.Decimal
	ReferenceID string
	Status      string
	OccurredAt  time.Time
}

type EventPublisher interface {
	PublishSettlementEvent(ctx context.Context, event SettlementEvent) error
}

// OrderCompletedEvent arrives from the order service once an order is fulfilled.
type OrderCompletedEvent struct {
	Event   string          `json:"event"`
	OrderID string          `json:"order_id"`
	Items   []OrderLineItem `json:"items"`
}

type OrderLineItem struct {
	LineItemID string          `json:"line_item_id"`
	SellerID   string          `json:"seller_id"`
	Amount     decimal.Decimal `json:"amount"`
}

// RejectedOperation records a balance-affecting request refused by validation or funds checks.
type RejectedOperation struct {
	SellerID    string
	Operation   string
	Reason      string
	Amount      decimal.Decimal
	ReferenceID string
	OccurredAt  time.Time
}

type RejectionLog interface {
	LogRejected(ctx context.Context, op RejectedOperation) error
}
