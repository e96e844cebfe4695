package withdrawaldto

import (
	"github.com/LavaJover/shvark-settlement-service/internal/domain"
	"github.com/shopspring/decimal"
)

// CreateInput without BankAccount falls back to the seller's saved account.
type CreateInput struct {
	SellerID    string
	Amount      decimal.Decimal
	BankAccount *domain.BankAccount
}

type CompleteInput struct {
	WithdrawalID  string
	TransactionID string
	Note          string
}
