package walletdto

import (
	"github.com/LavaJover/shvark-settlement-service/internal/domain"
	"github.com/shopspring/decimal"
)

type CreditInput struct {
	SellerID     string
	Amount       decimal.Decimal
	Source       domain.CreditSource
	OrderID      string
	CommissionID string
	Description  string
}

// DebitInput covers ad spend only; withdrawal reservations go through withdrawal requests.
type DebitInput struct {
	SellerID        string
	Amount          decimal.Decimal
	Reason          domain.DebitReason
	AdvertisementID string
	Description     string
}
