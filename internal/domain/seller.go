package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var DefaultCommissionRate = decimal.NewFromFloat(0.10)

type Seller struct {
	ID                  string
	DisplayName         string
	CommissionRate      decimal.Decimal
	TotalEarnings       decimal.Decimal
	TotalCommissionPaid decimal.Decimal
	Verified            bool
	BankAccount         *BankAccount
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// NewSeller returns a profile with the given default rate; used for lazy creation.
func NewSeller(sellerID string, defaultRate decimal.Decimal, now time.Time) *Seller {
	return &Seller{
		ID:                  sellerID,
		CommissionRate:      defaultRate,
		TotalEarnings:       decimal.Zero,
		TotalCommissionPaid: decimal.Zero,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
}

// RatePlaces matches the numeric(5,4) column the rate is stored in.
const RatePlaces = 4

func ValidateCommissionRate(rate decimal.Decimal) error {
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("%w: commission rate %s must be within [0, 1]", ErrInvalidInput, rate.String())
	}
	if !rate.Equal(rate.Round(RatePlaces)) {
		return fmt.Errorf("%w: commission rate %s has more than %d decimal places", ErrInvalidInput, rate.String(), RatePlaces)
	}
	return nil
}
