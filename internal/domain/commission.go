package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type CommissionStatus string

const (
	CommissionPending    CommissionStatus = "pending"
	CommissionCalculated CommissionStatus = "calculated"
	CommissionPaid       CommissionStatus = "paid"
	CommissionCancelled  CommissionStatus = "cancelled"
)

type Commission struct {
	ID               string
	OrderID          string
	LineItemID       string
	SellerID         string
	OrderAmount      decimal.Decimal
	CommissionRate   decimal.Decimal
	CommissionAmount decimal.Decimal
	Status           CommissionStatus
	PaidAt           *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// CommissionAmount is round(orderAmount * rate, 2).
func CommissionAmount(orderAmount, rate decimal.Decimal) decimal.Decimal {
	return RoundMoney(orderAmount.Mul(rate))
}

// NetEarning is what the seller keeps from the order after the platform cut.
func NetEarning(c *Commission) decimal.Decimal {
	return c.OrderAmount.Sub(c.CommissionAmount)
}

// ValidateOrderAmount rejects negative amounts and sub-cent precision. Zero is a valid (free) order.
func ValidateOrderAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return fmt.Errorf("%w: order amount %s is negative", ErrInvalidAmount, amount.String())
	}
	if !amount.Equal(RoundMoney(amount)) {
		return fmt.Errorf("%w: order amount %s has more than %d decimal places", ErrInvalidAmount, amount.String(), MoneyPlaces)
	}
	return nil
}

func (c *Commission) CanTransitionTo(next CommissionStatus) bool {
	switch c.Status {
	case CommissionPending:
		return next == CommissionCalculated || next == CommissionCancelled
	case CommissionCalculated:
		return next == CommissionPaid || next == CommissionCancelled
	}
	return false
}

func (c *Commission) TransitionTo(next CommissionStatus, now time.Time) error {
	if !c.CanTransitionTo(next) {
		return fmt.Errorf("%w: commission %s %s -> %s", ErrInvalidStateTransition, c.ID, c.Status, next)
	}
	c.Status = next
	c.UpdatedAt = now
	if next == CommissionPaid {
		paidAt := now
		c.PaidAt = &paidAt
	}
	return nil
}
