package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type WithdrawalStatus string

const (
	WithdrawalPending   WithdrawalStatus = "pending"
	WithdrawalApproved  WithdrawalStatus = "approved"
	WithdrawalRejected  WithdrawalStatus = "rejected"
	WithdrawalCompleted WithdrawalStatus = "completed"
)

var DefaultMinimumWithdrawal = decimal.NewFromInt(50)

type WithdrawalRequest struct {
	ID            string
	Reference     string
	SellerID      string
	Amount        decimal.Decimal
	BankAccount   BankAccount
	Status        WithdrawalStatus
	RequestedAt   time.Time
	ProcessedAt   *time.Time
	AdminNote     string
	TransactionID string
	UpdatedAt     time.Time
}

var withdrawalTransitions = map[WithdrawalStatus][]WithdrawalStatus{
	WithdrawalPending:  {WithdrawalApproved, WithdrawalRejected},
	WithdrawalApproved: {WithdrawalCompleted},
}

func (w *WithdrawalRequest) CanTransitionTo(next WithdrawalStatus) bool {
	for _, allowed := range withdrawalTransitions[w.Status] {
		if allowed == next {
			return true
		}
	}
	return false
}

// TransitionTo advances the status and records the admin note. Amount never changes.
func (w *WithdrawalRequest) TransitionTo(next WithdrawalStatus, note string, now time.Time) error {
	if !w.CanTransitionTo(next) {
		return fmt.Errorf("%w: withdrawal %s %s -> %s", ErrInvalidStateTransition, w.ID, w.Status, next)
	}
	w.Status = next
	if note != "" {
		w.AdminNote = note
	}
	processedAt := now
	w.ProcessedAt = &processedAt
	w.UpdatedAt = now
	return nil
}

// ValidateWithdrawalAmount checks the amount shape and configured floor.
func ValidateWithdrawalAmount(amount, minimum decimal.Decimal) error {
	if err := ValidatePositiveAmount(amount); err != nil {
		return err
	}
	if amount.LessThan(minimum) {
		return fmt.Errorf("%w: %s < %s", ErrBelowMinimumWithdrawal, amount, minimum)
	}
	return nil
}
