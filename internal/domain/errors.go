package domain

import "errors"

var (
	ErrInvalidAmount          = errors.New("invalid amount")
	ErrInsufficientBalance    = errors.New("insufficient balance")
	ErrBelowMinimumWithdrawal = errors.New("amount below minimum withdrawal")
	ErrInvalidBankAccount     = errors.New("invalid bank account")
	ErrNotFound               = errors.New("not found")
	ErrInvalidStateTransition = errors.New("invalid state transition")
	ErrInvalidInput           = errors.New("invalid input")
	ErrIdempotencyConflict    = errors.New("idempotency key reused with a different request")
	ErrTransient              = errors.New("temporarily unavailable")
)

// IsRetryable reports whether err is a transient backend failure the caller may retry.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrTransient)
}
