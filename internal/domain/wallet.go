package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type SellerWallet struct {
	ID               string
	SellerID         string
	Balance          decimal.Decimal
	AvailableBalance decimal.Decimal
	PendingBalance   decimal.Decimal
	ReservedBalance  decimal.Decimal
	TotalEarnings    decimal.Decimal
	TotalWithdrawn   decimal.Decimal
	TotalSpentOnAds  decimal.Decimal
	LastUpdated      time.Time
}

type CreditSource string

const (
	CreditSourceOrder      CreditSource = "order"
	CreditSourceAdjustment CreditSource = "adjustment"
)

type DebitReason string

const (
	DebitReasonAdvertisement DebitReason = "advertisement"
	DebitReasonWithdrawal    DebitReason = "withdrawal"
)

func NewSellerWallet(id, sellerID string, now time.Time) *SellerWallet {
	return &SellerWallet{
		ID:               id,
		SellerID:         sellerID,
		Balance:          decimal.Zero,
		AvailableBalance: decimal.Zero,
		PendingBalance:   decimal.Zero,
		ReservedBalance:  decimal.Zero,
		TotalEarnings:    decimal.Zero,
		TotalWithdrawn:   decimal.Zero,
		TotalSpentOnAds:  decimal.Zero,
		LastUpdated:      now,
	}
}

// Credit books an earning into the pending balance.
func (w *SellerWallet) Credit(amount decimal.Decimal, now time.Time) error {
	if err := ValidatePositiveAmount(amount); err != nil {
		return err
	}
	w.PendingBalance = w.PendingBalance.Add(amount)
	w.TotalEarnings = w.TotalEarnings.Add(amount)
	w.touch(now)
	return nil
}

// Settle clears a matured amount from pending to available.
func (w *SellerWallet) Settle(amount decimal.Decimal, now time.Time) error {
	if err := ValidatePositiveAmount(amount); err != nil {
		return err
	}
	if amount.GreaterThan(w.PendingBalance) {
		return fmt.Errorf("%w: settle %s exceeds pending %s", ErrInsufficientBalance, amount, w.PendingBalance)
	}
	w.PendingBalance = w.PendingBalance.Sub(amount)
	w.AvailableBalance = w.AvailableBalance.Add(amount)
	w.touch(now)
	return nil
}

// Debit takes amount out of the available balance. Withdrawals are parked in
// ReservedBalance until paid out or rejected; ad spend is final.
func (w *SellerWallet) Debit(amount decimal.Decimal, reason DebitReason, now time.Time) error {
	if err := ValidatePositiveAmount(amount); err != nil {
		return err
	}
	if amount.GreaterThan(w.AvailableBalance) {
		return fmt.Errorf("%w: requested %s, available %s", ErrInsufficientBalance, amount, w.AvailableBalance)
	}
	switch reason {
	case DebitReasonAdvertisement:
		w.TotalSpentOnAds = w.TotalSpentOnAds.Add(amount)
	case DebitReasonWithdrawal:
		w.ReservedBalance = w.ReservedBalance.Add(amount)
	default:
		return fmt.Errorf("%w: unknown debit reason %q", ErrInvalidInput, reason)
	}
	w.AvailableBalance = w.AvailableBalance.Sub(amount)
	w.touch(now)
	return nil
}

// ReleaseReservation returns a rejected withdrawal to the available balance.
func (w *SellerWallet) ReleaseReservation(amount decimal.Decimal, now time.Time) error {
	if err := ValidatePositiveAmount(amount); err != nil {
		return err
	}
	if amount.GreaterThan(w.ReservedBalance) {
		return fmt.Errorf("%w: release %s exceeds reserved %s", ErrInvalidStateTransition, amount, w.ReservedBalance)
	}
	w.ReservedBalance = w.ReservedBalance.Sub(amount)
	w.AvailableBalance = w.AvailableBalance.Add(amount)
	w.touch(now)
	return nil
}

// CompletePayout moves a reservation into TotalWithdrawn. Available is untouched.
func (w *SellerWallet) CompletePayout(amount decimal.Decimal, now time.Time) error {
	if err := ValidatePositiveAmount(amount); err != nil {
		return err
	}
	if amount.GreaterThan(w.ReservedBalance) {
		return fmt.Errorf("%w: payout %s exceeds reserved %s", ErrInvalidStateTransition, amount, w.ReservedBalance)
	}
	w.ReservedBalance = w.ReservedBalance.Sub(amount)
	w.TotalWithdrawn = w.TotalWithdrawn.Add(amount)
	w.LastUpdated = now
	return nil
}

func (w *SellerWallet) touch(now time.Time) {
	w.Balance = w.AvailableBalance.Add(w.PendingBalance)
	w.LastUpdated = now
}

// CheckInvariants verifies the ledger equations hold.
func (w *SellerWallet) CheckInvariants() error {
	if !w.Balance.Equal(w.AvailableBalance.Add(w.PendingBalance)) {
		return fmt.Errorf("wallet %s: balance %s != available %s + pending %s", w.ID, w.Balance, w.AvailableBalance, w.PendingBalance)
	}
	if w.AvailableBalance.IsNegative() || w.PendingBalance.IsNegative() || w.ReservedBalance.IsNegative() {
		return fmt.Errorf("wallet %s: negative balance component", w.ID)
	}
	net := w.TotalEarnings.Sub(w.TotalWithdrawn).Sub(w.TotalSpentOnAds).Sub(w.ReservedBalance)
	if !net.Equal(w.Balance) {
		return fmt.Errorf("wallet %s: earnings-withdrawn-ads-reserved %s != balance %s", w.ID, net, w.Balance)
	}
	return nil
}
