package domain

import (
	"errors"
	"testing"
	"time"
)

func TestCommissionTransitions(t *testing.T) {
	allowed := map[CommissionStatus][]CommissionStatus{
		CommissionPending:    {CommissionCalculated, CommissionCancelled},
		CommissionCalculated: {CommissionPaid, CommissionCancelled},
		CommissionPaid:       nil,
		CommissionCancelled:  nil,
	}
	all := []CommissionStatus{CommissionPending, CommissionCalculated, CommissionPaid, CommissionCancelled}
	for from, nexts := range allowed {
		for _, to := range all {
			want := false
			for _, n := range nexts {
				want = want || n == to
			}
			c := &Commission{ID: "c", Status: from}
			if got := c.CanTransitionTo(to); got != want {
				t.Errorf("%s -> %s: got %v, want %v", from, to, got, want)
			}
		}
	}

	c := &Commission{ID: "c", Status: CommissionCalculated}
	if err := c.TransitionTo(CommissionPaid, time.Now()); err != nil || c.PaidAt == nil {
		t.Fatalf("pay: %v", err)
	}
	if err := c.TransitionTo(CommissionCancelled, time.Now()); !errors.Is(err, ErrInvalidStateTransition) {
		t.Fatalf("cancel paid: %v", err)
	}
}

func TestWithdrawalTransitions(t *testing.T) {
	now := time.Now()
	w := &WithdrawalRequest{ID: "w", Status: WithdrawalPending, Amount: amount("75")}

	if err := w.TransitionTo(WithdrawalCompleted, "", now); !errors.Is(err, ErrInvalidStateTransition) {
		t.Fatalf("pending -> completed: %v", err)
	}
	if err := w.TransitionTo(WithdrawalApproved, "checked", now); err != nil {
		t.Fatalf("approve: %v", err)
	}
	if err := w.TransitionTo(WithdrawalRejected, "", now); !errors.Is(err, ErrInvalidStateTransition) {
		t.Fatalf("approved -> rejected: %v", err)
	}
	if err := w.TransitionTo(WithdrawalCompleted, "", now); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if w.AdminNote != "checked" || w.ProcessedAt == nil || !w.Amount.Equal(amount("75")) {
		t.Fatalf("request: %+v", w)
	}
}

func TestWithdrawalAmount(t *testing.T) {
	if err := ValidateWithdrawalAmount(amount("50"), DefaultMinimumWithdrawal); err != nil {
		t.Fatalf("at minimum: %v", err)
	}
	if err := ValidateWithdrawalAmount(amount("49.99"), DefaultMinimumWithdrawal); !errors.Is(err, ErrBelowMinimumWithdrawal) {
		t.Fatalf("below minimum: %v", err)
	}
}

func TestAdvertisementStatus(t *testing.T) {
	start := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	pkg := AdvertisementPackage{ID: "featured-7", DurationDays: 7, Price: amount("149.90"), Type: AdTypeFeatured}
	ad := NewAdvertisement("ad", "s", "p", pkg, start)

	if ad.DisplayStatus(start.AddDate(0, 0, 7)) != AdActive {
		t.Fatalf("active on the last instant")
	}
	if ad.DisplayStatus(start.AddDate(0, 0, 8)) != AdCompleted {
		t.Fatalf("expected completed after end date")
	}
	if err := ad.Pause(start.AddDate(0, 0, 1)); err != nil {
		t.Fatalf("pause: %v", err)
	}
	if ad.DisplayStatus(start.AddDate(0, 0, 30)) != AdPaused {
		t.Fatalf("paused ad must stay paused")
	}
	if err := ad.Resume(start.AddDate(0, 0, 30)); !errors.Is(err, ErrInvalidStateTransition) {
		t.Fatalf("resume expired: %v", err)
	}
	if err := ad.Cancel(start.AddDate(0, 0, 30)); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if err := ad.Cancel(start.AddDate(0, 0, 30)); !errors.Is(err, ErrInvalidStateTransition) {
		t.Fatalf("cancel twice: %v", err)
	}
}
