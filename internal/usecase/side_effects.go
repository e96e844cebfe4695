package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/LavaJover/shvark-settlement-service/internal/domain"
	"github.com/LavaJover/shvark-settlement-service/internal/infrastructure/metrics"
	"github.com/shopspring/decimal"
)

// WithdrawalNotifier is told about every withdrawal status change.
type WithdrawalNotifier interface {
	NotifyWithdrawal(request *domain.WithdrawalRequest)
}

// sideEffects runs the non-critical work that follows a committed unit of work.
// Failures are logged and never reach the caller.
type sideEffects struct {
	events     domain.EventPublisher
	rejections domain.RejectionLog
	metrics    *metrics.SettlementMetrics
}

const publishTimeout = 5 * time.Second

func (s sideEffects) publish(ctx context.Context, events ...domain.SettlementEvent) {
	if s.events == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	for _, event := range events {
		if err := s.events.PublishSettlementEvent(ctx, event); err != nil {
			slog.Error("failed to publish settlement event", "event", event.Type, "seller_id", event.SellerID, "error", err)
		}
	}
}

// rejected records an operation refused for a business reason. Storage and
// other unexpected failures are only logged.
func (s sideEffects) rejected(ctx context.Context, operation, sellerID, referenceID string, amount decimal.Decimal, err error, now time.Time) {
	reason := rejectionReason(err)
	if reason == "" {
		slog.Error("settlement operation failed", "operation", operation, "seller_id", sellerID, "error", err)
		return
	}
	s.metrics.RecordRejected(operation, reason)
	slog.Info("settlement operation rejected", "operation", operation, "seller_id", sellerID, "reason", reason)

	if s.rejections == nil {
		return
	}
	logErr := s.rejections.LogRejected(context.WithoutCancel(ctx), domain.RejectedOperation{
		SellerID:    sellerID,
		Operation:   operation,
		Reason:      reason,
		Amount:      amount,
		ReferenceID: referenceID,
		OccurredAt:  now,
	})
	if logErr != nil {
		slog.Error("failed to log rejected operation", "operation", operation, "error", logErr)
	}
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInsufficientBalance):
		return "insufficient_balance"
	case errors.Is(err, domain.ErrBelowMinimumWithdrawal):
		return "below_minimum"
	case errors.Is(err, domain.ErrInvalidAmount):
		return "invalid_amount"
	case errors.Is(err, domain.ErrInvalidBankAccount):
		return "invalid_bank_account"
	case errors.Is(err, domain.ErrInvalidStateTransition):
		return "invalid_state"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid_input"
	}
	return ""
}
