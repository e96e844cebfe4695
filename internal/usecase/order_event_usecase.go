package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/LavaJover/shvark-settlement-service/internal/domain"
	"github.com/LavaJover/shvark-settlement-service/internal/infrastructure/metrics"
	commissiondto "github.com/LavaJover/shvark-settlement-service/internal/usecase/dto/commission"
)

const OrderCompletedEvent = "order.completed"

type OrderEventUsecase interface {
	HandleOrderCompleted(ctx context.Context, event domain.OrderCompletedEvent) ([]*domain.Commission, error)
	HandleMessage(ctx context.Context, msg domain.Message) error
}

// DefaultOrderEventUsecase turns completed orders into commissions and pending earnings.
type DefaultOrderEventUsecase struct {
	uow      domain.UnitOfWork
	settings Settings
	effects  sideEffects
	nowFn    func() time.Time
}

func NewDefaultOrderEventUsecase(
	uow domain.UnitOfWork,
	settings Settings,
	events domain.EventPublisher,
	m *metrics.SettlementMetrics,
) *DefaultOrderEventUsecase {
	return &DefaultOrderEventUsecase{
		uow:      uow,
		settings: settings.withDefaults(),
		effects:  sideEffects{events: events, metrics: m},
		nowFn:    time.Now,
	}
}

// HandleOrderCompleted processes every line item in its own seller unit of work:
// commission and net earning commit together. Items seen before are skipped.
func (uc *DefaultOrderEventUsecase) HandleOrderCompleted(ctx context.Context, event domain.OrderCompletedEvent) ([]*domain.Commission, error) {
	if event.OrderID == "" {
		return nil, fmt.Errorf("%w: order id is required", domain.ErrInvalidInput)
	}
	inputs := make([]commissiondto.CalculateInput, 0, len(event.Items))
	for _, item := range event.Items {
		input := commissiondto.CalculateInput{
			OrderID:     event.OrderID,
			LineItemID:  item.LineItemID,
			SellerID:    item.SellerID,
			OrderAmount: item.Amount,
		}
		if err := validateCalculateInput(input); err != nil {
			return nil, fmt.Errorf("order %s line %s: %w", event.OrderID, item.LineItemID, err)
		}
		inputs = append(inputs, input)
	}

	commissions := make([]*domain.Commission, 0, len(inputs))
	for _, input := range inputs {
		commission, err := uc.processLineItem(ctx, input)
		if err != nil {
			return commissions, fmt.Errorf("order %s line %s: %w", input.OrderID, input.LineItemID, err)
		}
		commissions = append(commissions, commission)
	}
	return commissions, nil
}

func (uc *DefaultOrderEventUsecase) processLineItem(ctx context.Context, input commissiondto.CalculateInput) (*domain.Commission, error) {
	now := uc.nowFn()
	var (
		commission *domain.Commission
		created    bool
		credit     *domain.Transaction
	)
	err := uc.uow.Do(ctx, input.SellerID, func(repos domain.Repositories) error {
		seller, err := loadSeller(ctx, repos, input.SellerID, uc.settings.DefaultCommissionRate, now)
		if err != nil {
			return err
		}
		commission, created, err = calculateInTx(ctx, repos, seller, input, now)
		if err != nil || !created {
			return err
		}

		net := domain.NetEarning(commission)
		if !net.IsPositive() {
			return repos.Sellers.SaveSeller(ctx, seller)
		}
		_, credit, err = creditEarning(ctx, repos, seller, ledgerEntry{
			Amount:       net,
			OrderID:      commission.OrderID,
			CommissionID: commission.ID,
			Description:  fmt.Sprintf("order %s line %s", commission.OrderID, commission.LineItemID),
		}, uc.settings.ClearingDelay, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	if !created {
		slog.Debug("line item already settled", "order_id", input.OrderID, "line_item_id", input.LineItemID)
		return commission, nil
	}

	uc.effects.metrics.RecordCommission(commission.CommissionAmount)
	if credit != nil {
		uc.effects.metrics.RecordCredit(string(domain.CreditSourceOrder), credit.Amount)
		uc.effects.publish(ctx, domain.SettlementEvent{
			Type:        domain.EventWalletCredited,
			SellerID:    commission.SellerID,
			Amount:      credit.Amount,
			ReferenceID: commission.OrderID,
			Status:      string(credit.Status),
			OccurredAt:  now,
		})
	}
	return commission, nil
}

// HandleMessage decodes an order-events message. Events other than
// order.completed are ignored.
func (uc *DefaultOrderEventUsecase) HandleMessage(ctx context.Context, msg domain.Message) error {
	var event domain.OrderCompletedEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		return fmt.Errorf("%w: decode order event: %v", domain.ErrInvalidInput, err)
	}
	if event.Event != OrderCompletedEvent {
		return nil
	}
	_, err := uc.HandleOrderCompleted(ctx, event)
	return err
}

// ConsumeOrderEvents feeds messages from sub into HandleMessage until ctx ends.
// Malformed messages are logged and skipped; transient failures are retried.
func ConsumeOrderEvents(ctx context.Context, uc OrderEventUsecase, sub domain.SubscriberPort, topic, groupID string) error {
	msgs, err := sub.Subscribe(ctx, topic, groupID)
	if err != nil {
		return err
	}
	for msg := range msgs {
		for attempt := 1; ; attempt++ {
			err := uc.HandleMessage(ctx, msg)
			if err == nil {
				break
			}
			if !domain.IsRetryable(err) || attempt >= 5 {
				slog.Error("order event dropped", "key", string(msg.Key), "attempt", attempt, "error", err)
				break
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Duration(attempt) * time.Second):
			}
		}
	}
	if err := ctx.Err(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
