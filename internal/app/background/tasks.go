package background

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/LavaJover/shvark-settlement-service/internal/domain"
	"github.com/LavaJover/shvark-settlement-service/internal/usecase"
)

type BackgroundTasks struct {
	SettlementUsecase usecase.SettlementUsecase
	OrderEventUsecase usecase.OrderEventUsecase
	// Subscriber is nil when kafka is not configured; order events are then not consumed.
	Subscriber     domain.SubscriberPort
	SettleInterval time.Duration
	OrderTopic     string
	GroupID        string

	nowFn func() time.Time
	wg    sync.WaitGroup
}

func NewBackgroundTasks(
	settlementUC usecase.SettlementUsecase,
	orderEventUC usecase.OrderEventUsecase,
	sub domain.SubscriberPort,
	settleInterval time.Duration,
	orderTopic, groupID string,
) *BackgroundTasks {
	if settleInterval <= 0 {
		settleInterval = time.Minute
	}
	return &BackgroundTasks{
		SettlementUsecase: settlementUC,
		OrderEventUsecase: orderEventUC,
		Subscriber:        sub,
		SettleInterval:    settleInterval,
		OrderTopic:        orderTopic,
		GroupID:           groupID,
		nowFn:             time.Now,
	}
}

func (bt *BackgroundTasks) StartAll(ctx context.Context) {
	bt.wg.Add(1)
	go func() {
		defer bt.wg.Done()
		bt.startSettlement(ctx)
	}()

	if bt.Subscriber != nil {
		bt.wg.Add(1)
		go func() {
			defer bt.wg.Done()
			bt.startOrderEvents(ctx)
		}()
	}
}

// Wait blocks until every task returned after ctx was cancelled.
func (bt *BackgroundTasks) Wait() {
	bt.wg.Wait()
}

func (bt *BackgroundTasks) startSettlement(ctx context.Context) {
	ticker := time.NewTicker(bt.SettleInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			bt.settleOnce(ctx)
		}
	}
}

func (bt *BackgroundTasks) settleOnce(ctx context.Context) {
	result, err := bt.SettlementUsecase.SettleMatured(ctx, bt.nowFn())
	if err != nil {
		slog.Error("settlement run failed", "error", err)
	}
	if result != nil && result.Earnings > 0 {
		slog.Info("settlement run finished",
			"sellers", result.Sellers,
			"earnings", result.Earnings,
			"amount", result.Amount.String(),
		)
	}
}

func (bt *BackgroundTasks) startOrderEvents(ctx context.Context) {
	for {
		err := usecase.ConsumeOrderEvents(ctx, bt.OrderEventUsecase, bt.Subscriber, bt.OrderTopic, bt.GroupID)
		if ctx.Err() != nil {
			return
		}
		slog.Error("order event consumer stopped, restarting", "topic", bt.OrderTopic, "error", err)
		select {
		case <-ctx.Done():
			return
		case <-time.After(5 * time.Second):
		}
	}
}
