package background

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/LavaJover/shvark-settlement-service/internal/domain"
	"github.com/LavaJover/shvark-settlement-service/internal/usecase"
	"github.com/shopspring/decimal"
)

type countingSettlement struct {
	mu   sync.Mutex
	runs int
}

func (s *countingSettlement) SettleMatured(context.Context, time.Time) (*usecase.SettleResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs++
	return &usecase.SettleResult{Amount: decimal.Zero}, nil
}

func (s *countingSettlement) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runs
}

type recordingOrders struct {
	usecase.OrderEventUsecase
	handled chan domain.Message
}

func (r *recordingOrders) HandleMessage(_ context.Context, msg domain.Message) error {
	r.handled <- msg
	return nil
}

type chanSubscriber struct {
	msgs chan domain.Message
}

func (s *chanSubscriber) Subscribe(context.Context, string, string) (<-chan domain.Message, error) {
	return s.msgs, nil
}

func TestSettlementTickerRunsUntilCancelled(t *testing.T) {
	settlement := &countingSettlement{}
	tasks := NewBackgroundTasks(settlement, nil, nil, 5*time.Millisecond, "order-events", "settlement-service")

	ctx, cancel := context.WithCancel(context.Background())
	tasks.StartAll(ctx)

	deadline := time.Now().Add(2 * time.Second)
	for settlement.count() < 2 {
		if time.Now().After(deadline) {
			t.Fatalf("settlement ran %d times", settlement.count())
		}
		time.Sleep(time.Millisecond)
	}
	cancel()
	tasks.Wait()
}

func TestOrderEventsAreConsumed(t *testing.T) {
	orders := &recordingOrders{handled: make(chan domain.Message, 1)}
	sub := &chanSubscriber{msgs: make(chan domain.Message, 1)}
	tasks := NewBackgroundTasks(&countingSettlement{}, orders, sub, time.Hour, "order-events", "settlement-service")

	ctx, cancel := context.WithCancel(context.Background())
	tasks.StartAll(ctx)

	sub.msgs <- domain.Message{Key: []byte("order-1"), Value: []byte(`{}`)}
	select {
	case msg := <-orders.handled:
		if string(msg.Key) != "order-1" {
			t.Fatalf("key = %q", msg.Key)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("message was not handled")
	}

	cancel()
	close(sub.msgs)
	tasks.Wait()
}
