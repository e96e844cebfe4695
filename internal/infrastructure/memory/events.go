package memory

import (
	"context"
	"sync"

	"github.com/LavaJover/shvark-settlement-service/internal/domain"
)

// EventRecorder collects published settlement events. Used when Kafka is not configured.
type EventRecorder struct {
	mu     sync.Mutex
	events []domain.SettlementEvent
}

func NewEventRecorder() *EventRecorder {
	return &EventRecorder{}
}

func (r *EventRecorder) PublishSettlementEvent(_ context.Context, event domain.SettlementEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *EventRecorder) Events() []domain.SettlementEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.SettlementEvent, len(r.events))
	copy(out, r.events)
	return out
}
