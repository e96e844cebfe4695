package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/LavaJover/shvark-settlement-service/internal/domain"
)

// SettlementEventMessage is the JSON shape on the settlement events topic.
type SettlementEventMessage struct {
	Event       string    `json:"event"`
	SellerID    string    `json:"seller_id"`
	Amount      string    `json:"amount"`
	ReferenceID string    `json:"reference_id,omitempty"`
	Status      string    `json:"status,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}

type SettlementEventPublisher struct {
	pub   domain.PublisherPort
	topic string
}

func NewSettlementEventPublisher(pub domain.PublisherPort, topic string) *SettlementEventPublisher {
	return &SettlementEventPublisher{pub: pub, topic: topic}
}

func (p *SettlementEventPublisher) PublishSettlementEvent(ctx context.Context, event domain.SettlementEvent) error {
	v, err := json.Marshal(SettlementEventMessage{
		Event:       event.Type,
		SellerID:    event.SellerID,
		Amount:      event.Amount.StringFixed(domain.MoneyPlaces),
		ReferenceID: event.ReferenceID,
		Status:      event.Status,
		OccurredAt:  event.OccurredAt,
	})
	if err != nil {
		return err
	}
	return p.pub.Publish(ctx, p.topic, domain.Message{Key: []byte(event.SellerID), Value: v})
}
