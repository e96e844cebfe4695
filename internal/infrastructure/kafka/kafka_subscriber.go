package kafka

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/LavaJover/shvark-settlement-service/internal/domain"
	"github.com/segmentio/kafka-go"
)

type DefaultKafkaSubscriber struct {
	cfg KafkaConfig
}

func NewDefaultKafkaSubscriber(cfg KafkaConfig) *DefaultKafkaSubscriber {
	return &DefaultKafkaSubscriber{cfg: cfg}
}

// Subscribe streams topic messages until ctx is cancelled or the reader fails;
// the channel is closed in both cases.
func (k *DefaultKafkaSubscriber) Subscribe(ctx context.Context, topic, groupID string) (<-chan domain.Message, error) {
	dialer, err := k.cfg.dialer()
	if err != nil {
		return nil, fmt.Errorf("kafka dialer: %w", err)
	}
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: k.cfg.Brokers,
		Topic:   topic,
		GroupID: groupID,
		Dialer:  dialer,
	})

	out := make(chan domain.Message)
	go func() {
		defer close(out)
		defer reader.Close()
		for {
			m, err := reader.ReadMessage(ctx)
			if err != nil {
				if !errors.Is(err, context.Canceled) {
					slog.Error("kafka read failed", "topic", topic, "error", err)
				}
				return
			}
			select {
			case out <- domain.Message{Key: m.Key, Value: m.Value}:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}
