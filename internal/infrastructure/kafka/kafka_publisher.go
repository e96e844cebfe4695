package kafka

import (
	"context"
	"fmt"
	"time"

	"github.com/LavaJover/shvark-settlement-service/internal/domain"
	"github.com/segmentio/kafka-go"
)

type DefaultKafkaPublisher struct {
	writer *kafka.Writer
}

func NewDefaultKafkaPublisher(cfg KafkaConfig) (*DefaultKafkaPublisher, error) {
	transport, err := cfg.transport()
	if err != nil {
		return nil, fmt.Errorf("kafka transport: %w", err)
	}
	return &DefaultKafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Balancer:     &kafka.Hash{},
			Transport:    transport,
			RequiredAcks: kafka.RequireAll,
		},
	}, nil
}

// Publish writes msgs to topic. Messages with the same key land on the same partition.
func (k *DefaultKafkaPublisher) Publish(ctx context.Context, topic string, msgs ...domain.Message) error {
	if len(msgs) == 0 {
		return nil
	}
	km := make([]kafka.Message, 0, len(msgs))
	now := time.Now()
	for _, m := range msgs {
		km = append(km, kafka.Message{
			Key:   m.Key,
			Value: m.Value,
			Time:  now,
			Topic: topic,
		})
	}
	return k.writer.WriteMessages(ctx, km...)
}

func (k *DefaultKafkaPublisher) Close() error {
	return k.writer.Close()
}
