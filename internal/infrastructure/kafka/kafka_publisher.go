package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/prestamos/loan-service/internal/domain/event"
	pkgkafka "github.com/prestamos/loan-service/pkg/kafka"
)

// MessageProducer is the part of pkg/kafka.Producer the publisher needs.
type MessageProducer interface {
	Publish(ctx context.Context, topic string, messages ...pkgkafka.Message) error
}

// KafkaEventPublisher implements port.EventPublisher by writing events to Kafka.
// Messages are keyed by aggregate id so that events of one contract stay
// ordered within a partition.
type KafkaEventPublisher struct {
	producer MessageProducer
	topic    string
	logger   *zap.Logger
}

// NewKafkaEventPublisher creates a publisher targeting the given Kafka producer and topic.
func NewKafkaEventPublisher(producer MessageProducer, topic string, logger *zap.Logger) *KafkaEventPublisher {
	return &KafkaEventPublisher{
		producer: producer,
		topic:    topic,
		logger:   logger,
	}
}

// Publish serialises and sends domain events to Kafka.
func (p *KafkaEventPublisher) Publish(ctx context.Context, events ...event.DomainEvent) error {
	messages := make([]pkgkafka.Message, 0, len(events))
	for _, evt := range events {
		payload, err := json.Marshal(evt)
		if err != nil {
			return fmt.Errorf("marshal event %s: %w", evt.EventType(), err)
		}

		p.logger.Debug("publishing domain event",
			zap.String("event_type", evt.EventType()),
			zap.String("aggregate_id", evt.AggregateID()),
			zap.String("topic", p.topic),
			zap.Int("payload_size", len(payload)),
		)

		messages = append(messages, pkgkafka.Message{
			Key:   []byte(evt.AggregateID()),
			Value: payload,
			Headers: map[string]string{
				"event_type":     evt.EventType(),
				"event_id":       evt.EventID(),
				"aggregate_type": evt.AggregateType(),
			},
		})
	}

	if len(messages) == 0 {
		return nil
	}

	if err := p.producer.Publish(ctx, p.topic, messages...); err != nil {
		return fmt.Errorf("failed to publish events to topic %s: %w", p.topic, err)
	}
	return nil
}
