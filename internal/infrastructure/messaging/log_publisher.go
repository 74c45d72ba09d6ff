package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/prestamos/loan-service/internal/domain/event"
)

// LogEventPublisher implements port.EventPublisher by logging each event.
// It is used when no Kafka brokers are configured.
type LogEventPublisher struct {
	logger *zap.Logger
}

// NewLogEventPublisher creates a publisher that writes events to logger.
func NewLogEventPublisher(logger *zap.Logger) *LogEventPublisher {
	return &LogEventPublisher{logger: logger}
}

// Publish serialises and logs domain events.
func (p *LogEventPublisher) Publish(_ context.Context, events ...event.DomainEvent) error {
	for _, evt := range events {
		payload, err := json.Marshal(evt)
		if err != nil {
			return fmt.Errorf("marshal event %s: %w", evt.EventType(), err)
		}

		p.logger.Info("domain event",
			zap.String("event_type", evt.EventType()),
			zap.String("event_id", evt.EventID()),
			zap.String("aggregate_id", evt.AggregateID()),
			zap.ByteString("payload", payload),
		)
	}
	return nil
}
