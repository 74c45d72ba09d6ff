package messaging

import (
	"context"

	"go.uber.org/zap"

	"github.com/prestamos/loan-service/internal/domain/event"
	"github.com/prestamos/loan-service/internal/domain/port"
)

// BestEffortPublisher logs and swallows publish failures. Events are raised
// after the write has committed, so a broker outage must not turn a
// successful request into an error.
type BestEffortPublisher struct {
	next   port.EventPublisher
	logger *zap.Logger
}

// NewBestEffortPublisher wraps next.
func NewBestEffortPublisher(next port.EventPublisher, logger *zap.Logger) *BestEffortPublisher {
	return &BestEffortPublisher{next: next, logger: logger}
}

// Publish forwards to the wrapped publisher and never fails.
func (p *BestEffortPublisher) Publish(ctx context.Context, events ...event.DomainEvent) error {
	if err := p.next.Publish(ctx, events...); err != nil {
		types := make([]string, 0, len(events))
		for _, evt := range events {
			types = append(types, evt.EventType())
		}
		p.logger.Warn("domain events not delivered",
			zap.Strings("event_types", types),
			zap.Error(err),
		)
	}
	return nil
}

// Recorder receives business counters.
type Recorder interface {
	ContractCreated(ctx context.Context)
	PaymentRegistered(ctx context.Context, medium string, late bool)
}

// MeteredPublisher counts contract and payment events before forwarding them.
type MeteredPublisher struct {
	next     port.EventPublisher
	recorder Recorder
}

// NewMeteredPublisher wraps next.
func NewMeteredPublisher(next port.EventPublisher, recorder Recorder) *MeteredPublisher {
	return &MeteredPublisher{next: next, recorder: recorder}
}

// Publish records counters and forwards to the wrapped publisher.
func (p *MeteredPublisher) Publish(ctx context.Context, events ...event.DomainEvent) error {
	for _, evt := range events {
		switch e := evt.(type) {
		case event.ContractCreated:
			p.recorder.ContractCreated(ctx)
		case event.PaymentRegistered:
			p.recorder.PaymentRegistered(ctx, e.Medium, e.Penalty.IsPositive())
		}
	}
	return p.next.Publish(ctx, events...)
}
