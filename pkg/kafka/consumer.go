package kafka

import (
	"context"
	"errors"
	"fmt"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Handler processes a consumed Kafka message.
type Handler func(ctx context.Context, msg Message) error

// Consumer wraps kafka-go reader for consuming messages.
type Consumer struct {
	reader  *kafkago.Reader
	handler Handler
	logger  *zap.Logger
}

// NewConsumer creates a new Consumer for the given topic with the provided handler.
func NewConsumer(cfg Config, topic string, handler Handler, logger *zap.Logger) (*Consumer, error) {
	readerCfg := kafkago.ReaderConfig{
		Brokers:  cfg.Brokers,
		Topic:    topic,
		GroupID:  cfg.ConsumerGroup,
		MinBytes: 1,
		MaxBytes: 10 * 1024 * 1024, // 10 MB
	}

	mechanism, err := cfg.saslMechanism()
	if err != nil {
		return nil, err
	}
	if cfg.TLS || mechanism != nil {
		readerCfg.Dialer = &kafkago.Dialer{
			TLS:           cfg.tlsConfig(),
			SASLMechanism: mechanism,
			DualStack:     true,
		}
	}

	return &Consumer{
		reader:  kafkago.NewReader(readerCfg),
		handler: handler,
		logger:  logger,
	}, nil
}

// Start begins consuming messages. Blocks until the context is canceled.
// A handler error is logged and the message is left uncommitted.
func (c *Consumer) Start(ctx context.Context) error {
	c.logger.Info("consumer starting",
		zap.String("topic", c.reader.Config().Topic),
		zap.String("group", c.reader.Config().GroupID),
	)

	for {
		m, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				c.logger.Info("consumer stopping due to context cancellation")
				return nil
			}
			return fmt.Errorf("fetching message: %w", err)
		}

		if err := c.handler(ctx, toMessage(m)); err != nil {
			c.logger.Error("handler error",
				zap.String("topic", m.Topic),
				zap.Int("partition", m.Partition),
				zap.Int64("offset", m.Offset),
				zap.Error(err),
			)
			continue
		}

		if err := c.reader.CommitMessages(ctx, m); err != nil {
			c.logger.Error("commit error",
				zap.String("topic", m.Topic),
				zap.Int("partition", m.Partition),
				zap.Int64("offset", m.Offset),
				zap.Error(err),
			)
		}
	}
}

// Close closes the reader.
func (c *Consumer) Close() error {
	if err := c.reader.Close(); err != nil {
		return fmt.Errorf("closing kafka reader: %w", err)
	}
	return nil
}

func toMessage(m kafkago.Message) Message {
	msg := Message{
		Key:     m.Key,
		Value:   m.Value,
		Headers: make(map[string]string, len(m.Headers)),
	}
	for _, h := range m.Headers {
		msg.Headers[h.Key] = string(h.Value)
	}
	return msg
}
