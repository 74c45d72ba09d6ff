package kafka_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/prestamos/loan-service/internal/domain/event"
	"github.com/prestamos/loan-service/internal/infrastructure/kafka"
	pkgkafka "github.com/prestamos/loan-service/pkg/kafka"
)

type recordingProducer struct {
	topic    string
	messages []pkgkafka.Message
	err      error
}

func (r *recordingProducer) Publish(_ context.Context, topic string, messages ...pkgkafka.Message) error {
	r.topic = topic
	r.messages = append(r.messages, messages...)
	return r.err
}

func TestKafkaEventPublisher(t *testing.T) {
	at := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("keys by aggregate and sets headers", func(t *testing.T) {
		producer := &recordingProducer{}
		pub := kafka.NewKafkaEventPublisher(producer, "loans.events", zap.NewNop())
		evt := event.NewPaymentRegistered("inst-1", "con-1", 3,
			decimal.NewFromInt(100), decimal.NewFromInt(10), "CASH", at.AddDate(0, 0, -2), at)

		require.NoError(t, pub.Publish(context.Background(), evt))

		require.Len(t, producer.messages, 1)
		msg := producer.messages[0]
		assert.Equal(t, "loans.events", producer.topic)
		assert.Equal(t, "inst-1", string(msg.Key))
		assert.Equal(t, event.TypePaymentRegistered, msg.Headers["event_type"])
		assert.Equal(t, evt.EventID(), msg.Headers["event_id"])

		var body map[string]any
		require.NoError(t, json.Unmarshal(msg.Value, &body))
		assert.Equal(t, "con-1", body["contract_id"])
		assert.Equal(t, "10", body["penalty"])
	})

	t.Run("no events sends nothing", func(t *testing.T) {
		producer := &recordingProducer{}
		pub := kafka.NewKafkaEventPublisher(producer, "loans.events", zap.NewNop())

		require.NoError(t, pub.Publish(context.Background()))
		assert.Empty(t, producer.topic)
	})

	t.Run("producer failure is returned", func(t *testing.T) {
		producer := &recordingProducer{err: errors.New("broker down")}
		pub := kafka.NewKafkaEventPublisher(producer, "loans.events", zap.NewNop())

		err := pub.Publish(context.Background(), event.NewContractFinalized("con-1", "ben-1", at))
		assert.ErrorContains(t, err, "broker down")
	})
}
