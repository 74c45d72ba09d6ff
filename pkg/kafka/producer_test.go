package kafka

import (
	"testing"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProducer(t *testing.T) {
	t.Run("plain brokers", func(t *testing.T) {
		p, err := NewProducer(Config{Brokers: []string{"localhost:9092", "localhost:9093"}})

		require.NoError(t, err)
		assert.Equal(t, []string{"localhost:9092", "localhost:9093"}, p.brokers)
		assert.Empty(t, p.writers)
		assert.Nil(t, p.transport)
	})

	t.Run("tls and sasl build a transport", func(t *testing.T) {
		p, err := NewProducer(Config{
			Brokers:       []string{"kafka:9093"},
			TLS:           true,
			SASLEnabled:   true,
			SASLMechanism: "SCRAM-SHA-512",
			SASLUsername:  "loans",
			SASLPassword:  "secret",
		})

		require.NoError(t, err)
		require.NotNil(t, p.transport)
		assert.NotNil(t, p.transport.TLS)
		assert.Equal(t, "SCRAM-SHA-512", p.transport.SASL.Name())
	})

	t.Run("unknown mechanism", func(t *testing.T) {
		_, err := NewProducer(Config{SASLEnabled: true, SASLMechanism: "GSSAPI"})
		assert.ErrorContains(t, err, "unsupported SASL mechanism")
	})
}

func TestWriterIsCachedPerTopic(t *testing.T) {
	p, err := NewProducer(Config{Brokers: []string{"kafka:9092"}})
	require.NoError(t, err)

	w1 := p.getOrCreateWriter("loans.events")
	w2 := p.getOrCreateWriter("loans.events")
	w3 := p.getOrCreateWriter("loans.audit")

	assert.Same(t, w1, w2)
	assert.NotSame(t, w1, w3)
	assert.Len(t, p.writers, 2)
	require.NoError(t, p.Close())
	assert.Empty(t, p.writers)
}

func TestToMessage(t *testing.T) {
	msg := toMessage(kafkago.Message{
		Key:   []byte("con-1"),
		Value: []byte(`{"term_count":12}`),
		Headers: []kafkago.Header{
			{Key: "event_type", Value: []byte("loans.contract.created")},
		},
	})

	assert.Equal(t, "con-1", string(msg.Key))
	assert.Equal(t, "loans.contract.created", msg.Headers["event_type"])
}
