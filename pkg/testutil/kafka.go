package testutil

import (
	"context"
	"testing"
	"time"

	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"

	"github.com/prestamos/loan-service/pkg/kafka"
)

// KafkaContainer is a single-node broker for event round-trip tests.
type KafkaContainer struct {
	Container *tckafka.KafkaContainer
	Brokers   []string
}

// NewKafkaContainer starts a KRaft broker. Topics are auto-created on first
// write. The caller should defer container.Cleanup(t).
func NewKafkaContainer(ctx context.Context, t *testing.T) *KafkaContainer {
	t.Helper()

	c, err := tckafka.Run(ctx, "confluentinc/confluent-local:7.6.1", tckafka.WithClusterID("loans-test"))
	if err != nil {
		t.Fatalf("start kafka container: %v", err)
	}
	brokers, err := c.Brokers(ctx)
	if err != nil {
		_ = c.Terminate(ctx)
		t.Fatalf("resolve kafka brokers: %v", err)
	}
	return &KafkaContainer{Container: c, Brokers: brokers}
}

// ClientConfig returns a plaintext client config for the broker.
func (kc *KafkaContainer) ClientConfig(group string) kafka.Config {
	return kafka.Config{Brokers: kc.Brokers, ConsumerGroup: group}
}

// Cleanup terminates the container.
func (kc *KafkaContainer) Cleanup(t *testing.T) {
	t.Helper()
	if kc.Container == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := kc.Container.Terminate(ctx); err != nil {
		t.Logf("terminate kafka container: %v", err)
	}
}
