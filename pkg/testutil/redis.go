package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// RedisContainer wraps a generic testcontainers Redis instance.
type RedisContainer struct {
	Container testcontainers.Container
	Addr      string
}

// NewRedisContainer starts a Redis container for testing.
// The caller should defer container.Cleanup(t).
func NewRedisContainer(ctx context.Context, t *testing.T) *RedisContainer {
	t.Helper()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor: wait.ForLog("Ready to accept connections").
				WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("failed to start redis container: %v", err)
	}

	addr, err := container.Endpoint(ctx, "")
	if err != nil {
		t.Fatalf("failed to get redis endpoint: %v", err)
	}

	return &RedisContainer{Container: container, Addr: addr}
}

// Cleanup terminates the container.
func (rc *RedisContainer) Cleanup(t *testing.T) {
	t.Helper()

	if rc.Container != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := rc.Container.Terminate(ctx); err != nil {
			t.Logf("warning: failed to terminate redis container: %v", err)
		}
	}
}
