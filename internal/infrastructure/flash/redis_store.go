package flash

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "loans:flash:"

// RedisStore keeps flash messages in Redis with a TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore wraps client. A non-positive ttl uses DefaultTTL.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{client: client, ttl: ttl}
}

// Put stores msg, replacing any unread message for the session.
func (s *RedisStore) Put(ctx context.Context, sessionID string, msg Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("flash: marshal message: %w", err)
	}
	if err := s.client.Set(ctx, keyPrefix+sessionID, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("flash: set: %w", err)
	}
	return nil
}

// Pop reads and deletes the pending message atomically.
func (s *RedisStore) Pop(ctx context.Context, sessionID string) (Message, bool, error) {
	data, err := s.client.GetDel(ctx, keyPrefix+sessionID).Bytes()
	if errors.Is(err, redis.Nil) {
		return Message{}, false, nil
	}
	if err != nil {
		return Message{}, false, fmt.Errorf("flash: getdel: %w", err)
	}

	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return Message{}, false, fmt.Errorf("flash: unmarshal message: %w", err)
	}
	return msg, true, nil
}
