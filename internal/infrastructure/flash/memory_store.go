package flash

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	msg     Message
	expires time.Time
}

// MemoryStore keeps flash messages in process. It is used when no Redis
// address is configured and in tests.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryStore creates an empty store. A non-positive ttl uses DefaultTTL.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Put stores msg, replacing any unread message for the session. Expired
// entries are swept on every write.
func (s *MemoryStore) Put(_ context.Context, sessionID string, msg Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for id, e := range s.entries {
		if now.After(e.expires) {
			delete(s.entries, id)
		}
	}
	s.entries[sessionID] = entry{msg: msg, expires: now.Add(s.ttl)}
	return nil
}

// Pop returns and removes the pending message.
func (s *MemoryStore) Pop(_ context.Context, sessionID string) (Message, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[sessionID]
	if !ok {
		return Message{}, false, nil
	}
	delete(s.entries, sessionID)
	if s.now().After(e.expires) {
		return Message{}, false, nil
	}
	return e.msg, true, nil
}
