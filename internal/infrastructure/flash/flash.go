// Package flash keeps one-shot UI messages between a form post and the page
// that follows its redirect.
package flash

import (
	"context"
	"time"
)

// Level of a flash message.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Message is shown once on the next page render.
type Message struct {
	Level Level  `json:"level"`
	Text  string `json:"text"`
}

// Store is a short-lived key-value store for flash messages keyed by
// session id. Pop returns false when nothing is pending.
type Store interface {
	Put(ctx context.Context, sessionID string, msg Message) error
	Pop(ctx context.Context, sessionID string) (Message, bool, error)
}

// DefaultTTL bounds how long an unread message is kept.
const DefaultTTL = 5 * time.Minute
