package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rwxproject/agent-toolkit/pkg/config"
	"github.com/rwxproject/agent-toolkit/pkg/llm"
)

// ErrNotFound is returned when a session ID is not present in the store.
var ErrNotFound = errors.New("session not found")

// Session is a persisted conversation: the ordered message log plus the
// bookkeeping the idle janitor needs.
type Session struct {
	ID        string        `json:"id"`
	Messages  []llm.Message `json:"messages"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// Clone returns a deep copy so callers and stores never share the
// messages slice.
func (s *Session) Clone() *Session {
	cp := *s
	cp.Messages = make([]llm.Message, len(s.Messages))
	copy(cp.Messages, s.Messages)
	return &cp
}

// Store persists sessions. Implementations must be safe for concurrent use.
type Store interface {
	// Save inserts or updates the session.
	Save(ctx context.Context, s *Session) error
	// Load returns the session or ErrNotFound.
	Load(ctx context.Context, id string) (*Session, error)
	// Delete removes the session. Deleting an absent ID is not an error.
	Delete(ctx context.Context, id string) error
	// List returns all stored session IDs.
	List(ctx context.Context) ([]string, error)
	// Close releases backend resources.
	Close() error
}

// NewStore builds the persistence backend selected by the configuration.
func NewStore(cfg config.SessionConfig) (Store, error) {
	switch cfg.Store {
	case "memory":
		return NewMemoryStore(), nil
	case "file":
		return NewFileStore(cfg.Dir)
	case "sqlite":
		return NewSQLiteStore(cfg.DBPath)
	default:
		return nil, fmt.Errorf("unknown session store %q (supported: memory, file, sqlite)", cfg.Store)
	}
}
