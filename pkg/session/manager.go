package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/rwxproject/agent-toolkit/pkg/llm"
)

// Manager binds conversation histories to a Store. It creates sessions,
// snapshots and restores message logs, and runs a background janitor that
// evicts sessions idle past the TTL.
type Manager struct {
	store  Store
	ttl    time.Duration
	logger zerolog.Logger

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// NewManager wraps a store. The janitor does not run until Start is called.
func NewManager(store Store, ttl time.Duration, logger zerolog.Logger) *Manager {
	return &Manager{
		store:  store,
		ttl:    ttl,
		logger: logger.With().Str("component", "session").Logger(),
	}
}

// Create registers a new empty session. An empty id asks the manager to
// assign one.
func (m *Manager) Create(ctx context.Context, id string) (*Session, error) {
	if id == "" {
		id = uuid.NewString()
	}
	now := time.Now().UTC()
	s := &Session{
		ID:        id,
		Messages:  []llm.Message{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := m.store.Save(ctx, s); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return s, nil
}

// Snapshot persists the given message log under the session ID, stamping
// the idle clock. The creation time of an existing session is preserved.
func (m *Manager) Snapshot(ctx context.Context, id string, messages []llm.Message) error {
	now := time.Now().UTC()
	created := now
	if prev, err := m.store.Load(ctx, id); err == nil {
		created = prev.CreatedAt
	} else if !errors.Is(err, ErrNotFound) {
		return err
	}
	s := &Session{
		ID:        id,
		Messages:  messages,
		CreatedAt: created,
		UpdatedAt: now,
	}
	return m.store.Save(ctx, s)
}

// Restore loads the session and replaces the history's contents with it.
func (m *Manager) Restore(ctx context.Context, id string, h *llm.History) error {
	s, err := m.store.Load(ctx, id)
	if err != nil {
		return err
	}
	h.Replace(s.Messages)
	return nil
}

// Get loads one session.
func (m *Manager) Get(ctx context.Context, id string) (*Session, error) {
	return m.store.Load(ctx, id)
}

// Delete removes one session.
func (m *Manager) Delete(ctx context.Context, id string) error {
	return m.store.Delete(ctx, id)
}

// List returns all stored session IDs.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}

// Start launches the janitor goroutine. The first sweep runs immediately,
// then once per interval. A non-positive interval falls back to one minute.
func (m *Manager) Start(interval time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.running {
		return
	}
	if interval <= 0 {
		interval = time.Minute
	}
	m.running = true
	m.stopCh = make(chan struct{})
	m.doneCh = make(chan struct{})

	m.logger.Info().
		Dur("interval", interval).
		Dur("ttl", m.ttl).
		Msg("Session janitor started")

	go func(stopCh, doneCh chan struct{}) {
		defer close(doneCh)
		m.evictIdle()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				m.evictIdle()
			case <-stopCh:
				return
			}
		}
	}(m.stopCh, m.doneCh)
}

// Close stops the janitor if it is running and closes the store.
func (m *Manager) Close() error {
	m.mu.Lock()
	if m.running {
		close(m.stopCh)
		<-m.doneCh
		m.running = false
	}
	m.mu.Unlock()
	return m.store.Close()
}

// evictIdle deletes every session whose last update is older than the TTL.
func (m *Manager) evictIdle() {
	ctx := context.Background()
	ids, err := m.store.List(ctx)
	if err != nil {
		m.logger.Warn().Err(err).Msg("⚠️ Session sweep failed to list sessions")
		return
	}

	now := time.Now().UTC()
	evicted := 0
	for _, id := range ids {
		s, err := m.store.Load(ctx, id)
		if err != nil {
			if !errors.Is(err, ErrNotFound) {
				m.logger.Warn().Err(err).Str("session_id", id).Msg("⚠️ Session sweep failed to load session")
			}
			continue
		}
		if now.Sub(s.UpdatedAt) <= m.ttl {
			continue
		}
		if err := m.store.Delete(ctx, id); err != nil {
			m.logger.Warn().Err(err).Str("session_id", id).Msg("⚠️ Session sweep failed to delete session")
			continue
		}
		evicted++
	}
	if evicted > 0 {
		m.logger.Info().Int("evicted", evicted).Msg("Idle sessions evicted")
	}
}
