// Package history keeps the last few generated passwords per session,
// newest first. It is owned by the API layer; the evaluator never sees it.
package history

import (
	"context"
	"errors"
	"sync"
	"time"
)

const DefaultSize = 5

var ErrNoSession = errors.New("history: empty session key")

type Store interface {
	Push(ctx context.Context, session, pwd string) error
	List(ctx context.Context, session string) ([]string, error)
	Clear(ctx context.Context, session string) error
}

// MemoryStore is an in-process Store used when Redis is not configured.
type MemoryStore struct {
	mu      sync.Mutex
	size    int
	ttl     time.Duration
	now     func() time.Time
	entries map[string]*memEntry
}

type memEntry struct {
	items   []string
	expires time.Time
}

// NewMemoryStore keeps up to size items per session for ttl after the last push.
// ttl <= 0 disables expiry.
func NewMemoryStore(size int, ttl time.Duration) *MemoryStore {
	if size <= 0 {
		size = DefaultSize
	}
	return &MemoryStore{
		size:    size,
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]*memEntry),
	}
}

func (m *MemoryStore) Push(_ context.Context, session, pwd string) error {
	if session == "" {
		return ErrNoSession
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	e := m.live(session)
	if e == nil {
		e = &memEntry{}
		m.entries[session] = e
	}
	e.items = append([]string{pwd}, e.items...)
	if len(e.items) > m.size {
		e.items = e.items[:m.size]
	}
	if m.ttl > 0 {
		e.expires = m.now().Add(m.ttl)
	}
	return nil
}

func (m *MemoryStore) List(_ context.Context, session string) ([]string, error) {
	if session == "" {
		return nil, ErrNoSession
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	e := m.live(session)
	if e == nil {
		return []string{}, nil
	}
	out := make([]string, len(e.items))
	copy(out, e.items)
	return out, nil
}

func (m *MemoryStore) Clear(_ context.Context, session string) error {
	if session == "" {
		return ErrNoSession
	}
	m.mu.Lock()
	delete(m.entries, session)
	m.mu.Unlock()
	return nil
}

// live returns the entry for session, dropping it if expired. Caller holds mu.
func (m *MemoryStore) live(session string) *memEntry {
	e, ok := m.entries[session]
	if !ok {
		return nil
	}
	if !e.expires.IsZero() && !m.now().Before(e.expires) {
		delete(m.entries, session)
		return nil
	}
	return e
}
