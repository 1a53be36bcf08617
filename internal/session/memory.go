package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Memory is an in-process Store for development and tests. Tokens are
// bare session ids; expiry is checked lazily on access.
type Memory struct {
	mu   sync.Mutex
	ttl  time.Duration
	data map[string]memEntry
}

type memEntry struct {
	sess    Session
	expires time.Time
}

func NewMemory(ttl time.Duration) *Memory {
	return &Memory{ttl: ttl, data: make(map[string]memEntry)}
}

func (m *Memory) Create(_ context.Context, username string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	token := uuid.NewString()
	m.data[token] = memEntry{
		sess:    Session{Username: username, CreatedAt: time.Now().UTC()},
		expires: time.Now().Add(m.ttl),
	}
	return token, nil
}

func (m *Memory) Get(_ context.Context, token string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.data[token]
	if !ok {
		return nil, ErrNotFound
	}
	if time.Now().After(e.expires) {
		delete(m.data, token)
		return nil, ErrNotFound
	}
	e.expires = time.Now().Add(m.ttl)
	m.data[token] = e
	sess := e.sess
	return &sess, nil
}

func (m *Memory) Destroy(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.data[token]; !ok {
		return ErrNotFound
	}
	delete(m.data, token)
	return nil
}

var _ Store = (*Memory)(nil)
