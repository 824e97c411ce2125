package session

import (
	"context"
	"sync"
	"time"
)

type memEntry struct {
	userID    string
	expiresAt time.Time
}

// MemoryStore keeps sessions in-process. Used when no REDIS_ADDR is
// configured and in tests; records vanish on restart.
type MemoryStore struct {
	mu sync.Mutex
	m  map[string]memEntry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{m: make(map[string]memEntry)}
}

func (s *MemoryStore) Save(ctx context.Context, token, userID string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[token] = memEntry{userID: userID, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.m[token]
	if !ok {
		return "", ErrNotFound
	}
	if time.Now().After(e.expiresAt) {
		delete(s.m, token)
		return "", ErrNotFound
	}
	return e.userID, nil
}

func (s *MemoryStore) Delete(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, token)
	return nil
}
