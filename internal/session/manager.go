// Package session issues and resolves opaque browser session tokens.
// A token maps to a single user id held server-side; the browser only
// ever sees the token.
package session

import (
	"context"
	"fmt"
	"time"
)

type Manager struct {
	store Store
	ttl   time.Duration
}

func NewManager(store Store, ttl time.Duration) *Manager {
	return &Manager{store: store, ttl: ttl}
}

func (m *Manager) TTL() time.Duration { return m.ttl }

// Establish mints a fresh token bound to userID.
func (m *Manager) Establish(ctx context.Context, userID string) (string, error) {
	token, err := NewToken()
	if err != nil {
		return "", err
	}
	if err := m.store.Save(ctx, token, userID, m.ttl); err != nil {
		return "", fmt.Errorf("save session: %w", err)
	}
	return token, nil
}

// Resolve returns the user id bound to token. Any failure, including a
// store error, means the request is unauthenticated; callers must not
// fall back to a default identity.
func (m *Manager) Resolve(ctx context.Context, token string) (string, error) {
	return m.store.Get(ctx, token)
}

func (m *Manager) Destroy(ctx context.Context, token string) error {
	return m.store.Delete(ctx, token)
}
