package queue

import (
	"context"
)

// Publisher emits auth lifecycle events to the message broker.
type Publisher interface {
	Publish(ctx context.Context, exchange, key string, event any, reqID string) error
	Close() error
}

type NoopPub struct{}

// NewNoop returns a publisher that drops everything; used when RABBIT_URL
// is not configured.
func NewNoop() Publisher { return NoopPub{} }

func (NoopPub) Publish(ctx context.Context, exchange, key string, event any, reqID string) error {
	return nil
}
func (NoopPub) Close() error { return nil }
