package storage

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned by Get when the key holds no value.
	ErrNotFound = errors.New("storage: key not found")
	// ErrUnavailable wraps backend failures.
	ErrUnavailable = errors.New("storage: backend unavailable")
	// ErrReadOnly is returned by writes on a store bound without a writer.
	ErrReadOnly = errors.New("storage: store is read-only")
	// ErrEmptyKey is returned for an empty key.
	ErrEmptyKey = errors.New("storage: empty key")
	// ErrInvalidValue is returned when a value cannot be carried by the
	// backend unchanged.
	ErrInvalidValue = errors.New("storage: invalid value")
)

// Getter is the read side of a Store.
type Getter interface {
	Get(ctx context.Context, key string) (string, error)
}

// Store is a string key-value store.
type Store interface {
	Getter
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// Empty is a Getter that never holds a value.
type Empty struct{}

func (Empty) Get(context.Context, string) (string, error) { return "", ErrNotFound }

type clientIDContextKey struct{}

// WithClientID scopes store operations performed with ctx to one client.
func WithClientID(ctx context.Context, clientID string) context.Context {
	return context.WithValue(ctx, clientIDContextKey{}, clientID)
}

// ClientIDFromContext returns the client scope attached to ctx, if any.
func ClientIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	id, _ := ctx.Value(clientIDContextKey{}).(string)
	return id, id != ""
}
