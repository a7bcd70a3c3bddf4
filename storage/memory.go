package storage

import (
	"context"
	"sync"
)

// Memory is an in-process Store. Values are partitioned by the client id in
// the context; operations without one share a single unscoped partition.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]map[string]string
}

// NewMemory returns an empty Memory store.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string]map[string]string)}
}

func (m *Memory) Get(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", ErrEmptyKey
	}
	client, _ := ClientIDFromContext(ctx)

	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.entries[client][key]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

func (m *Memory) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}
	client, _ := ClientIDFromContext(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()

	bucket, ok := m.entries[client]
	if !ok {
		bucket = make(map[string]string)
		m.entries[client] = bucket
	}
	bucket[key] = value
	return nil
}

func (m *Memory) Remove(ctx context.Context, key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	client, _ := ClientIDFromContext(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()

	bucket, ok := m.entries[client]
	if !ok {
		return nil
	}
	delete(bucket, key)
	if len(bucket) == 0 {
		delete(m.entries, client)
	}
	return nil
}
