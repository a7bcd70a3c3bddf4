package storage

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryScopesByClient(t *testing.T) {
	m := NewMemory()
	alice := WithClientID(context.Background(), "alice")
	bob := WithClientID(context.Background(), "bob")

	if err := m.Set(alice, "token", "abc"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, err := m.Get(alice, "token")
	if err != nil || got != "abc" {
		t.Fatalf("expected abc, got %q err=%v", got, err)
	}
	if _, err := m.Get(bob, "token"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for other client, got %v", err)
	}
	if _, err := m.Get(context.Background(), "token"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound without client scope, got %v", err)
	}
}

func TestMemoryRemove(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	if err := m.Remove(ctx, "missing"); err != nil {
		t.Fatalf("Remove of missing key should be a no-op, got %v", err)
	}
	if err := m.Set(ctx, "token", "abc"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := m.Remove(ctx, "token"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if _, err := m.Get(ctx, "token"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after Remove, got %v", err)
	}
}

func TestMemoryRejectsEmptyKey(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	if _, err := m.Get(ctx, ""); !errors.Is(err, ErrEmptyKey) {
		t.Fatalf("Get: expected ErrEmptyKey, got %v", err)
	}
	if err := m.Set(ctx, "", "v"); !errors.Is(err, ErrEmptyKey) {
		t.Fatalf("Set: expected ErrEmptyKey, got %v", err)
	}
	if err := m.Remove(ctx, ""); !errors.Is(err, ErrEmptyKey) {
		t.Fatalf("Remove: expected ErrEmptyKey, got %v", err)
	}
}

func TestEmptyGetter(t *testing.T) {
	if _, err := (Empty{}).Get(context.Background(), "token"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestClientIDFromNilContext(t *testing.T) {
	//nolint:staticcheck // nil context is part of the contract
	if _, ok := ClientIDFromContext(nil); ok {
		t.Fatal("expected no client id for nil context")
	}
}
