package goGuard

import (
	"context"
	"testing"
	"time"

	"github.com/MrEthical07/goGuard/clock"
	"github.com/MrEthical07/goGuard/storage"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

var testEpoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func newTestRedis(t testing.TB) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis.Run failed: %v", err)
	}
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = rdb.Close()
		mr.Close()
	})

	return mr, rdb
}

func newObservedLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	return zap.New(core), logs
}

type failingStore struct {
	err error
}

func (s failingStore) Get(context.Context, string) (string, error) { return "", s.err }

type panickingStore struct{}

func (panickingStore) Get(context.Context, string) (string, error) { panic("store exploded") }

func buildTestEngine(t *testing.T, cfg Config, store storage.Store, logger *zap.Logger, sink AuditSink) *Engine {
	t.Helper()

	b := New().
		WithConfig(cfg).
		WithStore(store).
		WithClock(clock.NewMock(testEpoch))
	if logger != nil {
		b.WithLogger(logger)
	}
	if sink != nil {
		b.WithAuditSink(sink)
	}

	engine, err := b.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	t.Cleanup(engine.Close)

	return engine
}
