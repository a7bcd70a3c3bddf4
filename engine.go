package goGuard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MrEthical07/goGuard/clock"
	"github.com/MrEthical07/goGuard/storage"
	"go.uber.org/zap"
)

// Engine evaluates the route guard and owns the ambient infrastructure
// (metrics, audit, logger, clock) shared with the perf helpers.
//
// Engine methods are safe for concurrent use after Build.
type Engine struct {
	config  Config
	store   storage.Store
	audit   *auditDispatcher
	metrics *Metrics
	logger  *zap.Logger
	clock   clock.Clock
}

// Decision is the outcome of one guard evaluation.
type Decision struct {
	// Allowed is true when a non-empty token was found.
	Allowed bool
	// RedirectTo is the login path; set only when Allowed is false.
	RedirectTo string
	// Token is the token that was found; set only when Allowed is true.
	Token string
}

// Evaluate reads the auth token from store and decides whether the request
// may proceed. A missing, empty or unreadable token yields a redirect to the
// configured login path; store failures are logged and counted but never
// returned.
func (e *Engine) Evaluate(ctx context.Context, store storage.Getter) Decision {
	if e == nil {
		return Decision{RedirectTo: defaultConfig().Guard.LoginPath}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	start := e.clock.Now()
	token := e.readToken(ctx, store)

	var d Decision
	if token != "" {
		d = Decision{Allowed: true, Token: token}
		e.metricInc(MetricGuardAllowed)
		e.emitAudit(ctx, auditEventGuardAllow, true, nil, nil)
	} else {
		d = Decision{RedirectTo: e.config.Guard.LoginPath}
		e.metricInc(MetricGuardRedirected)
		e.emitAudit(ctx, auditEventGuardRedirect, false, nil, func() map[string]string {
			return map[string]string{"redirect_to": d.RedirectTo}
		})
	}

	e.metrics.Observe(MetricGuardLatency, e.clock.Since(start))
	return d
}

// Check evaluates the guard against the engine's own store. The client scope
// is taken from ctx (see storage.WithClientID).
func (e *Engine) Check(ctx context.Context) Decision {
	if e == nil {
		return e.Evaluate(ctx, nil)
	}
	return e.Evaluate(ctx, e.store)
}

func (e *Engine) readToken(ctx context.Context, store storage.Getter) (token string) {
	if store == nil {
		return ""
	}

	defer func() {
		if r := recover(); r != nil {
			e.storeFailure(ctx, fmt.Errorf("%w: panic: %v", storage.ErrUnavailable, r))
			token = ""
		}
	}()

	token, err := store.Get(ctx, e.config.Guard.TokenKey)
	if err == nil {
		return token
	}
	if !errors.Is(err, storage.ErrNotFound) {
		e.storeFailure(ctx, err)
	}
	return ""
}

func (e *Engine) storeFailure(ctx context.Context, err error) {
	clientID, _ := storage.ClientIDFromContext(ctx)
	e.metricInc(MetricGuardStoreFailure)
	e.logger.Warn("token read failed, treating as absent",
		zap.String("client_id", clientID),
		zap.Error(err),
	)
	e.emitAudit(ctx, auditEventGuardStoreFailure, false, err, nil)
}

// Store returns the store Check reads from.
func (e *Engine) Store() storage.Store {
	if e == nil {
		return nil
	}
	return e.store
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() Config {
	if e == nil {
		return defaultConfig()
	}
	return e.config
}

// Logger returns the engine logger; never nil.
func (e *Engine) Logger() *zap.Logger {
	if e == nil || e.logger == nil {
		return zap.NewNop()
	}
	return e.logger
}

// Metrics returns the engine metrics, which may be disabled.
func (e *Engine) Metrics() *Metrics {
	if e == nil {
		return nil
	}
	return e.metrics
}

// Clock returns the engine clock.
func (e *Engine) Clock() clock.Clock {
	if e == nil {
		return clock.Real{}
	}
	return e.clock
}

// Close flushes pending audit events. It is safe to call more than once.
func (e *Engine) Close() {
	if e == nil {
		return
	}
	if e.audit != nil {
		e.audit.Close()
	}
	_ = e.logger.Sync()
}

// AuditDropped reports audit events lost to backpressure.
func (e *Engine) AuditDropped() uint64 {
	if e == nil || e.audit == nil {
		return 0
	}
	return e.audit.Dropped()
}

// MetricsSnapshot returns the current metric values.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	if e == nil || e.metrics == nil {
		return MetricsSnapshot{
			Counters:      map[MetricID]uint64{},
			Histograms:    map[MetricID][]uint64{},
			HistogramSums: map[MetricID]time.Duration{},
		}
	}
	return e.metrics.Snapshot()
}

func (e *Engine) metricInc(id MetricID) {
	if e == nil || e.metrics == nil {
		return
	}
	e.metrics.Inc(id)
}
