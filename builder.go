package goGuard

import (
	"fmt"

	"github.com/MrEthical07/goGuard/clock"
	"github.com/MrEthical07/goGuard/storage"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Builder assembles an Engine. A Builder produces exactly one Engine.
type Builder struct {
	config Config
	redis  redis.UniversalClient
	store  storage.Store

	logger    *zap.Logger
	auditSink AuditSink
	clock     clock.Clock

	built bool
}

// New returns a Builder seeded with DefaultConfig.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig replaces the whole configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cfg
	return b
}

// WithRedis makes the engine read tokens from Redis under
// Guard.RedisPrefix. WithStore takes precedence when both are set.
func (b *Builder) WithRedis(client redis.UniversalClient) *Builder {
	b.redis = client
	return b
}

// WithStore sets the store Check reads tokens from.
func (b *Builder) WithStore(store storage.Store) *Builder {
	b.store = store
	return b
}

// WithLogger sets the engine logger. Without one the engine logs nothing.
func (b *Builder) WithLogger(logger *zap.Logger) *Builder {
	b.logger = logger
	return b
}

// WithAuditSink sets the sink audit events are delivered to. It only takes
// effect when Audit.Enabled is set.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	return b
}

// WithClock overrides the time source, mainly for tests.
func (b *Builder) WithClock(c clock.Clock) *Builder {
	b.clock = c
	return b
}

func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

func (b *Builder) WithLatencyHistograms(enabled bool) *Builder {
	b.config.Metrics.EnableLatencyHistograms = enabled
	return b
}

// Build validates the configuration and wires the Engine.
func (b *Builder) Build() (*Engine, error) {
	if b.built {
		return nil, ErrBuilderUsed
	}

	cfg := b.config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	store := b.store
	if store == nil {
		if b.redis == nil {
			return nil, ErrStoreRequired
		}
		store = storage.NewRedis(b.redis, cfg.Guard.RedisPrefix, cfg.Guard.TokenTTL)
	}

	logger := b.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	engine := &Engine{
		config:  cfg,
		store:   store,
		metrics: NewMetrics(cfg.Metrics),
		logger:  logger.Named("goguard"),
		clock:   clock.OrReal(b.clock),
	}
	engine.audit = newAuditDispatcher(cfg.Audit, b.auditSink, engine.logger)

	b.built = true

	return engine, nil
}
