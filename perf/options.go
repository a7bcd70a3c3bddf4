package perf

import (
	goGuard "github.com/MrEthical07/goGuard"
	"github.com/MrEthical07/goGuard/clock"
	"go.uber.org/zap"
)

const defaultMaxEntries = 100

type config struct {
	logger     *zap.Logger
	clock      clock.Clock
	metrics    *goGuard.Metrics
	maxEntries int
	loader     ImageLoader
}

// Option configures a helper.
type Option func(*config)

// WithLogger sets where caught faults and timings are logged.
func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithClock sets the time source and scheduler.
func WithClock(clk clock.Clock) Option {
	return func(c *config) {
		if clk != nil {
			c.clock = clk
		}
	}
}

// WithMetrics records helper activity into m.
func WithMetrics(m *goGuard.Metrics) Option {
	return func(c *config) {
		c.metrics = m
	}
}

// WithMaxEntries bounds a memo cache. Non-positive values are ignored.
func WithMaxEntries(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxEntries = n
		}
	}
}

// WithImageLoader replaces the HTTP image loader used by LazyLoadImage.
func WithImageLoader(loader ImageLoader) Option {
	return func(c *config) {
		if loader != nil {
			c.loader = loader
		}
	}
}

// WithEngine shares the engine's logger, clock, metrics and memo bound.
func WithEngine(engine *goGuard.Engine) Option {
	return func(c *config) {
		if engine == nil {
			return
		}
		c.logger = engine.Logger().Named("perf")
		c.clock = engine.Clock()
		c.metrics = engine.Metrics()
		if n := engine.Config().Memo.MaxEntries; n > 0 {
			c.maxEntries = n
		}
	}
}

func newConfig(opts []Option) config {
	c := config{
		logger:     zap.NewNop(),
		clock:      clock.Real{},
		maxEntries: defaultMaxEntries,
		loader:     HTTPImageLoader{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&c)
		}
	}
	return c
}
