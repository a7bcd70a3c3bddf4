package goGuard

import (
	"errors"
	"net/http"
	"strings"
	"time"
)

// Config holds every tunable of an Engine.
//
// Config values are copied into the Engine at Build time and treated as
// immutable afterwards.
type Config struct {
	Guard   GuardConfig
	Memo    MemoConfig
	Audit   AuditConfig
	Metrics MetricsConfig
	Logging LoggingConfig
}

/*
====================================
GUARD CONFIG
====================================
*/

// GuardConfig controls how the route guard locates the token and where it
// sends unauthenticated clients.
type GuardConfig struct {
	// TokenKey is the store key holding the auth token.
	TokenKey string
	// LoginPath is the redirect target for clients without a token.
	LoginPath string
	// RedirectStatus is the HTTP status used for the redirect (3xx).
	RedirectStatus int
	// ClientCookie names the cookie carrying the client id that scopes
	// store reads.
	ClientCookie string
	// RedisPrefix namespaces keys when the store is Redis backed.
	RedisPrefix string
	// TokenTTL bounds how long a stored token lives in Redis; zero keeps it
	// until removed.
	TokenTTL time.Duration
}

/*
====================================
MEMO CONFIG
====================================
*/

// MemoConfig bounds memoization caches created through the engine.
type MemoConfig struct {
	MaxEntries int
}

/*
====================================
AUDIT CONFIG
====================================
*/

// AuditConfig controls the asynchronous audit dispatcher.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

/*
====================================
METRICS CONFIG
====================================
*/

// MetricsConfig toggles counters and latency histograms.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

/*
====================================
LOGGING CONFIG
====================================
*/

// LoggingConfig describes the zap logger built by NewLogger.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string
	// Format is json or console.
	Format string
	// Output is stdout, stderr or a file path.
	Output      string
	Development bool
}

// DefaultConfig returns the configuration used when none is supplied.
func DefaultConfig() Config {
	return defaultConfig()
}

func defaultConfig() Config {
	return Config{
		Guard: GuardConfig{
			TokenKey:       "token",
			LoginPath:      "/login",
			RedirectStatus: http.StatusFound,
			ClientCookie:   "client_id",
			RedisPrefix:    "gg",
		},
		Memo: MemoConfig{
			MaxEntries: 100,
		},
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 1024,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled:                 true,
			EnableLatencyHistograms: false,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
	}
}

/*
====================================
VALIDATION
====================================
*/

// Validate reports the first invalid setting in c.
func (c *Config) Validate() error {
	// Guard
	if c.Guard.TokenKey == "" {
		return errors.New("Guard TokenKey must not be empty")
	}
	if !strings.HasPrefix(c.Guard.LoginPath, "/") {
		return errors.New("Guard LoginPath must be an absolute path")
	}
	if c.Guard.RedirectStatus < 300 || c.Guard.RedirectStatus > 399 {
		return errors.New("Guard RedirectStatus must be a 3xx status")
	}
	if c.Guard.ClientCookie == "" {
		return errors.New("Guard ClientCookie must not be empty")
	}
	if c.Guard.TokenTTL < 0 {
		return errors.New("Guard TokenTTL must be >= 0")
	}

	// Memo
	if c.Memo.MaxEntries <= 0 {
		return errors.New("Memo MaxEntries must be > 0")
	}

	// Audit
	if c.Audit.Enabled && c.Audit.BufferSize <= 0 {
		return errors.New("Audit BufferSize must be > 0 when audit is enabled")
	}

	// Metrics
	if c.Metrics.EnableLatencyHistograms && !c.Metrics.Enabled {
		return errors.New("Metrics EnableLatencyHistograms requires Metrics Enabled")
	}

	// Logging
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return errors.New("Logging Level must be one of debug, info, warn, error")
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return errors.New("Logging Format must be 'json' or 'console'")
	}

	return nil
}
