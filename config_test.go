package goGuard

import (
	"strings"
	"testing"
)

func TestDefaultConfigValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config must validate: %v", err)
	}
	if cfg.Guard.TokenKey != "token" || cfg.Guard.LoginPath != "/login" {
		t.Fatalf("unexpected guard defaults: %+v", cfg.Guard)
	}
	if cfg.Memo.MaxEntries != 100 {
		t.Fatalf("expected memo bound 100, got %d", cfg.Memo.MaxEntries)
	}
}

func TestConfigValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"empty token key", func(c *Config) { c.Guard.TokenKey = "" }, "TokenKey"},
		{"relative login path", func(c *Config) { c.Guard.LoginPath = "login" }, "LoginPath"},
		{"non redirect status", func(c *Config) { c.Guard.RedirectStatus = 200 }, "RedirectStatus"},
		{"empty client cookie", func(c *Config) { c.Guard.ClientCookie = "" }, "ClientCookie"},
		{"negative ttl", func(c *Config) { c.Guard.TokenTTL = -1 }, "TokenTTL"},
		{"zero memo bound", func(c *Config) { c.Memo.MaxEntries = 0 }, "MaxEntries"},
		{"audit without buffer", func(c *Config) {
			c.Audit.Enabled = true
			c.Audit.BufferSize = 0
		}, "BufferSize"},
		{"latency without metrics", func(c *Config) {
			c.Metrics.Enabled = false
			c.Metrics.EnableLatencyHistograms = true
		}, "EnableLatencyHistograms"},
		{"bad level", func(c *Config) { c.Logging.Level = "trace" }, "Level"},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }, "Format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error mentioning %q, got %v", tt.want, err)
			}
		})
	}
}
