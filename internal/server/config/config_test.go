package config

import (
	"strings"
	"testing"
)

// ============================================================
// Defaults
// ============================================================

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Server.Addr != DefaultAddr {
		t.Errorf("Server.Addr = %q, want %q", cfg.Server.Addr, DefaultAddr)
	}
	if cfg.Server.RateLimit != 0 {
		t.Errorf("Server.RateLimit = %d, want 0", cfg.Server.RateLimit)
	}
	if cfg.Metrics.Enabled {
		t.Error("Metrics.Enabled = true, want false by default")
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "json" {
		t.Errorf("Log = %+v, want info/json", cfg.Log)
	}
}

func TestDefault_Verifies(t *testing.T) {
	if err := Verify(Default()); err != nil {
		t.Errorf("Verify(Default()) = %v", err)
	}
}

// ============================================================
// Verification
// ============================================================

func TestVerify(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ServerConfig)
		wantErr string
	}{
		{
			name:   "valid full config",
			mutate: func(c *ServerConfig) { c.Metrics.Enabled = true },
		},
		{
			name:    "missing server addr",
			mutate:  func(c *ServerConfig) { c.Server.Addr = "" },
			wantErr: "server.addr is required",
		},
		{
			name:    "server addr without port",
			mutate:  func(c *ServerConfig) { c.Server.Addr = "127.0.0.1" },
			wantErr: "server.addr",
		},
		{
			name:    "negative rate limit",
			mutate:  func(c *ServerConfig) { c.Server.RateLimit = -1 },
			wantErr: "rate_limit",
		},
		{
			name: "bad metrics addr when enabled",
			mutate: func(c *ServerConfig) {
				c.Metrics.Enabled = true
				c.Metrics.Addr = "nope"
			},
			wantErr: "metrics.addr",
		},
		{
			name: "bad metrics addr ignored when disabled",
			mutate: func(c *ServerConfig) {
				c.Metrics.Enabled = false
				c.Metrics.Addr = "nope"
			},
		},
		{
			name:    "unknown log level",
			mutate:  func(c *ServerConfig) { c.Log.Level = "verbose" },
			wantErr: "log.level",
		},
		{
			name:    "unknown log format",
			mutate:  func(c *ServerConfig) { c.Log.Format = "xml" },
			wantErr: "log.format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := Verify(cfg)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Verify() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Verify() = nil, want error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Verify() = %q, want substring %q", err, tt.wantErr)
			}
		})
	}
}
