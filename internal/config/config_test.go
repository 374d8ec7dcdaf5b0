package config

import (
	"strings"
	"testing"
)

func validConfig() Config {
	cfg := Config{}
	cfg.HTTP.Port = 8080
	cfg.Database.Addrs = []string{"localhost:6379"}
	cfg.ApplyDefaults()
	return cfg
}

func TestApplyDefaults(t *testing.T) {
	cfg := validConfig()

	if cfg.Search.MaxRadiusMiles != 100 {
		t.Errorf("max radius = %v, want 100", cfg.Search.MaxRadiusMiles)
	}
	if cfg.Search.MaxDateWindowDays != 90 {
		t.Errorf("max window = %v, want 90", cfg.Search.MaxDateWindowDays)
	}
	if cfg.Search.PerBoundLimit != 50 {
		t.Errorf("per bound limit = %v, want 50", cfg.Search.PerBoundLimit)
	}
	if cfg.Search.MaxCandidates != 500 {
		t.Errorf("max candidates = %v, want 500", cfg.Search.MaxCandidates)
	}
	if cfg.Search.PageSize != 30 {
		t.Errorf("page size = %v, want 30", cfg.Search.PageSize)
	}
	if cfg.Search.DiscoveryFetchLimit != 200 {
		t.Errorf("discovery fetch limit = %v, want 200", cfg.Search.DiscoveryFetchLimit)
	}
	if cfg.Storage.KeyPrefix != "rounds:" {
		t.Errorf("key prefix = %q, want rounds:", cfg.Storage.KeyPrefix)
	}
	if cfg.HTTP.ReadTimeoutSec != 10 || cfg.HTTP.WriteTimeoutSec != 10 || cfg.HTTP.ShutdownSec != 10 {
		t.Error("http timeouts not defaulted")
	}
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := Config{}
	cfg.Search.PageSize = 10
	cfg.Storage.KeyPrefix = "custom:"
	cfg.ApplyDefaults()

	if cfg.Search.PageSize != 10 {
		t.Errorf("page size = %v, want 10", cfg.Search.PageSize)
	}
	if cfg.Storage.KeyPrefix != "custom:" {
		t.Errorf("key prefix = %q, want custom:", cfg.Storage.KeyPrefix)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(_ *Config) {}, ""},
		{"zero port", func(c *Config) { c.HTTP.Port = 0 }, "http.port"},
		{"port out of range", func(c *Config) { c.HTTP.Port = 70000 }, "http.port"},
		{"missing addrs", func(c *Config) { c.Database.Addrs = nil }, "database.addrs"},
		{"page larger than candidate budget", func(c *Config) {
			c.Search.PageSize = 600
		}, "max_candidates"},
		{"page larger than discovery fetch", func(c *Config) {
			c.Search.PageSize = 250
			c.Search.MaxCandidates = 1000
		}, "discovery_fetch_limit"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("ROUNDSEARCH_TEST_ADDR", "redis-prod:6379")

	in := []byte("addr: ${ROUNDSEARCH_TEST_ADDR}\npass: ${ROUNDSEARCH_TEST_MISSING:-fallback}\nempty: ${ROUNDSEARCH_TEST_MISSING}\n")
	got := string(expandEnvVars(in))
	want := "addr: redis-prod:6379\npass: fallback\nempty: \n"
	if got != want {
		t.Errorf("expandEnvVars = %q, want %q", got, want)
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("ENV", "")
	if env := GetEnv(); env != "local" {
		t.Errorf("default env = %q, want local", env)
	}
	t.Setenv("ENV", "prod")
	if env := GetEnv(); env != "prod" {
		t.Errorf("env = %q, want prod", env)
	}
}
