package roundsearch

import (
	"testing"

	"go.uber.org/zap"
)

func TestNew_NoAddress(t *testing.T) {
	_, err := New()
	if err == nil {
		t.Fatal("expected error when no address provided")
	}
}

func TestClientOptions(t *testing.T) {
	cfg := &clientConfig{}

	WithRedis("localhost:6379", "secret")(cfg)
	if len(cfg.addrs) != 1 || cfg.addrs[0] != "localhost:6379" {
		t.Errorf("addrs = %v, want [localhost:6379]", cfg.addrs)
	}
	if cfg.password != "secret" {
		t.Errorf("password = %q, want secret", cfg.password)
	}

	WithValkey("valkey:6379", "")(cfg)
	if cfg.addrs[0] != "valkey:6379" {
		t.Errorf("addrs = %v after WithValkey", cfg.addrs)
	}

	WithUsername("app")(cfg)
	if cfg.username != "app" {
		t.Errorf("username = %q, want app", cfg.username)
	}

	WithDB(3)(cfg)
	if cfg.db != 3 {
		t.Errorf("db = %d, want 3", cfg.db)
	}

	WithKeyPrefix("golf:")(cfg)
	if cfg.keyPrefix != "golf:" {
		t.Errorf("keyPrefix = %q, want golf:", cfg.keyPrefix)
	}

	WithSearchConfig(SearchConfig{PageSize: 10})(cfg)
	if cfg.search.PageSize != 10 {
		t.Errorf("search.PageSize = %d, want 10", cfg.search.PageSize)
	}

	logger := zap.NewNop()
	WithLogger(logger)(cfg)
	if cfg.logger != logger {
		t.Error("logger was not stored")
	}
}
