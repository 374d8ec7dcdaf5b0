package roundsearch

import (
	"go.uber.org/zap"
)

// Option configures the Client.
type Option func(*clientConfig)

type clientConfig struct {
	addrs    []string
	username string
	password string
	db       int

	keyPrefix string
	search    SearchConfig
	logger    *zap.Logger
}

// SearchConfig holds the search policy knobs. Zero fields fall back to
// the server defaults.
type SearchConfig struct {
	MaxRadiusMiles      float64
	MaxDateWindowDays   int
	PerBoundLimit       int
	MaxCandidates       int
	PageSize            int
	DiscoveryFetchLimit int
}

// WithRedis configures the client to connect to a Redis instance.
func WithRedis(addr, password string) Option {
	return func(c *clientConfig) {
		c.addrs = []string{addr}
		c.password = password
	}
}

// WithValkey configures the client to connect to a Valkey instance.
// Valkey speaks the Redis protocol, so this is an alias for WithRedis.
func WithValkey(addr, password string) Option {
	return WithRedis(addr, password)
}

// WithUsername sets the database username (Redis ACL).
func WithUsername(username string) Option {
	return func(c *clientConfig) {
		c.username = username
	}
}

// WithDB selects the Redis logical database. Default: 0.
func WithDB(db int) Option {
	return func(c *clientConfig) {
		c.db = db
	}
}

// WithKeyPrefix sets the key namespace for all stored data.
// Default: "rounds:".
func WithKeyPrefix(prefix string) Option {
	return func(c *clientConfig) {
		c.keyPrefix = prefix
	}
}

// WithSearchConfig overrides the search policy caps and budgets.
func WithSearchConfig(cfg SearchConfig) Option {
	return func(c *clientConfig) {
		c.search = cfg
	}
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default).
func WithLogger(l *zap.Logger) Option {
	return func(c *clientConfig) {
		c.logger = l
	}
}
