// Package roundsearch is the embedded SDK for the round discovery
// engine. It wires the search and round services against a Redis or
// Valkey store without going through the HTTP API.
package roundsearch

import (
	"context"
	"errors"
	"fmt"
	"time"

	dbRedis "github.com/teepals/roundsearch/internal/db/redis"
	roundrepo "github.com/teepals/roundsearch/internal/repository/round"
	rounduc "github.com/teepals/roundsearch/internal/usecase/round"
	searchuc "github.com/teepals/roundsearch/internal/usecase/search"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultKeyPrefix        = "rounds:"
)

// Client is the roundsearch SDK entry point.
type Client struct {
	store     *dbRedis.Store
	cfg       *clientConfig
	searchSvc *searchuc.Service
	roundSvc  *rounduc.Service
}

// New creates a roundsearch Client and connects to the database.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		keyPrefix: defaultKeyPrefix,
	}
	for _, o := range opts {
		o(cfg)
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("roundsearch: database address required (use WithRedis or WithValkey)")
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.addrs,
		Username: cfg.username,
		Password: cfg.password,
		DB:       cfg.db,
	})
	if err != nil {
		return nil, fmt.Errorf("roundsearch: create store: %w", err)
	}

	ctx := context.Background()
	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("roundsearch: database not ready: %w", err)
	}

	return wireClient(store, cfg), nil
}

func wireClient(store *dbRedis.Store, cfg *clientConfig) *Client {
	repo := roundrepo.New(store, cfg.keyPrefix)

	searchCfg := searchuc.DefaultConfig()
	if cfg.search.MaxRadiusMiles > 0 {
		searchCfg.MaxRadiusMiles = cfg.search.MaxRadiusMiles
	}
	if cfg.search.MaxDateWindowDays > 0 {
		searchCfg.MaxDateWindowDays = cfg.search.MaxDateWindowDays
	}
	if cfg.search.PerBoundLimit > 0 {
		searchCfg.PerBoundLimit = cfg.search.PerBoundLimit
	}
	if cfg.search.MaxCandidates > 0 {
		searchCfg.MaxCandidates = cfg.search.MaxCandidates
	}
	if cfg.search.PageSize > 0 {
		searchCfg.PageSize = cfg.search.PageSize
	}
	if cfg.search.DiscoveryFetchLimit > 0 {
		searchCfg.DiscoveryFetchLimit = cfg.search.DiscoveryFetchLimit
	}

	return &Client{
		store:     store,
		cfg:       cfg,
		searchSvc: searchuc.New(repo, searchCfg),
		roundSvc:  rounduc.New(repo),
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Rounds returns the round management service.
func (c *Client) Rounds() *RoundService {
	return &RoundService{svc: c.roundSvc, logger: c.cfg.logger}
}

// Search starts a fluent search query.
func (c *Client) Search() *SearchBuilder {
	return &SearchBuilder{svc: c.searchSvc, logger: c.cfg.logger}
}
