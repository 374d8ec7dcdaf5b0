package db

import (
	"context"
	"time"
)

// Store is the document-store facade combining all sub-interfaces.
// Consumers depend on the narrow sub-interfaces, not on Store.
type Store interface {
	Pinger
	DocStore
	SortedIndex
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// DocStore provides whole-document reads and writes by key.
type DocStore interface {
	Set(ctx context.Context, key string, value []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	// GetMulti reads many keys in one round trip. Missing keys yield a
	// nil entry at the matching position.
	GetMulti(ctx context.Context, keys []string) ([][]byte, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// SortedIndex provides the single-field index primitives the search
// engine is built on: lexicographic ranges over members and score ranges
// over a numeric field, both ascending and limit-capped.
type SortedIndex interface {
	IndexAdd(ctx context.Context, key, member string, score float64) error
	IndexRemove(ctx context.Context, key, member string) error
	// RangeByLex returns up to limit members in [start, end), ascending.
	// An empty end means unbounded above.
	RangeByLex(ctx context.Context, key, start, end string, limit int) ([]string, error)
	// RangeByScore returns up to limit members with score in [min, max),
	// ascending by score.
	RangeByScore(ctx context.Context, key string, min, max float64, limit int) ([]string, error)
}
