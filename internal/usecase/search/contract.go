package search

import (
	"context"
	"time"

	"github.com/teepals/roundsearch/internal/domain/geo"
	"github.com/teepals/roundsearch/internal/domain/round"
)

// Repository defines the storage contract for search reads.
type Repository interface {
	// FetchByGeoRange returns decoded rounds in one geohash bound,
	// ascending by index key, capped at limit. raw counts the index
	// members scanned before decode tolerance.
	FetchByGeoRange(ctx context.Context, bound geo.Bound, limit int) (rounds []round.Round, raw int, err error)

	// FetchByTimeWindow returns decoded rounds with effective date in
	// [start, end), ascending, capped at limit.
	FetchByTimeWindow(ctx context.Context, start, end time.Time, limit int) (rounds []round.Round, raw int, err error)
}
