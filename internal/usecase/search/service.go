// Package search orchestrates round discovery: the radius-bounded
// geospatial flow and the location-free discovery flow.
package search

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/teepals/roundsearch/internal/domain"
	"github.com/teepals/roundsearch/internal/domain/geo"
	"github.com/teepals/roundsearch/internal/domain/round"
	"github.com/teepals/roundsearch/internal/domain/search/cursor"
	"github.com/teepals/roundsearch/internal/domain/search/filter"
	"github.com/teepals/roundsearch/internal/domain/search/page"
	"github.com/teepals/roundsearch/internal/logger"
	"github.com/teepals/roundsearch/internal/metrics"
)

// Config holds the engine's tunable policy knobs.
type Config struct {
	MaxRadiusMiles      float64
	MaxDateWindowDays   int
	PerBoundLimit       int
	MaxCandidates       int
	PageSize            int
	DiscoveryFetchLimit int
}

// DefaultConfig returns the observed production policy.
func DefaultConfig() Config {
	return Config{
		MaxRadiusMiles:      100,
		MaxDateWindowDays:   90,
		PerBoundLimit:       50,
		MaxCandidates:       500,
		PageSize:            30,
		DiscoveryFetchLimit: 200,
	}
}

// Service executes round searches. It holds no mutable state between
// requests; everything request-scoped lives on the stack.
type Service struct {
	repo Repository
	cfg  Config
}

// New creates a search service.
func New(repo Repository, cfg Config) *Service {
	if cfg.PageSize <= 0 {
		cfg = DefaultConfig()
	}
	return &Service{repo: repo, cfg: cfg}
}

// Search runs one search request and returns a single result page.
// The mode is classified per request: a zero/absent radius selects the
// discovery flow, anything else the radius flow.
func (s *Service) Search(ctx context.Context, f *filter.Filter, cur cursor.Cursor) (page.Page, error) {
	started := time.Now()

	if err := s.validate(f); err != nil {
		return page.Page{}, err
	}

	var (
		p   page.Page
		err error
	)
	if f.IsDiscovery() {
		p, err = s.searchDiscovery(ctx, f, cur, started)
	} else {
		p, err = s.searchRadius(ctx, f, cur, started)
	}
	if err != nil {
		metrics.ObserveSearch(modeLabel(f), "error", time.Since(started))
		return page.Page{}, err
	}

	metrics.ObserveSearch(modeLabel(f), "ok", p.Diagnostics().Elapsed)
	metrics.ObserveCandidates(modeLabel(f), p.Diagnostics().RawFetched)
	logger.FromContext(ctx).Debug("search completed",
		zap.String("mode", modeLabel(f)),
		zap.Int("results", len(p.Results())),
		zap.Bool("truncated", p.Truncated()),
		zap.Duration("elapsed", p.Diagnostics().Elapsed),
	)
	return p, nil
}

// validate applies the policy caps on top of the filter's structural
// validation. Failing validation surfaces before any store access.
func (s *Service) validate(f *filter.Filter) error {
	if f.WindowDays() > float64(s.cfg.MaxDateWindowDays) {
		return domain.NewFilterError("window_end",
			fmt.Sprintf("window exceeds %d days", s.cfg.MaxDateWindowDays))
	}
	if !f.IsDiscovery() && f.RadiusMiles() > s.cfg.MaxRadiusMiles {
		return domain.NewFilterError("radius_miles",
			fmt.Sprintf("radius exceeds %v miles", s.cfg.MaxRadiusMiles))
	}
	return nil
}

// searchRadius runs the geospatial flow: bounds, fan-out fetch, three
// refinement passes, rank, paginate.
func (s *Service) searchRadius(
	ctx context.Context, f *filter.Filter, cur cursor.Cursor, started time.Time,
) (page.Page, error) {
	precision := geo.PrecisionForRadius(f.RadiusMiles(), f.CenterLat())
	bounds := geo.QueryBounds(f.CenterLat(), f.CenterLng(), f.RadiusMiles(), precision)

	fetched, rawFetched, truncated, err := s.fetchCandidates(ctx, bounds)
	if err != nil {
		return page.Page{}, fmt.Errorf("fetch candidates: %w", err)
	}

	// Distance first: the most selective pass and the cheapest to
	// compute, so later passes see the fewest candidates.
	cands := refineDistance(fetched, f.CenterLat(), f.CenterLng(), f.RadiusMiles())
	afterDistance := len(cands)

	cands = refineDate(cands, f.WindowStart(), f.WindowEnd())
	afterDate := len(cands)

	cands = refineCategorical(cands, categorical{
		status:      f.Status(),
		visibility:  defaultVisibility(f.Visibility()),
		hostID:      f.HostID(),
		excludeFull: f.ExcludeFull(),
	})
	afterCategorical := len(cands)

	rankCandidates(cands)
	results, next := paginate(cands, cur, s.cfg.PageSize)

	return page.New(results, next, truncated, page.Diagnostics{
		Precision:        precision,
		BoundsQueried:    len(bounds),
		RawFetched:       rawFetched,
		AfterDistance:    afterDistance,
		AfterDate:        afterDate,
		AfterCategorical: afterCategorical,
		Elapsed:          time.Since(started),
	}), nil
}

// searchDiscovery runs the location-free flow: one time-index query, the
// categorical pass, rank, paginate. Status defaults to open and
// visibility to public; the geospatial stages are bypassed entirely.
func (s *Service) searchDiscovery(
	ctx context.Context, f *filter.Filter, cur cursor.Cursor, started time.Time,
) (page.Page, error) {
	fetched, raw, err := s.repo.FetchByTimeWindow(
		ctx, f.WindowStart(), f.WindowEnd(), s.cfg.DiscoveryFetchLimit,
	)
	if err != nil {
		return page.Page{}, fmt.Errorf("fetch by time window: %w", err)
	}
	truncated := raw == s.cfg.DiscoveryFetchLimit

	// The time index already enforces the window, but the date pass is
	// re-applied against the documents in case index and document drift.
	cands := refineDate(asCandidates(fetched), f.WindowStart(), f.WindowEnd())
	afterDate := len(cands)

	status := f.Status()
	if status == "" {
		status = round.StatusOpen
	}
	cands = refineCategorical(cands, categorical{
		status:      status,
		visibility:  defaultVisibility(f.Visibility()),
		hostID:      f.HostID(),
		excludeFull: f.ExcludeFull(),
	})
	afterCategorical := len(cands)

	rankCandidates(cands)
	results, next := paginate(cands, cur, s.cfg.PageSize)

	return page.New(results, next, truncated, page.Diagnostics{
		RawFetched:       raw,
		AfterDistance:    len(fetched),
		AfterDate:        afterDate,
		AfterCategorical: afterCategorical,
		Elapsed:          time.Since(started),
	}), nil
}

func defaultVisibility(v round.Visibility) round.Visibility {
	if v == "" {
		return round.VisibilityPublic
	}
	return v
}

func modeLabel(f *filter.Filter) string {
	if f.IsDiscovery() {
		return "discovery"
	}
	return "radius"
}
