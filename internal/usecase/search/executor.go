package search

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/teepals/roundsearch/internal/domain/geo"
	"github.com/teepals/roundsearch/internal/domain/round"
)

// boundResult carries one bound's fetch so results can be merged in
// deterministic bound order regardless of completion order.
type boundResult struct {
	rounds []round.Round
	raw    int
}

// fetchCandidates issues one range query per bound, fanned out
// concurrently (the bound count caps the fan-out), then merges and
// deduplicates by round id in a request-local map. Any single bound
// failure fails the whole fetch: partial geospatial coverage would
// silently bias results toward the sub-regions that did answer.
func (s *Service) fetchCandidates(
	ctx context.Context, bounds []geo.Bound,
) (cands []round.Round, rawFetched int, truncated bool, err error) {
	perBound := s.cfg.PerBoundLimit
	if perBound > s.cfg.MaxCandidates {
		perBound = s.cfg.MaxCandidates
	}

	results := make([]boundResult, len(bounds))
	g, gctx := errgroup.WithContext(ctx)
	for i := range bounds {
		g.Go(func() error {
			rounds, raw, err := s.repo.FetchByGeoRange(gctx, bounds[i], perBound)
			if err != nil {
				return fmt.Errorf("bound %d: %w", i, err)
			}
			results[i] = boundResult{rounds: rounds, raw: raw}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, 0, false, err
	}

	// A round lives in exactly one bound's range, but dedup is kept as a
	// defensive invariant across merged bounds.
	seen := make(map[string]struct{})
	for _, br := range results {
		rawFetched += br.raw
		for i := range br.rounds {
			id := br.rounds[i].ID()
			if _, ok := seen[id]; ok {
				continue
			}
			if len(cands) >= s.cfg.MaxCandidates {
				return cands, rawFetched, true, nil
			}
			seen[id] = struct{}{}
			cands = append(cands, br.rounds[i])
		}
	}
	return cands, rawFetched, false, nil
}
