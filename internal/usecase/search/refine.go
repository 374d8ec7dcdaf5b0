package search

import (
	"time"

	"github.com/teepals/roundsearch/internal/domain/geo"
	"github.com/teepals/roundsearch/internal/domain/round"
)

// candidate is a fetched round plus its request-scoped computed distance.
type candidate struct {
	round         round.Round
	distanceMiles float64
	hasDistance   bool
}

// refineDistance keeps rounds whose exact great-circle distance from the
// query center is within radiusMiles (inclusive), attaching the computed
// distance. Rounds without a geospatial key are dropped: they were never
// indexed for radius search and cannot be placed.
func refineDistance(rounds []round.Round, centerLat, centerLng, radiusMiles float64) []candidate {
	out := make([]candidate, 0, len(rounds))
	for i := range rounds {
		key := rounds[i].GeoKey()
		if key == nil {
			continue
		}
		d := geo.Haversine(centerLat, centerLng, key.Lat(), key.Lng())
		if d > radiusMiles {
			continue
		}
		out = append(out, candidate{round: rounds[i], distanceMiles: d, hasDistance: true})
	}
	return out
}

// asCandidates wraps rounds without distance for the discovery flow.
func asCandidates(rounds []round.Round) []candidate {
	out := make([]candidate, len(rounds))
	for i := range rounds {
		out[i] = candidate{round: rounds[i]}
	}
	return out
}

// refineDate keeps candidates whose effective date falls in
// [start, end). The upper bound is exclusive; a candidate without any
// date has no effective date and is dropped.
func refineDate(cands []candidate, start, end time.Time) []candidate {
	out := cands[:0]
	for _, c := range cands {
		d, ok := c.round.EffectiveDate()
		if !ok {
			continue
		}
		if d.Before(start) || !d.Before(end) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// categorical bundles the equality filters of the third refinement pass.
type categorical struct {
	status      round.Status
	visibility  round.Visibility
	hostID      string
	excludeFull bool
}

// refineCategorical applies status, visibility, host, and fullness
// filtering. An unset status or host is unconstrained; visibility always
// constrains and callers supply the mode default.
func refineCategorical(cands []candidate, f categorical) []candidate {
	out := cands[:0]
	for _, c := range cands {
		if f.status != "" && c.round.Status() != f.status {
			continue
		}
		if f.visibility != "" && c.round.Visibility() != f.visibility {
			continue
		}
		if f.hostID != "" && c.round.HostID() != f.hostID {
			continue
		}
		if f.excludeFull && c.round.IsFull() {
			continue
		}
		out = append(out, c)
	}
	return out
}
