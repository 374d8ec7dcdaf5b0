// Package page holds the result page returned by one search request.
package page

import (
	"time"

	"github.com/teepals/roundsearch/internal/domain/round"
	"github.com/teepals/roundsearch/internal/domain/search/cursor"
)

// Result is a single round in a page, with the request-scoped distance
// computed by the refiner. Distance is never persisted.
type Result struct {
	round         round.Round
	distanceMiles float64
	hasDistance   bool
}

// NewResult creates a discovery-mode result without a distance.
func NewResult(r round.Round) Result {
	return Result{round: r}
}

// NewResultWithDistance creates a radius-mode result.
func NewResultWithDistance(r round.Round, distanceMiles float64) Result {
	return Result{round: r, distanceMiles: distanceMiles, hasDistance: true}
}

// Round returns the matched round.
func (r *Result) Round() *round.Round { return &r.round }

// DistanceMiles returns the great-circle distance from the query center.
// ok is false in discovery mode, where no center exists.
func (r *Result) DistanceMiles() (miles float64, ok bool) {
	return r.distanceMiles, r.hasDistance
}

// Diagnostics are per-request observability counters. They ride along
// with every page but are not part of the stable contract.
type Diagnostics struct {
	Precision        int
	BoundsQueried    int
	RawFetched       int
	AfterDistance    int
	AfterDate        int
	AfterCategorical int
	Elapsed          time.Duration
}

// Page is one ordered slice of search results.
type Page struct {
	results   []Result
	next      *cursor.Cursor
	truncated bool
	diags     Diagnostics
}

// New creates a result page. next is nil on the final page.
func New(results []Result, next *cursor.Cursor, truncated bool, diags Diagnostics) Page {
	return Page{results: results, next: next, truncated: truncated, diags: diags}
}

// Results returns the ordered page contents.
func (p *Page) Results() []Result { return p.results }

// Next returns the continuation cursor, or nil when no results remain.
func (p *Page) Next() *cursor.Cursor { return p.next }

// Truncated reports whether the candidate budget or fetch limit cut the
// scan short, i.e. the page may under-report matches.
func (p *Page) Truncated() bool { return p.truncated }

// Diagnostics returns the per-request counters.
func (p *Page) Diagnostics() Diagnostics { return p.diags }
