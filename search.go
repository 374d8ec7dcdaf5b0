package roundsearch

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/teepals/roundsearch/internal/domain/round"
	"github.com/teepals/roundsearch/internal/domain/search/cursor"
	"github.com/teepals/roundsearch/internal/domain/search/filter"
	"github.com/teepals/roundsearch/internal/domain/search/page"
	logpkg "github.com/teepals/roundsearch/internal/logger"
	searchuc "github.com/teepals/roundsearch/internal/usecase/search"
)

// Round is the public form of a stored round.
type Round struct {
	ID          string
	HostID      string
	CourseName  string
	Status      string
	Visibility  string
	MaxPlayers  int
	PlayerCount int
	RoundDate   *time.Time
	TeeTime     *time.Time
	Lat         *float64
	Lng         *float64
	CreatedAt   time.Time
}

// Result is a single search hit. DistanceMiles is nil in discovery
// mode, where no query center exists.
type Result struct {
	Round         Round
	DistanceMiles *float64
}

// Page is one ordered page of search results. NextCursor is empty on
// the final page; pass it to After to continue. Truncated reports that
// the candidate budget cut the scan short.
type Page struct {
	Results    []Result
	NextCursor string
	Truncated  bool
}

// SearchBuilder is a fluent builder for search queries. A builder with
// no Near call runs in discovery mode.
type SearchBuilder struct {
	svc    *searchuc.Service
	logger *zap.Logger

	lat, lng    float64
	hasCenter   bool
	radiusMiles float64

	windowStart time.Time
	windowEnd   time.Time

	status      string
	visibility  string
	hostID      string
	excludeFull bool

	cursorToken string
}

// Near sets the query center for a radius search.
func (b *SearchBuilder) Near(lat, lng float64) *SearchBuilder {
	b.lat, b.lng = lat, lng
	b.hasCenter = true
	return b
}

// Miles sets the search radius in miles.
func (b *SearchBuilder) Miles(radius float64) *SearchBuilder {
	b.radiusMiles = radius
	return b
}

// Window sets the date window [start, end). Required.
func (b *SearchBuilder) Window(start, end time.Time) *SearchBuilder {
	b.windowStart, b.windowEnd = start, end
	return b
}

// Status filters by round status. Discovery mode defaults to "open".
func (b *SearchBuilder) Status(status string) *SearchBuilder {
	b.status = status
	return b
}

// Visibility filters by visibility. Defaults to "public".
func (b *SearchBuilder) Visibility(visibility string) *SearchBuilder {
	b.visibility = visibility
	return b
}

// Host filters to rounds hosted by the given user.
func (b *SearchBuilder) Host(hostID string) *SearchBuilder {
	b.hostID = hostID
	return b
}

// ExcludeFull drops rounds at player capacity.
func (b *SearchBuilder) ExcludeFull() *SearchBuilder {
	b.excludeFull = true
	return b
}

// After continues from a previous page's NextCursor.
func (b *SearchBuilder) After(token string) *SearchBuilder {
	b.cursorToken = token
	return b
}

// Do executes the search and returns one result page.
func (b *SearchBuilder) Do(ctx context.Context) (Page, error) {
	p := filter.Params{
		RadiusMiles: b.radiusMiles,
		WindowStart: b.windowStart,
		WindowEnd:   b.windowEnd,
		Status:      round.Status(b.status),
		Visibility:  round.Visibility(b.visibility),
		HostID:      b.hostID,
		ExcludeFull: b.excludeFull,
		Discovery:   !b.hasCenter,
	}
	if b.hasCenter {
		p.CenterLat, p.CenterLng = b.lat, b.lng
	}

	f, err := filter.New(p)
	if err != nil {
		return Page{}, fmt.Errorf("search: %w", err)
	}
	cur, err := cursor.Decode(b.cursorToken)
	if err != nil {
		return Page{}, fmt.Errorf("search: %w", err)
	}

	if b.logger != nil {
		ctx = logpkg.ContextWithLogger(ctx, b.logger)
	}

	result, err := b.svc.Search(ctx, &f, cur)
	if err != nil {
		return Page{}, fmt.Errorf("search: %w", err)
	}
	return fromPage(&result), nil
}

func fromPage(p *page.Page) Page {
	results := make([]Result, 0, len(p.Results()))
	for _, res := range p.Results() {
		var dist *float64
		if d, ok := res.DistanceMiles(); ok {
			dist = &d
		}
		results = append(results, Result{
			Round:         fromRound(res.Round()),
			DistanceMiles: dist,
		})
	}

	out := Page{Results: results, Truncated: p.Truncated()}
	if next := p.Next(); next != nil {
		out.NextCursor = next.Encode()
	}
	return out
}

func fromRound(r *round.Round) Round {
	out := Round{
		ID:          r.ID(),
		HostID:      r.HostID(),
		CourseName:  r.CourseName(),
		Status:      string(r.Status()),
		Visibility:  string(r.Visibility()),
		MaxPlayers:  r.MaxPlayers(),
		PlayerCount: r.PlayerCount(),
		RoundDate:   r.RoundDate(),
		TeeTime:     r.TeeTime(),
		CreatedAt:   r.CreatedAt(),
	}
	if k := r.GeoKey(); k != nil {
		lat, lng := k.Lat(), k.Lng()
		out.Lat, out.Lng = &lat, &lng
	}
	return out
}
