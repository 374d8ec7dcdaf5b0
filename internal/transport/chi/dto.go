package chi

import (
	"time"

	"github.com/teepals/roundsearch/internal/domain/round"
	"github.com/teepals/roundsearch/internal/domain/search/cursor"
	"github.com/teepals/roundsearch/internal/domain/search/filter"
	"github.com/teepals/roundsearch/internal/domain/search/page"
	rounduc "github.com/teepals/roundsearch/internal/usecase/round"
)

// errorCode is the machine-readable error class in an error response.
type errorCode string

const (
	codeBadRequest    errorCode = "bad_request"
	codeUnauthorized  errorCode = "unauthorized"
	codeInvalidFilter errorCode = "invalid_filter"
	codeInvalidCursor errorCode = "invalid_cursor"
	codeInvalidRound  errorCode = "invalid_round"
	codeRoundNotFound errorCode = "round_not_found"
	codeInternalError errorCode = "internal_error"
)

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Code    errorCode `json:"code"`
	Message string    `json:"message"`
}

// searchRequest is the POST /v1/search body.
type searchRequest struct {
	CenterLat   float64    `json:"center_lat"`
	CenterLng   float64    `json:"center_lng"`
	RadiusMiles float64    `json:"radius_miles"`
	WindowStart *time.Time `json:"window_start"`
	WindowEnd   *time.Time `json:"window_end"`
	Status      string     `json:"status,omitempty"`
	Visibility  string     `json:"visibility,omitempty"`
	HostID      string     `json:"host_id,omitempty"`
	ExcludeFull bool       `json:"exclude_full,omitempty"`
	Discovery   bool       `json:"discovery,omitempty"`
	Cursor      string     `json:"cursor,omitempty"`
}

func (r *searchRequest) toDomain() (*filter.Filter, cursor.Cursor, error) {
	p := filter.Params{
		CenterLat:   r.CenterLat,
		CenterLng:   r.CenterLng,
		RadiusMiles: r.RadiusMiles,
		Status:      round.Status(r.Status),
		Visibility:  round.Visibility(r.Visibility),
		HostID:      r.HostID,
		ExcludeFull: r.ExcludeFull,
		Discovery:   r.Discovery,
	}
	if r.WindowStart != nil {
		p.WindowStart = *r.WindowStart
	}
	if r.WindowEnd != nil {
		p.WindowEnd = *r.WindowEnd
	}

	f, err := filter.New(p)
	if err != nil {
		return nil, cursor.Cursor{}, err
	}
	cur, err := cursor.Decode(r.Cursor)
	if err != nil {
		return nil, cursor.Cursor{}, err
	}
	return &f, cur, nil
}

// roundPayload is the create/update body for a round.
type roundPayload struct {
	HostID      string     `json:"host_id"`
	CourseName  string     `json:"course_name,omitempty"`
	Status      string     `json:"status,omitempty"`
	Visibility  string     `json:"visibility,omitempty"`
	MaxPlayers  int        `json:"max_players,omitempty"`
	PlayerCount int        `json:"player_count,omitempty"`
	RoundDate   *time.Time `json:"round_date,omitempty"`
	TeeTime     *time.Time `json:"tee_time,omitempty"`
	Lat         *float64   `json:"lat,omitempty"`
	Lng         *float64   `json:"lng,omitempty"`
}

func (r *roundPayload) toDraft() rounduc.Draft {
	return rounduc.Draft{
		HostID:      r.HostID,
		CourseName:  r.CourseName,
		Status:      round.Status(r.Status),
		Visibility:  round.Visibility(r.Visibility),
		MaxPlayers:  r.MaxPlayers,
		PlayerCount: r.PlayerCount,
		RoundDate:   r.RoundDate,
		TeeTime:     r.TeeTime,
		Lat:         r.Lat,
		Lng:         r.Lng,
	}
}

// roundResponse is the JSON form of a round, with the request-scoped
// distance attached in search results.
type roundResponse struct {
	ID            string     `json:"id"`
	HostID        string     `json:"host_id"`
	CourseName    string     `json:"course_name,omitempty"`
	Status        string     `json:"status"`
	Visibility    string     `json:"visibility"`
	MaxPlayers    int        `json:"max_players"`
	PlayerCount   int        `json:"player_count"`
	RoundDate     *time.Time `json:"round_date,omitempty"`
	TeeTime       *time.Time `json:"tee_time,omitempty"`
	Lat           *float64   `json:"lat,omitempty"`
	Lng           *float64   `json:"lng,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	DistanceMiles *float64   `json:"distance_miles,omitempty"`
}

func roundResponseFrom(rd *round.Round, distanceMiles *float64) roundResponse {
	resp := roundResponse{
		ID:            rd.ID(),
		HostID:        rd.HostID(),
		CourseName:    rd.CourseName(),
		Status:        string(rd.Status()),
		Visibility:    string(rd.Visibility()),
		MaxPlayers:    rd.MaxPlayers(),
		PlayerCount:   rd.PlayerCount(),
		RoundDate:     rd.RoundDate(),
		TeeTime:       rd.TeeTime(),
		CreatedAt:     rd.CreatedAt(),
		DistanceMiles: distanceMiles,
	}
	if k := rd.GeoKey(); k != nil {
		lat, lng := k.Lat(), k.Lng()
		resp.Lat, resp.Lng = &lat, &lng
	}
	return resp
}

// diagnosticsResponse mirrors page.Diagnostics for observability clients.
type diagnosticsResponse struct {
	Precision        int   `json:"precision"`
	BoundsQueried    int   `json:"bounds_queried"`
	RawFetched       int   `json:"raw_fetched"`
	AfterDistance    int   `json:"after_distance"`
	AfterDate        int   `json:"after_date"`
	AfterCategorical int   `json:"after_categorical"`
	ElapsedMillis    int64 `json:"elapsed_ms"`
}

// searchResponse is the POST /v1/search reply.
type searchResponse struct {
	Results     []roundResponse     `json:"results"`
	NextCursor  *string             `json:"next_cursor,omitempty"`
	Truncated   bool                `json:"truncated"`
	Diagnostics diagnosticsResponse `json:"diagnostics"`
}

func searchResponseFromPage(p *page.Page) searchResponse {
	results := make([]roundResponse, 0, len(p.Results()))
	for _, res := range p.Results() {
		var dist *float64
		if d, ok := res.DistanceMiles(); ok {
			dist = &d
		}
		results = append(results, roundResponseFrom(res.Round(), dist))
	}

	resp := searchResponse{
		Results:   results,
		Truncated: p.Truncated(),
		Diagnostics: diagnosticsResponse{
			Precision:        p.Diagnostics().Precision,
			BoundsQueried:    p.Diagnostics().BoundsQueried,
			RawFetched:       p.Diagnostics().RawFetched,
			AfterDistance:    p.Diagnostics().AfterDistance,
			AfterDate:        p.Diagnostics().AfterDate,
			AfterCategorical: p.Diagnostics().AfterCategorical,
			ElapsedMillis:    p.Diagnostics().Elapsed.Milliseconds(),
		},
	}
	if next := p.Next(); next != nil {
		token := next.Encode()
		resp.NextCursor = &token
	}
	return resp
}
