package round

import (
	"encoding/json"
	"fmt"
	"time"

	domround "github.com/teepals/roundsearch/internal/domain/round"
)

// roundDoc is the stored JSON shape of a round.
type roundDoc struct {
	ID          string       `json:"id"`
	HostID      string       `json:"host_id"`
	CourseName  string       `json:"course_name,omitempty"`
	Status      string       `json:"status"`
	Visibility  string       `json:"visibility"`
	MaxPlayers  int          `json:"max_players"`
	PlayerCount int          `json:"player_count"`
	RoundDate   *time.Time   `json:"round_date,omitempty"`
	TeeTime     *time.Time   `json:"tee_time,omitempty"`
	Location    *locationDoc `json:"location,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
}

// locationDoc is the stored geospatial key.
type locationDoc struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Geohash string  `json:"geohash"`
}

func encodeDoc(r *domround.Round) ([]byte, error) {
	doc := roundDoc{
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
		doc.Location = &locationDoc{Lat: k.Lat(), Lng: k.Lng(), Geohash: k.Hash()}
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal round %s: %w", r.ID(), err)
	}
	return data, nil
}

func decodeDoc(data []byte) (domround.Round, error) {
	var doc roundDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return domround.Round{}, fmt.Errorf("unmarshal round: %w", err)
	}
	if doc.ID == "" {
		return domround.Round{}, fmt.Errorf("round document without id")
	}

	var key *domround.GeoKey
	if doc.Location != nil {
		k := domround.ReconstructGeoKey(doc.Location.Lat, doc.Location.Lng, doc.Location.Geohash)
		key = &k
	}

	r := domround.Reconstruct(
		doc.ID, doc.HostID, doc.CourseName,
		domround.Status(doc.Status), domround.Visibility(doc.Visibility),
		doc.MaxPlayers, doc.PlayerCount,
		doc.RoundDate, doc.TeeTime,
		key,
		doc.CreatedAt,
	)
	return r, nil
}
