package round

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/teepals/roundsearch/internal/domain/geo"
)

// Status is the lifecycle state of a round.
type Status string

// Round lifecycle states.
const (
	StatusOpen      Status = "open"
	StatusClosed    Status = "closed"
	StatusCanceled  Status = "canceled"
	StatusCompleted Status = "completed"
)

// IsValid reports whether s is a known status.
func (s Status) IsValid() bool {
	switch s {
	case StatusOpen, StatusClosed, StatusCanceled, StatusCompleted:
		return true
	}
	return false
}

// Visibility controls who can discover a round.
type Visibility string

// Round visibility levels.
const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

// IsValid reports whether v is a known visibility.
func (v Visibility) IsValid() bool {
	return v == VisibilityPublic || v == VisibilityPrivate
}

// FarFutureMillis is the ordering sentinel for rounds without any date.
// They sort after every dated round.
const FarFutureMillis = int64(math.MaxInt64)

// GeoKey is a round's denormalized location summary. The geohash is
// computed from the coordinates at write time and drives the radius-mode
// range queries; a round without a GeoKey is invisible to radius search.
type GeoKey struct {
	lat  float64
	lng  float64
	hash string
}

// NewGeoKey validates coordinates and computes the stored geohash.
func NewGeoKey(lat, lng float64) (GeoKey, error) {
	if !geo.ValidateCoordinates(lat, lng) {
		return GeoKey{}, fmt.Errorf("coordinates out of range: (%v, %v)", lat, lng)
	}
	return GeoKey{lat: lat, lng: lng, hash: geo.Encode(lat, lng)}, nil
}

// ReconstructGeoKey rebuilds a GeoKey from stored fields without
// re-encoding. Used by the repository when loading documents.
func ReconstructGeoKey(lat, lng float64, hash string) GeoKey {
	return GeoKey{lat: lat, lng: lng, hash: hash}
}

// Lat returns the latitude in degrees.
func (k GeoKey) Lat() float64 { return k.lat }

// Lng returns the longitude in degrees.
func (k GeoKey) Lng() float64 { return k.lng }

// Hash returns the stored full-precision geohash.
func (k GeoKey) Hash() string { return k.hash }

// Round is a scheduled group meetup at a course.
type Round struct {
	id          string
	hostID      string
	courseName  string
	status      Status
	visibility  Visibility
	maxPlayers  int
	playerCount int
	roundDate   *time.Time
	teeTime     *time.Time
	geoKey      *GeoKey
	createdAt   time.Time
}

// New validates and creates a Round. roundDate, teeTime, and geoKey are
// optional; a round missing both dates is never discoverable through a
// date-windowed search but may still be stored.
func New(
	id, hostID, courseName string,
	status Status, visibility Visibility,
	maxPlayers, playerCount int,
	roundDate, teeTime *time.Time,
	geoKey *GeoKey,
	createdAt time.Time,
) (Round, error) {
	if strings.TrimSpace(id) == "" {
		return Round{}, fmt.Errorf("round id is required")
	}
	if strings.Contains(id, "|") {
		return Round{}, fmt.Errorf("round id must not contain %q", "|")
	}
	if strings.TrimSpace(hostID) == "" {
		return Round{}, fmt.Errorf("host id is required")
	}
	if status == "" {
		status = StatusOpen
	}
	if !status.IsValid() {
		return Round{}, fmt.Errorf("unknown status %q", status)
	}
	if visibility == "" {
		visibility = VisibilityPublic
	}
	if !visibility.IsValid() {
		return Round{}, fmt.Errorf("unknown visibility %q", visibility)
	}
	if maxPlayers < 0 {
		return Round{}, fmt.Errorf("max players must not be negative")
	}
	if playerCount < 0 {
		return Round{}, fmt.Errorf("player count must not be negative")
	}

	return Round{
		id:          id,
		hostID:      hostID,
		courseName:  courseName,
		status:      status,
		visibility:  visibility,
		maxPlayers:  maxPlayers,
		playerCount: playerCount,
		roundDate:   roundDate,
		teeTime:     teeTime,
		geoKey:      geoKey,
		createdAt:   createdAt,
	}, nil
}

// Reconstruct rebuilds a Round from stored fields, bypassing validation.
// Used by the repository when loading documents.
func Reconstruct(
	id, hostID, courseName string,
	status Status, visibility Visibility,
	maxPlayers, playerCount int,
	roundDate, teeTime *time.Time,
	geoKey *GeoKey,
	createdAt time.Time,
) Round {
	return Round{
		id:          id,
		hostID:      hostID,
		courseName:  courseName,
		status:      status,
		visibility:  visibility,
		maxPlayers:  maxPlayers,
		playerCount: playerCount,
		roundDate:   roundDate,
		teeTime:     teeTime,
		geoKey:      geoKey,
		createdAt:   createdAt,
	}
}

// ID returns the round identifier.
func (r *Round) ID() string { return r.id }

// HostID returns the hosting player's identifier.
func (r *Round) HostID() string { return r.hostID }

// CourseName returns the course name.
func (r *Round) CourseName() string { return r.courseName }

// Status returns the lifecycle state.
func (r *Round) Status() Status { return r.status }

// Visibility returns the discovery visibility.
func (r *Round) Visibility() Visibility { return r.visibility }

// MaxPlayers returns the player capacity (0 = unlimited).
func (r *Round) MaxPlayers() int { return r.maxPlayers }

// PlayerCount returns the current number of joined players.
func (r *Round) PlayerCount() int { return r.playerCount }

// RoundDate returns the date-level schedule, if set.
func (r *Round) RoundDate() *time.Time { return r.roundDate }

// TeeTime returns the exact scheduled tee time, if set.
func (r *Round) TeeTime() *time.Time { return r.teeTime }

// GeoKey returns the location summary, if set.
func (r *Round) GeoKey() *GeoKey { return r.geoKey }

// CreatedAt returns the creation timestamp.
func (r *Round) CreatedAt() time.Time { return r.createdAt }

// IsFull reports whether the round is at capacity. Unlimited rounds
// (maxPlayers 0) are never full.
func (r *Round) IsFull() bool {
	return r.maxPlayers > 0 && r.playerCount >= r.maxPlayers
}

// EffectiveDate returns the ordering date: the round date when set,
// falling back to the tee time.
func (r *Round) EffectiveDate() (time.Time, bool) {
	if r.roundDate != nil {
		return *r.roundDate, true
	}
	if r.teeTime != nil {
		return *r.teeTime, true
	}
	return time.Time{}, false
}

// EffectiveDateMillis returns the effective date as unix milliseconds,
// or FarFutureMillis when the round has no date at all.
func (r *Round) EffectiveDateMillis() int64 {
	t, ok := r.EffectiveDate()
	if !ok {
		return FarFutureMillis
	}
	return t.UnixMilli()
}
