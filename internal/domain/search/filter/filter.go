// Package filter holds the validated search intent for one request.
package filter

import (
	"time"

	"github.com/teepals/roundsearch/internal/domain"
	"github.com/teepals/roundsearch/internal/domain/geo"
	"github.com/teepals/roundsearch/internal/domain/round"
)

// Params carries the raw, caller-supplied search parameters.
type Params struct {
	CenterLat   float64
	CenterLng   float64
	RadiusMiles float64
	WindowStart time.Time
	WindowEnd   time.Time
	Status      round.Status
	Visibility  round.Visibility
	HostID      string
	ExcludeFull bool
	Discovery   bool
}

// Filter is a validated search request. A zero or absent radius selects
// discovery mode, which ignores the center coordinates entirely.
type Filter struct {
	centerLat   float64
	centerLng   float64
	radiusMiles float64
	windowStart time.Time
	windowEnd   time.Time
	status      round.Status
	visibility  round.Visibility
	hostID      string
	excludeFull bool
	discovery   bool
}

// New validates and normalizes search parameters. Structural rules only;
// policy caps (max radius, max window length) belong to the orchestrator.
func New(p Params) (Filter, error) {
	if p.WindowStart.IsZero() {
		return Filter{}, domain.NewFilterError("window_start", "is required")
	}
	if p.WindowEnd.IsZero() {
		return Filter{}, domain.NewFilterError("window_end", "is required")
	}
	if !p.WindowEnd.After(p.WindowStart) {
		return Filter{}, domain.NewFilterError("window_end", "must be after window_start")
	}
	if p.RadiusMiles < 0 {
		return Filter{}, domain.NewFilterError("radius_miles", "must not be negative")
	}
	if p.Status != "" && !p.Status.IsValid() {
		return Filter{}, domain.NewFilterError("status", "unknown value")
	}
	if p.Visibility != "" && !p.Visibility.IsValid() {
		return Filter{}, domain.NewFilterError("visibility", "unknown value")
	}

	discovery := p.Discovery || p.RadiusMiles == 0
	if !discovery && !geo.ValidateCoordinates(p.CenterLat, p.CenterLng) {
		return Filter{}, domain.NewFilterError("center", "coordinates out of range")
	}

	return Filter{
		centerLat:   p.CenterLat,
		centerLng:   p.CenterLng,
		radiusMiles: p.RadiusMiles,
		windowStart: p.WindowStart,
		windowEnd:   p.WindowEnd,
		status:      p.Status,
		visibility:  p.Visibility,
		hostID:      p.HostID,
		excludeFull: p.ExcludeFull,
		discovery:   discovery,
	}, nil
}

// CenterLat returns the query center latitude (meaningless in discovery mode).
func (f *Filter) CenterLat() float64 { return f.centerLat }

// CenterLng returns the query center longitude (meaningless in discovery mode).
func (f *Filter) CenterLng() float64 { return f.centerLng }

// RadiusMiles returns the search radius.
func (f *Filter) RadiusMiles() float64 { return f.radiusMiles }

// WindowStart returns the inclusive lower date bound.
func (f *Filter) WindowStart() time.Time { return f.windowStart }

// WindowEnd returns the exclusive upper date bound.
func (f *Filter) WindowEnd() time.Time { return f.windowEnd }

// Status returns the requested status, or "" when unconstrained.
func (f *Filter) Status() round.Status { return f.status }

// Visibility returns the requested visibility, or "" for the default.
func (f *Filter) Visibility() round.Visibility { return f.visibility }

// HostID returns the requested host, or "" when unconstrained.
func (f *Filter) HostID() string { return f.hostID }

// ExcludeFull reports whether at-capacity rounds are dropped.
func (f *Filter) ExcludeFull() bool { return f.excludeFull }

// IsDiscovery reports whether this request runs the location-free flow.
func (f *Filter) IsDiscovery() bool { return f.discovery }

// WindowDays returns the window length in whole days, rounded up.
func (f *Filter) WindowDays() float64 {
	return f.windowEnd.Sub(f.windowStart).Hours() / 24
}
