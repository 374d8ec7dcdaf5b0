package filter

import (
	"errors"
	"testing"
	"time"

	"github.com/teepals/roundsearch/internal/domain"
	"github.com/teepals/roundsearch/internal/domain/round"
)

func validParams() Params {
	return Params{
		CenterLat:   37.3382,
		CenterLng:   -121.8863,
		RadiusMiles: 25,
		WindowStart: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		WindowEnd:   time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestNew_Valid(t *testing.T) {
	f, err := New(validParams())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.IsDiscovery() {
		t.Error("radius request classified as discovery")
	}
	if f.RadiusMiles() != 25 {
		t.Errorf("radius = %v, want 25", f.RadiusMiles())
	}
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Params)
		wantField string
	}{
		{"missing window start", func(p *Params) { p.WindowStart = time.Time{} }, "window_start"},
		{"missing window end", func(p *Params) { p.WindowEnd = time.Time{} }, "window_end"},
		{"inverted window", func(p *Params) { p.WindowEnd = p.WindowStart.Add(-time.Hour) }, "window_end"},
		{"equal window", func(p *Params) { p.WindowEnd = p.WindowStart }, "window_end"},
		{"negative radius", func(p *Params) { p.RadiusMiles = -1 }, "radius_miles"},
		{"unknown status", func(p *Params) { p.Status = "pending" }, "status"},
		{"unknown visibility", func(p *Params) { p.Visibility = "hidden" }, "visibility"},
		{"latitude out of range", func(p *Params) { p.CenterLat = 91 }, "center"},
		{"longitude out of range", func(p *Params) { p.CenterLng = -181 }, "center"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validParams()
			tt.mutate(&p)
			_, err := New(p)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, domain.ErrInvalidFilter) {
				t.Fatalf("expected ErrInvalidFilter, got %v", err)
			}
			var fe *domain.FilterError
			if !errors.As(err, &fe) {
				t.Fatalf("expected FilterError, got %T", err)
			}
			if fe.Field != tt.wantField {
				t.Errorf("field = %q, want %q", fe.Field, tt.wantField)
			}
		})
	}
}

func TestNew_DiscoveryClassification(t *testing.T) {
	t.Run("zero radius", func(t *testing.T) {
		p := validParams()
		p.RadiusMiles = 0
		f, err := New(p)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !f.IsDiscovery() {
			t.Error("zero radius should select discovery mode")
		}
	})

	t.Run("explicit flag overrides radius", func(t *testing.T) {
		p := validParams()
		p.Discovery = true
		f, err := New(p)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !f.IsDiscovery() {
			t.Error("explicit discovery flag should select discovery mode")
		}
	})

	t.Run("discovery skips coordinate validation", func(t *testing.T) {
		p := validParams()
		p.RadiusMiles = 0
		p.CenterLat = 999
		if _, err := New(p); err != nil {
			t.Errorf("discovery mode should ignore coordinates: %v", err)
		}
	})
}

func TestFilter_NormalizedFields(t *testing.T) {
	p := validParams()
	p.Status = round.StatusOpen
	p.Visibility = round.VisibilityPrivate
	p.HostID = "host-1"
	p.ExcludeFull = true

	f, err := New(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Status() != round.StatusOpen {
		t.Errorf("status = %q", f.Status())
	}
	if f.Visibility() != round.VisibilityPrivate {
		t.Errorf("visibility = %q", f.Visibility())
	}
	if f.HostID() != "host-1" {
		t.Errorf("host = %q", f.HostID())
	}
	if !f.ExcludeFull() {
		t.Error("exclude full not carried")
	}
	if got := f.WindowDays(); got != 30 {
		t.Errorf("window days = %v, want 30", got)
	}
}
