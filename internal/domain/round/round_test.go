package round

import (
	"testing"
	"time"
)

func ptr[T any](v T) *T { return &v }

func TestNew_Validation(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name    string
		id      string
		hostID  string
		status  Status
		vis     Visibility
		max     int
		count   int
		wantErr bool
	}{
		{"valid", "r1", "h1", StatusOpen, VisibilityPublic, 4, 2, false},
		{"empty id", "", "h1", StatusOpen, VisibilityPublic, 4, 2, true},
		{"whitespace id", "   ", "h1", StatusOpen, VisibilityPublic, 4, 2, true},
		{"id with separator", "a|b", "h1", StatusOpen, VisibilityPublic, 4, 2, true},
		{"empty host", "r1", "", StatusOpen, VisibilityPublic, 4, 2, true},
		{"unknown status", "r1", "h1", "pending", VisibilityPublic, 4, 2, true},
		{"unknown visibility", "r1", "h1", StatusOpen, "hidden", 4, 2, true},
		{"negative max players", "r1", "h1", StatusOpen, VisibilityPublic, -1, 0, true},
		{"negative player count", "r1", "h1", StatusOpen, VisibilityPublic, 4, -1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.id, tt.hostID, "", tt.status, tt.vis, tt.max, tt.count, nil, nil, nil, now)
			if (err != nil) != tt.wantErr {
				t.Errorf("err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNew_Defaults(t *testing.T) {
	r, err := New("r1", "h1", "", "", "", 0, 0, nil, nil, nil, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Status() != StatusOpen {
		t.Errorf("status = %q, want %q", r.Status(), StatusOpen)
	}
	if r.Visibility() != VisibilityPublic {
		t.Errorf("visibility = %q, want %q", r.Visibility(), VisibilityPublic)
	}
}

func TestIsFull(t *testing.T) {
	tests := []struct {
		name       string
		max, count int
		want       bool
	}{
		{"at capacity", 4, 4, true},
		{"over capacity", 4, 5, true},
		{"has room", 4, 3, false},
		{"unlimited never full", 0, 100, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Reconstruct("r1", "h1", "", StatusOpen, VisibilityPublic, tt.max, tt.count, nil, nil, nil, time.Time{})
			if got := r.IsFull(); got != tt.want {
				t.Errorf("IsFull = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEffectiveDate_Fallback(t *testing.T) {
	date := time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC)
	tee := time.Date(2026, 9, 5, 8, 30, 0, 0, time.UTC)

	t.Run("round date wins", func(t *testing.T) {
		r := Reconstruct("r1", "h1", "", StatusOpen, VisibilityPublic, 0, 0, ptr(date), ptr(tee), nil, time.Time{})
		d, ok := r.EffectiveDate()
		if !ok || !d.Equal(date) {
			t.Errorf("EffectiveDate = (%v, %v), want (%v, true)", d, ok, date)
		}
	})

	t.Run("tee time fallback", func(t *testing.T) {
		r := Reconstruct("r1", "h1", "", StatusOpen, VisibilityPublic, 0, 0, nil, ptr(tee), nil, time.Time{})
		d, ok := r.EffectiveDate()
		if !ok || !d.Equal(tee) {
			t.Errorf("EffectiveDate = (%v, %v), want (%v, true)", d, ok, tee)
		}
	})

	t.Run("no dates", func(t *testing.T) {
		r := Reconstruct("r1", "h1", "", StatusOpen, VisibilityPublic, 0, 0, nil, nil, nil, time.Time{})
		if _, ok := r.EffectiveDate(); ok {
			t.Error("expected no effective date")
		}
		if got := r.EffectiveDateMillis(); got != FarFutureMillis {
			t.Errorf("EffectiveDateMillis = %d, want FarFutureMillis", got)
		}
	})
}

func TestNewGeoKey(t *testing.T) {
	k, err := NewGeoKey(37.3382, -121.8863)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if k.Hash() == "" {
		t.Error("expected a computed geohash")
	}
	if k.Lat() != 37.3382 || k.Lng() != -121.8863 {
		t.Errorf("coordinates = (%v, %v)", k.Lat(), k.Lng())
	}

	if _, err := NewGeoKey(91, 0); err == nil {
		t.Error("expected error for out-of-range latitude")
	}
}
