package geo

import (
	"math"
	"sort"
	"testing"
)

func TestPrecisionForRadius(t *testing.T) {
	tests := []struct {
		name   string
		radius float64
		lat    float64
		want   int
	}{
		{"tiny radius hits the floor", 0.005, 37, MaxQueryPrecision},
		{"one mile", 1, 37, 5},
		{"twenty five miles", 25, 37, 3},
		{"one hundred miles", 100, 37, 2},
		{"continental radius hits the ceiling", 1000, 37, MinQueryPrecision},
		{"high latitude picks a coarser cell", 25, 80, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PrecisionForRadius(tt.radius, tt.lat); got != tt.want {
				t.Errorf("PrecisionForRadius(%v, %v) = %d, want %d", tt.radius, tt.lat, got, tt.want)
			}
		})
	}
}

func TestCellSizeMiles_ShrinksWithLatitude(t *testing.T) {
	_, lngEquator := cellSizeMiles(4, 0)
	_, lngNorth := cellSizeMiles(4, 60)
	if lngNorth >= lngEquator {
		t.Errorf("expected narrower cells at 60N: %v >= %v", lngNorth, lngEquator)
	}

	// Clamping keeps polar cells nonzero so precision selection terminates.
	_, lngPole := cellSizeMiles(4, 90)
	if lngPole <= 0 {
		t.Errorf("expected positive cell width at the pole, got %v", lngPole)
	}
}

func TestCellRangeEnd(t *testing.T) {
	tests := []struct {
		cell string
		want string
	}{
		{"9q9", "9qb"},
		{"9qz", "9r0"},
		{"0", "1"},
		{"9zz", "b00"},
		{"z", ""},
		{"zzz", ""},
	}
	for _, tt := range tests {
		if got := cellRangeEnd(tt.cell); got != tt.want {
			t.Errorf("cellRangeEnd(%q) = %q, want %q", tt.cell, got, tt.want)
		}
	}
}

func TestMergeCells_AdjacentRuns(t *testing.T) {
	bounds := mergeCells([]string{"9q8", "9q9", "9qc"})
	if len(bounds) != 2 {
		t.Fatalf("expected 2 bounds, got %d: %v", len(bounds), bounds)
	}
	if bounds[0].Start != "9q8" || bounds[0].End != "9qb" {
		t.Errorf("merged run = [%s, %s), want [9q8, 9qb)", bounds[0].Start, bounds[0].End)
	}
	if bounds[1].Start != "9qc" || bounds[1].End != "9qd" {
		t.Errorf("second bound = [%s, %s), want [9qc, 9qd)", bounds[1].Start, bounds[1].End)
	}
}

func TestQueryBounds_DegenerateRadius(t *testing.T) {
	if b := QueryBounds(37.3382, -121.8863, 0, 4); b != nil {
		t.Errorf("expected nil for zero radius, got %v", b)
	}
	if b := QueryBounds(37.3382, -121.8863, -5, 4); b != nil {
		t.Errorf("expected nil for negative radius, got %v", b)
	}
}

func TestQueryBounds_WellFormed(t *testing.T) {
	centers := []struct {
		name     string
		lat, lng float64
	}{
		{"san jose", 37.3382, -121.8863},
		{"equator", 0.01, 0.01},
		{"antimeridian east", 0, 179.9999},
		{"antimeridian west", 0, -179.9999},
		{"near north pole", 89.5, 10},
		{"southern hemisphere", -33.8688, 151.2093},
	}
	for _, c := range centers {
		t.Run(c.name, func(t *testing.T) {
			const radius = 10.0
			precision := PrecisionForRadius(radius, c.lat)
			bounds := QueryBounds(c.lat, c.lng, radius, precision)

			if len(bounds) == 0 || len(bounds) > 9 {
				t.Fatalf("expected 1..9 bounds, got %d", len(bounds))
			}
			if !sort.SliceIsSorted(bounds, func(i, j int) bool {
				return bounds[i].Start < bounds[j].Start
			}) {
				t.Errorf("bounds not sorted: %v", bounds)
			}
			for i, b := range bounds {
				if b.Start == "" {
					t.Errorf("bound %d has empty start", i)
				}
				if b.End != "" && b.End <= b.Start {
					t.Errorf("bound %d is empty or inverted: [%s, %s)", i, b.Start, b.End)
				}
				if i > 0 && bounds[i-1].End != "" && b.Start < bounds[i-1].End {
					t.Errorf("bound %d overlaps previous: %v then %v", i, bounds[i-1], b)
				}
			}
		})
	}
}

func TestQueryBounds_CoversCircle(t *testing.T) {
	centers := []struct {
		lat, lng, radius float64
	}{
		{37.3382, -121.8863, 25},
		{37.3382, -121.8863, 1},
		{0, 179.9999, 10},
		{-33.8688, 151.2093, 50},
	}
	for _, c := range centers {
		precision := PrecisionForRadius(c.radius, c.lat)
		bounds := QueryBounds(c.lat, c.lng, c.radius, precision)

		// Sample the center plus eight compass points on the circle rim.
		dLat := c.radius / milesPerDegree
		dLng := c.radius / (milesPerDegree * math.Cos(c.lat*math.Pi/180))
		diag := 1 / math.Sqrt2
		offsets := [][2]float64{
			{0, 0},
			{dLat, 0}, {-dLat, 0}, {0, dLng}, {0, -dLng},
			{dLat * diag, dLng * diag}, {dLat * diag, -dLng * diag},
			{-dLat * diag, dLng * diag}, {-dLat * diag, -dLng * diag},
		}
		for _, off := range offsets {
			lat := c.lat + off[0]
			lng := c.lng + off[1]
			if lng > 180 {
				lng -= 360
			}
			if lng < -180 {
				lng += 360
			}
			hash := Encode(lat, lng)
			if !inBounds(bounds, hash) {
				t.Errorf("point (%v, %v) hash %s not covered by bounds %v of circle (%v, %v, r=%v)",
					lat, lng, hash, bounds, c.lat, c.lng, c.radius)
			}
		}
	}
}

func inBounds(bounds []Bound, hash string) bool {
	for _, b := range bounds {
		if hash >= b.Start && (b.End == "" || hash < b.End) {
			return true
		}
	}
	return false
}
