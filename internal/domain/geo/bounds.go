package geo

import (
	"math"
	"sort"
	"strings"

	"github.com/mmcloughlin/geohash"
)

// base32 is the geohash alphabet in lexicographic order.
const base32 = "0123456789bcdefghjkmnpqrstuvwxyz"

// Query precision limits. Precision 1 cells span ~45 degrees; precision 8
// cells are ~38m, below any radius worth a separate range query.
const (
	MinQueryPrecision = 1
	MaxQueryPrecision = 8
)

// milesPerDegree is the north-south extent of one degree of latitude.
const milesPerDegree = EarthRadiusMiles * math.Pi / 180

// Bound is a half-open range [Start, End) over the geohash key space,
// covering one cell or a run of lexicographically adjacent cells.
// An empty End means the range is unbounded above.
type Bound struct {
	Start string
	End   string
}

// PrecisionForRadius returns the coarsest geohash character length whose
// cells still measure at least radiusMiles in both dimensions at the given
// latitude. A 3x3 block of such cells centered on the query point is
// guaranteed to contain the whole search circle, so the bound count stays
// in single digits regardless of radius.
func PrecisionForRadius(radiusMiles, lat float64) int {
	for p := MaxQueryPrecision; p > MinQueryPrecision; p-- {
		latMi, lngMi := cellSizeMiles(p, lat)
		if latMi >= radiusMiles && lngMi >= radiusMiles {
			return p
		}
	}
	return MinQueryPrecision
}

// cellSizeMiles returns the north-south and east-west extent in miles of a
// geohash cell with the given character length at the given latitude.
// Geohash bits alternate starting with longitude, so longitude gets the
// extra bit at odd precisions.
func cellSizeMiles(precision int, lat float64) (latMiles, lngMiles float64) {
	totalBits := 5 * precision
	lngBits := (totalBits + 1) / 2
	latBits := totalBits / 2

	latDeg := 180 / math.Pow(2, float64(latBits))
	lngDeg := 360 / math.Pow(2, float64(lngBits))

	// Longitude degrees shrink toward the poles. Clamp the effective
	// latitude so cells at the poles keep a nonzero width and precision
	// selection terminates.
	effLat := math.Min(math.Abs(lat), 89)
	latMiles = latDeg * milesPerDegree
	lngMiles = lngDeg * milesPerDegree * math.Cos(effLat*math.Pi/180)
	return latMiles, lngMiles
}

// QueryBounds computes the merged geohash ranges covering a circle of
// radiusMiles around (lat, lng) at the given precision: the center cell
// plus its eight neighbors, deduplicated, sorted, and merged into
// contiguous runs. Longitude neighbors wrap across the antimeridian.
// A non-positive radius is degenerate and yields no bounds.
func QueryBounds(lat, lng, radiusMiles float64, precision int) []Bound {
	if radiusMiles <= 0 {
		return nil
	}
	if precision < MinQueryPrecision {
		precision = MinQueryPrecision
	}
	if precision > MaxQueryPrecision {
		precision = MaxQueryPrecision
	}

	center := geohash.EncodeWithPrecision(lat, lng, uint(precision))
	cells := append(geohash.Neighbors(center), center)

	seen := make(map[string]struct{}, len(cells))
	unique := cells[:0]
	for _, c := range cells {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		unique = append(unique, c)
	}
	sort.Strings(unique)

	return mergeCells(unique)
}

// mergeCells converts sorted unique cells into half-open ranges, merging
// runs whose ranges abut so each run costs a single store query.
func mergeCells(cells []string) []Bound {
	bounds := make([]Bound, 0, len(cells))
	for _, c := range cells {
		end := cellRangeEnd(c)
		if n := len(bounds); n > 0 && bounds[n-1].End == c {
			bounds[n-1].End = end
			continue
		}
		bounds = append(bounds, Bound{Start: c, End: end})
	}
	return bounds
}

// cellRangeEnd returns the exclusive upper bound of a cell's prefix range:
// the same-length successor of the cell in base32 order, zero-filling
// positions consumed by the carry. The all-'z' cell has no successor and
// returns "" (unbounded).
func cellRangeEnd(cell string) string {
	b := []byte(cell)
	for i := len(b) - 1; i >= 0; i-- {
		idx := strings.IndexByte(base32, b[i])
		if idx < len(base32)-1 {
			b[i] = base32[idx+1]
			return string(b)
		}
		b[i] = base32[0]
	}
	return ""
}
