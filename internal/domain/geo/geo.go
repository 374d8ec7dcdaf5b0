package geo

import (
	"math"

	"github.com/mmcloughlin/geohash"
)

// EarthRadiusMiles is the mean radius of Earth used for haversine distance.
const EarthRadiusMiles = 3958.8

// StoredPrecision is the geohash character length stored on a round's
// geospatial key. 10 characters resolve to roughly a meter, which is
// far below any search radius the engine accepts.
const StoredPrecision = 10

// Encode returns the stored full-precision geohash for a coordinate pair.
func Encode(lat, lng float64) string {
	return geohash.EncodeWithPrecision(lat, lng, StoredPrecision)
}

// Haversine returns the great-circle distance in miles between two points
// specified by latitude and longitude in degrees. Identical coordinates
// return exactly 0.
func Haversine(lat1, lng1, lat2, lng2 float64) float64 {
	if lat1 == lat2 && lng1 == lng2 {
		return 0
	}

	lat1r := lat1 * math.Pi / 180
	lat2r := lat2 * math.Pi / 180
	dLat := (lat2 - lat1) * math.Pi / 180
	dLng := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1r)*math.Cos(lat2r)*math.Sin(dLng/2)*math.Sin(dLng/2)
	// Clamp against rounding drift before the square roots; a slightly
	// negative 1-a breaks Sqrt for antipodal points.
	if a > 1 {
		a = 1
	}
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusMiles * c
}

// ValidateCoordinates checks that latitude is in [-90,90] and longitude in [-180,180].
func ValidateCoordinates(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}
