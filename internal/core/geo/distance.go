// Package geo provides great-circle distance calculations between
// booth and user coordinates using the haversine formula.
package geo

import (
	"math"

	"greenloop/internal/core/domain"
)

// EarthRadiusKm is the mean Earth radius in kilometers.
const EarthRadiusKm = 6371.0

// Distance returns the great-circle distance in kilometers between two
// coordinates. Both coordinates must be present and in range; callers with
// booths lacking coordinates must guard or skip distance-dependent sorting.
func Distance(a, b *domain.Coordinate) (float64, error) {
	if a == nil || b == nil || !a.Valid() || !b.Valid() {
		return 0, domain.ErrInvalidCoordinate
	}

	lat1 := toRadians(a.Latitude)
	lat2 := toRadians(b.Latitude)
	dLat := toRadians(b.Latitude - a.Latitude)
	dLon := toRadians(b.Longitude - a.Longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusKm * c, nil
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
