package geo

import (
	"math"

	"github.com/planmytrip/backend/internal/core/domain"
)

const earthRadiusKm = 6371.0

// DistanceKm calculates the great-circle distance in kilometers between two
// coordinates. Full precision; round only at display time so chained sums
// don't compound rounding error.
func DistanceKm(a, b domain.Coordinate) float64 {
	dLat := toRad(b.Lat - a.Lat)
	dLon := toRad(b.Lon - a.Lon)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(a.Lat))*math.Cos(toRad(b.Lat))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadiusKm * c
}

// RoundKm rounds a distance to 2 decimal places for display.
func RoundKm(km float64) float64 {
	return math.Round(km*100) / 100
}

// PathLengthKm sums pairwise great-circle distances over an ordered
// coordinate sequence.
func PathLengthKm(points []domain.Coordinate) float64 {
	var total float64
	for i := 1; i < len(points); i++ {
		total += DistanceKm(points[i-1], points[i])
	}
	return total
}

// BoundingBox returns a box around a point with the given radius in km,
// for coarse spatial prefiltering.
func BoundingBox(center domain.Coordinate, radiusKm float64) (minLat, minLon, maxLat, maxLon float64) {
	latDelta := radiusKm / 111.32
	lonDelta := radiusKm / (111.32 * math.Cos(toRad(center.Lat)))

	return center.Lat - latDelta, center.Lon - lonDelta, center.Lat + latDelta, center.Lon + lonDelta
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
