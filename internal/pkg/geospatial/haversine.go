// Package geospatial provides great-circle distance helpers.
package geospatial

import (
	"math"

	"github.com/dhruvjain/wayfarer/internal/core/domain"
)

const earthRadiusKm = 6371.0

// HaversineKm returns the great-circle distance between two points in kilometers.
func HaversineKm(a, b domain.GeoPoint) float64 {
	latA := a.Lat * math.Pi / 180
	latB := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(latA)*math.Cos(latB)*math.Sin(dLon/2)*math.Sin(dLon/2)

	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}

// PathLengthKm returns the total length of the polyline through pts, in order.
func PathLengthKm(pts []domain.GeoPoint) float64 {
	var total float64
	for i := 1; i < len(pts); i++ {
		total += HaversineKm(pts[i-1], pts[i])
	}
	return total
}
