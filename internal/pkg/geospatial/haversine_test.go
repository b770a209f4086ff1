package geospatial_test

import (
	"math"
	"testing"

	"github.com/dhruvjain/wayfarer/internal/core/domain"
	"github.com/dhruvjain/wayfarer/internal/pkg/geospatial"
)

func TestHaversineKm(t *testing.T) {
	bilbao := domain.GeoPoint{Lat: 43.263, Lon: -2.935}
	donostia := domain.GeoPoint{Lat: 43.318, Lon: -1.981}

	got := geospatial.HaversineKm(bilbao, donostia)
	if math.Abs(got-77.5) > 2 {
		t.Errorf("Bilbao-Donostia distance = %.1f km, expected ~77.5", got)
	}

	if d := geospatial.HaversineKm(bilbao, bilbao); d != 0 {
		t.Errorf("distance to self = %f, expected 0", d)
	}
}

func TestPathLengthKm(t *testing.T) {
	if l := geospatial.PathLengthKm(nil); l != 0 {
		t.Errorf("empty path length = %f", l)
	}

	pts := []domain.GeoPoint{
		{Lat: 0, Lon: 0},
		{Lat: 0, Lon: 1},
		{Lat: 0, Lon: 2},
	}
	total := geospatial.PathLengthKm(pts)
	leg := geospatial.HaversineKm(pts[0], pts[1])
	if math.Abs(total-2*leg) > 0.001 {
		t.Errorf("path length = %f, expected %f", total, 2*leg)
	}
}
