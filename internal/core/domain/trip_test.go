package domain

import (
	"encoding/json"
	"errors"
	"math"
	"testing"
)

func TestLocationUnmarshal_LongForm(t *testing.T) {
	var loc Location
	err := json.Unmarshal([]byte(`{"name":"Paris","display_name":"Paris, France","latitude":48.8566,"longitude":2.3522}`), &loc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loc.Name != "Paris" || loc.Latitude != 48.8566 || loc.Longitude != 2.3522 {
		t.Errorf("unexpected location: %+v", loc)
	}
}

func TestLocationUnmarshal_ShortForm(t *testing.T) {
	var loc Location
	err := json.Unmarshal([]byte(`{"name":"Tokyo","lat":35.6762,"lon":139.6503}`), &loc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loc.Latitude != 35.6762 || loc.Longitude != 139.6503 {
		t.Errorf("short-form coordinates not picked up: %+v", loc)
	}
}

func TestLocationUnmarshal_LongFormWins(t *testing.T) {
	var loc Location
	err := json.Unmarshal([]byte(`{"name":"X","lat":1,"lon":2,"latitude":10,"longitude":20}`), &loc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loc.Latitude != 10 || loc.Longitude != 20 {
		t.Errorf("expected latitude/longitude to win, got %+v", loc)
	}
}

func TestLocationUnmarshal_MissingCoordinates(t *testing.T) {
	var loc Location
	err := json.Unmarshal([]byte(`{"name":"Nowhere"}`), &loc)
	if !errors.Is(err, ErrInvalidLocation) {
		t.Errorf("expected ErrInvalidLocation, got %v", err)
	}
}

func TestLocationValidate(t *testing.T) {
	tests := []struct {
		name string
		lat  float64
		lon  float64
		ok   bool
	}{
		{"valid", 48.85, 2.35, true},
		{"south pole", -90, 0, true},
		{"date line", 0, 180, true},
		{"lat too big", 90.01, 0, false},
		{"lon too big", 0, 180.5, false},
		{"nan lat", math.NaN(), 0, false},
		{"inf lon", 0, math.Inf(1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc := Location{Name: tt.name, Latitude: tt.lat, Longitude: tt.lon}
			err := loc.Validate()
			if tt.ok && err != nil {
				t.Errorf("expected valid, got %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidLocation) {
				t.Errorf("expected ErrInvalidLocation, got %v", err)
			}
		})
	}
}

func TestDateRoundTrip(t *testing.T) {
	d, err := ParseDate("2024-05-10")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `"2024-05-10"` {
		t.Errorf("unexpected wire format: %s", data)
	}

	var back Date
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Equal(d.Time) {
		t.Errorf("round trip mismatch: %v != %v", back, d)
	}
}

func TestTripValidate(t *testing.T) {
	valid := func() *Trip {
		return &Trip{
			Title: "Summer in Europe",
			Locations: []Location{
				{Name: "A", Latitude: 10, Longitude: 20},
				{Name: "B", Latitude: -5, Longitude: 30},
			},
		}
	}

	if err := valid().Validate(); err != nil {
		t.Fatalf("valid trip rejected: %v", err)
	}

	t.Run("missing title", func(t *testing.T) {
		tr := valid()
		tr.Title = "   "
		if err := tr.Validate(); !IsValidation(err) {
			t.Errorf("expected ValidationError, got %v", err)
		}
	})

	t.Run("empty itinerary", func(t *testing.T) {
		tr := valid()
		tr.Locations = nil
		if err := tr.Validate(); !IsValidation(err) {
			t.Errorf("expected ValidationError, got %v", err)
		}
	})

	t.Run("end before start", func(t *testing.T) {
		tr := valid()
		start, _ := ParseDate("2024-05-10")
		end, _ := ParseDate("2024-05-01")
		tr.StartDate, tr.EndDate = &start, &end
		if err := tr.Validate(); !IsValidation(err) {
			t.Errorf("expected ValidationError, got %v", err)
		}
	})

	t.Run("start equals end", func(t *testing.T) {
		tr := valid()
		d, _ := ParseDate("2024-05-10")
		tr.StartDate, tr.EndDate = &d, &d
		if err := tr.Validate(); err != nil {
			t.Errorf("same-day trip rejected: %v", err)
		}
	})

	t.Run("bad location", func(t *testing.T) {
		tr := valid()
		tr.Locations[1].Latitude = 120
		if err := tr.Validate(); !errors.Is(err, ErrInvalidLocation) {
			t.Errorf("expected ErrInvalidLocation, got %v", err)
		}
	})
}

func TestBoundsOf(t *testing.T) {
	if _, ok := BoundsOf(nil); ok {
		t.Error("expected ok=false for no points")
	}

	b, ok := BoundsOf([]GeoPoint{{Lat: 10, Lon: 20}, {Lat: -5, Lon: 30}, {Lat: 2, Lon: -8}})
	if !ok {
		t.Fatal("expected bounds")
	}
	if b.MinLat != -5 || b.MaxLat != 10 || b.MinLon != -8 || b.MaxLon != 30 {
		t.Errorf("unexpected bounds: %+v", b)
	}
	c := b.Center()
	if c.Lat != 2.5 || c.Lon != 11 {
		t.Errorf("unexpected center: %+v", c)
	}
}
