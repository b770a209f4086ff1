package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Location is one itinerary stop: a named geographic point, optionally
// with a full address string.
type Location struct {
	Name        string  `json:"name"`
	DisplayName string  `json:"display_name,omitempty"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

// locationWire tolerates both field-name conventions seen on the wire:
// lat/lon and latitude/longitude. Older clients sent the short form.
type locationWire struct {
	Name        string       `json:"name"`
	DisplayName string       `json:"display_name"`
	Latitude    *json.Number `json:"latitude"`
	Longitude   *json.Number `json:"longitude"`
	Lat         *json.Number `json:"lat"`
	Lon         *json.Number `json:"lon"`
}

// UnmarshalJSON decodes a location, accepting either lat/lon or
// latitude/longitude. The long form wins when both are present.
func (l *Location) UnmarshalJSON(data []byte) error {
	var w locationWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	lat, err := pickCoord(w.Latitude, w.Lat)
	if err != nil {
		return fmt.Errorf("%w: latitude: %v", ErrInvalidLocation, err)
	}
	lon, err := pickCoord(w.Longitude, w.Lon)
	if err != nil {
		return fmt.Errorf("%w: longitude: %v", ErrInvalidLocation, err)
	}

	l.Name = w.Name
	l.DisplayName = w.DisplayName
	l.Latitude = lat
	l.Longitude = lon
	return nil
}

func pickCoord(long, short *json.Number) (float64, error) {
	n := long
	if n == nil {
		n = short
	}
	if n == nil {
		return 0, fmt.Errorf("missing")
	}
	return n.Float64()
}

// Point returns the location's coordinates.
func (l Location) Point() GeoPoint {
	return GeoPoint{Lat: l.Latitude, Lon: l.Longitude}
}

// Validate checks the coordinate invariant. A Location must never be
// stored with non-finite or out-of-range coordinates.
func (l Location) Validate() error {
	if !l.Point().Valid() {
		return fmt.Errorf("%w: %q (%v, %v)", ErrInvalidLocation, l.Name, l.Latitude, l.Longitude)
	}
	return nil
}

// Date is a calendar date without a time component. Wire format: "2006-01-02".
type Date struct {
	time.Time
}

const dateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return Date{Time: t}, nil
}

func (d Date) String() string { return d.Format(dateLayout) }

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Trip is a named, dated itinerary. Location order is visit order and is
// preserved end-to-end through save, load, and reorder.
type Trip struct {
	ID          int64      `json:"id,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	StartDate   *Date      `json:"start_date,omitempty"`
	EndDate     *Date      `json:"end_date,omitempty"`
	Locations   []Location `json:"locations"`
	CreatedAt   time.Time  `json:"created_at,omitempty"`
}

// Validate checks all preconditions for persisting a trip. It never
// touches the network or database.
func (t *Trip) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return &ValidationError{Reason: "title is required"}
	}
	if len(t.Locations) == 0 {
		return &ValidationError{Reason: "at least one location is required"}
	}
	if t.StartDate != nil && t.EndDate != nil && t.EndDate.Before(t.StartDate.Time) {
		return &ValidationError{Reason: "end date must not be before start date"}
	}
	for i, loc := range t.Locations {
		if err := loc.Validate(); err != nil {
			return fmt.Errorf("location %d: %w", i, err)
		}
	}
	return nil
}

// Points returns the coordinates of all locations, in itinerary order.
func (t *Trip) Points() []GeoPoint {
	pts := make([]GeoPoint, len(t.Locations))
	for i, loc := range t.Locations {
		pts[i] = loc.Point()
	}
	return pts
}
