// Package nominatim implements ports.Geocoder against a Nominatim-style
// search endpoint.
package nominatim

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dhruvjain/wayfarer/internal/core/domain"
)

const defaultBaseURL = "https://nominatim.openstreetmap.org"

// Client talks to a Nominatim instance. Nominatim's usage policy
// requires an identifying User-Agent.
type Client struct {
	baseURL   string
	userAgent string
	http      *http.Client
}

// New creates a geocoder client. An empty baseURL uses the public
// Nominatim instance; httpClient may be nil.
func New(baseURL, userAgent string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{baseURL: baseURL, userAgent: userAgent, http: httpClient}
}

// result is one Nominatim search hit. Coordinates come back as strings.
type result struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
}

// Search geocodes a free-text query. Hits with unparseable coordinates
// or the 0,0 null island placeholder are skipped.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]domain.Location, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("format", "json")
	q.Set("limit", strconv.Itoa(limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocode %q: %w", query, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocode %q: status %d", query, resp.StatusCode)
	}

	var results []result
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("decode geocode response: %w", err)
	}

	locs := make([]domain.Location, 0, len(results))
	for _, r := range results {
		lat, errLat := strconv.ParseFloat(r.Lat, 64)
		lon, errLon := strconv.ParseFloat(r.Lon, 64)
		if errLat != nil || errLon != nil {
			continue
		}
		if lat == 0 && lon == 0 {
			continue
		}
		locs = append(locs, domain.Location{
			Name:        displayLabel(r),
			DisplayName: r.DisplayName,
			Latitude:    lat,
			Longitude:   lon,
		})
	}
	return locs, nil
}

// displayLabel prefers the short name, falling back to the first segment
// of the full display name.
func displayLabel(r result) string {
	if r.Name != "" {
		return r.Name
	}
	if i := strings.Index(r.DisplayName, ","); i > 0 {
		return r.DisplayName[:i]
	}
	return r.DisplayName
}
