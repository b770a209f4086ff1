// Package client is a thin HTTP wrapper over the trip REST API, used by
// the planner. No retries; failures surface to the caller unchanged.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/dhruvjain/wayfarer/internal/core/domain"
)

// APIError is a non-2xx response decoded from the server's error body.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// Client talks to the trip API at a base URL.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client. httpClient may be nil.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{baseURL: baseURL, http: httpClient}
}

type tripsEnvelope struct {
	Trips []domain.Trip `json:"trips"`
}

type tripEnvelope struct {
	Trip domain.Trip `json:"trip"`
}

type locationsEnvelope struct {
	Locations []domain.Location `json:"locations"`
}

// ListTrips returns all trips, newest first.
func (c *Client) ListTrips(ctx context.Context) ([]domain.Trip, error) {
	var out tripsEnvelope
	if err := c.do(ctx, http.MethodGet, "/api/trips", nil, &out); err != nil {
		return nil, err
	}
	return out.Trips, nil
}

// GetTrip fetches one trip by id.
func (c *Client) GetTrip(ctx context.Context, id int64) (*domain.Trip, error) {
	var out tripEnvelope
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/trips/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out.Trip, nil
}

// CreateTrip persists a new trip and returns the server's version, with
// the id assigned.
func (c *Client) CreateTrip(ctx context.Context, trip *domain.Trip) (*domain.Trip, error) {
	var out tripEnvelope
	if err := c.do(ctx, http.MethodPost, "/api/trips", trip, &out); err != nil {
		return nil, err
	}
	return &out.Trip, nil
}

// UpdateTrip replaces a trip, locations included, and returns the
// server's version.
func (c *Client) UpdateTrip(ctx context.Context, trip *domain.Trip) (*domain.Trip, error) {
	var out tripEnvelope
	path := fmt.Sprintf("/api/trips/%d", trip.ID)
	if err := c.do(ctx, http.MethodPut, path, trip, &out); err != nil {
		return nil, err
	}
	return &out.Trip, nil
}

// DeleteTrip removes a trip. The response body is ignored.
func (c *Client) DeleteTrip(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/trips/%d", id), nil, nil)
}

// Search geocodes a free-text query.
func (c *Client) Search(ctx context.Context, query string) ([]domain.Location, error) {
	var out locationsEnvelope
	path := "/api/search?q=" + url.QueryEscape(query)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Locations, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode, Message: "request failed"}
	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error != "" {
		apiErr.Message = body.Error
	}
	return apiErr
}
