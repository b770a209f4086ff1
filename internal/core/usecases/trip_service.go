package usecases

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/dhruvjain/wayfarer/internal/core/domain"
	"github.com/dhruvjain/wayfarer/internal/core/ports"
)

const (
	tripListCacheKey = "trips:all"
	tripListTTL      = 60  // seconds; the list changes on every write
	tripTTL          = 300 // seconds for a single trip
)

// TripService handles trip CRUD with validation, caching, and events.
type TripService struct {
	trips  ports.TripRepository
	cache  ports.CacheService
	events ports.EventPublisher
}

// NewTripService creates a new TripService. cache and events may be nil.
func NewTripService(trips ports.TripRepository, cache ports.CacheService, events ports.EventPublisher) *TripService {
	return &TripService{trips: trips, cache: cache, events: events}
}

// List returns all trips, newest first.
func (s *TripService) List(ctx context.Context) ([]domain.Trip, error) {
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, tripListCacheKey); err == nil {
			var trips []domain.Trip
			if err := json.Unmarshal(data, &trips); err == nil {
				return trips, nil
			}
		}
	}

	trips, err := s.trips.List(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(trips); err == nil {
			_ = s.cache.Set(ctx, tripListCacheKey, data, tripListTTL)
		}
	}

	return trips, nil
}

// GetByID returns a single trip.
func (s *TripService) GetByID(ctx context.Context, id int64) (*domain.Trip, error) {
	cacheKey := tripCacheKey(id)
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			var trip domain.Trip
			if err := json.Unmarshal(data, &trip); err == nil {
				return &trip, nil
			}
		}
	}

	trip, err := s.trips.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(trip); err == nil {
			_ = s.cache.Set(ctx, cacheKey, data, tripTTL)
		}
	}

	return trip, nil
}

// Create validates and stores a new trip. The trip's ID is assigned on success.
func (s *TripService) Create(ctx context.Context, trip *domain.Trip) error {
	if err := trip.Validate(); err != nil {
		return err
	}

	if err := s.trips.Create(ctx, trip); err != nil {
		return fmt.Errorf("create trip: %w", err)
	}

	s.invalidate(ctx, 0)
	if s.events != nil {
		if err := s.events.PublishTripCreated(ctx, trip); err != nil {
			slog.Warn("publish trip.created failed", "trip_id", trip.ID, "error", err)
		}
	}
	return nil
}

// Update validates and replaces an existing trip, locations included.
func (s *TripService) Update(ctx context.Context, trip *domain.Trip) error {
	if trip.ID == 0 {
		return &domain.ValidationError{Reason: "trip id is required"}
	}
	if err := trip.Validate(); err != nil {
		return err
	}

	if err := s.trips.Update(ctx, trip); err != nil {
		return err
	}

	s.invalidate(ctx, trip.ID)
	if s.events != nil {
		if err := s.events.PublishTripUpdated(ctx, trip); err != nil {
			slog.Warn("publish trip.updated failed", "trip_id", trip.ID, "error", err)
		}
	}
	return nil
}

// Delete removes a trip.
func (s *TripService) Delete(ctx context.Context, id int64) error {
	if err := s.trips.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx, id)
	if s.events != nil {
		if err := s.events.PublishTripDeleted(ctx, id); err != nil {
			slog.Warn("publish trip.deleted failed", "trip_id", id, "error", err)
		}
	}
	return nil
}

// invalidate drops the trip list key and, when id is non-zero, the single-trip key.
func (s *TripService) invalidate(ctx context.Context, id int64) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Delete(ctx, tripListCacheKey)
	if id != 0 {
		_ = s.cache.Delete(ctx, tripCacheKey(id))
	}
}

func tripCacheKey(id int64) string {
	return fmt.Sprintf("trips:id:%d", id)
}
