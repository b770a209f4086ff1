package ports

import (
	"context"

	"github.com/dhruvjain/wayfarer/internal/core/domain"
)

// TripRepository persists trips and their ordered locations.
type TripRepository interface {
	// List returns all trips, newest first, locations in itinerary order.
	List(ctx context.Context) ([]domain.Trip, error)
	// GetByID returns a single trip or domain.ErrTripNotFound.
	GetByID(ctx context.Context, id int64) (*domain.Trip, error)
	// Create stores a new trip and fills in its ID and CreatedAt.
	Create(ctx context.Context, trip *domain.Trip) error
	// Update replaces the trip row and its full location list.
	Update(ctx context.Context, trip *domain.Trip) error
	// Delete removes a trip and its locations, or returns domain.ErrTripNotFound.
	Delete(ctx context.Context, id int64) error
}
