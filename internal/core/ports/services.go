package ports

import (
	"context"

	"github.com/dhruvjain/wayfarer/internal/core/domain"
)

// Geocoder resolves free-text queries to candidate locations.
type Geocoder interface {
	Search(ctx context.Context, query string, limit int) ([]domain.Location, error)
}

// EventPublisher publishes trip lifecycle events to a message broker.
type EventPublisher interface {
	PublishTripCreated(ctx context.Context, trip *domain.Trip) error
	PublishTripUpdated(ctx context.Context, trip *domain.Trip) error
	PublishTripDeleted(ctx context.Context, id int64) error
}

// CacheService provides read-through caching.
type CacheService interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttlSeconds int) error
	Delete(ctx context.Context, key string) error
}
