package usecases

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dhruvjain/wayfarer/internal/core/domain"
	"github.com/dhruvjain/wayfarer/internal/core/ports"
)

// SearchService resolves location queries through a geocoder, with caching.
type SearchService struct {
	geo   ports.Geocoder
	cache ports.CacheService
}

// NewSearchService creates a new SearchService. cache may be nil.
func NewSearchService(geo ports.Geocoder, cache ports.CacheService) *SearchService {
	return &SearchService{geo: geo, cache: cache}
}

// Search returns candidate locations for a free-text query.
func (s *SearchService) Search(ctx context.Context, query string, limit int) ([]domain.Location, error) {
	if query == "" {
		return nil, &domain.ValidationError{Reason: "search query must not be empty"}
	}
	if limit <= 0 || limit > 10 {
		limit = 5
	}

	cacheKey := fmt.Sprintf("geo:search:%s:%d", query, limit)
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			var locs []domain.Location
			if err := json.Unmarshal(data, &locs); err == nil {
				return locs, nil
			}
		}
	}

	locs, err := s.geo.Search(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("geocode %q: %w", query, err)
	}

	// Geocoder results can repeat places the itinerary can't use; drop
	// anything that fails the coordinate invariant before it spreads.
	valid := locs[:0]
	for _, loc := range locs {
		if loc.Validate() == nil {
			valid = append(valid, loc)
		}
	}
	locs = valid

	// Cache for 5 minutes (place data doesn't change frequently)
	if s.cache != nil {
		if data, err := json.Marshal(locs); err == nil {
			_ = s.cache.Set(ctx, cacheKey, data, 300)
		}
	}

	return locs, nil
}
