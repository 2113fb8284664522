package ports

import (
	"context"

	"github.com/planmytrip/backend/internal/core/domain"
)

// Geocoder resolves a free-text place name to a coordinate. A lookup that
// searches successfully but matches nothing returns domain.ErrPlaceNotFound;
// transport or upstream failures return *domain.UpstreamError.
type Geocoder interface {
	Resolve(ctx context.Context, name string) (domain.Coordinate, error)
}

// PlaceDiscovery queries a spatial POI index around a point. Results are
// unsorted; distance augmentation and ordering are the caller's concern.
type PlaceDiscovery interface {
	FindNearby(ctx context.Context, center domain.Coordinate, radiusKm float64) ([]domain.Place, error)
}

// RoadRouter fetches road-following geometry for an ordered coordinate list.
// Display only: the road distance is never persisted as the authoritative
// route distance.
type RoadRouter interface {
	Route(ctx context.Context, points []domain.Coordinate) (*domain.GeoLineString, float64, error)
}

// EventPublisher publishes trip lifecycle events to a message broker.
type EventPublisher interface {
	PublishTripCreated(ctx context.Context, trip *domain.Trip) error
	PublishRouteSaved(ctx context.Context, trip *domain.Trip) error
}

// CacheService provides read-through caching and short-lived session state.
type CacheService interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttlSeconds int) error
	Delete(ctx context.Context, key string) error
}
