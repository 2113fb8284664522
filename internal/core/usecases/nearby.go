package usecases

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/planmytrip/backend/internal/core/domain"
	"github.com/planmytrip/backend/internal/core/ports"
	"github.com/planmytrip/backend/internal/pkg/geo"
	"github.com/planmytrip/backend/internal/pkg/metrics"
)

// DefaultRadiusKm is the POI search radius when the caller does not give one.
const DefaultRadiusKm = 20.0

// NearbyResult is the response of a nearby-places query: the resolved
// origin plus discovered places sorted by distance, nearest first.
type NearbyResult struct {
	Origin domain.Coordinate `json:"origin"`
	Places []domain.Place    `json:"places"`
}

// NearbyService resolves a free-text place name and discovers categorized
// POIs around it. Geocoding is always a live call; only the POI result set
// is cached.
type NearbyService struct {
	geocoder  ports.Geocoder
	discovery ports.PlaceDiscovery
	cache     ports.CacheService
}

// NewNearbyService creates a new NearbyService. cache may be nil.
func NewNearbyService(geocoder ports.Geocoder, discovery ports.PlaceDiscovery, cache ports.CacheService) *NearbyService {
	return &NearbyService{geocoder: geocoder, discovery: discovery, cache: cache}
}

// FindNearby geocodes placeName and returns POIs within radiusKm of it,
// each augmented with its great-circle distance from the origin, sorted
// ascending.
func (s *NearbyService) FindNearby(ctx context.Context, placeName string, radiusKm float64) (*NearbyResult, error) {
	placeName = strings.TrimSpace(placeName)
	if placeName == "" {
		return nil, domain.NewValidationError("place_name", "required")
	}
	if radiusKm <= 0 {
		radiusKm = DefaultRadiusKm
	}

	origin, err := s.geocoder.Resolve(ctx, placeName)
	if err != nil {
		return nil, err
	}

	cacheKey := fmt.Sprintf("poi:nearby:%.4f:%.4f:%.0f", origin.Lat, origin.Lon, radiusKm)
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			var places []domain.Place
			if err := json.Unmarshal(data, &places); err == nil {
				metrics.CacheHits.WithLabelValues("poi_nearby").Inc()
				return &NearbyResult{Origin: origin, Places: places}, nil
			}
		}
		metrics.CacheMisses.WithLabelValues("poi_nearby").Inc()
	}

	places, err := s.discovery.FindNearby(ctx, origin, radiusKm)
	if err != nil {
		return nil, err
	}

	for i := range places {
		d := geo.RoundKm(geo.DistanceKm(origin, places[i].Coordinate))
		places[i].DistanceKm = &d
	}
	sort.SliceStable(places, func(i, j int) bool {
		return *places[i].DistanceKm < *places[j].DistanceKm
	})

	// POIs move rarely; 5 minutes keeps repeat planning snappy.
	if s.cache != nil {
		if data, err := json.Marshal(places); err == nil {
			_ = s.cache.Set(ctx, cacheKey, data, 300)
		}
	}

	return &NearbyResult{Origin: origin, Places: places}, nil
}
