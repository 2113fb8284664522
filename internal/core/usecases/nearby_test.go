package usecases_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/planmytrip/backend/internal/core/domain"
	"github.com/planmytrip/backend/internal/core/usecases"
)

// --- Mock PlaceDiscovery ---

type mockDiscovery struct {
	findNearbyFn func(ctx context.Context, center domain.Coordinate, radiusKm float64) ([]domain.Place, error)
	calls        int
}

func (m *mockDiscovery) FindNearby(ctx context.Context, center domain.Coordinate, radiusKm float64) ([]domain.Place, error) {
	m.calls++
	if m.findNearbyFn != nil {
		return m.findNearbyFn(ctx, center, radiusKm)
	}
	return nil, nil
}

// --- Mock CacheService ---

type mockCache struct {
	data map[string][]byte
}

func newMockCache() *mockCache { return &mockCache{data: map[string][]byte{}} }

func (m *mockCache) Get(ctx context.Context, key string) ([]byte, error) {
	if v, ok := m.data[key]; ok {
		return v, nil
	}
	return nil, errors.New("miss")
}

func (m *mockCache) Set(ctx context.Context, key string, value []byte, ttlSeconds int) error {
	m.data[key] = value
	return nil
}

func (m *mockCache) Delete(ctx context.Context, key string) error {
	delete(m.data, key)
	return nil
}

// --- Tests ---

func TestNearby_SortedByDistance(t *testing.T) {
	origin := domain.Coordinate{Lat: 15.3, Lon: 74.1}
	discovery := &mockDiscovery{
		findNearbyFn: func(ctx context.Context, center domain.Coordinate, radiusKm float64) ([]domain.Place, error) {
			if radiusKm != usecases.DefaultRadiusKm {
				t.Errorf("expected default radius, got %v", radiusKm)
			}
			return []domain.Place{
				{Name: "Far", Coordinate: domain.Coordinate{Lat: 15.45, Lon: 74.1}},
				{Name: "Near", Coordinate: domain.Coordinate{Lat: 15.31, Lon: 74.1}},
				{Name: "Mid", Coordinate: domain.Coordinate{Lat: 15.38, Lon: 74.1}},
			}, nil
		},
	}
	svc := usecases.NewNearbyService(knownPlaces(map[string]domain.Coordinate{"Goa": origin}), discovery, nil)

	result, err := svc.FindNearby(context.Background(), "Goa", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Origin != origin {
		t.Errorf("unexpected origin: %+v", result.Origin)
	}
	want := []string{"Near", "Mid", "Far"}
	for i, name := range want {
		if result.Places[i].Name != name {
			t.Errorf("position %d: expected %s, got %s", i, name, result.Places[i].Name)
		}
		if result.Places[i].DistanceKm == nil {
			t.Fatalf("place %s missing distance", name)
		}
	}
	if *result.Places[0].DistanceKm > *result.Places[2].DistanceKm {
		t.Error("places are not sorted nearest first")
	}
}

func TestNearby_EmptyName(t *testing.T) {
	svc := usecases.NewNearbyService(knownPlaces(nil), &mockDiscovery{}, nil)

	_, err := svc.FindNearby(context.Background(), "   ", 20)
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestNearby_UnknownPlace(t *testing.T) {
	svc := usecases.NewNearbyService(knownPlaces(nil), &mockDiscovery{}, nil)

	_, err := svc.FindNearby(context.Background(), "Atlantis", 20)
	if !errors.Is(err, domain.ErrPlaceNotFound) {
		t.Fatalf("expected ErrPlaceNotFound, got %v", err)
	}
}

func TestNearby_CachesDiscoveryOnly(t *testing.T) {
	origin := domain.Coordinate{Lat: 15.3, Lon: 74.1}
	geocoder := knownPlaces(map[string]domain.Coordinate{"Goa": origin})
	discovery := &mockDiscovery{
		findNearbyFn: func(ctx context.Context, center domain.Coordinate, radiusKm float64) ([]domain.Place, error) {
			return []domain.Place{{Name: "Beach", Coordinate: domain.Coordinate{Lat: 15.31, Lon: 74.1}}}, nil
		},
	}
	cache := newMockCache()
	svc := usecases.NewNearbyService(geocoder, discovery, cache)

	if _, err := svc.FindNearby(context.Background(), "Goa", 20); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.FindNearby(context.Background(), "Goa", 20); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if discovery.calls != 1 {
		t.Errorf("expected discovery hit once, got %d", discovery.calls)
	}
	// Geocoding stays a live call every time: no memoization by design.
	if len(geocoder.calls) != 2 {
		t.Errorf("expected 2 live geocode calls, got %d", len(geocoder.calls))
	}
	// Cached payload round-trips cleanly.
	for _, v := range cache.data {
		var places []domain.Place
		if err := json.Unmarshal(v, &places); err != nil {
			t.Fatalf("cached payload is not valid JSON: %v", err)
		}
	}
}
