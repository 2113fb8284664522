package osm_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/planmytrip/backend/internal/adapters/osm"
	"github.com/planmytrip/backend/internal/core/domain"
)

func TestOSRM_Route(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/route/v1/driving/") {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"code":"Ok","routes":[{"distance":415230.0,
			"geometry":{"coordinates":[[72.87,19.07],[73.85,18.52],[74.12,15.29]]}}]}`))
	}))
	defer srv.Close()

	router := osm.NewOSRMClient(srv.URL)
	line, km, err := router.Route(context.Background(), []domain.Coordinate{
		{Lat: 19.07, Lon: 72.87},
		{Lat: 15.29, Lon: 74.12},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if km != 415.23 {
		t.Errorf("expected 415.23 km, got %v", km)
	}
	if len(line.Coordinates) != 3 {
		t.Fatalf("expected 3 polyline points, got %d", len(line.Coordinates))
	}
	// GeoJSON pairs arrive lon-first and must be flipped.
	if line.Coordinates[0].Lat != 19.07 || line.Coordinates[0].Lon != 72.87 {
		t.Errorf("unexpected first point: %+v", line.Coordinates[0])
	}
}

func TestOSRM_Route_TooFewPoints(t *testing.T) {
	router := osm.NewOSRMClient("http://localhost:0")
	_, _, err := router.Route(context.Background(), []domain.Coordinate{{Lat: 1, Lon: 1}})

	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestOSRM_Route_NoRoute(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"code":"NoRoute","routes":[]}`))
	}))
	defer srv.Close()

	router := osm.NewOSRMClient(srv.URL)
	_, _, err := router.Route(context.Background(), []domain.Coordinate{
		{Lat: 1, Lon: 1}, {Lat: 2, Lon: 2},
	})

	var upstream *domain.UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
}
