package osm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/planmytrip/backend/internal/core/domain"
)

// OSRMClient implements ports.RoadRouter against an OSRM instance. The road
// geometry and distance are display-only; the persisted route distance stays
// the great-circle sum.
type OSRMClient struct {
	baseURL string
	client  *http.Client
}

// NewOSRMClient creates a road-routing client. baseURL defaults to the
// public OSRM demo server when empty.
func NewOSRMClient(baseURL string) *OSRMClient {
	if baseURL == "" {
		baseURL = "https://router.project-osrm.org"
	}
	return &OSRMClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type osrmResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Distance float64 `json:"distance"` // meters
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"` // [lon, lat]
		} `json:"geometry"`
	} `json:"routes"`
}

// Route fetches a driving polyline through the given points in order,
// returning the geometry and the road distance in kilometers.
func (c *OSRMClient) Route(ctx context.Context, points []domain.Coordinate) (*domain.GeoLineString, float64, error) {
	if len(points) < 2 {
		return nil, 0, domain.NewValidationError("points", "at least two coordinates are required")
	}

	coords := make([]string, len(points))
	for i, p := range points {
		coords[i] = fmt.Sprintf("%f,%f", p.Lon, p.Lat)
	}
	u := fmt.Sprintf("%s/route/v1/driving/%s?overview=full&geometries=geojson",
		c.baseURL, strings.Join(coords, ";"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, 0, domain.NewUpstreamError("routing", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, 0, domain.NewUpstreamError("routing", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, 0, domain.NewUpstreamError("routing",
			fmt.Errorf("unexpected status code: %d", resp.StatusCode))
	}

	var data osrmResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, 0, domain.NewUpstreamError("routing", err)
	}
	if data.Code != "Ok" || len(data.Routes) == 0 {
		return nil, 0, domain.NewUpstreamError("routing",
			fmt.Errorf("no route returned (code %q)", data.Code))
	}

	route := data.Routes[0]
	line := &domain.GeoLineString{Coordinates: make([]domain.Coordinate, 0, len(route.Geometry.Coordinates))}
	for _, c := range route.Geometry.Coordinates {
		if len(c) < 2 {
			continue
		}
		line.Coordinates = append(line.Coordinates, domain.Coordinate{Lat: c[1], Lon: c[0]})
	}
	return line, route.Distance / 1000, nil
}
