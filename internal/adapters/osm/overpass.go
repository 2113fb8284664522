package osm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/planmytrip/backend/internal/core/domain"
	"github.com/planmytrip/backend/internal/pkg/metrics"
)

// unnamedPlace is substituted for POIs the provider returns without a name.
// Unnamed results are kept, never dropped.
const unnamedPlace = "Unnamed place"

// OverpassClient implements ports.PlaceDiscovery against the OSM Overpass
// API. One spatial query covers all tag classes at once; no internal retry.
type OverpassClient struct {
	baseURL string
	client  *http.Client
}

// NewOverpassClient creates a POI discovery client. baseURL defaults to the
// public Overpass instance when empty.
func NewOverpassClient(baseURL string) *OverpassClient {
	if baseURL == "" {
		baseURL = "https://overpass-api.de"
	}
	return &OverpassClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type overpassResponse struct {
	Elements []overpassElement `json:"elements"`
}

type overpassElement struct {
	Lat  float64           `json:"lat"`
	Lon  float64           `json:"lon"`
	Tags map[string]string `json:"tags"`
}

// FindNearby returns POIs within radiusKm of center, unsorted. Distance
// augmentation and ordering are the caller's responsibility.
func (c *OverpassClient) FindNearby(ctx context.Context, center domain.Coordinate, radiusKm float64) ([]domain.Place, error) {
	radiusMeters := int(radiusKm * 1000)
	query := fmt.Sprintf(`
		[out:json];
		(
		  node["tourism"](around:%d,%f,%f);
		  node["amenity"="restaurant"](around:%d,%f,%f);
		  node["amenity"="cafe"](around:%d,%f,%f);
		  node["leisure"="park"](around:%d,%f,%f);
		  node["waterway"="waterfall"](around:%d,%f,%f);
		);
		out body;
	`, radiusMeters, center.Lat, center.Lon,
		radiusMeters, center.Lat, center.Lon,
		radiusMeters, center.Lat, center.Lon,
		radiusMeters, center.Lat, center.Lon,
		radiusMeters, center.Lat, center.Lon)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/interpreter", strings.NewReader(query))
	if err != nil {
		return nil, domain.NewUpstreamError("discovery", err)
	}
	req.Header.Set("Content-Type", "text/plain")
	req.Header.Set("User-Agent", userAgent)

	metrics.DiscoveryLookups.Inc()

	resp, err := c.client.Do(req)
	if err != nil {
		metrics.DiscoveryErrors.Inc()
		return nil, domain.NewUpstreamError("discovery", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.DiscoveryErrors.Inc()
		return nil, domain.NewUpstreamError("discovery",
			fmt.Errorf("unexpected status code: %d", resp.StatusCode))
	}

	var data overpassResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		metrics.DiscoveryErrors.Inc()
		return nil, domain.NewUpstreamError("discovery", err)
	}

	places := make([]domain.Place, 0, len(data.Elements))
	for _, el := range data.Elements {
		name := el.Tags["name"]
		if name == "" {
			name = unnamedPlace
		}
		places = append(places, domain.Place{
			Name:       name,
			Coordinate: domain.Coordinate{Lat: el.Lat, Lon: el.Lon},
			Category:   categorize(el.Tags),
		})
	}
	return places, nil
}

// categorize maps a raw OSM tag set to exactly one category. Checks run in
// fixed precedence order; the first match wins and anything unmatched is
// CategoryOther.
func categorize(tags map[string]string) domain.Category {
	switch {
	case tags["amenity"] == "restaurant":
		return domain.CategoryRestaurant
	case tags["tourism"] == "attraction":
		return domain.CategoryTourism
	case tags["leisure"] == "park":
		return domain.CategoryPark
	case tags["waterway"] == "waterfall":
		return domain.CategoryWaterfall
	case tags["amenity"] == "cafe":
		return domain.CategoryCafe
	case tags["tourism"] == "hotel":
		return domain.CategoryHotel
	case tags["amenity"] == "place_of_worship":
		return domain.CategoryTemple
	case tags["tourism"] != "":
		return domain.CategoryTourism
	default:
		return domain.CategoryOther
	}
}
