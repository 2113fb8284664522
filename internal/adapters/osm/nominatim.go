package osm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/planmytrip/backend/internal/core/domain"
	"github.com/planmytrip/backend/internal/pkg/metrics"
)

// userAgent identifies us to OSM services; Nominatim rejects anonymous clients.
const userAgent = "planmytrip-backend/1.0"

// NominatimClient implements ports.Geocoder against the OSM Nominatim search
// API. Stateless: one live lookup per call, no memoization.
type NominatimClient struct {
	baseURL string
	client  *http.Client
}

// NewNominatimClient creates a geocoder. baseURL defaults to the public
// Nominatim instance when empty.
func NewNominatimClient(baseURL string) *NominatimClient {
	if baseURL == "" {
		baseURL = "https://nominatim.openstreetmap.org"
	}
	return &NominatimClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// nominatimResult is one search match. Nominatim encodes coordinates as
// JSON strings.
type nominatimResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Resolve looks up the single best match for name. Zero matches is
// domain.ErrPlaceNotFound; transport and decode failures are upstream errors.
func (c *NominatimClient) Resolve(ctx context.Context, name string) (domain.Coordinate, error) {
	q := url.Values{}
	q.Set("q", name)
	q.Set("format", "json")
	q.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+q.Encode(), nil)
	if err != nil {
		return domain.Coordinate{}, domain.NewUpstreamError("geocoding", err)
	}
	req.Header.Set("User-Agent", userAgent)

	metrics.GeocodeLookups.Inc()

	resp, err := c.client.Do(req)
	if err != nil {
		metrics.GeocodeErrors.Inc()
		return domain.Coordinate{}, domain.NewUpstreamError("geocoding", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.GeocodeErrors.Inc()
		return domain.Coordinate{}, domain.NewUpstreamError("geocoding",
			fmt.Errorf("unexpected status code: %d", resp.StatusCode))
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		metrics.GeocodeErrors.Inc()
		return domain.Coordinate{}, domain.NewUpstreamError("geocoding", err)
	}

	if len(results) == 0 {
		return domain.Coordinate{}, domain.ErrPlaceNotFound
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return domain.Coordinate{}, domain.NewUpstreamError("geocoding", fmt.Errorf("malformed lat %q", results[0].Lat))
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return domain.Coordinate{}, domain.NewUpstreamError("geocoding", fmt.Errorf("malformed lon %q", results[0].Lon))
	}

	return domain.Coordinate{Lat: lat, Lon: lon}, nil
}
