package provider

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/spotbulle/pitchmatch/internal/config"
)

// Location is a resolved birth place. Mock marks the fixed fallback
// location so downstream consumers can discount low-confidence profiles.
type Location struct {
	Latitude    float64
	Longitude   float64
	City        string
	Country     string
	DisplayName string
	Mock        bool
}

// ParisFallback returns the fixed default location used when geocoding
// fails or returns no result.
func ParisFallback() *Location {
	return &Location{
		Latitude:    48.8566,
		Longitude:   2.3522,
		City:        "Paris",
		Country:     "FR",
		DisplayName: "Paris, France",
		Mock:        true,
	}
}

// NominatimGeocoder resolves place strings through the OpenStreetMap
// Nominatim search endpoint.
type NominatimGeocoder struct {
	client  *resty.Client
	baseURL string
}

// NewNominatimGeocoder creates a new geocoder.
func NewNominatimGeocoder(cfg *config.GeocodingConfig) *NominatimGeocoder {
	client := resty.New()
	// Nominatim requires an identifying User-Agent
	client.SetHeader("User-Agent", cfg.UserAgent)
	client.SetTimeout(time.Duration(cfg.TimeoutSeconds) * time.Second)

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://nominatim.openstreetmap.org"
	}

	return &NominatimGeocoder{
		client:  client,
		baseURL: baseURL,
	}
}

type nominatimResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
}

// Geocode resolves a place string to coordinates. The error is non-nil
// only for transport or decode failures; "no result" is also an error so
// the caller can apply the fixed fallback uniformly.
func (g *NominatimGeocoder) Geocode(ctx context.Context, place string) (*Location, error) {
	var results []nominatimResult
	httpResp, err := g.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"format":          "json",
			"q":               place,
			"limit":           "1",
			"accept-language": "fr",
		}).
		SetResult(&results).
		Get(g.baseURL + "/search")

	if err != nil {
		return nil, fmt.Errorf("failed to call geocoding API: %w", err)
	}

	if httpResp.StatusCode() != 200 {
		return nil, fmt.Errorf("geocoding API error: status %d", httpResp.StatusCode())
	}

	if len(results) == 0 {
		return nil, fmt.Errorf("no geocoding result for %q", place)
	}

	r := results[0]
	lat, latErr := strconv.ParseFloat(r.Lat, 64)
	lon, lonErr := strconv.ParseFloat(r.Lon, 64)
	if latErr != nil || lonErr != nil {
		return nil, fmt.Errorf("geocoding API returned malformed coordinates for %q", place)
	}

	city := r.Name
	if city == "" {
		city = strings.TrimSpace(strings.Split(place, ",")[0])
	}

	country := "FR"
	if parts := strings.Split(r.DisplayName, ","); len(parts) > 0 {
		country = strings.TrimSpace(parts[len(parts)-1])
	}

	return &Location{
		Latitude:    lat,
		Longitude:   lon,
		City:        city,
		Country:     country,
		DisplayName: r.DisplayName,
		Mock:        false,
	}, nil
}
