package geocoding

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"googlemaps.github.io/maps"
)

// ReverseGeocoder resolves coordinates to a human-readable address
type ReverseGeocoder interface {
	ReverseGeocode(ctx context.Context, latitude, longitude float64) (string, error)
}

// GoogleAPIClient is the part of maps.Client used by GoogleReverseGeocoder
type GoogleAPIClient interface {
	ReverseGeocode(ctx context.Context, r *maps.GeocodingRequest) ([]maps.GeocodingResult, error)
}

// ErrEmptyResponse is returned when the Google Maps API responds with an empty result.
var ErrEmptyResponse = errors.New("get empty response from Google Maps API")

// GoogleReverseGeocoder looks up addresses with the Google Maps Geocoding API
type GoogleReverseGeocoder struct {
	client   GoogleAPIClient
	language string
	logger   *zap.Logger
}

// NewGoogleReverseGeocoder wraps an existing client
func NewGoogleReverseGeocoder(client GoogleAPIClient, language string, logger *zap.Logger) *GoogleReverseGeocoder {
	return &GoogleReverseGeocoder{client: client, language: language, logger: logger}
}

// NewReverseGeocoder creates a Google-backed geocoder.
// It returns nil without error when apiKey is empty, which disables address lookup.
func NewReverseGeocoder(apiKey, language string, logger *zap.Logger) (ReverseGeocoder, error) {
	if apiKey == "" {
		return nil, nil
	}

	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Google Maps client: %w", err)
	}

	return NewGoogleReverseGeocoder(client, language, logger), nil
}

// ReverseGeocode returns the formatted address of the first match
func (g *GoogleReverseGeocoder) ReverseGeocode(ctx context.Context, latitude, longitude float64) (string, error) {
	g.logger.Debug("Reverse geocoding using Google Maps",
		zap.Float64("latitude", latitude),
		zap.Float64("longitude", longitude),
	)

	req := &maps.GeocodingRequest{
		LatLng:   &maps.LatLng{Lat: latitude, Lng: longitude},
		Language: g.language,
	}
	results, err := g.client.ReverseGeocode(ctx, req)
	if err != nil {
		return "", fmt.Errorf("failed to reverse geocode: %w", err)
	}

	if len(results) == 0 || results[0].FormattedAddress == "" {
		return "", ErrEmptyResponse
	}

	return results[0].FormattedAddress, nil
}
