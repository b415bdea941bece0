package geocoding_test

import (
	"context"
	"testing"

	"locationbot/internal/geocoding"
	"locationbot/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"googlemaps.github.io/maps"
)

type mockGoogleClient struct {
	mock.Mock
}

func (m *mockGoogleClient) ReverseGeocode(ctx context.Context, r *maps.GeocodingRequest) ([]maps.GeocodingResult, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]maps.GeocodingResult), args.Error(1)
}

func TestReverseGeocode(t *testing.T) {
	ctx := context.Background()
	req := &maps.GeocodingRequest{
		LatLng:   &maps.LatLng{Lat: 55.75, Lng: 37.61},
		Language: "ru",
	}

	t.Run("api returns error", func(t *testing.T) {
		client := new(mockGoogleClient)
		geocoder := geocoding.NewGoogleReverseGeocoder(client, "ru", testutil.NewTestLogger())

		client.On("ReverseGeocode", ctx, req).Return(nil, assert.AnError).Once()

		_, err := geocoder.ReverseGeocode(ctx, 55.75, 37.61)

		require.ErrorIs(t, err, assert.AnError)
		client.AssertExpectations(t)
	})

	t.Run("api returns empty response", func(t *testing.T) {
		client := new(mockGoogleClient)
		geocoder := geocoding.NewGoogleReverseGeocoder(client, "ru", testutil.NewTestLogger())

		client.On("ReverseGeocode", ctx, req).Return(nil, nil).Once()

		address, err := geocoder.ReverseGeocode(ctx, 55.75, 37.61)

		require.ErrorIs(t, err, geocoding.ErrEmptyResponse)
		require.Empty(t, address)
		client.AssertExpectations(t)
	})

	t.Run("successful lookup", func(t *testing.T) {
		client := new(mockGoogleClient)
		geocoder := geocoding.NewGoogleReverseGeocoder(client, "ru", testutil.NewTestLogger())

		client.On("ReverseGeocode", ctx, req).Return([]maps.GeocodingResult{
			{FormattedAddress: "Красная площадь, Москва"},
			{FormattedAddress: "Москва"},
		}, nil).Once()

		address, err := geocoder.ReverseGeocode(ctx, 55.75, 37.61)

		require.NoError(t, err)
		assert.Equal(t, "Красная площадь, Москва", address)
		client.AssertExpectations(t)
	})
}

func TestNewReverseGeocoder(t *testing.T) {
	t.Run("disabled without api key", func(t *testing.T) {
		geocoder, err := geocoding.NewReverseGeocoder("", "ru", testutil.NewTestLogger())

		require.NoError(t, err)
		assert.Nil(t, geocoder)
	})

	t.Run("google geocoder with api key", func(t *testing.T) {
		geocoder, err := geocoding.NewReverseGeocoder("test-api-key", "ru", testutil.NewTestLogger())

		require.NoError(t, err)
		_, ok := geocoder.(*geocoding.GoogleReverseGeocoder)
		assert.True(t, ok, "expected *GoogleReverseGeocoder")
	})
}
