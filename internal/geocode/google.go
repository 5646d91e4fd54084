package geocode

import (
	"context"
	"fmt"
	"time"

	"github.com/kelvins/geocoder"

	"github.com/i474232898/weather-style/internal/metrics"
)

// Google reverse-geocodes through the Google Maps API. Used instead of
// Nominatim when an API key is configured.
type Google struct {
	name string
}

// NewGoogle configures the Google geocoding backend. The underlying library
// keeps the key in package state, so the key is bound once at construction.
func NewGoogle(apiKey string) *Google {
	geocoder.ApiKey = apiKey
	return &Google{name: "google-geocoder"}
}

func (g *Google) Name() string {
	return g.name
}

// ReverseGeocode resolves city → district → county → state, mirroring the
// Nominatim fallback chain on the Google address schema. The underlying
// client does not accept a context; calls rely on its own HTTP timeout.
func (g *Google) ReverseGeocode(_ context.Context, lat, lon float64) (string, error) {
	start := time.Now()
	addresses, err := geocoder.GeocodingReverse(geocoder.Location{
		Latitude:  lat,
		Longitude: lon,
	})
	metrics.UpstreamLatency.WithLabelValues(g.name).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(g.name, "error").Inc()
		return "", err
	}
	metrics.UpstreamRequestsTotal.WithLabelValues(g.name, "ok").Inc()

	if len(addresses) == 0 {
		return "", errNoPlaceName
	}

	addr := addresses[0]
	for _, candidate := range []string{addr.City, addr.District, addr.County, addr.State} {
		if candidate != "" {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("%w for (%f, %f)", errNoPlaceName, lat, lon)
}
