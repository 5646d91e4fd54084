// Package geocode resolves coordinates to a human-readable place label.
// Geocoding is an optional enrichment: callers are expected to absorb any
// error by substituting a fixed fallback label, never by failing the request.
package geocode

import "context"

// Geocoder reverse-geocodes a coordinate pair to a city-level label.
// A non-nil error means no usable label could be produced; the label is
// never empty when the error is nil.
type Geocoder interface {
	Name() string
	ReverseGeocode(ctx context.Context, lat, lon float64) (string, error)
}
