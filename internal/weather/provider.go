package weather

import "context"

// Provider abstracts the upstream forecast source (Open-Meteo).
// Implementations return the raw payload in SI units; all conversion and
// normalization happens in Normalize.
type Provider interface {
	Name() string
	FetchForecast(ctx context.Context, lat, lon float64) (ForecastData, error)
}
