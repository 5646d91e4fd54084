package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-style/internal/metrics"
	"github.com/i474232898/weather-style/internal/weather"
)

// Open-Meteo field lists. The current block carries the enrichment fields
// (uv index, dew point, weather code) alongside the required scalars; the
// hourly block is the parallel-array series the slice lookup runs over.
const (
	currentFields = "temperature_2m,apparent_temperature,precipitation,cloudcover,wind_speed_10m,relative_humidity_2m,uv_index,dew_point_2m,weather_code"
	hourlyFields  = "temperature_2m,cloudcover,precipitation_probability,wind_speed_10m,wind_gusts_10m"
	dailyFields   = "temperature_2m_max,temperature_2m_min,precipitation_probability_max,sunrise,sunset"
)

// OpenMeteoProvider implements the weather.Provider interface for Open-Meteo.
// Open-Meteo requires no API key; all values are requested in SI units and
// converted downstream by the normalizer.
type OpenMeteoProvider struct {
	name    string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewOpenMeteoProvider(client *http.Client, baseURL string) *OpenMeteoProvider {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openmeteo",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &OpenMeteoProvider{
		name:    "openmeteo",
		baseURL: baseURL,
		httpCfg: HTTPClientConfig{
			Client: client,
			Backoff: BackoffConfig{
				MaxRetries:      3,
				InitialInterval: 500 * time.Millisecond,
				MaxInterval:     5 * time.Second,
			},
		},
		circuit: cb,
	}
}

func (p *OpenMeteoProvider) Name() string {
	return p.name
}

// FetchForecast retrieves the current/hourly/daily forecast payload for the
// given coordinates. Decode failures (including non-numeric values in
// numeric fields) surface as weather.ErrDataUnavailable.
func (p *OpenMeteoProvider) FetchForecast(ctx context.Context, lat, lon float64) (weather.ForecastData, error) {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
		values.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
		values.Set("current", currentFields)
		values.Set("hourly", hourlyFields)
		values.Set("daily", dailyFields)
		values.Set("timezone", "auto")

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	start := time.Now()
	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.circuit, buildRequest)
	metrics.UpstreamLatency.WithLabelValues(p.name).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(p.name, "error").Inc()
		return weather.ForecastData{}, fmt.Errorf("openmeteo fetch: %w", err)
	}
	defer resp.Body.Close()
	metrics.UpstreamRequestsTotal.WithLabelValues(p.name, "ok").Inc()

	var data weather.ForecastData
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return weather.ForecastData{}, fmt.Errorf("%w: decoding openmeteo payload: %v", weather.ErrDataUnavailable, err)
	}

	return data, nil
}
