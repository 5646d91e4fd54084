package weather

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/i474232898/weather-style/internal/metrics"
	"github.com/i474232898/weather-style/internal/outfit"
)

// Geocoder is the reverse-geocoding collaborator as consumed by the service.
type Geocoder interface {
	ReverseGeocode(ctx context.Context, lat, lon float64) (string, error)
}

// Service orchestrates the forecast fetch, reverse geocoding, normalization
// and per-period outfit recommendation for one request. It holds no
// cross-request state.
type Service struct {
	provider     Provider
	geocoder     Geocoder
	fallbackCity string
	timeout      time.Duration

	// now is swapped in tests to pin the slice-lookup date.
	now func() time.Time
}

func NewService(provider Provider, geocoder Geocoder, fallbackCity string, timeout time.Duration) *Service {
	return &Service{
		provider:     provider,
		geocoder:     geocoder,
		fallbackCity: fallbackCity,
		timeout:      timeout,
		now:          time.Now,
	}
}

// Recommendation fetches and normalizes the forecast for the coordinates and
// derives one outfit per day period. The weather fetch and the reverse
// geocode run concurrently and are fault-isolated: a geocoding failure only
// downgrades the city label to the fallback, while a weather failure fails
// the whole call.
func (s *Service) Recommendation(ctx context.Context, lat, lon float64, unit UnitSystem) (*Recommendation, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var (
		wg       sync.WaitGroup
		data     ForecastData
		fetchErr error
		city     string
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		data, fetchErr = s.provider.FetchForecast(ctx, lat, lon)
	}()
	go func() {
		defer wg.Done()
		c, err := s.geocoder.ReverseGeocode(ctx, lat, lon)
		if err != nil {
			log.Printf("reverse geocode failed for (%.4f, %.4f): %v; using fallback label", lat, lon, err)
			return
		}
		city = c
	}()
	wg.Wait()

	if fetchErr != nil {
		return nil, fmt.Errorf("fetch forecast: %w", fetchErr)
	}

	snap, err := Normalize(data, unit, s.now())
	if err != nil {
		return nil, err
	}

	snap.City = city
	if snap.City == "" {
		snap.City = s.fallbackCity
	}

	rec := &Recommendation{Snapshot: snap}
	rec.OutfitMorning = s.outfitFor(snap.HourlyForecast.Morning, snap.Humidity, outfit.Morning)
	rec.OutfitAfternoon = s.outfitFor(snap.HourlyForecast.Afternoon, snap.Humidity, outfit.Afternoon)
	rec.OutfitNight = s.outfitFor(snap.HourlyForecast.Night, snap.Humidity, outfit.Night)
	return rec, nil
}

// outfitFor runs the recommender for one period, or returns nil when the
// period's hour slice was absent from the forecast.
func (s *Service) outfitFor(slice *HourSlice, humidity float64, period outfit.Period) []string {
	if slice == nil {
		return nil
	}
	items := outfit.Recommend(outfit.Conditions{
		TempF:       slice.TempF,
		WindMph:     slice.WindMph,
		RainPct:     float64(slice.Rain),
		HumidityPct: humidity,
		CloudPct:    slice.Cloud,
		Period:      period,
	})
	metrics.RecommendationsTotal.WithLabelValues(string(period)).Inc()
	return items
}
