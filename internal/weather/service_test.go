package weather

import (
	"context"
	"errors"
	"testing"
	"time"
)

type stubProvider struct {
	data ForecastData
	err  error
}

func (s *stubProvider) Name() string { return "stub" }

func (s *stubProvider) FetchForecast(ctx context.Context, lat, lon float64) (ForecastData, error) {
	return s.data, s.err
}

type stubGeocoder struct {
	city string
	err  error
}

func (s *stubGeocoder) ReverseGeocode(ctx context.Context, lat, lon float64) (string, error) {
	return s.city, s.err
}

func newTestService(p Provider, g Geocoder) *Service {
	svc := NewService(p, g, "Your Location", 5*time.Second)
	svc.now = func() time.Time { return testToday }
	return svc
}

func TestRecommendationHappyPath(t *testing.T) {
	svc := newTestService(
		&stubProvider{data: testPayload()},
		&stubGeocoder{city: "Springfield"},
	)

	rec, err := svc.Recommendation(context.Background(), 40.0, -75.0, UnitImperial)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.City != "Springfield" {
		t.Errorf("city: got %q, want Springfield", rec.City)
	}
	if rec.OutfitMorning == nil || rec.OutfitAfternoon == nil || rec.OutfitNight == nil {
		t.Fatalf("all three outfits expected, got %+v", rec)
	}
	// Afternoon slice has rain probability 70 (> 50): rain gear must fire.
	found := false
	for _, it := range rec.OutfitAfternoon {
		if it == "Umbrella" {
			found = true
		}
	}
	if !found {
		t.Errorf("afternoon outfit missing umbrella: %v", rec.OutfitAfternoon)
	}
}

func TestRecommendationGeocodeFailureUsesFallback(t *testing.T) {
	svc := newTestService(
		&stubProvider{data: testPayload()},
		&stubGeocoder{err: errors.New("nominatim down")},
	)

	rec, err := svc.Recommendation(context.Background(), 40.0, -75.0, UnitImperial)
	if err != nil {
		t.Fatalf("geocode failure must not fail the request: %v", err)
	}
	if rec.City != "Your Location" {
		t.Errorf("city: got %q, want fallback label", rec.City)
	}
}

func TestRecommendationWeatherFailureIsFatal(t *testing.T) {
	svc := newTestService(
		&stubProvider{err: errors.New("upstream down")},
		&stubGeocoder{city: "Springfield"},
	)

	if _, err := svc.Recommendation(context.Background(), 40.0, -75.0, UnitImperial); err == nil {
		t.Fatal("expected error when the weather fetch fails")
	}
}

func TestRecommendationDataUnavailablePropagates(t *testing.T) {
	data := testPayload()
	data.Current.Temperature = nil
	svc := newTestService(&stubProvider{data: data}, &stubGeocoder{city: "Springfield"})

	_, err := svc.Recommendation(context.Background(), 40.0, -75.0, UnitImperial)
	if !errors.Is(err, ErrDataUnavailable) {
		t.Fatalf("got %v, want ErrDataUnavailable", err)
	}
}

func TestRecommendationSkipsAbsentSlice(t *testing.T) {
	data := testPayload()
	// Remove the night hour from the series.
	data.Hourly.Time = data.Hourly.Time[:2]
	data.Hourly.Temperature = data.Hourly.Temperature[:2]
	data.Hourly.CloudCover = data.Hourly.CloudCover[:2]
	data.Hourly.RainProbability = data.Hourly.RainProbability[:2]
	data.Hourly.WindSpeed = data.Hourly.WindSpeed[:2]
	data.Hourly.WindGusts = data.Hourly.WindGusts[:2]

	svc := newTestService(&stubProvider{data: data}, &stubGeocoder{city: "Springfield"})
	rec, err := svc.Recommendation(context.Background(), 40.0, -75.0, UnitImperial)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.OutfitNight != nil {
		t.Errorf("night outfit: got %v, want nil", rec.OutfitNight)
	}
	if rec.OutfitMorning == nil || rec.OutfitAfternoon == nil {
		t.Error("morning/afternoon outfits must be unaffected")
	}
}

func TestRecommendationEmptyCityFallsBack(t *testing.T) {
	svc := newTestService(&stubProvider{data: testPayload()}, &stubGeocoder{city: ""})

	rec, err := svc.Recommendation(context.Background(), 40.0, -75.0, UnitImperial)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.City != "Your Location" {
		t.Errorf("city: got %q, want fallback label", rec.City)
	}
}
