package weather

import (
	"errors"
	"fmt"
)

var (
	// ErrDataUnavailable is returned when the upstream payload is missing or
	// malformed in a required field. The HTTP layer maps it to a 5xx response.
	ErrDataUnavailable = errors.New("weather data unavailable")
)

// UnitSystem selects how temperature, wind speed and precipitation amounts
// are presented. Upstream data is always ingested as Celsius / m/s / mm and
// converted during normalization.
type UnitSystem string

const (
	UnitImperial UnitSystem = "imperial"
	UnitMetric   UnitSystem = "metric"
)

// ParseUnitSystem maps a query-string value to a UnitSystem.
// An empty value defaults to imperial.
func ParseUnitSystem(s string) (UnitSystem, error) {
	switch s {
	case "", string(UnitImperial):
		return UnitImperial, nil
	case string(UnitMetric):
		return UnitMetric, nil
	default:
		return "", fmt.Errorf("invalid unit system %q", s)
	}
}

// Label returns the temperature unit label for responses.
func (u UnitSystem) Label() string {
	if u == UnitImperial {
		return "°F"
	}
	return "°C"
}

// DayPeriod names one of the three fixed forecast slots of a day.
type DayPeriod string

const (
	PeriodMorning   DayPeriod = "morning"
	PeriodAfternoon DayPeriod = "afternoon"
	PeriodNight     DayPeriod = "night"
)

// Condition represents a normalized high-level weather condition.
type Condition string

const (
	ConditionUnknown Condition = "unknown"
	ConditionClear   Condition = "clear"
	ConditionCloudy  Condition = "cloudy"
	ConditionRain    Condition = "rain"
	ConditionSnow    Condition = "snow"
	ConditionStorm   Condition = "storm"
	ConditionMist    Condition = "mist"
)

// ForecastData is the typed Open-Meteo forecast payload. Optional values are
// pointers so that absence is distinguishable from zero; parallel hourly
// series are indexed by the Time sequence.
type ForecastData struct {
	Current CurrentBlock `json:"current"`
	Hourly  HourlyBlock  `json:"hourly"`
	Daily   DailyBlock   `json:"daily"`
}

// CurrentBlock holds current-condition scalars. Temperature, feels-like,
// wind, humidity, cloud cover and precipitation are required downstream;
// the rest are optional enrichment.
type CurrentBlock struct {
	Temperature   *float64 `json:"temperature_2m"`
	FeelsLike     *float64 `json:"apparent_temperature"`
	Precipitation *float64 `json:"precipitation"`
	CloudCover    *float64 `json:"cloudcover"`
	WindSpeed     *float64 `json:"wind_speed_10m"`
	Humidity      *float64 `json:"relative_humidity_2m"`
	UVIndex       *float64 `json:"uv_index"`
	DewPoint      *float64 `json:"dew_point_2m"`
	WeatherCode   *int     `json:"weather_code"`
}

// HourlyBlock holds parallel per-hour series keyed by Time.
type HourlyBlock struct {
	Time            []string  `json:"time"`
	Temperature     []float64 `json:"temperature_2m"`
	CloudCover      []float64 `json:"cloudcover"`
	RainProbability []float64 `json:"precipitation_probability"`
	WindSpeed       []float64 `json:"wind_speed_10m"`
	WindGusts       []float64 `json:"wind_gusts_10m"`
}

// DailyBlock holds per-day series; only the first element (today) is read.
type DailyBlock struct {
	TempMax            []float64 `json:"temperature_2m_max"`
	TempMin            []float64 `json:"temperature_2m_min"`
	RainProbabilityMax []float64 `json:"precipitation_probability_max"`
	Sunrise            []string  `json:"sunrise"`
	Sunset             []string  `json:"sunset"`
}

// HourSlice is the normalized forecast for one fixed target hour.
type HourSlice struct {
	Temp  float64 `json:"temp"`
	Wind  int     `json:"wind"`
	Gust  *int    `json:"gust,omitempty"`
	Cloud float64 `json:"cloud"`
	Rain  int     `json:"rain"`

	// Threshold inputs for the recommender. Always Fahrenheit/mph no matter
	// which display unit was requested, so garment thresholds compare in a
	// single unit system. Never serialized.
	TempF   float64 `json:"-"`
	WindMph float64 `json:"-"`
}

// HourlyForecast groups the three fixed day-period slices. A nil slice means
// the target hour was absent from the upstream hourly series.
type HourlyForecast struct {
	Morning   *HourSlice `json:"morning"`
	Afternoon *HourSlice `json:"afternoon"`
	Night     *HourSlice `json:"night"`
}

// Snapshot is the normalized weather view for one location and day.
// Immutable once built; constructed fresh per request.
type Snapshot struct {
	City                 string         `json:"city"`
	ActualTemperature    float64        `json:"actual_temperature"`
	FeelsLikeTemperature float64        `json:"feels_like_temperature"`
	Units                string         `json:"units"`
	WindSpeed            int            `json:"wind_speed"`
	Precipitation        int            `json:"precipitation"` // daily max rain probability, percent
	RainChance           int            `json:"rain_chance"`   // max hourly rain probability across the day, percent
	PrecipAmount         float64        `json:"precip_amount"` // mm (metric) or inches (imperial)
	CloudCover           float64        `json:"cloud_cover"`
	Humidity             float64        `json:"humidity"`
	DewPoint             *float64       `json:"dew_point,omitempty"`
	UVIndex              int            `json:"uv_index"`
	WeatherCode          *int           `json:"weather_code,omitempty"`
	Condition            Condition      `json:"condition"`
	HighTemp             float64        `json:"high_temp"`
	LowTemp              float64        `json:"low_temp"`
	Sunrise              string         `json:"sunrise,omitempty"`
	Sunset               string         `json:"sunset,omitempty"`
	HourlyForecast       HourlyForecast `json:"hourly_forecast"`
}

// Recommendation is the full response body: the snapshot plus one outfit per
// day period. An outfit is nil when its hour slice was absent.
type Recommendation struct {
	Snapshot
	OutfitMorning   []string `json:"outfit_morning"`
	OutfitAfternoon []string `json:"outfit_afternoon"`
	OutfitNight     []string `json:"outfit_night"`
}
