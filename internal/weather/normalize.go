package weather

import (
	"fmt"
	"math"
	"time"
)

const (
	// mphPerMS is the empirical m/s → mph multiplier. Fixed constant rather
	// than a unit-library lookup so converted values stay bit-identical with
	// the upstream contract.
	mphPerMS  = 2.23694
	mmPerInch = 25.4
)

// Target local hours for the three day periods. Not configurable.
const (
	morningHour   = 8
	afternoonHour = 14
	nightHour     = 20
)

// Normalize turns a raw forecast payload into a Snapshot in the requested
// unit system. The city field is left empty; the caller fills it from the
// geocoder. today anchors the hourly slice lookup and is expected to be in
// the location's local date.
func Normalize(data ForecastData, unit UnitSystem, today time.Time) (Snapshot, error) {
	cur := data.Current
	if err := requireCurrent(cur); err != nil {
		return Snapshot{}, err
	}
	if len(data.Daily.TempMax) == 0 || len(data.Daily.TempMin) == 0 {
		return Snapshot{}, fmt.Errorf("%w: daily temperature extremes missing", ErrDataUnavailable)
	}

	snap := Snapshot{
		ActualTemperature:    round1(toDisplayTemp(*cur.Temperature, unit)),
		FeelsLikeTemperature: round1(toDisplayTemp(*cur.FeelsLike, unit)),
		Units:                unit.Label(),
		WindSpeed:            roundInt(toDisplayWind(*cur.WindSpeed, unit)),
		PrecipAmount:         displayPrecip(*cur.Precipitation, unit),
		CloudCover:           round1(clampPct(*cur.CloudCover)),
		Humidity:             round1(clampPct(*cur.Humidity)),
		HighTemp:             round1(toDisplayTemp(data.Daily.TempMax[0], unit)),
		LowTemp:              round1(toDisplayTemp(data.Daily.TempMin[0], unit)),
		Condition:            ConditionUnknown,
	}

	// Optional enrichment: intensity fields default to zero, descriptive
	// fields stay absent.
	if cur.UVIndex != nil {
		snap.UVIndex = roundInt(*cur.UVIndex)
	}
	if cur.DewPoint != nil {
		dp := round1(toDisplayTemp(*cur.DewPoint, unit))
		snap.DewPoint = &dp
	}
	if cur.WeatherCode != nil {
		code := *cur.WeatherCode
		snap.WeatherCode = &code
		snap.Condition = conditionFromCode(code)
	}

	if len(data.Daily.RainProbabilityMax) > 0 {
		snap.Precipitation = roundInt(clampPct(data.Daily.RainProbabilityMax[0]))
	}

	// Rain chance scans the full hourly series, not just the sampled hours.
	// Intentionally more pessimistic than any single slice.
	var maxProb float64
	for _, p := range data.Hourly.RainProbability {
		if p > maxProb {
			maxProb = p
		}
	}
	snap.RainChance = roundInt(clampPct(maxProb))

	if len(data.Daily.Sunrise) > 0 {
		snap.Sunrise = data.Daily.Sunrise[0]
	}
	if len(data.Daily.Sunset) > 0 {
		snap.Sunset = data.Daily.Sunset[0]
	}

	timeIndex := make(map[string]int, len(data.Hourly.Time))
	for i, t := range data.Hourly.Time {
		timeIndex[t] = i
	}
	dateStr := today.Format("2006-01-02")
	snap.HourlyForecast = HourlyForecast{
		Morning:   hourSlice(data.Hourly, timeIndex, dateStr, morningHour, unit),
		Afternoon: hourSlice(data.Hourly, timeIndex, dateStr, afternoonHour, unit),
		Night:     hourSlice(data.Hourly, timeIndex, dateStr, nightHour, unit),
	}

	return snap, nil
}

func requireCurrent(cur CurrentBlock) error {
	required := []struct {
		name string
		val  *float64
	}{
		{"temperature_2m", cur.Temperature},
		{"apparent_temperature", cur.FeelsLike},
		{"wind_speed_10m", cur.WindSpeed},
		{"relative_humidity_2m", cur.Humidity},
		{"cloudcover", cur.CloudCover},
		{"precipitation", cur.Precipitation},
	}
	for _, f := range required {
		if f.val == nil {
			return fmt.Errorf("%w: current.%s missing", ErrDataUnavailable, f.name)
		}
	}
	return nil
}

// hourSlice extracts the normalized slice for one target hour, or nil when
// the hour is not present in today's series.
func hourSlice(h HourlyBlock, timeIndex map[string]int, dateStr string, hour int, unit UnitSystem) *HourSlice {
	key := fmt.Sprintf("%sT%02d:00", dateStr, hour)
	idx, ok := timeIndex[key]
	if !ok {
		return nil
	}
	if idx >= len(h.Temperature) || idx >= len(h.WindSpeed) ||
		idx >= len(h.CloudCover) || idx >= len(h.RainProbability) {
		// Parallel series shorter than the time axis; treat as absent.
		return nil
	}

	tempC := h.Temperature[idx]
	windMS := h.WindSpeed[idx]

	s := &HourSlice{
		Temp:    round1(toDisplayTemp(tempC, unit)),
		Wind:    roundInt(toDisplayWind(windMS, unit)),
		Cloud:   round1(clampPct(h.CloudCover[idx])),
		Rain:    roundInt(clampPct(h.RainProbability[idx])),
		TempF:   celsiusToFahrenheit(tempC),
		WindMph: windMS * mphPerMS,
	}
	if idx < len(h.WindGusts) {
		g := roundInt(toDisplayWind(h.WindGusts[idx], unit))
		s.Gust = &g
	}
	return s
}

func celsiusToFahrenheit(c float64) float64 {
	return c*9/5 + 32
}

func toDisplayTemp(c float64, unit UnitSystem) float64 {
	if unit == UnitImperial {
		return celsiusToFahrenheit(c)
	}
	return c
}

func toDisplayWind(ms float64, unit UnitSystem) float64 {
	if unit == UnitImperial {
		return ms * mphPerMS
	}
	return ms
}

func displayPrecip(mm float64, unit UnitSystem) float64 {
	if unit == UnitImperial {
		return round2(mm / mmPerInch)
	}
	return round1(mm)
}

// conditionFromCode maps Open-Meteo WMO weather codes to high-level
// conditions (simplified).
func conditionFromCode(code int) Condition {
	switch {
	case code == 0:
		return ConditionClear
	case code >= 1 && code <= 3:
		return ConditionCloudy
	case code == 45 || code == 48:
		return ConditionMist
	case (code >= 51 && code <= 67) || (code >= 80 && code <= 82):
		return ConditionRain
	case code >= 71 && code <= 77 || code == 85 || code == 86:
		return ConditionSnow
	case code >= 95:
		return ConditionStorm
	default:
		return ConditionUnknown
	}
}

func clampPct(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func roundInt(v float64) int {
	return int(math.Round(v))
}
