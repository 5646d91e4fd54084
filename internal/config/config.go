package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig carries every externally-configurable knob. It is built once at
// startup and passed explicitly to the components that need it; nothing
// reads the environment after Load returns.
type AppConfig struct {
	Port string

	// HTTPTimeout bounds each outbound HTTP call; UpstreamTimeout bounds the
	// whole fetch+geocode phase of a request.
	HTTPTimeout     time.Duration
	UpstreamTimeout time.Duration

	OpenMeteoBaseURL string
	NominatimBaseURL string

	// UserAgent identifies this service to Nominatim (usage-policy requirement).
	UserAgent string

	// GeocoderAPIKey switches reverse geocoding to the Google backend when set.
	GeocoderAPIKey string

	// FallbackCity is the label used whenever reverse geocoding fails.
	FallbackCity string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg := &AppConfig{
		Port:             getenvDefault("PORT", "8080"),
		OpenMeteoBaseURL: getenvDefault("OPENMETEO_BASE_URL", "https://api.open-meteo.com/v1/forecast"),
		NominatimBaseURL: getenvDefault("NOMINATIM_BASE_URL", "https://nominatim.openstreetmap.org"),
		UserAgent:        getenvDefault("GEOCODER_USER_AGENT", "WeatherStyleApp/1.0"),
		GeocoderAPIKey:   os.Getenv("GEOCODER_API_KEY"),
		FallbackCity:     getenvDefault("FALLBACK_CITY", "Your Location"),
	}

	var err error
	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", "10s"); err != nil {
		return nil, err
	}
	if cfg.UpstreamTimeout, err = getenvDuration("UPSTREAM_TIMEOUT", "15s"); err != nil {
		return nil, err
	}

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
