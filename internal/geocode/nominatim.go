package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-style/internal/metrics"
)

var errNoPlaceName = errors.New("no usable place name in response")

// Nominatim is the default, keyless reverse geocoder backed by the
// OpenStreetMap Nominatim API. Nominatim's usage policy requires an
// identifying User-Agent on every request.
type Nominatim struct {
	name      string
	baseURL   string
	userAgent string
	client    *http.Client
	circuit   *gobreaker.CircuitBreaker
}

func NewNominatim(client *http.Client, baseURL, userAgent string) *Nominatim {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "nominatim",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &Nominatim{
		name:      "nominatim",
		baseURL:   baseURL,
		userAgent: userAgent,
		client:    client,
		circuit:   cb,
	}
}

func (n *Nominatim) Name() string {
	return n.name
}

// ReverseGeocode resolves the most specific available place label, walking
// city → town → village → county → state → first segment of the display
// name. No retries: geocoding is enrichment, a single shot is enough.
func (n *Nominatim) ReverseGeocode(ctx context.Context, lat, lon float64) (string, error) {
	values := url.Values{}
	values.Set("format", "json")
	values.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	values.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))

	u := fmt.Sprintf("%s/reverse?%s", n.baseURL, values.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", n.userAgent)

	start := time.Now()
	result, err := n.circuit.Execute(func() (interface{}, error) {
		resp, execErr := n.client.Do(req)
		if execErr != nil {
			return nil, execErr
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		}
		return resp, nil
	})
	metrics.UpstreamLatency.WithLabelValues(n.name).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(n.name, "error").Inc()
		return "", err
	}
	metrics.UpstreamRequestsTotal.WithLabelValues(n.name, "ok").Inc()

	resp := result.(*http.Response)
	defer resp.Body.Close()

	var payload struct {
		DisplayName string `json:"display_name"`
		Address     struct {
			City    string `json:"city"`
			Town    string `json:"town"`
			Village string `json:"village"`
			County  string `json:"county"`
			State   string `json:"state"`
		} `json:"address"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decoding nominatim payload: %w", err)
	}

	for _, candidate := range []string{
		payload.Address.City,
		payload.Address.Town,
		payload.Address.Village,
		payload.Address.County,
		payload.Address.State,
	} {
		if candidate != "" {
			return candidate, nil
		}
	}

	if payload.DisplayName != "" {
		if first := strings.TrimSpace(strings.SplitN(payload.DisplayName, ",", 2)[0]); first != "" {
			return first, nil
		}
	}

	return "", errNoPlaceName
}
