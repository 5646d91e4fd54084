package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sony/gobreaker"
)

// BackoffConfig controls retry behaviour for upstream calls.
type BackoffConfig struct {
	MaxRetries      uint64
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// HTTPClientConfig bundles the shared HTTP client and resilience settings.
type HTTPClientConfig struct {
	Client  *http.Client
	Backoff BackoffConfig
}

var (
	errRateLimited  = errors.New("rate limited")
	errServerError  = errors.New("server error")
	errUnexpected   = errors.New("unexpected status code")
	errCircuitOpen  = errors.New("circuit breaker open")
	errNoHTTPClient = errors.New("http client not configured")
)

// doRequestWithResilience executes the HTTP request behind a circuit breaker,
// retrying rate-limit and server errors with exponential backoff. Non-2xx
// client responses and an open circuit are permanent.
func doRequestWithResilience(
	ctx context.Context,
	cfg HTTPClientConfig,
	cb *gobreaker.CircuitBreaker,
	buildRequest func() (*http.Request, error),
) (*http.Response, error) {
	if cfg.Client == nil {
		return nil, errNoHTTPClient
	}

	bo := backoff.NewExponentialBackOff()
	if cfg.Backoff.InitialInterval > 0 {
		bo.InitialInterval = cfg.Backoff.InitialInterval
	}
	if cfg.Backoff.MaxInterval > 0 {
		bo.MaxInterval = cfg.Backoff.MaxInterval
	}
	policy := backoff.WithContext(backoff.WithMaxRetries(bo, cfg.Backoff.MaxRetries), ctx)

	var resp *http.Response

	attempt := func() error {
		req, err := buildRequest()
		if err != nil {
			return backoff.Permanent(err)
		}
		req = req.WithContext(ctx)

		result, err := cb.Execute(func() (interface{}, error) {
			r, execErr := cfg.Client.Do(req)
			if execErr != nil {
				return nil, execErr
			}

			switch {
			case r.StatusCode == http.StatusTooManyRequests:
				r.Body.Close()
				return nil, errRateLimited
			case r.StatusCode >= 500:
				r.Body.Close()
				return nil, errServerError
			case r.StatusCode < 200 || r.StatusCode >= 300:
				r.Body.Close()
				return nil, fmt.Errorf("%w: %d", errUnexpected, r.StatusCode)
			}
			return r, nil
		})
		if err != nil {
			// An open circuit means the upstream is known-bad; stop retrying.
			if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
				return backoff.Permanent(fmt.Errorf("%w: %v", errCircuitOpen, err))
			}
			if errors.Is(err, errUnexpected) {
				return backoff.Permanent(err)
			}
			return err
		}

		r, ok := result.(*http.Response)
		if !ok {
			return backoff.Permanent(errors.New("unexpected result type from circuit breaker"))
		}
		resp = r
		return nil
	}

	if err := backoff.Retry(attempt, policy); err != nil {
		return nil, err
	}
	return resp, nil
}
