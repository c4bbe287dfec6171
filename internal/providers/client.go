// Package providers contains the thin HTTP clients for the three
// external data sources. Each client owns its own rate limiter,
// circuit breaker and timeout so one misbehaving provider never
// degrades the others. No provider-native shape leaves this package
// un-normalized except through the declared output contracts.
package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/gamepulse/gamepulse/internal/telemetry"
)

const defaultUserAgent = "GamePulse/1.0"

// ClientConfig tunes one provider client.
type ClientConfig struct {
	Name      string
	BaseURL   string
	Timeout   time.Duration
	RPS       float64
	Burst     int
	UserAgent string
}

// httpClient is the shared transport used by all three providers:
// token-bucket rate limiting in front, a circuit breaker around the
// call, one timeout per request.
type httpClient struct {
	name    string
	baseURL string
	hc      *http.Client
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker
	ua      string
}

func newHTTPClient(cfg ClientConfig) *httpClient {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.RPS <= 0 {
		cfg.RPS = 1
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}

	settings := gobreaker.Settings{
		Name:     cfg.Name,
		Interval: 60 * time.Second,
		Timeout:  30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.ConsecutiveFailures >= 3 {
				return true
			}
			if counts.Requests < 10 {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) > 0.5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("provider", name).
				Str("from", from.String()).Str("to", to.String()).
				Msg("circuit state change")
		},
	}

	return &httpClient{
		name:    cfg.Name,
		baseURL: cfg.BaseURL,
		hc:      &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(rate.Limit(cfg.RPS), cfg.Burst),
		breaker: gobreaker.NewCircuitBreaker(settings),
		ua:      cfg.UserAgent,
	}
}

// getJSON performs a rate-limited, breaker-guarded GET and decodes the
// JSON body into out.
func (c *httpClient) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%s: rate limit wait: %w", c.name, err)
	}

	started := time.Now()
	_, err := c.breaker.Execute(func() (any, error) {
		return nil, c.doGet(ctx, path, query, out)
	})
	telemetry.ProviderLatency.WithLabelValues(c.name).Observe(time.Since(started).Seconds())

	if err != nil {
		telemetry.ProviderRequests.WithLabelValues(c.name, "error").Inc()
		return err
	}
	telemetry.ProviderRequests.WithLabelValues(c.name, "ok").Inc()
	return nil
}

func (c *httpClient) doGet(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", c.name, err)
	}
	req.Header.Set("User-Agent", c.ua)
	req.Header.Set("Accept", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("%s: request failed: %w", c.name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%s: unexpected status %d", c.name, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", c.name, err)
	}
	return nil
}
