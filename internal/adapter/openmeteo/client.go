// Package openmeteo fetches hourly forecasts from the Open-Meteo API. It is
// the fetch collaborator in front of the analysis core: per-city failures are
// retried with exponential backoff behind a circuit breaker, and a city that
// still fails is omitted from the batch rather than surfaced as a partial
// payload.
package openmeteo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/sony/gobreaker"

	"github.com/RSangDev/weather-analytics-dashboard/internal/config"
	"github.com/RSangDev/weather-analytics-dashboard/internal/domain"
	"github.com/RSangDev/weather-analytics-dashboard/internal/observability"
)

// hourlyParams names the series requested from the API, matching the columns
// of the normalized observation table.
const hourlyParams = "temperature_2m,relative_humidity_2m,precipitation,wind_speed_10m,cloud_cover"

// defaultRequestGap is the pause between per-city requests, keeping the
// client polite toward the free API tier.
const defaultRequestGap = 500 * time.Millisecond

var (
	errRateLimited = errors.New("rate limited")
	errServerError = errors.New("server error")
)

// forecastResponse is the subset of the Open-Meteo response the pipeline
// consumes.
type forecastResponse struct {
	Latitude  float64             `json:"latitude"`
	Longitude float64             `json:"longitude"`
	Hourly    domain.HourlySeries `json:"hourly"`
}

// Client fetches forecasts for the configured cities.
type Client struct {
	baseURL       string
	httpClient    *http.Client
	retryAttempts int
	forecastDays  int
	cities        []config.City
	requestGap    time.Duration
	breaker       *gobreaker.CircuitBreaker
	logger        *slog.Logger
	metrics       *observability.Metrics
	clock         clockwork.Clock
}

// NewClient builds a forecast client from the service configuration.
func NewClient(cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) *Client {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openmeteo",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &Client{
		baseURL:       cfg.API.BaseURL,
		httpClient:    &http.Client{Timeout: cfg.API.Timeout.Std()},
		retryAttempts: cfg.API.RetryAttempts,
		forecastDays:  cfg.Processing.ForecastDays,
		cities:        cfg.Cities,
		requestGap:    defaultRequestGap,
		breaker:       breaker,
		logger:        logger,
		metrics:       metrics,
		clock:         clockwork.NewRealClock(),
	}
}

// SetClock swaps the time source used for fetch timestamps. Tests inject a
// fake clock for deterministic payloads.
func (c *Client) SetClock(clock clockwork.Clock) {
	c.clock = clock
}

// FetchAll fetches every configured city in order, returning the payloads
// that succeeded. A city whose fetch fails after all retries is logged and
// skipped; only context cancellation aborts the batch.
func (c *Client) FetchAll(ctx context.Context) ([]domain.CityPayload, error) {
	payloads := make([]domain.CityPayload, 0, len(c.cities))

	for i, city := range c.cities {
		payload, err := c.FetchCity(ctx, city)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			c.logger.Warn("city fetch failed, omitting from batch", "city", city.Name, "error", err)
			if c.metrics != nil {
				c.metrics.FetchErrors.Inc()
			}
		} else {
			payloads = append(payloads, payload)
		}

		if i < len(c.cities)-1 {
			if !sleepWithContext(ctx, c.requestGap) {
				return nil, ctx.Err()
			}
		}
	}

	c.logger.Info("forecast batch fetched", "fetched", len(payloads), "configured", len(c.cities))
	return payloads, nil
}

// FetchCity fetches one city's hourly forecast, retrying transient failures
// with exponential backoff (500ms initial, doubling, 5s cap) behind the
// circuit breaker.
func (c *Client) FetchCity(ctx context.Context, city config.City) (domain.CityPayload, error) {
	backoff := 500 * time.Millisecond
	maxBackoff := 5 * time.Second

	var lastErr error
	for attempt := 0; attempt <= c.retryAttempts; attempt++ {
		if ctx.Err() != nil {
			return domain.CityPayload{}, ctx.Err()
		}

		forecast, err := c.request(ctx, city)
		if err == nil {
			return domain.CityPayload{
				CityName:  city.Name,
				Lat:       city.Lat,
				Lon:       city.Lon,
				State:     city.State,
				Region:    city.Region,
				FetchedAt: c.clock.Now().UTC(),
				Hourly:    &forecast.Hourly,
			}, nil
		}

		lastErr = err
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return domain.CityPayload{}, fmt.Errorf("circuit breaker open: %w", err)
		}
		if attempt == c.retryAttempts {
			break
		}

		c.logger.Debug("fetch attempt failed, backing off",
			"city", city.Name, "attempt", attempt+1, "backoff", backoff, "error", err)
		if !sleepWithContext(ctx, backoff) {
			return domain.CityPayload{}, ctx.Err()
		}
		if backoff *= 2; backoff > maxBackoff {
			backoff = maxBackoff
		}
	}

	return domain.CityPayload{}, fmt.Errorf("fetch %s after %d attempts: %w", city.Name, c.retryAttempts+1, lastErr)
}

func (c *Client) request(ctx context.Context, city config.City) (*forecastResponse, error) {
	req, err := c.buildRequest(ctx, city)
	if err != nil {
		return nil, err
	}

	result, err := c.breaker.Execute(func() (any, error) {
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusTooManyRequests:
			return nil, errRateLimited
		case resp.StatusCode >= 500:
			return nil, fmt.Errorf("%w: %d", errServerError, resp.StatusCode)
		case resp.StatusCode != http.StatusOK:
			return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
		}

		var forecast forecastResponse
		if err := json.NewDecoder(resp.Body).Decode(&forecast); err != nil {
			return nil, fmt.Errorf("decode forecast: %w", err)
		}
		return &forecast, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*forecastResponse), nil
}

func (c *Client) buildRequest(ctx context.Context, city config.City) (*http.Request, error) {
	values := url.Values{}
	values.Set("latitude", strconv.FormatFloat(city.Lat, 'f', -1, 64))
	values.Set("longitude", strconv.FormatFloat(city.Lon, 'f', -1, 64))
	values.Set("hourly", hourlyParams)
	values.Set("forecast_days", strconv.Itoa(c.forecastDays))
	values.Set("timezone", "UTC")

	return http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+values.Encode(), nil)
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
