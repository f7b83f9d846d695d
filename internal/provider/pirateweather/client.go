package pirateweather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"

	"forecastd/internal/forecast"
)

const defaultBaseURL = "https://api.pirateweather.net/forecast"

var (
	errNoAPIKey     = errors.New("pirate weather api key is not configured")
	errCircuitOpen  = errors.New("circuit breaker open")
	errNoHTTPClient = errors.New("http client not configured")
)

// StatusError is returned for any non-2xx upstream response and carries
// the status code. The request URL embeds the API credential, so it is
// deliberately absent from the message.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("pirate weather api error: status %d", e.Code)
}

// Client fetches forecasts from the Pirate Weather API. Each call issues a
// single synchronous GET behind a circuit breaker; the client does not
// retry and does not cache.
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

// NewClient creates a Client using the given HTTP client and credential.
// The HTTP client's timeout bounds every upstream call.
func NewClient(httpClient *http.Client, apiKey string) *Client {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "pirateweather",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		client:  httpClient,
		circuit: cb,
	}
}

// SetBaseURL overrides the upstream endpoint, mainly for tests.
func (c *Client) SetBaseURL(baseURL string) {
	c.baseURL = baseURL
}

// FetchForecast issues one GET against the forecast endpoint and returns
// the parsed body as-is with no schema validation. Non-2xx statuses yield
// a *StatusError; transport and decode failures propagate wrapped.
func (c *Client) FetchForecast(ctx context.Context, lat, lon float64, units forecast.Units) (map[string]any, error) {
	if c.apiKey == "" {
		return nil, errNoAPIKey
	}
	if c.client == nil {
		return nil, errNoHTTPClient
	}

	values := url.Values{}
	values.Set("units", string(units))
	values.Set("icon", "pirate")

	u := fmt.Sprintf("%s/%s/%f,%f?%s", c.baseURL, c.apiKey, lat, lon, values.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	result, err := c.circuit.Execute(func() (interface{}, error) {
		resp, execErr := c.client.Do(req)
		if execErr != nil {
			return nil, execErr
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			resp.Body.Close()
			return nil, &StatusError{Code: resp.StatusCode}
		}

		return resp, nil
	})
	if err != nil {
		// An open circuit fails fast without touching the upstream.
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %v", errCircuitOpen, err)
		}
		return nil, err
	}

	resp, ok := result.(*http.Response)
	if !ok {
		return nil, fmt.Errorf("unexpected result type from circuit breaker")
	}
	defer resp.Body.Close()

	var payload map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode forecast response: %w", err)
	}

	return payload, nil
}
