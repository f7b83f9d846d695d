package geocode

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	defaultBaseURL = "https://nominatim.openstreetmap.org"
	searchEndpoint = "/search"

	// Nominatim's usage policy requires an identifying User-Agent.
	userAgent = "forecastd/1.0"

	defaultTimeout = 10 * time.Second
)

// NominatimSearcher implements Searcher against the OpenStreetMap
// Nominatim search API.
type NominatimSearcher struct {
	client *resty.Client
}

// NewNominatimSearcher creates a searcher. An empty baseURL selects the
// public Nominatim instance; a zero timeout selects the default.
func NewNominatimSearcher(baseURL string, timeout time.Duration) *NominatimSearcher {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("User-Agent", userAgent).
		SetTimeout(timeout).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(2 * time.Second)

	return &NominatimSearcher{client: client}
}

// Search issues a forward-geocoding request and returns the raw candidate
// list. Address details are always requested so the resolver can build a
// display name and infer units.
func (n *NominatimSearcher) Search(ctx context.Context, query string, opts SearchOptions) ([]Result, error) {
	params := map[string]string{
		"q":              query,
		"format":         "jsonv2",
		"addressdetails": "1",
		"limit":          "5",
	}
	if opts.CountryBias != "" {
		params["countrycodes"] = opts.CountryBias
	}

	var results []Result
	resp, err := n.client.R().
		SetContext(ctx).
		SetQueryParams(params).
		SetResult(&results).
		Get(searchEndpoint)
	if err != nil {
		return nil, fmt.Errorf("nominatim search: %w", err)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("nominatim search returned status %d", resp.StatusCode())
	}

	return results, nil
}
