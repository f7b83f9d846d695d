package pirateweather

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"forecastd/internal/forecast"
)

func TestFetchForecastSuccess(t *testing.T) {
	var gotPath, gotUnits, gotIcon string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUnits = r.URL.Query().Get("units")
		gotIcon = r.URL.Query().Get("icon")

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"currently": {
				"temperature": 75,
				"summary": "Clear",
				"icon": "clear-day"
			}
		}`))
	}))
	defer server.Close()

	client := NewClient(server.Client(), "test-key")
	client.SetBaseURL(server.URL)

	payload, err := client.FetchForecast(context.Background(), 40.7128, -74.0060, forecast.UnitsUS)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasPrefix(gotPath, "/test-key/") {
		t.Errorf("request path must embed the credential, got %q", gotPath)
	}
	if !strings.Contains(gotPath, "40.712800,-74.006000") {
		t.Errorf("request path must embed the coordinates, got %q", gotPath)
	}
	if gotUnits != "us" {
		t.Errorf("expected units=us, got %q", gotUnits)
	}
	if gotIcon != "pirate" {
		t.Errorf("expected icon=pirate, got %q", gotIcon)
	}

	currently, _ := payload["currently"].(map[string]any)
	if currently == nil {
		t.Fatal("expected currently block in payload")
	}
	if currently["temperature"] != 75.0 {
		t.Errorf("expected temperature 75, got %v", currently["temperature"])
	}
}

func TestFetchForecastUpstreamStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer server.Close()

	client := NewClient(server.Client(), "test-key")
	client.SetBaseURL(server.URL)

	_, err := client.FetchForecast(context.Background(), 1, 2, forecast.UnitsSI)

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected *StatusError, got %v", err)
	}
	if statusErr.Code != http.StatusForbidden {
		t.Errorf("expected status 403, got %d", statusErr.Code)
	}
	if strings.Contains(err.Error(), "test-key") {
		t.Error("error message must not leak the credential")
	}
}

func TestFetchForecastMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"currently": `))
	}))
	defer server.Close()

	client := NewClient(server.Client(), "test-key")
	client.SetBaseURL(server.URL)

	if _, err := client.FetchForecast(context.Background(), 1, 2, forecast.UnitsSI); err == nil {
		t.Fatal("expected a decode error")
	}
}

func TestFetchForecastMissingAPIKey(t *testing.T) {
	client := NewClient(&http.Client{}, "")
	if _, err := client.FetchForecast(context.Background(), 1, 2, forecast.UnitsUS); err == nil {
		t.Fatal("expected an error without an api key")
	}
}

func TestFetchForecastSingleCallPerInvocation(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(server.Client(), "test-key")
	client.SetBaseURL(server.URL)

	if _, err := client.FetchForecast(context.Background(), 1, 2, forecast.UnitsUS); err == nil {
		t.Fatal("expected an error")
	}
	if calls != 1 {
		t.Errorf("the client must not retry, got %d upstream calls", calls)
	}
}
