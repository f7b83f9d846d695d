package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PIRATE_WEATHER_API_KEY", "test-key")
	t.Setenv("WEATHER_CACHE_EXPIRY_MINUTES", "")
	t.Setenv("HTTP_TIMEOUT", "")
	t.Setenv("PREFETCH_QUERIES", "")
	t.Setenv("PREFETCH_INTERVAL", "")
	t.Setenv("PORT", "")
	t.Setenv("VALKEY_ADDR", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.CacheTTL != 30*time.Minute {
		t.Errorf("expected default TTL 30m, got %v", cfg.CacheTTL)
	}
	if cfg.HTTPTimeout != 10*time.Second {
		t.Errorf("expected default timeout 10s, got %v", cfg.HTTPTimeout)
	}
	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %q", cfg.Port)
	}
	if len(cfg.PrefetchQueries) != 0 {
		t.Errorf("expected no prefetch queries, got %v", cfg.PrefetchQueries)
	}
}

func TestLoadRequiresAPIKey(t *testing.T) {
	t.Setenv("PIRATE_WEATHER_API_KEY", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected an error without an api key")
	}
}

func TestLoadCacheExpiry(t *testing.T) {
	t.Setenv("PIRATE_WEATHER_API_KEY", "test-key")
	t.Setenv("WEATHER_CACHE_EXPIRY_MINUTES", "5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.CacheTTL != 5*time.Minute {
		t.Errorf("expected TTL 5m, got %v", cfg.CacheTTL)
	}

	t.Setenv("WEATHER_CACHE_EXPIRY_MINUTES", "-1")
	if _, err := Load(); err == nil {
		t.Fatal("expected an error for a non-positive expiry")
	}
}

func TestLoadPrefetchQueries(t *testing.T) {
	t.Setenv("PIRATE_WEATHER_API_KEY", "test-key")
	t.Setenv("PREFETCH_QUERIES", "Chicago, Boston ,  ,Denver")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"Chicago", "Boston", "Denver"}
	if len(cfg.PrefetchQueries) != len(want) {
		t.Fatalf("expected %v, got %v", want, cfg.PrefetchQueries)
	}
	for i := range want {
		if cfg.PrefetchQueries[i] != want[i] {
			t.Errorf("expected %v, got %v", want, cfg.PrefetchQueries)
			break
		}
	}
}
