package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	// PirateWeatherAPIKey authenticates against the forecast provider.
	PirateWeatherAPIKey string

	// CacheTTL is the forecast cache entry lifetime.
	CacheTTL time.Duration

	// ValkeyAddr selects the shared cache backend; empty means the
	// process-local in-memory store.
	ValkeyAddr string

	// HTTPTimeout bounds every outbound provider call.
	HTTPTimeout time.Duration

	// NominatimBaseURL overrides the geocoding endpoint (empty = public
	// instance).
	NominatimBaseURL string

	// PrefetchQueries are location queries refreshed in the background so
	// popular entries stay warm. Empty disables prefetching.
	PrefetchQueries []string

	// PrefetchInterval controls how often prefetch queries are refreshed.
	PrefetchInterval time.Duration

	Port string
}

// Load reads configuration from the environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.PirateWeatherAPIKey = os.Getenv("PIRATE_WEATHER_API_KEY")
	if cfg.PirateWeatherAPIKey == "" {
		return nil, fmt.Errorf("PIRATE_WEATHER_API_KEY is required")
	}

	// Cache expiry: default 30 minutes.
	expiryMinutes := getenvInt("WEATHER_CACHE_EXPIRY_MINUTES", 30)
	if expiryMinutes <= 0 {
		return nil, fmt.Errorf("invalid WEATHER_CACHE_EXPIRY_MINUTES: must be positive")
	}
	cfg.CacheTTL = time.Duration(expiryMinutes) * time.Minute

	cfg.ValkeyAddr = os.Getenv("VALKEY_ADDR")
	cfg.NominatimBaseURL = os.Getenv("NOMINATIM_BASE_URL")

	timeoutStr := getenvDefault("HTTP_TIMEOUT", "10s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	cfg.PrefetchQueries = splitList(os.Getenv("PREFETCH_QUERIES"))

	intervalStr := getenvDefault("PREFETCH_INTERVAL", "25m")
	interval, err := time.ParseDuration(intervalStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PREFETCH_INTERVAL: %w", err)
	}
	cfg.PrefetchInterval = interval

	cfg.Port = getenvDefault("PORT", "8080")

	return cfg, nil
}

// splitList parses a comma-separated list, dropping empty entries.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}
