// Package cache implements the forecast cache: coordinates rounded to four
// decimals map to a serialized forecast with a fixed time-to-live. The
// backing store is pluggable (in-memory or Valkey); the key and expiry
// policy live here.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"forecastd/internal/forecast"
)

// DefaultTTL is the entry lifetime used when none is configured.
const DefaultTTL = 30 * time.Minute

// Store is the key-value backend contract. Get treats every failure as a
// miss; Set must honor the TTL; Delete is idempotent.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// KeyFor builds the deterministic cache key for a coordinate pair. Rounding
// to four decimals (~11m) makes near-duplicate coordinates collide on
// purpose, so slightly different geocodings of the same place share an
// entry.
func KeyFor(lat, lon float64) string {
	return fmt.Sprintf("forecast:%.4f,%.4f", lat, lon)
}

// ForecastCache stores forecasts with a TTL fixed at construction. There is
// no sliding expiry and no per-entry override; concurrent writers race
// last-write-wins.
type ForecastCache struct {
	store Store
	ttl   time.Duration
}

// New creates a ForecastCache over the given store. A non-positive ttl
// selects DefaultTTL.
func New(store Store, ttl time.Duration) *ForecastCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &ForecastCache{store: store, ttl: ttl}
}

// Read returns the cached forecast for the coordinates, or (nil, false) on
// a miss, an expired entry, or an entry that no longer decodes.
func (c *ForecastCache) Read(ctx context.Context, lat, lon float64) (*forecast.Forecast, bool) {
	key := KeyFor(lat, lon)
	data, ok := c.store.Get(ctx, key)
	if !ok {
		return nil, false
	}

	var f forecast.Forecast
	if err := json.Unmarshal(data, &f); err != nil {
		log.Printf("cache: discarding undecodable entry %s: %v", key, err)
		return nil, false
	}
	return &f, true
}

// Write stores the forecast, unconditionally overwriting any existing
// entry. The TTL countdown starts now.
func (c *ForecastCache) Write(ctx context.Context, lat, lon float64, f forecast.Forecast) error {
	data, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("marshal forecast: %w", err)
	}
	return c.store.Set(ctx, KeyFor(lat, lon), data, c.ttl)
}

// Delete removes the entry for the coordinates; absent entries are not an
// error.
func (c *ForecastCache) Delete(ctx context.Context, lat, lon float64) error {
	return c.store.Delete(ctx, KeyFor(lat, lon))
}
