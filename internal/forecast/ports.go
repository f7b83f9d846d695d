package forecast

import "context"

// Resolver turns a free-text location query into coordinates, a display
// name, and a unit system. Any failure (no results, unusable results,
// rejected query) is reported as an error; callers treat every error as
// "could not geocode".
type Resolver interface {
	Resolve(ctx context.Context, query string) (GeoResolution, error)
}

// Client fetches a raw forecast payload from the upstream weather provider.
// The payload is returned as parsed JSON with no schema validation.
type Client interface {
	FetchForecast(ctx context.Context, lat, lon float64, units Units) (map[string]any, error)
}

// Cache stores forecasts keyed by rounded coordinates with a fixed TTL.
// Read never errors: a miss, an expired entry, and an undecodable entry
// all look the same to the caller.
type Cache interface {
	Read(ctx context.Context, lat, lon float64) (*Forecast, bool)
	Write(ctx context.Context, lat, lon float64, f Forecast) error
	Delete(ctx context.Context, lat, lon float64) error
}
