package forecast

import (
	"context"
	"log"
	"strings"
)

// User-facing failure messages. Collaborator errors never reach the caller
// directly; they are logged and mapped onto one of these.
const (
	MsgEmptyQuery          = "Please enter a query."
	MsgGeocodeFailure      = "Could not geocode query."
	MsgUpstreamUnavailable = "Error fetching weather data."
	MsgEmptyPayload        = "Could not retrieve forecast data."
)

// Service orchestrates the lookup-then-fetch-then-cache pipeline. All
// collaborators are supplied at construction; the service itself holds no
// mutable state, so invocations may run concurrently.
type Service struct {
	resolver Resolver
	client   Client
	cache    Cache
}

// NewService creates a Service with the given collaborators.
func NewService(resolver Resolver, client Client, cache Cache) *Service {
	return &Service{
		resolver: resolver,
		client:   client,
		cache:    cache,
	}
}

// Fetch resolves query to coordinates, serves a cached forecast when one is
// fresh, and otherwise fetches, normalizes, and caches a new one. When
// refresh is true the cache read is skipped but the write still happens.
// Every failure path returns a Result carrying one of the Msg* messages;
// Fetch never returns an error.
func (s *Service) Fetch(ctx context.Context, query string, refresh bool) Result {
	query = strings.TrimSpace(query)
	if query == "" {
		return Result{ErrorMessage: MsgEmptyQuery}
	}

	geo, err := s.resolver.Resolve(ctx, query)
	if err != nil {
		log.Printf("forecast: geocoding failed for %q: %v", query, err)
		return Result{ErrorMessage: MsgGeocodeFailure}
	}

	if !refresh {
		if cached, ok := s.cache.Read(ctx, geo.Lat, geo.Lon); ok {
			return Result{
				Forecast:     cached,
				FromCache:    true,
				LocationName: geo.LocationName,
				Units:        geo.Units,
			}
		}
	}

	raw, err := s.client.FetchForecast(ctx, geo.Lat, geo.Lon, geo.Units)
	if err != nil {
		// The underlying cause may embed the request URL, which carries the
		// provider credential; it goes to the operator log only.
		log.Printf("forecast: upstream fetch failed for %q (%.4f,%.4f): %v", query, geo.Lat, geo.Lon, err)
		return Result{
			ErrorMessage: MsgUpstreamUnavailable,
			LocationName: geo.LocationName,
			Units:        geo.Units,
		}
	}
	if raw == nil {
		return Result{
			ErrorMessage: MsgEmptyPayload,
			LocationName: geo.LocationName,
			Units:        geo.Units,
		}
	}

	fresh := New(raw, geo.Units, geo.LocationName)

	// Cache writes are best-effort: a cache outage must not turn a
	// successfully fetched forecast into a user-visible failure.
	if err := s.cache.Write(ctx, geo.Lat, geo.Lon, fresh); err != nil {
		log.Printf("forecast: cache write failed for %.4f,%.4f: %v", geo.Lat, geo.Lon, err)
	}

	return Result{
		Forecast:     &fresh,
		LocationName: geo.LocationName,
		Units:        geo.Units,
	}
}
