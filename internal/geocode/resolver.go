package geocode

import (
	"context"
	"errors"
	"log"
	"regexp"
	"strconv"
	"strings"

	"forecastd/internal/forecast"
)

// ErrNotFound means geocoding yielded no usable result. It covers empty
// result sets, candidates without coordinates, and queries the backend
// rejected outright.
var ErrNotFound = errors.New("geocode: location not found")

// SearchOptions tune a single search invocation.
type SearchOptions struct {
	// CountryBias restricts results to the given ISO country code.
	CountryBias string
}

// Searcher is the injected search capability backing the resolver.
type Searcher interface {
	Search(ctx context.Context, query string, opts SearchOptions) ([]Result, error)
}

// Coordinate decodes a latitude or longitude that backends deliver either
// as a JSON number or as a numeric string. Unparseable values are treated
// as absent rather than failing the whole result.
type Coordinate struct {
	value *float64
}

func (c *Coordinate) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	c.value = &f
	return nil
}

// Address holds the structured address parts of a search result.
type Address struct {
	City          string `json:"city"`
	Town          string `json:"town"`
	Village       string `json:"village"`
	Suburb        string `json:"suburb"`
	Neighbourhood string `json:"neighbourhood"`
	State         string `json:"state"`
	Country       string `json:"country"`
	CountryCode   string `json:"country_code"`
}

// locality returns the most specific populated-place name available.
func (a Address) locality() string {
	for _, part := range []string{a.City, a.Town, a.Village, a.Suburb, a.Neighbourhood} {
		if part != "" {
			return part
		}
	}
	return ""
}

// Result is one raw candidate from the search backend. Coordinate fields
// exist in two shapes across backends (flat lat/lon and spelled-out
// latitude/longitude); both are supported.
type Result struct {
	Lat         Coordinate `json:"lat"`
	Lon         Coordinate `json:"lon"`
	Latitude    Coordinate `json:"latitude"`
	Longitude   Coordinate `json:"longitude"`
	CountryCode string     `json:"country_code"`
	Address     Address    `json:"address"`
}

// coordinates returns the candidate's position, preferring the flat shape.
func (r Result) coordinates() (lat, lon float64, ok bool) {
	switch {
	case r.Lat.value != nil && r.Lon.value != nil:
		return *r.Lat.value, *r.Lon.value, true
	case r.Latitude.value != nil && r.Longitude.value != nil:
		return *r.Latitude.value, *r.Longitude.value, true
	}
	return 0, 0, false
}

// countryCode returns the candidate's ISO country code, upper-cased.
func (r Result) countryCode() string {
	code := r.Address.CountryCode
	if code == "" {
		code = r.CountryCode
	}
	return strings.ToUpper(code)
}

var zipPattern = regexp.MustCompile(`^\d{5}$`)

// Resolver converts free-text location queries into a GeoResolution using
// an injected Searcher.
type Resolver struct {
	searcher Searcher
}

// NewResolver creates a Resolver backed by the given searcher.
func NewResolver(searcher Searcher) *Resolver {
	return &Resolver{searcher: searcher}
}

// Resolve geocodes query. Five-digit queries are assumed to be US postal
// codes and bias the search accordingly. Among the candidates the first US
// result wins, falling back to the first result overall. All failure modes
// collapse into ErrNotFound; Resolve never propagates backend errors.
func (r *Resolver) Resolve(ctx context.Context, query string) (forecast.GeoResolution, error) {
	var opts SearchOptions
	if zipPattern.MatchString(query) {
		opts.CountryBias = "us"
	}

	results, err := r.searcher.Search(ctx, query, opts)
	if err != nil {
		log.Printf("geocode: search failed for %q: %v", query, err)
		return forecast.GeoResolution{}, ErrNotFound
	}
	if len(results) == 0 {
		return forecast.GeoResolution{}, ErrNotFound
	}

	chosen := results[0]
	for _, candidate := range results {
		if candidate.countryCode() == "US" {
			chosen = candidate
			break
		}
	}

	lat, lon, ok := chosen.coordinates()
	if !ok {
		return forecast.GeoResolution{}, ErrNotFound
	}

	return forecast.GeoResolution{
		Lat:          lat,
		Lon:          lon,
		LocationName: displayName(chosen.Address),
		Units:        inferUnits(chosen),
	}, nil
}

// displayName joins the non-empty locality, state, and country parts.
// A candidate with no address parts yields an empty name, which is still a
// successful resolution.
func displayName(a Address) string {
	var parts []string
	for _, part := range []string{a.locality(), a.State, a.Country} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, ", ")
}

// inferUnits picks the unit system from the resolved country: US locations
// get "us" (Fahrenheit), everything else "si".
func inferUnits(r Result) forecast.Units {
	if r.countryCode() == "US" || strings.Contains(r.Address.Country, "United States") {
		return forecast.UnitsUS
	}
	return forecast.UnitsSI
}
