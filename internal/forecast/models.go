package forecast

// Units identifies the unit system a forecast was requested in.
// The upstream provider understands exactly two: "us" (Fahrenheit, mph)
// and "si" (Celsius, m/s).
type Units string

const (
	UnitsUS Units = "us"
	UnitsSI Units = "si"
)

// Forecast is the normalized weather view for a single location.
// It is a value object: built once from an upstream payload and never
// mutated; a refresh produces a new Forecast that supersedes it.
type Forecast struct {
	Temperature *float64       `json:"temperature"`
	Summary     *string        `json:"summary"`
	Icon        *string        `json:"icon"`
	Units       Units          `json:"units"`
	Location    string         `json:"location"`
	Raw         map[string]any `json:"raw_data,omitempty"`
}

// Fahrenheit reports whether the forecast temperatures are in Fahrenheit.
func (f Forecast) Fahrenheit() bool {
	return f.Units == UnitsUS
}

// Celsius reports whether the forecast temperatures are in Celsius.
func (f Forecast) Celsius() bool {
	return f.Units == UnitsSI
}

// New builds a Forecast from a raw upstream payload. Only the
// currently.temperature/summary/icon fields are lifted out; anything
// missing or of an unexpected type simply stays nil. The full payload is
// retained for downstream display.
func New(raw map[string]any, units Units, location string) Forecast {
	f := Forecast{
		Units:    units,
		Location: location,
		Raw:      raw,
	}

	currently, _ := raw["currently"].(map[string]any)
	if currently == nil {
		return f
	}

	if temp, ok := currently["temperature"].(float64); ok {
		f.Temperature = &temp
	}
	if summary, ok := currently["summary"].(string); ok {
		f.Summary = &summary
	}
	if icon, ok := currently["icon"].(string); ok {
		f.Icon = &icon
	}
	return f
}

// GeoResolution is the outcome of geocoding a free-text query. It lives
// only for the duration of one Fetch invocation and is never persisted.
type GeoResolution struct {
	Lat          float64
	Lon          float64
	LocationName string
	Units        Units
}

// Result wraps the outcome of a forecast fetch: on success a Forecast plus
// cache provenance, on failure a short user-facing message. Location name
// and units are carried on every path where resolution succeeded so the
// caller can still render them alongside an error.
type Result struct {
	Forecast     *Forecast `json:"forecast"`
	FromCache    bool      `json:"from_cache"`
	ErrorMessage string    `json:"error,omitempty"`
	LocationName string    `json:"location_name,omitempty"`
	Units        Units     `json:"units,omitempty"`
}

// IsError reports whether the fetch failed.
func (r Result) IsError() bool {
	return r.ErrorMessage != ""
}

// IsSuccess reports whether the fetch produced a usable forecast.
func (r Result) IsSuccess() bool {
	return r.Forecast != nil && r.ErrorMessage == ""
}
