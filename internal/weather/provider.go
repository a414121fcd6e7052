package weather

import (
	"context"
	"errors"
)

// ErrCityNotFound is returned when the upstream service reports that it could
// not resolve the requested city. It is the only provider-side failure that is
// non-fatal to a dashboard build; match it with errors.Is.
var ErrCityNotFound = errors.New("city not found")

// Provider abstracts the upstream weather data source.
type Provider interface {
	Name() string

	// Fetch returns the current conditions and 7-day forecast for a city.
	// Transport failures and malformed responses come back as ordinary
	// errors; a provider-reported unknown city comes back wrapping
	// ErrCityNotFound.
	Fetch(ctx context.Context, city string) (CityWeather, error)
}
