package snowfall

import (
	"context"

	"github.com/hillbillynomad/powder/internal/resort"
)

// Provider abstracts one weather data source (e.g. Open-Meteo, NWS).
// Implementations normalize the upstream response into dated, inch-
// denominated observations tagged with the provider's display name.
// They return an error on any fetch or decode failure; the dispatch
// layer converts errors into an empty contribution.
type Provider interface {
	Name() string
	SnowfallForecast(ctx context.Context, rst resort.Resort, days int) ([]Observation, error)
}

// HistoricalProvider fetches measured past snowfall rather than a
// forecast. Observations carry a distinct archive source label so
// consumers can tell history from averaged forecasts.
type HistoricalProvider interface {
	Name() string
	HistoricalSnowfall(ctx context.Context, rst resort.Resort, days int) ([]Observation, error)
}

// Capability is one row of the static provider table: the provider,
// its maximum supported forecast horizon, and the predicate deciding
// whether it applies to a resort.
type Capability struct {
	Provider Provider
	MaxDays  int
	Applies  func(rst resort.Resort) bool
}

// Always marks a provider with no regional restriction.
func Always(resort.Resort) bool { return true }

// CountryIn builds a predicate matching resorts whose country code is
// in the given set.
func CountryIn(codes ...string) func(resort.Resort) bool {
	set := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		set[c] = struct{}{}
	}
	return func(rst resort.Resort) bool {
		_, ok := set[rst.Country]
		return ok
	}
}
