package snowfall

import (
	"context"

	"github.com/hillbillynomad/powder/internal/logger"
	"github.com/hillbillynomad/powder/internal/resort"
)

// Service dispatches forecast requests to every provider applicable to
// a resort and aggregates the results. One source failing never aborts
// the others; a fully empty result is a valid terminal state.
type Service struct {
	capabilities []Capability
	history      HistoricalProvider
}

// NewService creates a Service from a provider capability table and an
// optional historical provider.
func NewService(capabilities []Capability, history HistoricalProvider) *Service {
	return &Service{
		capabilities: capabilities,
		history:      history,
	}
}

// FetchAll invokes each applicable provider sequentially with the
// requested horizon clamped to the provider's maximum, swallowing and
// logging failures, and returns the union of all observations.
func (s *Service) FetchAll(ctx context.Context, rst resort.Resort, days int) []Observation {
	var all []Observation

	for _, cap := range s.capabilities {
		if !cap.Applies(rst) {
			continue
		}

		horizon := days
		if cap.MaxDays > 0 && horizon > cap.MaxDays {
			horizon = cap.MaxDays
		}

		logger.Debugf("fetching %d-day forecast from %s for %s", horizon, cap.Provider.Name(), rst.Slug())
		obs, err := cap.Provider.SnowfallForecast(ctx, rst, horizon)
		if err != nil {
			logger.Warnf("provider %s failed for %s: %v", cap.Provider.Name(), rst.Slug(), err)
			continue
		}
		all = append(all, obs...)
	}

	return all
}

// Forecast fetches from all applicable providers and aggregates the
// observations per calendar date.
func (s *Service) Forecast(ctx context.Context, rst resort.Resort, days int) []DailyAggregate {
	return Aggregate(s.FetchAll(ctx, rst, days))
}

// History fetches measured past snowfall from the archive provider.
// Like forecasts, a failed fetch yields an empty list, never an error.
func (s *Service) History(ctx context.Context, rst resort.Resort, days int) []Observation {
	if s.history == nil {
		return nil
	}

	obs, err := s.history.HistoricalSnowfall(ctx, rst, days)
	if err != nil {
		logger.Warnf("historical provider %s failed for %s: %v", s.history.Name(), rst.Slug(), err)
		return nil
	}
	return obs
}

// SourcesFor lists the display names of the providers applicable to a
// resort, in capability-table order. Reports use this for their source
// columns.
func (s *Service) SourcesFor(rst resort.Resort) []string {
	var names []string
	for _, cap := range s.capabilities {
		if cap.Applies(rst) {
			names = append(names, cap.Provider.Name())
		}
	}
	return names
}
