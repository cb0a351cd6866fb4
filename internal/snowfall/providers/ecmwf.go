package providers

import (
	"context"
	"net/http"

	"github.com/sony/gobreaker"

	"github.com/hillbillynomad/powder/internal/resort"
	"github.com/hillbillynomad/powder/internal/snowfall"
)

// ECMWFProvider fetches snowfall forecasts from the ECMWF IFS model via
// the Open-Meteo model endpoint. The endpoint supports up to 10 days.
type ECMWFProvider struct {
	name    string
	baseURL string
	maxDays int
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

func NewECMWFProvider(client *http.Client) *ECMWFProvider {
	return &ECMWFProvider{
		name:    "ECMWF",
		baseURL: "https://api.open-meteo.com/v1/ecmwf",
		maxDays: 10,
		client:  client,
		circuit: newBreaker("ecmwf"),
	}
}

func (p *ECMWFProvider) Name() string {
	return p.name
}

func (p *ECMWFProvider) MaxDays() int {
	return p.maxDays
}

func (p *ECMWFProvider) SnowfallForecast(ctx context.Context, rst resort.Resort, days int) ([]snowfall.Observation, error) {
	if days > p.maxDays {
		days = p.maxDays
	}
	// The ECMWF endpoint is queried with a fixed mountain-time zone
	// regardless of resort, matching the upstream model run alignment.
	return fetchDaily(ctx, p.client, p.circuit, p.baseURL, p.name, "America/Denver", rst, days)
}

var _ snowfall.Provider = (*ECMWFProvider)(nil)
