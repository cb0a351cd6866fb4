package providers

import (
	"context"
	"net/http"

	"github.com/sony/gobreaker"

	"github.com/hillbillynomad/powder/internal/resort"
	"github.com/hillbillynomad/powder/internal/snowfall"
)

// JMAProvider fetches snowfall forecasts from the Japan Meteorological
// Agency model via the Open-Meteo model endpoint. Japanese resorts
// only, capped at 7 days.
type JMAProvider struct {
	name    string
	baseURL string
	maxDays int
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

func NewJMAProvider(client *http.Client) *JMAProvider {
	return &JMAProvider{
		name:    "JMA",
		baseURL: "https://api.open-meteo.com/v1/jma",
		maxDays: 7,
		client:  client,
		circuit: newBreaker("jma"),
	}
}

func (p *JMAProvider) Name() string {
	return p.name
}

func (p *JMAProvider) MaxDays() int {
	return p.maxDays
}

func (p *JMAProvider) SnowfallForecast(ctx context.Context, rst resort.Resort, days int) ([]snowfall.Observation, error) {
	if days > p.maxDays {
		days = p.maxDays
	}
	return fetchDaily(ctx, p.client, p.circuit, p.baseURL, p.name, rst.TimezoneOrUTC(), rst, days)
}

var _ snowfall.Provider = (*JMAProvider)(nil)
