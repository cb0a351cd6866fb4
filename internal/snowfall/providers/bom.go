package providers

import (
	"context"
	"net/http"

	"github.com/sony/gobreaker"

	"github.com/hillbillynomad/powder/internal/resort"
	"github.com/hillbillynomad/powder/internal/snowfall"
)

// BOMProvider fetches snowfall forecasts from the Australian Bureau of
// Meteorology ACCESS model via the Open-Meteo model endpoint. Covers
// Australia and New Zealand, capped at 7 days.
type BOMProvider struct {
	name    string
	baseURL string
	maxDays int
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

func NewBOMProvider(client *http.Client) *BOMProvider {
	return &BOMProvider{
		name:    "BOM",
		baseURL: "https://api.open-meteo.com/v1/bom",
		maxDays: 7,
		client:  client,
		circuit: newBreaker("bom"),
	}
}

func (p *BOMProvider) Name() string {
	return p.name
}

func (p *BOMProvider) MaxDays() int {
	return p.maxDays
}

func (p *BOMProvider) SnowfallForecast(ctx context.Context, rst resort.Resort, days int) ([]snowfall.Observation, error) {
	if days > p.maxDays {
		days = p.maxDays
	}
	return fetchDaily(ctx, p.client, p.circuit, p.baseURL, p.name, rst.TimezoneOrUTC(), rst, days)
}

var _ snowfall.Provider = (*BOMProvider)(nil)
