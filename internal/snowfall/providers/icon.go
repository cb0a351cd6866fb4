package providers

import (
	"context"
	"net/http"

	"github.com/sony/gobreaker"

	"github.com/hillbillynomad/powder/internal/resort"
	"github.com/hillbillynomad/powder/internal/snowfall"
)

// EuropeanCountries is the jurisdiction of the ICON model: country
// codes for which the DWD ICON regional forecast is applicable.
var EuropeanCountries = []string{
	"AD", "AT", "BG", "CH", "CZ", "DE", "ES", "FI", "FR", "IT",
	"NO", "PL", "RO", "SE", "SI", "SK",
}

// ICONProvider fetches snowfall forecasts from the DWD ICON regional
// model via the Open-Meteo model endpoint. European resorts only,
// capped at 7 days.
type ICONProvider struct {
	name    string
	baseURL string
	maxDays int
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

func NewICONProvider(client *http.Client) *ICONProvider {
	return &ICONProvider{
		name:    "ICON",
		baseURL: "https://api.open-meteo.com/v1/dwd-icon",
		maxDays: 7,
		client:  client,
		circuit: newBreaker("icon"),
	}
}

func (p *ICONProvider) Name() string {
	return p.name
}

func (p *ICONProvider) MaxDays() int {
	return p.maxDays
}

func (p *ICONProvider) SnowfallForecast(ctx context.Context, rst resort.Resort, days int) ([]snowfall.Observation, error) {
	if days > p.maxDays {
		days = p.maxDays
	}
	return fetchDaily(ctx, p.client, p.circuit, p.baseURL, p.name, rst.TimezoneOrUTC(), rst, days)
}

var _ snowfall.Provider = (*ICONProvider)(nil)
