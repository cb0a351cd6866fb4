package providers

import (
	"context"
	"net/http"
	"net/url"

	"github.com/sony/gobreaker"

	"github.com/hillbillynomad/powder/internal/resort"
	"github.com/hillbillynomad/powder/internal/snowfall"
)

const (
	// Archive data trails real time by roughly five days.
	archiveLagDays = 5

	openMeteoSource = "Open-Meteo"
	archiveSource   = "Open-Meteo-Archive"
)

// OpenMeteoProvider fetches snowfall forecasts from the Open-Meteo
// seamless forecast API and measured history from its archive API.
// No API key is required. Forecast horizon is capped at 16 days.
type OpenMeteoProvider struct {
	name       string
	baseURL    string
	archiveURL string
	maxDays    int
	client     *http.Client
	circuit    *gobreaker.CircuitBreaker
}

func NewOpenMeteoProvider(client *http.Client) *OpenMeteoProvider {
	return &OpenMeteoProvider{
		name:       openMeteoSource,
		baseURL:    "https://api.open-meteo.com/v1/forecast",
		archiveURL: "https://archive-api.open-meteo.com/v1/archive",
		maxDays:    16,
		client:     client,
		circuit:    newBreaker("open-meteo"),
	}
}

func (p *OpenMeteoProvider) Name() string {
	return p.name
}

// MaxDays reports the provider's forecast horizon cap.
func (p *OpenMeteoProvider) MaxDays() int {
	return p.maxDays
}

func (p *OpenMeteoProvider) SnowfallForecast(ctx context.Context, rst resort.Resort, days int) ([]snowfall.Observation, error) {
	if days > p.maxDays {
		days = p.maxDays
	}
	return fetchDaily(ctx, p.client, p.circuit, p.baseURL, p.name, rst.TimezoneOrUTC(), rst, days)
}

// HistoricalSnowfall fetches measured snowfall for a look-back window
// of the given length, ending archiveLagDays before today. Results are
// tagged with the archive source label.
func (p *OpenMeteoProvider) HistoricalSnowfall(ctx context.Context, rst resort.Resort, days int) ([]snowfall.Observation, error) {
	end := snowfall.Today().AddDate(0, 0, -archiveLagDays)
	start := end.AddDate(0, 0, -(days - 1))

	values := url.Values{}
	values.Set("latitude", formatCoord(rst.Latitude))
	values.Set("longitude", formatCoord(rst.Longitude))
	values.Set("daily", "snowfall_sum")
	values.Set("timezone", rst.TimezoneOrUTC())
	values.Set("start_date", start.Format("2006-01-02"))
	values.Set("end_date", end.Format("2006-01-02"))

	var payload openMeteoDaily
	if err := getJSON(ctx, p.client, p.circuit, p.archiveURL+"?"+values.Encode(), nil, &payload); err != nil {
		return nil, err
	}
	return payload.observations(archiveSource), nil
}

var _ snowfall.Provider = (*OpenMeteoProvider)(nil)
var _ snowfall.HistoricalProvider = (*OpenMeteoProvider)(nil)
