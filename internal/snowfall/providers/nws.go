package providers

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/hillbillynomad/powder/internal/logger"
	"github.com/hillbillynomad/powder/internal/resort"
	"github.com/hillbillynomad/powder/internal/snowfall"
)

// NWSProvider fetches snowfall forecasts from the US National Weather
// Service gridpoint API. The protocol is two-step: resolve coordinates
// to a forecast grid, then fetch the grid's snowfall series. Amounts
// arrive as millimeter increments per time interval and are summed
// into daily totals. US resorts only.
type NWSProvider struct {
	name    string
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

func NewNWSProvider(client *http.Client) *NWSProvider {
	return &NWSProvider{
		name:    "NWS",
		baseURL: "https://api.weather.gov",
		client:  client,
		circuit: newBreaker("nws"),
	}
}

func (p *NWSProvider) Name() string {
	return p.name
}

func (p *NWSProvider) header() http.Header {
	h := http.Header{}
	h.Set("User-Agent", "(powder snowfall tracker, contact@example.com)")
	h.Set("Accept", "application/geo+json")
	return h
}

type nwsGrid struct {
	ID string
	X  int
	Y  int
}

func (p *NWSProvider) gridPoint(ctx context.Context, lat, lon float64) (nwsGrid, error) {
	u := fmt.Sprintf("%s/points/%s,%s", p.baseURL, formatCoord(lat), formatCoord(lon))

	var payload struct {
		Properties struct {
			GridID string `json:"gridId"`
			GridX  int    `json:"gridX"`
			GridY  int    `json:"gridY"`
		} `json:"properties"`
	}
	if err := getJSON(ctx, p.client, p.circuit, u, p.header(), &payload); err != nil {
		return nwsGrid{}, fmt.Errorf("resolve grid point: %w", err)
	}
	if payload.Properties.GridID == "" {
		return nwsGrid{}, fmt.Errorf("grid point response missing gridId")
	}

	return nwsGrid{
		ID: payload.Properties.GridID,
		X:  payload.Properties.GridX,
		Y:  payload.Properties.GridY,
	}, nil
}

func (p *NWSProvider) SnowfallForecast(ctx context.Context, rst resort.Resort, days int) ([]snowfall.Observation, error) {
	grid, err := p.gridPoint(ctx, rst.Latitude, rst.Longitude)
	if err != nil {
		return nil, err
	}

	u := fmt.Sprintf("%s/gridpoints/%s/%d,%d", p.baseURL, grid.ID, grid.X, grid.Y)

	var payload struct {
		Properties struct {
			SnowfallAmount struct {
				Values []struct {
					ValidTime string   `json:"validTime"`
					Value     *float64 `json:"value"`
				} `json:"values"`
			} `json:"snowfallAmount"`
		} `json:"properties"`
	}
	if err := getJSON(ctx, p.client, p.circuit, u, p.header(), &payload); err != nil {
		return nil, fmt.Errorf("fetch gridpoint forecast: %w", err)
	}

	// Sum millimeter increments into per-day totals. validTime is an
	// interval like "2024-01-15T06:00:00+00:00/PT6H"; only the start
	// timestamp buckets the value. Malformed entries are skipped.
	dailyTotals := make(map[time.Time]float64)
	for _, entry := range payload.Properties.SnowfallAmount.Values {
		start, _, _ := strings.Cut(entry.ValidTime, "/")
		ts, err := time.Parse(time.RFC3339, start)
		if err != nil {
			logger.Debugf("%s: skipping entry with bad validTime %q: %v", p.name, entry.ValidTime, err)
			continue
		}

		var mm float64
		if entry.Value != nil {
			mm = *entry.Value
		}
		day := snowfall.Day(ts)
		dailyTotals[day] += snowfall.MmToInches(mm)
	}

	dates := make([]time.Time, 0, len(dailyTotals))
	for d := range dailyTotals {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	today := snowfall.Today()
	obs := make([]snowfall.Observation, 0, days)
	for _, d := range dates {
		if d.Before(today) {
			continue
		}
		if len(obs) >= days {
			break
		}
		obs = append(obs, snowfall.Observation{
			Date:   d,
			Inches: snowfall.Round1(dailyTotals[d]),
			Source: p.name,
		})
	}

	return obs, nil
}

var _ snowfall.Provider = (*NWSProvider)(nil)
