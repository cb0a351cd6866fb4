package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hillbillynomad/powder/internal/resort"
)

var testResort = resort.Resort{
	Name:      "Test Mountain",
	Country:   "US",
	Region:    "Utah",
	Latitude:  40.6514,
	Longitude: -111.508,
	Timezone:  "America/Denver",
}

const dailyResponse = `{
	"daily": {
		"time": ["2024-01-15", "2024-01-16", "2024-01-17"],
		"snowfall_sum": [5.0, 0.0, 2.5]
	}
}`

func TestOpenMeteoForecast(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(dailyResponse))
	}))
	defer srv.Close()

	p := NewOpenMeteoProvider(srv.Client())
	p.baseURL = srv.URL

	obs, err := p.SnowfallForecast(context.Background(), testResort, 7)
	require.NoError(t, err)
	require.Len(t, obs, 3)

	// 5.0 cm -> 2.0", 0 cm -> 0", 2.5 cm -> 1.0"
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), obs[0].Date)
	assert.InDelta(t, 2.0, obs[0].Inches, 0.05)
	assert.Zero(t, obs[1].Inches)
	assert.InDelta(t, 1.0, obs[2].Inches, 0.05)
	for _, o := range obs {
		assert.Equal(t, "Open-Meteo", o.Source)
	}

	assert.Contains(t, gotQuery, "daily=snowfall_sum")
	assert.Contains(t, gotQuery, "forecast_days=7")
	assert.Contains(t, gotQuery, "timezone=America%2FDenver")
}

func TestOpenMeteoClampsTo16Days(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"daily":{"time":[],"snowfall_sum":[]}}`))
	}))
	defer srv.Close()

	p := NewOpenMeteoProvider(srv.Client())
	p.baseURL = srv.URL

	_, err := p.SnowfallForecast(context.Background(), testResort, 30)
	require.NoError(t, err)
	assert.Contains(t, gotQuery, "forecast_days=16")
}

func TestOpenMeteoNullSnowfallIsZero(t *testing.T) {
	// A null upstream value means 0", not a missing entry. This is a
	// known-lossy collapse of "no data" into "no snow".
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"daily":{"time":["2024-01-15","2024-01-16"],"snowfall_sum":[null,3.0]}}`))
	}))
	defer srv.Close()

	p := NewOpenMeteoProvider(srv.Client())
	p.baseURL = srv.URL

	obs, err := p.SnowfallForecast(context.Background(), testResort, 7)
	require.NoError(t, err)
	require.Len(t, obs, 2)
	assert.Zero(t, obs[0].Inches)
	assert.InDelta(t, 1.2, obs[1].Inches, 0.05)
}

func TestOpenMeteoServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	p := NewOpenMeteoProvider(srv.Client())
	p.baseURL = srv.URL

	_, err := p.SnowfallForecast(context.Background(), testResort, 7)
	assert.Error(t, err)
}

func TestOpenMeteoMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	p := NewOpenMeteoProvider(srv.Client())
	p.baseURL = srv.URL

	_, err := p.SnowfallForecast(context.Background(), testResort, 7)
	assert.Error(t, err)
}

func TestOpenMeteoHistoricalWindow(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(dailyResponse))
	}))
	defer srv.Close()

	p := NewOpenMeteoProvider(srv.Client())
	p.archiveURL = srv.URL

	obs, err := p.HistoricalSnowfall(context.Background(), testResort, 14)
	require.NoError(t, err)
	require.Len(t, obs, 3)
	for _, o := range obs {
		assert.Equal(t, "Open-Meteo-Archive", o.Source)
	}

	end := time.Now().UTC().AddDate(0, 0, -archiveLagDays)
	start := end.AddDate(0, 0, -13)
	assert.Contains(t, gotQuery, "end_date="+end.Format("2006-01-02"))
	assert.Contains(t, gotQuery, "start_date="+start.Format("2006-01-02"))
}
