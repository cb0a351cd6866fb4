package report

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hillbillynomad/powder/internal/resort"
	"github.com/hillbillynomad/powder/internal/snowfall"
)

var parkCity = resort.Resort{
	Name:            "Park City Mountain",
	Country:         "US",
	Region:          "Utah",
	Latitude:        40.6514,
	Longitude:       -111.508,
	ElevationBaseFt: 6800,
	ElevationPeakFt: 10026,
	LiftCount:       41,
	PassType:        "EPIC",
	Timezone:        "America/Denver",
}

// fakeForecaster serves canned data without network access.
type fakeForecaster struct {
	forecast []snowfall.DailyAggregate
	history  []snowfall.Observation
}

func (f fakeForecaster) Forecast(context.Context, resort.Resort, int) []snowfall.DailyAggregate {
	return f.forecast
}

func (f fakeForecaster) History(context.Context, resort.Resort, int) []snowfall.Observation {
	return f.history
}

func sampleAggregates() []snowfall.DailyAggregate {
	d := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	return snowfall.Aggregate([]snowfall.Observation{
		{Date: d, Inches: 4.0, Source: "Open-Meteo"},
		{Date: d, Inches: 6.0, Source: "ECMWF"},
		{Date: d.AddDate(0, 0, 1), Inches: 2.0, Source: "Open-Meteo"},
	})
}

func TestWriteForecastTable(t *testing.T) {
	var buf bytes.Buffer
	WriteForecastTable(&buf, parkCity, sampleAggregates(), []string{"Open-Meteo", "ECMWF", "NWS"})

	out := buf.String()
	assert.Contains(t, out, "Snowfall Forecast: Park City Mountain, Utah")
	assert.Contains(t, out, "6,800 ft")
	assert.Contains(t, out, "Open-Meteo")
	assert.Contains(t, out, "Mon 01/15")
	assert.Contains(t, out, "5.0\"") // mean of 4 and 6
	assert.Contains(t, out, "-")    // NWS column has no data
	assert.Contains(t, out, "Total")
}

func TestWriteForecastTableNoData(t *testing.T) {
	var buf bytes.Buffer
	WriteForecastTable(&buf, parkCity, nil, []string{"Open-Meteo"})

	assert.Contains(t, buf.String(), "No forecast data available.")
}

func TestWriteHistoryTable(t *testing.T) {
	var buf bytes.Buffer
	WriteHistoryTable(&buf, parkCity, []snowfall.Observation{
		{Date: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), Inches: 3.0, Source: "Open-Meteo-Archive"},
		{Date: time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC), Inches: 1.5, Source: "Open-Meteo-Archive"},
	})

	out := buf.String()
	assert.Contains(t, out, "Recent Snowfall")
	assert.Contains(t, out, "Open-Meteo-Archive")
	assert.Contains(t, out, "4.5\"")
}

func TestWriteResortList(t *testing.T) {
	var buf bytes.Buffer
	WriteResortList(&buf, []resort.Resort{parkCity})

	out := buf.String()
	assert.Contains(t, out, "Available Ski Resorts")
	assert.Contains(t, out, "park_city_mountain")
	assert.Contains(t, out, "EPIC")
	assert.Contains(t, out, "Total: 1 resorts")
}

func TestBuildDocument(t *testing.T) {
	svc := fakeForecaster{
		forecast: sampleAggregates(),
		history: []snowfall.Observation{
			{Date: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), Inches: 2.0, Source: "Open-Meteo-Archive"},
		},
	}

	doc := BuildDocument(context.Background(), svc, []resort.Resort{parkCity}, 7, 14)

	assert.NotEmpty(t, doc.ExportID)
	assert.False(t, doc.GeneratedAt.IsZero())
	require.Len(t, doc.Resorts, 1)

	entry := doc.Resorts[0]
	assert.Equal(t, "park_city_mountain", entry.Slug)
	assert.Equal(t, 3226, entry.VerticalDropFt)

	require.Len(t, entry.Forecast.Days, 2)
	assert.Equal(t, "2024-01-15", entry.Forecast.Days[0].Date)
	assert.InDelta(t, 5.0, entry.Forecast.Days[0].AvgInches, 1e-9)
	assert.InDelta(t, 4.0, entry.Forecast.Days[0].Sources["Open-Meteo"], 1e-9)
	assert.InDelta(t, 7.0, entry.Forecast.TotalInches, 1e-9)

	require.Len(t, entry.Historical.Days, 1)
	assert.InDelta(t, 2.0, entry.Historical.TotalInches, 1e-9)
}

func TestBuildDocumentNoData(t *testing.T) {
	doc := BuildDocument(context.Background(), fakeForecaster{}, []resort.Resort{parkCity}, 7, 14)

	require.Len(t, doc.Resorts, 1)
	assert.Empty(t, doc.Resorts[0].Forecast.Days)
	assert.Zero(t, doc.Resorts[0].Forecast.TotalInches)
}

func TestExportJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "forecasts.json")
	svc := fakeForecaster{forecast: sampleAggregates()}

	err := ExportJSON(context.Background(), svc, []resort.Resort{parkCity}, 7, 14, path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc Document
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Len(t, doc.Resorts, 1)
	assert.NotEmpty(t, doc.GeneratedAt)
}
