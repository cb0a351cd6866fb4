package report

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/hillbillynomad/powder/internal/resort"
	"github.com/hillbillynomad/powder/internal/snowfall"
)

// Forecaster is the slice of the snowfall service the exporter needs.
type Forecaster interface {
	Forecast(ctx context.Context, rst resort.Resort, days int) []snowfall.DailyAggregate
	History(ctx context.Context, rst resort.Resort, days int) []snowfall.Observation
}

// Document is the exported forecast file: per-resort totals, per-day
// source breakdown, and recent measured history.
type Document struct {
	ExportID    string           `json:"export_id"`
	GeneratedAt time.Time        `json:"generated_at"`
	Resorts     []ResortForecast `json:"resorts"`
}

// ResortForecast is one resort's entry in the export document.
type ResortForecast struct {
	Name              string  `json:"name"`
	Slug              string  `json:"slug"`
	Country           string  `json:"country"`
	Region            string  `json:"region"`
	Latitude          float64 `json:"latitude"`
	Longitude         float64 `json:"longitude"`
	ElevationBaseFt   int     `json:"elevation_base_ft"`
	ElevationPeakFt   int     `json:"elevation_peak_ft"`
	VerticalDropFt    int     `json:"vertical_drop_ft"`
	LiftCount         int     `json:"lift_count"`
	AvgSnowfallInches int     `json:"avg_snowfall_inches"`
	PassType          string  `json:"pass_type"`

	Forecast   ForecastSummary `json:"forecast"`
	Historical HistorySummary  `json:"historical"`
}

// ForecastSummary is the aggregated multi-source forecast.
type ForecastSummary struct {
	TotalInches float64      `json:"total_inches"`
	Days        []DaySummary `json:"days"`
}

// DaySummary is one forecast date with its per-source breakdown.
type DaySummary struct {
	Date      string             `json:"date"`
	AvgInches float64            `json:"avg_inches"`
	Sources   map[string]float64 `json:"sources"`
}

// HistorySummary is the measured look-back window.
type HistorySummary struct {
	TotalInches float64      `json:"total_inches"`
	Days        []HistoryDay `json:"days"`
}

// HistoryDay is one measured date.
type HistoryDay struct {
	Date   string  `json:"date"`
	Inches float64 `json:"inches"`
}

// BuildDocument fetches forecasts and history for every resort and
// assembles the export document. Resorts with no data still appear,
// with empty day lists.
func BuildDocument(ctx context.Context, svc Forecaster, resorts []resort.Resort, forecastDays, historyDays int) Document {
	doc := Document{
		ExportID:    uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Resorts:     make([]ResortForecast, 0, len(resorts)),
	}

	for _, rst := range resorts {
		doc.Resorts = append(doc.Resorts, buildResortForecast(ctx, svc, rst, forecastDays, historyDays))
	}
	return doc
}

func buildResortForecast(ctx context.Context, svc Forecaster, rst resort.Resort, forecastDays, historyDays int) ResortForecast {
	entry := ResortForecast{
		Name:              rst.Name,
		Slug:              rst.Slug(),
		Country:           rst.Country,
		Region:            rst.Region,
		Latitude:          rst.Latitude,
		Longitude:         rst.Longitude,
		ElevationBaseFt:   rst.ElevationBaseFt,
		ElevationPeakFt:   rst.ElevationPeakFt,
		VerticalDropFt:    rst.VerticalDropFt(),
		LiftCount:         rst.LiftCount,
		AvgSnowfallInches: rst.AvgSnowfallInches,
		PassType:          rst.PassType,
	}

	aggregates := svc.Forecast(ctx, rst, forecastDays)
	entry.Forecast.Days = make([]DaySummary, 0, len(aggregates))
	for _, a := range aggregates {
		sources := make(map[string]float64, len(a.Observations))
		for _, o := range a.Observations {
			sources[o.Source] = o.Inches
		}
		entry.Forecast.Days = append(entry.Forecast.Days, DaySummary{
			Date:      a.Date.Format("2006-01-02"),
			AvgInches: a.AvgInches,
			Sources:   sources,
		})
		entry.Forecast.TotalInches += a.AvgInches
	}

	history := svc.History(ctx, rst, historyDays)
	entry.Historical.Days = make([]HistoryDay, 0, len(history))
	for _, o := range history {
		entry.Historical.Days = append(entry.Historical.Days, HistoryDay{
			Date:   o.Date.Format("2006-01-02"),
			Inches: o.Inches,
		})
		entry.Historical.TotalInches += o.Inches
	}

	return entry
}

// ExportJSON builds the document and writes it to path, indented.
func ExportJSON(ctx context.Context, svc Forecaster, resorts []resort.Resort, forecastDays, historyDays int, path string) error {
	doc := BuildDocument(ctx, svc, resorts, forecastDays, historyDays)

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal export document: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write export file: %w", err)
	}
	return nil
}
