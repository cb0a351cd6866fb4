package report

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/hillbillynomad/powder/internal/resort"
	"github.com/hillbillynomad/powder/internal/snowfall"
)

var numPrinter = message.NewPrinter(language.English)

// WriteForecastTable renders the aggregated forecast as a console
// table: one row per date, an average column, and one column per
// source applicable to the resort. Sources absent on a date show "-".
func WriteForecastTable(w io.Writer, rst resort.Resort, results []snowfall.DailyAggregate, sources []string) {
	writeHeader(w, fmt.Sprintf("Snowfall Forecast: %s, %s", rst.Name, rst.Region), rst)

	if len(results) == 0 {
		fmt.Fprintln(w, "No forecast data available.")
		return
	}

	cols := make([]int, len(sources))
	for i, s := range sources {
		cols[i] = len(s) + 2
		if cols[i] < 8 {
			cols[i] = 8
		}
	}

	fmt.Fprintf(w, "%-12s %8s", "Date", "Avg")
	for i, s := range sources {
		fmt.Fprintf(w, " %*s", cols[i], s)
	}
	fmt.Fprintln(w)

	width := 21
	for _, c := range cols {
		width += c + 1
	}
	fmt.Fprintln(w, strings.Repeat("-", width))

	for _, result := range results {
		bySource := make(map[string]float64, len(result.Observations))
		for _, o := range result.Observations {
			bySource[o.Source] = o.Inches
		}

		fmt.Fprintf(w, "%-12s %7.1f\"", result.Date.Format("Mon 01/02"), result.AvgInches)
		for i, s := range sources {
			if v, ok := bySource[s]; ok {
				fmt.Fprintf(w, " %*s", cols[i], fmt.Sprintf("%.1f\"", v))
			} else {
				fmt.Fprintf(w, " %*s", cols[i], "-")
			}
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, strings.Repeat("-", width))
	fmt.Fprintf(w, "%-12s %7.1f\"\n\n", "Total", snowfall.TotalInches(results))
}

// WriteHistoryTable renders measured past snowfall, one row per date.
func WriteHistoryTable(w io.Writer, rst resort.Resort, observations []snowfall.Observation) {
	writeHeader(w, fmt.Sprintf("Recent Snowfall: %s, %s", rst.Name, rst.Region), rst)

	if len(observations) == 0 {
		fmt.Fprintln(w, "No historical data available.")
		return
	}

	fmt.Fprintf(w, "%-12s %8s   %s\n", "Date", "Snow", "Source")
	fmt.Fprintln(w, strings.Repeat("-", 42))

	var total float64
	for _, o := range observations {
		fmt.Fprintf(w, "%-12s %7.1f\"   %s\n", o.Date.Format("Mon 01/02"), o.Inches, o.Source)
		total += o.Inches
	}

	fmt.Fprintln(w, strings.Repeat("-", 42))
	fmt.Fprintf(w, "%-12s %7.1f\"\n\n", "Total", total)
}

// WriteResortList renders the resort database, one line per resort.
func WriteResortList(w io.Writer, resorts []resort.Resort) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Available Ski Resorts")
	fmt.Fprintln(w, strings.Repeat("=", 72))

	for _, r := range resorts {
		pass := r.PassType
		if pass == "" {
			pass = "-"
		}
		numPrinter.Fprintf(w, "%-24s %s  %-20s %3d lifts  %5s  %s\n",
			r.Slug(), r.Country, r.Region, r.LiftCount, pass,
			numPrinter.Sprintf("%d ft", r.ElevationBaseFt))
	}

	fmt.Fprintln(w, strings.Repeat("-", 72))
	fmt.Fprintf(w, "Total: %d resorts\n\n", len(resorts))
}

func writeHeader(w io.Writer, title string, rst resort.Resort) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("=", 60))
	fmt.Fprintf(w, "  %s\n", title)
	numPrinter.Fprintf(w, "  Elevation: %d ft", rst.ElevationBaseFt)
	if drop := rst.VerticalDropFt(); drop > 0 {
		numPrinter.Fprintf(w, "  (vertical drop %d ft)", drop)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("=", 60))
	fmt.Fprintln(w)
}
