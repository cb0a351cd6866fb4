package snowfall

import (
	"sort"
	"time"
)

// Aggregate groups observations by calendar date, computes the
// unweighted arithmetic mean of the amounts for each date, and returns
// one DailyAggregate per represented date, sorted ascending by date.
// Dates with no observations do not appear in the result. The function
// is pure: output depends only on the input list, not on arrival order
// across sources.
func Aggregate(observations []Observation) []DailyAggregate {
	groups := make(map[time.Time][]Observation)
	for _, o := range observations {
		d := Day(o.Date)
		groups[d] = append(groups[d], o)
	}

	results := make([]DailyAggregate, 0, len(groups))
	for d, obs := range groups {
		var sum float64
		for _, o := range obs {
			sum += o.Inches
		}
		results = append(results, DailyAggregate{
			Date:         d,
			Observations: obs,
			AvgInches:    sum / float64(len(obs)),
		})
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Date.Before(results[j].Date)
	})

	return results
}

// TotalInches sums the per-date averages, the headline number shown in
// reports.
func TotalInches(aggregates []DailyAggregate) float64 {
	var total float64
	for _, a := range aggregates {
		total += a.AvgInches
	}
	return total
}
