package snowfall

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAggregateComputesMean(t *testing.T) {
	obs := []Observation{
		{Date: day(2024, 1, 15), Inches: 4.0, Source: "Open-Meteo"},
		{Date: day(2024, 1, 15), Inches: 6.0, Source: "ECMWF"},
		{Date: day(2024, 1, 15), Inches: 5.0, Source: "NWS"},
	}

	results := Aggregate(obs)

	require.Len(t, results, 1)
	assert.Equal(t, day(2024, 1, 15), results[0].Date)
	assert.InDelta(t, 5.0, results[0].AvgInches, 1e-9)
	assert.Len(t, results[0].Observations, 3)
}

func TestAggregateSortsByDate(t *testing.T) {
	obs := []Observation{
		{Date: day(2024, 1, 17), Inches: 1.0, Source: "Open-Meteo"},
		{Date: day(2024, 1, 15), Inches: 2.0, Source: "Open-Meteo"},
		{Date: day(2024, 1, 16), Inches: 3.0, Source: "Open-Meteo"},
		{Date: day(2024, 1, 15), Inches: 4.0, Source: "ECMWF"},
	}

	results := Aggregate(obs)

	require.Len(t, results, 3)
	for i := 1; i < len(results); i++ {
		assert.True(t, results[i-1].Date.Before(results[i].Date),
			"dates must be strictly ascending with no duplicates")
	}
}

func TestAggregateEmptyInput(t *testing.T) {
	assert.Empty(t, Aggregate(nil))
	assert.Empty(t, Aggregate([]Observation{}))
}

func TestAggregateSingleSource(t *testing.T) {
	results := Aggregate([]Observation{
		{Date: day(2024, 1, 15), Inches: 7.5, Source: "Open-Meteo"},
	})

	require.Len(t, results, 1)
	assert.InDelta(t, 7.5, results[0].AvgInches, 1e-9)
}

func TestAggregateAllZeros(t *testing.T) {
	// Zero amounts still produce an aggregate: a reported 0 means
	// "no snow", and (lossily) also "no data", never an absent date.
	results := Aggregate([]Observation{
		{Date: day(2024, 1, 15), Inches: 0.0, Source: "Open-Meteo"},
		{Date: day(2024, 1, 15), Inches: 0.0, Source: "ECMWF"},
	})

	require.Len(t, results, 1)
	assert.Zero(t, results[0].AvgInches)
}

func TestAggregateRetainsDuplicateSources(t *testing.T) {
	results := Aggregate([]Observation{
		{Date: day(2024, 1, 15), Inches: 2.0, Source: "Open-Meteo"},
		{Date: day(2024, 1, 15), Inches: 4.0, Source: "Open-Meteo"},
	})

	require.Len(t, results, 1)
	assert.Len(t, results[0].Observations, 2)
	assert.InDelta(t, 3.0, results[0].AvgInches, 1e-9)
}

func TestAggregatePreservesInsertionOrder(t *testing.T) {
	results := Aggregate([]Observation{
		{Date: day(2024, 1, 15), Inches: 1.0, Source: "A"},
		{Date: day(2024, 1, 15), Inches: 2.0, Source: "B"},
		{Date: day(2024, 1, 15), Inches: 3.0, Source: "C"},
	})

	require.Len(t, results, 1)
	sources := make([]string, 0, 3)
	for _, o := range results[0].Observations {
		sources = append(sources, o.Source)
	}
	assert.Equal(t, []string{"A", "B", "C"}, sources)
}

func TestAggregateNormalizesTimestamps(t *testing.T) {
	// Observations carrying a stray time component land in the same
	// calendar-date bucket.
	results := Aggregate([]Observation{
		{Date: time.Date(2024, 1, 15, 6, 0, 0, 0, time.UTC), Inches: 2.0, Source: "A"},
		{Date: day(2024, 1, 15), Inches: 4.0, Source: "B"},
	})

	require.Len(t, results, 1)
	assert.Equal(t, day(2024, 1, 15), results[0].Date)
	assert.InDelta(t, 3.0, results[0].AvgInches, 1e-9)
}

func TestTotalInches(t *testing.T) {
	aggs := Aggregate([]Observation{
		{Date: day(2024, 1, 15), Inches: 2.0, Source: "A"},
		{Date: day(2024, 1, 16), Inches: 3.5, Source: "A"},
	})
	assert.InDelta(t, 5.5, TotalInches(aggs), 1e-9)
}
