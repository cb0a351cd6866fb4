package snowfall

import (
	"time"
)

// Observation is a single dated snowfall amount reported by one source.
// Date carries no time component: it is always midnight UTC. Inches is
// never negative; upstream null or missing values normalize to 0.
type Observation struct {
	Date   time.Time `json:"date"`
	Inches float64   `json:"inches"`
	Source string    `json:"source"`
}

// DailyAggregate combines every observation reported for one calendar
// date across all sources. Observations keeps insertion order, including
// duplicate sources. An aggregate is never built for a date with zero
// observations.
type DailyAggregate struct {
	Date         time.Time     `json:"date"`
	Observations []Observation `json:"observations"`
	AvgInches    float64       `json:"avgInches"`
}

// Day truncates t to its calendar date at midnight UTC.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDay parses a plain YYYY-MM-DD calendar date.
func ParseDay(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

// Today returns the current calendar date at midnight UTC.
func Today() time.Time {
	return Day(time.Now().UTC())
}
