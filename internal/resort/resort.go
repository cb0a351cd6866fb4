package resort

import (
	"strings"
	"unicode"
)

// Resort is a ski resort with the location data providers need and the
// metadata reports display. Values are immutable once loaded.
type Resort struct {
	Name              string  `json:"name"`
	Country           string  `json:"country"`
	Region            string  `json:"region"`
	Latitude          float64 `json:"latitude"`
	Longitude         float64 `json:"longitude"`
	ElevationBaseFt   int     `json:"elevation_base_ft"`
	ElevationPeakFt   int     `json:"elevation_peak_ft"`
	LiftCount         int     `json:"lift_count"`
	AvgSnowfallInches int     `json:"avg_snowfall_inches"`
	PassType          string  `json:"pass_type"`
	Timezone          string  `json:"timezone"`
}

// Slug returns the canonical identifier used in CLI flags, store keys
// and API paths: lowercase, words joined by underscores.
func (r Resort) Slug() string {
	var b strings.Builder
	lastUnderscore := true
	for _, c := range strings.ToLower(r.Name) {
		switch {
		case unicode.IsLetter(c) || unicode.IsDigit(c):
			b.WriteRune(c)
			lastUnderscore = false
		case !lastUnderscore:
			b.WriteByte('_')
			lastUnderscore = true
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}

// VerticalDropFt is the peak-to-base elevation difference, or 0 when
// the peak elevation is unknown.
func (r Resort) VerticalDropFt() int {
	if r.ElevationPeakFt <= r.ElevationBaseFt {
		return 0
	}
	return r.ElevationPeakFt - r.ElevationBaseFt
}

// TimezoneOrUTC returns the resort's IANA timezone, defaulting to UTC
// when the database entry has none.
func (r Resort) TimezoneOrUTC() string {
	if r.Timezone == "" {
		return "UTC"
	}
	return r.Timezone
}
