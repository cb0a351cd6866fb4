package snowfall

import "math"

const (
	inchesPerCm = 0.393701
	inchesPerMm = 0.0393701
)

// CmToInches converts centimeters of snowfall to inches.
func CmToInches(cm float64) float64 {
	return cm * inchesPerCm
}

// MmToInches converts millimeters of snowfall to inches.
func MmToInches(mm float64) float64 {
	return mm * inchesPerMm
}

// Round1 rounds to one decimal place, the reporting precision for all
// normalized amounts.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
