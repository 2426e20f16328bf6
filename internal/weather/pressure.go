package weather

import (
	"math"
	"time"
)

// PressureSample is one observation at a point in time.
type PressureSample struct {
	TimestampMs int64   `json:"timestamp"` // unix milliseconds
	Pressure    float64 `json:"pressure"`  // hPa
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
}

// Time returns the sample timestamp as a time.Time in UTC.
func (s PressureSample) Time() time.Time {
	return time.UnixMilli(s.TimestampMs).UTC()
}

// RiskLevel is a coarse classification of headache likelihood.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Pressure change thresholds in hPa. Both bounds are exclusive: a change of
// exactly HighRiskThreshold is medium, exactly MediumRiskThreshold is low.
const (
	HighRiskThreshold   = 6.0
	MediumRiskThreshold = 3.0
)

// ClassifyRisk maps a day-over-day pressure change to a risk level by its
// magnitude.
func ClassifyRisk(pressureChange float64) RiskLevel {
	magnitude := math.Abs(pressureChange)
	switch {
	case magnitude > HighRiskThreshold:
		return RiskHigh
	case magnitude > MediumRiskThreshold:
		return RiskMedium
	default:
		return RiskLow
	}
}

// DailyForecast is one date's aggregated pressure summary.
type DailyForecast struct {
	Date           string    `json:"date"` // YYYY-MM-DD
	Pressure       float64   `json:"pressure"`
	PressureChange float64   `json:"pressureChange"`
	RiskLevel      RiskLevel `json:"riskLevel"`
	Temperature    float64   `json:"temperature"`
	Humidity       float64   `json:"humidity"`
}
