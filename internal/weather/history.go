package weather

import "sort"

// PressureSummary holds the statistics shown next to a pressure chart.
type PressureSummary struct {
	Count int     `json:"count"`
	Mean  float64 `json:"mean"`
	Max   float64 `json:"max"`
	Min   float64 `json:"min"`
	Range float64 `json:"range"`
}

// HistorySeries returns the samples as chart points ordered by timestamp.
// Unlike Aggregate, no grouping is applied: every sample is one point.
func HistorySeries(samples []PressureSample) []PressureSample {
	out := make([]PressureSample, len(samples))
	copy(out, samples)
	sort.SliceStable(out, func(i, j int) bool { return out[i].TimestampMs < out[j].TimestampMs })
	return out
}

// SummarizePressure computes mean, max, min and range of sample pressures.
// The zero summary is returned for no samples.
func SummarizePressure(samples []PressureSample) PressureSummary {
	if len(samples) == 0 {
		return PressureSummary{}
	}

	sum := 0.0
	lo, hi := samples[0].Pressure, samples[0].Pressure
	for _, s := range samples {
		sum += s.Pressure
		if s.Pressure < lo {
			lo = s.Pressure
		}
		if s.Pressure > hi {
			hi = s.Pressure
		}
	}

	return PressureSummary{
		Count: len(samples),
		Mean:  sum / float64(len(samples)),
		Max:   hi,
		Min:   lo,
		Range: hi - lo,
	}
}
