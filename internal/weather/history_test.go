package weather

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistorySeriesKeepsEverySample(t *testing.T) {
	in := []PressureSample{
		sample(2, 0, 1004),
		sample(1, 6, 1001),
		sample(1, 0, 1000),
	}

	got := HistorySeries(in)
	require.Len(t, got, 3)
	assert.Equal(t, 1000.0, got[0].Pressure)
	assert.Equal(t, 1001.0, got[1].Pressure)
	assert.Equal(t, 1004.0, got[2].Pressure)

	// Input is not reordered in place.
	assert.Equal(t, 1004.0, in[0].Pressure)
}

func TestSummarizePressure(t *testing.T) {
	got := SummarizePressure([]PressureSample{
		sample(1, 0, 1000),
		sample(1, 3, 1012),
		sample(1, 6, 1005),
		sample(1, 9, 1003),
	})
	assert.Equal(t, PressureSummary{Count: 4, Mean: 1005, Max: 1012, Min: 1000, Range: 12}, got)

	assert.Equal(t, PressureSummary{}, SummarizePressure(nil))
}
