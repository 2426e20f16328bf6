package weather

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPersonalizedRisk(t *testing.T) {
	day := func(r RiskLevel) []DailyForecast { return []DailyForecast{{RiskLevel: r}, {RiskLevel: RiskLow}} }

	assert.Equal(t, RiskLow, PersonalizedRisk(nil, 5))
	assert.Equal(t, RiskHigh, PersonalizedRisk(day(RiskMedium), 4))
	assert.Equal(t, RiskMedium, PersonalizedRisk(day(RiskMedium), 3))
	assert.Equal(t, RiskMedium, PersonalizedRisk(day(RiskHigh), 2))
	assert.Equal(t, RiskHigh, PersonalizedRisk(day(RiskHigh), 0))
	assert.Equal(t, RiskLow, PersonalizedRisk(day(RiskLow), 5))
}

func TestAdvice(t *testing.T) {
	assert.Contains(t, Advice(RiskHigh, 5, nil), "sensitive")
	assert.NotContains(t, Advice(RiskHigh, 3, nil), "sensitive")
	assert.Contains(t, Advice(RiskMedium, 3, []string{"dizziness"}), "dizziness")
	assert.True(t, strings.HasPrefix(Advice(RiskMedium, 0, nil), "A mild pressure change"))
	assert.Contains(t, Advice(RiskLow, 5, nil), "stable")
}
