package weather

import "time"

// AggregateReadings combines current readings from several providers into a
// single WeatherSnapshot. Numeric fields are averaged; the condition is the
// most frequent one, ties going to the condition seen first.
func AggregateReadings(loc Location, readings []ProviderReading) WeatherSnapshot {
	if len(readings) == 0 {
		return WeatherSnapshot{
			Location:  loc,
			Timestamp: time.Now().UTC(),
			Condition: ConditionUnknown,
		}
	}

	var (
		sumTemp, sumHumidity, sumWind, sumPressure, sumPrecip float64
		newest                                                time.Time
	)

	counts := make(map[Condition]int)
	order := make([]Condition, 0, len(readings))
	providers := make([]ProviderContribution, 0, len(readings))

	for _, r := range readings {
		sumTemp += r.TemperatureC
		sumHumidity += r.HumidityPct
		sumWind += r.WindSpeedMS
		sumPressure += r.PressureHpa
		sumPrecip += r.PrecipMm

		if _, seen := counts[r.Condition]; !seen {
			order = append(order, r.Condition)
		}
		counts[r.Condition]++

		if r.Timestamp.After(newest) {
			newest = r.Timestamp
		}
		providers = append(providers, ProviderContribution{
			ProviderName: r.ProviderName,
			Timestamp:    r.Timestamp,
		})
	}

	cond := ConditionUnknown
	best := 0
	for _, c := range order {
		if counts[c] > best {
			best = counts[c]
			cond = c
		}
	}

	if newest.IsZero() {
		newest = time.Now().UTC()
	}

	n := float64(len(readings))
	return WeatherSnapshot{
		Location:    loc,
		Timestamp:   newest.UTC(),
		Temperature: sumTemp / n,
		Humidity:    sumHumidity / n,
		WindSpeed:   sumWind / n,
		Pressure:    sumPressure / n,
		PrecipMM:    sumPrecip / n,
		Condition:   cond,
		Providers:   providers,
	}
}
