package weather

import (
	"sort"
	"time"
)

// ForecastDays is the number of days a daily forecast covers.
const ForecastDays = 3

const dateLayout = "2006-01-02"

// DailyAggregator buckets pressure samples into calendar days.
//
// The calendar day of a sample depends on the aggregator's time zone: samples
// near midnight land on different dates in UTC and in local time.
type DailyAggregator struct {
	loc     *time.Location
	maxDays int
}

// NewDailyAggregator returns an aggregator bucketing in loc (UTC when nil) and
// keeping at most ForecastDays days.
func NewDailyAggregator(loc *time.Location) *DailyAggregator {
	if loc == nil {
		loc = time.UTC
	}
	return &DailyAggregator{loc: loc, maxDays: ForecastDays}
}

// Location returns the time zone used for date bucketing.
func (a *DailyAggregator) Location() *time.Location {
	return a.loc
}

// AggregateDaily aggregates samples using UTC calendar days.
func AggregateDaily(samples []PressureSample) []DailyForecast {
	return NewDailyAggregator(time.UTC).Aggregate(samples)
}

// Aggregate groups samples by calendar date, averages pressure, temperature
// and humidity per date, and returns the earliest days in ascending order.
//
// The first day's PressureChange is 0; each later day is compared with the
// previous day present in the input, even if calendar days are missing
// between them. An empty input yields an empty result.
func (a *DailyAggregator) Aggregate(samples []PressureSample) []DailyForecast {
	type bucket struct {
		pressure, temperature, humidity float64
		n                               int
	}

	buckets := make(map[string]*bucket)
	for _, s := range samples {
		key := time.UnixMilli(s.TimestampMs).In(a.loc).Format(dateLayout)
		b, ok := buckets[key]
		if !ok {
			b = &bucket{}
			buckets[key] = b
		}
		b.pressure += s.Pressure
		b.temperature += s.Temperature
		b.humidity += s.Humidity
		b.n++
	}

	// YYYY-MM-DD keys sort chronologically.
	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]DailyForecast, 0, min(len(keys), a.maxDays))
	var prev float64
	for i, k := range keys {
		if len(out) >= a.maxDays {
			break
		}
		b := buckets[k]
		n := float64(b.n)
		mean := b.pressure / n

		var change float64
		if i > 0 {
			change = mean - prev
		}
		prev = mean

		out = append(out, DailyForecast{
			Date:           k,
			Pressure:       mean,
			PressureChange: change,
			RiskLevel:      ClassifyRisk(change),
			Temperature:    b.temperature / n,
			Humidity:       b.humidity / n,
		})
	}
	return out
}
