package providers

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/i474232898/pressure-headache/internal/weather"
)

const (
	standardPressure = 1013.25
	sampleCadence    = 3 * time.Hour
)

// SimulatedSource generates plausible pressure data for demo and offline
// mode. It serves current readings, a 3-hourly forecast series and a daily
// history, all derived from a seeded random generator.
type SimulatedSource struct {
	mu  sync.Mutex
	rnd *rand.Rand
	now func() time.Time
}

// NewSimulatedSource returns a generator seeded with seed. Equal seeds give
// equal sequences for the same clock.
func NewSimulatedSource(seed int64, now func() time.Time) *SimulatedSource {
	if now == nil {
		now = time.Now
	}
	return &SimulatedSource{
		rnd: rand.New(rand.NewSource(seed)),
		now: now,
	}
}

func (s *SimulatedSource) Name() string {
	return "simulated"
}

// jitter returns a value uniformly distributed in [-span/2, span/2).
func (s *SimulatedSource) jitter(span float64) float64 {
	return (s.rnd.Float64() - 0.5) * span
}

func (s *SimulatedSource) Fetch(ctx context.Context, _ weather.Location) (weather.ProviderReading, error) {
	if err := ctx.Err(); err != nil {
		return weather.ProviderReading{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return weather.ProviderReading{
		ProviderName: s.Name(),
		Timestamp:    s.now().UTC(),
		TemperatureC: 20 + s.jitter(15),
		HumidityPct:  50 + s.jitter(30),
		PressureHpa:  standardPressure + s.jitter(20),
		Condition:    weather.ConditionUnknown,
	}, nil
}

// FetchSamples generates a 3-hourly series starting at today's UTC midnight
// and covering weather.ForecastDays days. Each day's level moves by up to
// ±5 hPa from the previous one.
func (s *SimulatedSource) FetchSamples(ctx context.Context, _ weather.Location) ([]weather.PressureSample, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	perDay := int(24 * time.Hour / sampleCadence)

	samples := make([]weather.PressureSample, 0, weather.ForecastDays*perDay)
	level := standardPressure
	for d := 0; d < weather.ForecastDays; d++ {
		if d > 0 {
			level += s.jitter(10)
		}
		temp := 20 + s.jitter(15)
		humidity := 50 + s.jitter(30)
		for i := 0; i < perDay; i++ {
			ts := start.AddDate(0, 0, d).Add(time.Duration(i) * sampleCadence)
			samples = append(samples, weather.PressureSample{
				TimestampMs: ts.UnixMilli(),
				Pressure:    level + s.jitter(1),
				Temperature: temp + s.jitter(2),
				Humidity:    humidity + s.jitter(4),
			})
		}
	}
	return samples, nil
}

// History returns one sample per day for the past days plus today, oldest first.
func (s *SimulatedSource) History(ctx context.Context, _ weather.Location, days int) ([]weather.PressureSample, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	out := make([]weather.PressureSample, 0, days+1)
	for i := days; i >= 0; i-- {
		out = append(out, weather.PressureSample{
			TimestampMs: now.AddDate(0, 0, -i).UnixMilli(),
			Pressure:    standardPressure + s.jitter(15),
			Temperature: 20 + s.jitter(10),
			Humidity:    50 + s.jitter(20),
		})
	}
	return out, nil
}
