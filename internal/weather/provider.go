package weather

import (
	"context"
	"time"
)

// ProviderReading represents a single provider's normalized current reading
// that can be aggregated into a WeatherSnapshot.
type ProviderReading struct {
	ProviderName string
	Timestamp    time.Time

	TemperatureC float64
	HumidityPct  float64
	WindSpeedMS  float64
	PressureHpa  float64
	PrecipMm     float64
	Condition    Condition
}

// Provider abstracts a source of current conditions (OpenWeatherMap, WeatherAPI, Open-Meteo, simulated).
type Provider interface {
	Name() string
	Fetch(ctx context.Context, loc Location) (ProviderReading, error)
}

// SampleSource supplies the raw pressure time series a daily forecast is
// aggregated from. Implementations are either live (a forecast API) or
// simulated (generated data for demo and offline mode).
type SampleSource interface {
	Name() string
	FetchSamples(ctx context.Context, loc Location) ([]PressureSample, error)
}

// HistorySource is implemented by sample sources that can also produce past
// observations for charting when the store has none.
type HistorySource interface {
	History(ctx context.Context, loc Location, days int) ([]PressureSample, error)
}

// Store is the contract the in-memory snapshot store (and any future persistent store) must satisfy.
type Store interface {
	SaveSnapshot(loc Location, snapshot WeatherSnapshot)
	GetLatest(loc Location) (WeatherSnapshot, error)
	GetRange(loc Location, from, to time.Time) ([]WeatherSnapshot, error)
}
