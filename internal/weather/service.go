package weather

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/i474232898/pressure-headache/internal/metrics"
)

var (
	ErrNoProviders    = errors.New("no weather providers configured")
	ErrNoSampleSource = errors.New("no pressure sample source configured")
	ErrInvalidDays    = errors.New("days must be greater than zero")
)

// Service orchestrates current-condition providers, the snapshot store and
// the pressure sample source behind daily forecasts.
type Service struct {
	store      Store
	providers  []Provider
	samples    SampleSource
	aggregator *DailyAggregator
	log        *zap.Logger
	now        func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithSampleSource sets the source daily forecasts are computed from.
func WithSampleSource(src SampleSource) Option {
	return func(s *Service) { s.samples = src }
}

// WithAggregator overrides the default UTC daily aggregator.
func WithAggregator(a *DailyAggregator) Option {
	return func(s *Service) { s.aggregator = a }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Service) { s.log = l }
}

// WithClock overrides time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a new Service.
func NewService(store Store, providers []Provider, opts ...Option) *Service {
	s := &Service{
		store:      store,
		providers:  providers,
		aggregator: NewDailyAggregator(time.UTC),
		log:        zap.NewNop(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FetchAndStore fetches current conditions from all providers concurrently,
// aggregates the successful readings and stores a snapshot. When every
// provider fails the last good snapshot is kept.
func (s *Service) FetchAndStore(ctx context.Context, loc Location) error {
	if len(s.providers) == 0 {
		s.log.Error("no providers available", zap.String("location", loc.Key()))
		return ErrNoProviders
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		readings []ProviderReading
	)

	for _, p := range s.providers {
		wg.Add(1)
		go func(p Provider) {
			defer wg.Done()

			r, err := p.Fetch(ctx, loc)
			if err != nil {
				// Partial success is fine; keep going with the others.
				s.log.Warn("provider fetch failed",
					zap.String("provider", p.Name()),
					zap.String("location", loc.Key()),
					zap.Error(err))
				return
			}

			mu.Lock()
			readings = append(readings, r)
			mu.Unlock()
		}(p)
	}
	wg.Wait()

	if len(readings) == 0 {
		s.log.Warn("no successful provider readings; keeping last good snapshot",
			zap.String("location", loc.Key()))
		return nil
	}

	snapshot := AggregateReadings(loc, readings)
	s.store.SaveSnapshot(loc, snapshot)
	s.log.Debug("stored snapshot",
		zap.String("location", loc.Key()),
		zap.Int("readings", len(readings)),
		zap.Float64("pressureHpa", snapshot.Pressure))
	return nil
}

// GetForecast fetches the raw pressure series for loc and aggregates it into
// at most ForecastDays daily forecasts. An empty series is not an error.
func (s *Service) GetForecast(ctx context.Context, loc Location) (forecast []DailyForecast, err error) {
	if s.samples == nil {
		return nil, ErrNoSampleSource
	}
	defer func() {
		metrics.ForecastRequests.WithLabelValues(s.samples.Name(), metrics.Outcome(err)).Inc()
	}()

	samples, err := s.samples.FetchSamples(ctx, loc)
	if err != nil {
		return nil, fmt.Errorf("fetch samples from %s for %s: %w", s.samples.Name(), loc.Key(), err)
	}

	return s.aggregator.Aggregate(samples), nil
}

// historyCoverageSlack is how far after the start of a history window the
// oldest stored snapshot may be while still counting as covering it.
const historyCoverageSlack = 3 * time.Hour

// History returns the unaggregated pressure series of the last days for
// charting. Stored snapshots are used when they cover the whole window;
// otherwise a sample source that implements HistorySource fills in.
func (s *Service) History(ctx context.Context, loc Location, days int) ([]PressureSample, error) {
	if days <= 0 {
		return nil, ErrInvalidDays
	}

	to := s.now().UTC()
	from := to.AddDate(0, 0, -days)

	snapshots, err := s.store.GetRange(loc, from, to)
	hs, canGenerate := s.samples.(HistorySource)

	// Store retention is often shorter than the requested window; stored
	// snapshots are only used when they reach back to its start.
	if err == nil && (!canGenerate || !snapshots[0].Timestamp.After(from.Add(historyCoverageSlack))) {
		samples := make([]PressureSample, 0, len(snapshots))
		for _, snap := range snapshots {
			samples = append(samples, snap.Sample())
		}
		return HistorySeries(samples), nil
	}

	if !canGenerate {
		return nil, err
	}
	samples, herr := hs.History(ctx, loc, days)
	if herr != nil {
		return nil, fmt.Errorf("generate history for %s: %w", loc.Key(), herr)
	}
	return HistorySeries(samples), nil
}

// GetLatest delegates to the underlying store.
func (s *Service) GetLatest(loc Location) (WeatherSnapshot, error) {
	return s.store.GetLatest(loc)
}

// GetRange delegates to the underlying store.
func (s *Service) GetRange(loc Location, from, to time.Time) ([]WeatherSnapshot, error) {
	return s.store.GetRange(loc, from, to)
}

// SampleSourceName reports which sample source backs forecasts.
func (s *Service) SampleSourceName() string {
	if s.samples == nil {
		return ""
	}
	return s.samples.Name()
}
