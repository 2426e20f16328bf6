package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"

	"github.com/i474232898/pressure-headache/internal/logger"
	"github.com/i474232898/pressure-headache/internal/weather"
)

const (
	defaultInterval   = 15 * time.Minute
	defaultJobTimeout = 30 * time.Second
)

// JobFunc is one unit of periodic work.
type JobFunc func(ctx context.Context) error

type job struct {
	name    string
	run     JobFunc
	timeout time.Duration
}

// Scheduler runs named jobs on a fixed interval.
type Scheduler struct {
	scheduler *gocron.Scheduler
	interval  time.Duration
	log       *zap.Logger

	mu   sync.Mutex
	jobs []job
}

// New creates a Scheduler. Intervals under a minute fall back to 15 minutes.
func New(interval time.Duration, log *zap.Logger) *Scheduler {
	if interval < time.Minute {
		interval = defaultInterval
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		interval:  interval,
		log:       logger.OrNop(log),
	}
}

// Interval is the effective run interval.
func (s *Scheduler) Interval() time.Duration { return s.interval }

// Add registers a job. A timeout <= 0 uses 30 seconds.
func (s *Scheduler) Add(name string, timeout time.Duration, fn JobFunc) {
	if timeout <= 0 {
		timeout = defaultJobTimeout
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs = append(s.jobs, job{name: name, run: fn, timeout: timeout})
}

// Jobs returns the registered job names in order.
func (s *Scheduler) Jobs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, 0, len(s.jobs))
	for _, j := range s.jobs {
		names = append(names, j.name)
	}
	return names
}

// RunNow executes the named job synchronously.
func (s *Scheduler) RunNow(ctx context.Context, name string) error {
	s.mu.Lock()
	var found *job
	for i := range s.jobs {
		if s.jobs[i].name == name {
			found = &s.jobs[i]
			break
		}
	}
	s.mu.Unlock()

	if found == nil {
		return fmt.Errorf("scheduler: unknown job %q", name)
	}
	return s.execute(ctx, *found)
}

func (s *Scheduler) execute(parent context.Context, j job) error {
	ctx, cancel := context.WithTimeout(parent, j.timeout)
	defer cancel()

	start := time.Now()
	err := j.run(ctx)
	if err != nil {
		s.log.Warn("job failed", zap.String("job", j.name), zap.Duration("took", time.Since(start)), zap.Error(err))
		return err
	}
	s.log.Debug("job completed", zap.String("job", j.name), zap.Duration("took", time.Since(start)))
	return nil
}

// Start schedules every registered job and starts the underlying scheduler.
// Jobs also run once immediately.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	jobs := append([]job(nil), s.jobs...)
	s.mu.Unlock()

	if len(jobs) == 0 {
		s.log.Info("no jobs registered; nothing to schedule")
		return nil
	}

	for _, j := range jobs {
		j := j
		_, err := s.scheduler.Every(s.interval).Tag(j.name).Do(func() {
			_ = s.execute(context.Background(), j)
		})
		if err != nil {
			return fmt.Errorf("schedule %s: %w", j.name, err)
		}
	}

	s.log.Info("scheduler started", zap.Duration("interval", s.interval), zap.Strings("jobs", s.Jobs()))
	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}

// Fetcher stores current conditions for one location.
type Fetcher interface {
	FetchAndStore(ctx context.Context, loc weather.Location) error
}

// FetchJob returns a job that refreshes current conditions for every
// location concurrently.
func FetchJob(f Fetcher, locations []weather.Location) JobFunc {
	return func(ctx context.Context) error {
		var (
			wg   sync.WaitGroup
			mu   sync.Mutex
			errs []error
		)
		for _, loc := range locations {
			loc := loc
			wg.Add(1)
			go func() {
				defer wg.Done()
				if err := f.FetchAndStore(ctx, loc); err != nil {
					mu.Lock()
					errs = append(errs, fmt.Errorf("%s: %w", loc.Key(), err))
					mu.Unlock()
				}
			}()
		}
		wg.Wait()
		return errors.Join(errs...)
	}
}
