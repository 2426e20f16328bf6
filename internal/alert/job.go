package alert

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/i474232898/pressure-headache/internal/logger"
	"github.com/i474232898/pressure-headache/internal/metrics"
	"github.com/i474232898/pressure-headache/internal/profile"
	"github.com/i474232898/pressure-headache/internal/weather"
)

// ForecastSource returns the daily forecast for a location.
type ForecastSource interface {
	GetForecast(ctx context.Context, loc weather.Location) ([]weather.DailyForecast, error)
}

// ProfileLister returns every registered profile.
type ProfileLister interface {
	List(ctx context.Context) ([]profile.UserProfile, error)
}

// Job checks the forecast for one location and alerts every opted-in
// profile whose personalized risk reaches high on any forecast day.
type Job struct {
	forecasts ForecastSource
	profiles  ProfileLister
	notifier  Notifier
	loc       weather.Location
	log       *zap.Logger
}

func NewJob(forecasts ForecastSource, profiles ProfileLister, notifier Notifier, loc weather.Location, log *zap.Logger) *Job {
	return &Job{
		forecasts: forecasts,
		profiles:  profiles,
		notifier:  notifier,
		loc:       loc,
		log:       logger.OrNop(log),
	}
}

// Evaluate returns the alerts due for the given forecast. Each profile gets
// at most one alert, for the earliest high-risk day.
func Evaluate(loc weather.Location, forecast []weather.DailyForecast, profiles []profile.UserProfile) []Alert {
	var alerts []Alert
	for _, p := range profiles {
		if !p.Notifications {
			continue
		}
		for i := range forecast {
			// PersonalizedRisk looks at the head of the slice.
			if weather.PersonalizedRisk(forecast[i:], p.PressureSensitivity) != weather.RiskHigh {
				continue
			}
			day := forecast[i]
			alerts = append(alerts, Alert{
				ProfileID:      p.ID,
				ProfileName:    p.Name,
				Location:       loc.Key(),
				Date:           day.Date,
				Risk:           weather.RiskHigh,
				PressureChange: day.PressureChange,
				Advice:         weather.Advice(weather.RiskHigh, p.PressureSensitivity, p.CommonSymptoms),
			})
			break
		}
	}
	return alerts
}

// Run performs one check. Delivery failures are logged and counted; the
// joined error is returned once every alert has been attempted.
func (j *Job) Run(ctx context.Context) error {
	forecast, err := j.forecasts.GetForecast(ctx, j.loc)
	if err != nil {
		return fmt.Errorf("forecast for alerts: %w", err)
	}
	profiles, err := j.profiles.List(ctx)
	if err != nil {
		return fmt.Errorf("list profiles for alerts: %w", err)
	}

	var errs []error
	alerts := Evaluate(j.loc, forecast, profiles)
	for _, a := range alerts {
		err := j.notifier.Notify(ctx, a)
		metrics.AlertsPublished.WithLabelValues(j.notifier.Name(), metrics.Outcome(err)).Inc()
		if err != nil {
			j.log.Warn("alert delivery failed",
				zap.String("notifier", j.notifier.Name()),
				zap.String("profileId", a.ProfileID),
				zap.Error(err))
			errs = append(errs, err)
		}
	}

	j.log.Debug("alert check finished",
		zap.String("location", j.loc.Key()),
		zap.Int("profiles", len(profiles)),
		zap.Int("alerts", len(alerts)))
	return errors.Join(errs...)
}
