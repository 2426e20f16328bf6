package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ProviderFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weather_provider_fetches_total",
			Help: "Outbound weather provider calls by provider and outcome",
		},
		[]string{"provider", "outcome"},
	)

	ProviderFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "weather_provider_fetch_duration_seconds",
			Help: "Duration of outbound weather provider calls in seconds",
		},
		[]string{"provider"},
	)

	ForecastRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pressure_forecast_requests_total",
			Help: "Daily pressure forecast computations by sample source and outcome",
		},
		[]string{"source", "outcome"},
	)

	MatchRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "profile_match_requests_total",
			Help: "Similar-profile ranking requests by outcome",
		},
		[]string{"outcome"},
	)

	MatchCandidates = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "profile_match_candidates",
			Help:    "Size of the candidate pool considered per ranking request",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		},
	)

	AlertsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "risk_alerts_published_total",
			Help: "High-risk alerts handed to a notifier by notifier and outcome",
		},
		[]string{"notifier", "outcome"},
	)
)

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Outcome maps an error to the outcome label value.
func Outcome(err error) string {
	if err != nil {
		return OutcomeFailure
	}
	return OutcomeSuccess
}
