package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/i474232898/pressure-headache/internal/alert"
	httpapi "github.com/i474232898/pressure-headache/internal/api/http"
	"github.com/i474232898/pressure-headache/internal/community"
	"github.com/i474232898/pressure-headache/internal/config"
	"github.com/i474232898/pressure-headache/internal/logger"
	"github.com/i474232898/pressure-headache/internal/profile"
	"github.com/i474232898/pressure-headache/internal/record"
	"github.com/i474232898/pressure-headache/internal/scheduler"
	"github.com/i474232898/pressure-headache/internal/store"
	"github.com/i474232898/pressure-headache/internal/weather"
	"github.com/i474232898/pressure-headache/internal/weather/providers"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// No logger yet; fall back to a default one.
		zap.NewExample().Fatal("failed to load config", zap.Error(err))
	}

	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	defer func() { _ = log.Sync() }()

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	provs, samples, err := buildSources(cfg, httpClient, log)
	if err != nil {
		log.Fatal("failed to set up weather sources", zap.Error(err))
	}

	// In-memory store with configured retention.
	memStore := store.NewMemoryStore(cfg.StoreMaxHistory, cfg.StoreMaxAge)

	aggregator := weather.NewDailyAggregator(cfg.ForecastLocation)
	weatherSvc := weather.NewService(memStore, provs,
		weather.WithSampleSource(samples),
		weather.WithAggregator(aggregator),
		weather.WithLogger(log.Named("weather")),
	)

	weights := profile.DefaultWeights()
	if cfg.MatchWeightsFile != "" {
		weights, err = profile.LoadWeightsFromFile(cfg.MatchWeightsFile)
		if err != nil {
			log.Warn("using default match weights", zap.String("file", cfg.MatchWeightsFile), zap.Error(err))
		}
	}

	profiles := store.NewProfileStore(profile.SampleProfiles()...)
	engine := profile.NewEngine(weights)
	profileSvc := profile.NewService(profiles, engine, cfg.MatchLimit)
	recordSvc := record.NewService(store.NewRecordStore(), profiles)
	feed := community.NewFeed(community.Generate(time.Now().UnixNano(), community.DefaultPostCount))

	notifier := buildNotifier(cfg, log)
	alertJob := alert.NewJob(weatherSvc, profileSvc, notifier, cfg.Primary(), log.Named("alert"))

	sched := scheduler.New(cfg.FetchInterval, log.Named("scheduler"))
	sched.Add("fetch-current", 30*time.Second, scheduler.FetchJob(weatherSvc, cfg.Locations))
	sched.Add("risk-alerts", time.Minute, alertJob.Run)
	if err := sched.Start(); err != nil {
		log.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	app := httpapi.NewApp(httpapi.Deps{
		Weather:         weatherSvc,
		Profiles:        profileSvc,
		Records:         recordSvc,
		Community:       feed,
		DefaultLocation: cfg.Primary(),
		Log:             log.Named("http"),
	}, true)

	go func() {
		log.Info("listening",
			zap.String("port", cfg.Port),
			zap.String("source", cfg.WeatherSource),
			zap.String("forecastZone", aggregator.Location().String()),
			zap.Any("matchWeights", engine.Weights()))
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Error("fiber server stopped", zap.Error(err))
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error("error during shutdown", zap.Error(err))
	}
}

// buildSources returns the current-condition providers and the forecast
// sample source for the configured mode.
func buildSources(cfg *config.AppConfig, client *http.Client, log *zap.Logger) ([]weather.Provider, weather.SampleSource, error) {
	if cfg.WeatherSource == config.SourceSimulated {
		seed := cfg.SimulationSeed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		sim := providers.NewSimulatedSource(seed, nil)
		return []weather.Provider{sim}, sim, nil
	}

	var (
		provs   []weather.Provider
		samples weather.SampleSource
	)
	if cfg.OpenWeatherAPIKey != "" {
		ow := providers.NewOpenWeatherProvider(client, cfg.OpenWeatherAPIKey)
		provs = append(provs, ow)
		samples = ow
	}
	if cfg.WeatherAPIKey != "" {
		provs = append(provs, providers.NewWeatherAPIProvider(client, cfg.WeatherAPIKey))
	}
	// Open-Meteo needs no API key, but geocoding the configured cities does.
	if cfg.GeocoderAPIKey != "" {
		om := providers.NewOpenMeteoProvider(client, providers.NewGoogleGeocoder(cfg.GeocoderAPIKey))
		provs = append(provs, om)
		if samples == nil {
			samples = om
		}
	}

	if samples == nil {
		return nil, nil, errors.New("live mode needs OPENWEATHER_API_KEY or GEOCODER_API_KEY")
	}
	log.Info("live weather sources", zap.Int("providers", len(provs)), zap.String("forecast", samples.Name()))
	return provs, samples, nil
}

func buildNotifier(cfg *config.AppConfig, log *zap.Logger) alert.Notifier {
	if cfg.AlertSNSTopicARN == "" {
		return alert.NewLogNotifier(log.Named("alert"))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	n, err := alert.NewSNSNotifierFromEnv(ctx, cfg.AWSRegion, cfg.AlertSNSTopicARN)
	if err != nil {
		log.Warn("SNS unavailable; alerts go to the log", zap.Error(err))
		return alert.NewLogNotifier(log.Named("alert"))
	}
	return n
}
