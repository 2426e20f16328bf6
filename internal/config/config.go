package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/i474232898/pressure-headache/internal/weather"
)

// Weather sources selectable with WEATHER_SOURCE.
const (
	SourceLive      = "live"
	SourceSimulated = "simulated"
)

type AppConfig struct {
	Port      string
	LogLevel  string
	LogFormat string

	OpenWeatherAPIKey string
	WeatherAPIKey     string
	GeocoderAPIKey    string

	// WeatherSource picks where forecasts come from: live APIs or generated data.
	WeatherSource  string
	SimulationSeed int64

	// FetchInterval controls how often current conditions and alerts run.
	FetchInterval time.Duration
	HTTPTimeout   time.Duration

	// Locations to track. The first one is the primary location used for
	// forecasts without an explicit city and for alerts.
	Locations []weather.Location

	// In-memory store retention.
	StoreMaxHistory int           // max number of snapshots per location (0 = unlimited)
	StoreMaxAge     time.Duration // max age of snapshots (0 = unlimited)

	// ForecastLocation is the zone calendar days are bucketed in.
	ForecastLocation *time.Location

	MatchWeightsFile string
	MatchLimit       int

	AlertSNSTopicARN string
	AWSRegion        string
}

// Primary returns the first configured location.
func (c *AppConfig) Primary() weather.Location {
	return c.Locations[0]
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")
	v.SetDefault("WEATHER_SOURCE", SourceSimulated)
	v.SetDefault("SIMULATION_SEED", 0)
	v.SetDefault("FETCH_INTERVAL", "15m")
	v.SetDefault("HTTP_TIMEOUT", "10s")
	v.SetDefault("STORE_MAX_HISTORY", 96) // roughly 24h at 15-minute intervals
	v.SetDefault("STORE_MAX_AGE", "24h")
	v.SetDefault("FORECAST_TIMEZONE", "UTC")
	v.SetDefault("MATCH_LIMIT", 10)
	v.SetDefault("WEATHER_LOCATION_CITY", "Tokyo")
	v.SetDefault("WEATHER_LOCATION_COUNTRY", "JP")
	v.SetDefault("AWS_REGION", "ap-northeast-1")
}

// Load reads .env (when present) and the environment with defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.AutomaticEnv()
	return FromViper(v)
}

// FromViper builds the configuration from v, applying defaults first.
func FromViper(v *viper.Viper) (*AppConfig, error) {
	setDefaults(v)

	cfg := &AppConfig{
		Port:              v.GetString("PORT"),
		LogLevel:          v.GetString("LOG_LEVEL"),
		LogFormat:         v.GetString("LOG_FORMAT"),
		OpenWeatherAPIKey: v.GetString("OPENWEATHER_API_KEY"),
		WeatherAPIKey:     v.GetString("WEATHERAPI_API_KEY"),
		GeocoderAPIKey:    v.GetString("GEOCODER_API_KEY"),
		WeatherSource:     strings.ToLower(strings.TrimSpace(v.GetString("WEATHER_SOURCE"))),
		SimulationSeed:    v.GetInt64("SIMULATION_SEED"),
		StoreMaxHistory:   v.GetInt("STORE_MAX_HISTORY"),
		MatchWeightsFile:  v.GetString("MATCH_WEIGHTS_FILE"),
		MatchLimit:        v.GetInt("MATCH_LIMIT"),
		AlertSNSTopicARN:  v.GetString("ALERT_SNS_TOPIC_ARN"),
		AWSRegion:         v.GetString("AWS_REGION"),
	}

	switch cfg.WeatherSource {
	case SourceLive, SourceSimulated:
	default:
		return nil, fmt.Errorf("invalid WEATHER_SOURCE %q: want %s or %s", cfg.WeatherSource, SourceLive, SourceSimulated)
	}

	var err error
	if cfg.FetchInterval, err = duration(v, "FETCH_INTERVAL"); err != nil {
		return nil, err
	}
	if cfg.HTTPTimeout, err = duration(v, "HTTP_TIMEOUT"); err != nil {
		return nil, err
	}
	if cfg.StoreMaxAge, err = duration(v, "STORE_MAX_AGE"); err != nil {
		return nil, err
	}

	tz := v.GetString("FORECAST_TIMEZONE")
	if cfg.ForecastLocation, err = time.LoadLocation(tz); err != nil {
		return nil, fmt.Errorf("invalid FORECAST_TIMEZONE %q: %w", tz, err)
	}

	cfg.Locations, err = loadLocations(v.GetString("WEATHER_LOCATION_CITY"), v.GetString("WEATHER_LOCATION_COUNTRY"))
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

func duration(v *viper.Viper, key string) (time.Duration, error) {
	d, err := time.ParseDuration(v.GetString(key))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

// loadLocations pairs comma-separated cities and countries.
func loadLocations(city, country string) ([]weather.Location, error) {
	cities := strings.Split(city, ",")
	countries := strings.Split(country, ",")
	if len(cities) != len(countries) {
		return nil, fmt.Errorf("number of cities and countries must be the same")
	}

	var locs []weather.Location
	for i := range cities {
		c, k := strings.TrimSpace(cities[i]), strings.TrimSpace(countries[i])
		if c == "" || k == "" {
			return nil, fmt.Errorf("location %d: city and country are required", i+1)
		}
		locs = append(locs, weather.Location{City: c, Country: k})
	}
	return locs, nil
}
