package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg, err := FromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, SourceSimulated, cfg.WeatherSource)
	assert.Equal(t, 15*time.Minute, cfg.FetchInterval)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 96, cfg.StoreMaxHistory)
	assert.Equal(t, 24*time.Hour, cfg.StoreMaxAge)
	assert.Equal(t, time.UTC, cfg.ForecastLocation)
	assert.Equal(t, 10, cfg.MatchLimit)
	require.Len(t, cfg.Locations, 1)
	assert.Equal(t, "Tokyo:JP", cfg.Primary().Key())
}

func TestOverrides(t *testing.T) {
	v := viper.New()
	v.Set("WEATHER_SOURCE", " LIVE ")
	v.Set("FETCH_INTERVAL", "5m")
	v.Set("FORECAST_TIMEZONE", "Asia/Tokyo")
	v.Set("WEATHER_LOCATION_CITY", "Osaka, Sapporo")
	v.Set("WEATHER_LOCATION_COUNTRY", "JP,JP")
	v.Set("SIMULATION_SEED", 42)

	cfg, err := FromViper(v)
	require.NoError(t, err)
	assert.Equal(t, SourceLive, cfg.WeatherSource)
	assert.Equal(t, 5*time.Minute, cfg.FetchInterval)
	assert.Equal(t, "Asia/Tokyo", cfg.ForecastLocation.String())
	assert.Equal(t, int64(42), cfg.SimulationSeed)
	require.Len(t, cfg.Locations, 2)
	assert.Equal(t, "Sapporo:JP", cfg.Locations[1].Key())
}

func TestEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("MATCH_LIMIT", "25")

	v := viper.New()
	v.AutomaticEnv()
	cfg, err := FromViper(v)
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 25, cfg.MatchLimit)
}

func TestInvalidValues(t *testing.T) {
	cases := map[string][2]string{
		"source":    {"WEATHER_SOURCE", "mock"},
		"interval":  {"FETCH_INTERVAL", "soon"},
		"timezone":  {"FORECAST_TIMEZONE", "Mars/Olympus"},
		"countries": {"WEATHER_LOCATION_COUNTRY", "JP,JP"},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			v := viper.New()
			v.Set(kv[0], kv[1])
			_, err := FromViper(v)
			assert.Error(t, err)
		})
	}
}
