package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/pressure-headache/internal/weather"
)

const (
	openWeatherCurrentURL  = "https://api.openweathermap.org/data/2.5/weather"
	openWeatherForecastURL = "https://api.openweathermap.org/data/2.5/forecast"
)

// OpenWeatherProvider reads current conditions and the 5-day / 3-hour
// forecast from OpenWeatherMap. It is both a weather.Provider and the live
// weather.SampleSource.
type OpenWeatherProvider struct {
	name        string
	apiKey      string
	currentURL  string
	forecastURL string
	httpCfg     HTTPClientConfig
	circuit     *gobreaker.CircuitBreaker
}

func NewOpenWeatherProvider(client *http.Client, apiKey string) *OpenWeatherProvider {
	return &OpenWeatherProvider{
		name:        "openweathermap",
		apiKey:      apiKey,
		currentURL:  openWeatherCurrentURL,
		forecastURL: openWeatherForecastURL,
		httpCfg:     defaultHTTPConfig(client),
		circuit:     newCircuitBreaker("openweather"),
	}
}

func (p *OpenWeatherProvider) Name() string {
	return p.name
}

func (p *OpenWeatherProvider) query(loc weather.Location) url.Values {
	values := url.Values{}
	values.Set("appid", p.apiKey)
	values.Set("units", "metric")
	if loc.HasCoordinates() {
		values.Set("lat", fmt.Sprintf("%f", *loc.Lat))
		values.Set("lon", fmt.Sprintf("%f", *loc.Lon))
		return values
	}
	q := loc.City
	if loc.Country != "" {
		q = fmt.Sprintf("%s,%s", loc.City, loc.Country)
	}
	values.Set("q", q)
	return values
}

func (p *OpenWeatherProvider) get(ctx context.Context, base string, loc weather.Location, target interface{}) error {
	if p.apiKey == "" {
		return fmt.Errorf("openweather api key is not configured")
	}
	buildRequest := func() (*http.Request, error) {
		return http.NewRequest(http.MethodGet, base+"?"+p.query(loc).Encode(), nil)
	}
	return getJSON(ctx, p.name, p.httpCfg, p.circuit, buildRequest, target)
}

type openWeatherMain struct {
	Temp     float64 `json:"temp"`
	Humidity float64 `json:"humidity"`
	Pressure float64 `json:"pressure"`
}

type openWeatherCondition struct {
	Main string `json:"main"`
}

func (p *OpenWeatherProvider) Fetch(ctx context.Context, loc weather.Location) (weather.ProviderReading, error) {
	var payload struct {
		Dt   int64           `json:"dt"`
		Main openWeatherMain `json:"main"`
		Wind struct {
			Speed float64 `json:"speed"`
		} `json:"wind"`
		Rain struct {
			OneH   float64 `json:"1h"`
			ThreeH float64 `json:"3h"`
		} `json:"rain"`
		Weather []openWeatherCondition `json:"weather"`
	}
	if err := p.get(ctx, p.currentURL, loc, &payload); err != nil {
		return weather.ProviderReading{}, err
	}

	ts := time.Now().UTC()
	if payload.Dt > 0 {
		ts = time.Unix(payload.Dt, 0).UTC()
	}

	precip := payload.Rain.OneH
	if precip == 0 {
		precip = payload.Rain.ThreeH
	}

	return weather.ProviderReading{
		ProviderName: p.name,
		Timestamp:    ts,
		TemperatureC: payload.Main.Temp,
		HumidityPct:  payload.Main.Humidity,
		WindSpeedMS:  payload.Wind.Speed,
		PressureHpa:  payload.Main.Pressure,
		PrecipMm:     precip,
		Condition:    mapOpenWeatherCondition(payload.Weather),
	}, nil
}

// FetchSamples returns the 3-hourly forecast series, one sample per entry.
func (p *OpenWeatherProvider) FetchSamples(ctx context.Context, loc weather.Location) ([]weather.PressureSample, error) {
	var payload struct {
		List []struct {
			Dt   int64           `json:"dt"`
			Main openWeatherMain `json:"main"`
		} `json:"list"`
	}
	if err := p.get(ctx, p.forecastURL, loc, &payload); err != nil {
		return nil, err
	}

	samples := make([]weather.PressureSample, 0, len(payload.List))
	for _, item := range payload.List {
		samples = append(samples, weather.PressureSample{
			TimestampMs: item.Dt * 1000,
			Pressure:    item.Main.Pressure,
			Temperature: item.Main.Temp,
			Humidity:    item.Main.Humidity,
		})
	}
	return samples, nil
}

func mapOpenWeatherCondition(items []openWeatherCondition) weather.Condition {
	if len(items) == 0 {
		return weather.ConditionUnknown
	}
	switch items[0].Main {
	case "Clear":
		return weather.ConditionClear
	case "Clouds":
		return weather.ConditionCloudy
	case "Rain", "Drizzle":
		return weather.ConditionRain
	case "Snow":
		return weather.ConditionSnow
	case "Thunderstorm":
		return weather.ConditionStorm
	case "Mist", "Fog", "Haze":
		return weather.ConditionMist
	default:
		return weather.ConditionUnknown
	}
}
