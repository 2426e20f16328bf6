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

// OpenMeteoProvider reads current conditions and the hourly surface pressure
// forecast from Open-Meteo. Open-Meteo needs coordinates, so locations
// without Lat/Lon are geocoded first.
type OpenMeteoProvider struct {
	name     string
	baseURL  string
	geocoder Geocoder
	httpCfg  HTTPClientConfig
	circuit  *gobreaker.CircuitBreaker
}

func NewOpenMeteoProvider(client *http.Client, g Geocoder) *OpenMeteoProvider {
	return &OpenMeteoProvider{
		name:     "openmeteo",
		baseURL:  "https://api.open-meteo.com/v1/forecast",
		geocoder: g,
		httpCfg:  defaultHTTPConfig(client),
		circuit:  newCircuitBreaker("openmeteo"),
	}
}

func (p *OpenMeteoProvider) Name() string {
	return p.name
}

func (p *OpenMeteoProvider) get(ctx context.Context, loc weather.Location, extra url.Values, target interface{}) error {
	loc, err := resolveCoordinates(ctx, p.geocoder, loc)
	if err != nil {
		return err
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("latitude", fmt.Sprintf("%f", *loc.Lat))
		values.Set("longitude", fmt.Sprintf("%f", *loc.Lon))
		values.Set("timeformat", "unixtime")
		for k, v := range extra {
			values[k] = v
		}
		return http.NewRequest(http.MethodGet, p.baseURL+"?"+values.Encode(), nil)
	}
	return getJSON(ctx, p.name, p.httpCfg, p.circuit, buildRequest, target)
}

func (p *OpenMeteoProvider) Fetch(ctx context.Context, loc weather.Location) (weather.ProviderReading, error) {
	var payload struct {
		Current struct {
			Time        int64   `json:"time"`
			Temperature float64 `json:"temperature_2m"`
			Humidity    float64 `json:"relative_humidity_2m"`
			Pressure    float64 `json:"surface_pressure"`
			Precip      float64 `json:"precipitation"`
			WindSpeed   float64 `json:"wind_speed_10m"`
			WeatherCode int     `json:"weather_code"`
		} `json:"current"`
	}
	extra := url.Values{}
	extra.Set("current", "temperature_2m,relative_humidity_2m,surface_pressure,precipitation,wind_speed_10m,weather_code")
	extra.Set("wind_speed_unit", "ms")
	if err := p.get(ctx, loc, extra, &payload); err != nil {
		return weather.ProviderReading{}, err
	}

	ts := time.Now().UTC()
	if payload.Current.Time > 0 {
		ts = time.Unix(payload.Current.Time, 0).UTC()
	}

	return weather.ProviderReading{
		ProviderName: p.name,
		Timestamp:    ts,
		TemperatureC: payload.Current.Temperature,
		HumidityPct:  payload.Current.Humidity,
		WindSpeedMS:  payload.Current.WindSpeed,
		PressureHpa:  payload.Current.Pressure,
		PrecipMm:     payload.Current.Precip,
		Condition:    mapOpenMeteoCondition(payload.Current.WeatherCode),
	}, nil
}

// FetchSamples returns the hourly forecast series for the next few days.
func (p *OpenMeteoProvider) FetchSamples(ctx context.Context, loc weather.Location) ([]weather.PressureSample, error) {
	var payload struct {
		Hourly struct {
			Time        []int64   `json:"time"`
			Pressure    []float64 `json:"surface_pressure"`
			Temperature []float64 `json:"temperature_2m"`
			Humidity    []float64 `json:"relative_humidity_2m"`
		} `json:"hourly"`
	}
	extra := url.Values{}
	extra.Set("hourly", "surface_pressure,temperature_2m,relative_humidity_2m")
	extra.Set("forecast_days", fmt.Sprintf("%d", weather.ForecastDays+1))
	if err := p.get(ctx, loc, extra, &payload); err != nil {
		return nil, err
	}

	h := payload.Hourly
	if len(h.Pressure) != len(h.Time) || len(h.Temperature) != len(h.Time) || len(h.Humidity) != len(h.Time) {
		return nil, fmt.Errorf("openmeteo: hourly series have mismatched lengths")
	}

	samples := make([]weather.PressureSample, 0, len(h.Time))
	for i, ts := range h.Time {
		samples = append(samples, weather.PressureSample{
			TimestampMs: ts * 1000,
			Pressure:    h.Pressure[i],
			Temperature: h.Temperature[i],
			Humidity:    h.Humidity[i],
		})
	}
	return samples, nil
}

// mapOpenMeteoCondition maps WMO weather codes (simplified).
func mapOpenMeteoCondition(code int) weather.Condition {
	switch {
	case code == 0:
		return weather.ConditionClear
	case code >= 1 && code <= 3:
		return weather.ConditionCloudy
	case code == 45 || code == 48:
		return weather.ConditionMist
	case (code >= 51 && code <= 67) || (code >= 80 && code <= 82):
		return weather.ConditionRain
	case (code >= 71 && code <= 77) || code == 85 || code == 86:
		return weather.ConditionSnow
	case code >= 95:
		return weather.ConditionStorm
	default:
		return weather.ConditionUnknown
	}
}
