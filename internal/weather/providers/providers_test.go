package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/pressure-headache/internal/weather"
)

var osaka = weather.Location{City: "Osaka", Country: "JP"}

func fastBackoff(cfg HTTPClientConfig) HTTPClientConfig {
	cfg.Backoff.InitialInterval = time.Millisecond
	cfg.Backoff.MaxInterval = 2 * time.Millisecond
	return cfg
}

func newTestOpenWeather(srv *httptest.Server) *OpenWeatherProvider {
	p := NewOpenWeatherProvider(srv.Client(), "secret")
	p.currentURL = srv.URL + "/weather"
	p.forecastURL = srv.URL + "/forecast"
	p.httpCfg = fastBackoff(p.httpCfg)
	return p
}

func TestOpenWeatherFetchSamples(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/forecast", r.URL.Path)
		assert.Equal(t, "Osaka,JP", r.URL.Query().Get("q"))
		assert.Equal(t, "secret", r.URL.Query().Get("appid"))
		fmt.Fprint(w, `{"list":[
			{"dt":1704067200,"main":{"pressure":1012,"temp":5.5,"humidity":60}},
			{"dt":1704078000,"main":{"pressure":1010,"temp":6.5,"humidity":64}}
		]}`)
	}))
	defer srv.Close()

	samples, err := newTestOpenWeather(srv).FetchSamples(context.Background(), osaka)
	require.NoError(t, err)
	require.Len(t, samples, 2)
	assert.Equal(t, int64(1704067200000), samples[0].TimestampMs)
	assert.Equal(t, 1010.0, samples[1].Pressure)
	assert.Equal(t, 64.0, samples[1].Humidity)

	daily := weather.AggregateDaily(samples)
	require.Len(t, daily, 1)
	assert.Equal(t, "2024-01-01", daily[0].Date)
	assert.Equal(t, 1011.0, daily[0].Pressure)
}

func TestOpenWeatherFetchCurrent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/weather", r.URL.Path)
		fmt.Fprint(w, `{"dt":1704067200,"main":{"temp":3,"humidity":70,"pressure":1003},
			"wind":{"speed":4},"rain":{"3h":1.2},"weather":[{"main":"Rain"}]}`)
	}))
	defer srv.Close()

	r, err := newTestOpenWeather(srv).Fetch(context.Background(), osaka)
	require.NoError(t, err)
	assert.Equal(t, 1003.0, r.PressureHpa)
	assert.Equal(t, 1.2, r.PrecipMm)
	assert.Equal(t, weather.ConditionRain, r.Condition)
	assert.Equal(t, time.Unix(1704067200, 0).UTC(), r.Timestamp)
}

func TestOpenWeatherRequiresKey(t *testing.T) {
	p := NewOpenWeatherProvider(http.DefaultClient, "")
	_, err := p.FetchSamples(context.Background(), osaka)
	assert.Error(t, err)
}

func TestRetriesServerErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, `{"list":[]}`)
	}))
	defer srv.Close()

	samples, err := newTestOpenWeather(srv).FetchSamples(context.Background(), osaka)
	require.NoError(t, err)
	assert.Empty(t, samples)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestDoesNotRetryClientErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := newTestOpenWeather(srv).FetchSamples(context.Background(), osaka)
	assert.ErrorIs(t, err, errUnexpected)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

type fakeGeocoder struct {
	calls int
	err   error
}

func (f *fakeGeocoder) Geocode(_ context.Context, _, _ string) (float64, float64, error) {
	f.calls++
	return 34.69, 135.5, f.err
}

func TestOpenMeteoFetchSamplesGeocodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "34.690000", r.URL.Query().Get("latitude"))
		assert.Contains(t, r.URL.Query().Get("hourly"), "surface_pressure")
		fmt.Fprint(w, `{"hourly":{
			"time":[1704067200,1704070800],
			"surface_pressure":[1009.5,1008.5],
			"temperature_2m":[4,5],
			"relative_humidity_2m":[80,82]}}`)
	}))
	defer srv.Close()

	geo := &fakeGeocoder{}
	p := NewOpenMeteoProvider(srv.Client(), geo)
	p.baseURL = srv.URL
	p.httpCfg = fastBackoff(p.httpCfg)

	samples, err := p.FetchSamples(context.Background(), osaka)
	require.NoError(t, err)
	require.Len(t, samples, 2)
	assert.Equal(t, 1008.5, samples[1].Pressure)
	assert.Equal(t, 1, geo.calls)
}

func TestOpenMeteoMismatchedSeries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"hourly":{"time":[1,2],"surface_pressure":[1000],"temperature_2m":[1,2],"relative_humidity_2m":[1,2]}}`)
	}))
	defer srv.Close()

	p := NewOpenMeteoProvider(srv.Client(), nil)
	p.baseURL = srv.URL
	_, err := p.FetchSamples(context.Background(), osaka.WithCoordinates(1, 2))
	assert.Error(t, err)
}

func TestOpenMeteoNeedsCoordinates(t *testing.T) {
	p := NewOpenMeteoProvider(http.DefaultClient, nil)
	_, err := p.FetchSamples(context.Background(), osaka)
	assert.Error(t, err)

	boom := errors.New("quota exceeded")
	p = NewOpenMeteoProvider(http.DefaultClient, &fakeGeocoder{err: boom})
	_, err = p.Fetch(context.Background(), osaka)
	assert.ErrorIs(t, err, boom)
}

func TestConditionMapping(t *testing.T) {
	assert.Equal(t, weather.ConditionStorm, mapWeatherAPICondition("Thundery outbreaks possible"))
	assert.Equal(t, weather.ConditionRain, mapWeatherAPICondition("Patchy light rain"))
	assert.Equal(t, weather.ConditionCloudy, mapWeatherAPICondition("Overcast"))
	assert.Equal(t, weather.ConditionUnknown, mapWeatherAPICondition(""))
	assert.Equal(t, weather.ConditionMist, mapOpenMeteoCondition(45))
	assert.Equal(t, weather.ConditionClear, mapOpenMeteoCondition(0))
	assert.Equal(t, weather.ConditionMist, mapOpenWeatherCondition([]openWeatherCondition{{Main: "Fog"}}))
}

func TestSimulatedSourceIsDeterministic(t *testing.T) {
	clock := func() time.Time { return time.Date(2024, 6, 1, 15, 30, 0, 0, time.UTC) }

	a, err := NewSimulatedSource(42, clock).FetchSamples(context.Background(), osaka)
	require.NoError(t, err)
	b, err := NewSimulatedSource(42, clock).FetchSamples(context.Background(), osaka)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	require.Len(t, a, weather.ForecastDays*8)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC).UnixMilli(), a[0].TimestampMs)

	daily := weather.AggregateDaily(a)
	require.Len(t, daily, weather.ForecastDays)
	assert.Equal(t, "2024-06-01", daily[0].Date)
	assert.Equal(t, 0.0, daily[0].PressureChange)
	for _, d := range daily {
		assert.InDelta(t, standardPressure, d.Pressure, 12)
	}
}

func TestSimulatedHistory(t *testing.T) {
	src := NewSimulatedSource(7, nil)
	got, err := src.History(context.Background(), osaka, 7)
	require.NoError(t, err)
	require.Len(t, got, 8)
	for i := 1; i < len(got); i++ {
		assert.Less(t, got[i-1].TimestampMs, got[i].TimestampMs)
	}

	r, err := src.Fetch(context.Background(), osaka)
	require.NoError(t, err)
	assert.InDelta(t, standardPressure, r.PressureHpa, 10)
}

func TestSimulatedRespectsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewSimulatedSource(1, nil).FetchSamples(ctx, osaka)
	assert.ErrorIs(t, err, context.Canceled)
}
