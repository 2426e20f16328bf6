package providers

import (
	"context"
	"fmt"
	"sync"

	"github.com/kelvins/geocoder"

	"github.com/i474232898/pressure-headache/internal/weather"
)

// Geocoder resolves a city/country pair into coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, city, country string) (lat, lon float64, err error)
}

// GoogleGeocoder resolves locations through the Google Geocoding API.
// Results are remembered per location for the lifetime of the process since
// city coordinates do not move.
type GoogleGeocoder struct {
	mu    sync.Mutex
	known map[string][2]float64
}

// NewGoogleGeocoder configures the geocoder package with apiKey.
func NewGoogleGeocoder(apiKey string) *GoogleGeocoder {
	geocoder.ApiKey = apiKey
	return &GoogleGeocoder{known: make(map[string][2]float64)}
}

func (g *GoogleGeocoder) Geocode(ctx context.Context, city, country string) (float64, float64, error) {
	key := city + ":" + country

	g.mu.Lock()
	if c, ok := g.known[key]; ok {
		g.mu.Unlock()
		return c[0], c[1], nil
	}
	g.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return 0, 0, err
	}

	loc, err := geocoder.Geocoding(geocoder.Address{City: city, Country: country})
	if err != nil {
		return 0, 0, fmt.Errorf("geocode %s: %w", key, err)
	}

	g.mu.Lock()
	g.known[key] = [2]float64{loc.Latitude, loc.Longitude}
	g.mu.Unlock()
	return loc.Latitude, loc.Longitude, nil
}

// resolveCoordinates fills in Lat/Lon via g when loc does not carry them.
func resolveCoordinates(ctx context.Context, g Geocoder, loc weather.Location) (weather.Location, error) {
	if loc.HasCoordinates() {
		return loc, nil
	}
	if g == nil {
		return loc, fmt.Errorf("location %s has no coordinates and no geocoder is configured", loc.Key())
	}
	lat, lon, err := g.Geocode(ctx, loc.City, loc.Country)
	if err != nil {
		return loc, err
	}
	return loc.WithCoordinates(lat, lon), nil
}
