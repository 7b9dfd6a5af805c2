package weather_test

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/i474232898/norway-weather/internal/weather"
)

// entry describes one timeseries entry for payload construction.
// A nil temp or precip leaves the field out of the JSON.
type entry struct {
	time   string
	temp   *float64
	wind   *float64
	precip *float64
	// details controls whether next_1_hours carries a details object at all.
	details bool
}

func f(v float64) *float64 { return &v }

func buildPayload(t *testing.T, entries ...entry) weather.ForecastPayload {
	t.Helper()

	items := make([]string, 0, len(entries))
	for _, e := range entries {
		var instant []string
		if e.temp != nil {
			instant = append(instant, fmt.Sprintf(`"air_temperature": %v`, *e.temp))
		}
		if e.wind != nil {
			instant = append(instant, fmt.Sprintf(`"wind_speed": %v`, *e.wind))
		}
		data := fmt.Sprintf(`"instant": {"details": {%s}}`, strings.Join(instant, ","))
		if e.details {
			amount := ""
			if e.precip != nil {
				amount = fmt.Sprintf(`"precipitation_amount": %v`, *e.precip)
			}
			data += fmt.Sprintf(`, "next_1_hours": {"summary": {"symbol_code": "rain"}, "details": {%s}}`, amount)
		}
		items = append(items, fmt.Sprintf(`{"time": %q, "data": {%s}}`, e.time, data))
	}

	raw := fmt.Sprintf(`{"type": "Feature", "properties": {"timeseries": [%s]}}`, strings.Join(items, ","))

	var p weather.ForecastPayload
	require.NoError(t, json.Unmarshal([]byte(raw), &p))
	return p
}

// fakeFetcher serves canned payloads keyed by coordinates.
type fakeFetcher struct {
	mu       sync.Mutex
	payloads map[[2]float64]weather.ForecastPayload
	failing  map[[2]float64]error
	calls    int
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{
		payloads: make(map[[2]float64]weather.ForecastPayload),
		failing:  make(map[[2]float64]error),
	}
}

func (f *fakeFetcher) set(c weather.City, p weather.ForecastPayload) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.payloads[[2]float64{c.Latitude, c.Longitude}] = p
}

func (f *fakeFetcher) fail(c weather.City, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failing[[2]float64{c.Latitude, c.Longitude}] = err
}

// recover makes a failing city serve its payload again.
func (f *fakeFetcher) recover(c weather.City) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.failing, [2]float64{c.Latitude, c.Longitude})
}

func (f *fakeFetcher) Fetch(_ context.Context, lat, lon float64) (weather.ForecastPayload, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++

	key := [2]float64{lat, lon}
	if err, ok := f.failing[key]; ok {
		return weather.ForecastPayload{}, err
	}
	if p, ok := f.payloads[key]; ok {
		return p, nil
	}
	return weather.ForecastPayload{}, nil
}

func (f *fakeFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}
