package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/norway-weather/internal/store"
	"github.com/i474232898/norway-weather/internal/weather"
)

var testToday = time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)

// stubFetcher returns the same payload, or the same error, for every city.
type stubFetcher struct {
	payload weather.ForecastPayload
	err     error
}

func (s *stubFetcher) Fetch(_ context.Context, _, _ float64) (weather.ForecastPayload, error) {
	if s.err != nil {
		return weather.ForecastPayload{}, s.err
	}
	return s.payload, nil
}

const testPayload = `{"properties": {"timeseries": [
  {"time": "2024-05-01T09:00:00Z", "data": {
    "instant": {"details": {"air_temperature": 11.0, "relative_humidity": 80.5}},
    "next_1_hours": {"details": {"precipitation_amount": 1.2}}}},
  {"time": "2024-05-01T10:00:00Z", "data": {
    "instant": {"details": {"air_temperature": 12.0}},
    "next_1_hours": {"details": {"precipitation_amount": 0.3}}}},
  {"time": "2024-05-02T10:00:00Z", "data": {
    "instant": {"details": {"air_temperature": 9.0}}}}
]}}`

func newTestApp(t *testing.T, fetcher weather.Fetcher) *fiber.App {
	t.Helper()

	cities := weather.Cities()[:5]
	svc := weather.NewService(fetcher, weather.NewRanker(fetcher, cities, 2), store.NewMemoryRankingCache(0)).
		WithClock(func() time.Time { return testToday })

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	RegisterRoutes(app, svc, 3)
	return app
}

func okFetcher(t *testing.T) *stubFetcher {
	t.Helper()
	var p weather.ForecastPayload
	require.NoError(t, json.Unmarshal([]byte(testPayload), &p))
	return &stubFetcher{payload: p}
}

func doGet(t *testing.T, app *fiber.App, method, target string) (*http.Response, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp, body
}

func TestCities(t *testing.T) {
	app := newTestApp(t, okFetcher(t))

	resp, body := doGet(t, app, http.MethodGet, "/api/v1/cities")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	cities, ok := body["cities"].([]any)
	require.True(t, ok)
	assert.Len(t, cities, 41)
	first := cities[0].(map[string]any)
	assert.Equal(t, "Oslo", first["name"])
}

func TestCurrent(t *testing.T) {
	app := newTestApp(t, okFetcher(t))

	resp, body := doGet(t, app, http.MethodGet, "/api/v1/weather/current?city=Bergen")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	city := body["city"].(map[string]any)
	assert.Equal(t, "Bergen", city["name"])

	cond := body["conditions"].(map[string]any)
	assert.Equal(t, 11.0, cond["airTemperatureC"])
	assert.Equal(t, 80.5, cond["relativeHumidityPercent"])
	// Unavailable measurements are present and null.
	v, present := cond["windSpeedMs"]
	assert.True(t, present)
	assert.Nil(t, v)
}

func TestCurrent_CityWithSpaceAndUnicode(t *testing.T) {
	app := newTestApp(t, okFetcher(t))

	resp, _ := doGet(t, app, http.MethodGet, "/api/v1/weather/current?city=Skien+og+porsgrunn")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doGet(t, app, http.MethodGet, "/api/v1/weather/current?city=%C3%85lesund")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCurrent_Validation(t *testing.T) {
	app := newTestApp(t, okFetcher(t))

	resp, body := doGet(t, app, http.MethodGet, "/api/v1/weather/current")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, true, body["error"])
}

func TestCurrent_UnknownCity(t *testing.T) {
	app := newTestApp(t, okFetcher(t))

	resp, _ := doGet(t, app, http.MethodGet, "/api/v1/weather/current?city=Atlantis")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCurrent_Upstream(t *testing.T) {
	app := newTestApp(t, &stubFetcher{err: weather.ErrUnavailable})

	resp, body := doGet(t, app, http.MethodGet, "/api/v1/weather/current?city=Oslo")
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Equal(t, "could not fetch weather data, try again later", body["message"])
}

func TestCurrent_Malformed(t *testing.T) {
	app := newTestApp(t, &stubFetcher{})

	resp, _ := doGet(t, app, http.MethodGet, "/api/v1/weather/current?city=Oslo")
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

func TestTimeline(t *testing.T) {
	app := newTestApp(t, okFetcher(t))

	resp, body := doGet(t, app, http.MethodGet, "/api/v1/weather/timeline?city=Oslo")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	points := body["points"].([]any)
	require.Len(t, points, 2)
	assert.Equal(t, 11.0, points[0].(map[string]any)["temperatureC"])
	assert.Equal(t, 12.0, points[1].(map[string]any)["temperatureC"])
}

func TestPrecipitationTop(t *testing.T) {
	app := newTestApp(t, okFetcher(t))

	resp, body := doGet(t, app, http.MethodGet, "/api/v1/precipitation/top")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	totals := body["totals"].([]any)
	require.Len(t, totals, 3)
	// Equal totals keep registry order.
	assert.Equal(t, "Oslo", totals[0].(map[string]any)["city"])
	assert.Equal(t, "Kristiansand", totals[1].(map[string]any)["city"])
	assert.InDelta(t, 1.5, totals[0].(map[string]any)["precipitationMm"], 1e-9)
	assert.Equal(t, "2024-05-01", body["date"])

	resp, body = doGet(t, app, http.MethodGet, "/api/v1/precipitation/top?limit=5")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body["totals"], 5)
}

func TestPrecipitationTop_LimitValidation(t *testing.T) {
	app := newTestApp(t, okFetcher(t))

	for _, target := range []string{
		"/api/v1/precipitation/top?limit=0",
		"/api/v1/precipitation/top?limit=42",
		"/api/v1/precipitation/top?limit=many",
	} {
		resp, _ := doGet(t, app, http.MethodGet, target)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, target)
	}
}

func TestPrecipitationRefresh(t *testing.T) {
	app := newTestApp(t, okFetcher(t))

	_, first := doGet(t, app, http.MethodGet, "/api/v1/precipitation/top")
	_, cached := doGet(t, app, http.MethodGet, "/api/v1/precipitation/top")
	assert.Equal(t, first["id"], cached["id"])

	resp, refreshed := doGet(t, app, http.MethodPost, "/api/v1/precipitation/refresh")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEqual(t, first["id"], refreshed["id"])

	_, viaQuery := doGet(t, app, http.MethodGet, "/api/v1/precipitation/top?refresh=true")
	assert.NotEqual(t, refreshed["id"], viaQuery["id"])
}

func TestPrecipitationTop_AllCitiesFailing(t *testing.T) {
	app := newTestApp(t, &stubFetcher{err: weather.ErrUnavailable})

	resp, body := doGet(t, app, http.MethodGet, "/api/v1/precipitation/top")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, body["totals"])
	assert.Len(t, body["skipped"], 5)
}

func TestDashboard(t *testing.T) {
	app := newTestApp(t, okFetcher(t))

	resp, body := doGet(t, app, http.MethodGet, "/api/v1/dashboard?city=Oslo")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, "Oslo", body["city"].(map[string]any)["name"])
	assert.Len(t, body["timeline"], 2)
	assert.Len(t, body["wettest"], 3)
	assert.NotEmpty(t, body["rankingId"])
}

func TestDashboard_UnknownCity(t *testing.T) {
	app := newTestApp(t, okFetcher(t))

	resp, _ := doGet(t, app, http.MethodGet, "/api/v1/dashboard?city=Narnia")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
