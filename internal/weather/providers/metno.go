package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/norway-weather/internal/weather"
)

// DefaultMetNoURL is the MET Norway Locationforecast 2.0 compact endpoint.
const DefaultMetNoURL = "https://api.met.no/weatherapi/locationforecast/2.0/compact"

// tripAfter is the number of consecutive failures that opens the circuit.
// It exceeds the registry size so a ranking pass that meets a few failing
// cities cannot open it for the rest of the pass.
const tripAfter = 50

// MetNoProvider fetches forecasts from MET Norway. It implements weather.Fetcher.
type MetNoProvider struct {
	name    string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

// NewMetNoProvider creates a provider for baseURL (DefaultMetNoURL when empty).
// MET rejects anonymous traffic, so userAgent must identify the application.
func NewMetNoProvider(client *http.Client, baseURL, userAgent string) *MetNoProvider {
	if baseURL == "" {
		baseURL = DefaultMetNoURL
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "metno",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= tripAfter
		},
	})

	return &MetNoProvider{
		name:    "metno",
		baseURL: baseURL,
		httpCfg: HTTPClientConfig{
			Client:    client,
			UserAgent: userAgent,
		},
		circuit: cb,
	}
}

// Fetch retrieves the forecast payload for the given coordinates in a single attempt.
func (p *MetNoProvider) Fetch(ctx context.Context, lat, lon float64) (weather.ForecastPayload, error) {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		// MET asks for at most four decimals; more defeats their cache.
		values.Set("lat", formatCoordinate(lat))
		values.Set("lon", formatCoordinate(lon))

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequest(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return weather.ForecastPayload{}, err
	}
	defer resp.Body.Close()

	var payload weather.ForecastPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.ForecastPayload{}, fmt.Errorf("%w: decoding %s response: %v", weather.ErrMalformedPayload, p.name, err)
	}

	return payload, nil
}

func formatCoordinate(v float64) string {
	return strconv.FormatFloat(math.Round(v*1e4)/1e4, 'f', -1, 64)
}
