package providers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/sony/gobreaker"

	"github.com/i474232898/norway-weather/internal/weather"
)

// HTTPClientConfig bundles the HTTP client and the identification the
// upstream requires on every request.
type HTTPClientConfig struct {
	Client    *http.Client
	UserAgent string
}

var (
	errNoHTTPClient = errors.New("http client not configured")
	errNoUserAgent  = errors.New("user agent not configured")
	errCircuitOpen  = errors.New("circuit breaker open")
)

// errStatus carries a non-success upstream status through the circuit breaker.
type errStatus struct {
	code int
	body string
}

func (e *errStatus) Error() string {
	if e.body == "" {
		return fmt.Sprintf("unexpected status code: %d", e.code)
	}
	return fmt.Sprintf("unexpected status code: %d: %s", e.code, e.body)
}

// doRequest executes the request exactly once through the circuit breaker.
// Any transport failure, non-2xx status or open circuit is reported as
// weather.ErrUnavailable. The caller owns the returned body.
func doRequest(
	ctx context.Context,
	cfg HTTPClientConfig,
	cb *gobreaker.CircuitBreaker,
	buildRequest func() (*http.Request, error),
) (*http.Response, error) {
	if cfg.Client == nil {
		return nil, fmt.Errorf("%w: %w", weather.ErrUnavailable, errNoHTTPClient)
	}
	if cfg.UserAgent == "" {
		return nil, fmt.Errorf("%w: %w", weather.ErrUnavailable, errNoUserAgent)
	}

	req, err := buildRequest()
	if err != nil {
		return nil, err
	}
	req = req.WithContext(ctx)
	req.Header.Set("User-Agent", cfg.UserAgent)
	req.Header.Set("Accept", "application/json")

	result, err := cb.Execute(func() (interface{}, error) {
		resp, execErr := cfg.Client.Do(req)
		if execErr != nil {
			return nil, execErr
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			resp.Body.Close()
			return nil, &errStatus{code: resp.StatusCode, body: string(snippet)}
		}

		return resp, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %w: %v", weather.ErrUnavailable, errCircuitOpen, err)
		}
		return nil, fmt.Errorf("%w: %w", weather.ErrUnavailable, err)
	}

	resp, ok := result.(*http.Response)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected result type from circuit breaker", weather.ErrUnavailable)
	}
	return resp, nil
}
