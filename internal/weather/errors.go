package weather

import "errors"

var (
	// ErrCityNotFound is returned when a city name is not in the registry.
	ErrCityNotFound = errors.New("city not found")

	// ErrUnavailable is returned when the forecast could not be fetched:
	// a non-success status or a transport failure.
	ErrUnavailable = errors.New("forecast unavailable")

	// ErrMalformedPayload is returned when a required field is missing from
	// an otherwise successful response.
	ErrMalformedPayload = errors.New("malformed forecast payload")
)
