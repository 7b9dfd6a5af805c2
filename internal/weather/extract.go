package weather

import (
	"fmt"
	"time"

	"github.com/i474232898/norway-weather/internal/common"
)

// ExtractInstant returns the conditions of the first timeseries entry.
// Air temperature is required; every other field may be unavailable.
func ExtractInstant(payload ForecastPayload) (InstantConditions, error) {
	series := payload.Timeseries()
	if len(series) == 0 {
		return InstantConditions{}, fmt.Errorf("%w: empty timeseries", ErrMalformedPayload)
	}

	now := series[0]
	details := now.Data.Instant.Details
	if details.AirTemperature == nil {
		return InstantConditions{}, fmt.Errorf("%w: air_temperature missing at %s",
			ErrMalformedPayload, now.Time.Format(time.RFC3339))
	}

	return InstantConditions{
		Timestamp:         now.Time.UTC(),
		AirTemperature:    *details.AirTemperature,
		WindSpeed:         MeasurementOf(details.WindSpeed),
		RelativeHumidity:  MeasurementOf(details.RelativeHumidity),
		CloudAreaFraction: MeasurementOf(details.CloudAreaFraction),
		WindFromDirection: MeasurementOf(details.WindFromDirection),
	}, nil
}

// ExtractTodayTimeline returns the air temperature of every entry whose UTC
// calendar date equals today's, in payload order. Entries without a
// temperature are skipped. No match yields an empty, non-nil slice.
func ExtractTodayTimeline(payload ForecastPayload, today time.Time) []TemperaturePoint {
	points := make([]TemperaturePoint, 0)
	for _, e := range payload.Timeseries() {
		if !common.SameUTCDate(e.Time, today) {
			continue
		}
		temp := e.Data.Instant.Details.AirTemperature
		if temp == nil {
			continue
		}
		points = append(points, TemperaturePoint{
			Timestamp:   e.Time.UTC(),
			Temperature: *temp,
		})
	}
	return points
}
