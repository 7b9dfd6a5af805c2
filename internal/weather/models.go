package weather

import (
	"encoding/json"
	"strconv"
	"time"
)

// City is a named location with fixed coordinates.
type City struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ForecastPayload is the subset of the MET Locationforecast document we depend on.
type ForecastPayload struct {
	Properties struct {
		Timeseries []TimeseriesEntry `json:"timeseries"`
	} `json:"properties"`
}

// Timeseries returns the ordered forecast entries of the payload.
func (p ForecastPayload) Timeseries() []TimeseriesEntry {
	return p.Properties.Timeseries
}

// TimeseriesEntry is one timestamped forecast record.
// Entries are expected to be ordered by Time ascending; the first one is "now".
type TimeseriesEntry struct {
	Time time.Time `json:"time"` // always UTC
	Data struct {
		Instant struct {
			Details InstantDetails `json:"details"`
		} `json:"instant"`
		Next1Hours *PeriodForecast `json:"next_1_hours,omitempty"`
	} `json:"data"`
}

// InstantDetails holds the measurements valid at the entry's timestamp.
// A nil field means the upstream did not report it.
type InstantDetails struct {
	AirTemperature    *float64 `json:"air_temperature,omitempty"`
	WindSpeed         *float64 `json:"wind_speed,omitempty"`
	RelativeHumidity  *float64 `json:"relative_humidity,omitempty"`
	CloudAreaFraction *float64 `json:"cloud_area_fraction,omitempty"`
	WindFromDirection *float64 `json:"wind_from_direction,omitempty"`
}

// PeriodForecast holds a forecast valid for a period following the entry's timestamp.
type PeriodForecast struct {
	Details *PeriodDetails `json:"details,omitempty"`
}

// PeriodDetails holds the period measurements.
type PeriodDetails struct {
	PrecipitationAmount *float64 `json:"precipitation_amount,omitempty"`
}

// Measurement is an optional numeric reading. An invalid Measurement is the
// "unavailable" marker: it renders as N/A and as JSON null.
type Measurement struct {
	Value float64
	Valid bool
}

// MeasurementOf converts an optional upstream value into a Measurement.
func MeasurementOf(v *float64) Measurement {
	if v == nil {
		return Measurement{}
	}
	return Measurement{Value: *v, Valid: true}
}

func (m Measurement) String() string {
	if !m.Valid {
		return "N/A"
	}
	return strconv.FormatFloat(m.Value, 'f', -1, 64)
}

func (m Measurement) MarshalJSON() ([]byte, error) {
	if !m.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(m.Value)
}

func (m *Measurement) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*m = Measurement{}
		return nil
	}
	if err := json.Unmarshal(b, &m.Value); err != nil {
		return err
	}
	m.Valid = true
	return nil
}

// InstantConditions is the snapshot of measurements for the nearest time point.
type InstantConditions struct {
	Timestamp         time.Time   `json:"timestamp"`
	AirTemperature    float64     `json:"airTemperatureC"`
	WindSpeed         Measurement `json:"windSpeedMs"`
	RelativeHumidity  Measurement `json:"relativeHumidityPercent"`
	CloudAreaFraction Measurement `json:"cloudAreaFractionPercent"`
	WindFromDirection Measurement `json:"windFromDirectionDeg"`
}

// TemperaturePoint is one element of a same-day temperature series.
type TemperaturePoint struct {
	Timestamp   time.Time `json:"timestamp"`
	Temperature float64   `json:"temperatureC"`
}

// PrecipitationTotal is the expected precipitation for one city over the day.
type PrecipitationTotal struct {
	City        string  `json:"city"`
	Millimeters float64 `json:"precipitationMm"`
}

// Ranking is the result of one ranking pass over the registry.
// Totals are ordered by Millimeters descending, ties in registry order.
// Skipped names the cities whose forecast could not be fetched.
type Ranking struct {
	ID         string               `json:"id"`
	Date       string               `json:"date"` // UTC calendar date, YYYY-MM-DD
	ComputedAt time.Time            `json:"computedAt"`
	Totals     []PrecipitationTotal `json:"totals"`
	Skipped    []string             `json:"skipped,omitempty"`
}

// Complete reports whether every city made it into the ranking.
func (r Ranking) Complete() bool {
	return len(r.Skipped) == 0
}

// Top returns at most n totals. n <= 0 returns all of them.
func (r Ranking) Top(n int) []PrecipitationTotal {
	if n <= 0 || n >= len(r.Totals) {
		return r.Totals
	}
	return r.Totals[:n]
}

// CityConditions pairs a city with its current conditions.
type CityConditions struct {
	City       City              `json:"city"`
	Conditions InstantConditions `json:"conditions"`
}

// Dashboard is everything one rendering cycle needs for a selected city.
type Dashboard struct {
	City       City                 `json:"city"`
	Conditions InstantConditions    `json:"conditions"`
	Timeline   []TemperaturePoint   `json:"timeline"`
	Wettest    []PrecipitationTotal `json:"wettest"`
	RankingID  string               `json:"rankingId,omitempty"`
}
