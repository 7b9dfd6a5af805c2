package weather

import (
	"time"

	"github.com/i474232898/norway-weather/internal/common"
)

// TotalPrecipitation sums the 1-hour precipitation forecasts of today's entries.
//
// An entry qualifies when its UTC date is today's and it carries
// next_1_hours.details; a missing amount inside details counts as zero.
// Windows are trusted to be non-overlapping, one per timestamp: nothing is
// deduplicated, so mixed 1h/6h cadences would be miscounted.
func TotalPrecipitation(payload ForecastPayload, today time.Time) float64 {
	var total float64
	for _, e := range payload.Timeseries() {
		if !common.SameUTCDate(e.Time, today) {
			continue
		}
		next := e.Data.Next1Hours
		if next == nil || next.Details == nil {
			continue
		}
		if amount := next.Details.PrecipitationAmount; amount != nil {
			total += *amount
		}
	}
	return total
}
