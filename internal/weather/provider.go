package weather

import (
	"context"
)

// Fetcher retrieves the forecast payload for a coordinate pair.
// Implementations make a single attempt and wrap failures in ErrUnavailable
// or ErrMalformedPayload.
type Fetcher interface {
	Fetch(ctx context.Context, lat, lon float64) (ForecastPayload, error)
}

// RankingCache holds at most one ranking pass per date.
// Load reports ok=false on a miss; a miss is not an error.
type RankingCache interface {
	Load(ctx context.Context, date string) (ranking Ranking, ok bool, err error)
	Save(ctx context.Context, ranking Ranking) error
	Invalidate(ctx context.Context, date string) error
}
