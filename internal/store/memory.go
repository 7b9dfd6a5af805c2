package store

import (
	"context"
	"sync"
	"time"

	"github.com/i474232898/norway-weather/internal/weather"
)

// MemoryRankingCache is a concurrency-safe in-memory ranking cache.
// It keeps a single ranking pass; a pass for another date is a miss.
type MemoryRankingCache struct {
	mu sync.RWMutex

	ranking *weather.Ranking

	// retention configuration
	maxAge time.Duration // optional max age of the cached pass (0 = until invalidated)
	now    func() time.Time
}

// NewMemoryRankingCache creates a new MemoryRankingCache.
// If maxAge is <= 0, entries live until invalidated or the date changes.
func NewMemoryRankingCache(maxAge time.Duration) *MemoryRankingCache {
	return &MemoryRankingCache{
		maxAge: maxAge,
		now:    time.Now,
	}
}

// Load returns the cached ranking for date, if any.
func (s *MemoryRankingCache) Load(_ context.Context, date string) (weather.Ranking, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.ranking == nil || s.ranking.Date != date {
		return weather.Ranking{}, false, nil
	}

	// Enforce retention by age.
	if s.maxAge > 0 && s.now().Sub(s.ranking.ComputedAt) > s.maxAge {
		return weather.Ranking{}, false, nil
	}

	return cloneRanking(*s.ranking), true, nil
}

// Save replaces the cached ranking.
func (s *MemoryRankingCache) Save(_ context.Context, ranking weather.Ranking) error {
	r := cloneRanking(ranking)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.ranking = &r
	return nil
}

// Invalidate drops the cached ranking if it belongs to date.
func (s *MemoryRankingCache) Invalidate(_ context.Context, date string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ranking != nil && s.ranking.Date == date {
		s.ranking = nil
	}
	return nil
}

func cloneRanking(r weather.Ranking) weather.Ranking {
	totals := make([]weather.PrecipitationTotal, len(r.Totals))
	copy(totals, r.Totals)
	r.Totals = totals
	if r.Skipped != nil {
		r.Skipped = append([]string(nil), r.Skipped...)
	}
	return r
}
