package weather

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/i474232898/norway-weather/internal/common"
)

// Service runs the extraction pipeline for the registry cities and keeps the
// ranking cache for the current rendering cycle.
type Service struct {
	fetcher Fetcher
	ranker  *Ranker
	cache   RankingCache
	now     func() time.Time
}

// NewService creates a new Service. A nil cache disables ranking caching.
func NewService(fetcher Fetcher, ranker *Ranker, cache RankingCache) *Service {
	return &Service{
		fetcher: fetcher,
		ranker:  ranker,
		cache:   cache,
		now:     time.Now,
	}
}

// WithClock replaces the clock used to decide what "today" is.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Cities returns the supported cities in registry order.
func (s *Service) Cities() []City {
	return Cities()
}

// Current fetches the forecast for the named city and returns its instant conditions.
func (s *Service) Current(ctx context.Context, name string) (CityConditions, error) {
	city, payload, err := s.fetchCity(ctx, name)
	if err != nil {
		return CityConditions{}, err
	}

	cond, err := ExtractInstant(payload)
	if err != nil {
		log.Printf("ERROR: instant conditions for %s: %v", city.Name, err)
		return CityConditions{}, err
	}

	return CityConditions{City: city, Conditions: cond}, nil
}

// Timeline fetches the forecast for the named city and returns today's temperatures.
func (s *Service) Timeline(ctx context.Context, name string) ([]TemperaturePoint, error) {
	_, payload, err := s.fetchCity(ctx, name)
	if err != nil {
		return nil, err
	}
	return ExtractTodayTimeline(payload, s.now()), nil
}

// Dashboard builds everything a single rendering cycle shows for the selected
// city: one fetch feeds both the instant conditions and the timeline, and the
// wettest cities come from the (possibly cached) ranking.
//
// A failure for the selected city is returned. A ranking failure is not; the
// dashboard is then rendered without the wettest list.
func (s *Service) Dashboard(ctx context.Context, name string, refresh bool, topN int) (Dashboard, error) {
	city, payload, err := s.fetchCity(ctx, name)
	if err != nil {
		return Dashboard{}, err
	}

	cond, err := ExtractInstant(payload)
	if err != nil {
		log.Printf("ERROR: instant conditions for %s: %v", city.Name, err)
		return Dashboard{}, err
	}

	dash := Dashboard{
		City:       city,
		Conditions: cond,
		Timeline:   ExtractTodayTimeline(payload, s.now()),
		Wettest:    []PrecipitationTotal{},
	}

	ranking, err := s.TopPrecipitation(ctx, topN, refresh)
	if err != nil {
		log.Printf("ERROR: precipitation ranking unavailable for dashboard: %v", err)
		return dash, nil
	}
	dash.Wettest = ranking.Totals
	dash.RankingID = ranking.ID

	return dash, nil
}

// TopPrecipitation returns the n wettest cities of today (n <= 0 returns all).
// The full ranking is served from the cache unless refresh is set, in which
// case the cached pass is invalidated and recomputed.
func (s *Service) TopPrecipitation(ctx context.Context, n int, refresh bool) (Ranking, error) {
	today := s.now()
	date := common.DateKey(today)

	if refresh {
		s.invalidate(ctx, date)
	} else if cached, ok := s.loadCached(ctx, date); ok {
		cached.Totals = cached.Top(n)
		return cached, nil
	}

	ranking, err := s.computeRanking(ctx, today)
	if err != nil {
		return Ranking{}, err
	}
	ranking.Totals = ranking.Top(n)
	return ranking, nil
}

// RefreshRanking drops the cached ranking and recomputes it.
func (s *Service) RefreshRanking(ctx context.Context) (Ranking, error) {
	return s.TopPrecipitation(ctx, 0, true)
}

func (s *Service) fetchCity(ctx context.Context, name string) (City, ForecastPayload, error) {
	city, err := Lookup(name)
	if err != nil {
		return City{}, ForecastPayload{}, err
	}

	payload, err := s.fetcher.Fetch(ctx, city.Latitude, city.Longitude)
	if err != nil {
		log.Printf("ERROR: fetch failed for %s: %v", city.Name, err)
		return City{}, ForecastPayload{}, err
	}

	return city, payload, nil
}

func (s *Service) computeRanking(ctx context.Context, today time.Time) (Ranking, error) {
	log.Printf("DEBUG: computing precipitation ranking for %s", common.DateKey(today))

	totals, skipped := s.ranker.Rank(ctx, today)

	// A cancelled pass has skipped every city; do not let it replace a good one.
	if err := ctx.Err(); err != nil {
		return Ranking{}, err
	}

	ranking := Ranking{
		ID:         uuid.NewString(),
		Date:       common.DateKey(today),
		ComputedAt: s.now().UTC(),
		Totals:     totals,
		Skipped:    skipped,
	}

	// A partial pass is served once but never cached, so the next request
	// retries the cities that failed.
	if !ranking.Complete() {
		log.Printf("INFO: ranking %s skipped %d of %d cities; not caching", ranking.ID, len(skipped), len(totals)+len(skipped))
		return ranking, nil
	}

	if s.cache != nil {
		if err := s.cache.Save(ctx, ranking); err != nil {
			log.Printf("ERROR: saving ranking %s: %v", ranking.ID, err)
		}
	}

	return ranking, nil
}

func (s *Service) loadCached(ctx context.Context, date string) (Ranking, bool) {
	if s.cache == nil {
		return Ranking{}, false
	}
	ranking, ok, err := s.cache.Load(ctx, date)
	if err != nil {
		log.Printf("ERROR: loading cached ranking for %s: %v", date, err)
		return Ranking{}, false
	}
	return ranking, ok
}

func (s *Service) invalidate(ctx context.Context, date string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, date); err != nil {
		log.Printf("ERROR: invalidating ranking for %s: %v", date, err)
	}
}
