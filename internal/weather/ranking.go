package weather

import (
	"context"
	"log"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"
)

const defaultRankingWorkers = 4

// Ranker computes the daily precipitation total of every city and orders them.
type Ranker struct {
	fetcher Fetcher
	cities  []City
	workers int
}

// NewRanker creates a Ranker over cities. workers bounds the number of
// concurrent fetches; values <= 0 fall back to a small default.
func NewRanker(fetcher Fetcher, cities []City, workers int) *Ranker {
	if workers <= 0 {
		workers = defaultRankingWorkers
	}
	return &Ranker{
		fetcher: fetcher,
		cities:  cities,
		workers: workers,
	}
}

// Rank returns the precipitation totals for today, descending by millimeters.
// Ties keep registry order. Cities whose fetch fails are left out of the
// totals and reported in skipped, in registry order; Rank itself never fails.
func (r *Ranker) Rank(ctx context.Context, today time.Time) (totals []PrecipitationTotal, skipped []string) {
	// One slot per city; each worker only writes its own.
	results := make([]*PrecipitationTotal, len(r.cities))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for i, city := range r.cities {
		i, city := i, city // per-iteration copy; module targets go 1.21 loop semantics
		g.Go(func() error {
			payload, err := r.fetcher.Fetch(gCtx, city.Latitude, city.Longitude)
			if err != nil {
				log.Printf("ranking: skipping %s: %v", city.Name, err)
				return nil
			}
			results[i] = &PrecipitationTotal{
				City:        city.Name,
				Millimeters: TotalPrecipitation(payload, today),
			}
			return nil
		})
	}

	// Workers never return errors; skipped cities are already logged.
	_ = g.Wait()

	totals = make([]PrecipitationTotal, 0, len(results))
	for i, res := range results {
		if res == nil {
			skipped = append(skipped, r.cities[i].Name)
			continue
		}
		totals = append(totals, *res)
	}

	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].Millimeters > totals[j].Millimeters
	})

	return totals, skipped
}
