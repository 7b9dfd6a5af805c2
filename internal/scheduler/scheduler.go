package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron"
)

// RankingRefresher recomputes the cached precipitation ranking.
type RankingRefresher interface {
	RefreshRanking(ctx context.Context) error
}

// RefresherFunc adapts a plain function to RankingRefresher.
type RefresherFunc func(ctx context.Context) error

func (f RefresherFunc) RefreshRanking(ctx context.Context) error { return f(ctx) }

// Scheduler periodically recomputes the precipitation ranking so that
// dashboard requests are served from a warm cache.
type Scheduler struct {
	scheduler *gocron.Scheduler
	refresher RankingRefresher
	interval  time.Duration
	timeout   time.Duration
}

// New creates a new Scheduler. An interval <= 0 disables it.
func New(interval time.Duration, refresher RankingRefresher) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		refresher: refresher,
		interval:  interval,
		timeout:   2 * time.Minute,
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
// The first run happens immediately.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		log.Println("scheduler: ranking refresh interval not set; nothing to schedule")
		return nil
	}

	_, err := s.scheduler.Every(s.interval).SingletonMode().Do(s.run)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

func (s *Scheduler) run() {
	log.Println("scheduler: running ranking refresh job")

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if err := s.refresher.RefreshRanking(ctx); err != nil {
		log.Printf("scheduler: ranking refresh failed: %v", err)
		return
	}
	log.Println("scheduler: completed ranking refresh job")
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
