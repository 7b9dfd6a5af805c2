package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/i474232898/norway-weather/internal/api/http"
	"github.com/i474232898/norway-weather/internal/config"
	"github.com/i474232898/norway-weather/internal/scheduler"
	"github.com/i474232898/norway-weather/internal/store"
	"github.com/i474232898/norway-weather/internal/weather"
	"github.com/i474232898/norway-weather/internal/weather/providers"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound forecast calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	metno := providers.NewMetNoProvider(httpClient, cfg.MetNoBaseURL, cfg.MetNoUserAgent)

	// Ranking cache: Redis when configured, in-memory otherwise.
	var cache weather.RankingCache
	if cfg.RedisURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		client, err := store.Connect(ctx, cfg.RedisURL)
		cancel()
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer client.Close()
		cache = store.NewRedisRankingCache(client, cfg.RankingCacheTTL)
		log.Println("INFO: using redis ranking cache")
	} else {
		cache = store.NewMemoryRankingCache(cfg.RankingCacheTTL)
	}

	ranker := weather.NewRanker(metno, weather.Cities(), cfg.RankingWorkers)
	service := weather.NewService(metno, ranker, cache)

	// Scheduler that keeps the ranking warm.
	sched := scheduler.New(cfg.RankingRefreshInterval, scheduler.RefresherFunc(func(ctx context.Context) error {
		_, err := service.RefreshRanking(ctx)
		return err
	}))
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "norway-weather",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		// A ranking pass makes one upstream call per city.
		WriteTimeout: 60 * time.Second,
		ErrorHandler: httpapi.ErrorHandler,
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "norway-weather",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, service, cfg.TopN)

	go func() {
		log.Printf("INFO: listening on :%s", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
