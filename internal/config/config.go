package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/i474232898/norway-weather/internal/weather/providers"
)

const defaultUserAgent = "norway-weather/1.0 github.com/i474232898/norway-weather"

type AppConfig struct {
	Port string `validate:"required,numeric"`

	// MetNoBaseURL is the Locationforecast endpoint.
	MetNoBaseURL string `validate:"required,url"`
	// MetNoUserAgent identifies us to MET; anonymous requests are rejected.
	MetNoUserAgent string `validate:"required"`

	// HTTPTimeout bounds every outbound forecast request.
	HTTPTimeout time.Duration `validate:"gt=0"`

	// Ranking pass.
	RankingWorkers int `validate:"min=1,max=64"`
	TopN           int `validate:"min=1"`

	// RankingCacheTTL bounds how long a ranking pass is reused (0 = until refresh or date change).
	RankingCacheTTL time.Duration `validate:"gte=0"`
	// RankingRefreshInterval recomputes the ranking in the background (0 = disabled).
	RankingRefreshInterval time.Duration `validate:"gte=0"`

	// RedisURL selects the Redis ranking cache when set.
	RedisURL string `validate:"omitempty,url"`
}

var validate = validator.New()

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.Port = getenvDefault("PORT", "8080")
	cfg.MetNoBaseURL = getenvDefault("METNO_BASE_URL", providers.DefaultMetNoURL)
	cfg.MetNoUserAgent = getenvDefault("METNO_USER_AGENT", defaultUserAgent)
	cfg.RedisURL = os.Getenv("REDIS_URL")

	var err error
	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", "10s"); err != nil {
		return nil, err
	}
	if cfg.RankingCacheTTL, err = getenvDuration("RANKING_CACHE_TTL", "0"); err != nil {
		return nil, err
	}
	if cfg.RankingRefreshInterval, err = getenvDuration("RANKING_REFRESH_INTERVAL", "0"); err != nil {
		return nil, err
	}

	cfg.RankingWorkers = getenvInt("RANKING_WORKERS", 4)
	cfg.TopN = getenvInt("TOP_N", 3)

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
