package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/i474232898/norway-weather/internal/weather"
)

// Connect parses redisURL, creates a client, and verifies connectivity with a ping.
func Connect(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}

	return client, nil
}

// RedisRankingCache stores ranking passes in Redis, one key per date.
type RedisRankingCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisRankingCache constructs a RedisRankingCache.
// ttl <= 0 keeps entries until invalidated.
func NewRedisRankingCache(client *redis.Client, ttl time.Duration) *RedisRankingCache {
	if ttl < 0 {
		ttl = 0
	}
	return &RedisRankingCache{client: client, ttl: ttl}
}

func rankingKey(date string) string {
	return "ranking:" + date
}

// Load returns the cached ranking for date. A miss is (Ranking{}, false, nil).
func (c *RedisRankingCache) Load(ctx context.Context, date string) (weather.Ranking, bool, error) {
	val, err := c.client.Get(ctx, rankingKey(date)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return weather.Ranking{}, false, nil
		}
		return weather.Ranking{}, false, fmt.Errorf("cache get ranking for %s: %w", date, err)
	}

	var ranking weather.Ranking
	if err := json.Unmarshal([]byte(val), &ranking); err != nil {
		return weather.Ranking{}, false, fmt.Errorf("unmarshaling cached ranking for %s: %w", date, err)
	}

	return ranking, true, nil
}

// Save stores the ranking under its date with the configured TTL.
func (c *RedisRankingCache) Save(ctx context.Context, ranking weather.Ranking) error {
	b, err := json.Marshal(ranking)
	if err != nil {
		return fmt.Errorf("marshaling ranking %s: %w", ranking.ID, err)
	}

	if err := c.client.Set(ctx, rankingKey(ranking.Date), b, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set ranking for %s: %w", ranking.Date, err)
	}

	return nil
}

// Invalidate removes the cached ranking for date.
func (c *RedisRankingCache) Invalidate(ctx context.Context, date string) error {
	if err := c.client.Del(ctx, rankingKey(date)).Err(); err != nil {
		return fmt.Errorf("cache delete ranking for %s: %w", date, err)
	}
	return nil
}
