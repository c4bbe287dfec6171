// Package cache provides the Redis-backed TTL cache for analysis
// results. The cache is an injected collaborator: the engine stays
// stateless and eviction policy lives entirely on the Redis side.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/gamepulse/gamepulse/internal/domain"
)

const keyPrefix = "gamepulse:analysis:"

// Config tunes the Redis connection and entry lifetime.
type Config struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"ttl"`
}

// ResultCache stores analysis results with a TTL.
type ResultCache struct {
	client *redis.Client
	ttl    time.Duration
}

// New connects a result cache. A failed ping is surfaced so callers can
// decide whether to run uncached.
func New(ctx context.Context, cfg Config) (*ResultCache, error) {
	if cfg.TTL <= 0 {
		cfg.TTL = 15 * time.Minute
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     10,
		MinIdleConns: 2,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("cache: ping %s: %w", cfg.Addr, err)
	}

	return &ResultCache{client: client, ttl: cfg.TTL}, nil
}

// GetResult returns a cached result for the app id, if present and
// decodable. Decode failures are treated as misses.
func (c *ResultCache) GetResult(ctx context.Context, appID int) (*domain.AnalysisResult, bool) {
	data, err := c.client.Get(ctx, cacheKey(appID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Warn().Err(err).Int("app_id", appID).Msg("cache: get failed")
		}
		return nil, false
	}

	var result domain.AnalysisResult
	if err := json.Unmarshal(data, &result); err != nil {
		log.Warn().Err(err).Int("app_id", appID).Msg("cache: corrupt entry dropped")
		c.client.Del(ctx, cacheKey(appID))
		return nil, false
	}
	return &result, true
}

// SetResult stores a result under the configured TTL.
func (c *ResultCache) SetResult(ctx context.Context, result *domain.AnalysisResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("cache: marshal result: %w", err)
	}
	if err := c.client.Set(ctx, cacheKey(result.AppID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache: set app %d: %w", result.AppID, err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (c *ResultCache) Close() error {
	return c.client.Close()
}

func cacheKey(appID int) string {
	return fmt.Sprintf("%s%d", keyPrefix, appID)
}
