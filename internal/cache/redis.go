// Package cache memoizes journey search results in Redis, keyed on the
// query parameters, so repeated identical queries against the same
// network snapshot skip the profile search entirely.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/antigravity/transit-profile/config"
	"github.com/antigravity/transit-profile/internal/profile"
)

// NewClient creates a Redis client with connection pooling and verifies
// connectivity with a ping, the same shape as the teacher pack's
// pkg/cache.NewRedisClient.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: 5,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: ping failed: %w", err)
	}

	return client, nil
}

// HealthCheck pings the Redis client and returns nil if healthy.
func HealthCheck(ctx context.Context, client *redis.Client) error {
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return client.Ping(pingCtx).Err()
}

// JourneyCache caches BestJourneys results for a query key.
type JourneyCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewJourneyCache(client *redis.Client, ttl time.Duration) *JourneyCache {
	return &JourneyCache{client: client, ttl: ttl}
}

// Key builds the cache key for a query, namespaced per the stations and
// parameters involved.
func Key(departure, arrival profile.StationID, arrivalTime int32, minProbability float64) string {
	return fmt.Sprintf("journeys:%d:%d:%d:%.6f", departure, arrival, arrivalTime, minProbability)
}

func (c *JourneyCache) Get(ctx context.Context, key string) ([]profile.Journey, bool, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var journeys []profile.Journey
	if err := json.Unmarshal(raw, &journeys); err != nil {
		return nil, false, err
	}
	return journeys, true, nil
}

func (c *JourneyCache) Set(ctx context.Context, key string, journeys []profile.Journey) error {
	raw, err := json.Marshal(journeys)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, raw, c.ttl).Err()
}
