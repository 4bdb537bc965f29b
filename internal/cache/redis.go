// Package cache keeps the current criteria weight profile in Redis so reads
// do not hit PostgreSQL on every scoring request.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MikeSquared-Agency/Valumetric/internal/config"
	"github.com/MikeSquared-Agency/Valumetric/internal/store"
)

const currentWeightsKey = "valumetric:weights:current"

// WeightCache holds the current weight profile.
type WeightCache interface {
	// Get returns nil, nil on a miss.
	Get(ctx context.Context) (*store.WeightProfile, error)
	Set(ctx context.Context, p *store.WeightProfile) error
	Invalidate(ctx context.Context) error
}

type RedisWeightCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisClient builds a client from the redis config section.
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
}

// NewRedisWeightCache wraps client. A zero ttl keeps entries until the next Set.
func NewRedisWeightCache(client *redis.Client, ttl time.Duration) *RedisWeightCache {
	return &RedisWeightCache{client: client, ttl: ttl}
}

func (c *RedisWeightCache) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

func (c *RedisWeightCache) Get(ctx context.Context) (*store.WeightProfile, error) {
	data, err := c.client.Get(ctx, currentWeightsKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get cached weights: %w", err)
	}
	var p store.WeightProfile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode cached weights: %w", err)
	}
	return &p, nil
}

func (c *RedisWeightCache) Set(ctx context.Context, p *store.WeightProfile) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode weights: %w", err)
	}
	if err := c.client.Set(ctx, currentWeightsKey, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache weights: %w", err)
	}
	return nil
}

func (c *RedisWeightCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, currentWeightsKey).Err(); err != nil {
		return fmt.Errorf("invalidate weights: %w", err)
	}
	return nil
}

func (c *RedisWeightCache) Close() error {
	return c.client.Close()
}
