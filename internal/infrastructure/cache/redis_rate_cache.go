package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/boutikla/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const rateCacheKey = "exchange_rate:current"

// RedisRateCache implements RateCache backed by Redis, so every API instance
// sees a rate update as soon as the key is invalidated.
type RedisRateCache struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisClient creates a Redis client from configuration and verifies the
// connection.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return client, nil
}

// NewRedisRateCache creates a new Redis-backed rate cache
func NewRedisRateCache(client *redis.Client, logger *zap.Logger) *RedisRateCache {
	return &RedisRateCache{
		client: client,
		logger: logger.Named("rate_cache"),
	}
}

// Get returns the cached rate if the key exists
func (c *RedisRateCache) Get(ctx context.Context) (decimal.Decimal, bool, error) {
	val, err := c.client.Get(ctx, rateCacheKey).Result()
	if errors.Is(err, redis.Nil) {
		return decimal.Zero, false, nil
	}
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("rate cache get: %w", err)
	}

	rate, err := decimal.NewFromString(val)
	if err != nil {
		// Corrupt entry, drop it and treat as a miss
		c.logger.Warn("dropping malformed cached rate", zap.String("value", val))
		if delErr := c.client.Del(ctx, rateCacheKey).Err(); delErr != nil {
			c.logger.Warn("failed to drop malformed cached rate", zap.Error(delErr))
		}
		return decimal.Zero, false, nil
	}

	return rate, true, nil
}

// Set stores the rate with the given TTL
func (c *RedisRateCache) Set(ctx context.Context, rate decimal.Decimal, ttl time.Duration) error {
	if err := c.client.Set(ctx, rateCacheKey, rate.String(), ttl).Err(); err != nil {
		return fmt.Errorf("rate cache set: %w", err)
	}
	return nil
}

// Invalidate drops the cached rate
func (c *RedisRateCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, rateCacheKey).Err(); err != nil {
		return fmt.Errorf("rate cache invalidate: %w", err)
	}
	return nil
}

// Close closes the underlying Redis client
func (c *RedisRateCache) Close() error {
	return c.client.Close()
}

var _ RateCache = (*RedisRateCache)(nil)
