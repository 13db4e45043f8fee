package cache

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// RateCache caches the current HTG-per-USD exchange rate in front of the
// database. A miss returns ok=false with no error; persistence stays the
// source of truth and the cache is invalidated whenever the rate is updated.
type RateCache interface {
	Get(ctx context.Context) (decimal.Decimal, bool, error)
	Set(ctx context.Context, rate decimal.Decimal, ttl time.Duration) error
	Invalidate(ctx context.Context) error
	Close() error
}

// InMemoryRateCache implements RateCache with a single in-process entry.
// Used standalone when Redis is disabled.
type InMemoryRateCache struct {
	mu        sync.RWMutex
	rate      decimal.Decimal
	expiresAt time.Time
	hasValue  bool
}

// NewInMemoryRateCache creates a new in-memory rate cache
func NewInMemoryRateCache() *InMemoryRateCache {
	return &InMemoryRateCache{}
}

// Get returns the cached rate if present and not expired
func (c *InMemoryRateCache) Get(ctx context.Context) (decimal.Decimal, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.hasValue || time.Now().After(c.expiresAt) {
		return decimal.Zero, false, nil
	}
	return c.rate, true, nil
}

// Set stores the rate with the given TTL
func (c *InMemoryRateCache) Set(ctx context.Context, rate decimal.Decimal, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.rate = rate
	c.expiresAt = time.Now().Add(ttl)
	c.hasValue = true
	return nil
}

// Invalidate drops the cached rate
func (c *InMemoryRateCache) Invalidate(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.hasValue = false
	return nil
}

// Close releases any resources held by the cache
func (c *InMemoryRateCache) Close() error {
	return nil
}

var _ RateCache = (*InMemoryRateCache)(nil)
