package cache

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryRateCache(t *testing.T) {
	ctx := context.Background()

	t.Run("miss on empty cache", func(t *testing.T) {
		c := NewInMemoryRateCache()
		_, ok, err := c.Get(ctx)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("hit within ttl", func(t *testing.T) {
		c := NewInMemoryRateCache()
		require.NoError(t, c.Set(ctx, decimal.RequireFromString("132.50"), time.Minute))

		rate, ok, err := c.Get(ctx)
		require.NoError(t, err)
		require.True(t, ok)
		assert.True(t, rate.Equal(decimal.RequireFromString("132.50")))
	})

	t.Run("miss after expiry", func(t *testing.T) {
		c := NewInMemoryRateCache()
		require.NoError(t, c.Set(ctx, decimal.NewFromInt(130), -time.Second))

		_, ok, err := c.Get(ctx)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("invalidate drops the entry", func(t *testing.T) {
		c := NewInMemoryRateCache()
		require.NoError(t, c.Set(ctx, decimal.NewFromInt(130), time.Minute))
		require.NoError(t, c.Invalidate(ctx))

		_, ok, err := c.Get(ctx)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}
