package currency

import (
	"testing"

	"github.com/boutikla/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisplayPrice(t *testing.T) {
	rate := decimal.NewFromInt(132)

	t.Run("identity for USD", func(t *testing.T) {
		got, err := DisplayPrice(decimal.NewFromInt(10), valueobject.USD, rate)
		require.NoError(t, err)
		assert.True(t, got.Equal(decimal.NewFromInt(10)))
	})

	t.Run("converts to HTG at the rate", func(t *testing.T) {
		got, err := DisplayPrice(decimal.NewFromInt(10), valueobject.HTG, rate)
		require.NoError(t, err)
		assert.True(t, got.Equal(decimal.NewFromInt(1320)))
	})

	t.Run("toggling currency recomputes from base exactly", func(t *testing.T) {
		base := decimal.RequireFromString("10.55")
		htg, err := DisplayPrice(base, valueobject.HTG, rate)
		require.NoError(t, err)
		usd, err := DisplayPrice(base, valueobject.USD, rate)
		require.NoError(t, err)
		htgAgain, err := DisplayPrice(base, valueobject.HTG, rate)
		require.NoError(t, err)

		assert.True(t, usd.Equal(base))
		assert.True(t, htg.Equal(htgAgain))
	})

	t.Run("rejects unknown currency", func(t *testing.T) {
		_, err := DisplayPrice(decimal.NewFromInt(10), "EUR", rate)
		assert.Error(t, err)
	})

	t.Run("rejects non-positive rate for local currency", func(t *testing.T) {
		_, err := DisplayPrice(decimal.NewFromInt(10), valueobject.HTG, decimal.Zero)
		assert.Error(t, err)
	})
}

func TestLineTotal(t *testing.T) {
	t.Run("applies tax and discount as independent percentages", func(t *testing.T) {
		// 10 USD, qty 3, tax 10%, no discount -> (10 + 1 - 0) * 3 = 33
		total := LineTotal(decimal.NewFromInt(10), decimal.NewFromInt(10), decimal.Zero, decimal.NewFromInt(3))
		assert.True(t, total.Equal(decimal.NewFromInt(33)))
	})

	t.Run("discount reduces the displayed price", func(t *testing.T) {
		// 100, tax 0, discount 25% -> 75 * 2 = 150
		total := LineTotal(decimal.NewFromInt(100), decimal.Zero, decimal.NewFromInt(25), decimal.NewFromInt(2))
		assert.True(t, total.Equal(decimal.NewFromInt(150)))
	})
}

func TestNewExchangeRate(t *testing.T) {
	t.Run("accepts positive rate", func(t *testing.T) {
		r, err := NewExchangeRate(decimal.RequireFromString("132.5"))
		require.NoError(t, err)
		assert.True(t, r.Rate.Equal(decimal.RequireFromString("132.5")))
	})

	t.Run("rejects zero and negative rates", func(t *testing.T) {
		_, err := NewExchangeRate(decimal.Zero)
		assert.Error(t, err)
		_, err = NewExchangeRate(decimal.NewFromInt(-3))
		assert.Error(t, err)
	})
}

func TestNewCurrency(t *testing.T) {
	t.Run("creates currency", func(t *testing.T) {
		c, err := NewCurrency(valueobject.HTG, "Haitian Gourde")
		require.NoError(t, err)
		assert.False(t, c.IsBase())
	})

	t.Run("rejects malformed codes", func(t *testing.T) {
		_, err := NewCurrency("", "x")
		assert.Error(t, err)
		_, err = NewCurrency("US", "x")
		assert.Error(t, err)
	})
}
