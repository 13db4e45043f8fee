package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProduct(t *testing.T, stock int) *Product {
	t.Helper()
	p, err := NewProduct("Rice 25lb", "Long grain rice", "0123456789", decimal.NewFromInt(30), decimal.NewFromInt(22), stock)
	require.NoError(t, err)
	return p
}

func TestNewProduct(t *testing.T) {
	t.Run("creates product with valid fields", func(t *testing.T) {
		p := newTestProduct(t, 10)
		assert.Equal(t, "Rice 25lb", p.Name)
		assert.Equal(t, 10, p.StockQuantity)
		assert.Equal(t, 1, p.GetVersion())
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewProduct("", "", "", decimal.Zero, decimal.Zero, 0)
		assert.Error(t, err)
	})

	t.Run("rejects negative price", func(t *testing.T) {
		_, err := NewProduct("x", "", "", decimal.NewFromInt(-1), decimal.Zero, 0)
		assert.Error(t, err)
	})

	t.Run("rejects negative stock", func(t *testing.T) {
		_, err := NewProduct("x", "", "", decimal.Zero, decimal.Zero, -1)
		assert.Error(t, err)
	})
}

func TestProductStock(t *testing.T) {
	t.Run("increase adds to on-hand count", func(t *testing.T) {
		p := newTestProduct(t, 5)
		require.NoError(t, p.IncreaseStock(3))
		assert.Equal(t, 8, p.StockQuantity)
	})

	t.Run("decrease removes from on-hand count", func(t *testing.T) {
		p := newTestProduct(t, 5)
		require.NoError(t, p.DecreaseStock(5))
		assert.Equal(t, 0, p.StockQuantity)
	})

	t.Run("decrease below zero is rejected", func(t *testing.T) {
		p := newTestProduct(t, 2)
		err := p.DecreaseStock(3)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Insufficient stock")
		assert.Equal(t, 2, p.StockQuantity)
	})

	t.Run("non-positive adjustments are rejected", func(t *testing.T) {
		p := newTestProduct(t, 2)
		assert.Error(t, p.IncreaseStock(0))
		assert.Error(t, p.DecreaseStock(-1))
	})

	t.Run("stock changes record domain events", func(t *testing.T) {
		p := newTestProduct(t, 5)
		require.NoError(t, p.IncreaseStock(2))
		require.NoError(t, p.DecreaseStock(1))

		events := p.GetDomainEvents()
		require.Len(t, events, 2)
		first, ok := events[0].(*ProductStockChangedEvent)
		require.True(t, ok)
		assert.Equal(t, 2, first.Delta)
		second := events[1].(*ProductStockChangedEvent)
		assert.Equal(t, -1, second.Delta)
		assert.Equal(t, 6, second.StockQuantity)
	})
}

func TestProductAssignCategories(t *testing.T) {
	p := newTestProduct(t, 1)
	a, b := uuid.New(), uuid.New()
	p.AssignCategories([]uuid.UUID{a, b, a, uuid.Nil})
	assert.Equal(t, []uuid.UUID{a, b}, p.CategoryIDs)
}

func TestProductUpdatePrices(t *testing.T) {
	p := newTestProduct(t, 1)
	require.NoError(t, p.UpdatePrices(decimal.NewFromInt(25), decimal.NewFromInt(35)))
	assert.True(t, p.PurchasePrice.Equal(decimal.NewFromInt(25)))
	assert.True(t, p.SalePrice.Equal(decimal.NewFromInt(35)))

	assert.Error(t, p.UpdatePrices(decimal.NewFromInt(-1), decimal.NewFromInt(1)))
}

func TestNewCategory(t *testing.T) {
	t.Run("creates category", func(t *testing.T) {
		c, err := NewCategory("Dry goods", "Shelf stable items")
		require.NoError(t, err)
		assert.Equal(t, "Dry goods", c.Name)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewCategory("", "")
		assert.Error(t, err)
	})
}
