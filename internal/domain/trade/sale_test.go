package trade

import (
	"testing"

	"github.com/boutikla/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSale(t *testing.T, cur valueobject.Currency, rate string, credit bool) *Sale {
	t.Helper()
	sale, err := NewSale(uuid.New(), "Jean Baptiste", cur, decimal.RequireFromString(rate), credit, uuid.New())
	require.NoError(t, err)
	return sale
}

func TestNewSale(t *testing.T) {
	t.Run("creates pending sale with frozen rate", func(t *testing.T) {
		sale := newTestSale(t, valueobject.HTG, "132.50", false)

		assert.Equal(t, SaleStatusPending, sale.Status)
		assert.Equal(t, valueobject.HTG, sale.Currency)
		assert.True(t, sale.ExchangeRate.Equal(decimal.RequireFromString("132.50")))
		assert.True(t, sale.TotalAmount.IsZero())
		assert.False(t, sale.CreditSale)
	})

	t.Run("rejects nil client", func(t *testing.T) {
		_, err := NewSale(uuid.Nil, "X", valueobject.USD, decimal.NewFromInt(1), false, uuid.New())
		assert.Error(t, err)
	})

	t.Run("rejects non-positive exchange rate", func(t *testing.T) {
		_, err := NewSale(uuid.New(), "X", valueobject.HTG, decimal.Zero, false, uuid.New())
		assert.Error(t, err)
	})

	t.Run("rejects unknown currency", func(t *testing.T) {
		_, err := NewSale(uuid.New(), "X", valueobject.Currency("EUR"), decimal.NewFromInt(1), false, uuid.New())
		assert.Error(t, err)
	})
}

func TestSaleAddItem(t *testing.T) {
	t.Run("line total applies tax and discount per unit", func(t *testing.T) {
		sale := newTestSale(t, valueobject.USD, "130", false)

		item, err := sale.AddItem(uuid.New(), "Rice 25lb", 3,
			decimal.NewFromInt(10), decimal.NewFromInt(10), decimal.Zero)
		require.NoError(t, err)

		assert.True(t, item.LineTotal.Equal(decimal.NewFromInt(33)),
			"expected 33, got %s", item.LineTotal)
		assert.True(t, sale.TotalAmount.Equal(decimal.NewFromInt(33)))
	})

	t.Run("unit price converts from base price in HTG sales", func(t *testing.T) {
		sale := newTestSale(t, valueobject.HTG, "130", false)

		item, err := sale.AddItem(uuid.New(), "Rice 25lb", 2,
			decimal.NewFromInt(10), decimal.Zero, decimal.Zero)
		require.NoError(t, err)

		assert.True(t, item.UnitPrice.Equal(decimal.NewFromInt(1300)))
		assert.True(t, item.LineTotal.Equal(decimal.NewFromInt(2600)))
		assert.True(t, item.BasePrice.Equal(decimal.NewFromInt(10)), "base price stays in USD")
	})

	t.Run("rejects duplicate product", func(t *testing.T) {
		sale := newTestSale(t, valueobject.USD, "130", false)
		productID := uuid.New()

		_, err := sale.AddItem(productID, "Rice", 1, decimal.NewFromInt(5), decimal.Zero, decimal.Zero)
		require.NoError(t, err)

		_, err = sale.AddItem(productID, "Rice", 1, decimal.NewFromInt(5), decimal.Zero, decimal.Zero)
		assert.Error(t, err)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		sale := newTestSale(t, valueobject.USD, "130", false)
		_, err := sale.AddItem(uuid.New(), "Rice", 0, decimal.NewFromInt(5), decimal.Zero, decimal.Zero)
		assert.Error(t, err)
	})
}

func TestSaleRateFrozen(t *testing.T) {
	// a later rate change must not alter the sale's pricing
	sale := newTestSale(t, valueobject.HTG, "130", false)
	_, err := sale.AddItem(uuid.New(), "Oil", 1, decimal.NewFromInt(4), decimal.Zero, decimal.Zero)
	require.NoError(t, err)

	before := sale.TotalAmount

	err = sale.UpdateItem(sale.Items[0].ProductID, 1, decimal.Zero, decimal.Zero)
	require.NoError(t, err)

	assert.True(t, sale.TotalAmount.Equal(before))
	assert.True(t, sale.ExchangeRate.Equal(decimal.NewFromInt(130)))
}

func TestSaleModificationRules(t *testing.T) {
	t.Run("credit sale lines are locked", func(t *testing.T) {
		sale := newTestSale(t, valueobject.USD, "130", true)
		productID := uuid.New()
		_, err := sale.AddItem(productID, "Rice", 2, decimal.NewFromInt(5), decimal.Zero, decimal.Zero)
		require.NoError(t, err)

		assert.False(t, sale.CanModify())
		assert.Error(t, sale.UpdateItem(productID, 3, decimal.Zero, decimal.Zero))
		assert.Error(t, sale.RemoveItem(productID))
	})

	t.Run("completed sale rejects edits", func(t *testing.T) {
		sale := newTestSale(t, valueobject.USD, "130", false)
		productID := uuid.New()
		_, err := sale.AddItem(productID, "Rice", 2, decimal.NewFromInt(5), decimal.Zero, decimal.Zero)
		require.NoError(t, err)
		require.NoError(t, sale.MarkCompleted())

		assert.Error(t, sale.UpdateItem(productID, 3, decimal.Zero, decimal.Zero))
		_, err = sale.AddItem(uuid.New(), "Oil", 1, decimal.NewFromInt(1), decimal.Zero, decimal.Zero)
		assert.Error(t, err)
	})

	t.Run("pending non-credit sale accepts edits", func(t *testing.T) {
		sale := newTestSale(t, valueobject.USD, "130", false)
		productID := uuid.New()
		_, err := sale.AddItem(productID, "Rice", 2, decimal.NewFromInt(5), decimal.Zero, decimal.Zero)
		require.NoError(t, err)

		require.NoError(t, sale.UpdateItem(productID, 4, decimal.Zero, decimal.NewFromInt(50)))
		assert.True(t, sale.TotalAmount.Equal(decimal.NewFromInt(10)), "4 * (5 - 2.50)")

		require.NoError(t, sale.RemoveItem(productID))
		assert.True(t, sale.TotalAmount.IsZero())
	})
}

func TestSaleLifecycle(t *testing.T) {
	t.Run("commit requires at least one line", func(t *testing.T) {
		sale := newTestSale(t, valueobject.USD, "130", false)
		assert.Error(t, sale.Commit())
	})

	t.Run("commit records created event with stock lines", func(t *testing.T) {
		sale := newTestSale(t, valueobject.USD, "130", false)
		productID := uuid.New()
		_, err := sale.AddItem(productID, "Rice", 2, decimal.NewFromInt(5), decimal.Zero, decimal.Zero)
		require.NoError(t, err)
		require.NoError(t, sale.Commit())

		events := sale.GetDomainEvents()
		require.Len(t, events, 1)
		created, ok := events[0].(*SaleCreatedEvent)
		require.True(t, ok)
		assert.Equal(t, productID, created.Lines[0].ProductID)
		assert.Equal(t, 2, created.Lines[0].Quantity)
	})

	t.Run("cancel records canceled event and allows delete", func(t *testing.T) {
		sale := newTestSale(t, valueobject.USD, "130", false)
		_, err := sale.AddItem(uuid.New(), "Rice", 2, decimal.NewFromInt(5), decimal.Zero, decimal.Zero)
		require.NoError(t, err)

		assert.False(t, sale.CanDelete())
		require.NoError(t, sale.Cancel())
		assert.True(t, sale.CanDelete())
		assert.Error(t, sale.Cancel(), "double cancel rejected")
	})

	t.Run("cannot complete a canceled sale", func(t *testing.T) {
		sale := newTestSale(t, valueobject.USD, "130", false)
		require.NoError(t, sale.Cancel())
		assert.Error(t, sale.MarkCompleted())
	})
}
