package trade

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrder(t *testing.T) *PurchaseOrder {
	t.Helper()
	order, err := NewPurchaseOrder(uuid.New(), "Distributions Moreau", uuid.New())
	require.NoError(t, err)
	return order
}

func TestNewPurchaseOrder(t *testing.T) {
	t.Run("creates pending order with created event", func(t *testing.T) {
		order := newTestOrder(t)

		assert.Equal(t, PurchaseOrderStatusPending, order.Status)
		assert.True(t, order.TotalAmount.IsZero())
		assert.Len(t, order.GetDomainEvents(), 1)
	})

	t.Run("rejects nil supplier", func(t *testing.T) {
		_, err := NewPurchaseOrder(uuid.Nil, "X", uuid.New())
		assert.Error(t, err)
	})
}

func TestPurchaseOrderAddItem(t *testing.T) {
	t.Run("amount is quantity times purchase price", func(t *testing.T) {
		order := newTestOrder(t)

		item, err := order.AddItem(uuid.New(), "Flour 50lb", 10,
			decimal.NewFromInt(20), decimal.NewFromInt(28))
		require.NoError(t, err)

		assert.True(t, item.Amount.Equal(decimal.NewFromInt(200)))
		assert.True(t, order.TotalAmount.Equal(decimal.NewFromInt(200)))
	})

	t.Run("rejects duplicate product", func(t *testing.T) {
		order := newTestOrder(t)
		productID := uuid.New()

		_, err := order.AddItem(productID, "Flour", 1, decimal.NewFromInt(2), decimal.NewFromInt(3))
		require.NoError(t, err)

		_, err = order.AddItem(productID, "Flour", 1, decimal.NewFromInt(2), decimal.NewFromInt(3))
		assert.Error(t, err)
	})
}

func TestPurchaseOrderComplete(t *testing.T) {
	t.Run("completes with price update flag on the event", func(t *testing.T) {
		order := newTestOrder(t)
		productID := uuid.New()
		_, err := order.AddItem(productID, "Flour", 10, decimal.NewFromInt(20), decimal.NewFromInt(28))
		require.NoError(t, err)
		order.ClearDomainEvents()

		require.NoError(t, order.Complete(true))

		assert.Equal(t, PurchaseOrderStatusCompleted, order.Status)
		require.NotNil(t, order.CompletedAt)

		events := order.GetDomainEvents()
		require.Len(t, events, 1)
		completed, ok := events[0].(*PurchaseOrderCompletedEvent)
		require.True(t, ok)
		assert.True(t, completed.UpdatePrices)
		require.Len(t, completed.Lines, 1)
		assert.Equal(t, productID, completed.Lines[0].ProductID)
		assert.Equal(t, 10, completed.Lines[0].Quantity)
		assert.True(t, completed.Lines[0].SalePrice.Equal(decimal.NewFromInt(28)))
	})

	t.Run("rejects empty order", func(t *testing.T) {
		order := newTestOrder(t)
		assert.Error(t, order.Complete(false))
	})

	t.Run("rejects double complete", func(t *testing.T) {
		order := newTestOrder(t)
		_, err := order.AddItem(uuid.New(), "Flour", 1, decimal.NewFromInt(2), decimal.NewFromInt(3))
		require.NoError(t, err)
		require.NoError(t, order.Complete(false))
		assert.Error(t, order.Complete(false))
	})
}

func TestPurchaseOrderCancel(t *testing.T) {
	t.Run("cancels a pending order", func(t *testing.T) {
		order := newTestOrder(t)
		require.NoError(t, order.Cancel())
		assert.Equal(t, PurchaseOrderStatusCanceled, order.Status)
		assert.NotNil(t, order.CanceledAt)
	})

	t.Run("rejects canceling a completed order", func(t *testing.T) {
		order := newTestOrder(t)
		_, err := order.AddItem(uuid.New(), "Flour", 1, decimal.NewFromInt(2), decimal.NewFromInt(3))
		require.NoError(t, err)
		require.NoError(t, order.Complete(false))
		assert.Error(t, order.Cancel())
	})

	t.Run("locks items after cancel", func(t *testing.T) {
		order := newTestOrder(t)
		require.NoError(t, order.Cancel())
		_, err := order.AddItem(uuid.New(), "Flour", 1, decimal.NewFromInt(2), decimal.NewFromInt(3))
		assert.Error(t, err)
	})
}
