package trade

import (
	"testing"

	"github.com/boutikla/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func saleWithLine(t *testing.T, quantity int) (*Sale, *SaleItem) {
	t.Helper()
	sale := newTestSale(t, valueobject.USD, "130", false)
	_, err := sale.AddItem(uuid.New(), "Rice 25lb", quantity,
		decimal.NewFromInt(10), decimal.NewFromInt(10), decimal.Zero)
	require.NoError(t, err)
	return sale, &sale.Items[0]
}

func TestNewReturn(t *testing.T) {
	t.Run("creates active return in the sale currency", func(t *testing.T) {
		sale, _ := saleWithLine(t, 5)
		r, err := NewReturn(sale, uuid.New())
		require.NoError(t, err)

		assert.Equal(t, ReturnStatusActive, r.Status)
		assert.Equal(t, sale.ID, r.SaleID)
		assert.Equal(t, sale.Currency, r.Currency)
	})

	t.Run("rejects canceled sale", func(t *testing.T) {
		sale, _ := saleWithLine(t, 5)
		require.NoError(t, sale.Cancel())
		_, err := NewReturn(sale, uuid.New())
		assert.Error(t, err)
	})
}

func TestReturnAddItem(t *testing.T) {
	t.Run("values returned units at the frozen unit price", func(t *testing.T) {
		sale, line := saleWithLine(t, 5)
		r, err := NewReturn(sale, uuid.New())
		require.NoError(t, err)

		// unit price 10; tax never inflates the credit, 2 back = 20
		require.NoError(t, r.AddItem(line, 2, 0))
		assert.True(t, r.TotalAmount.Equal(decimal.NewFromInt(20)),
			"expected 20, got %s", r.TotalAmount)
		assert.True(t, r.Items[0].UnitValue.Equal(line.UnitPrice))
	})

	t.Run("rejects quantity beyond sold quantity", func(t *testing.T) {
		sale, line := saleWithLine(t, 5)
		r, err := NewReturn(sale, uuid.New())
		require.NoError(t, err)

		assert.Error(t, r.AddItem(line, 6, 0))
	})

	t.Run("accounts for prior returns", func(t *testing.T) {
		sale, line := saleWithLine(t, 5)
		r, err := NewReturn(sale, uuid.New())
		require.NoError(t, err)

		assert.Error(t, r.AddItem(line, 3, 3))
		assert.NoError(t, r.AddItem(line, 2, 3))
	})

	t.Run("rejects missing line and non-positive quantity", func(t *testing.T) {
		sale, line := saleWithLine(t, 5)
		r, err := NewReturn(sale, uuid.New())
		require.NoError(t, err)

		assert.Error(t, r.AddItem(nil, 1, 0))
		assert.Error(t, r.AddItem(line, 0, 0))
	})
}

func TestReturnLifecycle(t *testing.T) {
	t.Run("commit requires a line and records the created event", func(t *testing.T) {
		sale, line := saleWithLine(t, 5)
		r, err := NewReturn(sale, uuid.New())
		require.NoError(t, err)

		assert.Error(t, r.Commit())

		require.NoError(t, r.AddItem(line, 2, 0))
		require.NoError(t, r.Commit())

		events := r.GetDomainEvents()
		require.Len(t, events, 1)
		created, ok := events[0].(*ReturnCreatedEvent)
		require.True(t, ok)
		assert.Equal(t, 2, created.Lines[0].Quantity)
		assert.True(t, created.TotalAmount.Equal(decimal.NewFromInt(20)))
	})

	t.Run("cancel is one-way and records the canceled event", func(t *testing.T) {
		sale, line := saleWithLine(t, 5)
		r, err := NewReturn(sale, uuid.New())
		require.NoError(t, err)
		require.NoError(t, r.AddItem(line, 2, 0))
		r.ClearDomainEvents()

		require.NoError(t, r.Cancel())
		assert.False(t, r.IsActive())
		assert.Error(t, r.Cancel())

		events := r.GetDomainEvents()
		require.Len(t, events, 1)
		_, ok := events[0].(*ReturnCanceledEvent)
		assert.True(t, ok)
	})
}
