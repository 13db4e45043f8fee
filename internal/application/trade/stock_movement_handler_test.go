package trade

import (
	"context"
	"testing"

	"github.com/boutikla/backend/internal/domain/catalog"
	"github.com/boutikla/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestStockMovementHandler_SaleCreated(t *testing.T) {
	t.Run("decreases stock for each line", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		handler := NewStockMovementHandler(productRepo, zap.NewNop())

		product := newTestProduct(t, "Rice 25lb", "10", 10)
		productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
		productRepo.On("Save", mock.Anything, product).Return(nil)

		sale, err := trade.NewSale(uuid.New(), "Marie Joseph", "USD", decimal.RequireFromString("130"), false, uuid.New())
		require.NoError(t, err)
		_, err = sale.AddItem(product.ID, product.Name, 4, product.SalePrice, decimal.Zero, decimal.Zero)
		require.NoError(t, err)

		err = handler.Handle(context.Background(), trade.NewSaleCreatedEvent(sale))

		require.NoError(t, err)
		assert.Equal(t, 6, product.StockQuantity)
	})

	t.Run("fails when stock would go negative", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		handler := NewStockMovementHandler(productRepo, zap.NewNop())

		product := newTestProduct(t, "Rice 25lb", "10", 2)
		productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)

		sale, err := trade.NewSale(uuid.New(), "Marie Joseph", "USD", decimal.RequireFromString("130"), false, uuid.New())
		require.NoError(t, err)
		_, err = sale.AddItem(product.ID, product.Name, 5, product.SalePrice, decimal.Zero, decimal.Zero)
		require.NoError(t, err)

		err = handler.Handle(context.Background(), trade.NewSaleCreatedEvent(sale))

		require.Error(t, err)
		productRepo.AssertNotCalled(t, "Save")
	})
}

func TestStockMovementHandler_PurchaseOrderCompleted(t *testing.T) {
	t.Run("receives stock and updates catalog prices when requested", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		handler := NewStockMovementHandler(productRepo, zap.NewNop())

		product := newTestProduct(t, "Rice 25lb", "10", 3)
		productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
		productRepo.On("Save", mock.Anything, product).Return(nil)

		order, err := trade.NewPurchaseOrder(uuid.New(), "Depot Fritz", uuid.New())
		require.NoError(t, err)
		_, err = order.AddItem(product.ID, product.Name, 20, decimal.RequireFromString("7.5"), decimal.RequireFromString("12"))
		require.NoError(t, err)
		require.NoError(t, order.Complete(true))

		var completed *trade.PurchaseOrderCompletedEvent
		for _, e := range order.GetDomainEvents() {
			if ev, ok := e.(*trade.PurchaseOrderCompletedEvent); ok {
				completed = ev
			}
		}
		require.NotNil(t, completed)

		err = handler.Handle(context.Background(), completed)

		require.NoError(t, err)
		assert.Equal(t, 23, product.StockQuantity)
		assert.True(t, product.PurchasePrice.Equal(decimal.RequireFromString("7.5")))
		assert.True(t, product.SalePrice.Equal(decimal.RequireFromString("12")))
	})

	t.Run("keeps catalog prices when not requested", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		handler := NewStockMovementHandler(productRepo, zap.NewNop())

		product := newTestProduct(t, "Rice 25lb", "10", 3)
		productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
		productRepo.On("Save", mock.Anything, product).Return(nil)

		order, err := trade.NewPurchaseOrder(uuid.New(), "Depot Fritz", uuid.New())
		require.NoError(t, err)
		_, err = order.AddItem(product.ID, product.Name, 20, decimal.RequireFromString("7.5"), decimal.RequireFromString("12"))
		require.NoError(t, err)
		require.NoError(t, order.Complete(false))

		var completed *trade.PurchaseOrderCompletedEvent
		for _, e := range order.GetDomainEvents() {
			if ev, ok := e.(*trade.PurchaseOrderCompletedEvent); ok {
				completed = ev
			}
		}
		require.NotNil(t, completed)

		err = handler.Handle(context.Background(), completed)

		require.NoError(t, err)
		assert.Equal(t, 23, product.StockQuantity)
		assert.True(t, product.SalePrice.Equal(decimal.RequireFromString("10")))
	})
}

func TestStockMovementHandler_ReturnEvents(t *testing.T) {
	newCommittedReturn := func(t *testing.T, product *catalog.Product, soldQty, returnQty int) *trade.Return {
		t.Helper()
		sale, err := trade.NewSale(uuid.New(), "Marie Joseph", "USD", decimal.RequireFromString("130"), false, uuid.New())
		require.NoError(t, err)
		_, err = sale.AddItem(product.ID, product.Name, soldQty, product.SalePrice, decimal.Zero, decimal.Zero)
		require.NoError(t, err)

		ret, err := trade.NewReturn(sale, uuid.New())
		require.NoError(t, err)
		require.NoError(t, ret.AddItem(sale.GetItemByProduct(product.ID), returnQty, 0))
		require.NoError(t, ret.Commit())
		return ret
	}

	t.Run("return created restores stock", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		handler := NewStockMovementHandler(productRepo, zap.NewNop())

		product := newTestProduct(t, "Rice 25lb", "10", 6)
		productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
		productRepo.On("Save", mock.Anything, product).Return(nil)

		ret := newCommittedReturn(t, product, 5, 2)

		err := handler.Handle(context.Background(), trade.NewReturnCreatedEvent(ret))

		require.NoError(t, err)
		assert.Equal(t, 8, product.StockQuantity)
	})

	t.Run("return canceled takes the stock back out", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		handler := NewStockMovementHandler(productRepo, zap.NewNop())

		product := newTestProduct(t, "Rice 25lb", "10", 8)
		productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
		productRepo.On("Save", mock.Anything, product).Return(nil)

		ret := newCommittedReturn(t, product, 5, 2)

		err := handler.Handle(context.Background(), trade.NewReturnCanceledEvent(ret))

		require.NoError(t, err)
		assert.Equal(t, 6, product.StockQuantity)
	})
}

func TestStockMovementHandler_EventTypes(t *testing.T) {
	handler := NewStockMovementHandler(nil, zap.NewNop())
	types := handler.EventTypes()
	assert.Contains(t, types, trade.EventTypeSaleCreated)
	assert.Contains(t, types, trade.EventTypeSaleCanceled)
	assert.Contains(t, types, trade.EventTypePurchaseOrderCompleted)
	assert.Contains(t, types, trade.EventTypeReturnCreated)
	assert.Contains(t, types, trade.EventTypeReturnCanceled)
}
