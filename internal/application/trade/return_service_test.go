package trade

import (
	"context"
	"testing"

	"github.com/boutikla/backend/internal/domain/finance"
	"github.com/boutikla/backend/internal/domain/shared"
	"github.com/boutikla/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockReturnRepository struct {
	mock.Mock
}

func (m *MockReturnRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Return, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Return), args.Error(1)
}

func (m *MockReturnRepository) FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[*trade.Return], error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[*trade.Return]), args.Error(1)
}

func (m *MockReturnRepository) Save(ctx context.Context, ret *trade.Return) error {
	args := m.Called(ctx, ret)
	return args.Error(0)
}

func (m *MockReturnRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockReturnRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReturnRepository) FindBySale(ctx context.Context, saleID uuid.UUID) ([]*trade.Return, error) {
	args := m.Called(ctx, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*trade.Return), args.Error(1)
}

func (m *MockReturnRepository) ReturnedQuantity(ctx context.Context, saleID, productID uuid.UUID) (int, error) {
	args := m.Called(ctx, saleID, productID)
	return args.Int(0), args.Error(1)
}

type MockRefundRepository struct {
	mock.Mock
}

func (m *MockRefundRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Refund, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Refund), args.Error(1)
}

func (m *MockRefundRepository) FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[*finance.Refund], error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[*finance.Refund]), args.Error(1)
}

func (m *MockRefundRepository) Save(ctx context.Context, refund *finance.Refund) error {
	args := m.Called(ctx, refund)
	return args.Error(0)
}

func (m *MockRefundRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRefundRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRefundRepository) FindBySale(ctx context.Context, saleID uuid.UUID) (*finance.Refund, error) {
	args := m.Called(ctx, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Refund), args.Error(1)
}

type MockRefundPaymentRepository struct {
	mock.Mock
}

func (m *MockRefundPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.RefundPayment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.RefundPayment), args.Error(1)
}

func (m *MockRefundPaymentRepository) FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[*finance.RefundPayment], error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[*finance.RefundPayment]), args.Error(1)
}

func (m *MockRefundPaymentRepository) Save(ctx context.Context, payment *finance.RefundPayment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockRefundPaymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRefundPaymentRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRefundPaymentRepository) FindByRefund(ctx context.Context, refundID uuid.UUID) ([]*finance.RefundPayment, error) {
	args := m.Called(ctx, refundID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*finance.RefundPayment), args.Error(1)
}

func (m *MockRefundPaymentRepository) ActiveTotal(ctx context.Context, refundID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, refundID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func newSaleWithLine(t *testing.T, quantity int) (*trade.Sale, uuid.UUID) {
	t.Helper()
	productID := uuid.New()
	sale, err := trade.NewSale(uuid.New(), "Marie Joseph", "USD", decimal.RequireFromString("130"), false, uuid.New())
	require.NoError(t, err)
	_, err = sale.AddItem(productID, "Rice 25lb", quantity, decimal.RequireFromString("10"), decimal.Zero, decimal.Zero)
	require.NoError(t, err)
	return sale, productID
}

func TestReturnService_Create(t *testing.T) {
	t.Run("creates the refund ledger on the first return", func(t *testing.T) {
		returnRepo := new(MockReturnRepository)
		saleRepo := new(MockSaleRepository)
		refundRepo := new(MockRefundRepository)
		refundPaymentRepo := new(MockRefundPaymentRepository)
		publisher := new(MockEventPublisher)
		svc := NewReturnService(returnRepo, saleRepo, refundRepo, refundPaymentRepo, immediateTx{}, publisher, zap.NewNop())

		sale, productID := newSaleWithLine(t, 5)

		saleRepo.On("FindByID", mock.Anything, sale.ID).Return(sale, nil)
		returnRepo.On("ReturnedQuantity", mock.Anything, sale.ID, productID).Return(0, nil)
		returnRepo.On("Save", mock.Anything, mock.AnythingOfType("*trade.Return")).Return(nil)
		refundRepo.On("FindBySale", mock.Anything, sale.ID).Return(nil, shared.ErrNotFound)
		refundRepo.On("Save", mock.Anything, mock.MatchedBy(func(r *finance.Refund) bool {
			return r.SaleID == sale.ID && r.TotalRefundAmount.Equal(decimal.RequireFromString("20"))
		})).Return(nil)
		publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

		resp, err := svc.Create(context.Background(), uuid.New(), CreateReturnRequest{
			SaleID: sale.ID,
			Items:  []ReturnItemRequest{{ProductID: productID, Quantity: 2}},
		})

		require.NoError(t, err)
		assert.True(t, resp.TotalAmount.Equal(decimal.RequireFromString("20")))
		refundRepo.AssertExpectations(t)
	})

	t.Run("grows an existing refund on later returns", func(t *testing.T) {
		returnRepo := new(MockReturnRepository)
		saleRepo := new(MockSaleRepository)
		refundRepo := new(MockRefundRepository)
		refundPaymentRepo := new(MockRefundPaymentRepository)
		publisher := new(MockEventPublisher)
		svc := NewReturnService(returnRepo, saleRepo, refundRepo, refundPaymentRepo, immediateTx{}, publisher, zap.NewNop())

		sale, productID := newSaleWithLine(t, 5)
		refund, err := finance.NewRefund(sale.ID, sale.ClientID, sale.Currency, decimal.RequireFromString("20"), uuid.New())
		require.NoError(t, err)

		saleRepo.On("FindByID", mock.Anything, sale.ID).Return(sale, nil)
		returnRepo.On("ReturnedQuantity", mock.Anything, sale.ID, productID).Return(2, nil)
		returnRepo.On("Save", mock.Anything, mock.AnythingOfType("*trade.Return")).Return(nil)
		refundRepo.On("FindBySale", mock.Anything, sale.ID).Return(refund, nil)
		refundRepo.On("Save", mock.Anything, refund).Return(nil)
		publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

		_, err = svc.Create(context.Background(), uuid.New(), CreateReturnRequest{
			SaleID: sale.ID,
			Items:  []ReturnItemRequest{{ProductID: productID, Quantity: 1}},
		})

		require.NoError(t, err)
		assert.True(t, refund.TotalRefundAmount.Equal(decimal.RequireFromString("30")))
	})

	t.Run("rejects returning more than remains returnable", func(t *testing.T) {
		returnRepo := new(MockReturnRepository)
		saleRepo := new(MockSaleRepository)
		refundRepo := new(MockRefundRepository)
		refundPaymentRepo := new(MockRefundPaymentRepository)
		publisher := new(MockEventPublisher)
		svc := NewReturnService(returnRepo, saleRepo, refundRepo, refundPaymentRepo, immediateTx{}, publisher, zap.NewNop())

		sale, productID := newSaleWithLine(t, 5)

		saleRepo.On("FindByID", mock.Anything, sale.ID).Return(sale, nil)
		returnRepo.On("ReturnedQuantity", mock.Anything, sale.ID, productID).Return(4, nil)

		_, err := svc.Create(context.Background(), uuid.New(), CreateReturnRequest{
			SaleID: sale.ID,
			Items:  []ReturnItemRequest{{ProductID: productID, Quantity: 2}},
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "EXCEEDS_SOLD_QUANTITY", domainErr.Code)
		returnRepo.AssertNotCalled(t, "Save")
	})

	t.Run("rejects returns on a canceled sale", func(t *testing.T) {
		returnRepo := new(MockReturnRepository)
		saleRepo := new(MockSaleRepository)
		refundRepo := new(MockRefundRepository)
		refundPaymentRepo := new(MockRefundPaymentRepository)
		publisher := new(MockEventPublisher)
		svc := NewReturnService(returnRepo, saleRepo, refundRepo, refundPaymentRepo, immediateTx{}, publisher, zap.NewNop())

		sale, productID := newSaleWithLine(t, 5)
		require.NoError(t, sale.Cancel())

		saleRepo.On("FindByID", mock.Anything, sale.ID).Return(sale, nil)

		_, err := svc.Create(context.Background(), uuid.New(), CreateReturnRequest{
			SaleID: sale.ID,
			Items:  []ReturnItemRequest{{ProductID: productID, Quantity: 1}},
		})

		require.Error(t, err)
	})
}

func TestReturnService_Cancel(t *testing.T) {
	newActiveReturn := func(t *testing.T) (*trade.Return, *trade.Sale) {
		t.Helper()
		sale, productID := newSaleWithLine(t, 5)
		ret, err := trade.NewReturn(sale, uuid.New())
		require.NoError(t, err)
		require.NoError(t, ret.AddItem(sale.GetItemByProduct(productID), 2, 0))
		require.NoError(t, ret.Commit())
		ret.ClearDomainEvents()
		return ret, sale
	}

	t.Run("shrinks the refund and cancels the return", func(t *testing.T) {
		returnRepo := new(MockReturnRepository)
		saleRepo := new(MockSaleRepository)
		refundRepo := new(MockRefundRepository)
		refundPaymentRepo := new(MockRefundPaymentRepository)
		publisher := new(MockEventPublisher)
		svc := NewReturnService(returnRepo, saleRepo, refundRepo, refundPaymentRepo, immediateTx{}, publisher, zap.NewNop())

		ret, sale := newActiveReturn(t)
		refund, err := finance.NewRefund(sale.ID, sale.ClientID, sale.Currency, decimal.RequireFromString("20"), uuid.New())
		require.NoError(t, err)

		returnRepo.On("FindByID", mock.Anything, ret.ID).Return(ret, nil)
		refundRepo.On("FindBySale", mock.Anything, sale.ID).Return(refund, nil)
		refundPaymentRepo.On("ActiveTotal", mock.Anything, refund.ID).Return(decimal.Zero, nil)
		returnRepo.On("Save", mock.Anything, ret).Return(nil)
		refundRepo.On("Save", mock.Anything, refund).Return(nil)
		publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

		resp, err := svc.Cancel(context.Background(), ret.ID)

		require.NoError(t, err)
		assert.Equal(t, "canceled", resp.Status)
		assert.True(t, refund.TotalRefundAmount.IsZero())
	})

	t.Run("rejects canceling when the refund is already paid out", func(t *testing.T) {
		returnRepo := new(MockReturnRepository)
		saleRepo := new(MockSaleRepository)
		refundRepo := new(MockRefundRepository)
		refundPaymentRepo := new(MockRefundPaymentRepository)
		publisher := new(MockEventPublisher)
		svc := NewReturnService(returnRepo, saleRepo, refundRepo, refundPaymentRepo, immediateTx{}, publisher, zap.NewNop())

		ret, sale := newActiveReturn(t)
		refund, err := finance.NewRefund(sale.ID, sale.ClientID, sale.Currency, decimal.RequireFromString("20"), uuid.New())
		require.NoError(t, err)

		returnRepo.On("FindByID", mock.Anything, ret.ID).Return(ret, nil)
		refundRepo.On("FindBySale", mock.Anything, sale.ID).Return(refund, nil)
		refundPaymentRepo.On("ActiveTotal", mock.Anything, refund.ID).Return(decimal.RequireFromString("15"), nil)

		_, err = svc.Cancel(context.Background(), ret.ID)

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "EXCEEDS_REFUND_BALANCE", domainErr.Code)
		returnRepo.AssertNotCalled(t, "Save")
	})
}
