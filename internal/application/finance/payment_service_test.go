package finance

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

// immediateTx runs the unit of work without a real transaction
type immediateTx struct{}

func (immediateTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[*finance.Payment], error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[*finance.Payment]), args.Error(1)
}

func (m *MockPaymentRepository) Save(ctx context.Context, payment *finance.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPaymentRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPaymentRepository) FindBySale(ctx context.Context, saleID uuid.UUID) ([]*finance.Payment, error) {
	args := m.Called(ctx, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*finance.Payment), args.Error(1)
}

func (m *MockPaymentRepository) ActiveTotal(ctx context.Context, saleID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, saleID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

type MockSaleRepository struct {
	mock.Mock
}

func (m *MockSaleRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Sale, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[*trade.Sale], error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[*trade.Sale]), args.Error(1)
}

func (m *MockSaleRepository) Save(ctx context.Context, sale *trade.Sale) error {
	args := m.Called(ctx, sale)
	return args.Error(0)
}

func (m *MockSaleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSaleRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSaleRepository) FindByClient(ctx context.Context, clientID uuid.UUID, filter shared.Filter) (*shared.Paginated[*trade.Sale], error) {
	args := m.Called(ctx, clientID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[*trade.Sale]), args.Error(1)
}

func (m *MockSaleRepository) FindByStatus(ctx context.Context, status trade.SaleStatus, filter shared.Filter) (*shared.Paginated[*trade.Sale], error) {
	args := m.Called(ctx, status, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[*trade.Sale]), args.Error(1)
}

func newTestSale(t *testing.T, totalQty int, unitPrice string) *trade.Sale {
	t.Helper()
	sale, err := trade.NewSale(uuid.New(), "Marie Joseph", "HTG", decimal.RequireFromString("130"), false, uuid.New())
	require.NoError(t, err)
	// basePrice in USD so the HTG unit price is basePrice * 130
	base := decimal.RequireFromString(unitPrice).Div(decimal.RequireFromString("130"))
	_, err = sale.AddItem(uuid.New(), "Rice 25lb", totalQty, base, decimal.Zero, decimal.Zero)
	require.NoError(t, err)
	sale.ClearDomainEvents()
	return sale
}

func TestPaymentService_Create(t *testing.T) {
	t.Run("records a partial payment without settling the sale", func(t *testing.T) {
		paymentRepo := new(MockPaymentRepository)
		saleRepo := new(MockSaleRepository)
		svc := NewPaymentService(paymentRepo, saleRepo, immediateTx{}, zap.NewNop())

		sale := newTestSale(t, 2, "650") // total 1300 HTG

		saleRepo.On("FindByID", mock.Anything, sale.ID).Return(sale, nil)
		paymentRepo.On("ActiveTotal", mock.Anything, sale.ID).Return(decimal.Zero, nil)
		paymentRepo.On("Save", mock.Anything, mock.AnythingOfType("*finance.Payment")).Return(nil)

		resp, err := svc.Create(context.Background(), uuid.New(), CreatePaymentRequest{
			SaleID: sale.ID,
			Amount: decimal.RequireFromString("500"),
			Method: "cash",
		})

		require.NoError(t, err)
		assert.Equal(t, "HTG", resp.Currency)
		assert.Equal(t, "active", resp.Status)
		assert.Equal(t, trade.SaleStatusPending, sale.Status)
		saleRepo.AssertNotCalled(t, "Save")
	})

	t.Run("settles the sale when the balance reaches zero", func(t *testing.T) {
		paymentRepo := new(MockPaymentRepository)
		saleRepo := new(MockSaleRepository)
		svc := NewPaymentService(paymentRepo, saleRepo, immediateTx{}, zap.NewNop())

		sale := newTestSale(t, 2, "650")

		saleRepo.On("FindByID", mock.Anything, sale.ID).Return(sale, nil)
		paymentRepo.On("ActiveTotal", mock.Anything, sale.ID).Return(decimal.RequireFromString("500"), nil)
		paymentRepo.On("Save", mock.Anything, mock.AnythingOfType("*finance.Payment")).Return(nil)
		saleRepo.On("Save", mock.Anything, sale).Return(nil)

		_, err := svc.Create(context.Background(), uuid.New(), CreatePaymentRequest{
			SaleID: sale.ID,
			Amount: decimal.RequireFromString("800"),
			Method: "cash",
		})

		require.NoError(t, err)
		assert.Equal(t, trade.SaleStatusCompleted, sale.Status)
		saleRepo.AssertExpectations(t)
	})

	t.Run("rejects a payment exceeding the remaining balance", func(t *testing.T) {
		paymentRepo := new(MockPaymentRepository)
		saleRepo := new(MockSaleRepository)
		svc := NewPaymentService(paymentRepo, saleRepo, immediateTx{}, zap.NewNop())

		sale := newTestSale(t, 2, "650")

		saleRepo.On("FindByID", mock.Anything, sale.ID).Return(sale, nil)
		paymentRepo.On("ActiveTotal", mock.Anything, sale.ID).Return(decimal.RequireFromString("1000"), nil)

		_, err := svc.Create(context.Background(), uuid.New(), CreatePaymentRequest{
			SaleID: sale.ID,
			Amount: decimal.RequireFromString("301"),
			Method: "cash",
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "EXCEEDS_BALANCE", domainErr.Code)
		paymentRepo.AssertNotCalled(t, "Save")
	})

	t.Run("rejects payments on a canceled sale", func(t *testing.T) {
		paymentRepo := new(MockPaymentRepository)
		saleRepo := new(MockSaleRepository)
		svc := NewPaymentService(paymentRepo, saleRepo, immediateTx{}, zap.NewNop())

		sale := newTestSale(t, 2, "650")
		require.NoError(t, sale.Cancel())

		saleRepo.On("FindByID", mock.Anything, sale.ID).Return(sale, nil)

		_, err := svc.Create(context.Background(), uuid.New(), CreatePaymentRequest{
			SaleID: sale.ID,
			Amount: decimal.RequireFromString("100"),
			Method: "cash",
		})

		require.Error(t, err)
		paymentRepo.AssertNotCalled(t, "Save")
	})

	t.Run("rejects an unknown method", func(t *testing.T) {
		paymentRepo := new(MockPaymentRepository)
		saleRepo := new(MockSaleRepository)
		svc := NewPaymentService(paymentRepo, saleRepo, immediateTx{}, zap.NewNop())

		sale := newTestSale(t, 2, "650")

		saleRepo.On("FindByID", mock.Anything, sale.ID).Return(sale, nil)
		paymentRepo.On("ActiveTotal", mock.Anything, sale.ID).Return(decimal.Zero, nil)

		_, err := svc.Create(context.Background(), uuid.New(), CreatePaymentRequest{
			SaleID: sale.ID,
			Amount: decimal.RequireFromString("100"),
			Method: "iou",
		})

		require.Error(t, err)
	})
}

func TestPaymentService_Delete(t *testing.T) {
	t.Run("rejects deleting an active payment", func(t *testing.T) {
		paymentRepo := new(MockPaymentRepository)
		svc := NewPaymentService(paymentRepo, nil, immediateTx{}, zap.NewNop())

		payment, err := finance.NewPayment(uuid.New(), decimal.RequireFromString("100"), "HTG", finance.PaymentMethodCash, "", uuid.New())
		require.NoError(t, err)

		paymentRepo.On("FindByID", mock.Anything, payment.ID).Return(payment, nil)

		err = svc.Delete(context.Background(), payment.ID)

		require.Error(t, err)
		paymentRepo.AssertNotCalled(t, "Delete")
	})

	t.Run("deletes a canceled payment", func(t *testing.T) {
		paymentRepo := new(MockPaymentRepository)
		svc := NewPaymentService(paymentRepo, nil, immediateTx{}, zap.NewNop())

		payment, err := finance.NewPayment(uuid.New(), decimal.RequireFromString("100"), "HTG", finance.PaymentMethodCash, "", uuid.New())
		require.NoError(t, err)
		require.NoError(t, payment.Cancel())

		paymentRepo.On("FindByID", mock.Anything, payment.ID).Return(payment, nil)
		paymentRepo.On("Delete", mock.Anything, payment.ID).Return(nil)

		err = svc.Delete(context.Background(), payment.ID)

		require.NoError(t, err)
		paymentRepo.AssertExpectations(t)
	})
}
