package trade

import (
	"context"
	"testing"

	"github.com/boutikla/backend/internal/domain/catalog"
	"github.com/boutikla/backend/internal/domain/finance"
	"github.com/boutikla/backend/internal/domain/partner"
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

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByBarcode(ctx context.Context, barcode string) (*catalog.Product, error) {
	args := m.Called(ctx, barcode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
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

type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Client), args.Error(1)
}

func (m *MockClientRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Client, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]partner.Client), args.Error(1)
}

func (m *MockClientRepository) Save(ctx context.Context, client *partner.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockClientRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

type FixedRateProvider struct {
	rate decimal.Decimal
}

func (p FixedRateProvider) CurrentRate(ctx context.Context) (decimal.Decimal, error) {
	return p.rate, nil
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

func newTestProduct(t *testing.T, name string, salePrice string, stock int) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(name, "", "", decimal.RequireFromString(salePrice), decimal.RequireFromString("1"), stock)
	require.NoError(t, err)
	return product
}

func newTestClient(t *testing.T) *partner.Client {
	t.Helper()
	client, err := partner.NewClient("Marie", "Joseph", nil, "", nil)
	require.NoError(t, err)
	return client
}

func TestSaleService_Create(t *testing.T) {
	t.Run("freezes the current rate and derives HTG prices", func(t *testing.T) {
		saleRepo := new(MockSaleRepository)
		clientRepo := new(MockClientRepository)
		productRepo := new(MockProductRepository)
		publisher := new(MockEventPublisher)
		paymentRepo := new(MockPaymentRepository)
		svc := NewSaleService(saleRepo, clientRepo, productRepo, paymentRepo, FixedRateProvider{decimal.RequireFromString("132.5")}, immediateTx{}, publisher, zap.NewNop())

		client := newTestClient(t)
		product := newTestProduct(t, "Rice 25lb", "10", 50)

		clientRepo.On("FindByID", mock.Anything, client.ID).Return(client, nil)
		productRepo.On("FindByIDs", mock.Anything, []uuid.UUID{product.ID}).Return([]catalog.Product{*product}, nil)
		saleRepo.On("Save", mock.Anything, mock.AnythingOfType("*trade.Sale")).Return(nil)
		publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

		resp, err := svc.Create(context.Background(), uuid.New(), CreateSaleRequest{
			ClientID: client.ID,
			Currency: "HTG",
			Items: []SaleItemRequest{
				{ProductID: product.ID, Quantity: 3},
			},
		})

		require.NoError(t, err)
		assert.Equal(t, "HTG", resp.Currency)
		assert.True(t, resp.ExchangeRate.Equal(decimal.RequireFromString("132.5")))
		// 10 USD * 132.5 = 1325 HTG per unit, 3975 for three
		assert.True(t, resp.Items[0].UnitPrice.Equal(decimal.RequireFromString("1325")), "unit price %s", resp.Items[0].UnitPrice)
		assert.True(t, resp.TotalAmount.Equal(decimal.RequireFromString("3975")), "total %s", resp.TotalAmount)
		assert.Equal(t, "Marie Joseph", resp.ClientName)
		saleRepo.AssertExpectations(t)
		publisher.AssertExpectations(t)
	})

	t.Run("rejects a sale exceeding available stock", func(t *testing.T) {
		saleRepo := new(MockSaleRepository)
		clientRepo := new(MockClientRepository)
		productRepo := new(MockProductRepository)
		publisher := new(MockEventPublisher)
		paymentRepo := new(MockPaymentRepository)
		svc := NewSaleService(saleRepo, clientRepo, productRepo, paymentRepo, FixedRateProvider{decimal.RequireFromString("130")}, immediateTx{}, publisher, zap.NewNop())

		client := newTestClient(t)
		product := newTestProduct(t, "Rice 25lb", "10", 2)

		clientRepo.On("FindByID", mock.Anything, client.ID).Return(client, nil)
		productRepo.On("FindByIDs", mock.Anything, mock.Anything).Return([]catalog.Product{*product}, nil)

		_, err := svc.Create(context.Background(), uuid.New(), CreateSaleRequest{
			ClientID: client.ID,
			Currency: "USD",
			Items: []SaleItemRequest{
				{ProductID: product.ID, Quantity: 5},
			},
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INSUFFICIENT_STOCK", domainErr.Code)
		saleRepo.AssertNotCalled(t, "Save")
	})

	t.Run("fails the sale when a stock movement handler fails", func(t *testing.T) {
		saleRepo := new(MockSaleRepository)
		clientRepo := new(MockClientRepository)
		productRepo := new(MockProductRepository)
		publisher := new(MockEventPublisher)
		paymentRepo := new(MockPaymentRepository)
		svc := NewSaleService(saleRepo, clientRepo, productRepo, paymentRepo, FixedRateProvider{decimal.RequireFromString("130")}, immediateTx{}, publisher, zap.NewNop())

		client := newTestClient(t)
		product := newTestProduct(t, "Rice 25lb", "10", 50)

		clientRepo.On("FindByID", mock.Anything, client.ID).Return(client, nil)
		productRepo.On("FindByIDs", mock.Anything, mock.Anything).Return([]catalog.Product{*product}, nil)
		saleRepo.On("Save", mock.Anything, mock.AnythingOfType("*trade.Sale")).Return(nil)
		publisher.On("Publish", mock.Anything, mock.Anything).Return(assert.AnError)

		_, err := svc.Create(context.Background(), uuid.New(), CreateSaleRequest{
			ClientID: client.ID,
			Currency: "USD",
			Items:    []SaleItemRequest{{ProductID: product.ID, Quantity: 1}},
		})

		require.ErrorIs(t, err, assert.AnError)
	})

	t.Run("rejects an unknown currency", func(t *testing.T) {
		saleRepo := new(MockSaleRepository)
		clientRepo := new(MockClientRepository)
		productRepo := new(MockProductRepository)
		publisher := new(MockEventPublisher)
		paymentRepo := new(MockPaymentRepository)
		svc := NewSaleService(saleRepo, clientRepo, productRepo, paymentRepo, FixedRateProvider{decimal.RequireFromString("130")}, immediateTx{}, publisher, zap.NewNop())

		client := newTestClient(t)
		clientRepo.On("FindByID", mock.Anything, client.ID).Return(client, nil)

		_, err := svc.Create(context.Background(), uuid.New(), CreateSaleRequest{
			ClientID: client.ID,
			Currency: "EUR",
			Items:    []SaleItemRequest{{ProductID: uuid.New(), Quantity: 1}},
		})

		require.Error(t, err)
		saleRepo.AssertNotCalled(t, "Save")
	})
}

func TestSaleService_Update(t *testing.T) {
	newPendingSale := func(t *testing.T, product *catalog.Product, quantity int) *trade.Sale {
		t.Helper()
		sale, err := trade.NewSale(uuid.New(), "Marie Joseph", "USD", decimal.RequireFromString("130"), false, uuid.New())
		require.NoError(t, err)
		_, err = sale.AddItem(product.ID, product.Name, quantity, product.SalePrice, decimal.Zero, decimal.Zero)
		require.NoError(t, err)
		return sale
	}

	t.Run("adjusts stock by the quantity delta", func(t *testing.T) {
		saleRepo := new(MockSaleRepository)
		clientRepo := new(MockClientRepository)
		productRepo := new(MockProductRepository)
		publisher := new(MockEventPublisher)
		paymentRepo := new(MockPaymentRepository)
		svc := NewSaleService(saleRepo, clientRepo, productRepo, paymentRepo, FixedRateProvider{decimal.RequireFromString("130")}, immediateTx{}, publisher, zap.NewNop())

		product := newTestProduct(t, "Rice 25lb", "10", 8)
		sale := newPendingSale(t, product, 2)

		saleRepo.On("FindByID", mock.Anything, sale.ID).Return(sale, nil)
		productRepo.On("FindByIDs", mock.Anything, mock.Anything).Return([]catalog.Product{*product}, nil)
		paymentRepo.On("ActiveTotal", mock.Anything, sale.ID).Return(decimal.Zero, nil)
		saleRepo.On("Save", mock.Anything, sale).Return(nil)
		productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
		productRepo.On("Save", mock.Anything, mock.MatchedBy(func(p *catalog.Product) bool {
			return p.StockQuantity == 5 // 8 on hand minus the extra 3
		})).Return(nil)

		resp, err := svc.Update(context.Background(), sale.ID, UpdateSaleRequest{
			Items: []SaleItemRequest{
				{ProductID: product.ID, Quantity: 5},
			},
		})

		require.NoError(t, err)
		assert.Equal(t, 5, resp.Items[0].Quantity)
		productRepo.AssertExpectations(t)
	})

	t.Run("rejects editing a credit sale", func(t *testing.T) {
		saleRepo := new(MockSaleRepository)
		clientRepo := new(MockClientRepository)
		productRepo := new(MockProductRepository)
		publisher := new(MockEventPublisher)
		paymentRepo := new(MockPaymentRepository)
		svc := NewSaleService(saleRepo, clientRepo, productRepo, paymentRepo, FixedRateProvider{decimal.RequireFromString("130")}, immediateTx{}, publisher, zap.NewNop())

		product := newTestProduct(t, "Rice 25lb", "10", 8)
		sale, err := trade.NewSale(uuid.New(), "Marie Joseph", "USD", decimal.RequireFromString("130"), true, uuid.New())
		require.NoError(t, err)
		_, err = sale.AddItem(product.ID, product.Name, 2, product.SalePrice, decimal.Zero, decimal.Zero)
		require.NoError(t, err)

		saleRepo.On("FindByID", mock.Anything, sale.ID).Return(sale, nil)

		_, err = svc.Update(context.Background(), sale.ID, UpdateSaleRequest{
			Items: []SaleItemRequest{{ProductID: product.ID, Quantity: 5}},
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
	})

	t.Run("rejects a total below the amount already paid", func(t *testing.T) {
		saleRepo := new(MockSaleRepository)
		clientRepo := new(MockClientRepository)
		productRepo := new(MockProductRepository)
		publisher := new(MockEventPublisher)
		paymentRepo := new(MockPaymentRepository)
		svc := NewSaleService(saleRepo, clientRepo, productRepo, paymentRepo, FixedRateProvider{decimal.RequireFromString("130")}, immediateTx{}, publisher, zap.NewNop())

		product := newTestProduct(t, "Rice 25lb", "10", 8)
		sale := newPendingSale(t, product, 2) // total 20 USD

		saleRepo.On("FindByID", mock.Anything, sale.ID).Return(sale, nil)
		productRepo.On("FindByIDs", mock.Anything, mock.Anything).Return([]catalog.Product{*product}, nil)
		paymentRepo.On("ActiveTotal", mock.Anything, sale.ID).Return(decimal.NewFromInt(15), nil)

		_, err := svc.Update(context.Background(), sale.ID, UpdateSaleRequest{
			Items: []SaleItemRequest{{ProductID: product.ID, Quantity: 1}},
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "EXCEEDS_BALANCE", domainErr.Code)
		saleRepo.AssertNotCalled(t, "Save")
	})
}

func TestSaleService_Cancel(t *testing.T) {
	t.Run("publishes the canceled event for stock restoration", func(t *testing.T) {
		saleRepo := new(MockSaleRepository)
		clientRepo := new(MockClientRepository)
		productRepo := new(MockProductRepository)
		publisher := new(MockEventPublisher)
		paymentRepo := new(MockPaymentRepository)
		svc := NewSaleService(saleRepo, clientRepo, productRepo, paymentRepo, FixedRateProvider{decimal.RequireFromString("130")}, immediateTx{}, publisher, zap.NewNop())

		product := newTestProduct(t, "Rice 25lb", "10", 8)
		sale, err := trade.NewSale(uuid.New(), "Marie Joseph", "USD", decimal.RequireFromString("130"), false, uuid.New())
		require.NoError(t, err)
		_, err = sale.AddItem(product.ID, product.Name, 2, product.SalePrice, decimal.Zero, decimal.Zero)
		require.NoError(t, err)

		saleRepo.On("FindByID", mock.Anything, sale.ID).Return(sale, nil)
		saleRepo.On("Save", mock.Anything, sale).Return(nil)
		publisher.On("Publish", mock.Anything, mock.MatchedBy(func(events []shared.DomainEvent) bool {
			if len(events) != 1 {
				return false
			}
			_, ok := events[0].(*trade.SaleCanceledEvent)
			return ok
		})).Return(nil)

		resp, err := svc.Cancel(context.Background(), sale.ID)

		require.NoError(t, err)
		assert.Equal(t, "canceled", resp.Status)
		publisher.AssertExpectations(t)
	})
}

func TestSaleService_Delete(t *testing.T) {
	t.Run("rejects deleting a pending sale", func(t *testing.T) {
		saleRepo := new(MockSaleRepository)
		svc := NewSaleService(saleRepo, nil, nil, nil, FixedRateProvider{decimal.RequireFromString("130")}, immediateTx{}, nil, zap.NewNop())

		sale, err := trade.NewSale(uuid.New(), "Marie Joseph", "USD", decimal.RequireFromString("130"), false, uuid.New())
		require.NoError(t, err)

		saleRepo.On("FindByID", mock.Anything, sale.ID).Return(sale, nil)

		err = svc.Delete(context.Background(), sale.ID)

		require.Error(t, err)
		saleRepo.AssertNotCalled(t, "Delete")
	})
}
