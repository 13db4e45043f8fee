package trade

import (
	"context"

	"github.com/boutikla/backend/internal/domain/catalog"
	"github.com/boutikla/backend/internal/domain/finance"
	"github.com/boutikla/backend/internal/domain/partner"
	"github.com/boutikla/backend/internal/domain/shared"
	"github.com/boutikla/backend/internal/domain/shared/valueobject"
	"github.com/boutikla/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// RateProvider supplies the exchange rate frozen onto new sales
type RateProvider interface {
	CurrentRate(ctx context.Context) (decimal.Decimal, error)
}

// SaleService handles sale operations. Stock decrements and restorations run
// in event handlers within the request, inside the same transaction as the
// sale write; the service pre-validates stock sufficiency before committing
// so a sale can never oversell.
type SaleService struct {
	saleRepo    trade.SaleRepository
	clientRepo  partner.ClientRepository
	productRepo catalog.ProductRepository
	paymentRepo finance.PaymentRepository
	rates       RateProvider
	tx          shared.TransactionManager
	publisher   shared.EventPublisher
	logger      *zap.Logger
}

// NewSaleService creates a new SaleService
func NewSaleService(
	saleRepo trade.SaleRepository,
	clientRepo partner.ClientRepository,
	productRepo catalog.ProductRepository,
	paymentRepo finance.PaymentRepository,
	rates RateProvider,
	tx shared.TransactionManager,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *SaleService {
	return &SaleService{
		saleRepo:    saleRepo,
		clientRepo:  clientRepo,
		productRepo: productRepo,
		paymentRepo: paymentRepo,
		rates:       rates,
		tx:          tx,
		publisher:   publisher,
		logger:      logger,
	}
}

// Create records a sale, freezing the current exchange rate and the client
// and product names. Unit prices always derive from the catalog's USD price
// and the frozen rate.
func (s *SaleService) Create(ctx context.Context, createdBy uuid.UUID, req CreateSaleRequest) (*SaleResponse, error) {
	client, err := s.clientRepo.FindByID(ctx, req.ClientID)
	if err != nil {
		return nil, err
	}

	cur := valueobject.Currency(req.Currency)
	if !cur.IsValid() {
		return nil, shared.NewDomainError("INVALID_CURRENCY", "Unknown currency code")
	}

	rate, err := s.rates.CurrentRate(ctx)
	if err != nil {
		return nil, err
	}

	products, err := s.loadProducts(ctx, saleProductIDs(req.Items))
	if err != nil {
		return nil, err
	}

	sale, err := trade.NewSale(client.ID, client.FullName(), cur, rate, req.CreditSale, createdBy)
	if err != nil {
		return nil, err
	}

	for _, line := range req.Items {
		product, ok := products[line.ProductID]
		if !ok {
			return nil, shared.NewDomainError("PRODUCT_NOT_FOUND", "Product does not exist: "+line.ProductID.String())
		}
		if product.StockQuantity < line.Quantity {
			return nil, shared.NewDomainError("INSUFFICIENT_STOCK", "Insufficient stock for "+product.Name)
		}
		if _, err := sale.AddItem(product.ID, product.Name, line.Quantity, product.SalePrice, line.TaxPercent, line.DiscountPercent); err != nil {
			return nil, err
		}
	}

	if req.Remarks != "" {
		sale.SetRemarks(req.Remarks)
	}

	if err := sale.Commit(); err != nil {
		return nil, err
	}

	if err := s.tx.Do(ctx, func(ctx context.Context) error {
		if err := s.saleRepo.Save(ctx, sale); err != nil {
			return err
		}
		return s.publisher.Publish(ctx, sale.GetDomainEvents()...)
	}); err != nil {
		return nil, err
	}
	sale.ClearDomainEvents()

	response := ToSaleResponse(sale)
	return &response, nil
}

// GetByID retrieves a sale with its lines
func (s *SaleService) GetByID(ctx context.Context, id uuid.UUID) (*SaleResponse, error) {
	sale, err := s.saleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := ToSaleResponse(sale)
	return &response, nil
}

// List retrieves sales with filtering and pagination
func (s *SaleService) List(ctx context.Context, filter SaleListFilter) ([]SaleResponse, int64, error) {
	domainFilter := buildFilter(filter.ListFilter, "created_at", "desc")

	if filter.ClientID != nil {
		domainFilter.Filters["client_id"] = *filter.ClientID
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.Currency != "" {
		domainFilter.Filters["currency"] = filter.Currency
	}
	if filter.CreditSale != nil {
		domainFilter.Filters["credit_sale"] = *filter.CreditSale
	}
	if filter.StartDate != nil {
		domainFilter.Filters["start_date"] = *filter.StartDate
	}
	if filter.EndDate != nil {
		domainFilter.Filters["end_date"] = *filter.EndDate
	}

	page, err := s.saleRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]SaleResponse, len(page.Items))
	for i, sale := range page.Items {
		responses[i] = ToSaleResponse(sale)
	}
	return responses, page.Total, nil
}

// Update replaces the lines of a pending non-credit sale. Stock is adjusted
// by the per-product delta between the old and new lines; each line's unit
// price re-derives from the catalog price and the sale's frozen rate.
func (s *SaleService) Update(ctx context.Context, id uuid.UUID, req UpdateSaleRequest) (*SaleResponse, error) {
	sale, err := s.saleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !sale.CanModify() {
		return nil, shared.NewDomainError("INVALID_STATE", "Sale lines are locked: only pending non-credit sales can be edited")
	}

	products, err := s.loadProducts(ctx, saleProductIDs(req.Items))
	if err != nil {
		return nil, err
	}

	oldQuantities := make(map[uuid.UUID]int, len(sale.Items))
	for _, item := range sale.Items {
		oldQuantities[item.ProductID] = item.Quantity
	}

	// Validate the per-product stock deltas before touching anything
	for _, line := range req.Items {
		product, ok := products[line.ProductID]
		if !ok {
			return nil, shared.NewDomainError("PRODUCT_NOT_FOUND", "Product does not exist: "+line.ProductID.String())
		}
		delta := line.Quantity - oldQuantities[line.ProductID]
		if delta > 0 && product.StockQuantity < delta {
			return nil, shared.NewDomainError("INSUFFICIENT_STOCK", "Insufficient stock for "+product.Name)
		}
	}

	newQuantities := make(map[uuid.UUID]int, len(req.Items))
	for _, line := range req.Items {
		newQuantities[line.ProductID] = line.Quantity
	}

	// Drop removed lines, update survivors, add new ones
	for productID := range oldQuantities {
		if _, keep := newQuantities[productID]; !keep {
			if err := sale.RemoveItem(productID); err != nil {
				return nil, err
			}
		}
	}
	for _, line := range req.Items {
		if _, existed := oldQuantities[line.ProductID]; existed {
			if err := sale.UpdateItem(line.ProductID, line.Quantity, line.TaxPercent, line.DiscountPercent); err != nil {
				return nil, err
			}
		} else {
			product := products[line.ProductID]
			if _, err := sale.AddItem(product.ID, product.Name, line.Quantity, product.SalePrice, line.TaxPercent, line.DiscountPercent); err != nil {
				return nil, err
			}
		}
	}
	if len(sale.Items) == 0 {
		return nil, shared.NewDomainError("NO_ITEMS", "A sale requires at least one product line")
	}
	sale.SetRemarks(req.Remarks)

	// The new total must still cover what has already been collected
	paid, err := s.paymentRepo.ActiveTotal(ctx, sale.ID)
	if err != nil {
		return nil, err
	}
	if sale.TotalAmount.LessThan(paid) {
		return nil, shared.NewDomainError("EXCEEDS_BALANCE", "Sale total cannot drop below the amount already paid")
	}

	if err := s.tx.Do(ctx, func(ctx context.Context) error {
		if err := s.saleRepo.Save(ctx, sale); err != nil {
			return err
		}
		return s.applyStockDeltas(ctx, oldQuantities, newQuantities)
	}); err != nil {
		return nil, err
	}

	response := ToSaleResponse(sale)
	return &response, nil
}

// Cancel voids a sale; the canceled event handler restores the sold stock
func (s *SaleService) Cancel(ctx context.Context, id uuid.UUID) (*SaleResponse, error) {
	sale, err := s.saleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := sale.Cancel(); err != nil {
		return nil, err
	}

	if err := s.tx.Do(ctx, func(ctx context.Context) error {
		if err := s.saleRepo.Save(ctx, sale); err != nil {
			return err
		}
		return s.publisher.Publish(ctx, sale.GetDomainEvents()...)
	}); err != nil {
		return nil, err
	}
	sale.ClearDomainEvents()

	response := ToSaleResponse(sale)
	return &response, nil
}

// Delete physically removes a sale. Only canceled sales may be deleted so
// stock and finance history stay consistent.
func (s *SaleService) Delete(ctx context.Context, id uuid.UUID) error {
	sale, err := s.saleRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !sale.CanDelete() {
		return shared.NewDomainError("INVALID_STATE", "Only canceled sales can be deleted")
	}
	return s.saleRepo.Delete(ctx, id)
}

// applyStockDeltas adjusts product stock by the difference between old and
// new line quantities after a sale edit
func (s *SaleService) applyStockDeltas(ctx context.Context, oldQuantities, newQuantities map[uuid.UUID]int) error {
	deltas := make(map[uuid.UUID]int)
	for productID, qty := range newQuantities {
		deltas[productID] = qty - oldQuantities[productID]
	}
	for productID, qty := range oldQuantities {
		if _, ok := newQuantities[productID]; !ok {
			deltas[productID] = -qty
		}
	}

	for productID, delta := range deltas {
		if delta == 0 {
			continue
		}
		product, err := s.productRepo.FindByID(ctx, productID)
		if err != nil {
			return err
		}
		if delta > 0 {
			err = product.DecreaseStock(delta)
		} else {
			err = product.IncreaseStock(-delta)
		}
		if err != nil {
			return err
		}
		if err := s.productRepo.Save(ctx, product); err != nil {
			return err
		}
		product.ClearDomainEvents()
	}
	return nil
}

func (s *SaleService) loadProducts(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]catalog.Product, error) {
	products, err := s.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]catalog.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return byID, nil
}

func saleProductIDs(items []SaleItemRequest) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}
	return ids
}
