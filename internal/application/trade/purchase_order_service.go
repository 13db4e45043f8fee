package trade

import (
	"context"

	"github.com/boutikla/backend/internal/domain/catalog"
	"github.com/boutikla/backend/internal/domain/partner"
	"github.com/boutikla/backend/internal/domain/shared"
	"github.com/boutikla/backend/internal/domain/trade"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PurchaseOrderService handles procurement operations
type PurchaseOrderService struct {
	orderRepo    trade.PurchaseOrderRepository
	supplierRepo partner.SupplierRepository
	productRepo  catalog.ProductRepository
	tx           shared.TransactionManager
	publisher    shared.EventPublisher
	logger       *zap.Logger
}

// NewPurchaseOrderService creates a new PurchaseOrderService
func NewPurchaseOrderService(
	orderRepo trade.PurchaseOrderRepository,
	supplierRepo partner.SupplierRepository,
	productRepo catalog.ProductRepository,
	tx shared.TransactionManager,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *PurchaseOrderService {
	return &PurchaseOrderService{
		orderRepo:    orderRepo,
		supplierRepo: supplierRepo,
		productRepo:  productRepo,
		tx:           tx,
		publisher:    publisher,
		logger:       logger,
	}
}

// Create creates a pending purchase order. Line prices default to the
// product's catalog prices when omitted.
func (s *PurchaseOrderService) Create(ctx context.Context, createdBy uuid.UUID, req CreatePurchaseOrderRequest) (*PurchaseOrderResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, req.SupplierID)
	if err != nil {
		return nil, err
	}

	products, err := s.loadProducts(ctx, orderProductIDs(req.Items))
	if err != nil {
		return nil, err
	}

	order, err := trade.NewPurchaseOrder(supplier.ID, supplier.Name, createdBy)
	if err != nil {
		return nil, err
	}

	for _, line := range req.Items {
		product, ok := products[line.ProductID]
		if !ok {
			return nil, shared.NewDomainError("PRODUCT_NOT_FOUND", "Product does not exist: "+line.ProductID.String())
		}

		purchasePrice := line.PurchasePrice
		if purchasePrice.IsZero() {
			purchasePrice = product.PurchasePrice
		}
		salePrice := line.SalePrice
		if salePrice.IsZero() {
			salePrice = product.SalePrice
		}

		if _, err := order.AddItem(product.ID, product.Name, line.Quantity, purchasePrice, salePrice); err != nil {
			return nil, err
		}
	}

	if req.Remarks != "" {
		order.SetRemarks(req.Remarks)
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	s.publish(ctx, order.GetDomainEvents())
	order.ClearDomainEvents()

	response := ToPurchaseOrderResponse(order)
	return &response, nil
}

// GetByID retrieves a purchase order with its lines
func (s *PurchaseOrderService) GetByID(ctx context.Context, id uuid.UUID) (*PurchaseOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := ToPurchaseOrderResponse(order)
	return &response, nil
}

// List retrieves purchase orders with filtering and pagination
func (s *PurchaseOrderService) List(ctx context.Context, filter PurchaseOrderListFilter) ([]PurchaseOrderResponse, int64, error) {
	domainFilter := buildFilter(filter.ListFilter, "created_at", "desc")

	if filter.SupplierID != nil {
		domainFilter.Filters["supplier_id"] = *filter.SupplierID
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.StartDate != nil {
		domainFilter.Filters["start_date"] = *filter.StartDate
	}
	if filter.EndDate != nil {
		domainFilter.Filters["end_date"] = *filter.EndDate
	}

	page, err := s.orderRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]PurchaseOrderResponse, len(page.Items))
	for i, order := range page.Items {
		responses[i] = ToPurchaseOrderResponse(order)
	}
	return responses, page.Total, nil
}

// Update replaces the lines of a pending purchase order
func (s *PurchaseOrderService) Update(ctx context.Context, id uuid.UUID, req UpdatePurchaseOrderRequest) (*PurchaseOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !order.IsPending() {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot edit a non-pending order")
	}

	products, err := s.loadProducts(ctx, orderProductIDs(req.Items))
	if err != nil {
		return nil, err
	}

	items := make([]trade.PurchaseOrderItem, 0, len(req.Items))
	for _, line := range req.Items {
		product, ok := products[line.ProductID]
		if !ok {
			return nil, shared.NewDomainError("PRODUCT_NOT_FOUND", "Product does not exist: "+line.ProductID.String())
		}

		purchasePrice := line.PurchasePrice
		if purchasePrice.IsZero() {
			purchasePrice = product.PurchasePrice
		}
		salePrice := line.SalePrice
		if salePrice.IsZero() {
			salePrice = product.SalePrice
		}

		item, err := trade.NewPurchaseOrderItem(order.ID, product.ID, product.Name, line.Quantity, purchasePrice, salePrice)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}

	if err := order.ReplaceItems(items); err != nil {
		return nil, err
	}
	order.SetRemarks(req.Remarks)

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	response := ToPurchaseOrderResponse(order)
	return &response, nil
}

// Complete marks the order as received. Stock increases and optional catalog
// price updates happen in the completed event handler, in the same
// transaction as the order write.
func (s *PurchaseOrderService) Complete(ctx context.Context, id uuid.UUID, req CompletePurchaseOrderRequest) (*PurchaseOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := order.Complete(req.UpdatePrices); err != nil {
		return nil, err
	}

	if err := s.tx.Do(ctx, func(ctx context.Context) error {
		if err := s.orderRepo.Save(ctx, order); err != nil {
			return err
		}
		return s.publisher.Publish(ctx, order.GetDomainEvents()...)
	}); err != nil {
		return nil, err
	}
	order.ClearDomainEvents()

	response := ToPurchaseOrderResponse(order)
	return &response, nil
}

// Cancel voids a pending order with no stock effect
func (s *PurchaseOrderService) Cancel(ctx context.Context, id uuid.UUID) (*PurchaseOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := order.Cancel(); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	s.publish(ctx, order.GetDomainEvents())
	order.ClearDomainEvents()

	response := ToPurchaseOrderResponse(order)
	return &response, nil
}

// Delete physically removes an order, whatever its status.
func (s *PurchaseOrderService) Delete(ctx context.Context, id uuid.UUID) error {
	// Deleting a completed order leaves the stock it received in place;
	// the movement already happened.
	if _, err := s.orderRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.orderRepo.Delete(ctx, id)
}

// publish delivers informational events, logging instead of failing the
// request when a handler errors
func (s *PurchaseOrderService) publish(ctx context.Context, events []shared.DomainEvent) {
	if len(events) == 0 {
		return
	}
	if err := s.publisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("event publish failed", zap.Error(err))
	}
}

func (s *PurchaseOrderService) loadProducts(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]catalog.Product, error) {
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

func orderProductIDs(items []PurchaseOrderItemRequest) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}
	return ids
}

// buildFilter converts an API list filter into a domain filter with defaults
func buildFilter(filter ListFilter, defaultOrderBy, defaultOrderDir string) shared.Filter {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = defaultOrderBy
	}
	if filter.OrderDir == "" {
		filter.OrderDir = defaultOrderDir
	}

	return shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}
}
