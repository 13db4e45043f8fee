package trade

import (
	"context"

	"github.com/boutikla/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// PurchaseOrderRepository defines the persistence port for purchase orders
type PurchaseOrderRepository interface {
	shared.Repository[*PurchaseOrder]
	FindBySupplier(ctx context.Context, supplierID uuid.UUID, filter shared.Filter) (*shared.Paginated[*PurchaseOrder], error)
	FindByStatus(ctx context.Context, status PurchaseOrderStatus, filter shared.Filter) (*shared.Paginated[*PurchaseOrder], error)
}

// SaleRepository defines the persistence port for sales
type SaleRepository interface {
	shared.Repository[*Sale]
	FindByClient(ctx context.Context, clientID uuid.UUID, filter shared.Filter) (*shared.Paginated[*Sale], error)
	FindByStatus(ctx context.Context, status SaleStatus, filter shared.Filter) (*shared.Paginated[*Sale], error)
}

// ReturnRepository defines the persistence port for sale returns
type ReturnRepository interface {
	shared.Repository[*Return]
	FindBySale(ctx context.Context, saleID uuid.UUID) ([]*Return, error)
	// ReturnedQuantity sums the active returned quantity of a product across
	// all returns on a sale.
	ReturnedQuantity(ctx context.Context, saleID, productID uuid.UUID) (int, error)
}
