package catalog

import (
	"github.com/boutikla/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constant
const AggregateTypeProduct = "Product"

// Event type constants
const (
	EventTypeProductStockChanged = "ProductStockChanged"
)

// ProductStockChangedEvent is published when a product's on-hand count changes.
// Delta is positive for stock received (purchase orders, returns) and negative
// for stock sold.
type ProductStockChangedEvent struct {
	shared.BaseDomainEvent
	ProductID     uuid.UUID `json:"product_id"`
	Name          string    `json:"name"`
	Delta         int       `json:"delta"`
	StockQuantity int       `json:"stock_quantity"`
}

// NewProductStockChangedEvent creates a new ProductStockChangedEvent
func NewProductStockChangedEvent(product *Product, delta int) *ProductStockChangedEvent {
	return &ProductStockChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductStockChanged, AggregateTypeProduct, product.ID),
		ProductID:       product.ID,
		Name:            product.Name,
		Delta:           delta,
		StockQuantity:   product.StockQuantity,
	}
}
