package trade

import (
	"github.com/boutikla/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	AggregateTypePurchaseOrder = "PurchaseOrder"

	EventTypePurchaseOrderCreated   = "purchase_order.created"
	EventTypePurchaseOrderCompleted = "purchase_order.completed"
	EventTypePurchaseOrderCanceled  = "purchase_order.canceled"
)

// PurchaseOrderLine carries the per-product data event consumers need to move
// stock and optionally refresh catalog prices.
type PurchaseOrderLine struct {
	ProductID     uuid.UUID       `json:"product_id"`
	Quantity      int             `json:"quantity"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SalePrice     decimal.Decimal `json:"sale_price"`
}

func orderLines(o *PurchaseOrder) []PurchaseOrderLine {
	lines := make([]PurchaseOrderLine, 0, len(o.Items))
	for _, item := range o.Items {
		lines = append(lines, PurchaseOrderLine{
			ProductID:     item.ProductID,
			Quantity:      item.Quantity,
			PurchasePrice: item.PurchasePrice,
			SalePrice:     item.SalePrice,
		})
	}
	return lines
}

// PurchaseOrderCreatedEvent is published when a purchase order is created
type PurchaseOrderCreatedEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID       `json:"order_id"`
	SupplierID  uuid.UUID       `json:"supplier_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// NewPurchaseOrderCreatedEvent creates a new PurchaseOrderCreatedEvent
func NewPurchaseOrderCreatedEvent(o *PurchaseOrder) *PurchaseOrderCreatedEvent {
	return &PurchaseOrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePurchaseOrderCreated, AggregateTypePurchaseOrder, o.ID),
		OrderID:         o.ID,
		SupplierID:      o.SupplierID,
		TotalAmount:     o.TotalAmount,
	}
}

// PurchaseOrderCompletedEvent is published when a purchase order is completed.
// Consumers increase stock for each line; when UpdatePrices is set they also
// write the line prices back to the catalog.
type PurchaseOrderCompletedEvent struct {
	shared.BaseDomainEvent
	OrderID      uuid.UUID           `json:"order_id"`
	SupplierID   uuid.UUID           `json:"supplier_id"`
	Lines        []PurchaseOrderLine `json:"lines"`
	UpdatePrices bool                `json:"update_prices"`
}

// NewPurchaseOrderCompletedEvent creates a new PurchaseOrderCompletedEvent
func NewPurchaseOrderCompletedEvent(o *PurchaseOrder, updatePrices bool) *PurchaseOrderCompletedEvent {
	return &PurchaseOrderCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePurchaseOrderCompleted, AggregateTypePurchaseOrder, o.ID),
		OrderID:         o.ID,
		SupplierID:      o.SupplierID,
		Lines:           orderLines(o),
		UpdatePrices:    updatePrices,
	}
}

// PurchaseOrderCanceledEvent is published when a purchase order is canceled
type PurchaseOrderCanceledEvent struct {
	shared.BaseDomainEvent
	OrderID    uuid.UUID `json:"order_id"`
	SupplierID uuid.UUID `json:"supplier_id"`
}

// NewPurchaseOrderCanceledEvent creates a new PurchaseOrderCanceledEvent
func NewPurchaseOrderCanceledEvent(o *PurchaseOrder) *PurchaseOrderCanceledEvent {
	return &PurchaseOrderCanceledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePurchaseOrderCanceled, AggregateTypePurchaseOrder, o.ID),
		OrderID:         o.ID,
		SupplierID:      o.SupplierID,
	}
}
