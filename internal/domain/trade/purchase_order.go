package trade

import (
	"fmt"
	"time"

	"github.com/boutikla/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PurchaseOrderStatus represents the status of a supplier purchase order
type PurchaseOrderStatus string

const (
	PurchaseOrderStatusPending   PurchaseOrderStatus = "pending"
	PurchaseOrderStatusCompleted PurchaseOrderStatus = "completed"
	PurchaseOrderStatusCanceled  PurchaseOrderStatus = "canceled"
)

// IsValid checks if the status is a valid PurchaseOrderStatus
func (s PurchaseOrderStatus) IsValid() bool {
	switch s {
	case PurchaseOrderStatusPending, PurchaseOrderStatusCompleted, PurchaseOrderStatusCanceled:
		return true
	}
	return false
}

// String returns the string representation of PurchaseOrderStatus
func (s PurchaseOrderStatus) String() string {
	return string(s)
}

// IsTerminal returns true for completed and canceled orders
func (s PurchaseOrderStatus) IsTerminal() bool {
	return s == PurchaseOrderStatusCompleted || s == PurchaseOrderStatusCanceled
}

// PurchaseOrderItem represents a line item in a purchase order
type PurchaseOrderItem struct {
	ID            uuid.UUID
	OrderID       uuid.UUID
	ProductID     uuid.UUID
	ProductName   string
	Quantity      int
	PurchasePrice decimal.Decimal // cost per unit, USD
	SalePrice     decimal.Decimal // intended resale price per unit, USD
	Amount        decimal.Decimal // Quantity * PurchasePrice
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewPurchaseOrderItem creates a new purchase order line
func NewPurchaseOrderItem(orderID, productID uuid.UUID, productName string, quantity int, purchasePrice, salePrice decimal.Decimal) (*PurchaseOrderItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if productName == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if purchasePrice.IsNegative() || salePrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Prices cannot be negative")
	}

	now := time.Now()
	return &PurchaseOrderItem{
		ID:            uuid.New(),
		OrderID:       orderID,
		ProductID:     productID,
		ProductName:   productName,
		Quantity:      quantity,
		PurchasePrice: purchasePrice,
		SalePrice:     salePrice,
		Amount:        purchasePrice.Mul(decimal.NewFromInt(int64(quantity))),
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// PurchaseOrder is a procurement document sent to a supplier. It is created
// pending and transitions once to completed (stock received) or canceled
// (no stock effect); non-pending orders are immutable.
type PurchaseOrder struct {
	shared.AuditedAggregateRoot
	SupplierID   uuid.UUID
	SupplierName string
	Items        []PurchaseOrderItem
	TotalAmount  decimal.Decimal // USD, sum of line amounts
	Status       PurchaseOrderStatus
	Remarks      string
	CompletedAt  *time.Time
	CanceledAt   *time.Time
}

// NewPurchaseOrder creates a new pending purchase order
func NewPurchaseOrder(supplierID uuid.UUID, supplierName string, createdBy uuid.UUID) (*PurchaseOrder, error) {
	if supplierID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SUPPLIER", "Supplier is required")
	}
	if supplierName == "" {
		return nil, shared.NewDomainError("INVALID_SUPPLIER_NAME", "Supplier name cannot be empty")
	}

	order := &PurchaseOrder{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(createdBy),
		SupplierID:           supplierID,
		SupplierName:         supplierName,
		Items:                make([]PurchaseOrderItem, 0),
		TotalAmount:          decimal.Zero,
		Status:               PurchaseOrderStatusPending,
	}

	order.AddDomainEvent(NewPurchaseOrderCreatedEvent(order))

	return order, nil
}

// AddItem adds a line to the order. Only allowed while pending; a product may
// appear on at most one line.
func (o *PurchaseOrder) AddItem(productID uuid.UUID, productName string, quantity int, purchasePrice, salePrice decimal.Decimal) (*PurchaseOrderItem, error) {
	if o.Status != PurchaseOrderStatusPending {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot add items to a non-pending order")
	}
	for _, item := range o.Items {
		if item.ProductID == productID {
			return nil, shared.NewDomainError("DUPLICATE_PRODUCT", "Product already exists in order")
		}
	}

	item, err := NewPurchaseOrderItem(o.ID, productID, productName, quantity, purchasePrice, salePrice)
	if err != nil {
		return nil, err
	}

	o.Items = append(o.Items, *item)
	o.recalculateTotal()
	o.Touch()

	return item, nil
}

// ReplaceItems swaps the order's line list, used when editing a pending order
func (o *PurchaseOrder) ReplaceItems(items []PurchaseOrderItem) error {
	if o.Status != PurchaseOrderStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Cannot edit a non-pending order")
	}

	seen := make(map[uuid.UUID]struct{}, len(items))
	for _, item := range items {
		if _, ok := seen[item.ProductID]; ok {
			return shared.NewDomainError("DUPLICATE_PRODUCT", "Product appears on more than one line")
		}
		seen[item.ProductID] = struct{}{}
	}

	o.Items = items
	o.recalculateTotal()
	o.Touch()
	return nil
}

// SetRemarks sets the free-form remarks
func (o *PurchaseOrder) SetRemarks(remarks string) {
	o.Remarks = remarks
	o.Touch()
}

// Complete marks the order as received. Stock for each line is increased by
// the consumer of the completed event; updatePrices requests that each line's
// purchase and sale price be written back to the product.
func (o *PurchaseOrder) Complete(updatePrices bool) error {
	if o.Status != PurchaseOrderStatusPending {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot complete order in %s status", o.Status))
	}
	if len(o.Items) == 0 {
		return shared.NewDomainError("NO_ITEMS", "Cannot complete an order without items")
	}

	now := time.Now()
	o.Status = PurchaseOrderStatusCompleted
	o.CompletedAt = &now
	o.UpdatedAt = now

	o.AddDomainEvent(NewPurchaseOrderCompletedEvent(o, updatePrices))

	return nil
}

// Cancel voids a pending order with no stock effect
func (o *PurchaseOrder) Cancel() error {
	if o.Status != PurchaseOrderStatusPending {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel order in %s status", o.Status))
	}

	now := time.Now()
	o.Status = PurchaseOrderStatusCanceled
	o.CanceledAt = &now
	o.UpdatedAt = now

	o.AddDomainEvent(NewPurchaseOrderCanceledEvent(o))

	return nil
}

// IsPending returns true while the order can still be edited
func (o *PurchaseOrder) IsPending() bool {
	return o.Status == PurchaseOrderStatusPending
}

// ItemCount returns the number of lines
func (o *PurchaseOrder) ItemCount() int {
	return len(o.Items)
}

func (o *PurchaseOrder) recalculateTotal() {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Amount)
	}
	o.TotalAmount = total
}
