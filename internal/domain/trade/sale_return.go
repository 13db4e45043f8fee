package trade

import (
	"time"

	"github.com/boutikla/backend/internal/domain/shared"
	"github.com/boutikla/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReturnStatus represents the status of a sale return
type ReturnStatus string

const (
	ReturnStatusActive   ReturnStatus = "active"
	ReturnStatusCanceled ReturnStatus = "canceled"
)

// IsValid checks if the status is a valid ReturnStatus
func (s ReturnStatus) IsValid() bool {
	return s == ReturnStatusActive || s == ReturnStatusCanceled
}

// ReturnItem is a returned quantity of one sale line. UnitValue is the
// unit price the line was sold at, frozen on the sale, so each returned
// unit is credited at the price the client saw on the receipt.
type ReturnItem struct {
	ID          uuid.UUID
	ReturnID    uuid.UUID
	ProductID   uuid.UUID
	ProductName string
	Quantity    int
	UnitValue   decimal.Decimal // sale currency
	Amount      decimal.Decimal // sale currency
	CreatedAt   time.Time
}

// Return records quantities of a sale's products coming back to stock. Its
// total value, in the sale's currency, feeds the sale's refund balance.
type Return struct {
	shared.AuditedAggregateRoot
	SaleID      uuid.UUID
	ClientID    uuid.UUID
	Currency    valueobject.Currency
	Items       []ReturnItem
	TotalAmount decimal.Decimal
	Status      ReturnStatus
	Remarks     string
	CanceledAt  *time.Time
}

// NewReturn creates a new active return against a sale
func NewReturn(sale *Sale, createdBy uuid.UUID) (*Return, error) {
	if sale == nil {
		return nil, shared.NewDomainError("INVALID_SALE", "Sale is required")
	}
	if sale.IsCanceled() {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot return products from a canceled sale")
	}

	r := &Return{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(createdBy),
		SaleID:               sale.ID,
		ClientID:             sale.ClientID,
		Currency:             sale.Currency,
		Items:                make([]ReturnItem, 0),
		TotalAmount:          decimal.Zero,
		Status:               ReturnStatusActive,
	}

	return r, nil
}

// AddItem records a returned quantity of one of the sale's lines. The
// quantity must not exceed what remains returnable after prior returns.
func (r *Return) AddItem(line *SaleItem, quantity, alreadyReturned int) error {
	if line == nil {
		return shared.NewDomainError("ITEM_NOT_FOUND", "Product was not part of this sale")
	}
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Return quantity must be positive")
	}
	if alreadyReturned < 0 {
		alreadyReturned = 0
	}
	if quantity > line.Quantity-alreadyReturned {
		return shared.NewDomainError("EXCEEDS_SOLD_QUANTITY", "Return quantity exceeds the quantity sold")
	}
	for _, item := range r.Items {
		if item.ProductID == line.ProductID {
			return shared.NewDomainError("DUPLICATE_PRODUCT", "Product already on this return")
		}
	}

	item := ReturnItem{
		ID:          uuid.New(),
		ReturnID:    r.ID,
		ProductID:   line.ProductID,
		ProductName: line.ProductName,
		Quantity:    quantity,
		UnitValue:   line.UnitPrice,
		Amount:      line.UnitPrice.Mul(decimal.NewFromInt(int64(quantity))),
		CreatedAt:   time.Now(),
	}

	r.Items = append(r.Items, item)
	r.recalculateTotal()
	r.Touch()

	return nil
}

// Commit validates the return and records the created event carrying the
// stock restorations.
func (r *Return) Commit() error {
	if len(r.Items) == 0 {
		return shared.NewDomainError("NO_ITEMS", "A return requires at least one product line")
	}
	r.AddDomainEvent(NewReturnCreatedEvent(r))
	return nil
}

// Cancel voids the return, reversing its stock restoration downstream
func (r *Return) Cancel() error {
	if r.Status == ReturnStatusCanceled {
		return shared.NewDomainError("INVALID_STATE", "Return is already canceled")
	}

	now := time.Now()
	r.Status = ReturnStatusCanceled
	r.CanceledAt = &now
	r.UpdatedAt = now

	r.AddDomainEvent(NewReturnCanceledEvent(r))

	return nil
}

// IsActive returns true while the return counts toward the sale's refund
func (r *Return) IsActive() bool {
	return r.Status == ReturnStatusActive
}

// SetRemarks sets the free-form remarks
func (r *Return) SetRemarks(remarks string) {
	r.Remarks = remarks
	r.Touch()
}

func (r *Return) recalculateTotal() {
	total := decimal.Zero
	for _, item := range r.Items {
		total = total.Add(item.Amount)
	}
	r.TotalAmount = total
}
