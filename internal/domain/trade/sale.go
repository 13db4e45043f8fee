package trade

import (
	"fmt"
	"time"

	"github.com/boutikla/backend/internal/domain/shared"
	"github.com/boutikla/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleStatus represents the status of a sale
type SaleStatus string

const (
	SaleStatusPending   SaleStatus = "pending"
	SaleStatusCompleted SaleStatus = "completed"
	SaleStatusCanceled  SaleStatus = "canceled"
)

// IsValid checks if the status is a valid SaleStatus
func (s SaleStatus) IsValid() bool {
	switch s {
	case SaleStatusPending, SaleStatusCompleted, SaleStatusCanceled:
		return true
	}
	return false
}

// String returns the string representation of SaleStatus
func (s SaleStatus) String() string {
	return string(s)
}

// SaleItem is a priced product line captured on a sale. BasePrice is the
// product's USD price at the time of sale; UnitPrice is the displayed price in
// the sale's currency, derived from BasePrice and the sale's frozen exchange
// rate, never from a previously converted value.
type SaleItem struct {
	ID              uuid.UUID
	SaleID          uuid.UUID
	ProductID       uuid.UUID
	ProductName     string
	Quantity        int
	BasePrice       decimal.Decimal // USD
	UnitPrice       decimal.Decimal // sale currency
	TaxPercent      decimal.Decimal
	DiscountPercent decimal.Decimal
	LineTotal       decimal.Decimal // sale currency
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// lineTotal computes (price + price*tax% - price*discount%) * quantity
func lineTotal(unitPrice, taxPercent, discountPercent decimal.Decimal, quantity int) decimal.Decimal {
	hundred := decimal.NewFromInt(100)
	unit := unitPrice.
		Add(unitPrice.Mul(taxPercent).Div(hundred)).
		Sub(unitPrice.Mul(discountPercent).Div(hundred))
	return unit.Mul(decimal.NewFromInt(int64(quantity)))
}

// Sale records product lines sold to a client in a chosen display currency.
// The exchange rate in effect at creation is frozen on the record so historical
// totals remain stable when the current rate later changes. Lines may be
// edited only while the sale is pending and not a credit sale; a credit sale's
// owed amount is financially committed from the start.
type Sale struct {
	shared.AuditedAggregateRoot
	ClientID     uuid.UUID
	ClientName   string
	Currency     valueobject.Currency
	ExchangeRate decimal.Decimal // frozen HTG-per-USD rate
	Items        []SaleItem
	TotalAmount  decimal.Decimal // sale currency, sum of line totals
	CreditSale   bool
	Status       SaleStatus
	Remarks      string
	CompletedAt  *time.Time
	CanceledAt   *time.Time
}

// NewSale creates a new pending sale, freezing the given exchange rate
func NewSale(clientID uuid.UUID, clientName string, cur valueobject.Currency, exchangeRate decimal.Decimal, creditSale bool, createdBy uuid.UUID) (*Sale, error) {
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CLIENT", "Client is required")
	}
	if clientName == "" {
		return nil, shared.NewDomainError("INVALID_CLIENT_NAME", "Client name cannot be empty")
	}
	if !cur.IsValid() {
		return nil, shared.NewDomainError("INVALID_CURRENCY", "Unknown currency code")
	}
	if exchangeRate.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_RATE", "Exchange rate must be positive")
	}

	sale := &Sale{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(createdBy),
		ClientID:             clientID,
		ClientName:           clientName,
		Currency:             cur,
		ExchangeRate:         exchangeRate,
		Items:                make([]SaleItem, 0),
		TotalAmount:          decimal.Zero,
		CreditSale:           creditSale,
		Status:               SaleStatusPending,
	}

	return sale, nil
}

// displayPrice derives the unit price in the sale's currency from a USD base price
func (s *Sale) displayPrice(basePrice decimal.Decimal) decimal.Decimal {
	if s.Currency == valueobject.BaseCurrency {
		return basePrice
	}
	return basePrice.Mul(s.ExchangeRate)
}

// AddItem adds a product line to the sale. A product may appear on at most
// one line. Called during construction before Commit; edits after persistence
// additionally go through CanModify in the application layer.
func (s *Sale) AddItem(productID uuid.UUID, productName string, quantity int, basePrice, taxPercent, discountPercent decimal.Decimal) (*SaleItem, error) {
	if s.Status != SaleStatusPending {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot add items to a non-pending sale")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if productName == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if basePrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	if taxPercent.IsNegative() || discountPercent.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PERCENT", "Tax and discount cannot be negative")
	}
	for _, item := range s.Items {
		if item.ProductID == productID {
			return nil, shared.NewDomainError("DUPLICATE_PRODUCT", "Product already added to this sale")
		}
	}

	now := time.Now()
	unitPrice := s.displayPrice(basePrice)
	item := SaleItem{
		ID:              uuid.New(),
		SaleID:          s.ID,
		ProductID:       productID,
		ProductName:     productName,
		Quantity:        quantity,
		BasePrice:       basePrice,
		UnitPrice:       unitPrice,
		TaxPercent:      taxPercent,
		DiscountPercent: discountPercent,
		LineTotal:       lineTotal(unitPrice, taxPercent, discountPercent, quantity),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	s.Items = append(s.Items, item)
	s.recalculateTotal()
	s.UpdatedAt = now

	return &s.Items[len(s.Items)-1], nil
}

// UpdateItem changes the quantity, tax and discount of an existing line and
// recomputes its total from the stored base price. Rejected once the sale is
// non-pending or is a credit sale.
func (s *Sale) UpdateItem(productID uuid.UUID, quantity int, taxPercent, discountPercent decimal.Decimal) error {
	if !s.CanModify() {
		return shared.NewDomainError("INVALID_STATE", "Sale lines are locked: only pending non-credit sales can be edited")
	}
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if taxPercent.IsNegative() || discountPercent.IsNegative() {
		return shared.NewDomainError("INVALID_PERCENT", "Tax and discount cannot be negative")
	}

	for idx := range s.Items {
		if s.Items[idx].ProductID == productID {
			item := &s.Items[idx]
			item.Quantity = quantity
			item.TaxPercent = taxPercent
			item.DiscountPercent = discountPercent
			item.UnitPrice = s.displayPrice(item.BasePrice)
			item.LineTotal = lineTotal(item.UnitPrice, taxPercent, discountPercent, quantity)
			item.UpdatedAt = time.Now()
			s.recalculateTotal()
			s.Touch()
			return nil
		}
	}

	return shared.NewDomainError("ITEM_NOT_FOUND", "Sale line not found")
}

// RemoveItem deletes a line. Same locking rules as UpdateItem.
func (s *Sale) RemoveItem(productID uuid.UUID) error {
	if !s.CanModify() {
		return shared.NewDomainError("INVALID_STATE", "Sale lines are locked: only pending non-credit sales can be edited")
	}

	for idx, item := range s.Items {
		if item.ProductID == productID {
			s.Items = append(s.Items[:idx], s.Items[idx+1:]...)
			s.recalculateTotal()
			s.Touch()
			return nil
		}
	}

	return shared.NewDomainError("ITEM_NOT_FOUND", "Sale line not found")
}

// Commit validates the sale is complete enough to persist and records the
// created event carrying the stock decrements.
func (s *Sale) Commit() error {
	if len(s.Items) == 0 {
		return shared.NewDomainError("NO_ITEMS", "A sale requires at least one product line")
	}
	s.AddDomainEvent(NewSaleCreatedEvent(s))
	return nil
}

// SetRemarks sets the free-form remarks
func (s *Sale) SetRemarks(remarks string) {
	s.Remarks = remarks
	s.Touch()
}

// MarkCompleted transitions the sale to completed once its balance is settled
func (s *Sale) MarkCompleted() error {
	if s.Status != SaleStatusPending {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot complete sale in %s status", s.Status))
	}

	now := time.Now()
	s.Status = SaleStatusCompleted
	s.CompletedAt = &now
	s.UpdatedAt = now

	return nil
}

// Cancel voids the sale; sold stock is restored by the consumer of the event
func (s *Sale) Cancel() error {
	if s.Status == SaleStatusCanceled {
		return shared.NewDomainError("INVALID_STATE", "Sale is already canceled")
	}

	now := time.Now()
	s.Status = SaleStatusCanceled
	s.CanceledAt = &now
	s.UpdatedAt = now

	s.AddDomainEvent(NewSaleCanceledEvent(s))

	return nil
}

// IsCanceled returns true for canceled sales
func (s *Sale) IsCanceled() bool {
	return s.Status == SaleStatusCanceled
}

// CanModify returns true while line items may still change: the sale must be
// pending and must not be a credit sale.
func (s *Sale) CanModify() bool {
	return s.Status == SaleStatusPending && !s.CreditSale
}

// CanDelete returns true when the record may be physically removed
func (s *Sale) CanDelete() bool {
	return s.Status == SaleStatusCanceled
}

// GetItemByProduct returns the line for a product, or nil
func (s *Sale) GetItemByProduct(productID uuid.UUID) *SaleItem {
	for idx := range s.Items {
		if s.Items[idx].ProductID == productID {
			return &s.Items[idx]
		}
	}
	return nil
}

// TotalMoney returns the sale total as Money in the sale's currency
func (s *Sale) TotalMoney() valueobject.Money {
	m, _ := valueobject.NewMoney(s.TotalAmount, s.Currency)
	return m
}

func (s *Sale) recalculateTotal() {
	total := decimal.Zero
	for _, item := range s.Items {
		total = total.Add(item.LineTotal)
	}
	s.TotalAmount = total
}
