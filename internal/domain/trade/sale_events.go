package trade

import (
	"github.com/boutikla/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	AggregateTypeSale = "Sale"

	EventTypeSaleCreated  = "sale.created"
	EventTypeSaleCanceled = "sale.canceled"
)

// SaleLine is the per-product quantity an event consumer adjusts stock by
type SaleLine struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

func saleLines(s *Sale) []SaleLine {
	lines := make([]SaleLine, 0, len(s.Items))
	for _, item := range s.Items {
		lines = append(lines, SaleLine{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	return lines
}

// SaleCreatedEvent is published when a sale is committed; consumers decrement
// stock for each line.
type SaleCreatedEvent struct {
	shared.BaseDomainEvent
	SaleID      uuid.UUID       `json:"sale_id"`
	ClientID    uuid.UUID       `json:"client_id"`
	Lines       []SaleLine      `json:"lines"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Currency    string          `json:"currency"`
	CreditSale  bool            `json:"credit_sale"`
}

// NewSaleCreatedEvent creates a new SaleCreatedEvent
func NewSaleCreatedEvent(s *Sale) *SaleCreatedEvent {
	return &SaleCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSaleCreated, AggregateTypeSale, s.ID),
		SaleID:          s.ID,
		ClientID:        s.ClientID,
		Lines:           saleLines(s),
		TotalAmount:     s.TotalAmount,
		Currency:        s.Currency.String(),
		CreditSale:      s.CreditSale,
	}
}

// SaleCanceledEvent is published when a sale is canceled; consumers restore
// the stock the sale had consumed.
type SaleCanceledEvent struct {
	shared.BaseDomainEvent
	SaleID   uuid.UUID  `json:"sale_id"`
	ClientID uuid.UUID  `json:"client_id"`
	Lines    []SaleLine `json:"lines"`
}

// NewSaleCanceledEvent creates a new SaleCanceledEvent
func NewSaleCanceledEvent(s *Sale) *SaleCanceledEvent {
	return &SaleCanceledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSaleCanceled, AggregateTypeSale, s.ID),
		SaleID:          s.ID,
		ClientID:        s.ClientID,
		Lines:           saleLines(s),
	}
}
