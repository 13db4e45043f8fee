package trade

import (
	"github.com/boutikla/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	AggregateTypeReturn = "Return"

	EventTypeReturnCreated  = "return.created"
	EventTypeReturnCanceled = "return.canceled"
)

func returnLines(r *Return) []SaleLine {
	lines := make([]SaleLine, 0, len(r.Items))
	for _, item := range r.Items {
		lines = append(lines, SaleLine{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	return lines
}

// ReturnCreatedEvent is published when a return is committed; consumers
// restore stock and grow the sale's refund by TotalAmount.
type ReturnCreatedEvent struct {
	shared.BaseDomainEvent
	ReturnID    uuid.UUID       `json:"return_id"`
	SaleID      uuid.UUID       `json:"sale_id"`
	Lines       []SaleLine      `json:"lines"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Currency    string          `json:"currency"`
}

// NewReturnCreatedEvent creates a new ReturnCreatedEvent
func NewReturnCreatedEvent(r *Return) *ReturnCreatedEvent {
	return &ReturnCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeReturnCreated, AggregateTypeReturn, r.ID),
		ReturnID:        r.ID,
		SaleID:          r.SaleID,
		Lines:           returnLines(r),
		TotalAmount:     r.TotalAmount,
		Currency:        r.Currency.String(),
	}
}

// ReturnCanceledEvent is published when a return is canceled; consumers take
// the restored stock back out and shrink the sale's refund.
type ReturnCanceledEvent struct {
	shared.BaseDomainEvent
	ReturnID    uuid.UUID       `json:"return_id"`
	SaleID      uuid.UUID       `json:"sale_id"`
	Lines       []SaleLine      `json:"lines"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// NewReturnCanceledEvent creates a new ReturnCanceledEvent
func NewReturnCanceledEvent(r *Return) *ReturnCanceledEvent {
	return &ReturnCanceledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeReturnCanceled, AggregateTypeReturn, r.ID),
		ReturnID:        r.ID,
		SaleID:          r.SaleID,
		Lines:           returnLines(r),
		TotalAmount:     r.TotalAmount,
	}
}
