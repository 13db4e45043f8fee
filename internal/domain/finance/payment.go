package finance

import (
	"time"

	"github.com/boutikla/backend/internal/domain/shared"
	"github.com/boutikla/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentMethod is how money changed hands
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodCheck        PaymentMethod = "check"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodCard         PaymentMethod = "card"
)

// IsValid checks if the method is a valid PaymentMethod
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCheck, PaymentMethodBankTransfer, PaymentMethodCard:
		return true
	}
	return false
}

// String returns the string representation of PaymentMethod
func (m PaymentMethod) String() string {
	return string(m)
}

// PaymentStatus is the lifecycle state of a payment record
type PaymentStatus string

const (
	PaymentStatusActive   PaymentStatus = "active"
	PaymentStatusCanceled PaymentStatus = "canceled"
)

// Payment records money received against a sale, in the sale's currency.
// A payment is never edited after creation: mistakes are corrected by
// canceling it and recording a new one, and only canceled payments may be
// physically deleted.
type Payment struct {
	shared.AuditedAggregateRoot
	SaleID     uuid.UUID
	Amount     decimal.Decimal
	Currency   valueobject.Currency
	Method     PaymentMethod
	Reference  string
	Status     PaymentStatus
	CanceledAt *time.Time
}

// NewPayment creates a new active payment against a sale
func NewPayment(saleID uuid.UUID, amount decimal.Decimal, cur valueobject.Currency, method PaymentMethod, reference string, createdBy uuid.UUID) (*Payment, error) {
	if saleID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SALE", "Sale is required")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if !cur.IsValid() {
		return nil, shared.NewDomainError("INVALID_CURRENCY", "Unknown currency code")
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_METHOD", "Unknown payment method")
	}

	return &Payment{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(createdBy),
		SaleID:               saleID,
		Amount:               amount,
		Currency:             cur,
		Method:               method,
		Reference:            reference,
		Status:               PaymentStatusActive,
	}, nil
}

// UpdateDetails corrects the method and reference of an active payment.
// The amount is immutable: corrections go through cancel-and-recreate.
func (p *Payment) UpdateDetails(method PaymentMethod, reference string) error {
	if p.Status != PaymentStatusActive {
		return shared.NewDomainError("INVALID_STATE", "Only active payments can be edited")
	}
	if !method.IsValid() {
		return shared.NewDomainError("INVALID_METHOD", "Unknown payment method")
	}

	p.Method = method
	p.Reference = reference
	p.UpdatedAt = time.Now()

	return nil
}

// Cancel voids the payment so it no longer counts toward the sale's balance
func (p *Payment) Cancel() error {
	if p.Status == PaymentStatusCanceled {
		return shared.NewDomainError("INVALID_STATE", "Payment is already canceled")
	}

	now := time.Now()
	p.Status = PaymentStatusCanceled
	p.CanceledAt = &now
	p.UpdatedAt = now

	return nil
}

// IsActive returns true while the payment counts toward the sale's balance
func (p *Payment) IsActive() bool {
	return p.Status == PaymentStatusActive
}

// CanDelete returns true when the record may be physically removed
func (p *Payment) CanDelete() bool {
	return p.Status == PaymentStatusCanceled
}

// Money returns the payment amount as Money
func (p *Payment) Money() valueobject.Money {
	m, _ := valueobject.NewMoney(p.Amount, p.Currency)
	return m
}
