package finance

import (
	"time"

	"github.com/boutikla/backend/internal/domain/shared"
	"github.com/boutikla/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RefundPayment records money actually handed back to a client against a
// refund. Like sale payments it is append-only: cancel then re-record to
// correct, delete only once canceled.
type RefundPayment struct {
	shared.AuditedAggregateRoot
	RefundID   uuid.UUID
	Amount     decimal.Decimal
	Currency   valueobject.Currency
	Method     PaymentMethod
	Reference  string
	Status     PaymentStatus
	CanceledAt *time.Time
}

// NewRefundPayment creates a new active payout against a refund
func NewRefundPayment(refundID uuid.UUID, amount decimal.Decimal, cur valueobject.Currency, method PaymentMethod, reference string, createdBy uuid.UUID) (*RefundPayment, error) {
	if refundID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_REFUND", "Refund is required")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Refund payment amount must be positive")
	}
	if !cur.IsValid() {
		return nil, shared.NewDomainError("INVALID_CURRENCY", "Unknown currency code")
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_METHOD", "Unknown payment method")
	}
	// Card terminals take money in, they do not pay it out.
	if method == PaymentMethodCard {
		return nil, shared.NewDomainError("INVALID_METHOD", "Card is not accepted for refund payouts")
	}

	return &RefundPayment{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(createdBy),
		RefundID:             refundID,
		Amount:               amount,
		Currency:             cur,
		Method:               method,
		Reference:            reference,
		Status:               PaymentStatusActive,
	}, nil
}

// Cancel voids the payout so it no longer counts toward the refund balance
func (p *RefundPayment) Cancel() error {
	if p.Status == PaymentStatusCanceled {
		return shared.NewDomainError("INVALID_STATE", "Refund payment is already canceled")
	}

	now := time.Now()
	p.Status = PaymentStatusCanceled
	p.CanceledAt = &now
	p.UpdatedAt = now

	return nil
}

// IsActive returns true while the payout counts toward the refund balance
func (p *RefundPayment) IsActive() bool {
	return p.Status == PaymentStatusActive
}

// CanDelete returns true when the record may be physically removed
func (p *RefundPayment) CanDelete() bool {
	return p.Status == PaymentStatusCanceled
}
