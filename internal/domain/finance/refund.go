package finance

import (
	"github.com/boutikla/backend/internal/domain/shared"
	"github.com/boutikla/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Refund tracks how much money is owed back to a client for one sale. There
// is at most one refund per sale; each active return on the sale grows
// TotalRefundAmount by its value and canceling a return shrinks it again.
// Money actually handed back is recorded as RefundPayment rows against this
// refund.
type Refund struct {
	shared.AuditedAggregateRoot
	SaleID            uuid.UUID
	ClientID          uuid.UUID
	Currency          valueobject.Currency
	TotalRefundAmount decimal.Decimal
}

// NewRefund creates a refund ledger for a sale, starting at the given amount
func NewRefund(saleID, clientID uuid.UUID, cur valueobject.Currency, amount decimal.Decimal, createdBy uuid.UUID) (*Refund, error) {
	if saleID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SALE", "Sale is required")
	}
	if !cur.IsValid() {
		return nil, shared.NewDomainError("INVALID_CURRENCY", "Unknown currency code")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Refund amount must be positive")
	}

	return &Refund{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(createdBy),
		SaleID:               saleID,
		ClientID:             clientID,
		Currency:             cur,
		TotalRefundAmount:    amount,
	}, nil
}

// IncreaseTotal grows the amount owed back when a new return is recorded
func (r *Refund) IncreaseTotal(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Increase amount must be positive")
	}
	r.TotalRefundAmount = r.TotalRefundAmount.Add(amount)
	r.Touch()
	return nil
}

// DecreaseTotal shrinks the amount owed back when a return is canceled. The
// total must not drop below what has already been paid out; the caller passes
// the current active payout sum.
func (r *Refund) DecreaseTotal(amount, paidOut decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Decrease amount must be positive")
	}
	reduced := r.TotalRefundAmount.Sub(amount)
	if reduced.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Decrease exceeds the refund total")
	}
	if reduced.LessThan(paidOut) {
		return shared.NewDomainError("EXCEEDS_REFUND_BALANCE", "Refund already paid out beyond the reduced total")
	}
	r.TotalRefundAmount = reduced
	r.Touch()
	return nil
}

// Remaining returns what is still owed back given the active payout sum
func (r *Refund) Remaining(paidOut decimal.Decimal) decimal.Decimal {
	return r.TotalRefundAmount.Sub(paidOut)
}

// IsSettled returns true when nothing is owed given the active payout sum
func (r *Refund) IsSettled(paidOut decimal.Decimal) bool {
	return !r.TotalRefundAmount.GreaterThan(paidOut)
}
