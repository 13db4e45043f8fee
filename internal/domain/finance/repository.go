package finance

import (
	"context"

	"github.com/boutikla/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentRepository defines the persistence port for sale payments
type PaymentRepository interface {
	shared.Repository[*Payment]
	FindBySale(ctx context.Context, saleID uuid.UUID) ([]*Payment, error)
	// ActiveTotal sums the active payments recorded against a sale.
	ActiveTotal(ctx context.Context, saleID uuid.UUID) (decimal.Decimal, error)
}

// RefundRepository defines the persistence port for refunds
type RefundRepository interface {
	shared.Repository[*Refund]
	FindBySale(ctx context.Context, saleID uuid.UUID) (*Refund, error)
}

// RefundPaymentRepository defines the persistence port for refund payouts
type RefundPaymentRepository interface {
	shared.Repository[*RefundPayment]
	FindByRefund(ctx context.Context, refundID uuid.UUID) ([]*RefundPayment, error)
	// ActiveTotal sums the active payouts recorded against a refund.
	ActiveTotal(ctx context.Context, refundID uuid.UUID) (decimal.Decimal, error)
}
