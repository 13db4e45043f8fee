package finance

import (
	"time"

	"github.com/boutikla/backend/internal/domain/finance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreatePaymentRequest is the input for recording a payment against a sale.
// The amount is in the sale's currency.
type CreatePaymentRequest struct {
	SaleID    uuid.UUID       `json:"sale_id" binding:"required"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	Method    string          `json:"method" binding:"required"`
	Reference string          `json:"reference"`
}

// UpdatePaymentRequest is the input for correcting a payment's method or
// reference. The amount cannot be changed once recorded.
type UpdatePaymentRequest struct {
	Method    string `json:"method" binding:"required"`
	Reference string `json:"reference"`
}

// PaymentResponse is the API representation of a payment
type PaymentResponse struct {
	ID         uuid.UUID       `json:"id"`
	SaleID     uuid.UUID       `json:"sale_id"`
	Amount     decimal.Decimal `json:"amount"`
	Currency   string          `json:"currency"`
	Method     string          `json:"method"`
	Reference  string          `json:"reference,omitempty"`
	Status     string          `json:"status"`
	CanceledAt *time.Time      `json:"canceled_at,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

// ToPaymentResponse converts a domain payment to its API representation
func ToPaymentResponse(p *finance.Payment) PaymentResponse {
	return PaymentResponse{
		ID:         p.ID,
		SaleID:     p.SaleID,
		Amount:     p.Amount,
		Currency:   p.Currency.String(),
		Method:     p.Method.String(),
		Reference:  p.Reference,
		Status:     string(p.Status),
		CanceledAt: p.CanceledAt,
		CreatedAt:  p.CreatedAt,
	}
}

// SaleBalanceResponse summarizes how much of a sale has been collected
type SaleBalanceResponse struct {
	SaleID    uuid.UUID         `json:"sale_id"`
	Currency  string            `json:"currency"`
	Total     decimal.Decimal   `json:"total"`
	Paid      decimal.Decimal   `json:"paid"`
	Remaining decimal.Decimal   `json:"remaining"`
	Payments  []PaymentResponse `json:"payments"`
}

// RefundResponse is the API representation of a refund ledger
type RefundResponse struct {
	ID                uuid.UUID       `json:"id"`
	SaleID            uuid.UUID       `json:"sale_id"`
	ClientID          uuid.UUID       `json:"client_id"`
	Currency          string          `json:"currency"`
	TotalRefundAmount decimal.Decimal `json:"total_refund_amount"`
	PaidOut           decimal.Decimal `json:"paid_out"`
	Remaining         decimal.Decimal `json:"remaining"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// ToRefundResponse converts a domain refund to its API representation
func ToRefundResponse(r *finance.Refund, paidOut decimal.Decimal) RefundResponse {
	return RefundResponse{
		ID:                r.ID,
		SaleID:            r.SaleID,
		ClientID:          r.ClientID,
		Currency:          r.Currency.String(),
		TotalRefundAmount: r.TotalRefundAmount,
		PaidOut:           paidOut,
		Remaining:         r.Remaining(paidOut),
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}
}

// CreateRefundPaymentRequest is the input for paying out part of a refund
type CreateRefundPaymentRequest struct {
	RefundID  uuid.UUID       `json:"refund_id" binding:"required"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	Method    string          `json:"method" binding:"required"`
	Reference string          `json:"reference"`
}

// RefundPaymentResponse is the API representation of a refund payout
type RefundPaymentResponse struct {
	ID         uuid.UUID       `json:"id"`
	RefundID   uuid.UUID       `json:"refund_id"`
	Amount     decimal.Decimal `json:"amount"`
	Currency   string          `json:"currency"`
	Method     string          `json:"method"`
	Reference  string          `json:"reference,omitempty"`
	Status     string          `json:"status"`
	CanceledAt *time.Time      `json:"canceled_at,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

// ToRefundPaymentResponse converts a domain refund payout to its API representation
func ToRefundPaymentResponse(p *finance.RefundPayment) RefundPaymentResponse {
	return RefundPaymentResponse{
		ID:         p.ID,
		RefundID:   p.RefundID,
		Amount:     p.Amount,
		Currency:   p.Currency.String(),
		Method:     p.Method.String(),
		Reference:  p.Reference,
		Status:     string(p.Status),
		CanceledAt: p.CanceledAt,
		CreatedAt:  p.CreatedAt,
	}
}

// ListFilter carries pagination parameters from the API layer
type ListFilter struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir"`
	Search   string `form:"search"`
}
