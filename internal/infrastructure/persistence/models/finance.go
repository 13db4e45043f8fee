package models

import (
	"time"

	"github.com/boutikla/backend/internal/domain/finance"
	"github.com/boutikla/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentModel is the persistence model for the Payment aggregate root.
type PaymentModel struct {
	AuditedAggregateModel
	SaleID     uuid.UUID              `gorm:"type:uuid;not null;index"`
	Amount     decimal.Decimal        `gorm:"type:decimal(18,4);not null"`
	Currency   string                 `gorm:"type:varchar(3);not null"`
	Method     finance.PaymentMethod  `gorm:"type:varchar(20);not null"`
	Reference  string                 `gorm:"type:varchar(100)"`
	Status     finance.PaymentStatus  `gorm:"type:varchar(20);not null;default:'active';index"`
	CanceledAt *time.Time
}

// TableName returns the table name for GORM
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts the persistence model to a domain Payment entity.
func (m *PaymentModel) ToDomain() *finance.Payment {
	return &finance.Payment{
		AuditedAggregateRoot: m.ToDomainAuditedAggregateRoot(),
		SaleID:               m.SaleID,
		Amount:               m.Amount,
		Currency:             valueobject.Currency(m.Currency),
		Method:               m.Method,
		Reference:            m.Reference,
		Status:               m.Status,
		CanceledAt:           m.CanceledAt,
	}
}

// FromDomain populates the persistence model from a domain Payment entity.
func (m *PaymentModel) FromDomain(p *finance.Payment) {
	m.FromDomainAuditedAggregateRoot(p.AuditedAggregateRoot)
	m.SaleID = p.SaleID
	m.Amount = p.Amount
	m.Currency = p.Currency.String()
	m.Method = p.Method
	m.Reference = p.Reference
	m.Status = p.Status
	m.CanceledAt = p.CanceledAt
}

// PaymentModelFromDomain creates a new persistence model from a domain Payment entity.
func PaymentModelFromDomain(p *finance.Payment) *PaymentModel {
	m := &PaymentModel{}
	m.FromDomain(p)
	return m
}

// RefundModel is the persistence model for the Refund aggregate root. There
// is at most one refund row per sale.
type RefundModel struct {
	AuditedAggregateModel
	SaleID            uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	ClientID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	Currency          string          `gorm:"type:varchar(3);not null"`
	TotalRefundAmount decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (RefundModel) TableName() string {
	return "refunds"
}

// ToDomain converts the persistence model to a domain Refund entity.
func (m *RefundModel) ToDomain() *finance.Refund {
	return &finance.Refund{
		AuditedAggregateRoot: m.ToDomainAuditedAggregateRoot(),
		SaleID:               m.SaleID,
		ClientID:             m.ClientID,
		Currency:             valueobject.Currency(m.Currency),
		TotalRefundAmount:    m.TotalRefundAmount,
	}
}

// FromDomain populates the persistence model from a domain Refund entity.
func (m *RefundModel) FromDomain(r *finance.Refund) {
	m.FromDomainAuditedAggregateRoot(r.AuditedAggregateRoot)
	m.SaleID = r.SaleID
	m.ClientID = r.ClientID
	m.Currency = r.Currency.String()
	m.TotalRefundAmount = r.TotalRefundAmount
}

// RefundModelFromDomain creates a new persistence model from a domain Refund entity.
func RefundModelFromDomain(r *finance.Refund) *RefundModel {
	m := &RefundModel{}
	m.FromDomain(r)
	return m
}

// RefundPaymentModel is the persistence model for the RefundPayment aggregate root.
type RefundPaymentModel struct {
	AuditedAggregateModel
	RefundID   uuid.UUID             `gorm:"type:uuid;not null;index"`
	Amount     decimal.Decimal       `gorm:"type:decimal(18,4);not null"`
	Currency   string                `gorm:"type:varchar(3);not null"`
	Method     finance.PaymentMethod `gorm:"type:varchar(20);not null"`
	Reference  string                `gorm:"type:varchar(100)"`
	Status     finance.PaymentStatus `gorm:"type:varchar(20);not null;default:'active';index"`
	CanceledAt *time.Time
}

// TableName returns the table name for GORM
func (RefundPaymentModel) TableName() string {
	return "refund_payments"
}

// ToDomain converts the persistence model to a domain RefundPayment entity.
func (m *RefundPaymentModel) ToDomain() *finance.RefundPayment {
	return &finance.RefundPayment{
		AuditedAggregateRoot: m.ToDomainAuditedAggregateRoot(),
		RefundID:             m.RefundID,
		Amount:               m.Amount,
		Currency:             valueobject.Currency(m.Currency),
		Method:               m.Method,
		Reference:            m.Reference,
		Status:               m.Status,
		CanceledAt:           m.CanceledAt,
	}
}

// FromDomain populates the persistence model from a domain RefundPayment entity.
func (m *RefundPaymentModel) FromDomain(p *finance.RefundPayment) {
	m.FromDomainAuditedAggregateRoot(p.AuditedAggregateRoot)
	m.RefundID = p.RefundID
	m.Amount = p.Amount
	m.Currency = p.Currency.String()
	m.Method = p.Method
	m.Reference = p.Reference
	m.Status = p.Status
	m.CanceledAt = p.CanceledAt
}

// RefundPaymentModelFromDomain creates a new persistence model from a domain RefundPayment entity.
func RefundPaymentModelFromDomain(p *finance.RefundPayment) *RefundPaymentModel {
	m := &RefundPaymentModel{}
	m.FromDomain(p)
	return m
}
