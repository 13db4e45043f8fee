package models

import (
	"time"

	"github.com/boutikla/backend/internal/domain/shared/valueobject"
	"github.com/boutikla/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PurchaseOrderModel is the persistence model for the PurchaseOrder aggregate root.
type PurchaseOrderModel struct {
	AuditedAggregateModel
	SupplierID   uuid.UUID                 `gorm:"type:uuid;not null;index"`
	SupplierName string                    `gorm:"type:varchar(200);not null"`
	Items        []PurchaseOrderItemModel  `gorm:"foreignKey:OrderID;references:ID;constraint:OnDelete:CASCADE"`
	TotalAmount  decimal.Decimal           `gorm:"type:decimal(18,4);not null;default:0"`
	Status       trade.PurchaseOrderStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	Remarks      string                    `gorm:"type:text"`
	CompletedAt  *time.Time                `gorm:"index"`
	CanceledAt   *time.Time
}

// TableName returns the table name for GORM
func (PurchaseOrderModel) TableName() string {
	return "purchase_orders"
}

// ToDomain converts the persistence model to a domain PurchaseOrder entity.
func (m *PurchaseOrderModel) ToDomain() *trade.PurchaseOrder {
	order := &trade.PurchaseOrder{
		AuditedAggregateRoot: m.ToDomainAuditedAggregateRoot(),
		SupplierID:           m.SupplierID,
		SupplierName:         m.SupplierName,
		TotalAmount:          m.TotalAmount,
		Status:               m.Status,
		Remarks:              m.Remarks,
		CompletedAt:          m.CompletedAt,
		CanceledAt:           m.CanceledAt,
		Items:                make([]trade.PurchaseOrderItem, len(m.Items)),
	}
	for i, item := range m.Items {
		order.Items[i] = *item.ToDomain()
	}
	return order
}

// FromDomain populates the persistence model from a domain PurchaseOrder entity.
func (m *PurchaseOrderModel) FromDomain(o *trade.PurchaseOrder) {
	m.FromDomainAuditedAggregateRoot(o.AuditedAggregateRoot)
	m.SupplierID = o.SupplierID
	m.SupplierName = o.SupplierName
	m.TotalAmount = o.TotalAmount
	m.Status = o.Status
	m.Remarks = o.Remarks
	m.CompletedAt = o.CompletedAt
	m.CanceledAt = o.CanceledAt
	m.Items = make([]PurchaseOrderItemModel, len(o.Items))
	for i, item := range o.Items {
		m.Items[i].FromDomain(&item)
	}
}

// PurchaseOrderModelFromDomain creates a new persistence model from a domain PurchaseOrder entity.
func PurchaseOrderModelFromDomain(o *trade.PurchaseOrder) *PurchaseOrderModel {
	m := &PurchaseOrderModel{}
	m.FromDomain(o)
	return m
}

// PurchaseOrderItemModel is the persistence model for the PurchaseOrderItem entity.
type PurchaseOrderItemModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key"`
	OrderID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName   string          `gorm:"type:varchar(200);not null"`
	Quantity      int             `gorm:"not null"`
	PurchasePrice decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	SalePrice     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CreatedAt     time.Time       `gorm:"not null"`
	UpdatedAt     time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PurchaseOrderItemModel) TableName() string {
	return "purchase_order_items"
}

// ToDomain converts the persistence model to a domain PurchaseOrderItem entity.
func (m *PurchaseOrderItemModel) ToDomain() *trade.PurchaseOrderItem {
	return &trade.PurchaseOrderItem{
		ID:            m.ID,
		OrderID:       m.OrderID,
		ProductID:     m.ProductID,
		ProductName:   m.ProductName,
		Quantity:      m.Quantity,
		PurchasePrice: m.PurchasePrice,
		SalePrice:     m.SalePrice,
		Amount:        m.Amount,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// FromDomain populates the persistence model from a domain PurchaseOrderItem entity.
func (m *PurchaseOrderItemModel) FromDomain(i *trade.PurchaseOrderItem) {
	m.ID = i.ID
	m.OrderID = i.OrderID
	m.ProductID = i.ProductID
	m.ProductName = i.ProductName
	m.Quantity = i.Quantity
	m.PurchasePrice = i.PurchasePrice
	m.SalePrice = i.SalePrice
	m.Amount = i.Amount
	m.CreatedAt = i.CreatedAt
	m.UpdatedAt = i.UpdatedAt
}

// SaleModel is the persistence model for the Sale aggregate root. The
// exchange rate in effect at creation is stored on the row so historical
// totals stay fixed.
type SaleModel struct {
	AuditedAggregateModel
	ClientID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ClientName   string          `gorm:"type:varchar(200);not null"`
	Currency     string          `gorm:"type:varchar(3);not null"`
	ExchangeRate decimal.Decimal `gorm:"type:decimal(18,6);not null"`
	Items        []SaleItemModel `gorm:"foreignKey:SaleID;references:ID;constraint:OnDelete:CASCADE"`
	TotalAmount  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	CreditSale   bool            `gorm:"not null;default:false"`
	Status       trade.SaleStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	Remarks      string          `gorm:"type:text"`
	CompletedAt  *time.Time      `gorm:"index"`
	CanceledAt   *time.Time
}

// TableName returns the table name for GORM
func (SaleModel) TableName() string {
	return "sales"
}

// ToDomain converts the persistence model to a domain Sale entity.
func (m *SaleModel) ToDomain() *trade.Sale {
	sale := &trade.Sale{
		AuditedAggregateRoot: m.ToDomainAuditedAggregateRoot(),
		ClientID:             m.ClientID,
		ClientName:           m.ClientName,
		Currency:             valueobject.Currency(m.Currency),
		ExchangeRate:         m.ExchangeRate,
		TotalAmount:          m.TotalAmount,
		CreditSale:           m.CreditSale,
		Status:               m.Status,
		Remarks:              m.Remarks,
		CompletedAt:          m.CompletedAt,
		CanceledAt:           m.CanceledAt,
		Items:                make([]trade.SaleItem, len(m.Items)),
	}
	for i, item := range m.Items {
		sale.Items[i] = *item.ToDomain()
	}
	return sale
}

// FromDomain populates the persistence model from a domain Sale entity.
func (m *SaleModel) FromDomain(s *trade.Sale) {
	m.FromDomainAuditedAggregateRoot(s.AuditedAggregateRoot)
	m.ClientID = s.ClientID
	m.ClientName = s.ClientName
	m.Currency = s.Currency.String()
	m.ExchangeRate = s.ExchangeRate
	m.TotalAmount = s.TotalAmount
	m.CreditSale = s.CreditSale
	m.Status = s.Status
	m.Remarks = s.Remarks
	m.CompletedAt = s.CompletedAt
	m.CanceledAt = s.CanceledAt
	m.Items = make([]SaleItemModel, len(s.Items))
	for i, item := range s.Items {
		m.Items[i].FromDomain(&item)
	}
}

// SaleModelFromDomain creates a new persistence model from a domain Sale entity.
func SaleModelFromDomain(s *trade.Sale) *SaleModel {
	m := &SaleModel{}
	m.FromDomain(s)
	return m
}

// SaleItemModel is the persistence model for the SaleItem entity.
type SaleItemModel struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key"`
	SaleID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName     string          `gorm:"type:varchar(200);not null"`
	Quantity        int             `gorm:"not null"`
	BasePrice       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitPrice       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	TaxPercent      decimal.Decimal `gorm:"type:decimal(9,4);not null;default:0"`
	DiscountPercent decimal.Decimal `gorm:"type:decimal(9,4);not null;default:0"`
	LineTotal       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CreatedAt       time.Time       `gorm:"not null"`
	UpdatedAt       time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (SaleItemModel) TableName() string {
	return "sale_items"
}

// ToDomain converts the persistence model to a domain SaleItem entity.
func (m *SaleItemModel) ToDomain() *trade.SaleItem {
	return &trade.SaleItem{
		ID:              m.ID,
		SaleID:          m.SaleID,
		ProductID:       m.ProductID,
		ProductName:     m.ProductName,
		Quantity:        m.Quantity,
		BasePrice:       m.BasePrice,
		UnitPrice:       m.UnitPrice,
		TaxPercent:      m.TaxPercent,
		DiscountPercent: m.DiscountPercent,
		LineTotal:       m.LineTotal,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// FromDomain populates the persistence model from a domain SaleItem entity.
func (m *SaleItemModel) FromDomain(i *trade.SaleItem) {
	m.ID = i.ID
	m.SaleID = i.SaleID
	m.ProductID = i.ProductID
	m.ProductName = i.ProductName
	m.Quantity = i.Quantity
	m.BasePrice = i.BasePrice
	m.UnitPrice = i.UnitPrice
	m.TaxPercent = i.TaxPercent
	m.DiscountPercent = i.DiscountPercent
	m.LineTotal = i.LineTotal
	m.CreatedAt = i.CreatedAt
	m.UpdatedAt = i.UpdatedAt
}

// ReturnModel is the persistence model for the Return aggregate root.
type ReturnModel struct {
	AuditedAggregateModel
	SaleID      uuid.UUID          `gorm:"type:uuid;not null;index"`
	ClientID    uuid.UUID          `gorm:"type:uuid;not null;index"`
	Currency    string             `gorm:"type:varchar(3);not null"`
	Items       []ReturnItemModel  `gorm:"foreignKey:ReturnID;references:ID;constraint:OnDelete:CASCADE"`
	TotalAmount decimal.Decimal    `gorm:"type:decimal(18,4);not null;default:0"`
	Status      trade.ReturnStatus `gorm:"type:varchar(20);not null;default:'active';index"`
	Remarks     string             `gorm:"type:text"`
	CanceledAt  *time.Time
}

// TableName returns the table name for GORM
func (ReturnModel) TableName() string {
	return "returns"
}

// ToDomain converts the persistence model to a domain Return entity.
func (m *ReturnModel) ToDomain() *trade.Return {
	r := &trade.Return{
		AuditedAggregateRoot: m.ToDomainAuditedAggregateRoot(),
		SaleID:               m.SaleID,
		ClientID:             m.ClientID,
		Currency:             valueobject.Currency(m.Currency),
		TotalAmount:          m.TotalAmount,
		Status:               m.Status,
		Remarks:              m.Remarks,
		CanceledAt:           m.CanceledAt,
		Items:                make([]trade.ReturnItem, len(m.Items)),
	}
	for i, item := range m.Items {
		r.Items[i] = *item.ToDomain()
	}
	return r
}

// FromDomain populates the persistence model from a domain Return entity.
func (m *ReturnModel) FromDomain(r *trade.Return) {
	m.FromDomainAuditedAggregateRoot(r.AuditedAggregateRoot)
	m.SaleID = r.SaleID
	m.ClientID = r.ClientID
	m.Currency = r.Currency.String()
	m.TotalAmount = r.TotalAmount
	m.Status = r.Status
	m.Remarks = r.Remarks
	m.CanceledAt = r.CanceledAt
	m.Items = make([]ReturnItemModel, len(r.Items))
	for i, item := range r.Items {
		m.Items[i].FromDomain(&item)
	}
}

// ReturnModelFromDomain creates a new persistence model from a domain Return entity.
func ReturnModelFromDomain(r *trade.Return) *ReturnModel {
	m := &ReturnModel{}
	m.FromDomain(r)
	return m
}

// ReturnItemModel is the persistence model for the ReturnItem entity.
type ReturnItemModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	ReturnID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName string          `gorm:"type:varchar(200);not null"`
	Quantity    int             `gorm:"not null"`
	UnitValue   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CreatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ReturnItemModel) TableName() string {
	return "return_items"
}

// ToDomain converts the persistence model to a domain ReturnItem entity.
func (m *ReturnItemModel) ToDomain() *trade.ReturnItem {
	return &trade.ReturnItem{
		ID:          m.ID,
		ReturnID:    m.ReturnID,
		ProductID:   m.ProductID,
		ProductName: m.ProductName,
		Quantity:    m.Quantity,
		UnitValue:   m.UnitValue,
		Amount:      m.Amount,
		CreatedAt:   m.CreatedAt,
	}
}

// FromDomain populates the persistence model from a domain ReturnItem entity.
func (m *ReturnItemModel) FromDomain(i *trade.ReturnItem) {
	m.ID = i.ID
	m.ReturnID = i.ReturnID
	m.ProductID = i.ProductID
	m.ProductName = i.ProductName
	m.Quantity = i.Quantity
	m.UnitValue = i.UnitValue
	m.Amount = i.Amount
	m.CreatedAt = i.CreatedAt
}
