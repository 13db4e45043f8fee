package trade

import (
	"time"

	"github.com/boutikla/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PurchaseOrderItemRequest is one line of a purchase order request. Prices
// are per unit in the base currency.
type PurchaseOrderItemRequest struct {
	ProductID     uuid.UUID       `json:"product_id" binding:"required"`
	Quantity      int             `json:"quantity" binding:"required,gt=0"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SalePrice     decimal.Decimal `json:"sale_price"`
}

// CreatePurchaseOrderRequest is the input for creating a purchase order
type CreatePurchaseOrderRequest struct {
	SupplierID uuid.UUID                  `json:"supplier_id" binding:"required"`
	Items      []PurchaseOrderItemRequest `json:"items" binding:"required,min=1"`
	Remarks    string                     `json:"remarks"`
}

// UpdatePurchaseOrderRequest is the input for editing a pending order. The
// item list replaces the order's lines.
type UpdatePurchaseOrderRequest struct {
	Items   []PurchaseOrderItemRequest `json:"items" binding:"required,min=1"`
	Remarks string                     `json:"remarks"`
}

// CompletePurchaseOrderRequest is the input for completing an order
type CompletePurchaseOrderRequest struct {
	UpdatePrices bool `json:"update_prices"`
}

// PurchaseOrderItemResponse is the API representation of an order line
type PurchaseOrderItemResponse struct {
	ID            uuid.UUID       `json:"id"`
	ProductID     uuid.UUID       `json:"product_id"`
	ProductName   string          `json:"product_name"`
	Quantity      int             `json:"quantity"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SalePrice     decimal.Decimal `json:"sale_price"`
	Amount        decimal.Decimal `json:"amount"`
}

// PurchaseOrderResponse is the API representation of a purchase order
type PurchaseOrderResponse struct {
	ID           uuid.UUID                   `json:"id"`
	SupplierID   uuid.UUID                   `json:"supplier_id"`
	SupplierName string                      `json:"supplier_name"`
	Items        []PurchaseOrderItemResponse `json:"items"`
	TotalAmount  decimal.Decimal             `json:"total_amount"`
	Status       string                      `json:"status"`
	Remarks      string                      `json:"remarks,omitempty"`
	CompletedAt  *time.Time                  `json:"completed_at,omitempty"`
	CanceledAt   *time.Time                  `json:"canceled_at,omitempty"`
	CreatedAt    time.Time                   `json:"created_at"`
	UpdatedAt    time.Time                   `json:"updated_at"`
}

// ToPurchaseOrderResponse converts a domain order to its API representation
func ToPurchaseOrderResponse(o *trade.PurchaseOrder) PurchaseOrderResponse {
	items := make([]PurchaseOrderItemResponse, len(o.Items))
	for i, item := range o.Items {
		items[i] = PurchaseOrderItemResponse{
			ID:            item.ID,
			ProductID:     item.ProductID,
			ProductName:   item.ProductName,
			Quantity:      item.Quantity,
			PurchasePrice: item.PurchasePrice,
			SalePrice:     item.SalePrice,
			Amount:        item.Amount,
		}
	}
	return PurchaseOrderResponse{
		ID:           o.ID,
		SupplierID:   o.SupplierID,
		SupplierName: o.SupplierName,
		Items:        items,
		TotalAmount:  o.TotalAmount,
		Status:       o.Status.String(),
		Remarks:      o.Remarks,
		CompletedAt:  o.CompletedAt,
		CanceledAt:   o.CanceledAt,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}
}

// SaleItemRequest is one line of a sale request. The price comes from the
// catalog; only quantity, tax and discount are client-supplied.
type SaleItemRequest struct {
	ProductID       uuid.UUID       `json:"product_id" binding:"required"`
	Quantity        int             `json:"quantity" binding:"required,gt=0"`
	TaxPercent      decimal.Decimal `json:"tax_percent"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
}

// CreateSaleRequest is the input for recording a sale
type CreateSaleRequest struct {
	ClientID   uuid.UUID         `json:"client_id" binding:"required"`
	Currency   string            `json:"currency" binding:"required"`
	CreditSale bool              `json:"credit_sale"`
	Items      []SaleItemRequest `json:"items" binding:"required,min=1"`
	Remarks    string            `json:"remarks"`
}

// UpdateSaleRequest is the input for editing a pending non-credit sale. The
// item list replaces the sale's lines.
type UpdateSaleRequest struct {
	Items   []SaleItemRequest `json:"items" binding:"required,min=1"`
	Remarks string            `json:"remarks"`
}

// SaleItemResponse is the API representation of a sale line
type SaleItemResponse struct {
	ID              uuid.UUID       `json:"id"`
	ProductID       uuid.UUID       `json:"product_id"`
	ProductName     string          `json:"product_name"`
	Quantity        int             `json:"quantity"`
	BasePrice       decimal.Decimal `json:"base_price"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	TaxPercent      decimal.Decimal `json:"tax_percent"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	LineTotal       decimal.Decimal `json:"line_total"`
}

// SaleResponse is the API representation of a sale
type SaleResponse struct {
	ID           uuid.UUID          `json:"id"`
	ClientID     uuid.UUID          `json:"client_id"`
	ClientName   string             `json:"client_name"`
	Currency     string             `json:"currency"`
	ExchangeRate decimal.Decimal    `json:"exchange_rate"`
	Items        []SaleItemResponse `json:"items"`
	TotalAmount  decimal.Decimal    `json:"total_amount"`
	CreditSale   bool               `json:"credit_sale"`
	Status       string             `json:"status"`
	Remarks      string             `json:"remarks,omitempty"`
	CompletedAt  *time.Time         `json:"completed_at,omitempty"`
	CanceledAt   *time.Time         `json:"canceled_at,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// ToSaleResponse converts a domain sale to its API representation
func ToSaleResponse(s *trade.Sale) SaleResponse {
	items := make([]SaleItemResponse, len(s.Items))
	for i, item := range s.Items {
		items[i] = SaleItemResponse{
			ID:              item.ID,
			ProductID:       item.ProductID,
			ProductName:     item.ProductName,
			Quantity:        item.Quantity,
			BasePrice:       item.BasePrice,
			UnitPrice:       item.UnitPrice,
			TaxPercent:      item.TaxPercent,
			DiscountPercent: item.DiscountPercent,
			LineTotal:       item.LineTotal,
		}
	}
	return SaleResponse{
		ID:           s.ID,
		ClientID:     s.ClientID,
		ClientName:   s.ClientName,
		Currency:     s.Currency.String(),
		ExchangeRate: s.ExchangeRate,
		Items:        items,
		TotalAmount:  s.TotalAmount,
		CreditSale:   s.CreditSale,
		Status:       s.Status.String(),
		Remarks:      s.Remarks,
		CompletedAt:  s.CompletedAt,
		CanceledAt:   s.CanceledAt,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

// ReturnItemRequest is one line of a return request
type ReturnItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,gt=0"`
}

// CreateReturnRequest is the input for recording a sale return
type CreateReturnRequest struct {
	SaleID  uuid.UUID           `json:"sale_id" binding:"required"`
	Items   []ReturnItemRequest `json:"items" binding:"required,min=1"`
	Remarks string              `json:"remarks"`
}

// ReturnItemResponse is the API representation of a return line
type ReturnItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitValue   decimal.Decimal `json:"unit_value"`
	Amount      decimal.Decimal `json:"amount"`
}

// ReturnResponse is the API representation of a sale return
type ReturnResponse struct {
	ID          uuid.UUID            `json:"id"`
	SaleID      uuid.UUID            `json:"sale_id"`
	ClientID    uuid.UUID            `json:"client_id"`
	Currency    string               `json:"currency"`
	Items       []ReturnItemResponse `json:"items"`
	TotalAmount decimal.Decimal      `json:"total_amount"`
	Status      string               `json:"status"`
	Remarks     string               `json:"remarks,omitempty"`
	CanceledAt  *time.Time           `json:"canceled_at,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// ToReturnResponse converts a domain return to its API representation
func ToReturnResponse(r *trade.Return) ReturnResponse {
	items := make([]ReturnItemResponse, len(r.Items))
	for i, item := range r.Items {
		items[i] = ReturnItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitValue:   item.UnitValue,
			Amount:      item.Amount,
		}
	}
	return ReturnResponse{
		ID:          r.ID,
		SaleID:      r.SaleID,
		ClientID:    r.ClientID,
		Currency:    r.Currency.String(),
		Items:       items,
		TotalAmount: r.TotalAmount,
		Status:      string(r.Status),
		Remarks:     r.Remarks,
		CanceledAt:  r.CanceledAt,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// ListFilter carries pagination and search parameters from the API layer
type ListFilter struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir"`
	Search   string `form:"search"`
}

// PurchaseOrderListFilter carries purchase order list parameters
type PurchaseOrderListFilter struct {
	ListFilter
	SupplierID *uuid.UUID `form:"supplier_id"`
	Status     string     `form:"status"`
	StartDate  *time.Time `form:"start_date" time_format:"2006-01-02"`
	EndDate    *time.Time `form:"end_date" time_format:"2006-01-02"`
}

// SaleListFilter carries sale list parameters
type SaleListFilter struct {
	ListFilter
	ClientID   *uuid.UUID `form:"client_id"`
	Status     string     `form:"status"`
	Currency   string     `form:"currency"`
	CreditSale *bool      `form:"credit_sale"`
	StartDate  *time.Time `form:"start_date" time_format:"2006-01-02"`
	EndDate    *time.Time `form:"end_date" time_format:"2006-01-02"`
}
