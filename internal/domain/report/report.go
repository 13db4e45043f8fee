package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SalesSummary provides aggregated sales statistics for a period.
// Amounts are in the base currency.
type SalesSummary struct {
	PeriodStart     time.Time       `json:"period_start"`
	PeriodEnd       time.Time       `json:"period_end"`
	TotalSales      int64           `json:"total_sales"`
	TotalQuantity   int64           `json:"total_quantity"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	CreditSales     int64           `json:"credit_sales"`
	CreditAmount    decimal.Decimal `json:"credit_amount"`
	AvgSaleValue    decimal.Decimal `json:"avg_sale_value"`
	ReturnedAmount  decimal.Decimal `json:"returned_amount"`
	CollectedAmount decimal.Decimal `json:"collected_amount"`
}

// DailySales represents one day's sales in a trend series
type DailySales struct {
	Date        time.Time       `json:"date"`
	SaleCount   int64           `json:"sale_count"`
	ItemsSold   int64           `json:"items_sold"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// StockLine is one product row of the stock report
type StockLine struct {
	ProductID     uuid.UUID       `json:"product_id"`
	ProductName   string          `json:"product_name"`
	Barcode       string          `json:"barcode,omitempty"`
	StockQuantity int             `json:"stock_quantity"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SalePrice     decimal.Decimal `json:"sale_price"`
	PurchaseValue decimal.Decimal `json:"purchase_value"`
	SaleValue     decimal.Decimal `json:"sale_value"`
}

// StockReport aggregates the stock position across the catalog
type StockReport struct {
	GeneratedAt        time.Time       `json:"generated_at"`
	Lines              []StockLine     `json:"lines"`
	TotalUnits         int64           `json:"total_units"`
	TotalPurchaseValue decimal.Decimal `json:"total_purchase_value"`
	TotalSaleValue     decimal.Decimal `json:"total_sale_value"`
}

// SalesReportFilter defines filtering options for sales reports
type SalesReportFilter struct {
	StartDate time.Time  `json:"start_date"`
	EndDate   time.Time  `json:"end_date"`
	ClientID  *uuid.UUID `json:"client_id,omitempty"`
}

// Repository defines the read-side queries backing the reports
type Repository interface {
	GetSalesSummary(ctx context.Context, filter SalesReportFilter) (*SalesSummary, error)
	GetDailySalesTrend(ctx context.Context, filter SalesReportFilter) ([]DailySales, error)
	GetStockReport(ctx context.Context) (*StockReport, error)
}
