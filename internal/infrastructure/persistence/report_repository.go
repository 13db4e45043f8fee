package persistence

import (
	"context"
	"time"

	"github.com/boutikla/backend/internal/domain/finance"
	"github.com/boutikla/backend/internal/domain/report"
	"github.com/boutikla/backend/internal/domain/trade"
	"github.com/boutikla/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormReportRepository implements report.Repository using GORM.
// Sales amounts are normalized to the base currency with the exchange rate
// frozen on each sale row.
type GormReportRepository struct {
	db *gorm.DB
}

// NewGormReportRepository creates a new GormReportRepository
func NewGormReportRepository(db *gorm.DB) *GormReportRepository {
	return &GormReportRepository{db: db}
}

// reportable sales are everything except canceled ones
var reportableStatuses = []trade.SaleStatus{trade.SaleStatusPending, trade.SaleStatusCompleted}

// GetSalesSummary returns aggregated sales statistics for the period
func (r *GormReportRepository) GetSalesSummary(ctx context.Context, filter report.SalesReportFilter) (*report.SalesSummary, error) {
	type summaryResult struct {
		TotalSales   int64
		TotalAmount  decimal.Decimal
		CreditSales  int64
		CreditAmount decimal.Decimal
	}

	var result summaryResult
	query := dbFromContext(ctx, r.db).Table("sales s").
		Select(`
			COUNT(s.id) as total_sales,
			COALESCE(SUM(CASE WHEN s.currency = 'USD' THEN s.total_amount ELSE s.total_amount / s.exchange_rate END), 0) as total_amount,
			COALESCE(SUM(CASE WHEN s.credit_sale THEN 1 ELSE 0 END), 0) as credit_sales,
			COALESCE(SUM(CASE WHEN s.credit_sale THEN (CASE WHEN s.currency = 'USD' THEN s.total_amount ELSE s.total_amount / s.exchange_rate END) ELSE 0 END), 0) as credit_amount
		`).
		Where("s.created_at BETWEEN ? AND ?", filter.StartDate, filter.EndDate).
		Where("s.status IN ?", reportableStatuses)

	if filter.ClientID != nil {
		query = query.Where("s.client_id = ?", *filter.ClientID)
	}

	if err := query.Scan(&result).Error; err != nil {
		return nil, err
	}

	var totalQuantity int64
	qtyQuery := dbFromContext(ctx, r.db).Table("sale_items si").
		Select("COALESCE(SUM(si.quantity), 0)").
		Joins("JOIN sales s ON s.id = si.sale_id").
		Where("s.created_at BETWEEN ? AND ?", filter.StartDate, filter.EndDate).
		Where("s.status IN ?", reportableStatuses)
	if filter.ClientID != nil {
		qtyQuery = qtyQuery.Where("s.client_id = ?", *filter.ClientID)
	}
	if err := qtyQuery.Scan(&totalQuantity).Error; err != nil {
		return nil, err
	}

	returnedAmount, err := r.sumReturns(ctx, filter)
	if err != nil {
		return nil, err
	}
	collectedAmount, err := r.sumPayments(ctx, filter)
	if err != nil {
		return nil, err
	}

	var avgSaleValue decimal.Decimal
	if result.TotalSales > 0 {
		avgSaleValue = result.TotalAmount.Div(decimal.NewFromInt(result.TotalSales))
	}

	return &report.SalesSummary{
		PeriodStart:     filter.StartDate,
		PeriodEnd:       filter.EndDate,
		TotalSales:      result.TotalSales,
		TotalQuantity:   totalQuantity,
		TotalAmount:     result.TotalAmount,
		CreditSales:     result.CreditSales,
		CreditAmount:    result.CreditAmount,
		AvgSaleValue:    avgSaleValue,
		ReturnedAmount:  returnedAmount,
		CollectedAmount: collectedAmount,
	}, nil
}

func (r *GormReportRepository) sumReturns(ctx context.Context, filter report.SalesReportFilter) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	query := dbFromContext(ctx, r.db).Table("returns rt").
		Select("COALESCE(SUM(CASE WHEN rt.currency = 'USD' THEN rt.total_amount ELSE rt.total_amount / s.exchange_rate END), 0)").
		Joins("JOIN sales s ON s.id = rt.sale_id").
		Where("rt.created_at BETWEEN ? AND ?", filter.StartDate, filter.EndDate).
		Where("rt.status = ?", trade.ReturnStatusActive)
	if filter.ClientID != nil {
		query = query.Where("rt.client_id = ?", *filter.ClientID)
	}
	if err := query.Scan(&total).Error; err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

func (r *GormReportRepository) sumPayments(ctx context.Context, filter report.SalesReportFilter) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	query := dbFromContext(ctx, r.db).Table("payments p").
		Select("COALESCE(SUM(CASE WHEN p.currency = 'USD' THEN p.amount ELSE p.amount / s.exchange_rate END), 0)").
		Joins("JOIN sales s ON s.id = p.sale_id").
		Where("p.created_at BETWEEN ? AND ?", filter.StartDate, filter.EndDate).
		Where("p.status = ?", finance.PaymentStatusActive)
	if filter.ClientID != nil {
		query = query.Where("s.client_id = ?", *filter.ClientID)
	}
	if err := query.Scan(&total).Error; err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

// GetDailySalesTrend returns daily sales totals for the period
func (r *GormReportRepository) GetDailySalesTrend(ctx context.Context, filter report.SalesReportFilter) ([]report.DailySales, error) {
	type dailyResult struct {
		Date        time.Time
		SaleCount   int64
		ItemsSold   int64
		TotalAmount decimal.Decimal
	}

	var results []dailyResult
	query := dbFromContext(ctx, r.db).Table("sales s").
		Select(`
			DATE(s.created_at) as date,
			COUNT(DISTINCT s.id) as sale_count,
			COALESCE(SUM(si.quantity), 0) as items_sold,
			COALESCE(SUM(CASE WHEN s.currency = 'USD' THEN si.line_total ELSE si.line_total / s.exchange_rate END), 0) as total_amount
		`).
		Joins("LEFT JOIN sale_items si ON si.sale_id = s.id").
		Where("s.created_at BETWEEN ? AND ?", filter.StartDate, filter.EndDate).
		Where("s.status IN ?", reportableStatuses).
		Group("DATE(s.created_at)").
		Order("date ASC")

	if filter.ClientID != nil {
		query = query.Where("s.client_id = ?", *filter.ClientID)
	}

	if err := query.Scan(&results).Error; err != nil {
		return nil, err
	}

	trend := make([]report.DailySales, len(results))
	for i, row := range results {
		trend[i] = report.DailySales{
			Date:        row.Date,
			SaleCount:   row.SaleCount,
			ItemsSold:   row.ItemsSold,
			TotalAmount: row.TotalAmount,
		}
	}
	return trend, nil
}

// GetStockReport returns the current stock position across the catalog
func (r *GormReportRepository) GetStockReport(ctx context.Context) (*report.StockReport, error) {
	var productModels []models.ProductModel
	if err := dbFromContext(ctx, r.db).
		Model(&models.ProductModel{}).
		Order("name ASC").
		Find(&productModels).Error; err != nil {
		return nil, err
	}

	result := &report.StockReport{
		GeneratedAt: time.Now(),
		Lines:       make([]report.StockLine, len(productModels)),
	}
	for i, p := range productModels {
		qty := decimal.NewFromInt(int64(p.StockQuantity))
		line := report.StockLine{
			ProductID:     p.ID,
			ProductName:   p.Name,
			Barcode:       p.Barcode,
			StockQuantity: p.StockQuantity,
			PurchasePrice: p.PurchasePrice,
			SalePrice:     p.SalePrice,
			PurchaseValue: p.PurchasePrice.Mul(qty),
			SaleValue:     p.SalePrice.Mul(qty),
		}
		result.Lines[i] = line
		result.TotalUnits += int64(p.StockQuantity)
		result.TotalPurchaseValue = result.TotalPurchaseValue.Add(line.PurchaseValue)
		result.TotalSaleValue = result.TotalSaleValue.Add(line.SaleValue)
	}
	return result, nil
}

// Ensure GormReportRepository implements report.Repository
var _ report.Repository = (*GormReportRepository)(nil)
