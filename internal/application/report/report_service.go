package report

import (
	"context"
	"time"

	"github.com/boutikla/backend/internal/domain/finance"
	"github.com/boutikla/backend/internal/domain/partner"
	"github.com/boutikla/backend/internal/domain/report"
	"github.com/boutikla/backend/internal/domain/trade"
	"github.com/google/uuid"
)

// ReportService serves aggregated sales and stock reports plus printable
// receipts. Report amounts are normalized to the base currency; receipts
// stay in the sale's own currency.
type ReportService struct {
	reportRepo  report.Repository
	saleRepo    trade.SaleRepository
	paymentRepo finance.PaymentRepository
	clientRepo  partner.ClientRepository
}

// NewReportService creates a new ReportService
func NewReportService(
	reportRepo report.Repository,
	saleRepo trade.SaleRepository,
	paymentRepo finance.PaymentRepository,
	clientRepo partner.ClientRepository,
) *ReportService {
	return &ReportService{
		reportRepo:  reportRepo,
		saleRepo:    saleRepo,
		paymentRepo: paymentRepo,
		clientRepo:  clientRepo,
	}
}

// SalesSummary returns aggregated sales statistics for a period. The period
// defaults to the last 30 days.
func (s *ReportService) SalesSummary(ctx context.Context, req SalesReportRequest) (*report.SalesSummary, error) {
	return s.reportRepo.GetSalesSummary(ctx, normalizeFilter(req))
}

// DailySalesTrend returns day-by-day sales for a period
func (s *ReportService) DailySalesTrend(ctx context.Context, req SalesReportRequest) ([]report.DailySales, error) {
	return s.reportRepo.GetDailySalesTrend(ctx, normalizeFilter(req))
}

// StockReport returns the current stock position across the catalog
func (s *ReportService) StockReport(ctx context.Context) (*report.StockReport, error) {
	return s.reportRepo.GetStockReport(ctx)
}

// Receipt assembles the printable receipt of a sale: the frozen lines and
// rate, the client's contact details and the payment history.
func (s *ReportService) Receipt(ctx context.Context, saleID uuid.UUID) (*ReceiptResponse, error) {
	sale, err := s.saleRepo.FindByID(ctx, saleID)
	if err != nil {
		return nil, err
	}

	payments, err := s.paymentRepo.FindBySale(ctx, saleID)
	if err != nil {
		return nil, err
	}

	paid, err := s.paymentRepo.ActiveTotal(ctx, saleID)
	if err != nil {
		return nil, err
	}

	// The client may have been deleted since the sale; the receipt then
	// falls back to the name frozen on the sale.
	var client *partner.Client
	if c, err := s.clientRepo.FindByID(ctx, sale.ClientID); err == nil {
		client = c
	}

	receipt := buildReceipt(sale, client, payments, paid)
	return &receipt, nil
}

func normalizeFilter(req SalesReportRequest) report.SalesReportFilter {
	filter := report.SalesReportFilter{
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		ClientID:  req.ClientID,
	}
	if filter.EndDate.IsZero() {
		filter.EndDate = time.Now()
	}
	if filter.StartDate.IsZero() {
		filter.StartDate = filter.EndDate.AddDate(0, 0, -30)
	}
	return filter
}
