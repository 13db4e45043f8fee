package handler

import (
	reportapp "github.com/boutikla/backend/internal/application/report"
	"github.com/gin-gonic/gin"
)

// ReportHandler handles reporting endpoints
type ReportHandler struct {
	BaseHandler
	reportService *reportapp.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *reportapp.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// RegisterRoutes registers report routes
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reports := rg.Group("/reports")
	{
		reports.GET("/sales", h.SalesSummary)
		reports.GET("/sales/daily", h.DailySalesTrend)
		reports.GET("/stock", h.StockReport)
	}
}

// SalesSummary returns aggregated sales figures for a period
func (h *ReportHandler) SalesSummary(c *gin.Context) {
	var req reportapp.SalesReportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}

	summary, err := h.reportService.SalesSummary(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, summary)
}

// DailySalesTrend returns per-day sales totals for a period
func (h *ReportHandler) DailySalesTrend(c *gin.Context) {
	var req reportapp.SalesReportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}

	trend, err := h.reportService.DailySalesTrend(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, trend)
}

// StockReport returns current stock levels and valuation
func (h *ReportHandler) StockReport(c *gin.Context) {
	report, err := h.reportService.StockReport(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, report)
}
