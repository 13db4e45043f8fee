package handler

import (
	financeapp "github.com/boutikla/backend/internal/application/finance"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RefundHandler handles refund and refund payment endpoints
type RefundHandler struct {
	BaseHandler
	refundService        *financeapp.RefundService
	refundPaymentService *financeapp.RefundPaymentService
}

// NewRefundHandler creates a new RefundHandler
func NewRefundHandler(refundService *financeapp.RefundService, refundPaymentService *financeapp.RefundPaymentService) *RefundHandler {
	return &RefundHandler{
		refundService:        refundService,
		refundPaymentService: refundPaymentService,
	}
}

// RegisterRoutes registers refund and refund payment routes
func (h *RefundHandler) RegisterRoutes(rg *gin.RouterGroup) {
	refunds := rg.Group("/refunds")
	{
		refunds.GET("", h.List)
		refunds.GET("/sale/:saleId", h.GetBySale)
		refunds.GET("/:id", h.GetByID)
	}

	refundPayments := rg.Group("/refund-payments")
	{
		refundPayments.GET("/:refundId", h.PaymentsByRefund)
		refundPayments.POST("/add", h.CreatePayment)
		refundPayments.PUT("/cancel/:id", h.CancelPayment)
		refundPayments.DELETE("/delete/:id", h.DeletePayment)
	}
}

// List returns a page of refunds
func (h *RefundHandler) List(c *gin.Context) {
	var filter financeapp.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	refunds, total, err := h.refundService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, refunds, total, filter.Page, filter.PageSize)
}

// GetByID returns a single refund with its paid-out total
func (h *RefundHandler) GetByID(c *gin.Context) {
	id, err := bindID(c)
	if err != nil {
		h.BadRequest(c, "Invalid refund ID")
		return
	}

	refund, err := h.refundService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, refund)
}

// GetBySale returns the refund ledger of a sale
func (h *RefundHandler) GetBySale(c *gin.Context) {
	saleID, err := uuid.Parse(c.Param("saleId"))
	if err != nil {
		h.BadRequest(c, "Invalid sale ID")
		return
	}

	refund, err := h.refundService.GetBySale(c.Request.Context(), saleID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, refund)
}

// PaymentsByRefund returns all payouts recorded against a refund
func (h *RefundHandler) PaymentsByRefund(c *gin.Context) {
	refundID, err := uuid.Parse(c.Param("refundId"))
	if err != nil {
		h.BadRequest(c, "Invalid refund ID")
		return
	}

	payments, err := h.refundPaymentService.GetByRefund(c.Request.Context(), refundID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, payments)
}

// CreatePayment records a payout against a refund
func (h *RefundHandler) CreatePayment(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req financeapp.CreateRefundPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	payment, err := h.refundPaymentService.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, payment)
}

// CancelPayment voids a refund payout so the amount becomes payable again
func (h *RefundHandler) CancelPayment(c *gin.Context) {
	id, err := bindID(c)
	if err != nil {
		h.BadRequest(c, "Invalid refund payment ID")
		return
	}

	payment, err := h.refundPaymentService.Cancel(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, payment)
}

// DeletePayment removes a canceled refund payout
func (h *RefundHandler) DeletePayment(c *gin.Context) {
	id, err := bindID(c)
	if err != nil {
		h.BadRequest(c, "Invalid refund payment ID")
		return
	}

	if err := h.refundPaymentService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
