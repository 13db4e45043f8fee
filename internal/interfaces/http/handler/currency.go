package handler

import (
	currencyapp "github.com/boutikla/backend/internal/application/currency"
	"github.com/gin-gonic/gin"
)

// CurrencyHandler handles currency and exchange rate endpoints
type CurrencyHandler struct {
	BaseHandler
	currencyService *currencyapp.CurrencyService
	rateService     *currencyapp.ExchangeRateService
}

// NewCurrencyHandler creates a new CurrencyHandler
func NewCurrencyHandler(currencyService *currencyapp.CurrencyService, rateService *currencyapp.ExchangeRateService) *CurrencyHandler {
	return &CurrencyHandler{
		currencyService: currencyService,
		rateService:     rateService,
	}
}

// RegisterRoutes registers currency and exchange rate routes
func (h *CurrencyHandler) RegisterRoutes(rg *gin.RouterGroup) {
	currencies := rg.Group("/currencies")
	{
		currencies.GET("", h.List)
		currencies.GET("/:id", h.GetByID)
		currencies.POST("/add", h.Create)
		currencies.PUT("/edit/:id", h.Update)
		currencies.DELETE("/delete/:id", h.Delete)
	}

	rates := rg.Group("/exchange-rates")
	{
		rates.GET("/current-rate", h.CurrentRate)
		rates.POST("/update-rate", h.UpdateRate)
		rates.GET("/history", h.History)
	}
}

// List returns all currencies
func (h *CurrencyHandler) List(c *gin.Context) {
	currencies, err := h.currencyService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, currencies)
}

// GetByID returns a single currency
func (h *CurrencyHandler) GetByID(c *gin.Context) {
	id, err := bindID(c)
	if err != nil {
		h.BadRequest(c, "Invalid currency ID")
		return
	}

	currency, err := h.currencyService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, currency)
}

// Create registers a new currency
func (h *CurrencyHandler) Create(c *gin.Context) {
	var req currencyapp.CreateCurrencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	currency, err := h.currencyService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, currency)
}

// Update renames a currency
func (h *CurrencyHandler) Update(c *gin.Context) {
	id, err := bindID(c)
	if err != nil {
		h.BadRequest(c, "Invalid currency ID")
		return
	}

	var req currencyapp.UpdateCurrencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	currency, err := h.currencyService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, currency)
}

// Delete removes a currency
func (h *CurrencyHandler) Delete(c *gin.Context) {
	id, err := bindID(c)
	if err != nil {
		h.BadRequest(c, "Invalid currency ID")
		return
	}

	if err := h.currencyService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// CurrentRate returns the exchange rate applied to new sales
func (h *CurrencyHandler) CurrentRate(c *gin.Context) {
	rate, err := h.rateService.CurrentRate(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, currencyapp.CurrentRateResponse{Rate: rate})
}

// UpdateRate records a new exchange rate. Sales already recorded keep the
// rate frozen at sale time.
func (h *CurrencyHandler) UpdateRate(c *gin.Context) {
	var req currencyapp.UpdateRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	rate, err := h.rateService.UpdateRate(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, rate)
}

// History returns past exchange rates, newest first
func (h *CurrencyHandler) History(c *gin.Context) {
	var filter currencyapp.HistoryFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	history, err := h.rateService.History(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, history)
}
