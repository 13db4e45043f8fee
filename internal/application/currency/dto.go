package currency

import (
	"time"

	"github.com/boutikla/backend/internal/domain/currency"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UpdateRateRequest is the input for setting a new exchange rate
type UpdateRateRequest struct {
	Rate decimal.Decimal `json:"rate" binding:"required"`
}

// ExchangeRateResponse is the API representation of an exchange rate entry
type ExchangeRateResponse struct {
	ID        uuid.UUID       `json:"id"`
	Rate      decimal.Decimal `json:"rate"`
	CreatedAt time.Time       `json:"created_at"`
}

// ToExchangeRateResponse converts a domain exchange rate to its API representation
func ToExchangeRateResponse(r *currency.ExchangeRate) ExchangeRateResponse {
	return ExchangeRateResponse{
		ID:        r.ID,
		Rate:      r.Rate,
		CreatedAt: r.CreatedAt,
	}
}

// CurrentRateResponse carries the rate currently applied to new sales
type CurrentRateResponse struct {
	Rate decimal.Decimal `json:"rate"`
}

// CreateCurrencyRequest is the input for registering a currency
type CreateCurrencyRequest struct {
	Code string `json:"code" binding:"required,len=3"`
	Name string `json:"name" binding:"required"`
}

// UpdateCurrencyRequest is the input for renaming a currency
type UpdateCurrencyRequest struct {
	Name string `json:"name" binding:"required"`
}

// CurrencyResponse is the API representation of a currency
type CurrencyResponse struct {
	ID   uuid.UUID `json:"id"`
	Code string    `json:"code"`
	Name string    `json:"name"`
	Base bool      `json:"base"`
}

// ToCurrencyResponse converts a domain currency to its API representation
func ToCurrencyResponse(c *currency.Currency) CurrencyResponse {
	return CurrencyResponse{
		ID:   c.ID,
		Code: c.Code.String(),
		Name: c.Name,
		Base: c.IsBase(),
	}
}

// HistoryFilter carries pagination parameters for the rate history
type HistoryFilter struct {
	Page     int `form:"page"`
	PageSize int `form:"page_size"`
}
