package currency

import (
	"github.com/boutikla/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ExchangeRate represents the HTG-per-USD conversion factor in effect at a
// point in time. Updating the rate appends a new row; the current rate is the
// most recently created one. Sales freeze the rate that was current when they
// were recorded, so historical totals are unaffected by later updates.
type ExchangeRate struct {
	shared.BaseEntity
	Rate decimal.Decimal
}

// NewExchangeRate creates a new exchange rate entry
func NewExchangeRate(rate decimal.Decimal) (*ExchangeRate, error) {
	if rate.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_RATE", "You must enter a valid rate")
	}

	return &ExchangeRate{
		BaseEntity: shared.NewBaseEntity(),
		Rate:       rate,
	}, nil
}
