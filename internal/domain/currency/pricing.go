package currency

import (
	"github.com/boutikla/backend/internal/domain/shared"
	"github.com/boutikla/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// DisplayPrice converts a base (USD) unit price into the target display
// currency: identity when the target is the base currency, base price times the
// exchange rate otherwise. Conversions always start from the stored base price
// so they never accumulate.
func DisplayPrice(basePrice decimal.Decimal, target valueobject.Currency, rate decimal.Decimal) (decimal.Decimal, error) {
	if !target.IsValid() {
		return decimal.Decimal{}, shared.NewDomainError("INVALID_CURRENCY", "Unknown currency code")
	}
	base := valueobject.NewMoneyUSD(basePrice)
	converted, err := base.ConvertFromBase(target, rate)
	if err != nil {
		return decimal.Decimal{}, shared.NewDomainError("INVALID_RATE", err.Error())
	}
	return converted.Amount(), nil
}

// LineTotal computes the total for a sale line from its displayed unit price:
// (price + price*tax/100 - price*discount/100) * quantity.
func LineTotal(displayPrice decimal.Decimal, taxPercent, discountPercent decimal.Decimal, quantity decimal.Decimal) decimal.Decimal {
	hundred := decimal.NewFromInt(100)
	unit := displayPrice.
		Add(displayPrice.Mul(taxPercent).Div(hundred)).
		Sub(displayPrice.Mul(discountPercent).Div(hundred))
	return unit.Mul(quantity)
}
