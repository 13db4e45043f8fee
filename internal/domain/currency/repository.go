package currency

import (
	"context"

	"github.com/boutikla/backend/internal/domain/shared"
	"github.com/boutikla/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// CurrencyRepository defines persistence operations for currencies
type CurrencyRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Currency, error)
	FindByCode(ctx context.Context, code valueobject.Currency) (*Currency, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Currency, error)
	Save(ctx context.Context, currency *Currency) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ExchangeRateRepository defines persistence operations for exchange rates.
// Rates are append-only; FindCurrent returns the latest entry.
type ExchangeRateRepository interface {
	FindCurrent(ctx context.Context) (*ExchangeRate, error)
	Save(ctx context.Context, rate *ExchangeRate) error
	FindHistory(ctx context.Context, filter shared.Filter) ([]ExchangeRate, error)
}
