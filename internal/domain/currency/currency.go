package currency

import (
	"github.com/boutikla/backend/internal/domain/shared"
	"github.com/boutikla/backend/internal/domain/shared/valueobject"
)

// Currency represents a currency recognized by the store.
// Product prices are always stored in the base currency (USD); other
// currencies are display currencies converted at the current exchange rate.
type Currency struct {
	shared.BaseEntity
	Code valueobject.Currency
	Name string
}

// NewCurrency creates a new currency
func NewCurrency(code valueobject.Currency, name string) (*Currency, error) {
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Currency code cannot be empty")
	}
	if len(code) != 3 {
		return nil, shared.NewDomainError("INVALID_CODE", "Currency code must be a 3-letter ISO code")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Currency name cannot be empty")
	}

	return &Currency{
		BaseEntity: shared.NewBaseEntity(),
		Code:       code,
		Name:       name,
	}, nil
}

// Rename updates the display name
func (c *Currency) Rename(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Currency name cannot be empty")
	}
	c.Name = name
	c.Touch()
	return nil
}

// IsBase returns true if this is the base pricing currency
func (c *Currency) IsBase() bool {
	return c.Code == valueobject.BaseCurrency
}
