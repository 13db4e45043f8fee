package models

import (
	"github.com/boutikla/backend/internal/domain/currency"
	"github.com/boutikla/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// CurrencyModel is the persistence model for the Currency entity.
type CurrencyModel struct {
	BaseModel
	Code string `gorm:"type:varchar(3);not null;uniqueIndex"`
	Name string `gorm:"type:varchar(100);not null"`
}

// TableName returns the table name for GORM
func (CurrencyModel) TableName() string {
	return "currencies"
}

// ToDomain converts the persistence model to a domain Currency entity.
func (m *CurrencyModel) ToDomain() *currency.Currency {
	return &currency.Currency{
		BaseEntity: m.BaseModel.ToDomain(),
		Code:       valueobject.Currency(m.Code),
		Name:       m.Name,
	}
}

// FromDomain populates the persistence model from a domain Currency entity.
func (m *CurrencyModel) FromDomain(c *currency.Currency) {
	m.FromDomainBaseEntity(c.BaseEntity)
	m.Code = c.Code.String()
	m.Name = c.Name
}

// CurrencyModelFromDomain creates a new persistence model from a domain Currency entity.
func CurrencyModelFromDomain(c *currency.Currency) *CurrencyModel {
	m := &CurrencyModel{}
	m.FromDomain(c)
	return m
}

// ExchangeRateModel is the persistence model for the append-only exchange
// rate history. The current rate is the most recently created row.
type ExchangeRateModel struct {
	BaseModel
	Rate decimal.Decimal `gorm:"type:decimal(18,6);not null"`
}

// TableName returns the table name for GORM
func (ExchangeRateModel) TableName() string {
	return "exchange_rates"
}

// ToDomain converts the persistence model to a domain ExchangeRate entity.
func (m *ExchangeRateModel) ToDomain() *currency.ExchangeRate {
	return &currency.ExchangeRate{
		BaseEntity: m.BaseModel.ToDomain(),
		Rate:       m.Rate,
	}
}

// FromDomain populates the persistence model from a domain ExchangeRate entity.
func (m *ExchangeRateModel) FromDomain(r *currency.ExchangeRate) {
	m.FromDomainBaseEntity(r.BaseEntity)
	m.Rate = r.Rate
}

// ExchangeRateModelFromDomain creates a new persistence model from a domain ExchangeRate entity.
func ExchangeRateModelFromDomain(r *currency.ExchangeRate) *ExchangeRateModel {
	m := &ExchangeRateModel{}
	m.FromDomain(r)
	return m
}
