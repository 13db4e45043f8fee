package persistence

import (
	"context"
	"errors"

	"github.com/boutikla/backend/internal/domain/currency"
	"github.com/boutikla/backend/internal/domain/shared"
	"github.com/boutikla/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormExchangeRateRepository implements ExchangeRateRepository using GORM.
// Rates are append-only; the current rate is the latest row.
type GormExchangeRateRepository struct {
	db *gorm.DB
}

// NewGormExchangeRateRepository creates a new GormExchangeRateRepository
func NewGormExchangeRateRepository(db *gorm.DB) *GormExchangeRateRepository {
	return &GormExchangeRateRepository{db: db}
}

// FindCurrent returns the most recently recorded exchange rate
func (r *GormExchangeRateRepository) FindCurrent(ctx context.Context) (*currency.ExchangeRate, error) {
	var model models.ExchangeRateModel
	if err := dbFromContext(ctx, r.db).
		Order("created_at DESC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save appends a new exchange rate entry
func (r *GormExchangeRateRepository) Save(ctx context.Context, rate *currency.ExchangeRate) error {
	model := models.ExchangeRateModelFromDomain(rate)
	return dbFromContext(ctx, r.db).Create(model).Error
}

// FindHistory returns past exchange rate entries, newest first
func (r *GormExchangeRateRepository) FindHistory(ctx context.Context, filter shared.Filter) ([]currency.ExchangeRate, error) {
	var rateModels []models.ExchangeRateModel
	query := dbFromContext(ctx, r.db).Model(&models.ExchangeRateModel{}).Order("created_at DESC")

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	if err := query.Find(&rateModels).Error; err != nil {
		return nil, err
	}
	rates := make([]currency.ExchangeRate, len(rateModels))
	for i, model := range rateModels {
		rates[i] = *model.ToDomain()
	}
	return rates, nil
}

// Ensure GormExchangeRateRepository implements ExchangeRateRepository
var _ currency.ExchangeRateRepository = (*GormExchangeRateRepository)(nil)
