package persistence

import (
	"context"
	"errors"

	"github.com/boutikla/backend/internal/domain/currency"
	"github.com/boutikla/backend/internal/domain/shared"
	"github.com/boutikla/backend/internal/domain/shared/valueobject"
	"github.com/boutikla/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCurrencyRepository implements CurrencyRepository using GORM
type GormCurrencyRepository struct {
	db *gorm.DB
}

// NewGormCurrencyRepository creates a new GormCurrencyRepository
func NewGormCurrencyRepository(db *gorm.DB) *GormCurrencyRepository {
	return &GormCurrencyRepository{db: db}
}

// FindByID finds a currency by its ID
func (r *GormCurrencyRepository) FindByID(ctx context.Context, id uuid.UUID) (*currency.Currency, error) {
	var model models.CurrencyModel
	if err := dbFromContext(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCode finds a currency by its ISO code
func (r *GormCurrencyRepository) FindByCode(ctx context.Context, code valueobject.Currency) (*currency.Currency, error) {
	var model models.CurrencyModel
	if err := dbFromContext(ctx, r.db).
		Where("code = ?", code.String()).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all currencies
func (r *GormCurrencyRepository) FindAll(ctx context.Context, filter shared.Filter) ([]currency.Currency, error) {
	var currencyModels []models.CurrencyModel
	query := dbFromContext(ctx, r.db).Model(&models.CurrencyModel{}).Order("code ASC")

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	if err := query.Find(&currencyModels).Error; err != nil {
		return nil, err
	}
	currencies := make([]currency.Currency, len(currencyModels))
	for i, model := range currencyModels {
		currencies[i] = *model.ToDomain()
	}
	return currencies, nil
}

// Save creates or updates a currency
func (r *GormCurrencyRepository) Save(ctx context.Context, c *currency.Currency) error {
	model := models.CurrencyModelFromDomain(c)
	return dbFromContext(ctx, r.db).Save(model).Error
}

// Delete deletes a currency
func (r *GormCurrencyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := dbFromContext(ctx, r.db).Delete(&models.CurrencyModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormCurrencyRepository implements CurrencyRepository
var _ currency.CurrencyRepository = (*GormCurrencyRepository)(nil)
