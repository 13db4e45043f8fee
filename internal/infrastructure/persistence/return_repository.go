package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/boutikla/backend/internal/domain/shared"
	"github.com/boutikla/backend/internal/domain/trade"
	"github.com/boutikla/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormReturnRepository implements ReturnRepository using GORM
type GormReturnRepository struct {
	db *gorm.DB
}

// NewGormReturnRepository creates a new GormReturnRepository
func NewGormReturnRepository(db *gorm.DB) *GormReturnRepository {
	return &GormReturnRepository{db: db}
}

// FindByID finds a return by its ID
func (r *GormReturnRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Return, error) {
	var model models.ReturnModel
	if err := dbFromContext(ctx, r.db).
		Preload("Items").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds returns with filtering and pagination
func (r *GormReturnRepository) FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[*trade.Return], error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	base := dbFromContext(ctx, r.db).Model(&models.ReturnModel{})

	var total int64
	if err := r.applyFilterWithoutPagination(base.Session(&gorm.Session{}), filter).Count(&total).Error; err != nil {
		return nil, err
	}

	var returnModels []models.ReturnModel
	query := r.applyFilter(base.Session(&gorm.Session{}), filter).Preload("Items")
	if err := query.Find(&returnModels).Error; err != nil {
		return nil, err
	}

	returns := make([]*trade.Return, len(returnModels))
	for i := range returnModels {
		returns[i] = returnModels[i].ToDomain()
	}
	result := shared.NewPaginated(returns, total, filter.Page, filter.PageSize)
	return &result, nil
}

// FindBySale finds all returns recorded against a sale
func (r *GormReturnRepository) FindBySale(ctx context.Context, saleID uuid.UUID) ([]*trade.Return, error) {
	var returnModels []models.ReturnModel
	if err := dbFromContext(ctx, r.db).
		Preload("Items").
		Where("sale_id = ?", saleID).
		Order("created_at DESC").
		Find(&returnModels).Error; err != nil {
		return nil, err
	}
	returns := make([]*trade.Return, len(returnModels))
	for i := range returnModels {
		returns[i] = returnModels[i].ToDomain()
	}
	return returns, nil
}

// ReturnedQuantity sums the active returned quantity of a product across all
// returns on a sale.
func (r *GormReturnRepository) ReturnedQuantity(ctx context.Context, saleID, productID uuid.UUID) (int, error) {
	var total int64
	err := dbFromContext(ctx, r.db).
		Model(&models.ReturnItemModel{}).
		Select("COALESCE(SUM(return_items.quantity), 0)").
		Joins("JOIN returns ON returns.id = return_items.return_id").
		Where("returns.sale_id = ? AND returns.status = ? AND return_items.product_id = ?",
			saleID, trade.ReturnStatusActive, productID).
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return int(total), nil
}

// Save creates or updates a return and its items. The return row is written
// under an optimistic lock.
func (r *GormReturnRepository) Save(ctx context.Context, ret *trade.Return) error {
	return dbFromContext(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		model := models.ReturnModelFromDomain(ret)

		if err := saveVersioned(tx, model, ret.ID, "Items"); err != nil {
			return err
		}

		currentItemIDs := make([]uuid.UUID, len(ret.Items))
		for i, item := range ret.Items {
			currentItemIDs[i] = item.ID
		}

		if len(currentItemIDs) > 0 {
			if err := tx.Where("return_id = ? AND id NOT IN ?", ret.ID, currentItemIDs).
				Delete(&models.ReturnItemModel{}).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Where("return_id = ?", ret.ID).
				Delete(&models.ReturnItemModel{}).Error; err != nil {
				return err
			}
		}

		for i := range ret.Items {
			ret.Items[i].ReturnID = ret.ID
			itemModel := &models.ReturnItemModel{}
			itemModel.FromDomain(&ret.Items[i])
			if err := tx.Save(itemModel).Error; err != nil {
				return err
			}
		}

		ret.Version = model.Version
		return nil
	})
}

// Delete deletes a return and its items
func (r *GormReturnRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return dbFromContext(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("return_id = ?", id).Delete(&models.ReturnItemModel{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.ReturnModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Count counts returns with optional filters
func (r *GormReturnRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(dbFromContext(ctx, r.db).Model(&models.ReturnModel{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormReturnRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	sortField := ValidateSortField(filter.OrderBy, ReturnSortFields, "created_at")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	return query.Order(sortField + " " + sortOrder)
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormReturnRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("remarks ILIKE ?", searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "sale_id":
			query = query.Where("sale_id = ?", value)
		case "client_id":
			query = query.Where("client_id = ?", value)
		case "status":
			query = query.Where("status = ?", value)
		case "start_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("created_at >= ?", t)
			}
		case "end_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("created_at <= ?", t)
			}
		}
	}

	return query
}

// Ensure GormReturnRepository implements ReturnRepository
var _ trade.ReturnRepository = (*GormReturnRepository)(nil)
