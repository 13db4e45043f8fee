package persistence

import (
	"context"
	"errors"

	"github.com/boutikla/backend/internal/domain/finance"
	"github.com/boutikla/backend/internal/domain/shared"
	"github.com/boutikla/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormRefundRepository implements RefundRepository using GORM
type GormRefundRepository struct {
	db *gorm.DB
}

// NewGormRefundRepository creates a new GormRefundRepository
func NewGormRefundRepository(db *gorm.DB) *GormRefundRepository {
	return &GormRefundRepository{db: db}
}

// FindByID finds a refund by its ID
func (r *GormRefundRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Refund, error) {
	var model models.RefundModel
	if err := dbFromContext(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds refunds with filtering and pagination
func (r *GormRefundRepository) FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[*finance.Refund], error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	base := dbFromContext(ctx, r.db).Model(&models.RefundModel{})

	var total int64
	if err := r.applyFilterWithoutPagination(base.Session(&gorm.Session{}), filter).Count(&total).Error; err != nil {
		return nil, err
	}

	var refundModels []models.RefundModel
	query := r.applyFilter(base.Session(&gorm.Session{}), filter)
	if err := query.Find(&refundModels).Error; err != nil {
		return nil, err
	}

	refunds := make([]*finance.Refund, len(refundModels))
	for i := range refundModels {
		refunds[i] = refundModels[i].ToDomain()
	}
	result := shared.NewPaginated(refunds, total, filter.Page, filter.PageSize)
	return &result, nil
}

// FindBySale finds the refund recorded against a sale
func (r *GormRefundRepository) FindBySale(ctx context.Context, saleID uuid.UUID) (*finance.Refund, error) {
	var model models.RefundModel
	if err := dbFromContext(ctx, r.db).
		Where("sale_id = ?", saleID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates a refund under an optimistic lock
func (r *GormRefundRepository) Save(ctx context.Context, refund *finance.Refund) error {
	model := models.RefundModelFromDomain(refund)
	if err := saveVersioned(dbFromContext(ctx, r.db), model, refund.ID); err != nil {
		return err
	}
	refund.Version = model.Version
	return nil
}

// Delete deletes a refund
func (r *GormRefundRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := dbFromContext(ctx, r.db).Delete(&models.RefundModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts refunds with optional filters
func (r *GormRefundRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(dbFromContext(ctx, r.db).Model(&models.RefundModel{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormRefundRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	sortField := ValidateSortField(filter.OrderBy, CommonSortFields, "created_at")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	return query.Order(sortField + " " + sortOrder)
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormRefundRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "sale_id":
			query = query.Where("sale_id = ?", value)
		case "client_id":
			query = query.Where("client_id = ?", value)
		}
	}
	return query
}

// Ensure GormRefundRepository implements RefundRepository
var _ finance.RefundRepository = (*GormRefundRepository)(nil)
