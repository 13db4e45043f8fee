package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/boutikla/backend/internal/domain/finance"
	"github.com/boutikla/backend/internal/domain/shared"
	"github.com/boutikla/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormRefundPaymentRepository implements RefundPaymentRepository using GORM
type GormRefundPaymentRepository struct {
	db *gorm.DB
}

// NewGormRefundPaymentRepository creates a new GormRefundPaymentRepository
func NewGormRefundPaymentRepository(db *gorm.DB) *GormRefundPaymentRepository {
	return &GormRefundPaymentRepository{db: db}
}

// FindByID finds a refund payment by its ID
func (r *GormRefundPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.RefundPayment, error) {
	var model models.RefundPaymentModel
	if err := dbFromContext(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds refund payments with filtering and pagination
func (r *GormRefundPaymentRepository) FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[*finance.RefundPayment], error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	base := dbFromContext(ctx, r.db).Model(&models.RefundPaymentModel{})

	var total int64
	if err := r.applyFilterWithoutPagination(base.Session(&gorm.Session{}), filter).Count(&total).Error; err != nil {
		return nil, err
	}

	var paymentModels []models.RefundPaymentModel
	query := r.applyFilter(base.Session(&gorm.Session{}), filter)
	if err := query.Find(&paymentModels).Error; err != nil {
		return nil, err
	}

	payments := make([]*finance.RefundPayment, len(paymentModels))
	for i := range paymentModels {
		payments[i] = paymentModels[i].ToDomain()
	}
	result := shared.NewPaginated(payments, total, filter.Page, filter.PageSize)
	return &result, nil
}

// FindByRefund finds all payouts recorded against a refund
func (r *GormRefundPaymentRepository) FindByRefund(ctx context.Context, refundID uuid.UUID) ([]*finance.RefundPayment, error) {
	var paymentModels []models.RefundPaymentModel
	if err := dbFromContext(ctx, r.db).
		Where("refund_id = ?", refundID).
		Order("created_at DESC").
		Find(&paymentModels).Error; err != nil {
		return nil, err
	}
	payments := make([]*finance.RefundPayment, len(paymentModels))
	for i := range paymentModels {
		payments[i] = paymentModels[i].ToDomain()
	}
	return payments, nil
}

// ActiveTotal sums the active payouts recorded against a refund
func (r *GormRefundPaymentRepository) ActiveTotal(ctx context.Context, refundID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := dbFromContext(ctx, r.db).
		Model(&models.RefundPaymentModel{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("refund_id = ? AND status = ?", refundID, finance.PaymentStatusActive).
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

// Save creates or updates a refund payment under an optimistic lock
func (r *GormRefundPaymentRepository) Save(ctx context.Context, payment *finance.RefundPayment) error {
	model := models.RefundPaymentModelFromDomain(payment)
	if err := saveVersioned(dbFromContext(ctx, r.db), model, payment.ID); err != nil {
		return err
	}
	payment.Version = model.Version
	return nil
}

// Delete deletes a refund payment
func (r *GormRefundPaymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := dbFromContext(ctx, r.db).Delete(&models.RefundPaymentModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts refund payments with optional filters
func (r *GormRefundPaymentRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(dbFromContext(ctx, r.db).Model(&models.RefundPaymentModel{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormRefundPaymentRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	sortField := ValidateSortField(filter.OrderBy, PaymentSortFields, "created_at")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	return query.Order(sortField + " " + sortOrder)
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormRefundPaymentRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("reference ILIKE ?", "%"+filter.Search+"%")
	}

	for key, value := range filter.Filters {
		switch key {
		case "refund_id":
			query = query.Where("refund_id = ?", value)
		case "status":
			query = query.Where("status = ?", value)
		case "method":
			query = query.Where("method = ?", value)
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

// Ensure GormRefundPaymentRepository implements RefundPaymentRepository
var _ finance.RefundPaymentRepository = (*GormRefundPaymentRepository)(nil)
