package persistence

import (
	"github.com/boutikla/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// versionedModel is implemented by the aggregate persistence models through
// the embedded AggregateModel.
type versionedModel interface {
	GetVersion() int
	SetVersion(v int)
	TableName() string
}

// saveVersioned upserts an aggregate row under an optimistic lock. An update
// guards on the version the aggregate was loaded at and bumps it; a guarded
// update that touches no row on an existing aggregate means a concurrent
// writer got there first. On success the model carries the stored version.
func saveVersioned(db *gorm.DB, model versionedModel, id uuid.UUID, omit ...string) error {
	loaded := model.GetVersion()
	model.SetVersion(loaded + 1)

	omitted := append([]string{"id", "created_at"}, omit...)
	result := db.Model(model).
		Where("id = ? AND version = ?", id, loaded).
		Select("*").Omit(omitted...).
		Updates(model)
	if result.Error != nil {
		model.SetVersion(loaded)
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	model.SetVersion(loaded)
	var count int64
	if err := db.Table(model.TableName()).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return shared.ErrConcurrencyConflict
	}

	create := db
	if len(omit) > 0 {
		create = create.Omit(omit...)
	}
	return create.Create(model).Error
}
