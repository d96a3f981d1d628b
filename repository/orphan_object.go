package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/campuskit/course-file-service/entity"
)

type OrphanObjectRepository struct {
	db *gorm.DB
}

func NewOrphanObjectRepository(db *gorm.DB) *OrphanObjectRepository {
	return &OrphanObjectRepository{db: db}
}

// Record logs a storage object left without a metadata backreference.
func (r *OrphanObjectRepository) Record(ctx context.Context, orphan *entity.OrphanObject) error {
	return r.db.WithContext(ctx).Create(orphan).Error
}

// FindUnresolved lists orphans awaiting reconciliation.
func (r *OrphanObjectRepository) FindUnresolved(ctx context.Context, limit int) ([]entity.OrphanObject, error) {
	var orphans []entity.OrphanObject
	err := r.db.WithContext(ctx).
		Where("resolved = ?", false).
		Order("created_at").
		Limit(limit).
		Find(&orphans).Error
	return orphans, err
}

// MarkResolved flags an orphan as handled by the reconciliation sweep.
func (r *OrphanObjectRepository) MarkResolved(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Model(&entity.OrphanObject{}).
		Where("id = ?", id).
		Update("resolved", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
