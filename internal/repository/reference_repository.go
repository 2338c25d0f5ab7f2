package repository

import (
	"context"

	"github.com/craftsync/task-activity-api/internal/models"
	"gorm.io/gorm"
)

// GormReferenceRepository is a GORM implementation of ReferenceRepository
type GormReferenceRepository struct {
	db *gorm.DB
}

// NewReferenceRepository creates a new ReferenceRepository
func NewReferenceRepository(db *gorm.DB) ReferenceRepository {
	return &GormReferenceRepository{db: db}
}

func (r *GormReferenceRepository) ActivityTypeExists(ctx context.Context, id uint64) (bool, error) {
	return r.exists(ctx, &models.ActivityType{}, id)
}

func (r *GormReferenceRepository) ActivityGroupExists(ctx context.Context, id uint64) (bool, error) {
	return r.exists(ctx, &models.ActivityGroup{}, id)
}

func (r *GormReferenceRepository) StageExists(ctx context.Context, id uint64) (bool, error) {
	return r.exists(ctx, &models.Stage{}, id)
}

func (r *GormReferenceRepository) CoreGroupExists(ctx context.Context, id uint64) (bool, error) {
	return r.exists(ctx, &models.CoreGroup{}, id)
}

func (r *GormReferenceRepository) exists(ctx context.Context, model interface{}, id uint64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(model).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}
