package repository

import (
	"github.com/craftsync/task-activity-api/internal/constants"
	"github.com/craftsync/task-activity-api/internal/database"
	"github.com/craftsync/task-activity-api/internal/models"
	"gorm.io/gorm"
)

// GormHistoryRepository is a GORM implementation of HistoryRepository
type GormHistoryRepository struct {
	db *gorm.DB
}

// NewHistoryRepository creates a new HistoryRepository
func NewHistoryRepository(db *gorm.DB) HistoryRepository {
	return &GormHistoryRepository{db: db}
}

// Create appends a history entry
func (r *GormHistoryRepository) Create(entry *models.TaskHistory) error {
	return r.db.Create(entry).Error
}

// ListAll lists history entries across all tasks ordered by timestamp, with
// the modifying user resolved for display.
func (r *GormHistoryRepository) ListAll(skip, limit int, sortOrder string) ([]models.TaskHistory, error) {
	var entries []models.TaskHistory

	query := r.db.Model(&models.TaskHistory{}).Preload("ModifiedBy")

	if sortOrder == constants.SortOrderDesc {
		query = query.Order("created_at DESC")
	} else {
		query = query.Order("created_at ASC")
	}

	if err := query.Scopes(database.Paginate(skip, limit)).Find(&entries).Error; err != nil {
		return nil, err
	}

	return entries, nil
}

// ListByTask lists all history entries for one task in insertion order
func (r *GormHistoryRepository) ListByTask(taskID uint64) ([]models.TaskHistory, error) {
	var entries []models.TaskHistory
	if err := r.db.Where("task_id = ?", taskID).Order("id ASC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// LatestTwo returns the two most recent entries for a task, newest first
func (r *GormHistoryRepository) LatestTwo(taskID uint64) ([]models.TaskHistory, error) {
	var entries []models.TaskHistory
	if err := r.db.Where("task_id = ?", taskID).
		Order("created_at DESC").
		Limit(2).
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// DeleteByTask removes every history entry of a task
func (r *GormHistoryRepository) DeleteByTask(taskID uint64) error {
	return r.db.Where("task_id = ?", taskID).Delete(&models.TaskHistory{}).Error
}
