package repository

import (
	"github.com/craftsync/task-activity-api/internal/constants"
	"github.com/craftsync/task-activity-api/internal/database"
	"github.com/craftsync/task-activity-api/internal/models"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create persists a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindByID finds a task by ID with optional preloading
func (r *GormTaskRepository) FindByID(id uint64, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&task, id).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

// List retrieves tasks with filtering and pagination
func (r *GormTaskRepository) List(filter TaskFilter) ([]models.Task, error) {
	var tasks []models.Task

	query := r.db.Model(&models.Task{})

	if filter.CreatedByID != nil {
		query = query.Where("created_by_id = ?", *filter.CreatedByID)
	}
	for _, assigneeID := range filter.AssignedToIDs {
		query = query.Where("assigned_to_id = ?", assigneeID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.DueDateFrom != nil {
		query = query.Where("due_date >= ?", *filter.DueDateFrom)
	}
	if filter.DueDateTo != nil {
		query = query.Where("due_date <= ?", *filter.DueDateTo)
	}
	if filter.TaskName != "" {
		// LOWER() keeps the match case-insensitive across drivers
		query = query.Where("LOWER(task_name) LIKE LOWER(?)", "%"+filter.TaskName+"%")
	}
	if filter.ActivityTypeID != nil {
		query = query.Where("activity_type_id = ?", *filter.ActivityTypeID)
	}

	if filter.SortOrder == constants.SortOrderDesc {
		query = query.Order("created_on DESC")
	} else {
		query = query.Order("created_on ASC")
	}

	if err := query.Scopes(database.Paginate(filter.Skip, filter.Limit)).Find(&tasks).Error; err != nil {
		return nil, err
	}

	return tasks, nil
}

// Save overwrites a task row in place
func (r *GormTaskRepository) Save(task *models.Task) error {
	return r.db.Save(task).Error
}

// Delete removes a task row
func (r *GormTaskRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Task{}, id).Error
}

// CreateAttachments inserts attachment rows, back-filling generated IDs
func (r *GormTaskRepository) CreateAttachments(attachments []*models.Attachment) error {
	if len(attachments) == 0 {
		return nil
	}
	return r.db.Create(attachments).Error
}
