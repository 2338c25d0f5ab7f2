package repository

import (
	"context"
	"time"

	"github.com/craftsync/task-activity-api/internal/models"
)

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create persists a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// List retrieves tasks with filtering and pagination
	List(filter TaskFilter) ([]models.Task, error)

	// Save overwrites a task row in place
	Save(task *models.Task) error

	// Delete removes a task row
	Delete(id uint64) error

	// CreateAttachments inserts attachment rows, back-filling generated IDs
	CreateAttachments(attachments []*models.Attachment) error
}

// TaskFilter holds filtering options for listing tasks. AssignedToIDs holds
// equality constraints that are all applied: the assigned-to-me scope and the
// explicit assignee filter stack rather than override each other.
type TaskFilter struct {
	CreatedByID    *uint64
	AssignedToIDs  []uint64
	Status         *string
	DueDateFrom    *time.Time
	DueDateTo      *time.Time
	TaskName       string
	ActivityTypeID *uint64
	SortOrder      string
	Skip           int
	Limit          int
}

// HistoryRepository defines the interface for task history data access.
// History rows are append-only: created, listed, and bulk-deleted with their
// task, never updated.
type HistoryRepository interface {
	// Create appends a history entry
	Create(entry *models.TaskHistory) error

	// ListAll lists history entries across all tasks with the modifying
	// user resolved, ordered by timestamp
	ListAll(skip, limit int, sortOrder string) ([]models.TaskHistory, error)

	// ListByTask lists all history entries for one task in insertion order
	ListByTask(taskID uint64) ([]models.TaskHistory, error)

	// LatestTwo returns the two most recent entries for a task, newest first
	LatestTwo(taskID uint64) ([]models.TaskHistory, error)

	// DeleteByTask removes every history entry of a task
	DeleteByTask(taskID uint64) error
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// List retrieves users with pagination
	List(skip, limit int) ([]models.User, error)

	// Exists reports whether a user with the given ID exists
	Exists(ctx context.Context, id uint64) (bool, error)
}

// ReferenceRepository exposes existence checks against the static lookup
// tables. All checks take a context so concurrent validation fan-outs can be
// cancelled on the first failure.
type ReferenceRepository interface {
	ActivityTypeExists(ctx context.Context, id uint64) (bool, error)
	ActivityGroupExists(ctx context.Context, id uint64) (bool, error)
	StageExists(ctx context.Context, id uint64) (bool, error)
	CoreGroupExists(ctx context.Context, id uint64) (bool, error)
}
