package services

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/craftsync/task-activity-api/internal/constants"
	"github.com/craftsync/task-activity-api/internal/models"
	"github.com/craftsync/task-activity-api/internal/repository"
)

var ErrHistoryNotFound = errors.New("task history not found")

const notAvailable = "N/A"

// HistoryService reads the audit log: it never writes, the Task Mutation
// Service owns all inserts and deletions.
type HistoryService struct {
	historyRepo repository.HistoryRepository
	userRepo    repository.UserRepository
}

// NewHistoryService creates a new HistoryService
func NewHistoryService(historyRepo repository.HistoryRepository, userRepo repository.UserRepository) *HistoryService {
	return &HistoryService{
		historyRepo: historyRepo,
		userRepo:    userRepo,
	}
}

// TaskDataValue is one side of a history comparison, formatted for display.
type TaskDataValue struct {
	Status    string `json:"status"`
	CreatedBy string `json:"created_by"`
	CreatedAt string `json:"created_at"`
}

// HistoryDetails compares the latest history entry of a task against the one
// before it.
type HistoryDetails struct {
	PreviousDataValue TaskDataValue `json:"previous_data_value"`
	LatestDataValue   TaskDataValue `json:"latest_data_value"`
}

// ListAll returns history entries across all tasks ordered by timestamp,
// with the modifying user resolved.
func (s *HistoryService) ListAll(skip, limit int, sortOrder string) ([]models.TaskHistory, error) {
	entries, err := s.historyRepo.ListAll(skip, limit, sortOrder)
	if err != nil {
		zap.L().Error("failed to fetch task histories", zap.Error(err))
		return nil, fmt.Errorf("failed to fetch task histories: %w", err)
	}
	return entries, nil
}

// ListForTask returns the full audit trail of one task in insertion order.
func (s *HistoryService) ListForTask(taskID uint64) ([]models.TaskHistory, error) {
	entries, err := s.historyRepo.ListByTask(taskID)
	if err != nil {
		zap.L().Error("failed to fetch task history",
			zap.Uint64("task_id", taskID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to fetch task history: %w", err)
	}
	return entries, nil
}

// LatestForTask returns the two most recent entries of a task, newest first.
func (s *HistoryService) LatestForTask(taskID uint64) ([]models.TaskHistory, error) {
	entries, err := s.historyRepo.LatestTwo(taskID)
	if err != nil {
		zap.L().Error("failed to fetch latest task history",
			zap.Uint64("task_id", taskID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to fetch latest task history: %w", err)
	}
	return entries, nil
}

// GetDetails resolves the latest two history entries of a task into a
// previous/latest comparison. With a single entry the previous side degrades
// to "N/A" placeholders rather than failing.
func (s *HistoryService) GetDetails(taskID uint64) (*HistoryDetails, error) {
	entries, err := s.historyRepo.ListByTask(taskID)
	if err != nil {
		zap.L().Error("failed to fetch task history details",
			zap.Uint64("task_id", taskID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to fetch task history details: %w", err)
	}
	if len(entries) == 0 {
		return nil, ErrHistoryNotFound
	}

	latest := entries[len(entries)-1]
	details := &HistoryDetails{
		PreviousDataValue: TaskDataValue{
			Status:    notAvailable,
			CreatedBy: notAvailable,
			CreatedAt: notAvailable,
		},
		LatestDataValue: TaskDataValue{
			Status:    snapshotStatus(latest.NewData),
			CreatedBy: s.userName(latest.ModifiedByID),
			CreatedAt: latest.CreatedAt.Format(constants.HistoryTimestampLayout),
		},
	}

	if len(entries) > 1 {
		previous := entries[len(entries)-2]
		details.PreviousDataValue = TaskDataValue{
			Status:    snapshotStatus(previous.PreviousData),
			CreatedBy: s.userName(previous.ModifiedByID),
			CreatedAt: previous.CreatedAt.Format(constants.HistoryTimestampLayout),
		}
	}

	return details, nil
}

func snapshotStatus(snapshot *models.TaskSnapshot) string {
	if snapshot == nil || snapshot.Status == nil {
		return notAvailable
	}
	return *snapshot.Status
}

func (s *HistoryService) userName(userID uint64) string {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return notAvailable
	}
	return user.Username
}
