package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/craftsync/task-activity-api/internal/constants"
	"github.com/craftsync/task-activity-api/internal/models"
	"github.com/craftsync/task-activity-api/internal/repository"
)

var (
	ErrTaskNotFound  = errors.New("task not found")
	ErrTaskForbidden = errors.New("you do not have access to this task")
)

// ValidationError is a rejected write: bad due date or a reference to a row
// that does not exist. The detail is safe to return to the client.
type ValidationError struct {
	Detail string
}

func (e *ValidationError) Error() string {
	return e.Detail
}

// TaskService orchestrates validation, persistence, and audit logging for
// task mutations. It holds no state beyond its injected collaborators.
type TaskService struct {
	taskRepo    repository.TaskRepository
	historyRepo repository.HistoryRepository
	userRepo    repository.UserRepository
	refRepo     repository.ReferenceRepository
	notifier    AssignmentNotifier
}

// NewTaskService creates a new TaskService
func NewTaskService(
	taskRepo repository.TaskRepository,
	historyRepo repository.HistoryRepository,
	userRepo repository.UserRepository,
	refRepo repository.ReferenceRepository,
	notifier AssignmentNotifier,
) *TaskService {
	return &TaskService{
		taskRepo:    taskRepo,
		historyRepo: historyRepo,
		userRepo:    userRepo,
		refRepo:     refRepo,
		notifier:    notifier,
	}
}

// AttachmentInput represents an attachment supplied with a create or update
type AttachmentInput struct {
	FileName string
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	TaskName        string
	TaskDescription string
	Status          string
	DueDate         *time.Time
	ActionType      string
	ActivityTypeID  uint64
	ActivityGroupID *uint64
	StageID         *uint64
	CoreGroupID     *uint64
	AssignedToID    *uint64
	LinkResponseIDs []int64
	LinkObjectIDs   []int64
	Notes           string
	Favorite        bool
	Attachments     []AttachmentInput
}

// UpdateTaskInput represents a partial update; nil fields are left untouched
type UpdateTaskInput struct {
	TaskName        *string
	TaskDescription *string
	Status          *string
	DueDate         *time.Time
	ActionType      *string
	ActivityTypeID  *uint64
	ActivityGroupID *uint64
	StageID         *uint64
	CoreGroupID     *uint64
	AssignedToID    *uint64
	LinkResponseIDs []int64
	LinkObjectIDs   []int64
	Notes           *string
	Favorite        *bool
	Attachments     []AttachmentInput
}

// ListTasksInput represents filters for listing tasks
type ListTasksInput struct {
	UserID         uint64
	TaskType       string
	Status         *string
	DueDateFrom    *time.Time
	DueDateTo      *time.Time
	TaskName       string
	ActivityTypeID *uint64
	AssignedToID   *uint64
	SortOrder      string
	Skip           int
	Limit          int
}

// Create validates the input, persists the task and its attachments, appends
// an "Added" history entry, and notifies the assignee.
func (s *TaskService) Create(ctx context.Context, input CreateTaskInput, actor *models.User) (*models.Task, error) {
	if err := validateDueDate(input.DueDate); err != nil {
		return nil, err
	}

	if err := s.validateReferences(ctx, referenceCheck{
		activityTypeID:  &input.ActivityTypeID,
		activityGroupID: input.ActivityGroupID,
		stageID:         input.StageID,
		coreGroupID:     input.CoreGroupID,
		assignedToID:    input.AssignedToID,
	}); err != nil {
		return nil, err
	}

	if input.Status == "" {
		input.Status = constants.DefaultTaskStatus
	}

	now := time.Now().UTC()
	task := &models.Task{
		TaskName:        input.TaskName,
		TaskDescription: input.TaskDescription,
		Status:          input.Status,
		DueDate:         input.DueDate,
		ActionType:      input.ActionType,
		ActivityTypeID:  input.ActivityTypeID,
		ActivityGroupID: input.ActivityGroupID,
		StageID:         input.StageID,
		CoreGroupID:     input.CoreGroupID,
		AssignedToID:    input.AssignedToID,
		LinkResponseIDs: input.LinkResponseIDs,
		LinkObjectIDs:   input.LinkObjectIDs,
		Notes:           input.Notes,
		Favorite:        input.Favorite,
		CreatedByID:     actor.ID,
		CreatedOn:       now,
		ModifiedOn:      now,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	if len(input.Attachments) > 0 {
		ids, err := s.storeAttachments(task.TaskID, input.Attachments)
		if err != nil {
			return nil, err
		}
		task.AttachmentIDs = ids
		if err := s.taskRepo.Save(task); err != nil {
			return nil, fmt.Errorf("failed to save attachment ids: %w", err)
		}
	}

	entry := &models.TaskHistory{
		TaskID:       task.TaskID,
		Action:       models.HistoryActionAdded,
		NewData:      snapshotFromCreate(input, actor.ID, task.AttachmentIDs),
		CreatedAt:    time.Now().UTC(),
		ModifiedByID: actor.ID,
	}
	if err := s.historyRepo.Create(entry); err != nil {
		zap.L().Error("failed to log task history",
			zap.Uint64("task_id", task.TaskID),
			zap.String("action", string(models.HistoryActionAdded)),
			zap.Error(err))
		return nil, fmt.Errorf("failed to log task history: %w", err)
	}

	zap.L().Info("task created",
		zap.Uint64("task_id", task.TaskID),
		zap.Uint64("user_id", actor.ID))

	s.notifyAssignee(ctx, task, actor)

	return task, nil
}

// List returns tasks related to the user, either created by them or
// assigned to them, with the optional filters applied.
func (s *TaskService) List(ctx context.Context, input ListTasksInput) ([]models.Task, error) {
	if input.ActivityTypeID != nil {
		if err := s.validateReferences(ctx, referenceCheck{activityTypeID: input.ActivityTypeID}); err != nil {
			return nil, err
		}
	}
	if input.AssignedToID != nil {
		if err := s.validateReferences(ctx, referenceCheck{assignedToID: input.AssignedToID}); err != nil {
			return nil, err
		}
	}

	filter := repository.TaskFilter{
		Status:         input.Status,
		DueDateFrom:    input.DueDateFrom,
		DueDateTo:      input.DueDateTo,
		TaskName:       input.TaskName,
		ActivityTypeID: input.ActivityTypeID,
		SortOrder:      input.SortOrder,
		Skip:           input.Skip,
		Limit:          input.Limit,
	}

	switch input.TaskType {
	case constants.TaskTypeAssigned:
		filter.AssignedToIDs = append(filter.AssignedToIDs, input.UserID)
	default:
		userID := input.UserID
		filter.CreatedByID = &userID
	}
	if input.AssignedToID != nil {
		filter.AssignedToIDs = append(filter.AssignedToIDs, *input.AssignedToID)
	}

	tasks, err := s.taskRepo.List(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, nil
}

// GetByID returns a task if the actor is its creator, its assignee, or an admin.
func (s *TaskService) GetByID(id uint64, actor *models.User) (*models.Task, error) {
	task, err := s.findTask(id)
	if err != nil {
		return nil, err
	}

	if err := checkTaskPermission(task, actor, "read"); err != nil {
		return nil, err
	}

	return task, nil
}

// Update applies a partial update, appends a "Modified" history entry
// capturing before and after images, and re-notifies the assignee.
func (s *TaskService) Update(ctx context.Context, id uint64, input UpdateTaskInput, actor *models.User) (*models.Task, error) {
	task, err := s.findTask(id)
	if err != nil {
		return nil, err
	}

	if err := checkTaskPermission(task, actor, "update"); err != nil {
		return nil, err
	}

	if input.DueDate != nil {
		if err := validateDueDate(input.DueDate); err != nil {
			return nil, err
		}
	}

	if err := s.validateReferences(ctx, referenceCheck{
		activityTypeID:  input.ActivityTypeID,
		activityGroupID: input.ActivityGroupID,
		stageID:         input.StageID,
		coreGroupID:     input.CoreGroupID,
		assignedToID:    input.AssignedToID,
	}); err != nil {
		return nil, err
	}

	previous := models.SnapshotOf(task)

	if input.Attachments != nil {
		// Replacement is wholesale: the previous attachment rows are not
		// removed from storage, matching the long-standing behavior this
		// service inherited. See DESIGN.md.
		ids, err := s.storeAttachments(task.TaskID, input.Attachments)
		if err != nil {
			return nil, err
		}
		task.AttachmentIDs = ids
	}

	applyTaskUpdates(task, input)
	task.ModifiedOn = time.Now().UTC()

	if err := s.taskRepo.Save(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	entry := &models.TaskHistory{
		TaskID:       task.TaskID,
		Action:       models.HistoryActionModified,
		PreviousData: previous,
		NewData:      snapshotFromUpdate(input, task.AttachmentIDs),
		CreatedAt:    time.Now().UTC(),
		ModifiedByID: actor.ID,
	}
	if err := s.historyRepo.Create(entry); err != nil {
		zap.L().Error("failed to log task history",
			zap.Uint64("task_id", task.TaskID),
			zap.String("action", string(models.HistoryActionModified)),
			zap.Error(err))
		return nil, fmt.Errorf("failed to log task history: %w", err)
	}

	zap.L().Info("task updated",
		zap.Uint64("task_id", task.TaskID),
		zap.Uint64("user_id", actor.ID))

	s.notifyAssignee(ctx, task, actor)

	return task, nil
}

// Delete removes a task together with its entire audit trail. Nothing is
// written afterwards, so a deleted task leaves no trace.
func (s *TaskService) Delete(id uint64, actor *models.User) error {
	task, err := s.findTask(id)
	if err != nil {
		return err
	}

	if err := checkTaskPermission(task, actor, "delete"); err != nil {
		return err
	}

	if err := s.historyRepo.DeleteByTask(task.TaskID); err != nil {
		zap.L().Error("failed to delete task history",
			zap.Uint64("task_id", task.TaskID),
			zap.Error(err))
		return fmt.Errorf("failed to delete task history: %w", err)
	}

	if err := s.taskRepo.Delete(task.TaskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	zap.L().Info("task deleted",
		zap.Uint64("task_id", task.TaskID),
		zap.Uint64("user_id", actor.ID))

	return nil
}

func (s *TaskService) findTask(id uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// checkTaskPermission enforces the access rule applied uniformly to
// read/update/delete: creator OR assignee OR admin.
func checkTaskPermission(task *models.Task, actor *models.User, action string) error {
	if actor.IsAdmin {
		return nil
	}
	if task.CreatedByID == actor.ID {
		return nil
	}
	if task.AssignedToID != nil && *task.AssignedToID == actor.ID {
		return nil
	}

	zap.L().Warn("unauthorized task access attempt",
		zap.Uint64("task_id", task.TaskID),
		zap.Uint64("user_id", actor.ID),
		zap.String("action", action))
	return ErrTaskForbidden
}

// validateDueDate rejects due dates that are not strictly in the future.
// Comparison happens in UTC regardless of the client's offset.
func validateDueDate(dueDate *time.Time) error {
	if dueDate == nil {
		return nil
	}
	if !dueDate.UTC().After(time.Now().UTC()) {
		return &ValidationError{Detail: "The due date must be a future date."}
	}
	return nil
}

type referenceCheck struct {
	activityTypeID  *uint64
	activityGroupID *uint64
	stageID         *uint64
	coreGroupID     *uint64
	assignedToID    *uint64
}

// validateReferences runs the independent existence lookups concurrently.
// The first failure cancels the rest through the group context.
func (s *TaskService) validateReferences(ctx context.Context, check referenceCheck) error {
	g, ctx := errgroup.WithContext(ctx)

	if id := check.activityTypeID; id != nil {
		g.Go(s.existenceCheck(ctx, *id, s.refRepo.ActivityTypeExists, "Activity type"))
	}
	if id := check.activityGroupID; id != nil {
		g.Go(s.existenceCheck(ctx, *id, s.refRepo.ActivityGroupExists, "Activity group"))
	}
	if id := check.stageID; id != nil {
		g.Go(s.existenceCheck(ctx, *id, s.refRepo.StageExists, "Stage"))
	}
	if id := check.coreGroupID; id != nil {
		g.Go(s.existenceCheck(ctx, *id, s.refRepo.CoreGroupExists, "Core group"))
	}
	if id := check.assignedToID; id != nil {
		userID := *id
		g.Go(func() error {
			ok, err := s.userRepo.Exists(ctx, userID)
			if err != nil {
				return fmt.Errorf("failed to verify user %d: %w", userID, err)
			}
			if !ok {
				return &ValidationError{Detail: fmt.Sprintf("User with id %d does not exist to assign.", userID)}
			}
			return nil
		})
	}

	return g.Wait()
}

func (s *TaskService) existenceCheck(
	ctx context.Context,
	id uint64,
	exists func(context.Context, uint64) (bool, error),
	label string,
) func() error {
	return func() error {
		ok, err := exists(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to verify %s %d: %w", label, id, err)
		}
		if !ok {
			return &ValidationError{Detail: fmt.Sprintf("%s with id %d does not exist.", label, id)}
		}
		return nil
	}
}

func (s *TaskService) storeAttachments(taskID uint64, inputs []AttachmentInput) ([]int64, error) {
	attachments := make([]*models.Attachment, len(inputs))
	for i, in := range inputs {
		attachments[i] = &models.Attachment{
			TaskID:   taskID,
			FileName: in.FileName,
		}
	}

	if err := s.taskRepo.CreateAttachments(attachments); err != nil {
		return nil, fmt.Errorf("failed to store attachments: %w", err)
	}

	ids := make([]int64, len(attachments))
	for i, a := range attachments {
		ids[i] = int64(a.ID)
	}
	return ids, nil
}

// notifyAssignee hands the task off to the external notification
// collaborator. Delivery failures are logged and swallowed: the mutation has
// already been committed.
func (s *TaskService) notifyAssignee(ctx context.Context, task *models.Task, actor *models.User) {
	if s.notifier == nil || task.AssignedToID == nil {
		return
	}

	assignee, err := s.userRepo.FindByID(*task.AssignedToID)
	if err != nil {
		zap.L().Warn("could not resolve assignee for notification",
			zap.Uint64("task_id", task.TaskID),
			zap.Uint64("assignee_id", *task.AssignedToID),
			zap.Error(err))
		return
	}

	err = s.notifier.NotifyAssignment(ctx, AssignmentNotification{
		Recipient:   assignee.Email,
		TaskName:    task.TaskName,
		DueDate:     task.DueDate,
		Description: task.TaskDescription,
		Assignor:    actor.Username,
	})
	if err != nil {
		zap.L().Warn("assignment notification failed",
			zap.Uint64("task_id", task.TaskID),
			zap.String("recipient", assignee.Email),
			zap.Error(err))
	}
}

func applyTaskUpdates(task *models.Task, input UpdateTaskInput) {
	if input.TaskName != nil {
		task.TaskName = *input.TaskName
	}
	if input.TaskDescription != nil {
		task.TaskDescription = *input.TaskDescription
	}
	if input.Status != nil {
		task.Status = *input.Status
	}
	if input.DueDate != nil {
		task.DueDate = input.DueDate
	}
	if input.ActionType != nil {
		task.ActionType = *input.ActionType
	}
	if input.ActivityTypeID != nil {
		task.ActivityTypeID = *input.ActivityTypeID
	}
	if input.ActivityGroupID != nil {
		task.ActivityGroupID = input.ActivityGroupID
	}
	if input.StageID != nil {
		task.StageID = input.StageID
	}
	if input.CoreGroupID != nil {
		task.CoreGroupID = input.CoreGroupID
	}
	if input.AssignedToID != nil {
		task.AssignedToID = input.AssignedToID
	}
	if input.LinkResponseIDs != nil {
		task.LinkResponseIDs = input.LinkResponseIDs
	}
	if input.LinkObjectIDs != nil {
		task.LinkObjectIDs = input.LinkObjectIDs
	}
	if input.Notes != nil {
		task.Notes = *input.Notes
	}
	if input.Favorite != nil {
		task.Favorite = *input.Favorite
	}
}

// snapshotFromCreate captures the full create payload, including the
// generated attachment ids, as the new-data side of the "Added" entry.
func snapshotFromCreate(input CreateTaskInput, creatorID uint64, attachmentIDs []int64) *models.TaskSnapshot {
	return &models.TaskSnapshot{
		AttachmentIDs:   attachmentIDs,
		TaskName:        &input.TaskName,
		TaskDescription: &input.TaskDescription,
		Status:          &input.Status,
		DueDate:         input.DueDate,
		ActionType:      &input.ActionType,
		ActivityTypeID:  &input.ActivityTypeID,
		ActivityGroupID: input.ActivityGroupID,
		StageID:         input.StageID,
		CoreGroupID:     input.CoreGroupID,
		LinkResponseIDs: input.LinkResponseIDs,
		LinkObjectIDs:   input.LinkObjectIDs,
		Notes:           &input.Notes,
		Favorite:        &input.Favorite,
		CreatedByID:     &creatorID,
		AssignedToID:    input.AssignedToID,
	}
}

// snapshotFromUpdate captures only the supplied fields, so "Modified"
// entries record a partial after-image.
func snapshotFromUpdate(input UpdateTaskInput, attachmentIDs []int64) *models.TaskSnapshot {
	snapshot := &models.TaskSnapshot{
		TaskName:        input.TaskName,
		TaskDescription: input.TaskDescription,
		Status:          input.Status,
		DueDate:         input.DueDate,
		ActionType:      input.ActionType,
		ActivityTypeID:  input.ActivityTypeID,
		ActivityGroupID: input.ActivityGroupID,
		StageID:         input.StageID,
		CoreGroupID:     input.CoreGroupID,
		LinkResponseIDs: input.LinkResponseIDs,
		LinkObjectIDs:   input.LinkObjectIDs,
		Notes:           input.Notes,
		Favorite:        input.Favorite,
		AssignedToID:    input.AssignedToID,
	}
	if input.Attachments != nil {
		snapshot.AttachmentIDs = attachmentIDs
	}
	return snapshot
}
