package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/craftsync/task-activity-api/internal/dto"
	apierrors "github.com/craftsync/task-activity-api/internal/errors"
	"github.com/craftsync/task-activity-api/internal/middleware"
	"github.com/craftsync/task-activity-api/internal/services"
	"github.com/craftsync/task-activity-api/internal/utils"
)

// TaskHandler coordinates the task mutation endpoints.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// AttachmentRequest is an attachment supplied with a create or update body
type AttachmentRequest struct {
	FileName string `json:"file_name"`
}

// CreateTask creates a new task
func (h *TaskHandler) CreateTask(c *gin.Context) {
	actor, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateTaskRequest struct {
		TaskName        string              `json:"task_name" binding:"required"`
		TaskDescription string              `json:"task_description"`
		Status          string              `json:"status"`
		DueDate         *time.Time          `json:"due_date"`
		ActionType      string              `json:"action_type"`
		ActivityTypeID  uint64              `json:"activity_type_id" binding:"required"`
		ActivityGroupID *uint64             `json:"activity_group_id"`
		StageID         *uint64             `json:"stage_id"`
		CoreGroupID     *uint64             `json:"core_group_id"`
		AssignedToID    *uint64             `json:"assigned_to_id"`
		LinkResponseIDs []int64             `json:"link_response_ids"`
		LinkObjectIDs   []int64             `json:"link_object_ids"`
		Notes           string              `json:"notes"`
		Favorite        bool                `json:"favorite"`
		Attachments     []AttachmentRequest `json:"attachments"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.Create(c.Request.Context(), services.CreateTaskInput{
		TaskName:        req.TaskName,
		TaskDescription: req.TaskDescription,
		Status:          req.Status,
		DueDate:         req.DueDate,
		ActionType:      req.ActionType,
		ActivityTypeID:  req.ActivityTypeID,
		ActivityGroupID: req.ActivityGroupID,
		StageID:         req.StageID,
		CoreGroupID:     req.CoreGroupID,
		AssignedToID:    req.AssignedToID,
		LinkResponseIDs: req.LinkResponseIDs,
		LinkObjectIDs:   req.LinkObjectIDs,
		Notes:           req.Notes,
		Favorite:        req.Favorite,
		Attachments:     toAttachmentInputs(req.Attachments),
	}, actor)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.Wrap(http.StatusCreated, dto.ToTaskCreatedResponse(*task)))
}

// ListTasks returns tasks created by or assigned to the current user
func (h *TaskHandler) ListTasks(c *gin.Context) {
	actor, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	params := utils.GetPaginationParams(c)

	input := services.ListTasksInput{
		UserID:    actor.ID,
		TaskType:  c.DefaultQuery("task_type", "created"),
		TaskName:  c.Query("task_name"),
		SortOrder: utils.GetSortOrder(c),
		Skip:      params.Skip,
		Limit:     params.Limit,
	}

	if status := c.Query("status"); status != "" {
		input.Status = &status
	}
	if from, ok := parseTimeQuery(c, "due_date_from"); ok {
		input.DueDateFrom = from
	}
	if to, ok := parseTimeQuery(c, "due_date_to"); ok {
		input.DueDateTo = to
	}
	if id, ok, err := parseUintQuery(c, "activity_type_id"); err != nil {
		apierrors.BadRequest(c, "Invalid activity_type_id")
		return
	} else if ok {
		input.ActivityTypeID = &id
	}
	if id, ok, err := parseUintQuery(c, "assigned_to_id"); err != nil {
		apierrors.BadRequest(c, "Invalid assigned_to_id")
		return
	} else if ok {
		input.AssignedToID = &id
	}

	tasks, err := h.taskService.List(c.Request.Context(), input)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Wrap(http.StatusOK, dto.ToTaskResponses(tasks)))
}

// GetTask returns a specific task by ID
func (h *TaskHandler) GetTask(c *gin.Context) {
	actor, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, err := parseIDParam(c)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	task, err := h.taskService.GetByID(taskID, actor)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Wrap(http.StatusOK, dto.ToTaskResponse(*task)))
}

// UpdateTask applies a partial update to an existing task
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	actor, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, err := parseIDParam(c)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	type UpdateTaskRequest struct {
		TaskName        *string             `json:"task_name"`
		TaskDescription *string             `json:"task_description"`
		Status          *string             `json:"status"`
		DueDate         *time.Time          `json:"due_date"`
		ActionType      *string             `json:"action_type"`
		ActivityTypeID  *uint64             `json:"activity_type_id"`
		ActivityGroupID *uint64             `json:"activity_group_id"`
		StageID         *uint64             `json:"stage_id"`
		CoreGroupID     *uint64             `json:"core_group_id"`
		AssignedToID    *uint64             `json:"assigned_to_id"`
		LinkResponseIDs []int64             `json:"link_response_ids"`
		LinkObjectIDs   []int64             `json:"link_object_ids"`
		Notes           *string             `json:"notes"`
		Favorite        *bool               `json:"favorite"`
		Attachments     []AttachmentRequest `json:"attachments"`
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.UpdateTaskInput{
		TaskName:        req.TaskName,
		TaskDescription: req.TaskDescription,
		Status:          req.Status,
		DueDate:         req.DueDate,
		ActionType:      req.ActionType,
		ActivityTypeID:  req.ActivityTypeID,
		ActivityGroupID: req.ActivityGroupID,
		StageID:         req.StageID,
		CoreGroupID:     req.CoreGroupID,
		AssignedToID:    req.AssignedToID,
		LinkResponseIDs: req.LinkResponseIDs,
		LinkObjectIDs:   req.LinkObjectIDs,
		Notes:           req.Notes,
		Favorite:        req.Favorite,
	}
	if req.Attachments != nil {
		input.Attachments = toAttachmentInputs(req.Attachments)
	}

	task, err := h.taskService.Update(c.Request.Context(), taskID, input, actor)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Wrap(http.StatusOK, dto.ToTaskResponse(*task)))
}

// DeleteTask removes a task and its audit trail
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	actor, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, err := parseIDParam(c)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	if err := h.taskService.Delete(taskID, actor); err != nil {
		respondTaskError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// respondTaskError maps domain errors onto the HTTP taxonomy. Anything
// unrecognized is a 500 with a generic detail so storage errors never leak.
func respondTaskError(c *gin.Context, err error) {
	var validationErr *services.ValidationError
	switch {
	case errors.As(err, &validationErr):
		apierrors.BadRequest(c, validationErr.Detail)
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, "Task not found")
	case errors.Is(err, services.ErrTaskForbidden):
		apierrors.Forbidden(c, "You do not have access to this task")
	default:
		zap.L().Error("task operation failed", zap.Error(err))
		apierrors.InternalError(c, "")
	}
}

func toAttachmentInputs(requests []AttachmentRequest) []services.AttachmentInput {
	inputs := make([]services.AttachmentInput, len(requests))
	for i, r := range requests {
		inputs[i] = services.AttachmentInput{FileName: r.FileName}
	}
	return inputs
}

func parseIDParam(c *gin.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}

func parseUintQuery(c *gin.Context, name string) (uint64, bool, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, false, nil
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, false, err
	}
	return id, true, nil
}

func parseTimeQuery(c *gin.Context, name string) (*time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, false
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, false
	}
	return &t, true
}
