package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/craftsync/task-activity-api/internal/dto"
	apierrors "github.com/craftsync/task-activity-api/internal/errors"
	"github.com/craftsync/task-activity-api/internal/services"
	"github.com/craftsync/task-activity-api/internal/utils"
)

// HistoryHandler serves the audit log read endpoints.
type HistoryHandler struct {
	historyService *services.HistoryService
}

// NewHistoryHandler creates a new HistoryHandler
func NewHistoryHandler(historyService *services.HistoryService) *HistoryHandler {
	return &HistoryHandler{
		historyService: historyService,
	}
}

// ListAll returns the global audit feed across all tasks
func (h *HistoryHandler) ListAll(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	sortOrder := utils.GetSortOrder(c)

	entries, err := h.historyService.ListAll(params.Skip, params.Limit, sortOrder)
	if err != nil {
		zap.L().Error("failed to list task histories", zap.Error(err))
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, dto.Wrap(http.StatusOK, dto.ToHistoryEntries(entries)))
}

// GetDetails returns the latest-two snapshot comparison for a task
func (h *HistoryHandler) GetDetails(c *gin.Context) {
	taskID, err := parseIDParam(c)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	details, err := h.historyService.GetDetails(taskID)
	if err != nil {
		if errors.Is(err, services.ErrHistoryNotFound) {
			apierrors.NotFound(c, "Task history not found")
			return
		}
		zap.L().Error("failed to fetch task history details",
			zap.Uint64("task_id", taskID),
			zap.Error(err))
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, dto.Wrap(http.StatusOK, details))
}

// ListForTask returns all audit rows of one task
func (h *HistoryHandler) ListForTask(c *gin.Context) {
	taskID, err := parseIDParam(c)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	entries, err := h.historyService.ListForTask(taskID)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskHistoryResponses(entries))
}

// LatestForTask returns the two most recent audit rows of one task
func (h *HistoryHandler) LatestForTask(c *gin.Context) {
	taskID, err := parseIDParam(c)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	entries, err := h.historyService.LatestForTask(taskID)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskHistoryResponses(entries))
}
