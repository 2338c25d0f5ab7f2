package dto

import (
	"time"

	"github.com/craftsync/task-activity-api/internal/models"
)

// TaskResponse represents a task in API responses
type TaskResponse struct {
	TaskID          uint64     `json:"task_id"`
	TaskName        string     `json:"task_name"`
	TaskDescription string     `json:"task_description"`
	Status          string     `json:"status"`
	Favorite        bool       `json:"favorite"`
	DueDate         *time.Time `json:"due_date"`
	ActionType      string     `json:"action_type"`
	ActivityTypeID  uint64     `json:"activity_type_id"`
	ActivityGroupID *uint64    `json:"activity_group_id"`
	StageID         *uint64    `json:"stage_id"`
	CoreGroupID     *uint64    `json:"core_group_id"`
	LinkResponseIDs []int64    `json:"link_response_ids"`
	LinkObjectIDs   []int64    `json:"link_object_ids"`
	Notes           string     `json:"notes"`
	AttachmentIDs   []int64    `json:"attachment_ids"`
	CreatedOn       time.Time  `json:"created_on"`
	ModifiedOn      time.Time  `json:"modified_on"`
	CreatedByID     uint64     `json:"created_by_id"`
	AssignedToID    *uint64    `json:"assigned_to_id"`
}

// TaskCreatedResponse is the reduced payload returned right after a create
type TaskCreatedResponse struct {
	TaskID          uint64  `json:"task_id"`
	TaskName        string  `json:"task_name"`
	TaskDescription string  `json:"task_description"`
	CreatedByID     uint64  `json:"created_by_id"`
	AssignedToID    *uint64 `json:"assigned_to_id"`
	CreatedOn       string  `json:"created_on"`
	ModifiedOn      string  `json:"modified_on"`
	Status          string  `json:"status"`
	Favorite        bool    `json:"favorite"`
}

// ToTaskResponse converts a Task model to TaskResponse
func ToTaskResponse(task models.Task) TaskResponse {
	return TaskResponse{
		TaskID:          task.TaskID,
		TaskName:        task.TaskName,
		TaskDescription: task.TaskDescription,
		Status:          task.Status,
		Favorite:        task.Favorite,
		DueDate:         task.DueDate,
		ActionType:      task.ActionType,
		ActivityTypeID:  task.ActivityTypeID,
		ActivityGroupID: task.ActivityGroupID,
		StageID:         task.StageID,
		CoreGroupID:     task.CoreGroupID,
		LinkResponseIDs: task.LinkResponseIDs,
		LinkObjectIDs:   task.LinkObjectIDs,
		Notes:           task.Notes,
		AttachmentIDs:   task.AttachmentIDs,
		CreatedOn:       task.CreatedOn,
		ModifiedOn:      task.ModifiedOn,
		CreatedByID:     task.CreatedByID,
		AssignedToID:    task.AssignedToID,
	}
}

// ToTaskCreatedResponse converts a freshly created Task to its response form
func ToTaskCreatedResponse(task models.Task) TaskCreatedResponse {
	return TaskCreatedResponse{
		TaskID:          task.TaskID,
		TaskName:        task.TaskName,
		TaskDescription: task.TaskDescription,
		CreatedByID:     task.CreatedByID,
		AssignedToID:    task.AssignedToID,
		CreatedOn:       task.CreatedOn.Format(time.RFC3339),
		ModifiedOn:      task.ModifiedOn.Format(time.RFC3339),
		Status:          task.Status,
		Favorite:        task.Favorite,
	}
}

// ToTaskResponses converts a slice of tasks
func ToTaskResponses(tasks []models.Task) []TaskResponse {
	responses := make([]TaskResponse, len(tasks))
	for i, task := range tasks {
		responses[i] = ToTaskResponse(task)
	}
	return responses
}
