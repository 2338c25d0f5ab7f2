package dto

import (
	"time"

	"github.com/craftsync/task-activity-api/internal/models"
)

// HistoryEntry is one row of the global audit feed: the deserialized
// new-data snapshot plus fields extracted for display.
type HistoryEntry struct {
	ActivityObject *models.TaskSnapshot `json:"activity_object"`
	ActivityName   string               `json:"activity_name"`
	Activity       string               `json:"activity"`
	CreatedBy      string               `json:"created_by"`
	CreatedAt      time.Time            `json:"created_at"`
}

// TaskHistoryResponse is the raw audit row shape.
type TaskHistoryResponse struct {
	ID           uint64               `json:"id"`
	TaskID       uint64               `json:"task_id"`
	Action       string               `json:"action"`
	PreviousData *models.TaskSnapshot `json:"previous_data"`
	NewData      *models.TaskSnapshot `json:"new_data"`
	CreatedAt    time.Time            `json:"created_at"`
	ModifiedByID uint64               `json:"modified_by_id"`
}

// ToHistoryEntry formats an audit row for the global feed. Task name and
// status fall back to "N/A" when the snapshot does not carry them.
func ToHistoryEntry(entry models.TaskHistory) HistoryEntry {
	name := "N/A"
	status := "N/A"
	if entry.NewData != nil {
		if entry.NewData.TaskName != nil {
			name = *entry.NewData.TaskName
		}
		if entry.NewData.Status != nil {
			status = *entry.NewData.Status
		}
	}

	createdBy := "N/A"
	if entry.ModifiedBy.ID != 0 {
		createdBy = entry.ModifiedBy.Username
	}

	return HistoryEntry{
		ActivityObject: entry.NewData,
		ActivityName:   name,
		Activity:       status,
		CreatedBy:      createdBy,
		CreatedAt:      entry.CreatedAt,
	}
}

// ToHistoryEntries converts a slice of audit rows
func ToHistoryEntries(entries []models.TaskHistory) []HistoryEntry {
	result := make([]HistoryEntry, len(entries))
	for i, entry := range entries {
		result[i] = ToHistoryEntry(entry)
	}
	return result
}

// ToTaskHistoryResponse converts an audit row to its raw response shape
func ToTaskHistoryResponse(entry models.TaskHistory) TaskHistoryResponse {
	return TaskHistoryResponse{
		ID:           entry.ID,
		TaskID:       entry.TaskID,
		Action:       string(entry.Action),
		PreviousData: entry.PreviousData,
		NewData:      entry.NewData,
		CreatedAt:    entry.CreatedAt,
		ModifiedByID: entry.ModifiedByID,
	}
}

// ToTaskHistoryResponses converts a slice of audit rows
func ToTaskHistoryResponses(entries []models.TaskHistory) []TaskHistoryResponse {
	result := make([]TaskHistoryResponse, len(entries))
	for i, entry := range entries {
		result[i] = ToTaskHistoryResponse(entry)
	}
	return result
}
