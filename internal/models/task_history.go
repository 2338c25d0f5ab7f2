package models

import "time"

// HistoryAction enumerates the recorded task mutations.
type HistoryAction string

const (
	HistoryActionAdded    HistoryAction = "Added"
	HistoryActionModified HistoryAction = "Modified"
	HistoryActionDeleted  HistoryAction = "Deleted"
)

// TaskHistory is an append-only audit record of a task mutation. Rows are
// never updated after insert; they are bulk-deleted together with their task.
type TaskHistory struct {
	ID           uint64        `gorm:"primarykey" json:"id"`
	TaskID       uint64        `gorm:"not null;index" json:"task_id"`
	Action       HistoryAction `gorm:"type:varchar(50);not null" json:"action"`
	PreviousData *TaskSnapshot `gorm:"serializer:json;type:text" json:"previous_data"`
	NewData      *TaskSnapshot `gorm:"serializer:json;type:text" json:"new_data"`
	CreatedAt    time.Time     `gorm:"index" json:"created_at"`
	ModifiedByID uint64        `gorm:"not null" json:"modified_by_id"`

	// Relations
	ModifiedBy User `gorm:"foreignKey:ModifiedByID" json:"-"`
}

// TableName keeps the legacy table name used by existing deployments.
func (TaskHistory) TableName() string {
	return "tasks_history"
}

// TaskSnapshot is the typed audit payload: a closed set of optional fields
// mirroring Task. Update snapshots carry only the supplied fields, so every
// field is a pointer or slice and absent values marshal as null.
type TaskSnapshot struct {
	TaskName        *string    `json:"task_name,omitempty"`
	TaskDescription *string    `json:"task_description,omitempty"`
	Status          *string    `json:"status,omitempty"`
	DueDate         *time.Time `json:"due_date,omitempty"`
	ActionType      *string    `json:"action_type,omitempty"`
	ActivityTypeID  *uint64    `json:"activity_type_id,omitempty"`
	ActivityGroupID *uint64    `json:"activity_group_id,omitempty"`
	StageID         *uint64    `json:"stage_id,omitempty"`
	CoreGroupID     *uint64    `json:"core_group_id,omitempty"`
	LinkResponseIDs []int64    `json:"link_response_ids,omitempty"`
	LinkObjectIDs   []int64    `json:"link_object_ids,omitempty"`
	AttachmentIDs   []int64    `json:"attachment_ids,omitempty"`
	Notes           *string    `json:"notes,omitempty"`
	Favorite        *bool      `json:"favorite,omitempty"`
	CreatedByID     *uint64    `json:"created_by_id,omitempty"`
	AssignedToID    *uint64    `json:"assigned_to_id,omitempty"`
	CreatedOn       *time.Time `json:"created_on,omitempty"`
	ModifiedOn      *time.Time `json:"modified_on,omitempty"`
}

// SnapshotOf captures the full field image of a task, used as the
// previous-data side of a Modified entry.
func SnapshotOf(task *Task) *TaskSnapshot {
	createdOn := task.CreatedOn
	modifiedOn := task.ModifiedOn

	return &TaskSnapshot{
		TaskName:        ptr(task.TaskName),
		TaskDescription: ptr(task.TaskDescription),
		Status:          ptr(task.Status),
		DueDate:         task.DueDate,
		ActionType:      ptr(task.ActionType),
		ActivityTypeID:  ptr(task.ActivityTypeID),
		ActivityGroupID: task.ActivityGroupID,
		StageID:         task.StageID,
		CoreGroupID:     task.CoreGroupID,
		LinkResponseIDs: task.LinkResponseIDs,
		LinkObjectIDs:   task.LinkObjectIDs,
		AttachmentIDs:   task.AttachmentIDs,
		Notes:           ptr(task.Notes),
		Favorite:        ptr(task.Favorite),
		CreatedByID:     ptr(task.CreatedByID),
		AssignedToID:    task.AssignedToID,
		CreatedOn:       &createdOn,
		ModifiedOn:      &modifiedOn,
	}
}

func ptr[T any](v T) *T {
	return &v
}
