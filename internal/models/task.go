package models

import (
	"time"
)

// Task is the core trackable unit of work. Activity type is the only
// reference that must be set; group, stage, and core group are optional.
type Task struct {
	TaskID          uint64     `gorm:"primarykey" json:"task_id"`
	TaskName        string     `gorm:"type:varchar(255);index;not null" json:"task_name"`
	TaskDescription string     `gorm:"type:text" json:"task_description"`
	Status          string     `gorm:"type:varchar(50);not null;default:'Not Started'" json:"status"`
	DueDate         *time.Time `json:"due_date"`
	ActionType      string     `gorm:"type:varchar(100)" json:"action_type"`

	ActivityTypeID  uint64  `gorm:"not null" json:"activity_type_id"`
	ActivityGroupID *uint64 `json:"activity_group_id"`
	StageID         *uint64 `json:"stage_id"`
	CoreGroupID     *uint64 `json:"core_group_id"`

	LinkResponseIDs []int64 `gorm:"serializer:json;type:text" json:"link_response_ids"`
	LinkObjectIDs   []int64 `gorm:"serializer:json;type:text" json:"link_object_ids"`
	AttachmentIDs   []int64 `gorm:"serializer:json;type:text" json:"attachment_ids"`

	Notes    string `gorm:"type:text" json:"notes"`
	Favorite bool   `json:"favorite"`

	CreatedByID  uint64  `gorm:"not null;index" json:"created_by_id"`
	AssignedToID *uint64 `gorm:"index" json:"assigned_to_id"`

	CreatedOn  time.Time `gorm:"index" json:"created_on"`
	ModifiedOn time.Time `json:"modified_on"`

	// Relations
	Creator     User          `gorm:"foreignKey:CreatedByID" json:"creator,omitempty"`
	Assignee    *User         `gorm:"foreignKey:AssignedToID" json:"assignee,omitempty"`
	Attachments []Attachment  `gorm:"foreignKey:TaskID" json:"attachments,omitempty"`
	History     []TaskHistory `gorm:"foreignKey:TaskID" json:"-"`
}

// TableName keeps the legacy table name used by existing deployments.
func (Task) TableName() string {
	return "tasks_activity"
}

// Attachment is a file reference owned by a task.
type Attachment struct {
	ID       uint64 `gorm:"primarykey" json:"id"`
	TaskID   uint64 `gorm:"index" json:"task_id"`
	FileName string `gorm:"type:varchar(255)" json:"file_name"`
}
