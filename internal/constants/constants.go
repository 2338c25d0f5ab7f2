package constants

// Pagination defaults
const (
	DefaultSkip  = 0
	DefaultLimit = 10
	MaxLimit     = 100
)

// Sort orders accepted by list endpoints
const (
	SortOrderAsc  = "asc"
	SortOrderDesc = "desc"
)

// Task type filters for the task list endpoint
const (
	TaskTypeCreated  = "created"
	TaskTypeAssigned = "assigned"
)

// ContextKeyUser is the gin context key holding the authenticated user.
const ContextKeyUser = "current_user"

// HistoryTimestampLayout is the fixed display format for history details.
const HistoryTimestampLayout = "01/02/06 15:04"

// MinPasswordLength is the minimum accepted password length on signup.
const MinPasswordLength = 8

// DefaultTaskStatus is applied when a task is created without a status.
const DefaultTaskStatus = "Not Started"
