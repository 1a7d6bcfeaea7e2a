package models

import "time"

// TaskPriority represents the urgency level of a board task.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

// TaskStatus represents the board column a task currently lives in.
type TaskStatus string

const (
	StatusTodo       TaskStatus = "todo"
	StatusInProgress TaskStatus = "in-progress"
	StatusDone       TaskStatus = "done"
)

// ValidPriority reports whether p is one of the recognized priorities.
func ValidPriority(p TaskPriority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// ValidStatus reports whether s is one of the three board columns.
func ValidStatus(s TaskStatus) bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// Task represents a single card on the board. The ID is assigned by the
// store on creation and is immutable afterwards; UpdatedAt is refreshed on
// every mutation and is never earlier than CreatedAt.
type Task struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	Priority     TaskPriority `json:"priority"`
	Status       TaskStatus   `json:"status"`
	AssignedUser string       `json:"assignedUser"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// TaskFilters is a pure query descriptor for deriving a board view.
// Zero-valued fields match everything; it is never persisted.
type TaskFilters struct {
	Priority     TaskPriority
	AssignedUser string
	SearchTerm   string
}

// TaskUpdate is the closed set of fields a caller may change on an existing
// task. Nil pointers leave the corresponding field untouched. ID and
// CreatedAt are deliberately absent so a partial update can never overwrite
// them.
type TaskUpdate struct {
	Title        *string       `json:"title,omitempty"`
	Description  *string       `json:"description,omitempty"`
	Priority     *TaskPriority `json:"priority,omitempty"`
	Status       *TaskStatus   `json:"status,omitempty"`
	AssignedUser *string       `json:"assignedUser,omitempty"`
}

// Board is the derived, grouped view of the task collection. Groups are
// exhaustive and disjoint: every surviving task appears in exactly one.
type Board struct {
	Todo       []Task `json:"todo"`
	InProgress []Task `json:"in-progress"`
	Done       []Task `json:"done"`
}
