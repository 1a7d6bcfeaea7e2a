package core

import "github.com/allaithw/taskboard/pkg/models"

// TaskDraft is the caller-supplied portion of a new task. ID and timestamps
// are always assigned by the store, never by the caller.
type TaskDraft struct {
	Title        string
	Description  string
	Priority     models.TaskPriority
	Status       models.TaskStatus
	AssignedUser string
}

// TaskStore is the entity store for board tasks. Implementations checkpoint
// the full collection to their backing file before any mutator returns
// success. Defining the interface here keeps core independent of the
// storage package.
type TaskStore interface {
	Add(draft TaskDraft) (*models.Task, error)
	Update(id string, update models.TaskUpdate) (*models.Task, error)
	Delete(id string) error
	List() ([]models.Task, error)
	Load() error
}

// ConversationStore is the entity store for visitor conversations. Message
// sequences are append-only.
type ConversationStore interface {
	Create(visitor models.VisitorInfo) (*models.Conversation, error)
	Append(id string, sender models.SenderRole, text string) (*models.Conversation, error)
	SetStatus(id string, status models.ConversationStatus) (*models.Conversation, error)
	Get(id string) (*models.Conversation, error)
	List() ([]models.Conversation, error)
	Load() error
}
