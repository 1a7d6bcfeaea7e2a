package core

import (
	"fmt"
	"time"

	"github.com/allaithw/taskboard/pkg/models"
)

// memTaskStore is an in-memory TaskStore for exercising the managers
// without touching disk.
type memTaskStore struct {
	tasks  []models.Task
	nextID int
}

func (s *memTaskStore) Add(draft TaskDraft) (*models.Task, error) {
	s.nextID++
	now := time.Now().UTC()
	task := models.Task{
		ID:           fmt.Sprintf("task-%d", s.nextID),
		Title:        draft.Title,
		Description:  draft.Description,
		Priority:     draft.Priority,
		Status:       draft.Status,
		AssignedUser: draft.AssignedUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.tasks = append(s.tasks, task)
	return &task, nil
}

func (s *memTaskStore) Update(id string, update models.TaskUpdate) (*models.Task, error) {
	for i := range s.tasks {
		if s.tasks[i].ID != id {
			continue
		}
		if update.Title != nil {
			s.tasks[i].Title = *update.Title
		}
		if update.Description != nil {
			s.tasks[i].Description = *update.Description
		}
		if update.Priority != nil {
			s.tasks[i].Priority = *update.Priority
		}
		if update.Status != nil {
			s.tasks[i].Status = *update.Status
		}
		if update.AssignedUser != nil {
			s.tasks[i].AssignedUser = *update.AssignedUser
		}
		s.tasks[i].UpdatedAt = time.Now().UTC()
		task := s.tasks[i]
		return &task, nil
	}
	return nil, NotFoundError{Kind: "task", ID: id}
}

func (s *memTaskStore) Delete(id string) error {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *memTaskStore) List() ([]models.Task, error) {
	out := make([]models.Task, len(s.tasks))
	copy(out, s.tasks)
	return out, nil
}

func (s *memTaskStore) Load() error { return nil }

// memConversationStore is an in-memory ConversationStore.
type memConversationStore struct {
	convs  []models.Conversation
	nextID int
}

func (s *memConversationStore) Create(visitor models.VisitorInfo) (*models.Conversation, error) {
	s.nextID++
	name := visitor.Name
	if name == "" {
		name = "Anonymous"
	}
	conv := models.Conversation{
		ID:           fmt.Sprintf("conv-%d", s.nextID),
		VisitorName:  name,
		VisitorEmail: visitor.Email,
		VisitorPhone: visitor.Phone,
		Messages:     []models.ChatMessage{},
		LastUpdate:   time.Now().UTC(),
		Status:       models.ConversationActive,
	}
	s.convs = append(s.convs, conv)
	return &conv, nil
}

func (s *memConversationStore) Append(id string, sender models.SenderRole, text string) (*models.Conversation, error) {
	for i := range s.convs {
		if s.convs[i].ID != id {
			continue
		}
		s.nextID++
		now := time.Now().UTC()
		s.convs[i].Messages = append(s.convs[i].Messages, models.ChatMessage{
			ID:        fmt.Sprintf("msg-%d", s.nextID),
			Sender:    sender,
			Text:      text,
			Timestamp: now,
		})
		s.convs[i].LastUpdate = now
		conv := s.convs[i]
		return &conv, nil
	}
	return nil, NotFoundError{Kind: "conversation", ID: id}
}

func (s *memConversationStore) SetStatus(id string, status models.ConversationStatus) (*models.Conversation, error) {
	for i := range s.convs {
		if s.convs[i].ID == id {
			s.convs[i].Status = status
			conv := s.convs[i]
			return &conv, nil
		}
	}
	return nil, NotFoundError{Kind: "conversation", ID: id}
}

func (s *memConversationStore) Get(id string) (*models.Conversation, error) {
	for i := range s.convs {
		if s.convs[i].ID == id {
			conv := s.convs[i]
			return &conv, nil
		}
	}
	return nil, NotFoundError{Kind: "conversation", ID: id}
}

func (s *memConversationStore) List() ([]models.Conversation, error) {
	out := make([]models.Conversation, len(s.convs))
	copy(out, s.convs)
	return out, nil
}

func (s *memConversationStore) Load() error { return nil }

// recordingEventLogger captures event types for assertions.
type recordingEventLogger struct {
	events []string
}

func (l *recordingEventLogger) LogEvent(eventType string, data map[string]any) error {
	l.events = append(l.events, eventType)
	return nil
}
