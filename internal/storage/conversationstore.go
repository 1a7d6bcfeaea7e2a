package storage

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/natefinch/atomic"

	"github.com/allaithw/taskboard/internal/core"
	"github.com/allaithw/taskboard/pkg/models"
)

// fileConversationStore implements core.ConversationStore backed by a
// conversations.json file. Message sequences are append-only: the store
// never reorders or removes messages.
type fileConversationStore struct {
	basePath string
	idGen    core.IDGenerator

	mu    sync.Mutex
	convs []models.Conversation
}

// NewConversationStore creates a ConversationStore backed by
// conversations.json in the given base directory.
func NewConversationStore(basePath string, idGen core.IDGenerator) core.ConversationStore {
	return &fileConversationStore{
		basePath: basePath,
		idGen:    idGen,
	}
}

func (s *fileConversationStore) filePath() string {
	return filepath.Join(s.basePath, "conversations.json")
}

// Create opens a new active conversation with an empty message list. A
// missing visitor name defaults to "Anonymous".
func (s *fileConversationStore) Create(visitor models.VisitorInfo) (*models.Conversation, error) {
	name := visitor.Name
	if name == "" {
		name = "Anonymous"
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	conv := models.Conversation{
		ID:           s.idGen.NewID(),
		VisitorName:  name,
		VisitorEmail: visitor.Email,
		VisitorPhone: visitor.Phone,
		Messages:     []models.ChatMessage{},
		LastUpdate:   time.Now().UTC(),
		Status:       models.ConversationActive,
	}

	s.convs = append(s.convs, conv)
	if err := s.save(); err != nil {
		s.convs = s.convs[:len(s.convs)-1]
		return nil, err
	}
	out := cloneConversation(conv)
	return &out, nil
}

// Append pushes a new message onto the conversation and refreshes
// LastUpdate. Timestamps within a conversation are kept non-decreasing: if
// the wall clock reads earlier than the previous message, the previous
// timestamp is reused and append order remains the tie-break.
func (s *fileConversationStore) Append(id string, sender models.SenderRole, text string) (*models.Conversation, error) {
	if !models.ValidSender(sender) {
		return nil, core.ValidationError{Field: "sender", Reason: "must be visitor or admin"}
	}
	if text == "" {
		return nil, core.ValidationError{Field: "text", Reason: "must not be empty"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil, core.NotFoundError{Kind: "conversation", ID: id}
	}

	now := time.Now().UTC()
	if n := len(s.convs[idx].Messages); n > 0 {
		if last := s.convs[idx].Messages[n-1].Timestamp; now.Before(last) {
			now = last
		}
	}

	msg := models.ChatMessage{
		ID:        s.idGen.NewID(),
		Sender:    sender,
		Text:      text,
		Timestamp: now,
	}

	prev := cloneConversation(s.convs[idx])
	s.convs[idx].Messages = append(s.convs[idx].Messages, msg)
	s.convs[idx].LastUpdate = now
	if err := s.save(); err != nil {
		s.convs[idx] = prev
		return nil, err
	}
	out := cloneConversation(s.convs[idx])
	return &out, nil
}

func (s *fileConversationStore) SetStatus(id string, status models.ConversationStatus) (*models.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil, core.NotFoundError{Kind: "conversation", ID: id}
	}

	prev := s.convs[idx].Status
	s.convs[idx].Status = status
	if err := s.save(); err != nil {
		s.convs[idx].Status = prev
		return nil, err
	}
	out := cloneConversation(s.convs[idx])
	return &out, nil
}

func (s *fileConversationStore) Get(id string) (*models.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil, core.NotFoundError{Kind: "conversation", ID: id}
	}
	out := cloneConversation(s.convs[idx])
	return &out, nil
}

func (s *fileConversationStore) List() ([]models.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Conversation, len(s.convs))
	for i, conv := range s.convs {
		out[i] = cloneConversation(conv)
	}
	return out, nil
}

func (s *fileConversationStore) indexOf(id string) int {
	for i, conv := range s.convs {
		if conv.ID == id {
			return i
		}
	}
	return -1
}

// Load reads conversations.json into memory. A missing file yields an
// empty collection.
func (s *fileConversationStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath())
	if err != nil {
		if os.IsNotExist(err) {
			s.convs = nil
			return nil
		}
		return core.PersistenceError{Op: "loading conversations", Err: err}
	}

	var convs []models.Conversation
	if err := json.Unmarshal(data, &convs); err != nil {
		return core.PersistenceError{Op: "parsing conversations", Err: err}
	}
	s.convs = convs
	return nil
}

func (s *fileConversationStore) save() error {
	if err := os.MkdirAll(s.basePath, 0o750); err != nil {
		return core.PersistenceError{Op: "creating data directory", Err: err}
	}
	data, err := json.MarshalIndent(s.convs, "", "  ")
	if err != nil {
		return core.PersistenceError{Op: "marshaling conversations", Err: err}
	}
	if err := atomic.WriteFile(s.filePath(), bytes.NewReader(data)); err != nil {
		return core.PersistenceError{Op: "writing conversations", Err: err}
	}
	return nil
}

// cloneConversation deep-copies the message slice so callers can never
// mutate stored records through a returned conversation.
func cloneConversation(conv models.Conversation) models.Conversation {
	out := conv
	out.Messages = make([]models.ChatMessage, len(conv.Messages))
	copy(out.Messages, conv.Messages)
	return out
}
