package core

import (
	"fmt"

	"github.com/allaithw/taskboard/pkg/models"
)

// ConversationManager implements the conversation append model. Admin
// authentication happens at the HTTP boundary before these methods run:
// once a caller is past that boundary its sender-role claim is trusted and
// never re-checked here.
type ConversationManager interface {
	StartOrAppend(conversationID string, visitor models.VisitorInfo, sender models.SenderRole, text string) (*models.Conversation, error)
	Close(conversationID string) (*models.Conversation, error)
	Get(conversationID string) (*models.Conversation, error)
	List() ([]models.Conversation, error)
}

type conversationManager struct {
	store  ConversationStore
	events EventLogger
}

// NewConversationManager creates a ConversationManager. events may be nil
// if observability is disabled.
func NewConversationManager(store ConversationStore, events EventLogger) ConversationManager {
	return &conversationManager{
		store:  store,
		events: events,
	}
}

// StartOrAppend appends a message to the conversation with the given id,
// creating the conversation first when the id is empty or unknown and the
// sender is a visitor. An admin can only reply to an existing conversation:
// an unknown id with an admin sender fails with NotFound and leaves the
// store unchanged. The full updated conversation is returned so the caller
// can re-render the whole thread.
func (cm *conversationManager) StartOrAppend(conversationID string, visitor models.VisitorInfo, sender models.SenderRole, text string) (*models.Conversation, error) {
	if !models.ValidSender(sender) {
		return nil, ValidationError{Field: "sender", Reason: "must be visitor or admin"}
	}

	exists := false
	if conversationID != "" {
		if _, err := cm.store.Get(conversationID); err == nil {
			exists = true
		} else if !IsNotFound(err) {
			return nil, fmt.Errorf("looking up conversation %s: %w", conversationID, err)
		}
	}

	if !exists {
		if sender == models.SenderAdmin {
			return nil, NotFoundError{Kind: "conversation", ID: conversationID}
		}
		conv, err := cm.store.Create(visitor)
		if err != nil {
			return nil, fmt.Errorf("starting conversation: %w", err)
		}
		conversationID = conv.ID
		cm.logEvent("conversation.started", map[string]any{
			"conversation_id": conv.ID,
			"visitor":         conv.VisitorName,
		})
	}

	conv, err := cm.store.Append(conversationID, sender, text)
	if err != nil {
		return nil, fmt.Errorf("appending to conversation %s: %w", conversationID, err)
	}

	cm.logEvent("message.appended", map[string]any{
		"conversation_id": conv.ID,
		"sender":          string(sender),
	})
	return conv, nil
}

// Close transitions a conversation from active to closed. Closing an
// already-closed conversation is a no-op; there is no transition back.
func (cm *conversationManager) Close(conversationID string) (*models.Conversation, error) {
	conv, err := cm.store.SetStatus(conversationID, models.ConversationClosed)
	if err != nil {
		return nil, fmt.Errorf("closing conversation %s: %w", conversationID, err)
	}

	cm.logEvent("conversation.closed", map[string]any{"conversation_id": conv.ID})
	return conv, nil
}

func (cm *conversationManager) Get(conversationID string) (*models.Conversation, error) {
	conv, err := cm.store.Get(conversationID)
	if err != nil {
		return nil, fmt.Errorf("getting conversation %s: %w", conversationID, err)
	}
	return conv, nil
}

func (cm *conversationManager) List() ([]models.Conversation, error) {
	convs, err := cm.store.List()
	if err != nil {
		return nil, fmt.Errorf("listing conversations: %w", err)
	}
	return convs, nil
}

func (cm *conversationManager) logEvent(eventType string, data map[string]any) {
	if cm.events == nil {
		return
	}
	_ = cm.events.LogEvent(eventType, data)
}
