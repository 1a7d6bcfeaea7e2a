package models

import "time"

// SenderRole identifies who authored a chat message.
type SenderRole string

const (
	SenderVisitor SenderRole = "visitor"
	SenderAdmin   SenderRole = "admin"
)

// ValidSender reports whether r is a recognized sender role.
func ValidSender(r SenderRole) bool {
	return r == SenderVisitor || r == SenderAdmin
}

// ConversationStatus represents the lifecycle state of a conversation.
// The only transition is active -> closed; a closed conversation never
// reopens.
type ConversationStatus string

const (
	ConversationActive ConversationStatus = "active"
	ConversationClosed ConversationStatus = "closed"
)

// ChatMessage is a single entry in a conversation thread. Messages are
// append-only: once written they are never reordered or deleted. Timestamps
// within a conversation are non-decreasing; messages sharing a timestamp
// are ordered by append order.
type ChatMessage struct {
	ID        string     `json:"id"`
	Sender    SenderRole `json:"sender"`
	Text      string     `json:"text"`
	Timestamp time.Time  `json:"timestamp"`
}

// VisitorInfo carries the optional contact details a visitor supplies when
// opening a conversation.
type VisitorInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Conversation is a visitor messaging thread. Message order is insertion
// order, which is also chronological order. LastUpdate is refreshed on
// every append.
type Conversation struct {
	ID           string             `json:"id"`
	VisitorName  string             `json:"visitorName"`
	VisitorEmail string             `json:"visitorEmail"`
	VisitorPhone string             `json:"visitorPhone"`
	Messages     []ChatMessage      `json:"messages"`
	LastUpdate   time.Time          `json:"lastUpdate"`
	Status       ConversationStatus `json:"status"`
}

// ContactSubmission is a contact-form payload handed to the notifier.
type ContactSubmission struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}
