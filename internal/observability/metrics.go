package observability

import (
	"fmt"
	"time"
)

// Metrics holds calculated metrics derived from the event log.
type Metrics struct {
	TasksCreated       int            `json:"tasks_created"`
	TasksCompleted     int            `json:"tasks_completed"`
	TasksDeleted       int            `json:"tasks_deleted"`
	MovesByStatus      map[string]int `json:"moves_by_status"`
	ConversationsOpen  int            `json:"conversations_started"`
	MessagesBySender   map[string]int `json:"messages_by_sender"`
	ContactsReceived   int            `json:"contacts_received"`
	EventCount         int            `json:"event_count"`
	OldestEvent        *time.Time     `json:"oldest_event,omitempty"`
	NewestEvent        *time.Time     `json:"newest_event,omitempty"`
}

// MetricsCalculator derives board and messaging metrics from the event log.
type MetricsCalculator interface {
	Calculate(since time.Time) (*Metrics, error)
}

type metricsCalculator struct {
	eventLog EventLog
}

// NewMetricsCalculator creates a MetricsCalculator that reads from the given EventLog.
func NewMetricsCalculator(eventLog EventLog) MetricsCalculator {
	return &metricsCalculator{eventLog: eventLog}
}

// Calculate reads all events since the given time and aggregates them.
// A task counts as completed when it is moved to the done column.
func (mc *metricsCalculator) Calculate(since time.Time) (*Metrics, error) {
	events, err := mc.eventLog.Read(EventFilter{Since: &since})
	if err != nil {
		return nil, fmt.Errorf("reading events for metrics: %w", err)
	}

	m := &Metrics{
		MovesByStatus:    make(map[string]int),
		MessagesBySender: make(map[string]int),
	}

	m.EventCount = len(events)

	for i, event := range events {
		if i == 0 {
			t := event.Time
			m.OldestEvent = &t
		}
		t := event.Time
		m.NewestEvent = &t

		switch event.Type {
		case "task.created":
			m.TasksCreated++
		case "task.deleted":
			m.TasksDeleted++
		case "task.moved":
			if status, ok := event.Data["new_status"].(string); ok {
				m.MovesByStatus[status]++
				if status == "done" {
					m.TasksCompleted++
				}
			}
		case "conversation.started":
			m.ConversationsOpen++
		case "message.appended":
			if sender, ok := event.Data["sender"].(string); ok {
				m.MessagesBySender[sender]++
			}
		case "contact.received":
			m.ContactsReceived++
		}
	}

	return m, nil
}
