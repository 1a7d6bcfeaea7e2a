package observability

import (
	"path/filepath"
	"testing"
	"time"
)

func newMetricsFixture(t *testing.T) (EventLog, MetricsCalculator) {
	t.Helper()
	log, err := NewJSONLEventLog(filepath.Join(t.TempDir(), "events.jsonl"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t.Cleanup(func() { _ = log.Close() })
	return log, NewMetricsCalculator(log)
}

func writeEvent(t *testing.T, log EventLog, eventType string, data map[string]any) {
	t.Helper()
	err := log.Write(Event{
		Time:    time.Now().UTC(),
		Level:   "INFO",
		Type:    eventType,
		Message: eventType,
		Data:    data,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCalculateMetrics(t *testing.T) {
	log, calc := newMetricsFixture(t)

	writeEvent(t, log, "task.created", map[string]any{"task_id": "t1"})
	writeEvent(t, log, "task.created", map[string]any{"task_id": "t2"})
	writeEvent(t, log, "task.moved", map[string]any{"task_id": "t1", "new_status": "in-progress"})
	writeEvent(t, log, "task.moved", map[string]any{"task_id": "t1", "new_status": "done"})
	writeEvent(t, log, "task.deleted", map[string]any{"task_id": "t2"})
	writeEvent(t, log, "conversation.started", map[string]any{"conversation_id": "c1"})
	writeEvent(t, log, "message.appended", map[string]any{"sender": "visitor"})
	writeEvent(t, log, "message.appended", map[string]any{"sender": "admin"})
	writeEvent(t, log, "contact.received", map[string]any{"name": "Sara"})

	m, err := calc.Calculate(time.Now().UTC().Add(-time.Hour))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if m.TasksCreated != 2 {
		t.Fatalf("expected 2 created, got %d", m.TasksCreated)
	}
	if m.TasksCompleted != 1 {
		t.Fatalf("a move to done counts as completion, got %d", m.TasksCompleted)
	}
	if m.TasksDeleted != 1 {
		t.Fatalf("expected 1 deleted, got %d", m.TasksDeleted)
	}
	if m.MovesByStatus["in-progress"] != 1 || m.MovesByStatus["done"] != 1 {
		t.Fatalf("unexpected move counts: %v", m.MovesByStatus)
	}
	if m.ConversationsOpen != 1 || m.ContactsReceived != 1 {
		t.Fatalf("unexpected conversation/contact counts: %+v", m)
	}
	if m.MessagesBySender["visitor"] != 1 || m.MessagesBySender["admin"] != 1 {
		t.Fatalf("unexpected sender counts: %v", m.MessagesBySender)
	}
	if m.EventCount != 9 {
		t.Fatalf("expected 9 events, got %d", m.EventCount)
	}
	if m.OldestEvent == nil || m.NewestEvent == nil {
		t.Fatal("expected oldest and newest event times")
	}
}

func TestCalculateMetricsEmptyWindow(t *testing.T) {
	log, calc := newMetricsFixture(t)
	writeEvent(t, log, "task.created", nil)

	m, err := calc.Calculate(time.Now().UTC().Add(time.Hour))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.EventCount != 0 || m.TasksCreated != 0 {
		t.Fatalf("events before the window must not count: %+v", m)
	}
	if m.OldestEvent != nil {
		t.Fatal("no events means no oldest event")
	}
}
