package web

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/allaithw/taskboard/internal/core"
	"github.com/allaithw/taskboard/internal/observability"
	"github.com/allaithw/taskboard/internal/storage"
	"github.com/allaithw/taskboard/pkg/models"
)

const testAdminPassword = "letmein"

func newTestServer(t *testing.T) *Server {
	t.Helper()
	dir := t.TempDir()
	idGen := core.NewIDGenerator()

	taskStore := storage.NewTaskStore(dir, idGen)
	convStore := storage.NewConversationStore(dir, idGen)
	board := core.NewBoardManager(taskStore, nil)
	convs := core.NewConversationManager(convStore, nil)
	notifier := observability.NewSMTPNotifier(models.SMTPConfig{}, nil)

	return NewServer(board, convs, notifier, nil, testAdminPassword)
}

func doJSON(t *testing.T, srv *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decoding response %q: %v", rec.Body.String(), err)
	}
	return v
}

func createTask(t *testing.T, srv *Server, title string) models.Task {
	t.Helper()
	rec := doJSON(t, srv, http.MethodPost, "/api/tasks", map[string]string{
		"title":    title,
		"priority": "medium",
		"status":   "todo",
		"password": testAdminPassword,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create returned %d: %s", rec.Code, rec.Body.String())
	}
	return decodeBody[models.Task](t, rec)
}

func TestCreateTaskRequiresPassword(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/tasks", map[string]string{
		"title": "sneaky", "priority": "low", "status": "todo",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	rec = doJSON(t, srv, http.MethodGet, "/api/tasks", nil)
	tasks := decodeBody[[]models.Task](t, rec)
	if len(tasks) != 0 {
		t.Fatalf("rejected create must not add a task, got %d", len(tasks))
	}
}

func TestCreateTaskValidation(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/tasks", map[string]string{
		"title": "", "priority": "low", "status": "todo", "password": testAdminPassword,
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty title, got %d", rec.Code)
	}
}

func TestGetTasksGrouped(t *testing.T) {
	srv := newTestServer(t)
	createTask(t, srv, "First card")
	createTask(t, srv, "Second card")

	rec := doJSON(t, srv, http.MethodGet, "/api/tasks?grouped=1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	board := decodeBody[models.Board](t, rec)
	if len(board.Todo) != 2 {
		t.Fatalf("expected 2 todo cards, got %+v", board)
	}

	rec = doJSON(t, srv, http.MethodGet, "/api/tasks?search=second", nil)
	board = decodeBody[models.Board](t, rec)
	if len(board.Todo) != 1 || board.Todo[0].Title != "Second card" {
		t.Fatalf("search filter not applied: %+v", board)
	}
}

func TestUpdateTask(t *testing.T) {
	srv := newTestServer(t)
	task := createTask(t, srv, "Rename me")

	rec := doJSON(t, srv, http.MethodPatch, "/api/tasks/"+task.ID, map[string]string{
		"title": "Renamed", "password": testAdminPassword,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	updated := decodeBody[models.Task](t, rec)
	if updated.Title != "Renamed" || updated.ID != task.ID {
		t.Fatalf("unexpected update result: %+v", updated)
	}

	rec = doJSON(t, srv, http.MethodPatch, "/api/tasks/missing", map[string]string{
		"title": "x", "password": testAdminPassword,
	})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestMoveTask(t *testing.T) {
	srv := newTestServer(t)
	task := createTask(t, srv, "Drag me")

	rec := doJSON(t, srv, http.MethodPost, "/api/tasks/"+task.ID+"/move", map[string]string{
		"status": "done", "password": testAdminPassword,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	moved := decodeBody[models.Task](t, rec)
	if moved.Status != models.StatusDone {
		t.Fatalf("expected done, got %s", moved.Status)
	}

	rec = doJSON(t, srv, http.MethodPost, "/api/tasks/"+task.ID+"/move", map[string]string{
		"status": "parked", "password": testAdminPassword,
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad status, got %d", rec.Code)
	}
}

func TestDeleteTask(t *testing.T) {
	srv := newTestServer(t)
	task := createTask(t, srv, "Doomed")

	path := fmt.Sprintf("/api/tasks/%s?password=%s", task.ID, testAdminPassword)
	rec := doJSON(t, srv, http.MethodDelete, path, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}

	// Deleting again still succeeds.
	rec = doJSON(t, srv, http.MethodDelete, path, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("repeat delete expected 204, got %d", rec.Code)
	}
}

func TestGetMessagesAuth(t *testing.T) {
	srv := newTestServer(t)

	// No password and no conversation id.
	rec := doJSON(t, srv, http.MethodGet, "/api/messages", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	// Wrong password falls through to the visitor path, which also fails.
	rec = doJSON(t, srv, http.MethodGet, "/api/messages?password=wrong", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong password, got %d", rec.Code)
	}
}

func TestVisitorMessageFlow(t *testing.T) {
	srv := newTestServer(t)

	// Visitor starts a conversation.
	rec := doJSON(t, srv, http.MethodPost, "/api/messages", map[string]string{
		"visitorName": "Layla", "sender": "visitor", "text": "hello",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	conv := decodeBody[models.Conversation](t, rec)
	if conv.ID == "" || len(conv.Messages) != 1 {
		t.Fatalf("unexpected conversation: %+v", conv)
	}

	// Visitor polls their own thread by id, no password needed.
	rec = doJSON(t, srv, http.MethodGet, "/api/messages?conversationId="+conv.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	// Admin lists every conversation with the shared secret.
	rec = doJSON(t, srv, http.MethodGet, "/api/messages?password="+testAdminPassword, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	convs := decodeBody[[]models.Conversation](t, rec)
	if len(convs) != 1 {
		t.Fatalf("expected 1 conversation, got %d", len(convs))
	}

	// Admin replies into the thread.
	rec = doJSON(t, srv, http.MethodPost, "/api/messages", map[string]string{
		"conversationId": conv.ID, "sender": "admin", "text": "hi Layla",
		"password": testAdminPassword,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	replied := decodeBody[models.Conversation](t, rec)
	if len(replied.Messages) != 2 || replied.Messages[1].Sender != models.SenderAdmin {
		t.Fatalf("unexpected reply result: %+v", replied)
	}
}

func TestAdminMessageRequiresPassword(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/messages", map[string]string{
		"sender": "admin", "text": "free reply",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAdminMessageUnknownConversation(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/messages", map[string]string{
		"conversationId": "missing", "sender": "admin", "text": "anyone?",
		"password": testAdminPassword,
	})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestCloseConversation(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/messages", map[string]string{
		"visitorName": "Omar", "sender": "visitor", "text": "done here",
	})
	conv := decodeBody[models.Conversation](t, rec)

	rec = doJSON(t, srv, http.MethodPost,
		fmt.Sprintf("/api/messages/%s/close?password=%s", conv.ID, testAdminPassword), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	closed := decodeBody[models.Conversation](t, rec)
	if closed.Status != models.ConversationClosed {
		t.Fatalf("expected closed, got %s", closed.Status)
	}

	rec = doJSON(t, srv, http.MethodPost, "/api/messages/"+conv.ID+"/close", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("close without password expected 401, got %d", rec.Code)
	}
}

func TestContactSimulated(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/contact", models.ContactSubmission{
		Name: "Sara", Email: "sara@example.com", Message: "hello there",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeBody[map[string]string](t, rec)
	if body["message"] != "Success" {
		t.Fatalf("expected success message, got %v", body)
	}
}

func TestInvalidJSONBody(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/messages", bytes.NewBufferString("{nope"))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
