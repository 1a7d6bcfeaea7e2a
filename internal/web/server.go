package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/allaithw/taskboard/internal/core"
	"github.com/allaithw/taskboard/internal/observability"
	"github.com/allaithw/taskboard/pkg/models"
)

// Server handles the JSON API for tasks, visitor messages, and the contact
// form. State changes go through the core managers; the server itself only
// parses requests, enforces the admin secret, and serializes responses.
type Server struct {
	board         core.BoardManager
	convs         core.ConversationManager
	notifier      observability.Notifier
	eventLog      observability.EventLog
	adminPassword string

	mux *http.ServeMux
}

// NewServer wires the API routes. notifier and eventLog may be nil.
func NewServer(board core.BoardManager, convs core.ConversationManager, notifier observability.Notifier, eventLog observability.EventLog, adminPassword string) *Server {
	s := &Server{
		board:         board,
		convs:         convs,
		notifier:      notifier,
		eventLog:      eventLog,
		adminPassword: adminPassword,
		mux:           http.NewServeMux(),
	}

	s.mux.HandleFunc("GET /api/messages", s.handleGetMessages)
	s.mux.HandleFunc("POST /api/messages", s.handlePostMessage)
	s.mux.HandleFunc("POST /api/messages/{id}/close", s.handleCloseConversation)
	s.mux.HandleFunc("POST /api/contact", s.handleContact)
	s.mux.HandleFunc("GET /api/tasks", s.handleGetTasks)
	s.mux.HandleFunc("POST /api/tasks", s.handleCreateTask)
	s.mux.HandleFunc("PATCH /api/tasks/{id}", s.handleUpdateTask)
	s.mux.HandleFunc("DELETE /api/tasks/{id}", s.handleDeleteTask)
	s.mux.HandleFunc("POST /api/tasks/{id}/move", s.handleMoveTask)

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// ListenAndServe runs the server on the given address, blocking until it
// stops.
func (s *Server) ListenAndServe(addr string) error {
	s.logEvent("server.started", map[string]any{"addr": addr})
	return http.ListenAndServe(addr, s)
}

// --- Messages ---

// handleGetMessages serves two callers: an admin with the shared secret
// gets every conversation, a visitor with a conversation id gets that one
// thread. Anything else is unauthorized.
func (s *Server) handleGetMessages(w http.ResponseWriter, r *http.Request) {
	password := r.URL.Query().Get("password")
	conversationID := r.URL.Query().Get("conversationId")

	if checkAdmin(s.adminPassword, password) {
		convs, err := s.convs.List()
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		s.writeJSON(w, http.StatusOK, convs)
		return
	}

	if conversationID != "" {
		conv, err := s.convs.Get(conversationID)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		s.writeJSON(w, http.StatusOK, conv)
		return
	}

	s.writeErrorMessage(w, http.StatusUnauthorized, "Unauthorized")
}

type postMessageRequest struct {
	ConversationID string `json:"conversationId"`
	VisitorName    string `json:"visitorName"`
	VisitorEmail   string `json:"visitorEmail"`
	VisitorPhone   string `json:"visitorPhone"`
	Text           string `json:"text"`
	Sender         string `json:"sender"`
	Password       string `json:"password"`
}

// handlePostMessage appends a message as visitor or admin. The admin secret
// is verified here, before the conversation model is invoked, so the model
// can trust the sender-role claim.
func (s *Server) handlePostMessage(w http.ResponseWriter, r *http.Request) {
	var req postMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeErrorMessage(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	sender := models.SenderRole(req.Sender)
	if sender == models.SenderAdmin && !checkAdmin(s.adminPassword, req.Password) {
		s.writeErrorMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	conv, err := s.convs.StartOrAppend(req.ConversationID, models.VisitorInfo{
		Name:  req.VisitorName,
		Email: req.VisitorEmail,
		Phone: req.VisitorPhone,
	}, sender, req.Text)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, conv)
}

func (s *Server) handleCloseConversation(w http.ResponseWriter, r *http.Request) {
	if !checkAdmin(s.adminPassword, r.URL.Query().Get("password")) {
		s.writeErrorMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	conv, err := s.convs.Close(r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, conv)
}

// --- Contact ---

// handleContact accepts a contact-form submission and hands it to the
// notifier. With no mail credentials configured the notifier simulates the
// send; the submission is still accepted.
func (s *Server) handleContact(w http.ResponseWriter, r *http.Request) {
	var submission models.ContactSubmission
	if err := json.NewDecoder(r.Body).Decode(&submission); err != nil {
		s.writeErrorMessage(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if s.notifier != nil {
		if err := s.notifier.Notify(submission); err != nil {
			s.writeErrorMessage(w, http.StatusInternalServerError, "Failed to send email")
			return
		}
	}

	s.writeJSON(w, http.StatusOK, map[string]string{"message": "Success"})
}

// --- Tasks ---

// handleGetTasks returns the derived board when any filter parameter is
// present, otherwise the raw task list. Clients poll this endpoint; the
// server has no awareness of polling cadence.
func (s *Server) handleGetTasks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	hasFilter := q.Has("priority") || q.Has("assignedUser") || q.Has("search") || q.Has("grouped")

	if !hasFilter {
		tasks, err := s.board.ListTasks()
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		s.writeJSON(w, http.StatusOK, tasks)
		return
	}

	board, err := s.board.DeriveBoard(models.TaskFilters{
		Priority:     models.TaskPriority(q.Get("priority")),
		AssignedUser: q.Get("assignedUser"),
		SearchTerm:   q.Get("search"),
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, board)
}

type createTaskRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Priority     string `json:"priority"`
	Status       string `json:"status"`
	AssignedUser string `json:"assignedUser"`
	Password     string `json:"password"`
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeErrorMessage(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if !checkAdmin(s.adminPassword, req.Password) {
		s.writeErrorMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	task, err := s.board.AddTask(core.TaskDraft{
		Title:        req.Title,
		Description:  req.Description,
		Priority:     models.TaskPriority(req.Priority),
		Status:       models.TaskStatus(req.Status),
		AssignedUser: req.AssignedUser,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, task)
}

type updateTaskRequest struct {
	models.TaskUpdate
	Password string `json:"password"`
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	var req updateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeErrorMessage(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if !checkAdmin(s.adminPassword, req.Password) {
		s.writeErrorMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	task, err := s.board.UpdateTask(r.PathValue("id"), req.TaskUpdate)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, task)
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	if !checkAdmin(s.adminPassword, r.URL.Query().Get("password")) {
		s.writeErrorMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := s.board.DeleteTask(r.PathValue("id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type moveTaskRequest struct {
	Status   string `json:"status"`
	Password string `json:"password"`
}

func (s *Server) handleMoveTask(w http.ResponseWriter, r *http.Request) {
	var req moveTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeErrorMessage(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if !checkAdmin(s.adminPassword, req.Password) {
		s.writeErrorMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	task, err := s.board.MoveTask(r.PathValue("id"), models.TaskStatus(req.Status))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, task)
}

// --- Helpers ---

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) writeErrorMessage(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

// writeError maps core error types onto HTTP statuses. Validation and
// not-found errors become user-visible statuses; anything else is surfaced
// as a generic failure and logged.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case core.IsValidation(err):
		s.writeErrorMessage(w, http.StatusBadRequest, err.Error())
	case core.IsNotFound(err):
		s.writeErrorMessage(w, http.StatusNotFound, "Not found")
	case errors.Is(err, core.ErrUnauthorized):
		s.writeErrorMessage(w, http.StatusUnauthorized, "Unauthorized")
	default:
		s.logEvent("request.failed", map[string]any{
			"method": r.Method,
			"path":   r.URL.Path,
			"error":  err.Error(),
		})
		s.writeErrorMessage(w, http.StatusInternalServerError, "operation failed")
	}
}

func (s *Server) logEvent(eventType string, data map[string]any) {
	if s.eventLog == nil {
		return
	}
	_ = s.eventLog.Write(observability.Event{
		Time:    time.Now().UTC(),
		Level:   "INFO",
		Type:    eventType,
		Message: eventType,
		Data:    data,
	})
}
