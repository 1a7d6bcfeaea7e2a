// Package mcp provides an MCP (Model Context Protocol) server that exposes
// the task board as MCP tools for AI coding assistants.
package mcp

import (
	"context"
	"fmt"
	"time"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/allaithw/taskboard/internal/core"
	"github.com/allaithw/taskboard/internal/observability"
	"github.com/allaithw/taskboard/pkg/models"
)

// Server wraps the board services and exposes them as MCP tools.
type Server struct {
	server      *gomcp.Server
	board       core.BoardManager
	convs       core.ConversationManager
	metricsCalc observability.MetricsCalculator
}

// NewServer creates a new MCP server with the given service dependencies.
// metricsCalc may be nil if observability is disabled.
func NewServer(board core.BoardManager, convs core.ConversationManager, metricsCalc observability.MetricsCalculator, version string) *Server {
	if version == "" {
		version = "dev"
	}

	s := &Server{
		board:       board,
		convs:       convs,
		metricsCalc: metricsCalc,
	}

	s.server = gomcp.NewServer(
		&gomcp.Implementation{Name: "taskboard", Version: version},
		nil,
	)

	s.registerTools()

	return s
}

// Run starts the MCP server on stdio, blocking until the client
// disconnects or the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &gomcp.StdioTransport{})
}

// MCPServer returns the underlying mcp.Server for testing purposes.
func (s *Server) MCPServer() *gomcp.Server {
	return s.server
}

// --- Tool input/output types ---

type listTasksInput struct {
	Priority     string `json:"priority,omitempty" jsonschema:"filter by priority (low, medium, high)"`
	AssignedUser string `json:"assigned_user,omitempty" jsonschema:"filter by assigned user (exact match)"`
	Search       string `json:"search,omitempty" jsonschema:"case-insensitive substring search over title, description, and assigned user"`
}

type taskOutput struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description,omitempty"`
	Priority     string `json:"priority"`
	Status       string `json:"status"`
	AssignedUser string `json:"assigned_user,omitempty"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

type boardOutput struct {
	Todo       []taskOutput `json:"todo"`
	InProgress []taskOutput `json:"in_progress"`
	Done       []taskOutput `json:"done"`
	Count      int          `json:"count"`
}

type createTaskInput struct {
	Title        string `json:"title" jsonschema:"required,the task title"`
	Description  string `json:"description,omitempty" jsonschema:"the task description"`
	Priority     string `json:"priority" jsonschema:"required,the priority (low, medium, high)"`
	Status       string `json:"status" jsonschema:"required,the board column (todo, in-progress, done)"`
	AssignedUser string `json:"assigned_user,omitempty" jsonschema:"who the task is assigned to"`
}

type moveTaskInput struct {
	TaskID string `json:"task_id" jsonschema:"required,the unique task identifier"`
	Status string `json:"status" jsonschema:"required,the target column (todo, in-progress, done)"`
}

type moveTaskOutput struct {
	Message string `json:"message"`
}

type listConversationsInput struct{}

type conversationOutput struct {
	ID           string `json:"id"`
	VisitorName  string `json:"visitor_name"`
	Status       string `json:"status"`
	MessageCount int    `json:"message_count"`
	LastUpdate   string `json:"last_update"`
}

type listConversationsOutput struct {
	Conversations []conversationOutput `json:"conversations"`
	Count         int                  `json:"count"`
}

type boardMetricsInput struct {
	Since string `json:"since,omitempty" jsonschema:"time window for metrics (e.g. 7d, 30d, 24h). Defaults to 7d."`
}

type boardMetricsOutput struct {
	TasksCreated     int            `json:"tasks_created"`
	TasksCompleted   int            `json:"tasks_completed"`
	TasksDeleted     int            `json:"tasks_deleted"`
	MovesByStatus    map[string]int `json:"moves_by_status"`
	Conversations    int            `json:"conversations_started"`
	MessagesBySender map[string]int `json:"messages_by_sender"`
	ContactsReceived int            `json:"contacts_received"`
	EventCount       int            `json:"event_count"`
}

// --- Tool registration ---

func (s *Server) registerTools() {
	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "list_tasks",
		Description: "List board tasks grouped by status, with optional priority, assignee, and search filters.",
	}, s.handleListTasks)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "create_task",
		Description: "Create a new board task. The store assigns the id and timestamps.",
	}, s.handleCreateTask)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "move_task",
		Description: "Move a task to another board column. Valid columns: todo, in-progress, done.",
	}, s.handleMoveTask)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "list_conversations",
		Description: "List visitor conversations with message counts and status.",
	}, s.handleListConversations)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "board_metrics",
		Description: "Get aggregated board and messaging metrics from the event log.",
	}, s.handleBoardMetrics)
}

// --- Tool handlers ---

func (s *Server) handleListTasks(_ context.Context, _ *gomcp.CallToolRequest, input listTasksInput) (*gomcp.CallToolResult, boardOutput, error) {
	board, err := s.board.DeriveBoard(models.TaskFilters{
		Priority:     models.TaskPriority(input.Priority),
		AssignedUser: input.AssignedUser,
		SearchTerm:   input.Search,
	})
	if err != nil {
		return errorResult(fmt.Sprintf("listing tasks: %s", err)), boardOutput{}, nil
	}

	out := boardOutput{
		Todo:       tasksToOutput(board.Todo),
		InProgress: tasksToOutput(board.InProgress),
		Done:       tasksToOutput(board.Done),
	}
	out.Count = len(out.Todo) + len(out.InProgress) + len(out.Done)
	return nil, out, nil
}

func (s *Server) handleCreateTask(_ context.Context, _ *gomcp.CallToolRequest, input createTaskInput) (*gomcp.CallToolResult, taskOutput, error) {
	if input.Title == "" {
		return errorResult("title is required"), taskOutput{}, nil
	}

	task, err := s.board.AddTask(core.TaskDraft{
		Title:        input.Title,
		Description:  input.Description,
		Priority:     models.TaskPriority(input.Priority),
		Status:       models.TaskStatus(input.Status),
		AssignedUser: input.AssignedUser,
	})
	if err != nil {
		return errorResult(fmt.Sprintf("creating task: %s", err)), taskOutput{}, nil
	}

	return nil, taskToOutput(*task), nil
}

func (s *Server) handleMoveTask(_ context.Context, _ *gomcp.CallToolRequest, input moveTaskInput) (*gomcp.CallToolResult, moveTaskOutput, error) {
	if input.TaskID == "" {
		return errorResult("task_id is required"), moveTaskOutput{}, nil
	}
	if !models.ValidStatus(models.TaskStatus(input.Status)) {
		return errorResult(fmt.Sprintf("invalid status %q: must be one of todo, in-progress, done", input.Status)), moveTaskOutput{}, nil
	}

	if _, err := s.board.MoveTask(input.TaskID, models.TaskStatus(input.Status)); err != nil {
		return errorResult(fmt.Sprintf("moving task %s: %s", input.TaskID, err)), moveTaskOutput{}, nil
	}

	out := moveTaskOutput{
		Message: fmt.Sprintf("task %s moved to %s", input.TaskID, input.Status),
	}
	return nil, out, nil
}

func (s *Server) handleListConversations(_ context.Context, _ *gomcp.CallToolRequest, _ listConversationsInput) (*gomcp.CallToolResult, listConversationsOutput, error) {
	convs, err := s.convs.List()
	if err != nil {
		return errorResult(fmt.Sprintf("listing conversations: %s", err)), listConversationsOutput{}, nil
	}

	out := listConversationsOutput{
		Conversations: make([]conversationOutput, len(convs)),
		Count:         len(convs),
	}
	for i, c := range convs {
		out.Conversations[i] = conversationOutput{
			ID:           c.ID,
			VisitorName:  c.VisitorName,
			Status:       string(c.Status),
			MessageCount: len(c.Messages),
			LastUpdate:   c.LastUpdate.Format(time.RFC3339),
		}
	}

	return nil, out, nil
}

func (s *Server) handleBoardMetrics(_ context.Context, _ *gomcp.CallToolRequest, input boardMetricsInput) (*gomcp.CallToolResult, boardMetricsOutput, error) {
	if s.metricsCalc == nil {
		return errorResult("metrics calculator not available (observability may be disabled)"), emptyMetricsOutput(), nil
	}

	sinceStr := input.Since
	if sinceStr == "" {
		sinceStr = "7d"
	}

	sinceTime, err := parseSince(sinceStr)
	if err != nil {
		return errorResult(fmt.Sprintf("parsing since duration: %s", err)), emptyMetricsOutput(), nil
	}

	metrics, err := s.metricsCalc.Calculate(sinceTime)
	if err != nil {
		return errorResult(fmt.Sprintf("calculating metrics: %s", err)), emptyMetricsOutput(), nil
	}

	out := boardMetricsOutput{
		TasksCreated:     metrics.TasksCreated,
		TasksCompleted:   metrics.TasksCompleted,
		TasksDeleted:     metrics.TasksDeleted,
		MovesByStatus:    metrics.MovesByStatus,
		Conversations:    metrics.ConversationsOpen,
		MessagesBySender: metrics.MessagesBySender,
		ContactsReceived: metrics.ContactsReceived,
		EventCount:       metrics.EventCount,
	}
	return nil, out, nil
}

// --- Helpers ---

func taskToOutput(t models.Task) taskOutput {
	return taskOutput{
		ID:           t.ID,
		Title:        t.Title,
		Description:  t.Description,
		Priority:     string(t.Priority),
		Status:       string(t.Status),
		AssignedUser: t.AssignedUser,
		CreatedAt:    t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    t.UpdatedAt.Format(time.RFC3339),
	}
}

func tasksToOutput(tasks []models.Task) []taskOutput {
	out := make([]taskOutput, len(tasks))
	for i, t := range tasks {
		out[i] = taskToOutput(t)
	}
	return out
}

func emptyMetricsOutput() boardMetricsOutput {
	return boardMetricsOutput{
		MovesByStatus:    make(map[string]int),
		MessagesBySender: make(map[string]int),
	}
}

func errorResult(msg string) *gomcp.CallToolResult {
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: msg}},
		IsError: true,
	}
}

// parseSince parses a human-friendly duration string like "7d", "30d", or
// "24h" into the corresponding time in the past.
func parseSince(s string) (time.Time, error) {
	now := time.Now().UTC()

	if len(s) < 2 {
		return time.Time{}, fmt.Errorf("invalid duration %q", s)
	}

	suffix := s[len(s)-1]
	numStr := s[:len(s)-1]
	var num int
	if _, err := fmt.Sscanf(numStr, "%d", &num); err != nil {
		return time.Time{}, fmt.Errorf("invalid duration %q: %w", s, err)
	}

	switch suffix {
	case 'd':
		return now.AddDate(0, 0, -num), nil
	case 'h':
		return now.Add(-time.Duration(num) * time.Hour), nil
	default:
		return time.Time{}, fmt.Errorf("unsupported duration suffix %q (use d or h)", string(suffix))
	}
}
