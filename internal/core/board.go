// Package core contains the business logic for the task board: board
// mutations, the board derivation engine, the conversation append model,
// and configuration.
package core

import (
	"fmt"

	"github.com/allaithw/taskboard/pkg/models"
)

// BoardManager defines the operations the board surfaces (CLI, HTTP, MCP)
// use to mutate and view the task collection.
type BoardManager interface {
	AddTask(draft TaskDraft) (*models.Task, error)
	UpdateTask(id string, update models.TaskUpdate) (*models.Task, error)
	DeleteTask(id string) error
	MoveTask(id string, status models.TaskStatus) (*models.Task, error)
	ListTasks() ([]models.Task, error)
	DeriveBoard(filters models.TaskFilters) (*models.Board, error)
	Assignees() ([]string, error)
}

// boardManager implements BoardManager by coordinating the TaskStore and
// the event log.
type boardManager struct {
	store  TaskStore
	events EventLogger
}

// NewBoardManager creates a BoardManager. events may be nil if
// observability is disabled.
func NewBoardManager(store TaskStore, events EventLogger) BoardManager {
	return &boardManager{
		store:  store,
		events: events,
	}
}

func (bm *boardManager) AddTask(draft TaskDraft) (*models.Task, error) {
	task, err := bm.store.Add(draft)
	if err != nil {
		return nil, fmt.Errorf("adding task: %w", err)
	}

	bm.logEvent("task.created", map[string]any{
		"task_id":  task.ID,
		"priority": string(task.Priority),
		"status":   string(task.Status),
	})
	return task, nil
}

func (bm *boardManager) UpdateTask(id string, update models.TaskUpdate) (*models.Task, error) {
	task, err := bm.store.Update(id, update)
	if err != nil {
		return nil, fmt.Errorf("updating task %s: %w", id, err)
	}

	bm.logEvent("task.updated", map[string]any{"task_id": task.ID})
	return task, nil
}

func (bm *boardManager) DeleteTask(id string) error {
	if err := bm.store.Delete(id); err != nil {
		return fmt.Errorf("deleting task %s: %w", id, err)
	}

	bm.logEvent("task.deleted", map[string]any{"task_id": id})
	return nil
}

// MoveTask changes only the task's status, the operation behind dragging a
// card to another column.
func (bm *boardManager) MoveTask(id string, status models.TaskStatus) (*models.Task, error) {
	task, err := bm.store.Update(id, models.TaskUpdate{Status: &status})
	if err != nil {
		return nil, fmt.Errorf("moving task %s: %w", id, err)
	}

	bm.logEvent("task.moved", map[string]any{
		"task_id":    task.ID,
		"new_status": string(status),
	})
	return task, nil
}

func (bm *boardManager) ListTasks() ([]models.Task, error) {
	tasks, err := bm.store.List()
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	return tasks, nil
}

// DeriveBoard reads the current collection and computes the filtered,
// grouped view. The derivation itself is pure; re-deriving with the same
// collection and filters always yields the same board.
func (bm *boardManager) DeriveBoard(filters models.TaskFilters) (*models.Board, error) {
	tasks, err := bm.store.List()
	if err != nil {
		return nil, fmt.Errorf("deriving board: %w", err)
	}
	board := Derive(tasks, filters)
	return &board, nil
}

// Assignees returns the distinct assigned users across the whole
// collection, for filter pickers.
func (bm *boardManager) Assignees() ([]string, error) {
	tasks, err := bm.store.List()
	if err != nil {
		return nil, fmt.Errorf("listing assignees: %w", err)
	}
	return Assignees(tasks), nil
}

func (bm *boardManager) logEvent(eventType string, data map[string]any) {
	if bm.events == nil {
		return
	}
	// Event logging is best-effort; a full event log never fails a mutation.
	_ = bm.events.LogEvent(eventType, data)
}
