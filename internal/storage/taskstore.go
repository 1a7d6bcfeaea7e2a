// Package storage provides the file-backed entity stores for the task
// board. Each store owns its records exclusively: every mutation happens
// through the store, and every mutation checkpoints the full collection to
// disk before returning success. There is no incremental flush and no
// transaction log; a crash between mutation and checkpoint loses that
// mutation.
package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/natefinch/atomic"

	"github.com/allaithw/taskboard/internal/core"
	"github.com/allaithw/taskboard/pkg/models"
)

// fileTaskStore implements core.TaskStore backed by a tasks.json file. A
// mutex serializes mutations within this process; between processes the
// backing file is last-write-wins with no conflict detection.
type fileTaskStore struct {
	basePath string
	idGen    core.IDGenerator

	mu    sync.Mutex
	tasks []models.Task
}

// NewTaskStore creates a TaskStore backed by tasks.json in the given base
// directory.
func NewTaskStore(basePath string, idGen core.IDGenerator) core.TaskStore {
	return &fileTaskStore{
		basePath: basePath,
		idGen:    idGen,
	}
}

func (s *fileTaskStore) filePath() string {
	return filepath.Join(s.basePath, "tasks.json")
}

// validateDraft checks required fields and enum values. The store is the
// contract boundary for task shape: nothing downstream re-checks status or
// priority.
func validateDraft(draft core.TaskDraft) error {
	if draft.Title == "" {
		return core.ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if !models.ValidPriority(draft.Priority) {
		return core.ValidationError{Field: "priority", Reason: fmt.Sprintf("%q is not one of low, medium, high", draft.Priority)}
	}
	if !models.ValidStatus(draft.Status) {
		return core.ValidationError{Field: "status", Reason: fmt.Sprintf("%q is not one of todo, in-progress, done", draft.Status)}
	}
	return nil
}

func (s *fileTaskStore) Add(draft core.TaskDraft) (*models.Task, error) {
	if err := validateDraft(draft); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	task := models.Task{
		ID:           s.idGen.NewID(),
		Title:        draft.Title,
		Description:  draft.Description,
		Priority:     draft.Priority,
		Status:       draft.Status,
		AssignedUser: draft.AssignedUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	s.tasks = append(s.tasks, task)
	if err := s.save(); err != nil {
		s.tasks = s.tasks[:len(s.tasks)-1]
		return nil, err
	}
	return &task, nil
}

func (s *fileTaskStore) Update(id string, update models.TaskUpdate) (*models.Task, error) {
	if update.Priority != nil && !models.ValidPriority(*update.Priority) {
		return nil, core.ValidationError{Field: "priority", Reason: fmt.Sprintf("%q is not one of low, medium, high", *update.Priority)}
	}
	if update.Status != nil && !models.ValidStatus(*update.Status) {
		return nil, core.ValidationError{Field: "status", Reason: fmt.Sprintf("%q is not one of todo, in-progress, done", *update.Status)}
	}
	if update.Title != nil && *update.Title == "" {
		return nil, core.ValidationError{Field: "title", Reason: "must not be empty"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil, core.NotFoundError{Kind: "task", ID: id}
	}

	prev := s.tasks[idx]
	task := prev
	if update.Title != nil {
		task.Title = *update.Title
	}
	if update.Description != nil {
		task.Description = *update.Description
	}
	if update.Priority != nil {
		task.Priority = *update.Priority
	}
	if update.Status != nil {
		task.Status = *update.Status
	}
	if update.AssignedUser != nil {
		task.AssignedUser = *update.AssignedUser
	}
	task.UpdatedAt = time.Now().UTC()

	s.tasks[idx] = task
	if err := s.save(); err != nil {
		s.tasks[idx] = prev
		return nil, err
	}
	return &task, nil
}

// Delete removes the task with the given id. Deleting an unknown id is a
// no-op, matching delete-button semantics in the board UI.
func (s *fileTaskStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil
	}

	prev := s.tasks
	s.tasks = append(append([]models.Task{}, s.tasks[:idx]...), s.tasks[idx+1:]...)
	if err := s.save(); err != nil {
		s.tasks = prev
		return err
	}
	return nil
}

// List returns a copy of all tasks in insertion order. The order is stable
// for rendering but carries no meaning.
func (s *fileTaskStore) List() ([]models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Task, len(s.tasks))
	copy(out, s.tasks)
	return out, nil
}

func (s *fileTaskStore) indexOf(id string) int {
	for i, task := range s.tasks {
		if task.ID == id {
			return i
		}
	}
	return -1
}

// Load reads tasks.json into memory. A missing file yields an empty
// collection. Records with an unrecognized status or priority are rejected
// wholesale rather than silently dropped.
func (s *fileTaskStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath())
	if err != nil {
		if os.IsNotExist(err) {
			s.tasks = nil
			return nil
		}
		return core.PersistenceError{Op: "loading tasks", Err: err}
	}

	var tasks []models.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return core.PersistenceError{Op: "parsing tasks", Err: err}
	}
	for _, task := range tasks {
		if !models.ValidStatus(task.Status) {
			return core.PersistenceError{Op: "loading tasks", Err: fmt.Errorf("task %s has unrecognized status %q", task.ID, task.Status)}
		}
		if !models.ValidPriority(task.Priority) {
			return core.PersistenceError{Op: "loading tasks", Err: fmt.Errorf("task %s has unrecognized priority %q", task.ID, task.Priority)}
		}
	}
	s.tasks = tasks
	return nil
}

// save checkpoints the whole collection. The write goes to a temp file and
// is renamed into place so a crash mid-write never truncates the previous
// checkpoint.
func (s *fileTaskStore) save() error {
	if err := os.MkdirAll(s.basePath, 0o750); err != nil {
		return core.PersistenceError{Op: "creating data directory", Err: err}
	}
	data, err := json.MarshalIndent(s.tasks, "", "  ")
	if err != nil {
		return core.PersistenceError{Op: "marshaling tasks", Err: err}
	}
	if err := atomic.WriteFile(s.filePath(), bytes.NewReader(data)); err != nil {
		return core.PersistenceError{Op: "writing tasks", Err: err}
	}
	return nil
}
