package core

import (
	"sort"
	"strings"

	"github.com/allaithw/taskboard/pkg/models"
)

// Derive computes the grouped board view for the given tasks and filters.
// It is a pure function: the input slice is never mutated and the result is
// built from scratch on every call. Filter criteria use AND logic; the
// search term is matched case-insensitively as a substring of title,
// description, or assigned user. Debouncing of the search term is the
// caller's concern; Derive always computes against whatever term it is
// given.
//
// Every surviving task lands in exactly one group. Tasks are assumed to
// carry a valid status: the store rejects unrecognized statuses at its
// boundary, so Derive never drops a task silently.
func Derive(tasks []models.Task, filters models.TaskFilters) models.Board {
	board := models.Board{
		Todo:       []models.Task{},
		InProgress: []models.Task{},
		Done:       []models.Task{},
	}

	for _, task := range tasks {
		if !matchesFilters(task, filters) {
			continue
		}
		switch task.Status {
		case models.StatusTodo:
			board.Todo = append(board.Todo, task)
		case models.StatusInProgress:
			board.InProgress = append(board.InProgress, task)
		case models.StatusDone:
			board.Done = append(board.Done, task)
		}
	}

	return board
}

// matchesFilters applies the conjunctive filter predicate to a single task.
func matchesFilters(task models.Task, filters models.TaskFilters) bool {
	if filters.Priority != "" && task.Priority != filters.Priority {
		return false
	}
	if filters.AssignedUser != "" && task.AssignedUser != filters.AssignedUser {
		return false
	}
	if filters.SearchTerm != "" && !matchesSearch(task, filters.SearchTerm) {
		return false
	}
	return true
}

func matchesSearch(task models.Task, term string) bool {
	term = strings.ToLower(term)
	if strings.Contains(strings.ToLower(task.Title), term) {
		return true
	}
	if strings.Contains(strings.ToLower(task.Description), term) {
		return true
	}
	if strings.Contains(strings.ToLower(task.AssignedUser), term) {
		return true
	}
	return false
}

// Assignees returns the sorted set of distinct assigned users across the
// given tasks, for populating filter pickers.
func Assignees(tasks []models.Task) []string {
	seen := make(map[string]struct{}, len(tasks))
	var users []string
	for _, task := range tasks {
		if task.AssignedUser == "" {
			continue
		}
		if _, ok := seen[task.AssignedUser]; ok {
			continue
		}
		seen[task.AssignedUser] = struct{}{}
		users = append(users, task.AssignedUser)
	}
	sort.Strings(users)
	return users
}
