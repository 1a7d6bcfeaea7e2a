package core

import (
	"strings"
	"testing"

	"pgregory.net/rapid"

	"github.com/allaithw/taskboard/pkg/models"
)

func drawTask(rt *rapid.T) models.Task {
	return models.Task{
		ID:    rapid.StringMatching(`[a-z0-9]{8}`).Draw(rt, "id"),
		Title: rapid.StringMatching(`[a-zA-Z ]{1,30}`).Draw(rt, "title"),
		Description: rapid.StringMatching(`[a-zA-Z ]{0,40}`).Draw(rt, "description"),
		Priority: rapid.SampledFrom([]models.TaskPriority{
			models.PriorityLow, models.PriorityMedium, models.PriorityHigh,
		}).Draw(rt, "priority"),
		Status: rapid.SampledFrom([]models.TaskStatus{
			models.StatusTodo, models.StatusInProgress, models.StatusDone,
		}).Draw(rt, "status"),
		AssignedUser: rapid.SampledFrom([]string{"", "Ahmed", "Sara", "Omar"}).Draw(rt, "assignee"),
	}
}

// TestPropertyDerivePartition verifies that the three groups form a
// partition: every task matching the filters lands in exactly one group
// and no task appears twice.
func TestPropertyDerivePartition(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(0, 30).Draw(rt, "n")
		tasks := make([]models.Task, n)
		for i := range tasks {
			tasks[i] = drawTask(rt)
		}
		filters := models.TaskFilters{
			Priority:   rapid.SampledFrom([]models.TaskPriority{"", models.PriorityHigh}).Draw(rt, "fp"),
			SearchTerm: rapid.SampledFrom([]string{"", "a", "e "}).Draw(rt, "fs"),
		}

		board := Derive(tasks, filters)

		matching := 0
		for _, task := range tasks {
			if matchesFilters(task, filters) {
				matching++
			}
		}
		total := len(board.Todo) + len(board.InProgress) + len(board.Done)
		if total != matching {
			rt.Fatalf("partition size %d != matching tasks %d", total, matching)
		}

		for _, task := range board.Todo {
			if task.Status != models.StatusTodo {
				rt.Fatalf("task %s with status %s in todo group", task.ID, task.Status)
			}
		}
		for _, task := range board.InProgress {
			if task.Status != models.StatusInProgress {
				rt.Fatalf("task %s with status %s in in-progress group", task.ID, task.Status)
			}
		}
		for _, task := range board.Done {
			if task.Status != models.StatusDone {
				rt.Fatalf("task %s with status %s in done group", task.ID, task.Status)
			}
		}
	})
}

// TestPropertySearchCaseInsensitive verifies that changing the case of the
// search term never changes the derived board.
func TestPropertySearchCaseInsensitive(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(0, 20).Draw(rt, "n")
		tasks := make([]models.Task, n)
		for i := range tasks {
			tasks[i] = drawTask(rt)
		}
		term := rapid.StringMatching(`[a-zA-Z]{1,8}`).Draw(rt, "term")

		lower := Derive(tasks, models.TaskFilters{SearchTerm: strings.ToLower(term)})
		upper := Derive(tasks, models.TaskFilters{SearchTerm: strings.ToUpper(term)})

		if len(lower.Todo) != len(upper.Todo) ||
			len(lower.InProgress) != len(upper.InProgress) ||
			len(lower.Done) != len(upper.Done) {
			rt.Fatalf("case of search term changed the result: %q", term)
		}
	})
}
