package core

import (
	"fmt"

	"github.com/allaithw/taskboard/pkg/models"
)

var seedUsers = []string{"Ahmed", "Sara", "Mohammed", "Layla", "Omar"}

var seedTitles = []string{
	"Design new landing page",
	"Fix authentication bug",
	"Update documentation",
	"Implement search feature",
	"Review pull requests",
	"Setup CI/CD pipeline",
	"Optimize database queries",
	"Create API endpoints",
	"Write unit tests",
	"Deploy to production",
}

var seedDescriptions = []string{
	"Complete the task with attention to detail",
	"Ensure all requirements are met",
	"Test thoroughly before submission",
	"Coordinate with team members",
	"Follow best practices and guidelines",
}

var seedPriorities = []models.TaskPriority{
	models.PriorityLow, models.PriorityMedium, models.PriorityHigh,
}

var seedStatuses = []models.TaskStatus{
	models.StatusTodo, models.StatusInProgress, models.StatusDone,
}

// SeedTasks adds a demo set of tasks to the board, cycling through users,
// priorities, and statuses so every column and filter has something to
// show. It returns the created tasks.
func SeedTasks(bm BoardManager) ([]models.Task, error) {
	created := make([]models.Task, 0, len(seedTitles))
	for i, title := range seedTitles {
		task, err := bm.AddTask(TaskDraft{
			Title:        title,
			Description:  seedDescriptions[i%len(seedDescriptions)],
			Priority:     seedPriorities[i%len(seedPriorities)],
			Status:       seedStatuses[i%len(seedStatuses)],
			AssignedUser: seedUsers[i%len(seedUsers)],
		})
		if err != nil {
			return created, fmt.Errorf("seeding task %q: %w", title, err)
		}
		created = append(created, *task)
	}
	return created, nil
}
