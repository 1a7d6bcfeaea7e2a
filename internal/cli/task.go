package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/allaithw/taskboard/internal/core"
	"github.com/allaithw/taskboard/pkg/models"
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage board tasks (add, update, move, delete, list)",
	Long: `Unified task management commands.

Add new tasks to the board, update or reassign existing ones, move cards
between columns, and list the derived board view with filters.`,
}

var (
	taskListPriority string
	taskListAssignee string
	taskListSearch   string
	taskListJSON     bool
)

var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the board grouped by status",
	Long: `List tasks grouped into the three board columns.

Filters combine with AND logic: --priority and --assignee match exactly,
--search matches a case-insensitive substring of the title, description,
or assigned user.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Board == nil {
			return fmt.Errorf("board manager not initialized")
		}

		board, err := Board.DeriveBoard(models.TaskFilters{
			Priority:     models.TaskPriority(taskListPriority),
			AssignedUser: taskListAssignee,
			SearchTerm:   taskListSearch,
		})
		if err != nil {
			return fmt.Errorf("deriving board: %w", err)
		}

		if taskListJSON {
			data, err := json.MarshalIndent(board, "", "  ")
			if err != nil {
				return fmt.Errorf("formatting board as JSON: %w", err)
			}
			fmt.Println(string(data))
			return nil
		}

		printColumn("Todo", board.Todo)
		printColumn("In Progress", board.InProgress)
		printColumn("Done", board.Done)
		return nil
	},
}

func printColumn(name string, tasks []models.Task) {
	fmt.Printf("%s (%d)\n", name, len(tasks))
	for _, t := range tasks {
		assignee := t.AssignedUser
		if assignee == "" {
			assignee = "-"
		}
		fmt.Printf("  %-36s  %-8s  %-12s  %s\n", t.ID, t.Priority, assignee, t.Title)
	}
	fmt.Println()
}

var (
	taskAddDescription string
	taskAddPriority    string
	taskAddStatus      string
	taskAddAssignee    string
)

var taskAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a new task to the board",
	Long: `Add a new task. The store assigns the id and timestamps; the title is
required and priority/status default to the configured defaults.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Board == nil {
			return fmt.Errorf("board manager not initialized")
		}

		priority := models.TaskPriority(taskAddPriority)
		status := models.TaskStatus(taskAddStatus)
		if taskAddPriority == "" && Config != nil {
			priority = Config.DefaultPriority
		}
		if taskAddStatus == "" && Config != nil {
			status = Config.DefaultStatus
		}

		task, err := Board.AddTask(core.TaskDraft{
			Title:        args[0],
			Description:  taskAddDescription,
			Priority:     priority,
			Status:       status,
			AssignedUser: taskAddAssignee,
		})
		if err != nil {
			return fmt.Errorf("adding task: %w", err)
		}

		fmt.Printf("Added task %s\n", task.ID)
		fmt.Printf("  Title:    %s\n", task.Title)
		fmt.Printf("  Priority: %s\n", task.Priority)
		fmt.Printf("  Status:   %s\n", task.Status)
		if task.AssignedUser != "" {
			fmt.Printf("  Assignee: %s\n", task.AssignedUser)
		}
		return nil
	},
}

var (
	taskUpdateTitle       string
	taskUpdateDescription string
	taskUpdatePriority    string
	taskUpdateAssignee    string
)

var taskUpdateCmd = &cobra.Command{
	Use:   "update <task-id>",
	Short: "Update fields of an existing task",
	Long: `Update an existing task. Only the fields given as flags change; the id
and creation time can never be overwritten.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Board == nil {
			return fmt.Errorf("board manager not initialized")
		}

		var update models.TaskUpdate
		if cmd.Flags().Changed("title") {
			update.Title = &taskUpdateTitle
		}
		if cmd.Flags().Changed("description") {
			update.Description = &taskUpdateDescription
		}
		if cmd.Flags().Changed("priority") {
			p := models.TaskPriority(taskUpdatePriority)
			update.Priority = &p
		}
		if cmd.Flags().Changed("assignee") {
			update.AssignedUser = &taskUpdateAssignee
		}

		task, err := Board.UpdateTask(args[0], update)
		if err != nil {
			return fmt.Errorf("updating task: %w", err)
		}

		fmt.Printf("Updated task %s (%s)\n", task.ID, task.Title)
		return nil
	},
}

var taskMoveCmd = &cobra.Command{
	Use:   "move <task-id> <status>",
	Short: "Move a task to another column",
	Long:  "Move a task to another board column. Valid columns: todo, in-progress, done.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Board == nil {
			return fmt.Errorf("board manager not initialized")
		}

		task, err := Board.MoveTask(args[0], models.TaskStatus(args[1]))
		if err != nil {
			return fmt.Errorf("moving task: %w", err)
		}

		fmt.Printf("Moved task %s to %s\n", task.ID, task.Status)
		return nil
	},
}

var taskDeleteCmd = &cobra.Command{
	Use:   "delete <task-id>",
	Short: "Delete a task",
	Long:  "Delete a task from the board. Deleting an unknown id is a no-op.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Board == nil {
			return fmt.Errorf("board manager not initialized")
		}

		if err := Board.DeleteTask(args[0]); err != nil {
			return fmt.Errorf("deleting task: %w", err)
		}

		fmt.Printf("Deleted task %s\n", args[0])
		return nil
	},
}

var taskAssigneesCmd = &cobra.Command{
	Use:   "assignees",
	Short: "List the distinct assigned users",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Board == nil {
			return fmt.Errorf("board manager not initialized")
		}

		users, err := Board.Assignees()
		if err != nil {
			return fmt.Errorf("listing assignees: %w", err)
		}
		for _, u := range users {
			fmt.Println(u)
		}
		return nil
	},
}

func init() {
	taskListCmd.Flags().StringVar(&taskListPriority, "priority", "", "filter by priority (low, medium, high)")
	taskListCmd.Flags().StringVar(&taskListAssignee, "assignee", "", "filter by assigned user")
	taskListCmd.Flags().StringVar(&taskListSearch, "search", "", "search title, description, and assignee")
	taskListCmd.Flags().BoolVar(&taskListJSON, "json", false, "output the board as JSON")

	taskAddCmd.Flags().StringVar(&taskAddDescription, "description", "", "task description")
	taskAddCmd.Flags().StringVar(&taskAddPriority, "priority", "", "priority (low, medium, high)")
	taskAddCmd.Flags().StringVar(&taskAddStatus, "status", "", "board column (todo, in-progress, done)")
	taskAddCmd.Flags().StringVar(&taskAddAssignee, "assignee", "", "assigned user")

	taskUpdateCmd.Flags().StringVar(&taskUpdateTitle, "title", "", "new title")
	taskUpdateCmd.Flags().StringVar(&taskUpdateDescription, "description", "", "new description")
	taskUpdateCmd.Flags().StringVar(&taskUpdatePriority, "priority", "", "new priority (low, medium, high)")
	taskUpdateCmd.Flags().StringVar(&taskUpdateAssignee, "assignee", "", "new assigned user")

	taskCmd.AddCommand(taskListCmd)
	taskCmd.AddCommand(taskAddCmd)
	taskCmd.AddCommand(taskUpdateCmd)
	taskCmd.AddCommand(taskMoveCmd)
	taskCmd.AddCommand(taskDeleteCmd)
	taskCmd.AddCommand(taskAssigneesCmd)
	rootCmd.AddCommand(taskCmd)
}
