package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/allaithw/taskboard/internal/core"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Populate the board with sample tasks",
	Long: `Populate the board with a set of sample tasks spread across
priorities, statuses, and assignees. Useful for demos and for trying out
the filter and search commands on a fresh board.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Board == nil {
			return fmt.Errorf("board manager not initialized")
		}

		tasks, err := core.SeedTasks(Board)
		if err != nil {
			return fmt.Errorf("seeding board: %w", err)
		}

		fmt.Printf("Seeded %d tasks\n", len(tasks))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
