package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/allaithw/taskboard/pkg/models"
)

var exportOutput string

// boardExport is the top-level document written by the export command.
type boardExport struct {
	ExportedAt    time.Time             `yaml:"exported_at"`
	Tasks         []models.Task         `yaml:"tasks"`
	Conversations []models.Conversation `yaml:"conversations"`
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the board and conversations as YAML",
	Long: `Export all tasks and conversations as a single YAML document,
suitable for backups or for moving a board between machines.

Writes to stdout unless --output is given.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Board == nil || Convs == nil {
			return fmt.Errorf("services not initialized")
		}

		tasks, err := Board.ListTasks()
		if err != nil {
			return fmt.Errorf("listing tasks: %w", err)
		}
		convs, err := Convs.List()
		if err != nil {
			return fmt.Errorf("listing conversations: %w", err)
		}

		doc := boardExport{
			ExportedAt:    time.Now().UTC(),
			Tasks:         tasks,
			Conversations: convs,
		}

		data, err := yaml.Marshal(doc)
		if err != nil {
			return fmt.Errorf("marshaling export: %w", err)
		}

		if exportOutput == "" {
			fmt.Print(string(data))
			return nil
		}

		if err := os.WriteFile(exportOutput, data, 0o600); err != nil {
			return fmt.Errorf("writing %s: %w", exportOutput, err)
		}
		fmt.Printf("Exported %d tasks and %d conversations to %s\n", len(tasks), len(convs), exportOutput)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (defaults to stdout)")
	rootCmd.AddCommand(exportCmd)
}
