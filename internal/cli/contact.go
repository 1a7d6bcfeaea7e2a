package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/allaithw/taskboard/pkg/models"
)

var (
	contactName  string
	contactEmail string
	contactPhone string
)

var contactCmd = &cobra.Command{
	Use:   "contact <message>",
	Short: "Send a contact-form submission",
	Long: `Send a contact-form submission through the configured email
notifier. When no SMTP password is configured the notifier runs in
simulation mode and only records the submission in the event log.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Notifier == nil {
			return fmt.Errorf("notifier not initialized")
		}

		submission := models.ContactSubmission{
			Name:    contactName,
			Email:   contactEmail,
			Phone:   contactPhone,
			Message: args[0],
		}
		if err := Notifier.Notify(submission); err != nil {
			return fmt.Errorf("sending contact submission: %w", err)
		}

		fmt.Println("Contact submission sent")
		return nil
	},
}

func init() {
	contactCmd.Flags().StringVar(&contactName, "name", "", "sender name")
	contactCmd.Flags().StringVar(&contactEmail, "email", "", "sender email")
	contactCmd.Flags().StringVar(&contactPhone, "phone", "", "sender phone")
	rootCmd.AddCommand(contactCmd)
}
