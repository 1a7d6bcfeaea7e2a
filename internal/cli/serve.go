package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/allaithw/taskboard/internal/web"
)

var serveListenAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the JSON HTTP API",
	Long: `Serve the JSON HTTP API that the board UI polls.

Exposes the task endpoints under /api/tasks, the visitor messaging
endpoints under /api/messages, and the contact form under /api/contact.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Board == nil || Convs == nil {
			return fmt.Errorf("services not initialized")
		}

		addr := serveListenAddr
		if addr == "" && Config != nil {
			addr = Config.ListenAddr
		}
		if addr == "" {
			addr = ":3000"
		}

		adminPassword := ""
		if Config != nil {
			adminPassword = Config.AdminPassword
		}

		srv := web.NewServer(Board, Convs, Notifier, EventLog, adminPassword)
		fmt.Printf("Listening on %s\n", addr)
		return srv.ListenAndServe(addr)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveListenAddr, "listen", "", "listen address (defaults to config server.listen_addr)")
	rootCmd.AddCommand(serveCmd)
}
