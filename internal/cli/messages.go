package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/allaithw/taskboard/pkg/models"
)

var messagesCmd = &cobra.Command{
	Use:   "messages",
	Short: "Manage visitor conversations (list, show, reply, close)",
	Long: `Message-center commands for the visitor chat feature.

List conversations, read a thread, reply as the site admin, and close
finished conversations.`,
}

var messagesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all conversations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Convs == nil {
			return fmt.Errorf("conversation manager not initialized")
		}

		convs, err := Convs.List()
		if err != nil {
			return fmt.Errorf("listing conversations: %w", err)
		}

		if len(convs) == 0 {
			fmt.Println("No conversations.")
			return nil
		}
		for _, c := range convs {
			fmt.Printf("%-36s  %-8s  %3d msgs  %s  %s\n",
				c.ID, c.Status, len(c.Messages),
				c.LastUpdate.Format("2006-01-02 15:04"), c.VisitorName)
		}
		return nil
	},
}

var messagesShowCmd = &cobra.Command{
	Use:   "show <conversation-id>",
	Short: "Show a conversation thread",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Convs == nil {
			return fmt.Errorf("conversation manager not initialized")
		}

		conv, err := Convs.Get(args[0])
		if err != nil {
			return fmt.Errorf("showing conversation: %w", err)
		}

		fmt.Printf("Conversation %s (%s)\n", conv.ID, conv.Status)
		fmt.Printf("  Visitor: %s", conv.VisitorName)
		if conv.VisitorEmail != "" {
			fmt.Printf(" <%s>", conv.VisitorEmail)
		}
		if conv.VisitorPhone != "" {
			fmt.Printf(" %s", conv.VisitorPhone)
		}
		fmt.Println()
		fmt.Println()

		for _, msg := range conv.Messages {
			fmt.Printf("[%s] %s: %s\n",
				msg.Timestamp.Format(time.RFC3339), msg.Sender, msg.Text)
		}
		return nil
	},
}

var messagesReplyCmd = &cobra.Command{
	Use:   "reply <conversation-id> <text>",
	Short: "Reply to a conversation as admin",
	Long: `Append an admin reply to an existing conversation. Replying to an
unknown conversation fails; an admin cannot originate a conversation.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Convs == nil {
			return fmt.Errorf("conversation manager not initialized")
		}

		conv, err := Convs.StartOrAppend(args[0], models.VisitorInfo{}, models.SenderAdmin, args[1])
		if err != nil {
			return fmt.Errorf("replying: %w", err)
		}

		fmt.Printf("Replied to conversation %s (%d messages)\n", conv.ID, len(conv.Messages))
		return nil
	},
}

var (
	messagesSendName  string
	messagesSendEmail string
	messagesSendPhone string
	messagesSendConv  string
)

var messagesSendCmd = &cobra.Command{
	Use:   "send <text>",
	Short: "Send a message as a visitor",
	Long: `Send a visitor message. Without --conversation a new conversation is
started; with it the message is appended to the existing thread.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Convs == nil {
			return fmt.Errorf("conversation manager not initialized")
		}

		conv, err := Convs.StartOrAppend(messagesSendConv, models.VisitorInfo{
			Name:  messagesSendName,
			Email: messagesSendEmail,
			Phone: messagesSendPhone,
		}, models.SenderVisitor, args[0])
		if err != nil {
			return fmt.Errorf("sending message: %w", err)
		}

		fmt.Printf("Conversation %s now has %d messages\n", conv.ID, len(conv.Messages))
		return nil
	},
}

var messagesCloseCmd = &cobra.Command{
	Use:   "close <conversation-id>",
	Short: "Close a conversation",
	Long:  "Close a conversation. Closed conversations never reopen.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Convs == nil {
			return fmt.Errorf("conversation manager not initialized")
		}

		conv, err := Convs.Close(args[0])
		if err != nil {
			return fmt.Errorf("closing conversation: %w", err)
		}

		fmt.Printf("Closed conversation %s\n", conv.ID)
		return nil
	},
}

func init() {
	messagesSendCmd.Flags().StringVar(&messagesSendConv, "conversation", "", "existing conversation id")
	messagesSendCmd.Flags().StringVar(&messagesSendName, "name", "", "visitor name")
	messagesSendCmd.Flags().StringVar(&messagesSendEmail, "email", "", "visitor email")
	messagesSendCmd.Flags().StringVar(&messagesSendPhone, "phone", "", "visitor phone")

	messagesCmd.AddCommand(messagesListCmd)
	messagesCmd.AddCommand(messagesShowCmd)
	messagesCmd.AddCommand(messagesReplyCmd)
	messagesCmd.AddCommand(messagesSendCmd)
	messagesCmd.AddCommand(messagesCloseCmd)
	rootCmd.AddCommand(messagesCmd)
}
