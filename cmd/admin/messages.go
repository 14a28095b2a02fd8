package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/rpupo63/portfolio-site-backend/models"
)

func newMessagesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "messages",
		Short: "Manage contact messages",
	}
	cmd.AddCommand(
		newMessagesListCmd(),
		newMessagesReadCmd(),
		newMessagesRmCmd(),
	)
	return cmd
}

func newMessagesListCmd() *cobra.Command {
	var unreadOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List contact messages, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := current.workspace.Messages.Refresh(cmd.Context())
			if err != nil {
				return err
			}

			messages := current.workspace.Messages.List()
			if unreadOnly {
				filtered := messages[:0]
				for _, m := range messages {
					if m.Status == models.MessageStatusNew {
						filtered = append(filtered, m)
					}
				}
				messages = filtered
			}
			fmt.Printf("%d message(s)%s\n", len(messages), marker(src))

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tSTATUS\tFROM\tSUBJECT\tRECEIVED")
			for _, m := range messages {
				fmt.Fprintf(w, "%s\t%s\t%s <%s>\t%s\t%s\n",
					m.ID, m.Status, m.Name, m.Email, m.Subject, m.CreatedAt.Format("2006-01-02 15:04"))
			}
			return w.Flush()
		},
	}
	cmd.Flags().BoolVar(&unreadOnly, "unread", false, "show only unread messages")
	return cmd
}

func newMessagesReadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "read <id>",
		Short: "Show a message and mark it read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid message id %q", args[0])
			}

			if _, err := current.workspace.Messages.Refresh(cmd.Context()); err != nil {
				return err
			}

			message, err := findMessage(id)
			if err != nil {
				return err
			}

			fmt.Printf("From:    %s <%s>\n", message.Name, message.Email)
			fmt.Printf("Subject: %s\n", message.Subject)
			fmt.Printf("Date:    %s\n\n", message.CreatedAt.Format("2006-01-02 15:04"))
			fmt.Println(message.Message)

			if message.Status == models.MessageStatusRead {
				return nil
			}

			message.Status = models.MessageStatusRead
			_, src, err := current.workspace.Messages.Update(cmd.Context(), id, message)
			if err != nil {
				return err
			}
			fmt.Printf("\nMarked read%s\n", marker(src))
			return nil
		},
	}
}

func newMessagesRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a message",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid message id %q", args[0])
			}

			if _, err := current.workspace.Messages.Refresh(cmd.Context()); err != nil {
				return err
			}

			src, err := current.workspace.Messages.Delete(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Printf("Deleted message %s%s\n", id, marker(src))
			return nil
		},
	}
}

func findMessage(id uuid.UUID) (*models.ContactMessage, error) {
	for _, m := range current.workspace.Messages.List() {
		if m.ID == id {
			return &m, nil
		}
	}
	return nil, fmt.Errorf("message %s not found", id)
}
