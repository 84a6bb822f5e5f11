package task

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pulsedev/pulse/adapter/cli"
	"github.com/pulsedev/pulse/internal/tasking/application/commands"
)

var doneAt string

var doneCmd = &cobra.Command{
	Use:     "done <task-id>",
	Short:   "Mark a task as completed",
	Aliases: []string{"complete"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.CompleteTaskHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		id, err := parseTaskID(args[0])
		if err != nil {
			return err
		}

		completeCmd := commands.CompleteTaskCommand{
			UserID: app.CurrentUserID,
			TaskID: id,
		}
		if doneAt != "" {
			at, err := time.Parse(time.RFC3339, doneAt)
			if err != nil {
				return fmt.Errorf("invalid --at, use RFC3339 (2006-01-02T15:04:05Z): %w", err)
			}
			completeCmd.CompletedAt = &at
		}

		t, err := app.CompleteTaskHandler.Handle(cmd.Context(), completeCmd)
		if err != nil {
			return fmt.Errorf("failed to complete task: %w", err)
		}

		fmt.Printf("Completed: %s\n", t.Title())
		if t.IsRecurring() {
			fmt.Printf("Recurring %s task - it will reopen next cycle.\n", t.RecurringType())
		}

		return nil
	},
}

func init() {
	doneCmd.Flags().StringVar(&doneAt, "at", "", "completion timestamp (RFC3339), defaults to now")
}
