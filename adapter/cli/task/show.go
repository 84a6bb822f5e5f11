package task

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pulsedev/pulse/adapter/cli"
	"github.com/pulsedev/pulse/internal/tasking/application/queries"
)

var showCmd = &cobra.Command{
	Use:   "show <task-id>",
	Short: "Show task details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.GetTaskHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		id, err := parseTaskID(args[0])
		if err != nil {
			return err
		}

		t, err := app.GetTaskHandler.Handle(cmd.Context(), queries.GetTaskQuery{
			UserID: app.CurrentUserID,
			TaskID: id,
		})
		if err != nil {
			return err
		}

		fmt.Printf("ID:        %s\n", t.ID())
		fmt.Printf("Title:     %s\n", t.Title())
		fmt.Printf("Priority:  %s\n", t.Priority())
		if t.Completed() {
			fmt.Printf("Status:    completed at %s\n", t.CompletedAt().Format(time.RFC3339))
		} else {
			fmt.Printf("Status:    pending\n")
		}
		if t.IsRecurring() {
			fmt.Printf("Recurring: %s\n", t.RecurringType())
			if t.LastCompletedDate() != nil {
				fmt.Printf("Last done: %s\n", t.LastCompletedDate().Format("2006-01-02"))
			}
		}
		fmt.Printf("Time:      %s spent", formatDuration(t.TimeSpent()))
		if t.ExpectedTime() > 0 {
			fmt.Printf(" / %s expected", formatDuration(t.ExpectedTime()))
		}
		fmt.Println()
		fmt.Printf("Pomodoros: %d\n", t.PomodoroCount())
		if deps := t.Dependencies(); len(deps) > 0 {
			fmt.Printf("Depends on:\n")
			for _, dep := range deps {
				fmt.Printf("  - %s\n", dep)
			}
		}
		fmt.Printf("Created:   %s\n", t.CreatedAt().Format(time.RFC3339))

		return nil
	},
}
