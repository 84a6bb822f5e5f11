package task

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pulsedev/pulse/adapter/cli"
	"github.com/pulsedev/pulse/internal/tasking/application/queries"
)

var listCompleted bool

var listCmd = &cobra.Command{
	Use:     "list",
	Short:   "List tasks",
	Aliases: []string{"ls"},
	Long: `List tasks, newest first.

Listing is also when recurring tasks from previous days are reopened, so
the output always reflects the current cycle.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.ListTasksHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		tasks, err := app.ListTasksHandler.Handle(cmd.Context(), queries.ListTasksQuery{
			UserID: app.CurrentUserID,
		})
		if err != nil {
			return fmt.Errorf("failed to list tasks: %w", err)
		}

		shown := 0
		for _, t := range tasks {
			if t.Completed() && !listCompleted {
				continue
			}
			fmt.Println(formatTaskLine(t))
			shown++
		}
		if shown == 0 {
			fmt.Println("No tasks. Add one with: pulse task add \"...\"")
		}

		return nil
	},
}

func init() {
	listCmd.Flags().BoolVar(&listCompleted, "all", false, "include completed tasks")
}
