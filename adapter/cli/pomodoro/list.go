package pomodoro

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pulsedev/pulse/adapter/cli"
	"github.com/pulsedev/pulse/internal/tasking/application/queries"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Short:   "List recorded sessions",
	Aliases: []string{"ls"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.ListSessionsHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		sessions, err := app.ListSessionsHandler.Handle(cmd.Context(), queries.ListSessionsQuery{
			UserID: app.CurrentUserID,
		})
		if err != nil {
			return fmt.Errorf("failed to list sessions: %w", err)
		}

		if len(sessions) == 0 {
			fmt.Println("No sessions recorded yet.")
			return nil
		}

		for _, s := range sessions {
			line := fmt.Sprintf("%s  %.0fs", s.Date().Format("2006-01-02 15:04"), s.Duration())
			if s.TaskID() != nil {
				line += fmt.Sprintf("  task %s", s.TaskID().String()[:8])
			}
			fmt.Println(line)
		}
		return nil
	},
}
