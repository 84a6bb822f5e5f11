package task

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pulsedev/pulse/adapter/cli"
	"github.com/pulsedev/pulse/internal/tasking/application/commands"
)

var logCmd = &cobra.Command{
	Use:   "log <task-id> <seconds>",
	Short: "Log time spent on a task",
	Long: `Add elapsed work time to a task's accumulator.

Examples:
  pulse task log 4f6b... 1800     # log 30 minutes`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.LogTimeHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		id, err := parseTaskID(args[0])
		if err != nil {
			return err
		}
		seconds, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid seconds %q: %w", args[1], err)
		}

		t, err := app.LogTimeHandler.Handle(cmd.Context(), commands.LogTimeCommand{
			UserID:  app.CurrentUserID,
			TaskID:  id,
			Seconds: seconds,
		})
		if err != nil {
			return fmt.Errorf("failed to log time: %w", err)
		}

		fmt.Printf("Logged %s on %q (total %s)\n", formatDuration(seconds), t.Title(), formatDuration(t.TimeSpent()))
		return nil
	},
}
