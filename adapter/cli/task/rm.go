package task

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pulsedev/pulse/adapter/cli"
	"github.com/pulsedev/pulse/internal/tasking/application/commands"
)

var rmCmd = &cobra.Command{
	Use:     "rm <task-id>",
	Short:   "Delete a task",
	Aliases: []string{"delete"},
	Long: `Delete a task. Other tasks that depended on it have the dependency
removed automatically.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.DeleteTaskHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		id, err := parseTaskID(args[0])
		if err != nil {
			return err
		}

		if err := app.DeleteTaskHandler.Handle(cmd.Context(), commands.DeleteTaskCommand{
			UserID: app.CurrentUserID,
			TaskID: id,
		}); err != nil {
			return fmt.Errorf("failed to delete task: %w", err)
		}

		fmt.Println("Task deleted.")
		return nil
	},
}
