package task

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/pulsedev/pulse/adapter/cli"
	"github.com/pulsedev/pulse/internal/tasking/application/commands"
	"github.com/pulsedev/pulse/internal/tasking/domain/task"
)

var (
	updateTitle     string
	updateExpected  float64
	updatePriority  string
	updateRecurring string
	updateDependsOn []string
	clearDependsOn  bool
)

var updateCmd = &cobra.Command{
	Use:   "update <task-id>",
	Short: "Update a task",
	Long: `Update task fields. Only the flags you pass are changed.

Examples:
  pulse task update 4f6b... --title "New title"
  pulse task update 4f6b... --priority high --expected 3600
  pulse task update 4f6b... --recurring weekly
  pulse task update 4f6b... --recurring none
  pulse task update 4f6b... --clear-deps`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.UpdateTaskHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		id, err := parseTaskID(args[0])
		if err != nil {
			return err
		}

		updateCmdData := commands.UpdateTaskCommand{
			UserID: app.CurrentUserID,
			TaskID: id,
		}

		if cmd.Flags().Changed("title") {
			updateCmdData.Title = &updateTitle
		}
		if cmd.Flags().Changed("expected") {
			updateCmdData.ExpectedTime = &updateExpected
		}
		if cmd.Flags().Changed("priority") {
			p, err := task.ParsePriority(updatePriority)
			if err != nil {
				return fmt.Errorf("invalid --priority %q: use normal, medium or high", updatePriority)
			}
			updateCmdData.Priority = &p
		}
		if cmd.Flags().Changed("recurring") {
			recurring := updateRecurring != "none"
			updateCmdData.IsRecurring = &recurring
			if recurring {
				rt := task.RecurringType(updateRecurring)
				if !rt.IsValid() {
					return fmt.Errorf("invalid --recurring %q: use daily, weekly, monthly or none", updateRecurring)
				}
				updateCmdData.RecurringType = &rt
			}
		}
		if clearDependsOn {
			empty := []uuid.UUID{}
			updateCmdData.Dependencies = &empty
		} else if cmd.Flags().Changed("depends-on") {
			deps, err := parseDependencies(updateDependsOn)
			if err != nil {
				return err
			}
			updateCmdData.Dependencies = &deps
		}

		t, err := app.UpdateTaskHandler.Handle(cmd.Context(), updateCmdData)
		if err != nil {
			return fmt.Errorf("failed to update task: %w", err)
		}

		fmt.Println("Task updated!")
		fmt.Println(formatTaskLine(t))

		return nil
	},
}

func init() {
	updateCmd.Flags().StringVar(&updateTitle, "title", "", "new title")
	updateCmd.Flags().Float64Var(&updateExpected, "expected", 0, "expected time in seconds")
	updateCmd.Flags().StringVar(&updatePriority, "priority", "", "priority (normal, medium, high)")
	updateCmd.Flags().StringVar(&updateRecurring, "recurring", "", "recurrence cadence (daily, weekly, monthly, none)")
	updateCmd.Flags().StringSliceVar(&updateDependsOn, "depends-on", nil, "comma-separated task ids this task depends on")
	updateCmd.Flags().BoolVar(&clearDependsOn, "clear-deps", false, "remove all dependencies")
}
