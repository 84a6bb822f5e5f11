package task

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pulsedev/pulse/adapter/cli"
	"github.com/pulsedev/pulse/internal/tasking/application/commands"
	"github.com/pulsedev/pulse/internal/tasking/domain/task"
)

var (
	addExpected  float64
	addPriority  string
	addRecurring string
	addDependsOn []string
)

var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a task",
	Long: `Add a new task.

Examples:
  pulse task add "Write weekly summary"
  pulse task add "Morning review" --recurring daily
  pulse task add "Refactor parser" --expected 7200 --priority high
  pulse task add "Ship release" --depends-on 4f6b...,a2c1...`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.CreateTaskHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		priority, err := task.ParsePriority(addPriority)
		if err != nil {
			return fmt.Errorf("invalid --priority %q: use normal, medium or high", addPriority)
		}

		deps, err := parseDependencies(addDependsOn)
		if err != nil {
			return err
		}

		createCmd := commands.CreateTaskCommand{
			UserID:       app.CurrentUserID,
			Title:        strings.Join(args, " "),
			ExpectedTime: addExpected,
			Priority:     priority,
			Dependencies: deps,
		}
		if addRecurring != "" {
			rt := task.RecurringType(addRecurring)
			if !rt.IsValid() {
				return fmt.Errorf("invalid --recurring %q: use daily, weekly or monthly", addRecurring)
			}
			createCmd.IsRecurring = true
			createCmd.RecurringType = rt
		}

		t, err := app.CreateTaskHandler.Handle(cmd.Context(), createCmd)
		if err != nil {
			return fmt.Errorf("failed to create task: %w", err)
		}

		fmt.Println("Task created!")
		fmt.Printf("  ID: %s\n", t.ID().String()[:8])
		fmt.Printf("  Title: %s\n", t.Title())
		if t.IsRecurring() {
			fmt.Printf("  Recurring: %s\n", t.RecurringType())
		}
		if t.ExpectedTime() > 0 {
			fmt.Printf("  Expected: %s\n", formatDuration(t.ExpectedTime()))
		}

		return nil
	},
}

func init() {
	addCmd.Flags().Float64Var(&addExpected, "expected", 0, "expected time in seconds")
	addCmd.Flags().StringVar(&addPriority, "priority", "", "priority (normal, medium, high)")
	addCmd.Flags().StringVar(&addRecurring, "recurring", "", "recurrence cadence (daily, weekly, monthly)")
	addCmd.Flags().StringSliceVar(&addDependsOn, "depends-on", nil, "comma-separated task ids this task depends on")
}
