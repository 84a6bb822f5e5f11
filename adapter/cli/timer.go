package cli

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/pulsedev/pulse/internal/tasking/application/commands"
	"github.com/pulsedev/pulse/internal/tasking/application/services"
)

var timerCmd = &cobra.Command{
	Use:   "timer",
	Short: "Track work time against a task",
	Long: `Start and stop a work timer. Stopping flushes the elapsed time into
the task's accumulator; the running timer itself is never the source of
truth.`,
}

var timerStartCmd = &cobra.Command{
	Use:   "start <task-id>",
	Short: "Start the timer for a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := GetApp()
		if app == nil || app.Timer == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		taskID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid task id %q: %w", args[0], err)
		}

		if err := app.Timer.Start(cmd.Context(), app.CurrentUserID, taskID); err != nil {
			if errors.Is(err, services.ErrTimerAlreadyRunning) {
				return fmt.Errorf("a timer is already running for this task - stop it first")
			}
			return fmt.Errorf("failed to start timer: %w", err)
		}

		fmt.Println("Timer started.")
		return nil
	},
}

var timerStopCmd = &cobra.Command{
	Use:   "stop <task-id>",
	Short: "Stop the timer and log the elapsed time",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := GetApp()
		if app == nil || app.Timer == nil || app.LogTimeHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		taskID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid task id %q: %w", args[0], err)
		}

		elapsed, err := app.Timer.Stop(cmd.Context(), app.CurrentUserID, taskID)
		if err != nil {
			if errors.Is(err, services.ErrTimerNotRunning) {
				return fmt.Errorf("no timer is running for this task")
			}
			return fmt.Errorf("failed to stop timer: %w", err)
		}

		t, err := app.LogTimeHandler.Handle(cmd.Context(), commands.LogTimeCommand{
			UserID:  app.CurrentUserID,
			TaskID:  taskID,
			Seconds: elapsed,
		})
		if err != nil {
			return fmt.Errorf("timer stopped but logging %.0fs failed: %w", elapsed, err)
		}

		fmt.Printf("Logged %.0fs on %q (total %.0fs)\n", elapsed, t.Title(), t.TimeSpent())
		return nil
	},
}

var timerStatusCmd = &cobra.Command{
	Use:   "status <task-id>",
	Short: "Show the running timer for a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := GetApp()
		if app == nil || app.Timer == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		taskID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid task id %q: %w", args[0], err)
		}

		elapsed, running, err := app.Timer.Running(cmd.Context(), app.CurrentUserID, taskID)
		if err != nil {
			return fmt.Errorf("failed to read timer: %w", err)
		}
		if !running {
			fmt.Println("No timer running.")
			return nil
		}

		fmt.Printf("Running for %.0fs\n", elapsed)
		return nil
	},
}

func init() {
	timerCmd.AddCommand(timerStartCmd)
	timerCmd.AddCommand(timerStopCmd)
	timerCmd.AddCommand(timerStatusCmd)
	rootCmd.AddCommand(timerCmd)
}
