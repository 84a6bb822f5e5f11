package pomodoro

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/pulsedev/pulse/adapter/cli"
	"github.com/pulsedev/pulse/internal/tasking/application/commands"
)

var (
	recordTask     string
	recordDuration float64
)

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Record a completed focus session",
	Long: `Record a completed pomodoro session.

Linking the session to a task also bumps that task's pomodoro counter.

Examples:
  pulse pomodoro record
  pulse pomodoro record --duration 1500 --task 4f6b...`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.RecordPomodoroHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		recordCmdData := commands.RecordPomodoroCommand{
			UserID:   app.CurrentUserID,
			Duration: recordDuration,
		}
		if recordTask != "" {
			id, err := uuid.Parse(recordTask)
			if err != nil {
				return fmt.Errorf("invalid --task id %q: %w", recordTask, err)
			}
			recordCmdData.TaskID = &id
		}

		session, err := app.RecordPomodoroHandler.Handle(cmd.Context(), recordCmdData)
		if err != nil {
			return fmt.Errorf("failed to record session: %w", err)
		}

		fmt.Printf("Session recorded: %.0f seconds on %s\n", session.Duration(), session.Date().Format("2006-01-02"))
		return nil
	},
}

func init() {
	recordCmd.Flags().Float64Var(&recordDuration, "duration", 1500, "session duration in seconds")
	recordCmd.Flags().StringVar(&recordTask, "task", "", "task id the session was spent on")
}
