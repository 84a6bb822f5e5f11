package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	activityapp "github.com/pulsedev/pulse/internal/activity/application"
)

var historyDays int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show per-day activity and streaks",
	Long: `Show what happened each day - tasks created, tasks completed, time
spent - along with current and longest streaks and the continuity
percentage for the window.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := GetApp()
		if app == nil || app.GetHistoryHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		days := historyDays
		if !cmd.Flags().Changed("days") {
			days = app.HistoryDays
		}

		h, err := app.GetHistoryHandler.Handle(cmd.Context(), activityapp.GetHistoryQuery{
			UserID: app.CurrentUserID,
			Days:   days,
		})
		if err != nil {
			return fmt.Errorf("failed to load history: %w", err)
		}

		c := h.Continuity
		fmt.Printf("Streak: %d day(s) current, %d longest\n", c.CurrentStreak, c.LongestStreak)
		fmt.Printf("Active: %d of %d days (%d%%)\n\n", c.ActiveDays, c.TotalDays, c.ContinuityPercentage)

		if len(h.Days) == 0 {
			fmt.Println("No activity in this window.")
			return nil
		}

		for _, day := range h.Days {
			fmt.Printf("%s  +%d created  ✓%d completed", day.Date, len(day.Created), len(day.Completed))
			if day.TimeSpent > 0 {
				fmt.Printf("  %.0fs", day.TimeSpent)
			}
			fmt.Println()
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyDays, "days", activityapp.DefaultHistoryDays, "history window in days")
	rootCmd.AddCommand(historyCmd)
}
