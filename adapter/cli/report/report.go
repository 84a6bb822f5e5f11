// Package report implements the report command group.
package report

import (
	"fmt"

	"github.com/spf13/cobra"

	domainreport "github.com/pulsedev/pulse/internal/reports/domain/report"
)

// Cmd is the report command group
var Cmd = &cobra.Command{
	Use:   "report",
	Short: "Generate and view weekly reports",
	Long: `Weekly productivity reports: completed tasks, time spent, expected
versus actual time and pomodoro counts, one report per week.`,
}

func init() {
	Cmd.AddCommand(generateCmd)
	Cmd.AddCommand(listCmd)
}

func printReport(r *domainreport.WeeklyReport) {
	fmt.Printf("Week of %s\n", r.WeekStart().Format("2006-01-02"))
	fmt.Printf("  Completed:  %d task(s)\n", r.TasksCompleted())
	fmt.Printf("  Time spent: %.0fs\n", r.TotalTimeSpent())
	fmt.Printf("  Expected vs actual: %.2f\n", r.ExpectedVsActual())
	fmt.Printf("  Pomodoros:  %d\n", r.PomodoroCount())
}
