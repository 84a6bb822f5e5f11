package report

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pulsedev/pulse/adapter/cli"
	reportsapp "github.com/pulsedev/pulse/internal/reports/application"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Regenerate all weekly reports",
	Long: `Recompute weekly reports from the week of your earliest task through
the current week. Existing reports are replaced with fresh numbers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.GenerateReportsHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		reports, err := app.GenerateReportsHandler.Handle(cmd.Context(), reportsapp.GenerateReportsCommand{
			UserID: app.CurrentUserID,
		})
		if err != nil {
			return fmt.Errorf("failed to generate reports: %w", err)
		}

		if len(reports) == 0 {
			fmt.Println("No tasks yet - nothing to report.")
			return nil
		}

		fmt.Printf("Generated %d report(s).\n\n", len(reports))
		for _, r := range reports {
			printReport(r)
		}
		return nil
	},
}
