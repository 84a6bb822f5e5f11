package report

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pulsedev/pulse/adapter/cli"
	reportsapp "github.com/pulsedev/pulse/internal/reports/application"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Short:   "List stored weekly reports",
	Aliases: []string{"ls"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.ListReportsHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		reports, err := app.ListReportsHandler.Handle(cmd.Context(), reportsapp.ListReportsQuery{
			UserID: app.CurrentUserID,
		})
		if err != nil {
			return fmt.Errorf("failed to list reports: %w", err)
		}

		if len(reports) == 0 {
			fmt.Println("No reports yet. Generate them with: pulse report generate")
			return nil
		}

		for _, r := range reports {
			printReport(r)
		}
		return nil
	},
}
