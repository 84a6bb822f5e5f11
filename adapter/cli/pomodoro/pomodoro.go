// Package pomodoro implements the pomodoro command group.
package pomodoro

import (
	"github.com/spf13/cobra"
)

// Cmd is the pomodoro command group
var Cmd = &cobra.Command{
	Use:   "pomodoro",
	Short: "Record and list focus sessions",
	Long:  `Record completed pomodoro sessions and review past ones.`,
}

func init() {
	Cmd.AddCommand(recordCmd)
	Cmd.AddCommand(listCmd)
}
