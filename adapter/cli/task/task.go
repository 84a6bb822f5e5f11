// Package task implements the task command group.
package task

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/pulsedev/pulse/internal/tasking/domain/task"
)

// Cmd is the task command group
var Cmd = &cobra.Command{
	Use:   "task",
	Short: "Manage tasks",
	Long:  `Create, list, complete, and manage your tasks.`,
}

func init() {
	Cmd.AddCommand(addCmd)
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(showCmd)
	Cmd.AddCommand(updateCmd)
	Cmd.AddCommand(doneCmd)
	Cmd.AddCommand(rmCmd)
	Cmd.AddCommand(logCmd)
}

func parseTaskID(arg string) (uuid.UUID, error) {
	id, err := uuid.Parse(arg)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid task id %q: %w", arg, err)
	}
	return id, nil
}

func parseDependencies(raw []string) ([]uuid.UUID, error) {
	var deps []uuid.UUID
	for _, r := range raw {
		for _, part := range strings.Split(r, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := uuid.Parse(part)
			if err != nil {
				return nil, fmt.Errorf("invalid dependency id %q: %w", part, err)
			}
			deps = append(deps, id)
		}
	}
	return deps, nil
}

func formatTaskLine(t *task.Task) string {
	status := "[ ]"
	if t.Completed() {
		status = "[x]"
	}

	line := fmt.Sprintf("%s %s  %s", status, t.ID().String()[:8], t.Title())
	if t.Priority() != task.PriorityNormal {
		line += fmt.Sprintf("  (%s)", t.Priority())
	}
	if t.IsRecurring() {
		line += fmt.Sprintf("  ↻ %s", t.RecurringType())
	}
	if t.TimeSpent() > 0 {
		line += fmt.Sprintf("  %s", formatDuration(t.TimeSpent()))
	}
	return line
}

func formatDuration(seconds float64) string {
	s := int(seconds)
	h := s / 3600
	m := (s % 3600) / 60
	if h > 0 {
		return fmt.Sprintf("%dh%02dm", h, m)
	}
	if m > 0 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%ds", s)
}
