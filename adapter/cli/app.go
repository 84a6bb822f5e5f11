package cli

import (
	activityapp "github.com/pulsedev/pulse/internal/activity/application"
	reportsapp "github.com/pulsedev/pulse/internal/reports/application"
	"github.com/pulsedev/pulse/internal/tasking/application/commands"
	"github.com/pulsedev/pulse/internal/tasking/application/queries"
	"github.com/pulsedev/pulse/internal/tasking/application/services"

	"github.com/google/uuid"
)

// App holds the CLI application dependencies.
type App struct {
	// Task command handlers
	CreateTaskHandler     *commands.CreateTaskHandler
	UpdateTaskHandler     *commands.UpdateTaskHandler
	CompleteTaskHandler   *commands.CompleteTaskHandler
	DeleteTaskHandler     *commands.DeleteTaskHandler
	LogTimeHandler        *commands.LogTimeHandler
	RecordPomodoroHandler *commands.RecordPomodoroHandler

	// Task query handlers
	ListTasksHandler    *queries.ListTasksHandler
	GetTaskHandler      *queries.GetTaskHandler
	ListSessionsHandler *queries.ListSessionsHandler

	// Activity and reports
	GetHistoryHandler      *activityapp.GetHistoryHandler
	GenerateReportsHandler *reportsapp.GenerateReportsHandler
	ListReportsHandler     *reportsapp.ListReportsHandler

	// Work timer
	Timer *services.Timer

	// Defaults
	HistoryDays int

	// Current user (configured per environment)
	CurrentUserID uuid.UUID
}

var app *App

// SetApp sets the global CLI application instance.
func SetApp(a *App) {
	app = a
}

// GetApp returns the global CLI application instance.
func GetApp() *App {
	return app
}
