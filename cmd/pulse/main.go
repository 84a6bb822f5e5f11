package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/pulsedev/pulse/adapter/cli"
	"github.com/pulsedev/pulse/adapter/cli/pomodoro"
	"github.com/pulsedev/pulse/adapter/cli/report"
	"github.com/pulsedev/pulse/adapter/cli/task"
	"github.com/pulsedev/pulse/internal/app"
	"github.com/pulsedev/pulse/pkg/config"
	"github.com/pulsedev/pulse/pkg/observability"
)

func main() {
	logger := observability.NewLogger(observability.DefaultLogConfig())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		cancel()
	}()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logCfg := observability.DefaultLogConfig()
	logCfg.Level = cfg.LogLevel
	if !cfg.IsDevelopment() {
		logCfg.Format = observability.LogFormatJSON
	}
	logger = observability.NewLogger(logCfg)
	cli.SetLogger(logger)

	container, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize application", "error", err)
		os.Exit(1)
	}
	defer container.Close(ctx)

	cli.SetApp(&cli.App{
		CreateTaskHandler:      container.CreateTask,
		UpdateTaskHandler:      container.UpdateTask,
		CompleteTaskHandler:    container.CompleteTask,
		DeleteTaskHandler:      container.DeleteTask,
		LogTimeHandler:         container.LogTime,
		RecordPomodoroHandler:  container.RecordPomodoro,
		ListTasksHandler:       container.ListTasks,
		GetTaskHandler:         container.GetTask,
		ListSessionsHandler:    container.ListSessions,
		GetHistoryHandler:      container.GetHistory,
		GenerateReportsHandler: container.GenerateReports,
		ListReportsHandler:     container.ListReports,
		Timer:                  container.Timer,
		HistoryDays:            cfg.DefaultHistoryDays,
		CurrentUserID:          container.UserID,
	})

	cli.AddCommand(task.Cmd)
	cli.AddCommand(pomodoro.Cmd)
	cli.AddCommand(report.Cmd)

	cli.Execute(ctx)
}
