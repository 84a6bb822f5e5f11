// Package app wires configuration, storage, the event bus and all
// application handlers into a single container.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	activityapp "github.com/pulsedev/pulse/internal/activity/application"
	"github.com/pulsedev/pulse/internal/activity/domain/ledger"
	activitypersistence "github.com/pulsedev/pulse/internal/activity/infrastructure/persistence"
	reportsapp "github.com/pulsedev/pulse/internal/reports/application"
	"github.com/pulsedev/pulse/internal/reports/domain/report"
	reportspersistence "github.com/pulsedev/pulse/internal/reports/infrastructure/persistence"
	"github.com/pulsedev/pulse/internal/shared/infrastructure/database"
	"github.com/pulsedev/pulse/internal/shared/infrastructure/database/mongodb"
	"github.com/pulsedev/pulse/internal/shared/infrastructure/database/sqlite"
	"github.com/pulsedev/pulse/internal/shared/infrastructure/eventbus"
	"github.com/pulsedev/pulse/internal/shared/infrastructure/migrations"
	"github.com/pulsedev/pulse/internal/tasking/application/commands"
	"github.com/pulsedev/pulse/internal/tasking/application/queries"
	"github.com/pulsedev/pulse/internal/tasking/application/services"
	"github.com/pulsedev/pulse/internal/tasking/domain/pomodoro"
	"github.com/pulsedev/pulse/internal/tasking/domain/task"
	taskingpersistence "github.com/pulsedev/pulse/internal/tasking/infrastructure/persistence"
	"github.com/pulsedev/pulse/pkg/config"
)

// Container holds all wired application components.
type Container struct {
	Config *config.Config
	Logger *slog.Logger
	UserID uuid.UUID

	sqliteDB    *sql.DB
	mongoClient *mongo.Client
	redisClient *redis.Client
	rabbitMQ    *eventbus.RabbitMQPublisher

	TaskRepo    task.Repository
	SessionRepo pomodoro.Repository
	LedgerRepo  ledger.Repository
	ReportRepo  report.Repository

	CreateTask     *commands.CreateTaskHandler
	UpdateTask     *commands.UpdateTaskHandler
	CompleteTask   *commands.CompleteTaskHandler
	DeleteTask     *commands.DeleteTaskHandler
	LogTime        *commands.LogTimeHandler
	RecordPomodoro *commands.RecordPomodoroHandler

	ListTasks    *queries.ListTasksHandler
	GetTask      *queries.GetTaskHandler
	ListSessions *queries.ListSessionsHandler

	GetHistory      *activityapp.GetHistoryHandler
	GenerateReports *reportsapp.GenerateReportsHandler
	ListReports     *reportsapp.ListReportsHandler

	Timer *services.Timer
}

// New builds the container from configuration.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	c := &Container{Config: cfg, Logger: logger}

	userID, err := uuid.Parse(cfg.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id %q: %w", cfg.UserID, err)
	}
	c.UserID = userID

	if err := c.setupPersistence(ctx); err != nil {
		return nil, err
	}

	publisher, err := c.setupEventBus()
	if err != nil {
		c.Close(ctx)
		return nil, err
	}

	timerStore, err := c.setupTimerStore()
	if err != nil {
		c.Close(ctx)
		return nil, err
	}

	c.CreateTask = commands.NewCreateTaskHandler(c.TaskRepo, publisher)
	c.UpdateTask = commands.NewUpdateTaskHandler(c.TaskRepo)
	c.CompleteTask = commands.NewCompleteTaskHandler(c.TaskRepo, publisher)
	c.DeleteTask = commands.NewDeleteTaskHandler(c.TaskRepo)
	c.LogTime = commands.NewLogTimeHandler(c.TaskRepo)
	c.RecordPomodoro = commands.NewRecordPomodoroHandler(c.SessionRepo, c.TaskRepo, publisher)

	c.ListTasks = queries.NewListTasksHandler(c.TaskRepo)
	c.GetTask = queries.NewGetTaskHandler(c.TaskRepo)
	c.ListSessions = queries.NewListSessionsHandler(c.SessionRepo)

	c.GetHistory = activityapp.NewGetHistoryHandler(c.TaskRepo, c.LedgerRepo, logger)
	c.GenerateReports = reportsapp.NewGenerateReportsHandler(c.TaskRepo, c.SessionRepo, c.ReportRepo)
	c.ListReports = reportsapp.NewListReportsHandler(c.ReportRepo)

	c.Timer = services.NewTimer(timerStore)

	return c, nil
}

func (c *Container) setupPersistence(ctx context.Context) error {
	driver := database.Driver(c.Config.DBDriver)
	if !driver.IsValid() {
		return fmt.Errorf("unsupported database driver %q", c.Config.DBDriver)
	}

	switch driver {
	case database.DriverSQLite:
		path := c.Config.SQLitePath
		if path == "" {
			path = database.DefaultSQLitePath()
		}
		if err := database.EnsureDirectory(path); err != nil {
			return err
		}

		db, err := sqlite.Open(ctx, database.Config{Driver: driver, SQLitePath: path})
		if err != nil {
			return fmt.Errorf("failed to open sqlite database: %w", err)
		}
		if err := migrations.RunSQLiteMigrations(ctx, db); err != nil {
			db.Close()
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		c.sqliteDB = db

		c.TaskRepo = taskingpersistence.NewSQLiteTaskRepository(db)
		c.SessionRepo = taskingpersistence.NewSQLiteSessionRepository(db)
		c.LedgerRepo = activitypersistence.NewSQLiteLedgerRepository(db)
		c.ReportRepo = reportspersistence.NewSQLiteReportRepository(db)

	case database.DriverMongoDB:
		client, db, err := mongodb.Connect(ctx, database.Config{
			Driver:        driver,
			MongoURI:      c.Config.MongoURI,
			MongoDatabase: c.Config.MongoDatabase,
		})
		if err != nil {
			return fmt.Errorf("failed to connect to mongodb: %w", err)
		}
		c.mongoClient = client

		c.TaskRepo = taskingpersistence.NewMongoTaskRepository(db)
		c.SessionRepo = taskingpersistence.NewMongoSessionRepository(db)
		c.LedgerRepo = activitypersistence.NewMongoLedgerRepository(db)
		c.ReportRepo = reportspersistence.NewMongoReportRepository(db)
	}

	return nil
}

// setupEventBus wires the in-process bus with the activity recorder, and
// mirrors events to RabbitMQ when a broker is configured.
func (c *Container) setupEventBus() (eventbus.Publisher, error) {
	bus := eventbus.NewInProcessBus(c.Logger)
	bus.RegisterConsumer(activityapp.NewRecorder(c.LedgerRepo, c.Logger))

	if c.Config.RabbitMQURL == "" {
		return bus, nil
	}

	rabbit, err := eventbus.NewRabbitMQPublisher(c.Config.RabbitMQURL, c.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to rabbitmq: %w", err)
	}
	c.rabbitMQ = rabbit

	return eventbus.NewFanoutPublisher(c.Logger, bus, rabbit), nil
}

func (c *Container) setupTimerStore() (services.TimerStore, error) {
	if c.Config.RedisURL == "" {
		return services.NewMemoryTimerStore(), nil
	}

	opts, err := redis.ParseURL(c.Config.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	c.redisClient = redis.NewClient(opts)

	return services.NewRedisTimerStore(c.redisClient), nil
}

// Close releases all held connections.
func (c *Container) Close(ctx context.Context) {
	if c.rabbitMQ != nil {
		if err := c.rabbitMQ.Close(); err != nil {
			c.Logger.Warn("failed to close rabbitmq connection", "error", err)
		}
	}
	if c.redisClient != nil {
		if err := c.redisClient.Close(); err != nil {
			c.Logger.Warn("failed to close redis connection", "error", err)
		}
	}
	if c.mongoClient != nil {
		if err := c.mongoClient.Disconnect(ctx); err != nil {
			c.Logger.Warn("failed to disconnect mongodb", "error", err)
		}
	}
	if c.sqliteDB != nil {
		if err := c.sqliteDB.Close(); err != nil {
			c.Logger.Warn("failed to close sqlite database", "error", err)
		}
	}
}
