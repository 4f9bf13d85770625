// Package wire provides dependency injection for the todo application.
// It creates singleton services with lazy initialization and builds a fresh
// interactor and presenter for every screen.
package wire

import (
	"context"
	"database/sql"
	"log"
	"log/slog"
	"os"
	"sync"

	"github.com/google/uuid"

	cliadapter "github.com/example/todo/internal/adapters/cli"
	"github.com/example/todo/internal/adapters/persistence"
	"github.com/example/todo/internal/adapters/sqlite"
	"github.com/example/todo/internal/app"
	"github.com/example/todo/internal/config"
	"github.com/example/todo/internal/db"
	"github.com/example/todo/internal/logger"
	"github.com/example/todo/internal/metrics"
	"github.com/example/todo/internal/ports/primary"
	"github.com/example/todo/internal/ports/secondary"
)

var (
	cfg         *config.Config
	database    *sql.DB
	storeStats  *metrics.Metrics
	taskService primary.TaskService
	once        sync.Once
)

// Config returns the resolved configuration.
func Config() *config.Config {
	once.Do(initServices)
	return cfg
}

// TaskService returns the singleton TaskService instance.
func TaskService() primary.TaskService {
	once.Do(initServices)
	return taskService
}

// Metrics returns the store metrics collected by this process.
func Metrics() *metrics.Metrics {
	once.Do(initServices)
	return storeStats
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	wd, err := os.Getwd()
	if err != nil {
		log.Fatalf("failed to get working directory: %v", err)
	}

	cfg, err = config.Load(wd)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger.Init(cfg.LogLevel, cfg.LogFormat, os.Stderr)

	database, err = db.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}
	logger.Debug("database opened", "path", cfg.DBPath)

	// Repository adapter (secondary port) wrapped with metrics
	storeStats = metrics.New()
	var taskRepo secondary.TaskRepository = sqlite.NewTaskRepository(database)
	taskRepo = persistence.NewInstrumentedTaskRepository(taskRepo, storeStats)

	// Service (primary port implementation)
	taskService = app.NewTaskService(taskRepo)
}

// Close releases the database if it was opened.
func Close() error {
	if database == nil {
		return nil
	}
	return database.Close()
}

// screenLogger tags a screen's log lines with its name and a session id.
func screenLogger(screen string) *slog.Logger {
	return logger.With("screen", screen, "session", uuid.NewString())
}

// NewTaskListPresenter builds the list screen with its own interactor.
func NewTaskListPresenter(view primary.TaskListView, navigator primary.Navigator, sharer secondary.Sharer) *app.TaskListPresenter {
	once.Do(initServices)
	screenLog := screenLogger("list")
	interactor := app.NewTaskInteractor(context.Background(), taskService, screenLog)
	return app.NewTaskListPresenter(interactor, view, navigator, sharer, screenLog)
}

// NewTaskDetailPresenter builds a detail screen with its own interactor.
func NewTaskDetailPresenter(
	intent primary.DetailIntent,
	view primary.TaskDetailView,
	router primary.DetailRouter,
	delegate primary.DetailDelegate,
) *app.TaskDetailPresenter {
	once.Do(initServices)
	screenLog := screenLogger("detail")
	interactor := app.NewTaskInteractor(context.Background(), taskService, screenLog)
	return app.NewTaskDetailPresenter(intent, interactor, view, router, delegate, cfg.AutoSaveOnExit, screenLog)
}

// DetailScreenFactory adapts NewTaskDetailPresenter for the terminal navigator.
func DetailScreenFactory() cliadapter.DetailScreenFactory {
	return func(
		intent primary.DetailIntent,
		view primary.TaskDetailView,
		router primary.DetailRouter,
		delegate primary.DetailDelegate,
	) cliadapter.DetailScreen {
		return NewTaskDetailPresenter(intent, view, router, delegate)
	}
}
