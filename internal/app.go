// Package internal provides the App struct that wires all components of the
// task board system together and initializes the CLI layer.
package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/allaithw/taskboard/internal/cli"
	"github.com/allaithw/taskboard/internal/core"
	"github.com/allaithw/taskboard/internal/observability"
	"github.com/allaithw/taskboard/internal/storage"
)

// App holds all service dependencies for the task board system.
type App struct {
	BasePath string

	// Configuration
	ConfigMgr core.ConfigurationManager

	// Storage layer
	TaskStore core.TaskStore
	ConvStore core.ConversationStore

	// Core services
	Board core.BoardManager
	Convs core.ConversationManager

	// Observability
	EventLog    observability.EventLog
	MetricsCalc observability.MetricsCalculator
	Notifier    observability.Notifier
}

// NewApp creates and wires all components of the task board system.
// basePath is the root directory where all data is stored (typically the
// directory containing .taskboardrc).
func NewApp(basePath string) (*App, error) {
	app := &App{BasePath: basePath}

	// --- Configuration ---
	app.ConfigMgr = core.NewConfigurationManager(basePath)
	cfg, err := app.ConfigMgr.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := app.ConfigMgr.ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	// --- Storage layer ---
	idGen := core.NewIDGenerator()
	app.TaskStore = storage.NewTaskStore(basePath, idGen)
	app.ConvStore = storage.NewConversationStore(basePath, idGen)
	if err := app.TaskStore.Load(); err != nil {
		return nil, fmt.Errorf("loading task store: %w", err)
	}
	if err := app.ConvStore.Load(); err != nil {
		return nil, fmt.Errorf("loading conversation store: %w", err)
	}

	// --- Observability ---
	eventLogPath := filepath.Join(basePath, ".taskboard_events.jsonl")
	app.EventLog, err = observability.NewJSONLEventLog(eventLogPath)
	if err != nil {
		// Non-fatal: disable observability if the log can't be created.
		app.EventLog = nil
	}
	var events core.EventLogger
	if app.EventLog != nil {
		app.MetricsCalc = observability.NewMetricsCalculator(app.EventLog)
		events = &eventLogAdapter{log: app.EventLog}
	}
	app.Notifier = observability.NewSMTPNotifier(cfg.SMTP, app.EventLog)

	// --- Core services ---
	app.Board = core.NewBoardManager(app.TaskStore, events)
	app.Convs = core.NewConversationManager(app.ConvStore, events)

	// --- Wire CLI package-level variables ---
	cli.BasePath = basePath
	cli.Config = cfg
	cli.Board = app.Board
	cli.Convs = app.Convs
	cli.EventLog = app.EventLog
	cli.MetricsCalc = app.MetricsCalc
	cli.Notifier = app.Notifier

	return app, nil
}

// Close releases resources held by the App, such as the event log file handle.
// It is safe to call Close on an App whose EventLog is nil.
func (a *App) Close() error {
	if a.EventLog != nil {
		return a.EventLog.Close()
	}
	return nil
}

// ResolveBasePath determines the base path for the task board data directory.
// It checks the TASKBOARD_HOME env var, then walks up from the current
// directory looking for a .taskboardrc file, and finally falls back to the
// current directory.
func ResolveBasePath() string {
	if home := os.Getenv("TASKBOARD_HOME"); home != "" {
		return home
	}
	dir, err := os.Getwd()
	if err != nil {
		return "."
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, ".taskboardrc")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	cwd, _ := os.Getwd()
	return cwd
}

// eventLogAdapter adapts observability.EventLog to core.EventLogger.
type eventLogAdapter struct {
	log observability.EventLog
}

func (a *eventLogAdapter) LogEvent(eventType string, data map[string]any) error {
	return a.log.Write(observability.Event{
		Time:    time.Now().UTC(),
		Level:   "INFO",
		Type:    eventType,
		Message: eventType,
		Data:    data,
	})
}
