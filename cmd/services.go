package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/kezou/pacer/internal/adapters/git"
	"github.com/kezou/pacer/internal/adapters/notification"
	"github.com/kezou/pacer/internal/adapters/storage"
	"github.com/kezou/pacer/internal/config"
	"github.com/kezou/pacer/internal/domain"
	"github.com/kezou/pacer/internal/engine"
	"github.com/kezou/pacer/internal/ports"
	"github.com/kezou/pacer/internal/services"
)

// appDeps groups all service-layer dependencies initialized at startup.
type appDeps struct {
	storage  ports.Storage
	engine   *engine.Engine
	library  *services.LibraryService
	reader   *services.ReaderService
	stats    *services.StatsService
	git      ports.GitSource
	notifier *notification.Notifier
	config   *config.Config
}

// app holds all initialized service dependencies.
// Populated by initializeServices() and accessible to all commands.
var app appDeps

// initializeServices sets up all the required services and adapters.
func initializeServices() error {
	// Load configuration
	var err error
	app.config, err = config.Load()
	if err != nil {
		// If config loading fails, use defaults
		app.config = config.DefaultConfig()
	}

	// Initialize notifier
	app.notifier = notification.New(&app.config.Notifications)

	// Determine database path
	if dbPath == "" {
		dbPath = config.GetDBPath(app.config)
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(dbPath), 0750); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}

	// Initialize storage
	app.storage, err = storage.New(dbPath)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	// Initialize git source
	app.git = git.NewSource()

	// Initialize the engine. Hooks close over app so they see the
	// services wired a few lines below; the nil checks cover the gap.
	app.engine = engine.New(engine.Config{
		Rate:  app.config.Reading.WPM,
		Focus: app.config.ToFocusConfig(),
		Hooks: engine.Hooks{
			OnSession: func(session *domain.ReadingSession) {
				if app.reader == nil {
					return
				}
				if err := app.reader.SaveSession(context.Background(), session); err != nil {
					fmt.Fprintf(os.Stderr, "Warning: failed to save session: %v\n", err)
				}
			},
			OnPhaseEnd: func(finished, next domain.FocusPhase) {
				if app.notifier == nil {
					return
				}
				if err := app.notifier.NotifyPhaseComplete(finished); err != nil {
					fmt.Fprintf(os.Stderr, "Warning: notification failed: %v\n", err)
				}
			},
			OnSleepFired: func() {
				if app.notifier == nil {
					return
				}
				if err := app.notifier.NotifySleepFired(); err != nil {
					fmt.Fprintf(os.Stderr, "Warning: notification failed: %v\n", err)
				}
			},
		},
	})

	// Initialize services
	app.library = services.NewLibraryService(app.storage)
	app.reader = services.NewReaderService(app.engine, app.storage, app.library)
	app.stats = services.NewStatsService(app.storage)

	return nil
}

// cleanupServices closes all resources.
func cleanupServices() error {
	if app.storage != nil {
		return app.storage.Close()
	}
	return nil
}

// setupSignalHandler sets up a context that cancels on interrupt signals.
func setupSignalHandler() context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		cancel()
	}()

	return ctx
}
