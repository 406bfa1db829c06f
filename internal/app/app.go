package app

import (
	"log/slog"

	"github.com/thenoetrevino/tablero/internal/database"
	"github.com/thenoetrevino/tablero/internal/events"
	responsableservice "github.com/thenoetrevino/tablero/internal/services/responsable"
	tareaservice "github.com/thenoetrevino/tablero/internal/services/tarea"
)

// App holds all application services and provides dependency injection.
// This is the main application container the API and the CLI build on.
type App struct {
	// Repository layer (direct database access)
	repo database.DataStore

	// Change events for the live stream
	publisher events.Publisher
	logger    *slog.Logger

	// Service layer (business logic)
	TareaService       tareaservice.Service
	ResponsableService responsableservice.Service
}

// New creates a new App with all services initialized.
// This is the single entry point for creating the application container.
func New(repo database.DataStore, opts ...Option) *App {
	cfg := &appConfig{logger: slog.Default()}
	for _, opt := range opts {
		opt(cfg)
	}

	return &App{
		repo:               repo,
		publisher:          cfg.publisher,
		logger:             cfg.logger,
		TareaService:       tareaservice.NewService(repo, cfg.publisher, cfg.logger),
		ResponsableService: responsableservice.NewService(repo, cfg.publisher, cfg.logger),
	}
}

// Repo returns the underlying repository for direct database access.
func (a *App) Repo() database.DataStore {
	return a.repo
}

// Publisher returns the configured event publisher, possibly nil.
func (a *App) Publisher() events.Publisher {
	return a.publisher
}

// Logger returns the application logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// Close releases the event publisher. The repository is owned by the caller.
func (a *App) Close() error {
	if a.publisher == nil {
		return nil
	}
	return a.publisher.Close()
}
