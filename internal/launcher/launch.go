package launcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/thenoetrevino/tablero/internal/client"
	"github.com/thenoetrevino/tablero/internal/config"
	"github.com/thenoetrevino/tablero/internal/logging"
	"github.com/thenoetrevino/tablero/internal/tui"
)

// streamRetry is the pause before reopening a dropped event stream
const streamRetry = 2 * time.Second

// Board is everything the terminal board runs on besides the TUI itself:
// the API client, the stores and the background reconciliation
type Board struct {
	Client       *client.Client
	Tareas       *client.TareasConActividad
	Responsables *client.ResponsableStore
	Poller       *client.Poller

	logger *slog.Logger
	cancel context.CancelFunc
}

// NewBoard wires the stores for cfg. Nothing runs until Start.
func NewBoard(cfg *config.Config, logger *slog.Logger) *Board {
	if logger == nil {
		logger = slog.Default()
	}

	c := client.New(cfg.Client.APIURL, cfg.Client.Timeout)
	notifier := client.NewNotifier()
	tareas := client.NewTareasConActividad(client.NewTareaStore(c, notifier), client.NewRegistro(), cfg.Client.Usuario)
	responsables := client.NewResponsableStore(c, notifier)

	b := &Board{
		Client:       c,
		Tareas:       tareas,
		Responsables: responsables,
		logger:       logger,
	}
	b.Poller = client.NewPoller(cfg.Client.PollInterval, b.reload, logger)
	return b
}

// reload refreshes both snapshots
func (b *Board) reload(ctx context.Context) error {
	errTareas := b.Tareas.Load(ctx)
	errResponsables := b.Responsables.Load(ctx)
	return errors.Join(errTareas, errResponsables)
}

// Start begins polling and follows the server event stream until Stop or
// until ctx ends
func (b *Board) Start(ctx context.Context) error {
	if err := b.Poller.Start(); err != nil {
		return err
	}

	ctx, b.cancel = context.WithCancel(ctx)
	go b.Poller.Follow(ctx, b.Client, streamRetry)

	b.logger.Info("board started", "api", b.Client.BaseURL())
	return nil
}

// Stop ends the stream and the schedule
func (b *Board) Stop() {
	if b.cancel != nil {
		b.cancel()
	}
	b.Poller.Stop()
}

// Launch starts the TUI application
func Launch(cfg *config.Config) error {
	// Log to a file; stderr belongs to the board
	closer, err := logging.InitFile(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer closer.Close()

	// Create root context with signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer cancel()

	board := NewBoard(cfg, slog.Default())
	if err := board.Start(ctx); err != nil {
		return err
	}
	defer board.Stop()

	model := tui.New(ctx, tui.Deps{
		Tareas:       board.Tareas,
		Responsables: board.Responsables,
		Config:       cfg,
		Logger:       slog.Default(),
	})
	p := tea.NewProgram(model, tea.WithContext(ctx))

	// goroutine to monitor cancellation
	errChan := make(chan error, 1)
	go func() {
		_, err := p.Run()
		errChan <- err
	}()

	// Wait for program completion or cancellation
	select {
	case err := <-errChan:
		if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			return fmt.Errorf("error running program: %w", err)
		}
	case <-ctx.Done():
		slog.Info("shutdown signal received, cleaning up")
		<-errChan
	}

	return nil
}
