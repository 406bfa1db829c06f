package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tablero/internal/api"
	"github.com/thenoetrevino/tablero/internal/app"
	"github.com/thenoetrevino/tablero/internal/cli"
	"github.com/thenoetrevino/tablero/internal/config"
	"github.com/thenoetrevino/tablero/internal/database"
	"github.com/thenoetrevino/tablero/internal/events"
	"github.com/thenoetrevino/tablero/internal/logging"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Arranca la API REST",
		Long: `Arranca la API REST con el flujo de eventos en /api/eventos.

La base de datos se elige con DB_DRIVER (sqlite o postgres). Con
REDIS_URL los eventos se reparten entre varias instancias.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := configFrom(cmd)
			if err != nil {
				return fail(cmd, err)
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}
			if err := cfg.Validate(); err != nil {
				return fail(cmd, err)
			}

			closer, err := logging.Init(cfg.Log)
			if err != nil {
				return fail(cmd, fmt.Errorf("failed to initialize logging: %w", err))
			}
			defer closer.Close()

			if err := serve(cmd.Context(), cfg); err != nil {
				slog.Error("server error", "error", err)
				return fail(cmd, err)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "puerto de escucha (por defecto el configurado)")
	return cmd
}

// serve runs the API until an interrupt or a listener failure
func serve(parent context.Context, cfg *config.Config) error {
	ctx, cancel := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	db, err := database.InitDB(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	broker := events.NewBroker(0)
	defer broker.Close()

	var publisher events.Publisher = broker
	if cfg.Events.RedisURL != "" {
		rdb, err := events.NewRedisClient(cfg.Events.RedisURL)
		if err != nil {
			return err
		}
		publisher = events.NewRedisPublisher(rdb, cfg.Events.Channel)
		go events.NewRelay(rdb, cfg.Events.Channel, broker).Run(ctx)
		slog.Info("events shared through redis", "channel", cfg.Events.Channel)
	}

	a := app.New(database.NewRepository(db), app.WithPublisher(publisher), app.WithLogger(slog.Default()))
	defer a.Close()

	srv := api.NewServer(a, broker, cfg.Server)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		slog.Info("shutdown signal received, stopping API")
	}

	// Close the broker first so open event streams return
	broker.Close()

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errChan
}

// fail reports err for commands that do not use the output formatter
func fail(cmd *cobra.Command, err error) error {
	fmt.Fprintf(cmd.ErrOrStderr(), "❌ Error: %v\n", err)
	return &cli.Failure{Code: cli.ExitError, Err: err}
}
