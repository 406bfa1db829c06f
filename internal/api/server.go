// Package api exposes the tareas and responsables services over HTTP.
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/thenoetrevino/tablero/internal/app"
	"github.com/thenoetrevino/tablero/internal/config"
	"github.com/thenoetrevino/tablero/internal/events"
)

// Server is the HTTP API
type Server struct {
	echo    *echo.Echo
	addr    string
	broker  *events.Broker
	metrics *Metrics
	logger  *slog.Logger
}

// NewServer builds the Echo instance and registers every route. broker
// feeds the event stream; a nil broker gets a private one.
func NewServer(a *app.App, broker *events.Broker, cfg config.ServerConfig) *Server {
	if broker == nil {
		broker = events.NewBroker(0)
	}

	s := &Server{
		echo:    echo.New(),
		addr:    cfg.Addr(),
		broker:  broker,
		metrics: NewMetrics(),
		logger:  a.Logger(),
	}

	e := s.echo
	e.HideBanner = true
	e.HidePort = true
	e.JSONSerializer = sonicSerializer{}
	e.HTTPErrorHandler = errorHandler(s.logger, s.metrics)

	e.Use(requestLogger(s.logger))
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		DisableErrorHandler: true,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			s.logger.Error("panic recovered", "path", c.Request().URL.Path, "error", err, "stack", string(stack))
			return err
		},
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))
	e.Use(countRequests(s.metrics))

	register(e, a, s)

	return s
}

// Handler returns the root handler, for tests and embedding
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Metrics returns the live counters
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

// Start listens on the configured address and blocks until Shutdown
func (s *Server) Start() error {
	s.logger.Info("API listening", "addr", s.addr)
	if err := s.echo.Start(s.addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start API server: %w", err)
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones. Open
// event streams end when the broker is closed by its owner.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shut down API server: %w", err)
	}
	return nil
}

// snapshot merges the API counters with the broker's
func (s *Server) snapshot() MetricsSnapshot {
	snap := s.metrics.GetSnapshot()
	snap.EventsPublished = s.broker.Published()
	snap.EventsDropped = s.broker.Dropped()
	return snap
}
