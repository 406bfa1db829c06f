// Package apitest runs the real API over httptest for client-side tests.
package apitest

import (
	"net/http/httptest"
	"testing"

	"github.com/thenoetrevino/tablero/internal/api"
	"github.com/thenoetrevino/tablero/internal/app"
	"github.com/thenoetrevino/tablero/internal/config"
	"github.com/thenoetrevino/tablero/internal/database"
	"github.com/thenoetrevino/tablero/internal/events"
	"github.com/thenoetrevino/tablero/internal/testutil"
)

// Env is a running API backed by an in-memory database
type Env struct {
	// BaseURL is the /api root, e.g. http://127.0.0.1:1234/api
	BaseURL string
	Repo    *database.Repository
	Broker  *events.Broker
	Server  *httptest.Server
}

// Start serves the API until the test ends
func Start(t *testing.T) *Env {
	t.Helper()

	repo := testutil.SetupTestRepo(t)
	broker := events.NewBroker(0)
	a := app.New(repo, app.WithPublisher(broker))
	srv := api.NewServer(a, broker, config.ServerConfig{})

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		// closing the broker ends open event streams so Close can return
		_ = broker.Close()
		ts.Close()
	})

	return &Env{
		BaseURL: ts.URL + "/api",
		Repo:    repo,
		Broker:  broker,
		Server:  ts,
	}
}
