package logging

import (
	"bytes"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/tablero/internal/config"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, config.LogConfig{Level: "info", Format: "json"})

	logger.Info("tarea creada", "id", 7)
	logger.Debug("hidden")

	out := buf.String()
	assert.Contains(t, out, `"msg":"tarea creada"`)
	assert.Contains(t, out, `"id":7`)
	assert.NotContains(t, out, "hidden")
}

func TestInit_WritesToFile(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() {
		slog.SetDefault(prev)
		log.SetOutput(os.Stderr)
	})

	path := filepath.Join(t.TempDir(), "logs", "tablero.log")
	closer, err := Init(config.LogConfig{Level: "debug", Path: path})
	require.NoError(t, err)

	slog.Debug("seed skipped", "reason", "table not empty")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "seed skipped")
}
