package logging

import (
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/thenoetrevino/tablero/internal/config"
)

// Logger is the global slog instance for the application
var Logger *slog.Logger

// Init initializes the logging system writing to stderr, or to cfg.Path
// when it is set. The returned closer releases the log file, if any.
func Init(cfg config.LogConfig) (io.Closer, error) {
	var out io.Writer = os.Stderr
	var closer io.Closer = nopCloser{}

	if cfg.Path != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
			return nil, err
		}
		file, err := os.OpenFile(cfg.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, err
		}
		out = file
		closer = file
	}

	Logger = New(out, cfg)
	slog.SetDefault(Logger)

	// Redirect standard log package output to the same destination
	log.SetOutput(out)
	log.SetFlags(log.LstdFlags)

	return closer, nil
}

// InitFile logs to ~/.tablero/logs/tablero.log. Used by the terminal
// board, where stderr output would corrupt the screen.
func InitFile(cfg config.LogConfig) (io.Closer, error) {
	if cfg.Path == "" {
		cfg.Path = filepath.Join(config.DataDir(), "logs", "tablero.log")
	}
	return Init(cfg)
}

// New builds a logger for w honoring the configured level and format
func New(w io.Writer, cfg config.LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// ParseLevel maps a level name to slog.Level, defaulting to info
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
