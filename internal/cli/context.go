package cli

import (
	"context"
	"fmt"

	"github.com/thenoetrevino/tablero/internal/config"
)

type contextKey struct{}

// WithCLI stores c on ctx so subcommands share one client
func WithCLI(ctx context.Context, c *CLI) context.Context {
	return context.WithValue(ctx, contextKey{}, c)
}

// GetCLIFromContext returns the CLI stored by WithCLI, or builds one from
// the loaded configuration when none was stored
func GetCLIFromContext(ctx context.Context) (*CLI, error) {
	if ctx != nil {
		if c, ok := ctx.Value(contextKey{}).(*CLI); ok && c != nil {
			return c, nil
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return NewCLI(cfg), nil
}
