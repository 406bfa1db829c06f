package cli

import (
	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tablero/internal/client"
	"github.com/thenoetrevino/tablero/internal/config"
)

// CLI represents the CLI application context
type CLI struct {
	Client *client.Client // API client every command goes through
	Config *config.Config
}

// NewCLI builds the API client from the client section of cfg
func NewCLI(cfg *config.Config) *CLI {
	return &CLI{
		Client: client.New(cfg.Client.APIURL, cfg.Client.Timeout),
		Config: cfg,
	}
}

// Usuario is the author recorded on comments created from the CLI
func (c *CLI) Usuario() string {
	if c.Config != nil && c.Config.Client.Usuario != "" {
		return c.Config.Client.Usuario
	}
	return client.DefaultUsuario
}

// Prepare returns the CLI stored on the command context and a formatter
// for the command's output flags
func Prepare(cmd *cobra.Command) (*CLI, *OutputFormatter, error) {
	formatter := NewFormatter(cmd)
	cliInstance, err := GetCLIFromContext(cmd.Context())
	if err != nil {
		return nil, formatter, formatter.Fail(&Failure{Code: ExitError, Err: err})
	}
	return cliInstance, formatter, nil
}
