package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tablero/internal/cli"
	"github.com/thenoetrevino/tablero/internal/cli/responsable"
	"github.com/thenoetrevino/tablero/internal/cli/styles"
	"github.com/thenoetrevino/tablero/internal/cli/tarea"
	"github.com/thenoetrevino/tablero/internal/config"
)

var apiURL string

var rootCmd = &cobra.Command{
	Use:   "tablero",
	Short: "Tablero - tablero kanban de tareas",
	Long: `Tablero gestiona tareas, responsables y comentarios sobre un tablero kanban.

Arranca la API con 'tablero serve' y usa el tablero interactivo ('tablero board')
o los subcomandos 'tarea' y 'responsable' desde cualquier terminal.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadCLI,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "", "URL base de la API (por defecto la configurada)")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(boardCmd())
	rootCmd.AddCommand(tarea.TareaCmd())
	rootCmd.AddCommand(responsable.ResponsableCmd())
}

// loadCLI loads the configuration once and stores the CLI on the command
// context for every subcommand
func loadCLI(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "❌ Error: no se pudo cargar la configuración: %v\n", err)
		return &cli.Failure{Code: cli.ExitError, Err: err}
	}
	if apiURL != "" {
		cfg.Client.APIURL = apiURL
	}

	styles.Init(cfg.ColorScheme)
	cmd.SetContext(cli.WithCLI(cmd.Context(), cli.NewCLI(cfg)))
	return nil
}

// configFrom returns the configuration loaded by loadCLI
func configFrom(cmd *cobra.Command) (*config.Config, error) {
	c, err := cli.GetCLIFromContext(cmd.Context())
	if err != nil {
		return nil, err
	}
	return c.Config, nil
}

// Execute runs the root command and returns the process exit code. A
// Failure has already been reported; anything else comes from cobra.
func Execute() int {
	err := rootCmd.ExecuteContext(context.Background())
	var failure *cli.Failure
	if err != nil && !errors.As(err, &failure) {
		fmt.Fprintf(os.Stderr, "❌ Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "💡 Sugerencia: ejecuta 'tablero --help' para ver el uso")
	}
	return cli.ExitCodeOf(err)
}
