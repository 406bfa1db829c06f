package cmd

import (
	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tablero/internal/launcher"
)

func boardCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "board",
		Aliases: []string{"tui"},
		Short:   "Abre el tablero interactivo",
		Long: `Abre el tablero kanban en la terminal. Necesita la API en marcha
('tablero serve'); los cambios de otros clientes aparecen solos.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := configFrom(cmd)
			if err != nil {
				return fail(cmd, err)
			}
			if err := launcher.Launch(cfg); err != nil {
				return fail(cmd, err)
			}
			return nil
		},
	}
}
