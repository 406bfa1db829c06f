// Package tarea holds all cli commands for tasks
// e.g., tablero tarea ...
package tarea

import (
	"github.com/spf13/cobra"
)

// TareaCmd returns the tarea parent command
func TareaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tarea",
		Aliases: []string{"tareas", "t"},
		Short:   "Gestiona las tareas del tablero",
		Long: `Crea, consulta, mueve y comenta tareas a través de la API.

Todos los subcomandos aceptan --json para agentes y --quiet para scripts.

Ejemplos:
  tablero tarea list --estado="En progreso"
  ID=$(tablero tarea create --titulo="Login" --descripcion="JWT" --responsable="Ana" --quiet)
  tablero tarea move $ID bloqueada
  tablero tarea comment $ID "Esperando al equipo de infraestructura"`,
	}

	cmd.AddCommand(ListCmd())
	cmd.AddCommand(ShowCmd())
	cmd.AddCommand(CreateCmd())
	cmd.AddCommand(UpdateCmd())
	cmd.AddCommand(MoveCmd())
	cmd.AddCommand(DeleteCmd())
	cmd.AddCommand(CommentCmd())
	cmd.AddCommand(StatsCmd())

	return cmd
}
