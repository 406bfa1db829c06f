package tarea

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tablero/internal/cli"
	"github.com/thenoetrevino/tablero/internal/models"
	tareaservice "github.com/thenoetrevino/tablero/internal/services/tarea"
)

// MoveCmd returns the tarea move subcommand
func MoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move <id> <estado>",
		Short: "Mueve una tarea a otro estado",
		Long: `Mueve una tarea a otra columna del tablero.

El estado acepta cualquier combinación de mayúsculas y guiones:
"En progreso", en-progreso y EN_PROGRESO son equivalentes.`,
		Args: cobra.ExactArgs(2),
		RunE: runMove,
	}

	cli.AddOutputFlags(cmd)

	return cmd
}

func runMove(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cliInstance, formatter, err := cli.Prepare(cmd)
	if err != nil {
		return err
	}

	id, err := cli.ParseID(args[0], "el ID de la tarea")
	if err != nil {
		return formatter.Fail(err)
	}
	estado, err := cli.ParseEstado(args[1])
	if err != nil {
		return formatter.Fail(err)
	}

	before, err := cliInstance.Client.GetTarea(ctx, id)
	if err != nil {
		return formatter.Fail(err)
	}

	var tarea *models.Tarea
	if before.Estado == estado {
		tarea = before
	} else {
		tarea, err = cliInstance.Client.UpdateTarea(ctx, id, tareaservice.UpdateTareaRequest{Estado: &estado})
		if err != nil {
			return formatter.Fail(err)
		}
	}

	return formatter.Print(tarea, []int{tarea.ID}, func(w io.Writer) {
		if before.Estado == estado {
			fmt.Fprintf(w, "La tarea %d ya está en %s\n", tarea.ID, estado)
			return
		}
		fmt.Fprintf(w, "✓ \"%s\" movida de %s a %s\n", tarea.Titulo, before.Estado, tarea.Estado)
	})
}
