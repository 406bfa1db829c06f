package tarea

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tablero/internal/cli"
)

// ShowCmd returns the tarea show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Muestra el detalle de una tarea",
		Long:  "Muestra todos los campos de una tarea, su descripción y sus comentarios.",
		Args:  cobra.ExactArgs(1),
		RunE:  runShow,
	}

	cli.AddOutputFlags(cmd)

	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cliInstance, formatter, err := cli.Prepare(cmd)
	if err != nil {
		return err
	}

	id, err := cli.ParseID(args[0], "el ID de la tarea")
	if err != nil {
		return formatter.Fail(err)
	}

	tarea, err := cliInstance.Client.GetTarea(ctx, id)
	if err != nil {
		return formatter.Fail(err)
	}

	return formatter.Print(tarea, []int{tarea.ID}, func(w io.Writer) {
		fmt.Fprintln(w, renderDetalle(tarea))
	})
}
