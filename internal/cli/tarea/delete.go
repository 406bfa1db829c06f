package tarea

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tablero/internal/cli"
)

// DeleteCmd returns the tarea delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Elimina una tarea y sus comentarios",
		Args:  cobra.ExactArgs(1),
		RunE:  runDelete,
	}

	cmd.Flags().BoolP("force", "f", false, "No pedir confirmación")

	cli.AddOutputFlags(cmd)

	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
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

	// agents pass --json or --quiet and never get prompted
	force, _ := cmd.Flags().GetBool("force")
	if !force && !formatter.JSON && !formatter.Quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "¿Eliminar la tarea %q y sus %d comentarios? [s/N]: ", tarea.Titulo, len(tarea.Comentarios))
		if !confirmed(cmd.InOrStdin()) {
			fmt.Fprintln(cmd.OutOrStdout(), "Cancelado")
			return nil
		}
	}

	if err := cliInstance.Client.DeleteTarea(ctx, id); err != nil {
		return formatter.Fail(err)
	}

	return formatter.Print(map[string]any{"id": id, "eliminada": true}, []int{id}, func(w io.Writer) {
		fmt.Fprintf(w, "✓ Tarea %d eliminada\n", id)
	})
}

func confirmed(in io.Reader) bool {
	answer, _ := bufio.NewReader(in).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "s", "si", "sí", "y", "yes":
		return true
	}
	return false
}
