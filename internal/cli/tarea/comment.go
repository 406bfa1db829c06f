package tarea

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tablero/internal/cli"
	"github.com/thenoetrevino/tablero/internal/models"
	tareaservice "github.com/thenoetrevino/tablero/internal/services/tarea"
)

// CommentCmd returns the tarea comment subcommand
func CommentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "comment <id> <texto...>",
		Short: "Comenta una tarea",
		Long: `Añade un comentario a una tarea. El autor es el usuario configurado
(client.usuario) salvo que se indique --autor. Usa - como texto para leer stdin.

Con --delete el argumento es el ID de un comentario, que se elimina.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runComment,
	}

	cmd.Flags().String("autor", "", "Autor del comentario")
	cmd.Flags().String("tipo", "", "Tipo: comentario, actualizacion, cambio_estado")
	cmd.Flags().Bool("delete", false, "Elimina el comentario con el ID indicado")

	cli.AddOutputFlags(cmd)

	return cmd
}

func runComment(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cliInstance, formatter, err := cli.Prepare(cmd)
	if err != nil {
		return err
	}

	if del, _ := cmd.Flags().GetBool("delete"); del {
		id, err := cli.ParseID(args[0], "el ID del comentario")
		if err != nil {
			return formatter.Fail(err)
		}
		if err := cliInstance.Client.DeleteComentario(ctx, id); err != nil {
			return formatter.Fail(err)
		}
		return formatter.Print(map[string]any{"id": id, "eliminado": true}, []int{id}, func(w io.Writer) {
			fmt.Fprintf(w, "✓ Comentario %d eliminado\n", id)
		})
	}

	if len(args) < 2 {
		return formatter.Fail(cli.UsageError("falta el texto del comentario"))
	}
	tareaID, err := cli.ParseID(args[0], "el ID de la tarea")
	if err != nil {
		return formatter.Fail(err)
	}

	contenido, err := cli.ReadText(strings.Join(args[1:], " "), cmd.InOrStdin())
	if err != nil {
		return formatter.Fail(err)
	}

	autor, _ := cmd.Flags().GetString("autor")
	if autor == "" {
		autor = cliInstance.Usuario()
	}
	tipo, _ := cmd.Flags().GetString("tipo")

	comentario, err := cliInstance.Client.AddComentario(ctx, tareaID, tareaservice.CreateComentarioRequest{
		Autor:     autor,
		Contenido: contenido,
		Tipo:      models.TipoComentario(tipo),
	})
	if err != nil {
		return formatter.Fail(err)
	}

	return formatter.Print(comentario, []int{comentario.ID}, func(w io.Writer) {
		fmt.Fprintf(w, "✓ Comentario %d añadido a la tarea %d por %s\n", comentario.ID, tareaID, comentario.Autor)
	})
}
