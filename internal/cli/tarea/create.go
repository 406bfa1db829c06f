package tarea

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tablero/internal/cli"
	tareaservice "github.com/thenoetrevino/tablero/internal/services/tarea"
)

// CreateCmd returns the tarea create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Crea una tarea",
		Long: `Crea una tarea. El servidor valida los campos obligatorios.

Ejemplos:
  # Salida legible
  tablero tarea create --titulo="Login" --descripcion="JWT" --responsable="Ana García"

  # JSON para agentes
  tablero tarea create --titulo="Login" --descripcion="JWT" --responsable="Ana García" --json

  # Solo el ID, para capturarlo en bash
  ID=$(tablero tarea create --titulo="Login" --descripcion=- --responsable="Ana García" --quiet < notas.md)

  # Todos los campos
  tablero tarea create \
    --titulo="Migrar a Postgres" \
    --descripcion="Mover los datos de SQLite" \
    --responsable="Ana García" \
    --estado="En progreso" \
    --prioridad=alta \
    --etiquetas=backend,datos \
    --vence=2025-03-01 \
    --estimado=12
`,
		Args: cobra.NoArgs,
		RunE: runCreate,
	}

	cmd.Flags().String("titulo", "", "Título de la tarea")
	cmd.Flags().String("descripcion", "", "Descripción (usa - para leer stdin)")
	cmd.Flags().String("responsable", "", "Nombre del responsable")
	cmd.Flags().String("estado", "", "Estado inicial (por defecto Creada)")
	cmd.Flags().String("prioridad", "", "Prioridad: baja, media, alta, critica (por defecto media)")
	cmd.Flags().String("etiquetas", "", "Etiquetas separadas por comas")
	cmd.Flags().String("vence", "", "Fecha de vencimiento AAAA-MM-DD")
	cmd.Flags().String("estimado", "", "Horas estimadas")

	cli.AddOutputFlags(cmd)

	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cliInstance, formatter, err := cli.Prepare(cmd)
	if err != nil {
		return err
	}

	req, err := createRequest(cmd)
	if err != nil {
		return formatter.Fail(err)
	}

	tarea, err := cliInstance.Client.CreateTarea(ctx, req)
	if err != nil {
		return formatter.Fail(err)
	}

	return formatter.Print(tarea, []int{tarea.ID}, func(w io.Writer) {
		fmt.Fprintf(w, "✓ Tarea '%s' creada (ID: %d)\n", tarea.Titulo, tarea.ID)
		fmt.Fprintf(w, "  Estado: %s\n", tarea.Estado)
		fmt.Fprintf(w, "  Prioridad: %s\n", tarea.Prioridad)
		fmt.Fprintf(w, "  Responsable: %s\n", tarea.Responsable)
	})
}

// createRequest reads the create flags; unset flags stay zero so the
// server applies its defaults
func createRequest(cmd *cobra.Command) (tareaservice.CreateTareaRequest, error) {
	flags := cmd.Flags()
	var req tareaservice.CreateTareaRequest

	req.Titulo, _ = flags.GetString("titulo")
	req.Responsable, _ = flags.GetString("responsable")

	descripcion, _ := flags.GetString("descripcion")
	text, err := cli.ReadText(descripcion, cmd.InOrStdin())
	if err != nil {
		return req, err
	}
	req.Descripcion = text

	if v, _ := flags.GetString("estado"); v != "" {
		if req.Estado, err = cli.ParseEstado(v); err != nil {
			return req, err
		}
	}
	if v, _ := flags.GetString("prioridad"); v != "" {
		if req.Prioridad, err = cli.ParsePrioridad(v); err != nil {
			return req, err
		}
	}
	if v, _ := flags.GetString("etiquetas"); v != "" {
		req.Etiquetas = cli.ParseEtiquetas(v)
	}
	if v, _ := flags.GetString("vence"); v != "" {
		fecha, err := cli.ParseFecha(v)
		if err != nil {
			return req, err
		}
		req.FechaVencimiento = &fecha
	}
	if v, _ := flags.GetString("estimado"); v != "" {
		horas, err := cli.ParseHoras(v)
		if err != nil {
			return req, err
		}
		req.TiempoEstimado = &horas
	}

	return req, nil
}
