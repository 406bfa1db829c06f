package tarea

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tablero/internal/cli"
	tareaservice "github.com/thenoetrevino/tablero/internal/services/tarea"
)

// UpdateCmd returns the tarea update subcommand
func UpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Actualiza los campos de una tarea",
		Long: `Actualiza solo los campos indicados; el resto se conserva.

Ejemplos:
  tablero tarea update 7 --prioridad=critica
  tablero tarea update 7 --trabajado=5.5 --etiquetas=backend,urgente
  tablero tarea update 7 --etiquetas=   # quita todas las etiquetas
  tablero tarea update 7 --vence= --estimado=   # quita la fecha y la estimación`,
		Args: cobra.ExactArgs(1),
		RunE: runUpdate,
	}

	cmd.Flags().String("titulo", "", "Nuevo título")
	cmd.Flags().String("descripcion", "", "Nueva descripción (usa - para leer stdin)")
	cmd.Flags().String("responsable", "", "Nuevo responsable")
	cmd.Flags().String("estado", "", "Nuevo estado")
	cmd.Flags().String("prioridad", "", "Nueva prioridad")
	cmd.Flags().String("etiquetas", "", "Etiquetas separadas por comas (reemplaza las actuales)")
	cmd.Flags().String("vence", "", "Fecha de vencimiento AAAA-MM-DD (vacía la quita)")
	cmd.Flags().String("estimado", "", "Horas estimadas (vacío las quita)")
	cmd.Flags().String("trabajado", "", "Horas trabajadas")

	cli.AddOutputFlags(cmd)

	return cmd
}

func runUpdate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cliInstance, formatter, err := cli.Prepare(cmd)
	if err != nil {
		return err
	}

	id, err := cli.ParseID(args[0], "el ID de la tarea")
	if err != nil {
		return formatter.Fail(err)
	}

	req, changed, err := updateRequest(cmd)
	if err != nil {
		return formatter.Fail(err)
	}
	if !changed {
		return formatter.Fail(cli.UsageError("indica al menos un campo a actualizar"))
	}

	tarea, err := cliInstance.Client.UpdateTarea(ctx, id, req)
	if err != nil {
		return formatter.Fail(err)
	}

	return formatter.Print(tarea, []int{tarea.ID}, func(w io.Writer) {
		fmt.Fprintf(w, "✓ Tarea %d actualizada\n", tarea.ID)
	})
}

// updateRequest builds a partial update from the flags the user set.
// changed is false when no field flag was given.
func updateRequest(cmd *cobra.Command) (tareaservice.UpdateTareaRequest, bool, error) {
	flags := cmd.Flags()
	var req tareaservice.UpdateTareaRequest
	changed := false

	str := func(name string) (string, bool) {
		if !flags.Changed(name) {
			return "", false
		}
		changed = true
		v, _ := flags.GetString(name)
		return v, true
	}

	if v, ok := str("titulo"); ok {
		req.Titulo = &v
	}
	if v, ok := str("responsable"); ok {
		req.Responsable = &v
	}
	if v, ok := str("descripcion"); ok {
		text, err := cli.ReadText(v, cmd.InOrStdin())
		if err != nil {
			return req, changed, err
		}
		req.Descripcion = &text
	}
	if v, ok := str("estado"); ok {
		estado, err := cli.ParseEstado(v)
		if err != nil {
			return req, changed, err
		}
		req.Estado = &estado
	}
	if v, ok := str("prioridad"); ok {
		prioridad, err := cli.ParsePrioridad(v)
		if err != nil {
			return req, changed, err
		}
		req.Prioridad = &prioridad
	}
	if v, ok := str("etiquetas"); ok {
		etiquetas := cli.ParseEtiquetas(v)
		req.Etiquetas = &etiquetas
	}
	if v, ok := str("vence"); ok && strings.TrimSpace(v) == "" {
		req.ClearFechaVencimiento = true
	} else if ok {
		fecha, err := cli.ParseFecha(v)
		if err != nil {
			return req, changed, err
		}
		req.FechaVencimiento = &fecha
	}
	if v, ok := str("estimado"); ok && strings.TrimSpace(v) == "" {
		req.ClearTiempoEstimado = true
	} else if ok {
		horas, err := cli.ParseHoras(v)
		if err != nil {
			return req, changed, err
		}
		req.TiempoEstimado = &horas
	}
	if v, ok := str("trabajado"); ok {
		horas, err := cli.ParseHoras(v)
		if err != nil {
			return req, changed, err
		}
		req.TiempoTrabajado = &horas
	}

	return req, changed, nil
}
