package tarea

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tablero/internal/cli"
	"github.com/thenoetrevino/tablero/internal/client"
	"github.com/thenoetrevino/tablero/internal/models"
)

// ListCmd returns the tarea list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Lista las tareas",
		Long: `Lista las tareas, las más recientes primero.

--responsable busca por coincidencia parcial en el servidor; --buscar y
--prioridad filtran localmente. Con --tablero la salida se agrupa por estado.`,
		Args: cobra.NoArgs,
		RunE: runList,
	}

	cmd.Flags().String("estado", "", "Solo las tareas en este estado")
	cmd.Flags().String("responsable", "", "Solo las tareas cuyo responsable contiene este texto")
	cmd.Flags().String("prioridad", "", "Solo las tareas con esta prioridad")
	cmd.Flags().String("buscar", "", "Texto a buscar en título o descripción")
	cmd.Flags().Bool("tablero", false, "Agrupa la salida por columnas")

	cli.AddOutputFlags(cmd)

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cliInstance, formatter, err := cli.Prepare(cmd)
	if err != nil {
		return err
	}

	estadoFlag, _ := cmd.Flags().GetString("estado")
	responsable, _ := cmd.Flags().GetString("responsable")
	prioridadFlag, _ := cmd.Flags().GetString("prioridad")
	buscar, _ := cmd.Flags().GetString("buscar")
	agrupar, _ := cmd.Flags().GetBool("tablero")

	filtro := client.Filtro{Texto: buscar}
	if estadoFlag != "" {
		if filtro.Estado, err = cli.ParseEstado(estadoFlag); err != nil {
			return formatter.Fail(err)
		}
	}
	if prioridadFlag != "" {
		if filtro.Prioridad, err = cli.ParsePrioridad(prioridadFlag); err != nil {
			return formatter.Fail(err)
		}
	}

	var tareas []models.Tarea
	switch {
	case responsable != "":
		tareas, err = cliInstance.Client.TareasPorResponsable(ctx, responsable)
	case filtro.Estado != "":
		tareas, err = cliInstance.Client.TareasPorEstado(ctx, filtro.Estado)
	default:
		tareas, err = cliInstance.Client.ListTareas(ctx)
	}
	if err != nil {
		return formatter.Fail(err)
	}

	tareas = client.Filtrar(tareas, filtro)

	ids := make([]int, len(tareas))
	for i, t := range tareas {
		ids[i] = t.ID
	}

	return formatter.Print(tareas, ids, func(w io.Writer) {
		if len(tareas) == 0 {
			fmt.Fprintln(w, "No hay tareas")
			return
		}
		if agrupar {
			writeColumnas(w, client.Agrupar(tareas))
			return
		}
		fmt.Fprintf(w, "Se encontraron %d tareas:\n\n", len(tareas))
		for _, t := range tareas {
			writeLinea(w, t, true)
		}
	})
}
