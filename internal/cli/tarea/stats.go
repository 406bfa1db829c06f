package tarea

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tablero/internal/cli"
	"github.com/thenoetrevino/tablero/internal/cli/styles"
	"github.com/thenoetrevino/tablero/internal/models"
)

// StatsCmd returns the tarea stats subcommand
func StatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Cuenta las tareas por estado y por responsable",
		Args:  cobra.NoArgs,
		RunE:  runStats,
	}

	cli.AddOutputFlags(cmd)

	return cmd
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cliInstance, formatter, err := cli.Prepare(cmd)
	if err != nil {
		return err
	}

	stats, err := cliInstance.Client.Estadisticas(ctx)
	if err != nil {
		return formatter.Fail(err)
	}

	return formatter.Print(stats, nil, func(w io.Writer) {
		writeEstadisticas(w, stats)
	})
}

// writeEstadisticas prints the estado counts in board order, then the
// responsable counts by name
func writeEstadisticas(w io.Writer, stats models.Estadisticas) {
	total := 0
	fmt.Fprintln(w, styles.SectionStyle.Render("Por estado"))
	for _, e := range models.Estados {
		n := stats[string(e)]
		total += n
		fmt.Fprintf(w, "  %-12s %d\n", e, n)
	}
	fmt.Fprintf(w, "  %-12s %d\n", "Total", total)

	prefix := models.ResponsableStatKey("")
	var nombres []string
	for key := range stats {
		if nombre, ok := strings.CutPrefix(key, prefix); ok {
			nombres = append(nombres, nombre)
		}
	}
	if len(nombres) == 0 {
		return
	}
	sort.Strings(nombres)

	fmt.Fprintln(w, styles.SectionStyle.Render("Por responsable"))
	for _, nombre := range nombres {
		fmt.Fprintf(w, "  %-20s %d\n", nombre, stats[models.ResponsableStatKey(nombre)])
	}
}
