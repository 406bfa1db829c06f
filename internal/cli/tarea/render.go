package tarea

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/thenoetrevino/tablero/internal/cli/styles"
	"github.com/thenoetrevino/tablero/internal/client"
	"github.com/thenoetrevino/tablero/internal/models"
)

const fechaFormato = "2006-01-02 15:04"

// writeLinea prints the one-line summary used by list
func writeLinea(w io.Writer, t models.Tarea, conEstado bool) {
	responsable := t.Responsable
	if responsable == "" {
		responsable = "sin responsable"
	}
	line := fmt.Sprintf("  [%d] %s · %s · %s", t.ID, t.Titulo, styles.RenderPrioridad(t.Prioridad), responsable)
	if conEstado {
		line += " · " + string(t.Estado)
	}
	fmt.Fprintln(w, line)
}

// writeColumnas prints every board column, empty ones included
func writeColumnas(w io.Writer, cols []client.Columna) {
	for i, col := range cols {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, styles.TitleStyle.Render(fmt.Sprintf("%s (%d)", col.Estado, len(col.Tareas))))
		if len(col.Tareas) == 0 {
			fmt.Fprintln(w, styles.SubtitleStyle.Render("  Sin tareas"))
			continue
		}
		for _, t := range col.Tareas {
			writeLinea(w, t, false)
		}
	}
}

// renderDetalle builds the card shown by show
func renderDetalle(t *models.Tarea) string {
	var content strings.Builder

	content.WriteString(styles.TitleStyle.Render(fmt.Sprintf("#%d: %s", t.ID, t.Titulo)))
	content.WriteString("\n\n")

	field := func(label, value string) {
		content.WriteString(styles.LabelStyle.Render(label) + " " + styles.ValueStyle.Render(value) + "\n")
	}

	field("Estado:", string(t.Estado))
	content.WriteString(styles.LabelStyle.Render("Prioridad:") + " " + styles.RenderPrioridad(t.Prioridad) + "\n")
	field("Responsable:", t.Responsable)
	field("Creada:", t.FechaCreacion.Local().Format(fechaFormato))
	field("Actualizada:", t.FechaActualizacion.Local().Format(fechaFormato))
	if t.FechaVencimiento != nil {
		field("Vence:", t.FechaVencimiento.Local().Format(time.DateOnly))
	}
	if len(t.Etiquetas) > 0 {
		field("Etiquetas:", strings.Join(t.Etiquetas, ", "))
	}
	field("Tiempo:", formatTiempo(t))

	content.WriteString(styles.SectionStyle.Render("Descripción"))
	content.WriteString("\n")
	for _, line := range strings.Split(t.Descripcion, "\n") {
		content.WriteString("  " + line + "\n")
	}

	content.WriteString(styles.SectionStyle.Render(fmt.Sprintf("Comentarios (%d)", len(t.Comentarios))))
	content.WriteString("\n")
	if len(t.Comentarios) == 0 {
		content.WriteString(styles.SubtitleStyle.Render("  Sin comentarios") + "\n")
	}
	for _, c := range t.Comentarios {
		header := fmt.Sprintf("  [%d] %s · %s", c.ID, c.Autor, c.FechaCreacion.Local().Format(fechaFormato))
		if c.Tipo != "" && c.Tipo != models.TipoComentarioComentario {
			header += " · " + string(c.Tipo)
		}
		content.WriteString(styles.SubtitleStyle.Render(header) + "\n")
		content.WriteString("    " + c.Contenido + "\n")
	}

	return styles.RenderCard(strings.TrimRight(content.String(), "\n"))
}

// formatTiempo renders worked over estimated hours, e.g. "3h / 8h"
func formatTiempo(t *models.Tarea) string {
	trabajado := formatHoras(t.TiempoTrabajado)
	if t.TiempoEstimado == nil {
		return trabajado + " trabajadas"
	}
	return trabajado + " / " + formatHoras(*t.TiempoEstimado)
}

func formatHoras(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64) + "h"
}
