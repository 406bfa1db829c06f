package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/thenoetrevino/tablero/internal/models"
	"github.com/thenoetrevino/tablero/internal/tui/theme"
)

// RenderComment renders one comment as
//
//	autor · 02/01/2006 15:04
//	contenido
func RenderComment(c models.Comentario, width int) string {
	meta := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Highlight)).Bold(true).Render(c.Autor)
	meta += SubtleStyle.Render(" · " + c.FechaCreacion.Local().Format("02/01/2006 15:04"))
	if c.Tipo != "" && c.Tipo != models.TipoComentarioComentario {
		meta += SubtleStyle.Render(" · " + string(c.Tipo))
	}

	body := lipgloss.NewStyle().Width(max(width, 10)).Render(c.Contenido)
	return meta + "\n" + body
}

// RenderComments renders every comment, oldest first
func RenderComments(comentarios []models.Comentario, width int) string {
	if len(comentarios) == 0 {
		return SubtleStyle.Render("Sin comentarios")
	}
	parts := make([]string, len(comentarios))
	for i, c := range comentarios {
		parts[i] = RenderComment(c, width)
	}
	return strings.Join(parts, "\n\n")
}
