package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/thenoetrevino/tablero/internal/models"
	"github.com/thenoetrevino/tablero/internal/tui/theme"
)

// TaskCardHeight is the fixed height of the task card, borders included
const TaskCardHeight = 5

// RenderTask renders a single task as a card
//
//	┏━━━━━━━━━━━━━━━━━━━━━┓
//	┃ {Titulo}            ┃
//	┃ prioridad │ persona ┃
//	┃ #etiqueta #otra     ┃
//	┗━━━━━━━━━━━━━━━━━━━━━┛
//
// width is the outer width of the card.
func RenderTask(tarea models.Tarea, selected bool, width int) string {
	bg := theme.TaskBg
	border := theme.TaskBg
	if selected {
		bg = theme.SelectedBg
		border = theme.SelectedBorder
	}
	inner := max(width-2, 8)

	content := strings.Join([]string{
		renderTitulo(tarea, inner),
		renderMetadata(tarea, bg),
		renderEtiquetas(tarea.Etiquetas, bg, inner),
	}, "\n")

	return TaskStyle.
		Width(width).
		BorderForeground(lipgloss.Color(border)).
		BorderBackground(lipgloss.Color(bg)).
		Background(lipgloss.Color(bg)).
		Render(content)
}

func renderTitulo(tarea models.Tarea, width int) string {
	return lipgloss.NewStyle().
		Bold(true).
		Render(" " + Truncate(tarea.Titulo, width-1))
}

// renderMetadata renders prioridad and responsable on one line, separated by │
func renderMetadata(tarea models.Tarea, bg string) string {
	prioridad := lipgloss.NewStyle().
		Foreground(lipgloss.Color(PriorityColor(tarea.Prioridad))).
		Background(lipgloss.Color(bg)).
		Render(string(tarea.Prioridad))

	subtle := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Subtle)).Background(lipgloss.Color(bg))
	responsable := tarea.Responsable
	if responsable == "" {
		responsable = "sin responsable"
	}

	return " " + prioridad + subtle.Render(" │ ") + subtle.Render(responsable)
}

func renderEtiquetas(etiquetas []string, bg string, width int) string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Highlight)).Background(lipgloss.Color(bg))
	if len(etiquetas) == 0 {
		return " " + style.Italic(true).Foreground(lipgloss.Color(theme.Subtle)).Render("sin etiquetas")
	}
	tags := make([]string, len(etiquetas))
	for i, e := range etiquetas {
		tags[i] = "#" + e
	}
	return " " + style.Render(Truncate(strings.Join(tags, " "), width-1))
}

// Truncate shortens s to width cells, marking the cut with an ellipsis
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
