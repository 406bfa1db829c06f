package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/thenoetrevino/tablero/internal/models"
	"github.com/thenoetrevino/tablero/internal/tui/theme"
)

// columnOverhead is the border, padding, header and top indicator lines
const columnOverhead = 6

// VisibleTasks returns how many cards fit in a column of height
func VisibleTasks(height int) int {
	return max((height-columnOverhead)/TaskCardHeight, 1)
}

// ColumnProps describes one rendered column
type ColumnProps struct {
	Estado   models.Estado
	Tareas   []models.Tarea
	Selected bool
	// SelectedTask is the selected index, only read when Selected
	SelectedTask int
	Width        int
	Height       int
	ScrollOffset int
}

// RenderColumn renders a column with its title, count and visible tasks
//
// Layout:
//
//	{Estado} ({count})
//	▲ (if scrolled down)
//	{Task 1}
//	{Task 2}
//	...
//	▼ (if more tasks below)
func RenderColumn(p ColumnProps) string {
	header := TitleStyle.Render(fmt.Sprintf("%s (%d)", p.Estado, len(p.Tareas)))
	cardWidth := max(p.Width-4, 10)

	var b strings.Builder
	b.WriteString(header + "\n")

	if len(p.Tareas) == 0 {
		b.WriteString("\n" + SubtleStyle.Render("Sin tareas"))
	} else {
		offset := min(max(p.ScrollOffset, 0), len(p.Tareas)-1)
		end := min(offset+VisibleTasks(p.Height), len(p.Tareas))

		if offset > 0 {
			b.WriteString(IndicatorStyle.Width(cardWidth).Render("▲ más arriba") + "\n")
		} else {
			b.WriteString("\n")
		}

		for i, tarea := range p.Tareas[offset:end] {
			selected := p.Selected && offset+i == p.SelectedTask
			b.WriteString(RenderTask(tarea, selected, cardWidth) + "\n")
		}

		if end < len(p.Tareas) {
			b.WriteString(IndicatorStyle.Width(cardWidth).Render("▼ más abajo"))
		}
	}

	style := ColumnStyle.Width(p.Width)
	if p.Selected {
		style = style.BorderForeground(lipgloss.Color(theme.SelectedBorder))
	}
	if p.Height > 0 {
		style = style.Height(p.Height - 2)
	}
	return style.Render(b.String())
}
