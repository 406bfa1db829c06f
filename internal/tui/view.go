package tui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/thenoetrevino/tablero/internal/models"
	"github.com/thenoetrevino/tablero/internal/tui/components"
	"github.com/thenoetrevino/tablero/internal/tui/layers"
	"github.com/thenoetrevino/tablero/internal/tui/state"
	"github.com/thenoetrevino/tablero/internal/tui/theme"
)

// View renders the current state of the application.
// Required by tea.Model interface
func (m Model) View() tea.View {
	var view tea.View
	view.AltScreen = true

	// Wait for terminal size to be initialized
	if m.ui.Width() == 0 {
		view.Content = "Cargando..."
		return view
	}

	stack := []*lipgloss.Layer{lipgloss.NewLayer(m.viewBoard())}
	if overlay := m.overlay(); overlay != nil {
		stack = append(stack, overlay)
	}
	view.Content = lipgloss.NewCanvas(stack...).Render()
	return view
}

// overlay returns the modal layer of the current mode, if any
func (m Model) overlay() *lipgloss.Layer {
	var content string
	switch m.ui.Mode() {
	case state.DetailMode, state.CommentMode:
		content = m.viewDetail()
	case state.DeleteConfirmMode:
		content = m.viewDeleteConfirm()
	case state.NotificationsMode:
		content = m.viewNotificaciones()
	case state.HelpMode:
		content = m.viewHelp()
	}
	return layers.CreateCenteredLayer(content, m.ui.Width(), m.ui.Height())
}

// ============================================================================
// BOARD
// ============================================================================

func (m Model) viewBoard() string {
	st := m.tareas.State()
	cols := m.Columns()

	colWidth := max(m.ui.Width()/len(cols), 22)
	height := m.ui.ContentHeight()

	rendered := make([]string, len(cols))
	for i, col := range cols {
		selected := i == m.ui.SelectedColumn()
		rendered[i] = components.RenderColumn(components.ColumnProps{
			Estado:       col.Estado,
			Tareas:       col.Tareas,
			Selected:     selected,
			SelectedTask: m.ui.SelectedTask(),
			Width:        colWidth,
			Height:       height,
			ScrollOffset: m.ui.ScrollOffset(i),
		})
	}

	footer := components.RenderStatusBar(components.StatusBarProps{
		Width:   m.ui.Width(),
		Loading: st.Loading,
		Error:   st.Error,
		Filtro:  m.filtro,
	})
	if m.ui.Mode() == state.SearchMode {
		footer = m.search.View()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewHeader(len(st.Items)),
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, rendered...),
		footer,
	)
}

func (m Model) viewHeader(total int) string {
	parts := []string{
		components.TitleStyle.Render("Tablero Kanban"),
		components.SubtleStyle.Render(fmt.Sprintf("%d tareas", total)),
	}
	if badge := components.RenderBadge(m.tareas.Registro().NoLeidas()); badge != "" {
		parts = append(parts, badge)
	}
	if m.banner != nil {
		parts = append(parts, components.RenderNotice(*m.banner))
	}
	return strings.Join(parts, "  ")
}

// ============================================================================
// DETAIL
// ============================================================================

// detailSize returns the inner width and height of the detail overlay
func (m Model) detailSize() (int, int) {
	return max(m.ui.Width()*4/5-6, 20), max(m.ui.Height()*4/5-8, 5)
}

// resizeDetail fits the detail viewport to the terminal
func (m Model) resizeDetail() Model {
	w, h := m.detailSize()
	m.detail.SetWidth(w)
	m.detail.SetHeight(h)
	return m
}

// refreshDetail re-renders the open task, leaving the detail when the
// task is gone
func (m Model) refreshDetail() Model {
	if m.ui.Mode() != state.DetailMode && m.ui.Mode() != state.CommentMode {
		return m
	}
	tarea, ok := m.tareas.Find(m.detailID)
	if !ok {
		m.ui.SetMode(state.NormalMode)
		m.detailID = 0
		return m.info("La tarea ya no existe")
	}
	w, _ := m.detailSize()
	m.detail.SetContent(m.renderTarea(tarea, w))
	return m
}

func (m Model) renderTarea(t models.Tarea, width int) string {
	label := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Subtle)).Width(14)
	row := func(k, v string) string { return label.Render(k) + v }

	prioridad := lipgloss.NewStyle().
		Foreground(lipgloss.Color(components.PriorityColor(t.Prioridad))).
		Render(string(t.Prioridad))

	rows := []string{
		row("Estado", string(t.Estado)),
		row("Prioridad", prioridad),
		row("Responsable", orDash(t.Responsable)),
		row("Creada", t.FechaCreacion.Local().Format("02/01/2006 15:04")),
	}
	if t.FechaVencimiento != nil {
		rows = append(rows, row("Vence", t.FechaVencimiento.Local().Format("02/01/2006")))
	}
	if t.TiempoEstimado != nil {
		rows = append(rows, row("Estimado", fmt.Sprintf("%.1fh", *t.TiempoEstimado)))
	}
	rows = append(rows, row("Trabajado", fmt.Sprintf("%.1fh", t.TiempoTrabajado)))
	if len(t.Etiquetas) > 0 {
		rows = append(rows, row("Etiquetas", "#"+strings.Join(t.Etiquetas, " #")))
	}

	sections := []string{
		components.TitleStyle.Render(fmt.Sprintf("#%d %s", t.ID, t.Titulo)),
		strings.Join(rows, "\n"),
		components.RenderDescription(components.DescriptionProps{Description: t.Descripcion, Width: width}),
		components.TitleStyle.Render(fmt.Sprintf("Comentarios (%d)", len(t.Comentarios))),
		components.RenderComments(t.Comentarios, width),
	}

	if actividad := m.tareas.Registro().PorTarea(t.ID); len(actividad) > 0 {
		lines := make([]string, 0, len(actividad))
		for _, a := range actividad {
			lines = append(lines, components.SubtleStyle.Render(a.Fecha.Local().Format("15:04"))+" "+a.Descripcion)
		}
		sections = append(sections, components.TitleStyle.Render("Actividad"), strings.Join(lines, "\n"))
	}

	return strings.Join(sections, "\n\n")
}

func (m Model) viewDetail() string {
	var hint string
	if m.ui.Mode() == state.CommentMode {
		hint = m.comment.View() + "\n" + components.SubtleStyle.Render("enter: enviar  esc: cancelar")
	} else {
		km := m.cfg.KeyMappings
		hint = components.SubtleStyle.Render(fmt.Sprintf(
			"c: comentar  %s/%s: mover  ↑/↓: desplazar  esc: cerrar", km.MoveTaskLeft, km.MoveTaskRight))
	}

	w, _ := m.detailSize()
	return components.DetailBoxStyle.
		Width(w + 4).
		Render(m.detail.View() + "\n\n" + hint)
}

// ============================================================================
// DIALOGS
// ============================================================================

func (m Model) viewDeleteConfirm() string {
	tarea, ok := m.CurrentTask()
	if !ok {
		return ""
	}
	msg := fmt.Sprintf("¿Eliminar la tarea %q y sus comentarios?", tarea.Titulo)
	return components.DeleteConfirmBoxStyle.Render(msg + "\n\n" + components.SubtleStyle.Render("y: eliminar  n: cancelar"))
}

func (m Model) viewNotificaciones() string {
	width := max(m.ui.Width()/2, 40)
	body := components.RenderNotificaciones(m.tareas.Registro().Notificaciones(), width)
	hint := components.SubtleStyle.Render("x: limpiar  esc: cerrar")
	return components.PanelBoxStyle.Render(body + "\n\n" + hint)
}

func (m Model) viewHelp() string {
	km := m.cfg.KeyMappings
	bindings := [][2]string{
		{km.PrevColumn + "/" + km.NextColumn + " ←/→", "cambiar de columna"},
		{km.PrevTask + "/" + km.NextTask + " ↑/↓", "cambiar de tarea"},
		{km.MoveTaskLeft + "/" + km.MoveTaskRight, "mover la tarea de estado"},
		{km.ViewTask, "ver detalle y comentarios"},
		{km.DeleteTask, "eliminar tarea"},
		{"/", "buscar"},
		{"f", "filtrar por responsable"},
		{"p", "filtrar por prioridad"},
		{"esc", "quitar filtros"},
		{km.Notifications, "notificaciones"},
		{km.Reload, "recargar"},
		{km.Quit, "salir"},
	}

	key := lipgloss.NewStyle().Bold(true).Width(16)
	lines := make([]string, len(bindings))
	for i, b := range bindings {
		lines[i] = key.Render(b[0]) + b[1]
	}
	return components.HelpBoxStyle.Render(components.TitleStyle.Render("Atajos") + "\n\n" + strings.Join(lines, "\n"))
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}
