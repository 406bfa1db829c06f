package tui

import (
	"slices"

	tea "charm.land/bubbletea/v2"

	"github.com/thenoetrevino/tablero/internal/client"
	"github.com/thenoetrevino/tablero/internal/models"
	"github.com/thenoetrevino/tablero/internal/tui/components"
	"github.com/thenoetrevino/tablero/internal/tui/state"
)

// ============================================================================
// NORMAL MODE HANDLERS
// ============================================================================

// handleNormalMode dispatches key events in NormalMode to specific handlers.
func (m Model) handleNormalMode(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	m.banner = nil

	km := m.cfg.KeyMappings

	switch msg.String() {
	case km.Quit:
		return m, tea.Quit
	case km.ShowHelp:
		m.ui.SetMode(state.HelpMode)
		return m, nil
	case km.PrevColumn, "left":
		return m.handleNavigateLeft(), nil
	case km.NextColumn, "right":
		return m.handleNavigateRight(), nil
	case km.PrevTask, "up":
		return m.handleNavigateUp(), nil
	case km.NextTask, "down":
		return m.handleNavigateDown(), nil
	case km.MoveTaskLeft:
		return m.handleMoveTask(-1)
	case km.MoveTaskRight:
		return m.handleMoveTask(1)
	case km.ViewTask:
		return m.handleViewTask(), nil
	case km.DeleteTask:
		if _, ok := m.CurrentTask(); ok {
			m.ui.SetMode(state.DeleteConfirmMode)
		}
		return m, nil
	case km.Notifications:
		m.ui.SetMode(state.NotificationsMode)
		return m, nil
	case km.Reload:
		return m.info("Recargando…"), m.reloadCmd()
	case "/":
		m.ui.SetMode(state.SearchMode)
		m.search.SetValue(m.filtro.Texto)
		cmd := m.search.Focus()
		return m, cmd
	case "f":
		return m.cycleResponsable(), nil
	case "p":
		return m.cyclePrioridad(), nil
	case "esc":
		if m.filtro.Activo() {
			m.filtro = client.Filtro{}
			m.search.Reset()
			m.clampSelection()
		}
		return m, nil
	}

	return m, nil
}

// handleNavigateLeft moves selection to the previous column.
func (m Model) handleNavigateLeft() Model {
	if m.ui.SelectedColumn() == 0 {
		return m.info("Ya estás en la primera columna")
	}
	m.ui.SetSelectedColumn(m.ui.SelectedColumn() - 1)
	m.ui.SetSelectedTask(0)
	m.clampSelection()
	return m
}

// handleNavigateRight moves selection to the next column.
func (m Model) handleNavigateRight() Model {
	if m.ui.SelectedColumn() >= len(models.Estados)-1 {
		return m.info("Ya estás en la última columna")
	}
	m.ui.SetSelectedColumn(m.ui.SelectedColumn() + 1)
	m.ui.SetSelectedTask(0)
	m.clampSelection()
	return m
}

// handleNavigateUp moves selection to the previous task.
func (m Model) handleNavigateUp() Model {
	if m.ui.SelectedTask() > 0 {
		m.ui.SetSelectedTask(m.ui.SelectedTask() - 1)
		m.ui.EnsureTaskVisible(components.VisibleTasks(m.ui.ContentHeight()))
	}
	return m
}

// handleNavigateDown moves selection to the next task.
func (m Model) handleNavigateDown() Model {
	cols := m.Columns()
	n := len(cols[m.ui.SelectedColumn()].Tareas)
	if m.ui.SelectedTask() < n-1 {
		m.ui.SetSelectedTask(m.ui.SelectedTask() + 1)
		m.ui.EnsureTaskVisible(components.VisibleTasks(m.ui.ContentHeight()))
	}
	return m
}

// handleMoveTask moves the selected task one estado left (-1) or right (+1)
func (m Model) handleMoveTask(delta int) (tea.Model, tea.Cmd) {
	tarea, ok := m.CurrentTask()
	if !ok {
		return m, nil
	}
	estado, ok := neighbour(tarea.Estado, delta)
	if !ok {
		if delta < 0 {
			return m.info("La tarea ya está en la primera columna"), nil
		}
		return m.info("La tarea ya está en la última columna"), nil
	}
	return m, m.moveCmd(tarea.ID, estado)
}

// handleViewTask opens the detail pane of the selected task.
func (m Model) handleViewTask() Model {
	tarea, ok := m.CurrentTask()
	if !ok {
		return m
	}
	m.detailID = tarea.ID
	m.ui.SetMode(state.DetailMode)
	m = m.resizeDetail()
	m = m.refreshDetail()
	m.detail.GotoTop()
	return m
}

// cycleResponsable steps the responsable filter through the active
// responsables, then back to everyone
func (m Model) cycleResponsable() Model {
	if m.responsables == nil {
		return m
	}
	nombres := m.responsables.Nombres()
	if len(nombres) == 0 {
		return m.info("No hay responsables activos")
	}
	m.filtro.Responsable = next(nombres, m.filtro.Responsable)
	m.clampSelection()
	return m
}

// cyclePrioridad steps the prioridad filter through every prioridad
func (m Model) cyclePrioridad() Model {
	m.filtro.Prioridad = next(models.Prioridades, m.filtro.Prioridad)
	m.clampSelection()
	return m
}

// next returns the value after current, or the zero value after the last
func next[T comparable](values []T, current T) T {
	var zero T
	if current == zero {
		return values[0]
	}
	i := slices.Index(values, current)
	if i < 0 || i == len(values)-1 {
		return zero
	}
	return values[i+1]
}

// neighbour returns the estado delta columns away from e
func neighbour(e models.Estado, delta int) (models.Estado, bool) {
	i := e.Index() + delta
	if e.Index() < 0 || i < 0 || i >= len(models.Estados) {
		return "", false
	}
	return models.Estados[i], true
}
