package tui

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/thenoetrevino/tablero/internal/client"
	"github.com/thenoetrevino/tablero/internal/tui/state"
)

// Update handles all messages and updates the model.
// Required by tea.Model interface
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ui.SetWidth(msg.Width)
		m.ui.SetHeight(msg.Height)
		m = m.resizeDetail()
		m.clampSelection()
		return m, nil

	case ChangedMsg:
		m.clampSelection()
		m = m.refreshDetail()
		return m, waitForChange(m.changes)

	case NoticeMsg:
		n := msg.Notice
		m.banner = &n
		return m, waitForNotice(m.notices)

	case OpDoneMsg:
		return m.handleOpDone(msg), nil

	case tea.KeyPressMsg:
		return m.handleKey(msg)
	}

	// cursor blink and other input housekeeping
	var cmd tea.Cmd
	switch m.ui.Mode() {
	case state.SearchMode:
		m.search, cmd = m.search.Update(msg)
	case state.CommentMode:
		m.comment, cmd = m.comment.Update(msg)
	}
	return m, cmd
}

func (m Model) handleOpDone(msg OpDoneMsg) Model {
	if msg.Err != nil {
		m.logger.Debug("board operation failed", "op", msg.Op, "id", msg.ID, "error", msg.Err)
		return m
	}
	switch msg.Op {
	case "move":
		// the selection follows the moved task
		m.selectTask(msg.ID)
	case "delete":
		m.clampSelection()
	case "comment":
		m = m.refreshDetail()
		m.detail.GotoBottom()
	}
	return m
}

// handleKey dispatches key presses by mode
func (m Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.ui.Mode() {
	case state.NormalMode:
		return m.handleNormalMode(msg)
	case state.DetailMode:
		return m.handleDetailMode(msg)
	case state.CommentMode:
		return m.handleCommentMode(msg)
	case state.SearchMode:
		return m.handleSearchMode(msg)
	case state.DeleteConfirmMode:
		return m.handleDeleteConfirm(msg)
	case state.NotificationsMode:
		return m.handleNotificationsMode(msg)
	case state.HelpMode:
		m.ui.SetMode(state.NormalMode)
		return m, nil
	}
	return m, nil
}

// ============================================================================
// DETAIL AND COMMENTS
// ============================================================================

func (m Model) handleDetailMode(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	km := m.cfg.KeyMappings

	switch msg.String() {
	case "esc", km.Quit, km.ViewTask:
		m.ui.SetMode(state.NormalMode)
		m.detailID = 0
		return m, nil
	case "c":
		m.ui.SetMode(state.CommentMode)
		m.comment.Reset()
		cmd := m.comment.Focus()
		return m, cmd
	case km.MoveTaskLeft:
		return m, m.moveDetail(-1)
	case km.MoveTaskRight:
		return m, m.moveDetail(1)
	}

	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	return m, cmd
}

func (m Model) handleCommentMode(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.comment.Blur()
		m.comment.Reset()
		m.ui.SetMode(state.DetailMode)
		return m, nil
	case "enter":
		contenido := strings.TrimSpace(m.comment.Value())
		if contenido == "" {
			return m, nil
		}
		m.comment.Blur()
		m.comment.Reset()
		m.ui.SetMode(state.DetailMode)
		return m, m.commentCmd(m.detailID, contenido)
	}

	var cmd tea.Cmd
	m.comment, cmd = m.comment.Update(msg)
	return m, cmd
}

// moveDetail moves the open task one column left (-1) or right (+1)
func (m Model) moveDetail(delta int) tea.Cmd {
	tarea, ok := m.tareas.Find(m.detailID)
	if !ok {
		return nil
	}
	estado, ok := neighbour(tarea.Estado, delta)
	if !ok {
		return nil
	}
	return m.moveCmd(tarea.ID, estado)
}

// ============================================================================
// SEARCH
// ============================================================================

func (m Model) handleSearchMode(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.search.Blur()
		m.search.Reset()
		m.filtro.Texto = ""
		m.ui.SetMode(state.NormalMode)
		m.clampSelection()
		return m, nil
	case "enter":
		m.search.Blur()
		m.ui.SetMode(state.NormalMode)
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.filtro.Texto = m.search.Value()
	m.clampSelection()
	return m, cmd
}

// ============================================================================
// CONFIRMATIONS AND PANELS
// ============================================================================

func (m Model) handleDeleteConfirm(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.ui.SetMode(state.NormalMode)
		tarea, ok := m.CurrentTask()
		if !ok {
			return m, nil
		}
		return m, m.deleteCmd(tarea.ID)
	case "n", "N", "esc":
		m.ui.SetMode(state.NormalMode)
	}
	return m, nil
}

func (m Model) handleNotificationsMode(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", m.cfg.KeyMappings.Notifications, m.cfg.KeyMappings.Quit:
		// closing the panel acknowledges what it showed
		m.tareas.Registro().MarcarTodasLeidas()
		m.ui.SetMode(state.NormalMode)
	case "x":
		m.tareas.Registro().Limpiar()
	}
	return m, nil
}

// info shows a transient message without recording it
func (m Model) info(mensaje string) Model {
	m.banner = &client.Notice{Nivel: client.NivelInfo, Mensaje: mensaje}
	return m
}
