package tui

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/thenoetrevino/tablero/internal/client"
	"github.com/thenoetrevino/tablero/internal/models"
	tareaservice "github.com/thenoetrevino/tablero/internal/services/tarea"
)

// requestTimeout bounds each command's API call
const requestTimeout = 15 * time.Second

// ChangedMsg reports that the task store changed outside Update
type ChangedMsg struct{}

// NoticeMsg carries a new user-facing notice
type NoticeMsg struct {
	Notice client.Notice
}

// OpDoneMsg reports the end of a mutation. Err is already in the store
// state and the notices.
type OpDoneMsg struct {
	Op string
	// ID is the task the operation touched, 0 when none
	ID  int
	Err error
}

// waitForChange blocks until the store signals a change
func waitForChange(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return ChangedMsg{}
	}
}

// waitForNotice blocks until the notifier delivers a notice
func waitForNotice(ch <-chan client.Notice) tea.Cmd {
	return func() tea.Msg {
		n, ok := <-ch
		if !ok {
			return nil
		}
		return NoticeMsg{Notice: n}
	}
}

func (m Model) opCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(m.ctx, requestTimeout)
}

func (m Model) reloadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.opCtx()
		defer cancel()
		return OpDoneMsg{Op: "reload", Err: m.tareas.Load(ctx)}
	}
}

func (m Model) loadResponsablesCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.opCtx()
		defer cancel()
		return OpDoneMsg{Op: "responsables", Err: m.responsables.Load(ctx)}
	}
}

func (m Model) moveCmd(id int, estado models.Estado) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.opCtx()
		defer cancel()
		_, err := m.tareas.Move(ctx, id, estado)
		return OpDoneMsg{Op: "move", ID: id, Err: err}
	}
}

func (m Model) deleteCmd(id int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.opCtx()
		defer cancel()
		return OpDoneMsg{Op: "delete", ID: id, Err: m.tareas.Delete(ctx, id)}
	}
}

func (m Model) commentCmd(id int, contenido string) tea.Cmd {
	autor := m.cfg.Client.Usuario
	if autor == "" {
		autor = client.DefaultUsuario
	}
	return func() tea.Msg {
		ctx, cancel := m.opCtx()
		defer cancel()
		_, err := m.tareas.AddComentario(ctx, id, tareaservice.CreateComentarioRequest{
			Autor:     autor,
			Contenido: contenido,
		})
		return OpDoneMsg{Op: "comment", ID: id, Err: err}
	}
}
