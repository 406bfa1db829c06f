// Package tui is the interactive board. It renders from the client stores
// and turns every mutation into a command so the UI never blocks on the
// network.
package tui

import (
	"context"
	"log/slog"

	"charm.land/bubbles/v2/textinput"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"

	"github.com/thenoetrevino/tablero/internal/client"
	"github.com/thenoetrevino/tablero/internal/config"
	"github.com/thenoetrevino/tablero/internal/models"
	"github.com/thenoetrevino/tablero/internal/tui/components"
	"github.com/thenoetrevino/tablero/internal/tui/state"
)

// Deps are the collaborators the board renders from and acts through
type Deps struct {
	Tareas       *client.TareasConActividad
	Responsables *client.ResponsableStore // optional, feeds the responsable filter
	Config       *config.Config
	Logger       *slog.Logger
}

// Model represents the application state for the TUI
type Model struct {
	ctx          context.Context
	cfg          *config.Config
	logger       *slog.Logger
	tareas       *client.TareasConActividad
	responsables *client.ResponsableStore

	ui     *state.UIState
	filtro client.Filtro
	// banner is the latest notice, cleared on the next key press
	banner *client.Notice

	search  textinput.Model
	comment textinput.Model
	detail  viewport.Model
	// detailID is the task shown in DetailMode and CommentMode
	detailID int

	changes chan struct{}
	notices chan client.Notice
}

// New creates the board model. Store changes and notices made by other
// goroutines, such as a poller, reach the model as messages.
func New(ctx context.Context, deps Deps) Model {
	cfg := deps.Config
	if cfg == nil {
		cfg = config.Default()
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	components.InitStyles(cfg.ColorScheme)

	search := textinput.New()
	search.Placeholder = "buscar en título o descripción"
	search.Prompt = "/ "

	comment := textinput.New()
	comment.Placeholder = "escribe un comentario"
	comment.Prompt = "> "
	comment.CharLimit = 1000

	m := Model{
		ctx:          ctx,
		cfg:          cfg,
		logger:       logger,
		tareas:       deps.Tareas,
		responsables: deps.Responsables,
		ui:           state.NewUIState(),
		search:       search,
		comment:      comment,
		detail:       viewport.New(),
		changes:      make(chan struct{}, 1),
		notices:      make(chan client.Notice, 16),
	}

	m.tareas.Subscribe(func(client.State[models.Tarea]) { m.signalChange() })
	m.tareas.Notifier().Subscribe(func(n client.Notice) {
		select {
		case m.notices <- n:
		default:
			// the banner only shows the latest anyway
		}
	})
	return m
}

// Init loads the board and starts listening for background changes.
// Required by tea.Model interface
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.reloadCmd(),
		waitForChange(m.changes),
		waitForNotice(m.notices),
	}
	if m.responsables != nil {
		cmds = append(cmds, m.loadResponsablesCmd())
	}
	return tea.Batch(cmds...)
}

// signalChange coalesces store notifications into one pending message
func (m Model) signalChange() {
	select {
	case m.changes <- struct{}{}:
	default:
	}
}

// Columns returns the filtered board, every estado in order
func (m Model) Columns() []client.Columna {
	tareas := m.tareas.State().Items
	if m.filtro.Activo() {
		tareas = client.Filtrar(tareas, m.filtro)
	}
	return client.Agrupar(tareas)
}

// Mode returns the current interaction mode
func (m Model) Mode() state.Mode {
	return m.ui.Mode()
}

// Filtro returns the active filter
func (m Model) Filtro() client.Filtro {
	return m.filtro
}

// Selection returns the selected column and task indexes
func (m Model) Selection() (column, task int) {
	return m.ui.SelectedColumn(), m.ui.SelectedTask()
}

// CurrentTask returns the selected task
func (m Model) CurrentTask() (models.Tarea, bool) {
	cols := m.Columns()
	col := m.ui.SelectedColumn()
	if col < 0 || col >= len(cols) {
		return models.Tarea{}, false
	}
	tareas := cols[col].Tareas
	i := m.ui.SelectedTask()
	if i < 0 || i >= len(tareas) {
		return models.Tarea{}, false
	}
	return tareas[i], true
}

// clampSelection keeps the cursor on an existing task after the board changed
func (m Model) clampSelection() {
	cols := m.Columns()
	counts := make([]int, len(cols))
	for i, c := range cols {
		counts[i] = len(c.Tareas)
	}
	m.ui.Clamp(counts)
	m.ui.EnsureTaskVisible(components.VisibleTasks(m.ui.ContentHeight()))
}

// selectTask moves the cursor to the task with id, wherever it is now
func (m Model) selectTask(id int) {
	for c, col := range m.Columns() {
		for i, t := range col.Tareas {
			if t.ID == id {
				m.ui.SetSelectedColumn(c)
				m.ui.SetSelectedTask(i)
				m.ui.EnsureTaskVisible(components.VisibleTasks(m.ui.ContentHeight()))
				return
			}
		}
	}
}
