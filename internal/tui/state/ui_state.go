package state

// Mode represents the current interaction mode of the TUI.
// Each mode determines which keyboard shortcuts are active and what UI is displayed.
type Mode int

const (
	NormalMode        Mode = iota // Default navigation mode
	DetailMode                    // Reading one task
	CommentMode                   // Writing a comment on the open task
	SearchMode                    // Typing a text filter (/)
	DeleteConfirmMode             // Confirming task deletion
	NotificationsMode             // Activity notifications panel
	HelpMode                      // Displaying help screen
)

func (m Mode) String() string {
	switch m {
	case NormalMode:
		return "normal"
	case DetailMode:
		return "detalle"
	case CommentMode:
		return "comentario"
	case SearchMode:
		return "busqueda"
	case DeleteConfirmMode:
		return "confirmar"
	case NotificationsMode:
		return "notificaciones"
	case HelpMode:
		return "ayuda"
	default:
		return "desconocido"
	}
}

// UIState manages the user interface state.
// This includes navigation (column/task selection), per-column scrolling,
// terminal dimensions, and the current interaction mode.
type UIState struct {
	// selectedColumn is the index of the selected estado column
	selectedColumn int

	// selectedTask is the index of the selected task within the column
	selectedTask int

	width  int
	height int

	mode Mode

	// scrollOffsets tracks the index of the first visible task per column
	scrollOffsets map[int]int
}

// NewUIState creates a new UIState with default values.
func NewUIState() *UIState {
	return &UIState{
		mode:          NormalMode,
		scrollOffsets: make(map[int]int),
	}
}

// SelectedColumn returns the index of the currently selected column.
func (s *UIState) SelectedColumn() int {
	return s.selectedColumn
}

// SetSelectedColumn updates the selected column index.
func (s *UIState) SetSelectedColumn(index int) {
	s.selectedColumn = index
}

// SelectedTask returns the index of the currently selected task.
func (s *UIState) SelectedTask() int {
	return s.selectedTask
}

// SetSelectedTask updates the selected task index.
func (s *UIState) SetSelectedTask(index int) {
	s.selectedTask = index
}

// Width returns the current terminal width.
func (s *UIState) Width() int {
	return s.width
}

// SetWidth updates the terminal width.
func (s *UIState) SetWidth(width int) {
	s.width = width
}

// Height returns the current terminal height.
func (s *UIState) Height() int {
	return s.height
}

// SetHeight updates the terminal height.
func (s *UIState) SetHeight(height int) {
	s.height = height
}

// ContentHeight returns the height left for the columns after the header
// and status bar, never less than 5.
func (s *UIState) ContentHeight() int {
	const headerHeight = 2
	const statusBarHeight = 2
	return max(s.height-headerHeight-statusBarHeight, 5)
}

// Mode returns the current interaction mode.
func (s *UIState) Mode() Mode {
	return s.mode
}

// SetMode updates the current interaction mode.
func (s *UIState) SetMode(mode Mode) {
	s.mode = mode
}

// ScrollOffset returns the first visible task index of column.
func (s *UIState) ScrollOffset(column int) int {
	return s.scrollOffsets[column]
}

// Clamp keeps the selection inside a board whose columns hold counts[i]
// tasks, e.g. after a reload or a filter removed the selected task.
func (s *UIState) Clamp(counts []int) {
	if len(counts) == 0 {
		s.selectedColumn, s.selectedTask = 0, 0
		return
	}
	s.selectedColumn = min(max(s.selectedColumn, 0), len(counts)-1)
	n := counts[s.selectedColumn]
	s.selectedTask = min(max(s.selectedTask, 0), max(n-1, 0))
	for col, n := range counts {
		if s.scrollOffsets[col] > max(n-1, 0) {
			s.scrollOffsets[col] = max(n-1, 0)
		}
	}
}

// EnsureTaskVisible scrolls the selected column so the selected task is
// one of the visible rows.
func (s *UIState) EnsureTaskVisible(visible int) {
	visible = max(visible, 1)
	col := s.selectedColumn
	offset := s.scrollOffsets[col]
	switch {
	case s.selectedTask < offset:
		offset = s.selectedTask
	case s.selectedTask >= offset+visible:
		offset = s.selectedTask - visible + 1
	}
	s.scrollOffsets[col] = offset
}
