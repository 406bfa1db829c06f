package theme

import "github.com/thenoetrevino/tablero/internal/config"

// Colors holds the current theme colors, initialized by Init
var (
	Highlight      string
	ColumnBorder   string
	Subtle         string
	Normal         string
	Title          string
	SelectedBorder string
	SelectedBg     string
	TaskBg         string
	InfoFg         string
	InfoBg         string
	ErrorFg        string
	ErrorBg        string

	PriorityLow      string
	PriorityMedium   string
	PriorityHigh     string
	PriorityCritical string
)

// Init initializes the theme colors from the given color scheme
func Init(colors config.ColorScheme) {
	colors.ApplyDefaults()

	Highlight = colors.Accent
	ColumnBorder = colors.ColumnBorder
	Subtle = colors.Subtle
	Normal = colors.Normal
	Title = colors.Title
	SelectedBorder = colors.SelectedBorder
	SelectedBg = colors.SelectedBg
	TaskBg = colors.TaskBackground
	InfoFg = colors.InfoFg
	InfoBg = colors.InfoBg
	ErrorFg = colors.ErrorFg
	ErrorBg = colors.ErrorBg
	PriorityLow = colors.PriorityLow
	PriorityMedium = colors.PriorityMedium
	PriorityHigh = colors.PriorityHigh
	PriorityCritical = colors.PriorityCritical
}
