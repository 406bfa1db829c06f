// Package components provides reusable UI components and styles.
// Call InitStyles() before use to initialize all style variables.
package components

import (
	"charm.land/lipgloss/v2"

	"github.com/thenoetrevino/tablero/internal/config"
	"github.com/thenoetrevino/tablero/internal/models"
	"github.com/thenoetrevino/tablero/internal/tui/theme"
)

// These are cached to avoid recomputing on every redraw.
var (
	// ColumnStyle defines the appearance of board columns
	ColumnStyle lipgloss.Style

	// TaskStyle defines the appearance of task cards
	TaskStyle lipgloss.Style

	// TitleStyle defines the appearance of titles (column names, app header)
	TitleStyle lipgloss.Style

	// SubtleStyle is used for hints and empty states
	SubtleStyle lipgloss.Style

	// DetailBoxStyle frames the task detail overlay
	DetailBoxStyle lipgloss.Style

	// DeleteConfirmBoxStyle frames deletion confirmations (red border)
	DeleteConfirmBoxStyle lipgloss.Style

	// HelpBoxStyle frames the help screen
	HelpBoxStyle lipgloss.Style

	// PanelBoxStyle frames the notifications panel
	PanelBoxStyle lipgloss.Style

	// InfoBannerStyle defines the appearance of info and success notices
	InfoBannerStyle lipgloss.Style

	// ErrorBannerStyle defines the appearance of error notices
	ErrorBannerStyle lipgloss.Style

	// IndicatorStyle defines the appearance of scroll indicators
	IndicatorStyle lipgloss.Style

	// BadgeStyle renders the unread notifications count
	BadgeStyle lipgloss.Style
)

// InitStyles initializes all styles with the given color scheme
func InitStyles(colors config.ColorScheme) {
	theme.Init(colors)

	ColumnStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.ColumnBorder)).
		PaddingLeft(1).
		PaddingRight(1).
		PaddingBottom(1)

	TaskStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.ThickBorder()).
		BorderForeground(lipgloss.Color(theme.TaskBg)).
		BorderBackground(lipgloss.Color(theme.TaskBg)).
		Background(lipgloss.Color(theme.TaskBg))

	TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(theme.Title))

	SubtleStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Subtle)).
		Italic(true)

	DetailBoxStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Highlight)).
		Padding(1, 2)

	DeleteConfirmBoxStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.ErrorFg)).
		Padding(1)

	HelpBoxStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.ColumnBorder)).
		Padding(1, 2)

	PanelBoxStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.InfoFg)).
		Padding(1, 2)

	InfoBannerStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.InfoFg)).
		Background(lipgloss.Color(theme.InfoBg)).
		Bold(true).
		Padding(0, 1)

	ErrorBannerStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.ErrorFg)).
		Background(lipgloss.Color(theme.ErrorBg)).
		Bold(true).
		Padding(0, 1)

	IndicatorStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Subtle)).
		Align(lipgloss.Center)

	BadgeStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.ErrorFg)).
		Bold(true)
}

// PriorityColor returns the theme color of p
func PriorityColor(p models.Prioridad) string {
	switch p {
	case models.PrioridadBaja:
		return theme.PriorityLow
	case models.PrioridadAlta:
		return theme.PriorityHigh
	case models.PrioridadCritica:
		return theme.PriorityCritical
	default:
		return theme.PriorityMedium
	}
}
