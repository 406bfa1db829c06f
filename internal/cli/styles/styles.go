// Package styles holds the lipgloss styles for human-readable CLI output.
// Until Init is called every style renders plain text.
package styles

import (
	"charm.land/lipgloss/v2"

	"github.com/thenoetrevino/tablero/internal/config"
	"github.com/thenoetrevino/tablero/internal/models"
)

var (
	// Card styles
	CardStyle lipgloss.Style
	CardWidth = 80

	// Text styles
	TitleStyle    lipgloss.Style
	SubtitleStyle lipgloss.Style
	LabelStyle    lipgloss.Style // For field labels like "Estado:", "Prioridad:"
	ValueStyle    lipgloss.Style // For field values
	SectionStyle  lipgloss.Style // For section headers like "Descripción", "Comentarios"

	// Status styles
	SuccessStyle lipgloss.Style
	ErrorStyle   lipgloss.Style

	prioridadColors = map[models.Prioridad]string{}
)

// Init initializes all CLI styles with the given color scheme
func Init(colors config.ColorScheme) {
	colors.ApplyDefaults()

	CardStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(colors.Accent)).
		Padding(1, 2).
		Width(CardWidth)

	TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.Title))

	SubtitleStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colors.Subtle))

	LabelStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.Accent))

	ValueStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colors.Normal))

	SectionStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colors.Accent)).
		Bold(true).
		MarginTop(1)

	SuccessStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.InfoFg))

	ErrorStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.ErrorFg))

	prioridadColors = map[models.Prioridad]string{
		models.PrioridadBaja:    colors.PriorityLow,
		models.PrioridadMedia:   colors.PriorityMedium,
		models.PrioridadAlta:    colors.PriorityHigh,
		models.PrioridadCritica: colors.PriorityCritical,
	}
}

// ═══════════════════════════════════════════════════════════════════
// HELPER FUNCTIONS
// ═══════════════════════════════════════════════════════════════════

// ColoredText renders text with a hex color
func ColoredText(text, hexColor string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(hexColor)).
		Render(text)
}

// RenderPrioridad renders p in its configured color
func RenderPrioridad(p models.Prioridad) string {
	hex, ok := prioridadColors[p]
	if !ok {
		return string(p)
	}
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(hex)).Render(string(p))
}

// RenderCard wraps content in a styled card border
func RenderCard(content string) string {
	return CardStyle.Render(content)
}
