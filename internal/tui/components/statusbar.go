package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/thenoetrevino/tablero/internal/client"
)

// StatusBarProps configures RenderStatusBar
type StatusBarProps struct {
	Width   int
	Loading bool
	// Error is the last failed request, shown until a request succeeds
	Error  string
	Filtro client.Filtro
}

// RenderStatusBar renders the status bar with left and right aligned text
// Left side: connection state and active filter
// Right side: "? ayuda"
func RenderStatusBar(p StatusBarProps) string {
	var left []string
	switch {
	case p.Error != "":
		left = append(left, ErrorBannerStyle.Render("sin conexión: "+p.Error))
	case p.Loading:
		left = append(left, SubtleStyle.Render("sincronizando…"))
	default:
		left = append(left, SubtleStyle.Render("Tablero"))
	}
	if p.Filtro.Activo() {
		left = append(left, SubtleStyle.Render("filtro: "+describeFiltro(p.Filtro)))
	}

	leftRendered := strings.Join(left, "  ")
	rightRendered := SubtleStyle.Render("? ayuda")

	gap := max(p.Width-lipgloss.Width(leftRendered)-lipgloss.Width(rightRendered), 1)
	return lipgloss.JoinHorizontal(lipgloss.Top, leftRendered, strings.Repeat(" ", gap), rightRendered)
}

func describeFiltro(f client.Filtro) string {
	var parts []string
	if t := strings.TrimSpace(f.Texto); t != "" {
		parts = append(parts, "\""+t+"\"")
	}
	if f.Responsable != "" {
		parts = append(parts, "@"+f.Responsable)
	}
	if f.Estado != "" {
		parts = append(parts, string(f.Estado))
	}
	if f.Prioridad != "" {
		parts = append(parts, string(f.Prioridad))
	}
	return strings.Join(parts, " ")
}
