package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/thenoetrevino/tablero/internal/client"
)

// RenderNotice renders a compact inline notice for the header
func RenderNotice(n client.Notice) string {
	switch n.Nivel {
	case client.NivelError:
		return ErrorBannerStyle.Render("✗ " + n.Mensaje)
	case client.NivelExito:
		return InfoBannerStyle.Render("✓ " + n.Mensaje)
	default:
		return InfoBannerStyle.Render("• " + n.Mensaje)
	}
}

// RenderBadge renders the unread count, or nothing when zero
func RenderBadge(noLeidas int) string {
	if noLeidas <= 0 {
		return ""
	}
	return BadgeStyle.Render(fmt.Sprintf("● %d", noLeidas))
}

// RenderNotificaciones renders the activity notifications, newest first.
// Unread entries are marked with a dot.
func RenderNotificaciones(ns []client.Notificacion, width int) string {
	title := TitleStyle.Render("Notificaciones")
	if len(ns) == 0 {
		return title + "\n\n" + SubtleStyle.Render("Sin actividad reciente")
	}

	lines := make([]string, 0, len(ns))
	for _, n := range ns {
		marker := "  "
		if !n.Leida {
			marker = BadgeStyle.Render("● ")
		}
		when := SubtleStyle.Render(n.Fecha.Local().Format("15:04:05"))
		desc := Truncate(n.Actividad.Descripcion, max(width-14, 10))
		line := marker + when + " " + desc
		if n.Actividad.Usuario != "" {
			line += SubtleStyle.Render(" · " + n.Actividad.Usuario)
		}
		lines = append(lines, line)
	}
	body := lipgloss.NewStyle().Width(width).Render(strings.Join(lines, "\n"))
	return title + "\n\n" + body
}
