package components

import (
	"strings"
	"testing"
	"time"

	"github.com/thenoetrevino/tablero/internal/client"
	"github.com/thenoetrevino/tablero/internal/config"
	"github.com/thenoetrevino/tablero/internal/models"
)

func init() {
	InitStyles(config.DefaultColorScheme())
}

func tareas(n int) []models.Tarea {
	out := make([]models.Tarea, n)
	for i := range out {
		out[i] = models.Tarea{
			ID:          i + 1,
			Titulo:      "Tarea " + string(rune('A'+i)),
			Estado:      models.EstadoCreada,
			Responsable: "Ana",
			Prioridad:   models.PrioridadAlta,
		}
	}
	return out
}

// ============================================================================
// COLUMN
// ============================================================================

func TestRenderColumn_Header(t *testing.T) {
	out := RenderColumn(ColumnProps{Estado: models.EstadoBloqueada, Tareas: tareas(3), Width: 30, Height: 40})
	if !strings.Contains(out, "Bloqueada (3)") {
		t.Errorf("column header missing count:\n%s", out)
	}
}

func TestRenderColumn_Empty(t *testing.T) {
	out := RenderColumn(ColumnProps{Estado: models.EstadoCancelada, Width: 30, Height: 20})
	if !strings.Contains(out, "Sin tareas") {
		t.Errorf("empty column should show the empty state:\n%s", out)
	}
}

func TestRenderColumn_ScrollIndicators(t *testing.T) {
	height := 6 + 2*TaskCardHeight // room for two cards
	all := tareas(5)

	top := RenderColumn(ColumnProps{Estado: models.EstadoCreada, Tareas: all, Width: 30, Height: height})
	if strings.Contains(top, "más arriba") {
		t.Error("first page should not show the up indicator")
	}
	if !strings.Contains(top, "más abajo") {
		t.Error("first page should show the down indicator")
	}
	if strings.Contains(top, "Tarea C") {
		t.Error("third task should be scrolled out of view")
	}

	scrolled := RenderColumn(ColumnProps{Estado: models.EstadoCreada, Tareas: all, Width: 30, Height: height, ScrollOffset: 3})
	if !strings.Contains(scrolled, "más arriba") {
		t.Error("scrolled column should show the up indicator")
	}
	if !strings.Contains(scrolled, "Tarea D") || !strings.Contains(scrolled, "Tarea E") {
		t.Errorf("scrolled column should show the last tasks:\n%s", scrolled)
	}
}

func TestVisibleTasks(t *testing.T) {
	if got := VisibleTasks(0); got != 1 {
		t.Errorf("VisibleTasks(0) = %d, want 1", got)
	}
	if got := VisibleTasks(6 + 3*TaskCardHeight); got != 3 {
		t.Errorf("VisibleTasks = %d, want 3", got)
	}
}

// ============================================================================
// TASK CARD
// ============================================================================

func TestRenderTask(t *testing.T) {
	tarea := tareas(1)[0]
	tarea.Etiquetas = []string{"backend", "urgente"}

	out := RenderTask(tarea, false, 40)
	for _, want := range []string{"Tarea A", "Alta", "Ana", "#backend #urgente"} {
		if !strings.Contains(out, want) {
			t.Errorf("card missing %q:\n%s", want, out)
		}
	}
}

func TestRenderTask_Placeholders(t *testing.T) {
	out := RenderTask(models.Tarea{Titulo: "x", Prioridad: models.PrioridadBaja}, true, 40)
	if !strings.Contains(out, "sin responsable") || !strings.Contains(out, "sin etiquetas") {
		t.Errorf("card should show placeholders:\n%s", out)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"corto", 10, "corto"},
		{"exactamente", 11, "exactamente"},
		{"demasiado largo", 10, "demasiado…"},
		{"ñandú", 3, "ña…"},
		{"x", 0, ""},
	}
	for _, tt := range tests {
		if got := Truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

// ============================================================================
// NOTICES AND STATUS BAR
// ============================================================================

func TestRenderNotice(t *testing.T) {
	out := RenderNotice(client.Notice{Nivel: client.NivelError, Mensaje: "Error al crear la tarea"})
	if !strings.Contains(out, "✗ Error al crear la tarea") {
		t.Errorf("RenderNotice = %q", out)
	}
}

func TestRenderBadge(t *testing.T) {
	if RenderBadge(0) != "" {
		t.Error("zero unread should render nothing")
	}
	if !strings.Contains(RenderBadge(3), "● 3") {
		t.Error("badge should show the count")
	}
}

func TestRenderNotificaciones(t *testing.T) {
	ns := []client.Notificacion{
		{ID: "1", Fecha: time.Now(), Actividad: client.Actividad{Descripcion: `Tarea "A" creada`, Usuario: "Ana"}},
		{ID: "2", Leida: true, Fecha: time.Now(), Actividad: client.Actividad{Descripcion: `Tarea "B" eliminada`}},
	}
	out := RenderNotificaciones(ns, 60)
	if !strings.Contains(out, `Tarea "A" creada`) || !strings.Contains(out, `Tarea "B" eliminada`) {
		t.Errorf("notifications missing entries:\n%s", out)
	}
	if strings.Count(out, "●") != 1 {
		t.Errorf("only unread entries are marked:\n%s", out)
	}

	if !strings.Contains(RenderNotificaciones(nil, 60), "Sin actividad reciente") {
		t.Error("empty panel should say so")
	}
}

func TestRenderStatusBar(t *testing.T) {
	out := RenderStatusBar(StatusBarProps{Width: 100, Error: "connection refused"})
	if !strings.Contains(out, "sin conexión: connection refused") {
		t.Errorf("status bar should show the error:\n%s", out)
	}

	out = RenderStatusBar(StatusBarProps{Width: 100, Filtro: client.Filtro{Texto: "api", Prioridad: models.PrioridadAlta}})
	if !strings.Contains(out, `filtro: "api" Alta`) {
		t.Errorf("status bar should describe the filter:\n%s", out)
	}
}

func TestRenderComments(t *testing.T) {
	if !strings.Contains(RenderComments(nil, 40), "Sin comentarios") {
		t.Error("no comments should say so")
	}
	out := RenderComments([]models.Comentario{{Autor: "Ana", Contenido: "hecho", Tipo: models.TipoComentarioCambioEstado}}, 40)
	if !strings.Contains(out, "Ana") || !strings.Contains(out, "hecho") || !strings.Contains(out, "cambio_estado") {
		t.Errorf("comment render incomplete:\n%s", out)
	}
}

func TestRenderDescription_Empty(t *testing.T) {
	if !strings.Contains(RenderDescription(DescriptionProps{Width: 40}), "Sin descripción") {
		t.Error("empty description should render the placeholder")
	}
}
