package client

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/thenoetrevino/tablero/internal/models"
	tareaservice "github.com/thenoetrevino/tablero/internal/services/tarea"
)

// DefaultUsuario is the actor recorded when none is configured
const DefaultUsuario = "Usuario"

// maxNota is the rune limit of a comment excerpt in the log
const maxNota = 100

// TareasConActividad wraps a TareaStore and records an Actividad for every
// successful mutation. Failed mutations record nothing.
type TareasConActividad struct {
	*TareaStore
	registro *Registro
	usuario  string
}

// NewTareasConActividad layers activity recording over store
func NewTareasConActividad(store *TareaStore, registro *Registro, usuario string) *TareasConActividad {
	if strings.TrimSpace(usuario) == "" {
		usuario = DefaultUsuario
	}
	return &TareasConActividad{TareaStore: store, registro: registro, usuario: usuario}
}

// Registro returns the underlying activity log
func (t *TareasConActividad) Registro() *Registro {
	return t.registro
}

// Create creates a task and records its creation
func (t *TareasConActividad) Create(ctx context.Context, req tareaservice.CreateTareaRequest) (*models.Tarea, error) {
	tarea, err := t.TareaStore.Create(ctx, req)
	if err != nil {
		return nil, err
	}
	t.registro.Registrar(Actividad{
		TareaID:     tarea.ID,
		TareaTitulo: tarea.Titulo,
		Tipo:        ActividadCreacion,
		Descripcion: fmt.Sprintf("Tarea %q creada", tarea.Titulo),
		Usuario:     t.usuario,
		Detalles: DetallesActividad{
			Comentario: fmt.Sprintf("Nueva tarea creada con prioridad %s", tarea.Prioridad),
		},
	})
	return tarea, nil
}

// Update updates a task and records one entry per tracked field that
// changed, or a generic entry when only untracked fields changed
func (t *TareasConActividad) Update(ctx context.Context, id int, req tareaservice.UpdateTareaRequest) (*models.Tarea, error) {
	before, known := t.TareaStore.Find(id)
	before = before.Clone()

	after, err := t.TareaStore.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}
	if !known {
		// nothing cached to diff against
		t.registro.Registrar(Actividad{
			TareaID:     id,
			TareaTitulo: after.Titulo,
			Tipo:        ActividadActualizacion,
			Descripcion: fmt.Sprintf("Tarea %q actualizada", after.Titulo),
			Usuario:     t.usuario,
		})
		return after, nil
	}
	t.registrarCambios(before, *after)
	return after, nil
}

// Move changes the estado and records the move
func (t *TareasConActividad) Move(ctx context.Context, id int, estado models.Estado) (*models.Tarea, error) {
	before, known := t.TareaStore.Find(id)

	after, err := t.TareaStore.Move(ctx, id, estado)
	if err != nil {
		return nil, err
	}
	if known && before.Estado != after.Estado {
		t.registro.Registrar(Actividad{
			TareaID:     id,
			TareaTitulo: after.Titulo,
			Tipo:        ActividadCambioEstado,
			Descripcion: fmt.Sprintf("Tarea movida de %q a %q", before.Estado, after.Estado),
			Usuario:     t.usuario,
			Detalles: DetallesActividad{
				Campo:         "estado",
				ValorAnterior: string(before.Estado),
				ValorNuevo:    string(after.Estado),
			},
		})
	}
	return after, nil
}

// Delete deletes a task and records the deletion
func (t *TareasConActividad) Delete(ctx context.Context, id int) error {
	before, known := t.TareaStore.Find(id)

	if err := t.TareaStore.Delete(ctx, id); err != nil {
		return err
	}

	a := Actividad{
		TareaID:     id,
		TareaTitulo: before.Titulo,
		Tipo:        ActividadEliminacion,
		Descripcion: fmt.Sprintf("Tarea #%d eliminada", id),
		Usuario:     t.usuario,
	}
	if known {
		a.Descripcion = fmt.Sprintf("Tarea %q eliminada", before.Titulo)
		a.Detalles.Comentario = fmt.Sprintf("Tarea eliminada del estado %s", before.Estado)
	}
	t.registro.Registrar(a)
	return nil
}

// AddComentario adds a comment and records an excerpt of it
func (t *TareasConActividad) AddComentario(ctx context.Context, tareaID int, req tareaservice.CreateComentarioRequest) (*models.Comentario, error) {
	comentario, err := t.TareaStore.AddComentario(ctx, tareaID, req)
	if err != nil {
		return nil, err
	}

	titulo := ""
	if tarea, ok := t.TareaStore.Find(tareaID); ok {
		titulo = tarea.Titulo
	}
	t.registro.Registrar(Actividad{
		TareaID:     tareaID,
		TareaTitulo: titulo,
		Tipo:        ActividadAgregadoComentario,
		Descripcion: "Nuevo comentario agregado",
		Usuario:     t.usuario,
		Detalles:    DetallesActividad{Comentario: extracto(comentario.Contenido)},
	})
	return comentario, nil
}

func (t *TareasConActividad) registrarCambios(before, after models.Tarea) {
	tracked := []struct {
		campo       string
		tipo        TipoActividad
		descripcion string
		antes       string
		despues     string
	}{
		{"estado", ActividadCambioEstado, "Estado cambiado de %q a %q", string(before.Estado), string(after.Estado)},
		{"responsable", ActividadCambioResponsable, "Responsable cambiado de %q a %q", before.Responsable, after.Responsable},
		{"prioridad", ActividadCambioPrioridad, "Prioridad cambiada de %q a %q", string(before.Prioridad), string(after.Prioridad)},
	}

	changed := false
	for _, f := range tracked {
		if f.antes == f.despues {
			continue
		}
		changed = true
		t.registro.Registrar(Actividad{
			TareaID:     after.ID,
			TareaTitulo: after.Titulo,
			Tipo:        f.tipo,
			Descripcion: fmt.Sprintf(f.descripcion, f.antes, f.despues),
			Usuario:     t.usuario,
			Detalles: DetallesActividad{
				Campo:         f.campo,
				ValorAnterior: f.antes,
				ValorNuevo:    f.despues,
			},
		})
	}

	if changed {
		return
	}
	if otros := otrosCambios(before, after); len(otros) > 0 {
		t.registro.Registrar(Actividad{
			TareaID:     after.ID,
			TareaTitulo: after.Titulo,
			Tipo:        ActividadActualizacion,
			Descripcion: fmt.Sprintf("Tarea %q actualizada", after.Titulo),
			Usuario:     t.usuario,
			Detalles: DetallesActividad{
				Comentario: "Campos modificados: " + strings.Join(otros, ", "),
			},
		})
	}
}

// otrosCambios lists the untracked fields that differ
func otrosCambios(before, after models.Tarea) []string {
	var out []string
	if before.Titulo != after.Titulo {
		out = append(out, "titulo")
	}
	if before.Descripcion != after.Descripcion {
		out = append(out, "descripcion")
	}
	if !sameTime(before.FechaVencimiento, after.FechaVencimiento) {
		out = append(out, "fechaVencimiento")
	}
	if !slices.Equal(before.Etiquetas, after.Etiquetas) {
		out = append(out, "etiquetas")
	}
	if !sameFloat(before.TiempoEstimado, after.TiempoEstimado) {
		out = append(out, "tiempoEstimado")
	}
	if before.TiempoTrabajado != after.TiempoTrabajado {
		out = append(out, "tiempoTrabajado")
	}
	return out
}

func sameTime(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

func sameFloat(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// extracto truncates s to maxNota runes, marking the cut
func extracto(s string) string {
	if utf8.RuneCountInString(s) <= maxNota {
		return s
	}
	return string([]rune(s)[:maxNota]) + "..."
}
