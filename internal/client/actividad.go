package client

import (
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// TipoActividad classifies an activity record
type TipoActividad string

const (
	ActividadCreacion           TipoActividad = "creacion"
	ActividadActualizacion      TipoActividad = "actualizacion"
	ActividadCambioEstado       TipoActividad = "cambio_estado"
	ActividadCambioResponsable  TipoActividad = "cambio_responsable"
	ActividadCambioPrioridad    TipoActividad = "cambio_prioridad"
	ActividadAgregadoComentario TipoActividad = "agregado_comentario"
	ActividadEliminacion        TipoActividad = "eliminacion"
)

// DetallesActividad holds the optional specifics of a record
type DetallesActividad struct {
	Campo         string `json:"campo,omitempty"`
	ValorAnterior string `json:"valorAnterior,omitempty"`
	ValorNuevo    string `json:"valorNuevo,omitempty"`
	Comentario    string `json:"comentario,omitempty"`
}

// Actividad is a client-local log entry for one task mutation
type Actividad struct {
	ID          string            `json:"id"`
	TareaID     int               `json:"tareaId"`
	TareaTitulo string            `json:"tareaTitulo"`
	Tipo        TipoActividad     `json:"tipo"`
	Descripcion string            `json:"descripcion"`
	Usuario     string            `json:"usuario"`
	Fecha       time.Time         `json:"fecha"`
	Detalles    DetallesActividad `json:"detalles"`
}

// Notificacion marks an Actividad as read or unread
type Notificacion struct {
	ID          string    `json:"id"`
	ActividadID string    `json:"actividadId"`
	Leida       bool      `json:"leida"`
	Fecha       time.Time `json:"fecha"`
	Actividad   Actividad `json:"actividad"`
}

// DefaultRecientes is the default limit of Recientes
const DefaultRecientes = 10

// Registro is the in-memory activity log and its notifications. It lives
// only as long as the process.
type Registro struct {
	mu             sync.Mutex
	actividades    []Actividad    // newest first
	notificaciones []Notificacion // newest first
	noLeidas       int
	now            func() time.Time
}

// NewRegistro creates an empty log
func NewRegistro() *Registro {
	return &Registro{now: time.Now}
}

// Registrar stores a, assigning its id and date, plus an unread notification
func (r *Registro) Registrar(a Actividad) Actividad {
	r.mu.Lock()
	defer r.mu.Unlock()

	a.ID = uuid.NewString()
	a.Fecha = r.now()

	r.actividades = append([]Actividad{a}, r.actividades...)
	r.notificaciones = append([]Notificacion{{
		ID:          uuid.NewString(),
		ActividadID: a.ID,
		Fecha:       a.Fecha,
		Actividad:   a,
	}}, r.notificaciones...)
	r.noLeidas++

	return a
}

// Actividades returns every record, newest first
func (r *Registro) Actividades() []Actividad {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.actividades)
}

// Notificaciones returns every notification, newest first
func (r *Registro) Notificaciones() []Notificacion {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.notificaciones)
}

// NoLeidas returns the unread count
func (r *Registro) NoLeidas() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.noLeidas
}

// MarcarLeida marks one notification read. Unknown or already read ids
// leave the count unchanged.
func (r *Registro) MarcarLeida(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.notificaciones {
		if r.notificaciones[i].ID == id && !r.notificaciones[i].Leida {
			r.notificaciones[i].Leida = true
			r.noLeidas = max(0, r.noLeidas-1)
			return
		}
	}
}

// MarcarTodasLeidas marks every notification read
func (r *Registro) MarcarTodasLeidas() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.notificaciones {
		r.notificaciones[i].Leida = true
	}
	r.noLeidas = 0
}

// Recientes returns up to limit records by date, newest first. limit <= 0
// uses DefaultRecientes.
func (r *Registro) Recientes(limit int) []Actividad {
	if limit <= 0 {
		limit = DefaultRecientes
	}
	out := r.Actividades()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Fecha.After(out[j].Fecha)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// PorTarea returns the records of one task, newest first
func (r *Registro) PorTarea(tareaID int) []Actividad {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Actividad
	for _, a := range r.actividades {
		if a.TareaID == tareaID {
			out = append(out, a)
		}
	}
	return out
}

// Limpiar drops every record and notification
func (r *Registro) Limpiar() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actividades = nil
	r.notificaciones = nil
	r.noLeidas = 0
}
