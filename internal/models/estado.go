package models

// Estado is the lifecycle status of a task. Values travel over the wire
// as their display strings.
type Estado string

const (
	EstadoCreada     Estado = "Creada"
	EstadoEnProgreso Estado = "En progreso"
	EstadoBloqueada  Estado = "Bloqueada"
	EstadoFinalizada Estado = "Finalizada"
	EstadoCancelada  Estado = "Cancelada"
)

// Estados lists every status in board column order.
var Estados = []Estado{
	EstadoCreada,
	EstadoEnProgreso,
	EstadoBloqueada,
	EstadoFinalizada,
	EstadoCancelada,
}

// Valid reports whether e is one of the known statuses.
func (e Estado) Valid() bool {
	for _, known := range Estados {
		if e == known {
			return true
		}
	}
	return false
}

// Index returns the column position of e, or -1 when unknown.
func (e Estado) Index() int {
	for i, known := range Estados {
		if e == known {
			return i
		}
	}
	return -1
}

// Prioridad is the urgency of a task.
type Prioridad string

const (
	PrioridadBaja    Prioridad = "Baja"
	PrioridadMedia   Prioridad = "Media"
	PrioridadAlta    Prioridad = "Alta"
	PrioridadCritica Prioridad = "Crítica"
)

// Prioridades lists every priority from lowest to highest.
var Prioridades = []Prioridad{
	PrioridadBaja,
	PrioridadMedia,
	PrioridadAlta,
	PrioridadCritica,
}

// Valid reports whether p is one of the known priorities.
func (p Prioridad) Valid() bool {
	for _, known := range Prioridades {
		if p == known {
			return true
		}
	}
	return false
}

// TipoComentario distinguishes user comments from system generated notes.
type TipoComentario string

const (
	TipoComentarioComentario    TipoComentario = "comentario"
	TipoComentarioActualizacion TipoComentario = "actualizacion"
	TipoComentarioCambioEstado  TipoComentario = "cambio_estado"
)

// Valid reports whether t is one of the known comment kinds.
func (t TipoComentario) Valid() bool {
	switch t {
	case TipoComentarioComentario, TipoComentarioActualizacion, TipoComentarioCambioEstado:
		return true
	}
	return false
}
