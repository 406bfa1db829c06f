// Package events carries change notifications from the services to
// connected clients: an in-process broker feeding the SSE endpoint and an
// optional Redis channel shared by several API instances.
package events

import (
	"strings"
	"time"
)

// EventType indicates what kind of change occurred
type EventType string

const (
	TareaCreada            EventType = "tarea_creada"
	TareaActualizada       EventType = "tarea_actualizada"
	TareaEliminada         EventType = "tarea_eliminada"
	ComentarioCreado       EventType = "comentario_creado"
	ComentarioEliminado    EventType = "comentario_eliminado"
	ResponsableCreado      EventType = "responsable_creado"
	ResponsableActualizado EventType = "responsable_actualizado"
	ResponsableEliminado   EventType = "responsable_eliminado"
)

// Entidad returns the entity half of the type ("tarea", "comentario", "responsable")
func (t EventType) Entidad() string {
	entidad, _, _ := strings.Cut(string(t), "_")
	return entidad
}

// Event represents a stored change
type Event struct {
	Type       EventType `json:"tipo"`
	Entidad    string    `json:"entidad"`
	EntidadID  int       `json:"entidadId"`
	Timestamp  time.Time `json:"timestamp"`
	SequenceID int64     `json:"sequenceId"` // assigned by the Broker, increasing per process
}

// NewEvent stamps an event for the entity with the given id
func NewEvent(t EventType, entidadID int) Event {
	return Event{
		Type:      t,
		Entidad:   t.Entidad(),
		EntidadID: entidadID,
		Timestamp: time.Now().UTC(),
	}
}
