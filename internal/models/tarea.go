package models

import "time"

// Tarea is a unit of trackable work on the board.
// Responsable is the wire-level reference to the assignee by name;
// ResponsableID mirrors it as a foreign key and may be nil when the
// name matches no registered responsable.
type Tarea struct {
	ID                 int          `json:"id"`
	Titulo             string       `json:"titulo"`
	Descripcion        string       `json:"descripcion"`
	Estado             Estado       `json:"estado"`
	Responsable        string       `json:"responsable"`
	ResponsableID      *int         `json:"responsableId,omitempty"`
	FechaCreacion      time.Time    `json:"fechaCreacion"`
	FechaVencimiento   *time.Time   `json:"fechaVencimiento,omitempty"`
	FechaActualizacion time.Time    `json:"fechaActualizacion"`
	Prioridad          Prioridad    `json:"prioridad"`
	Etiquetas          []string     `json:"etiquetas"`
	Comentarios        []Comentario `json:"comentarios"`
	TiempoEstimado     *float64     `json:"tiempoEstimado,omitempty"`
	TiempoTrabajado    float64      `json:"tiempoTrabajado"`
}

// GetID returns the task ID (used by quiet CLI output)
func (t *Tarea) GetID() int {
	return t.ID
}

// Clone returns a deep copy so callers can diff before/after snapshots.
func (t Tarea) Clone() Tarea {
	c := t
	if t.Etiquetas != nil {
		c.Etiquetas = append([]string(nil), t.Etiquetas...)
	}
	if t.Comentarios != nil {
		c.Comentarios = append([]Comentario(nil), t.Comentarios...)
	}
	if t.ResponsableID != nil {
		id := *t.ResponsableID
		c.ResponsableID = &id
	}
	if t.FechaVencimiento != nil {
		v := *t.FechaVencimiento
		c.FechaVencimiento = &v
	}
	if t.TiempoEstimado != nil {
		v := *t.TiempoEstimado
		c.TiempoEstimado = &v
	}
	return c
}

// Comentario is a timestamped note attached to a task. Comments are
// deleted together with their task.
type Comentario struct {
	ID            int            `json:"id"`
	TareaID       int            `json:"tareaId"`
	Autor         string         `json:"autor"`
	Contenido     string         `json:"contenido"`
	FechaCreacion time.Time      `json:"fechaCreacion"`
	Tipo          TipoComentario `json:"tipo"`
}

// GetID returns the comment ID
func (c *Comentario) GetID() int {
	return c.ID
}

// Estadisticas maps a status label or "responsable_<name>" to a task count.
type Estadisticas map[string]int

// ResponsableStatKey builds the statistics key for an assignee.
func ResponsableStatKey(nombre string) string {
	return "responsable_" + nombre
}
