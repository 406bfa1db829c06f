package client

import (
	"strings"

	"github.com/thenoetrevino/tablero/internal/models"
)

// Columna is one board column
type Columna struct {
	Estado models.Estado
	Tareas []models.Tarea
}

// Agrupar splits tareas into the status columns in board order, keeping
// the input order inside each column. Every column is present.
func Agrupar(tareas []models.Tarea) []Columna {
	cols := make([]Columna, len(models.Estados))
	for i, estado := range models.Estados {
		cols[i] = Columna{Estado: estado, Tareas: []models.Tarea{}}
	}
	for _, t := range tareas {
		if i := t.Estado.Index(); i >= 0 {
			cols[i].Tareas = append(cols[i].Tareas, t)
		}
	}
	return cols
}

// Filtro narrows the board. Zero fields match everything.
type Filtro struct {
	// Texto matches titulo or descripcion, case-insensitively
	Texto       string
	Responsable string
	Estado      models.Estado
	Prioridad   models.Prioridad
}

// Activo reports whether any criterion is set
func (f Filtro) Activo() bool {
	return strings.TrimSpace(f.Texto) != "" || f.Responsable != "" || f.Estado != "" || f.Prioridad != ""
}

// Coincide reports whether t passes every criterion
func (f Filtro) Coincide(t models.Tarea) bool {
	if texto := strings.ToLower(strings.TrimSpace(f.Texto)); texto != "" {
		if !strings.Contains(strings.ToLower(t.Titulo), texto) &&
			!strings.Contains(strings.ToLower(t.Descripcion), texto) {
			return false
		}
	}
	if f.Responsable != "" && t.Responsable != f.Responsable {
		return false
	}
	if f.Estado != "" && t.Estado != f.Estado {
		return false
	}
	if f.Prioridad != "" && t.Prioridad != f.Prioridad {
		return false
	}
	return true
}

// Filtrar returns the tareas matching f, in order
func Filtrar(tareas []models.Tarea, f Filtro) []models.Tarea {
	out := make([]models.Tarea, 0, len(tareas))
	for _, t := range tareas {
		if f.Coincide(t) {
			out = append(out, t)
		}
	}
	return out
}
