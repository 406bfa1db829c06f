package database

import (
	"context"

	"github.com/thenoetrevino/tablero/internal/models"
)

// TareaRepository defines task and comment persistence
type TareaRepository interface {
	CreateTarea(ctx context.Context, in TareaInput) (*models.Tarea, error)
	GetAllTareas(ctx context.Context) ([]*models.Tarea, error)
	GetTareaByID(ctx context.Context, id int) (*models.Tarea, error)
	UpdateTarea(ctx context.Context, id int, patch TareaPatch) (*models.Tarea, error)
	DeleteTarea(ctx context.Context, id int) error
	CountTareasByResponsable(ctx context.Context, nombre string) (int, error)

	CreateComentario(ctx context.Context, tareaID int, autor, contenido string, tipo models.TipoComentario) (*models.Comentario, error)
	DeleteComentario(ctx context.Context, id int) error
}

// ResponsableRepository defines assignee persistence
type ResponsableRepository interface {
	GetAllResponsables(ctx context.Context) ([]*models.Responsable, error)
	GetResponsablesActivos(ctx context.Context) ([]*models.Responsable, error)
	GetResponsableByID(ctx context.Context, id int) (*models.Responsable, error)
	GetResponsableByNombre(ctx context.Context, nombre string) (*models.Responsable, error)
	CreateResponsable(ctx context.Context, nombre, email string, activo bool) (*models.Responsable, error)
	UpdateResponsable(ctx context.Context, id int, patch ResponsablePatch) (*models.Responsable, error)
	DeleteResponsable(ctx context.Context, id int) error
}

// DataStore is the union of the repositories; services depend on the
// smaller interfaces.
type DataStore interface {
	TareaRepository
	ResponsableRepository
}

var _ DataStore = (*Repository)(nil)
