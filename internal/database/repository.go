package database

import (
	"context"

	"github.com/thenoetrevino/tablero/internal/models"
)

// Repository provides a unified interface to all data operations.
// It composes domain-specific repositories using struct embedding.
type Repository struct {
	*TareaRepo
	*ResponsableRepo
}

// NewRepository creates a new Repository instance wrapping the given database connection.
func NewRepository(db *DB) *Repository {
	return &Repository{
		TareaRepo:       NewTareaRepo(db),
		ResponsableRepo: NewResponsableRepo(db),
	}
}

// Wrapper methods for TareaRepo
func (r *Repository) CreateTarea(ctx context.Context, in TareaInput) (*models.Tarea, error) {
	return r.TareaRepo.Create(ctx, in)
}

func (r *Repository) GetAllTareas(ctx context.Context) ([]*models.Tarea, error) {
	return r.TareaRepo.GetAll(ctx)
}

func (r *Repository) GetTareaByID(ctx context.Context, id int) (*models.Tarea, error) {
	return r.TareaRepo.GetByID(ctx, id)
}

func (r *Repository) UpdateTarea(ctx context.Context, id int, patch TareaPatch) (*models.Tarea, error) {
	return r.TareaRepo.Update(ctx, id, patch)
}

func (r *Repository) DeleteTarea(ctx context.Context, id int) error {
	return r.TareaRepo.Delete(ctx, id)
}

func (r *Repository) CountTareasByResponsable(ctx context.Context, nombre string) (int, error) {
	return r.TareaRepo.CountByResponsable(ctx, nombre)
}

// Wrapper methods for ResponsableRepo
func (r *Repository) GetAllResponsables(ctx context.Context) ([]*models.Responsable, error) {
	return r.ResponsableRepo.GetAll(ctx)
}

func (r *Repository) GetResponsablesActivos(ctx context.Context) ([]*models.Responsable, error) {
	return r.ResponsableRepo.GetActivos(ctx)
}

func (r *Repository) GetResponsableByID(ctx context.Context, id int) (*models.Responsable, error) {
	return r.ResponsableRepo.GetByID(ctx, id)
}

func (r *Repository) GetResponsableByNombre(ctx context.Context, nombre string) (*models.Responsable, error) {
	return r.ResponsableRepo.GetByNombre(ctx, nombre)
}

func (r *Repository) CreateResponsable(ctx context.Context, nombre, email string, activo bool) (*models.Responsable, error) {
	return r.ResponsableRepo.Create(ctx, nombre, email, activo)
}

func (r *Repository) UpdateResponsable(ctx context.Context, id int, patch ResponsablePatch) (*models.Responsable, error) {
	return r.ResponsableRepo.Update(ctx, id, patch)
}

func (r *Repository) DeleteResponsable(ctx context.Context, id int) error {
	return r.ResponsableRepo.Delete(ctx, id)
}
