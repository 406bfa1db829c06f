package responsable

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/thenoetrevino/tablero/internal/database"
	"github.com/thenoetrevino/tablero/internal/events"
	"github.com/thenoetrevino/tablero/internal/models"
)

// Service defines all responsable-related business operations
type Service interface {
	List(ctx context.Context) ([]*models.Responsable, error)
	ListActivos(ctx context.Context) ([]*models.Responsable, error)
	Get(ctx context.Context, id int) (*models.Responsable, error)
	Create(ctx context.Context, req CreateResponsableRequest) (*models.Responsable, error)
	Update(ctx context.Context, id int, req UpdateResponsableRequest) (*models.Responsable, error)
	Delete(ctx context.Context, id int) error
	ToggleActivo(ctx context.Context, id int) (*models.Responsable, error)
}

// CreateResponsableRequest encapsulates a new responsable
type CreateResponsableRequest struct {
	Nombre string `json:"nombre"`
	Email  string `json:"email"`
	Activo *bool  `json:"activo,omitempty"` // nil means true
}

// UpdateResponsableRequest encapsulates a partial update.
// Fields with pointers are optional - nil means don't update
type UpdateResponsableRequest struct {
	Nombre *string `json:"nombre,omitempty"`
	Email  *string `json:"email,omitempty"`
	Activo *bool   `json:"activo,omitempty"`
}

// service implements Service interface
type service struct {
	repo      database.DataStore
	publisher events.Publisher
	logger    *slog.Logger
}

// NewService creates a new responsable service. publisher may be nil.
func NewService(repo database.DataStore, publisher events.Publisher, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &service{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

// List returns every responsable ordered by name
func (s *service) List(ctx context.Context) ([]*models.Responsable, error) {
	responsables, err := s.repo.GetAllResponsables(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list responsables: %w", err)
	}
	return responsables, nil
}

// ListActivos returns the active responsables ordered by name
func (s *service) ListActivos(ctx context.Context) ([]*models.Responsable, error) {
	responsables, err := s.repo.GetResponsablesActivos(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active responsables: %w", err)
	}
	return responsables, nil
}

// Get retrieves a responsable by id
func (s *service) Get(ctx context.Context, id int) (*models.Responsable, error) {
	if id <= 0 {
		return nil, ErrInvalidResponsable
	}

	r, err := s.repo.GetResponsableByID(ctx, id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrResponsableNotFound
		}
		return nil, fmt.Errorf("failed to get responsable: %w", err)
	}
	return r, nil
}

// Create validates and inserts a responsable. The name lookup gives the
// usual conflict message; the unique columns catch concurrent creates.
func (s *service) Create(ctx context.Context, req CreateResponsableRequest) (*models.Responsable, error) {
	nombre := strings.TrimSpace(req.Nombre)
	email := strings.TrimSpace(req.Email)

	if nombre == "" {
		return nil, ErrNombreRequerido
	}
	if email == "" {
		return nil, ErrEmailRequerido
	}
	if !validEmail(email) {
		return nil, ErrEmailFormato
	}

	if err := s.ensureNombreLibre(ctx, nombre, 0); err != nil {
		return nil, err
	}

	activo := req.Activo == nil || *req.Activo
	r, err := s.repo.CreateResponsable(ctx, nombre, email, activo)
	if err != nil {
		return nil, mapWriteError(err, "create")
	}

	s.publish(ctx, events.ResponsableCreado, r.ID)

	return r, nil
}

// Update applies a partial update after re-validating provided fields
func (s *service) Update(ctx context.Context, id int, req UpdateResponsableRequest) (*models.Responsable, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	patch := database.ResponsablePatch{Activo: req.Activo}

	if req.Nombre != nil {
		nombre := strings.TrimSpace(*req.Nombre)
		if nombre == "" {
			return nil, ErrNombreVacio
		}
		if err := s.ensureNombreLibre(ctx, nombre, id); err != nil {
			return nil, err
		}
		patch.Nombre = &nombre
	}

	if req.Email != nil {
		email := strings.TrimSpace(*req.Email)
		if email == "" {
			return nil, ErrEmailVacio
		}
		if !validEmail(email) {
			return nil, ErrEmailFormato
		}
		patch.Email = &email
	}

	r, err := s.repo.UpdateResponsable(ctx, id, patch)
	if err != nil {
		return nil, mapWriteError(err, "update")
	}

	s.publish(ctx, events.ResponsableActualizado, id)

	return r, nil
}

// Delete removes a responsable that no task references by name
func (s *service) Delete(ctx context.Context, id int) error {
	r, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	n, err := s.repo.CountTareasByResponsable(ctx, r.Nombre)
	if err != nil {
		return fmt.Errorf("failed to count tareas: %w", err)
	}
	if n > 0 {
		return tareasAsignadas(n)
	}

	if err := s.repo.DeleteResponsable(ctx, id); err != nil {
		return mapWriteError(err, "delete")
	}

	s.publish(ctx, events.ResponsableEliminado, id)

	return nil
}

// ToggleActivo flips the active flag through the update path
func (s *service) ToggleActivo(ctx context.Context, id int) (*models.Responsable, error) {
	r, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	activo := !r.Activo
	return s.Update(ctx, id, UpdateResponsableRequest{Activo: &activo})
}

// ensureNombreLibre fails with a conflict when another responsable
// (not self) already uses nombre
func (s *service) ensureNombreLibre(ctx context.Context, nombre string, self int) error {
	existing, err := s.repo.GetResponsableByNombre(ctx, nombre)
	switch {
	case errors.Is(err, database.ErrNotFound):
		return nil
	case err != nil:
		return fmt.Errorf("failed to look up responsable: %w", err)
	case existing.ID != self:
		return ErrNombreDuplicado
	default:
		return nil
	}
}

// mapWriteError turns storage sentinels into the service taxonomy
func mapWriteError(err error, op string) error {
	switch {
	case errors.Is(err, database.ErrDuplicateNombre):
		return ErrNombreDuplicado
	case errors.Is(err, database.ErrDuplicateEmail):
		return ErrEmailDuplicado
	case errors.Is(err, database.ErrNotFound):
		return ErrResponsableNotFound
	default:
		return fmt.Errorf("failed to %s responsable: %w", op, err)
	}
}

// publish sends a change event; failures are logged, never returned
func (s *service) publish(ctx context.Context, typ events.EventType, id int) {
	if s.publisher == nil {
		return
	}
	if err := events.PublishWithRetry(ctx, s.publisher, events.NewEvent(typ, id), events.DefaultRetries); err != nil {
		s.logger.Warn("change event not delivered", "event_type", typ, "id", id, "error", err)
	}
}
