package tarea

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/thenoetrevino/tablero/internal/database"
	"github.com/thenoetrevino/tablero/internal/events"
	"github.com/thenoetrevino/tablero/internal/models"
)

// Service defines all task-related business operations
type Service interface {
	// Read operations
	ListTareas(ctx context.Context) ([]*models.Tarea, error)
	GetTarea(ctx context.Context, id int) (*models.Tarea, error)
	ListByEstado(ctx context.Context, estado models.Estado) ([]*models.Tarea, error)
	ListByResponsable(ctx context.Context, nombre string) ([]*models.Tarea, error)
	Estadisticas(ctx context.Context) (models.Estadisticas, error)

	// Write operations
	CreateTarea(ctx context.Context, req CreateTareaRequest) (*models.Tarea, error)
	UpdateTarea(ctx context.Context, id int, req UpdateTareaRequest) (*models.Tarea, error)
	DeleteTarea(ctx context.Context, id int) error

	// Comments
	AddComentario(ctx context.Context, tareaID int, req CreateComentarioRequest) (*models.Comentario, error)
	DeleteComentario(ctx context.Context, id int) error
}

// CreateTareaRequest encapsulates all data needed to create a task
type CreateTareaRequest struct {
	Titulo           string           `json:"titulo"`
	Descripcion      string           `json:"descripcion"`
	Estado           models.Estado    `json:"estado"`
	Responsable      string           `json:"responsable"`
	FechaVencimiento *time.Time       `json:"fechaVencimiento,omitempty"`
	Prioridad        models.Prioridad `json:"prioridad,omitempty"` // empty means Media
	Etiquetas        []string         `json:"etiquetas,omitempty"`
	TiempoEstimado   *float64         `json:"tiempoEstimado,omitempty"`
}

// UpdateTareaRequest encapsulates a partial task update.
// Fields with pointers are optional - nil means don't update.
// On the wire an explicit null for fechaVencimiento or tiempoEstimado
// sets the matching Clear flag.
type UpdateTareaRequest struct {
	Titulo           *string           `json:"titulo,omitempty"`
	Descripcion      *string           `json:"descripcion,omitempty"`
	Estado           *models.Estado    `json:"estado,omitempty"`
	Responsable      *string           `json:"responsable,omitempty"`
	FechaVencimiento *time.Time        `json:"fechaVencimiento,omitempty"`
	Prioridad        *models.Prioridad `json:"prioridad,omitempty"`
	Etiquetas        *[]string         `json:"etiquetas,omitempty"`
	TiempoEstimado   *float64          `json:"tiempoEstimado,omitempty"`
	TiempoTrabajado  *float64          `json:"tiempoTrabajado,omitempty"`

	ClearFechaVencimiento bool `json:"-"`
	ClearTiempoEstimado   bool `json:"-"`
}

// CreateComentarioRequest encapsulates a new comment
type CreateComentarioRequest struct {
	Autor     string                `json:"autor"`
	Contenido string                `json:"contenido"`
	Tipo      models.TipoComentario `json:"tipo,omitempty"` // empty means comentario
}

// service implements Service interface
type service struct {
	repo      database.TareaRepository
	publisher events.Publisher
	logger    *slog.Logger
}

// NewService creates a new task service. publisher may be nil.
func NewService(repo database.TareaRepository, publisher events.Publisher, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &service{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

// ListTareas returns every task with its comments, newest first
func (s *service) ListTareas(ctx context.Context) ([]*models.Tarea, error) {
	tareas, err := s.repo.GetAllTareas(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tareas: %w", err)
	}
	if tareas == nil {
		tareas = []*models.Tarea{}
	}
	return tareas, nil
}

// GetTarea retrieves a task with its comments
func (s *service) GetTarea(ctx context.Context, id int) (*models.Tarea, error) {
	if id <= 0 {
		return nil, ErrInvalidTareaID
	}

	tarea, err := s.repo.GetTareaByID(ctx, id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrTareaNotFound
		}
		return nil, fmt.Errorf("failed to get tarea: %w", err)
	}
	return tarea, nil
}

// CreateTarea handles task creation with validation and business rules
func (s *service) CreateTarea(ctx context.Context, req CreateTareaRequest) (*models.Tarea, error) {
	if err := s.validateCreateTarea(req); err != nil {
		return nil, err
	}

	prioridad := req.Prioridad
	if prioridad == "" {
		prioridad = models.PrioridadMedia
	}
	etiquetas := req.Etiquetas
	if etiquetas == nil {
		etiquetas = []string{}
	}

	tarea, err := s.repo.CreateTarea(ctx, database.TareaInput{
		Titulo:           strings.TrimSpace(req.Titulo),
		Descripcion:      strings.TrimSpace(req.Descripcion),
		Estado:           req.Estado,
		Responsable:      strings.TrimSpace(req.Responsable),
		FechaVencimiento: req.FechaVencimiento,
		Prioridad:        prioridad,
		Etiquetas:        etiquetas,
		TiempoEstimado:   req.TiempoEstimado,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create tarea: %w", err)
	}

	s.publish(ctx, events.TareaCreada, tarea.ID)

	return tarea, nil
}

// UpdateTarea applies a partial update. The id is validated first, then
// existence, then each provided field.
func (s *service) UpdateTarea(ctx context.Context, id int, req UpdateTareaRequest) (*models.Tarea, error) {
	if _, err := s.GetTarea(ctx, id); err != nil {
		return nil, err
	}

	if err := s.validateUpdateTarea(req); err != nil {
		return nil, err
	}

	tarea, err := s.repo.UpdateTarea(ctx, id, toPatch(req))
	if err != nil {
		// deleted between the existence check and the write
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrTareaNotFound
		}
		return nil, fmt.Errorf("failed to update tarea: %w", err)
	}

	s.publish(ctx, events.TareaActualizada, id)

	return tarea, nil
}

// DeleteTarea handles task deletion; comments cascade
func (s *service) DeleteTarea(ctx context.Context, id int) error {
	if _, err := s.GetTarea(ctx, id); err != nil {
		return err
	}

	if err := s.repo.DeleteTarea(ctx, id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return ErrTareaNotFound
		}
		return fmt.Errorf("failed to delete tarea: %w", err)
	}

	s.publish(ctx, events.TareaEliminada, id)

	return nil
}

// ListByEstado filters the full listing by status
func (s *service) ListByEstado(ctx context.Context, estado models.Estado) ([]*models.Tarea, error) {
	if !estado.Valid() {
		return nil, ErrEstadoInvalido
	}

	tareas, err := s.ListTareas(ctx)
	if err != nil {
		return nil, err
	}

	filtered := []*models.Tarea{}
	for _, t := range tareas {
		if t.Estado == estado {
			filtered = append(filtered, t)
		}
	}
	return filtered, nil
}

// ListByResponsable filters the full listing by a case-insensitive
// substring of the assignee name
func (s *service) ListByResponsable(ctx context.Context, nombre string) ([]*models.Tarea, error) {
	if strings.TrimSpace(nombre) == "" {
		return nil, ErrResponsableRequerido
	}

	tareas, err := s.ListTareas(ctx)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(nombre)
	filtered := []*models.Tarea{}
	for _, t := range tareas {
		if strings.Contains(strings.ToLower(t.Responsable), needle) {
			filtered = append(filtered, t)
		}
	}
	return filtered, nil
}

// Estadisticas counts tasks per status (every status present, zero when
// unused) and per distinct assignee
func (s *service) Estadisticas(ctx context.Context) (models.Estadisticas, error) {
	tareas, err := s.ListTareas(ctx)
	if err != nil {
		return nil, err
	}

	stats := make(models.Estadisticas, len(models.Estados))
	for _, e := range models.Estados {
		stats[string(e)] = 0
	}
	for _, t := range tareas {
		stats[string(t.Estado)]++
		stats[models.ResponsableStatKey(t.Responsable)]++
	}
	return stats, nil
}

// AddComentario attaches a comment to an existing task
func (s *service) AddComentario(ctx context.Context, tareaID int, req CreateComentarioRequest) (*models.Comentario, error) {
	if tareaID <= 0 {
		return nil, ErrInvalidTareaID
	}
	if strings.TrimSpace(req.Autor) == "" {
		return nil, ErrAutorRequerido
	}
	if strings.TrimSpace(req.Contenido) == "" {
		return nil, ErrContenidoRequerido
	}

	tipo := req.Tipo
	if tipo == "" {
		tipo = models.TipoComentarioComentario
	}
	if !tipo.Valid() {
		return nil, ErrTipoInvalido
	}

	if _, err := s.GetTarea(ctx, tareaID); err != nil {
		return nil, err
	}

	comentario, err := s.repo.CreateComentario(ctx, tareaID, strings.TrimSpace(req.Autor), req.Contenido, tipo)
	if err != nil {
		return nil, fmt.Errorf("failed to create comentario: %w", err)
	}

	s.publish(ctx, events.ComentarioCreado, comentario.ID)

	return comentario, nil
}

// DeleteComentario removes a comment; a missing id is NotFound
func (s *service) DeleteComentario(ctx context.Context, id int) error {
	if id <= 0 {
		return ErrInvalidComentarioID
	}

	if err := s.repo.DeleteComentario(ctx, id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return ErrComentarioNotFound
		}
		return fmt.Errorf("failed to delete comentario: %w", err)
	}

	s.publish(ctx, events.ComentarioEliminado, id)

	return nil
}

// ============================================================================
// Validation helpers
// ============================================================================

func (s *service) validateCreateTarea(req CreateTareaRequest) error {
	if strings.TrimSpace(req.Titulo) == "" {
		return ErrTituloRequerido
	}
	if strings.TrimSpace(req.Descripcion) == "" {
		return ErrDescripcionRequerida
	}
	if strings.TrimSpace(req.Responsable) == "" {
		return ErrResponsableRequerido
	}
	if !req.Estado.Valid() {
		return ErrEstadoInvalido
	}
	if req.Prioridad != "" && !req.Prioridad.Valid() {
		return ErrPrioridadInvalida
	}
	if req.TiempoEstimado != nil && *req.TiempoEstimado < 0 {
		return ErrTiempoInvalido
	}
	return nil
}

func (s *service) validateUpdateTarea(req UpdateTareaRequest) error {
	if req.Titulo != nil && strings.TrimSpace(*req.Titulo) == "" {
		return ErrTituloVacio
	}
	if req.Descripcion != nil && strings.TrimSpace(*req.Descripcion) == "" {
		return ErrDescripcionVacia
	}
	if req.Responsable != nil && strings.TrimSpace(*req.Responsable) == "" {
		return ErrResponsableVacio
	}
	if req.Estado != nil && !req.Estado.Valid() {
		return ErrEstadoInvalido
	}
	if req.Prioridad != nil && !req.Prioridad.Valid() {
		return ErrPrioridadInvalida
	}
	if (req.TiempoEstimado != nil && *req.TiempoEstimado < 0) ||
		(req.TiempoTrabajado != nil && *req.TiempoTrabajado < 0) {
		return ErrTiempoInvalido
	}
	return nil
}

// toPatch trims the provided text fields
func toPatch(req UpdateTareaRequest) database.TareaPatch {
	return database.TareaPatch{
		Titulo:           trimmed(req.Titulo),
		Descripcion:      trimmed(req.Descripcion),
		Estado:           req.Estado,
		Responsable:      trimmed(req.Responsable),
		FechaVencimiento: req.FechaVencimiento,
		Prioridad:        req.Prioridad,
		Etiquetas:        req.Etiquetas,
		TiempoEstimado:   req.TiempoEstimado,
		TiempoTrabajado:  req.TiempoTrabajado,

		ClearFechaVencimiento: req.ClearFechaVencimiento && req.FechaVencimiento == nil,
		ClearTiempoEstimado:   req.ClearTiempoEstimado && req.TiempoEstimado == nil,
	}
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
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
