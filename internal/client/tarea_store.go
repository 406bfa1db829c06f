package client

import (
	"context"
	"fmt"

	"github.com/thenoetrevino/tablero/internal/models"
	tareaservice "github.com/thenoetrevino/tablero/internal/services/tarea"
)

// TareaAPI is the subset of Client the task store calls
type TareaAPI interface {
	ListTareas(ctx context.Context) ([]models.Tarea, error)
	CreateTarea(ctx context.Context, req tareaservice.CreateTareaRequest) (*models.Tarea, error)
	UpdateTarea(ctx context.Context, id int, req tareaservice.UpdateTareaRequest) (*models.Tarea, error)
	DeleteTarea(ctx context.Context, id int) error
	AddComentario(ctx context.Context, tareaID int, req tareaservice.CreateComentarioRequest) (*models.Comentario, error)
	DeleteComentario(ctx context.Context, id int) error
}

var _ TareaAPI = (*Client)(nil)

// TareaStore keeps the task list in sync with the API. Every action sets
// loading, calls the API, then merges the result or records the failure.
type TareaStore struct {
	api      TareaAPI
	store    *Store[models.Tarea]
	notifier *Notifier
}

// NewTareaStore creates an empty task store. Added tasks go first.
func NewTareaStore(api TareaAPI, notifier *Notifier) *TareaStore {
	if notifier == nil {
		notifier = NewNotifier()
	}
	return &TareaStore{
		api: api,
		store: NewStore(Reducer[models.Tarea]{
			ID:      func(t models.Tarea) int { return t.ID },
			Prepend: true,
		}),
		notifier: notifier,
	}
}

// State returns the current snapshot
func (s *TareaStore) State() State[models.Tarea] {
	return s.store.State()
}

// Find returns the cached task with id
func (s *TareaStore) Find(id int) (models.Tarea, bool) {
	return s.store.Find(id)
}

// Subscribe registers fn to run after every state change
func (s *TareaStore) Subscribe(fn func(State[models.Tarea])) {
	s.store.Subscribe(fn)
}

// Notifier returns the notice sink shared with the UI
func (s *TareaStore) Notifier() *Notifier {
	return s.notifier
}

// Load replaces the whole list with the server's. Repeated identical
// failures, as from polling a stopped server, notify once.
func (s *TareaStore) Load(ctx context.Context) error {
	prev := s.store.State().Error
	s.setLoading()

	tareas, err := s.api.ListTareas(ctx)
	if err != nil {
		msg := MessageOf(err)
		s.store.Dispatch(Action[models.Tarea]{Kind: SetError, Error: msg})
		if msg != prev {
			s.notifier.Error("Error al cargar las tareas")
		}
		return err
	}

	s.store.Dispatch(Action[models.Tarea]{Kind: ReplaceAll, Items: tareas})
	return nil
}

// Create adds a task
func (s *TareaStore) Create(ctx context.Context, req tareaservice.CreateTareaRequest) (*models.Tarea, error) {
	s.setLoading()
	tarea, err := s.api.CreateTarea(ctx, req)
	if err != nil {
		return nil, s.fail(err, "Error al crear la tarea")
	}
	s.store.Dispatch(Action[models.Tarea]{Kind: Add, Item: *tarea})
	s.notifier.Exito("Tarea creada exitosamente")
	return tarea, nil
}

// Update applies a partial update
func (s *TareaStore) Update(ctx context.Context, id int, req tareaservice.UpdateTareaRequest) (*models.Tarea, error) {
	s.setLoading()
	tarea, err := s.api.UpdateTarea(ctx, id, req)
	if err != nil {
		return nil, s.fail(err, "Error al actualizar la tarea")
	}
	s.store.Dispatch(Action[models.Tarea]{Kind: Update, Item: *tarea})
	s.notifier.Exito("Tarea actualizada exitosamente")
	return tarea, nil
}

// Move changes only the estado, the board's drag and drop
func (s *TareaStore) Move(ctx context.Context, id int, estado models.Estado) (*models.Tarea, error) {
	titulo := fmt.Sprintf("Tarea #%d", id)
	if cached, ok := s.store.Find(id); ok {
		titulo = cached.Titulo
	}

	s.setLoading()
	tarea, err := s.api.UpdateTarea(ctx, id, tareaservice.UpdateTareaRequest{Estado: &estado})
	if err != nil {
		return nil, s.fail(err, "Error al mover la tarea")
	}
	s.store.Dispatch(Action[models.Tarea]{Kind: Update, Item: *tarea})
	s.notifier.Exito(fmt.Sprintf("%q movida a %s", titulo, estado))
	return tarea, nil
}

// Delete removes a task
func (s *TareaStore) Delete(ctx context.Context, id int) error {
	s.setLoading()
	if err := s.api.DeleteTarea(ctx, id); err != nil {
		return s.fail(err, "Error al eliminar la tarea")
	}
	s.store.Dispatch(Action[models.Tarea]{Kind: Remove, ID: id})
	s.notifier.Exito("Tarea eliminada exitosamente")
	return nil
}

// AddComentario attaches a comment then reloads
func (s *TareaStore) AddComentario(ctx context.Context, tareaID int, req tareaservice.CreateComentarioRequest) (*models.Comentario, error) {
	s.setLoading()
	comentario, err := s.api.AddComentario(ctx, tareaID, req)
	if err != nil {
		return nil, s.fail(err, "Error al agregar el comentario")
	}
	if err := s.Load(ctx); err != nil {
		return nil, err
	}
	s.notifier.Exito("Comentario agregado exitosamente")
	return comentario, nil
}

// DeleteComentario deletes a comment then reloads
func (s *TareaStore) DeleteComentario(ctx context.Context, id int) error {
	s.setLoading()
	if err := s.api.DeleteComentario(ctx, id); err != nil {
		return s.fail(err, "Error al eliminar el comentario")
	}
	if err := s.Load(ctx); err != nil {
		return err
	}
	s.notifier.Exito("Comentario eliminado exitosamente")
	return nil
}

func (s *TareaStore) setLoading() {
	s.store.Dispatch(Action[models.Tarea]{Kind: SetLoading, Loading: true})
}

// fail records err in the state, shows notice, and returns err for callers
// that chain further work
func (s *TareaStore) fail(err error, notice string) error {
	s.store.Dispatch(Action[models.Tarea]{Kind: SetError, Error: MessageOf(err)})
	s.notifier.Error(notice + ": " + MessageOf(err))
	return err
}
