package client

import (
	"context"

	"github.com/thenoetrevino/tablero/internal/models"
	responsableservice "github.com/thenoetrevino/tablero/internal/services/responsable"
)

// ResponsableAPI is the subset of Client the responsable store calls
type ResponsableAPI interface {
	ListResponsables(ctx context.Context) ([]models.Responsable, error)
	CreateResponsable(ctx context.Context, req responsableservice.CreateResponsableRequest) (*models.Responsable, error)
	UpdateResponsable(ctx context.Context, id int, req responsableservice.UpdateResponsableRequest) (*models.Responsable, error)
	DeleteResponsable(ctx context.Context, id int) error
	ToggleResponsable(ctx context.Context, id int) (*models.Responsable, error)
}

var _ ResponsableAPI = (*Client)(nil)

// ResponsableStore keeps the responsable list. Added entries go last.
type ResponsableStore struct {
	api      ResponsableAPI
	store    *Store[models.Responsable]
	notifier *Notifier
}

// NewResponsableStore creates an empty responsable store
func NewResponsableStore(api ResponsableAPI, notifier *Notifier) *ResponsableStore {
	if notifier == nil {
		notifier = NewNotifier()
	}
	return &ResponsableStore{
		api: api,
		store: NewStore(Reducer[models.Responsable]{
			ID: func(r models.Responsable) int { return r.ID },
		}),
		notifier: notifier,
	}
}

// State returns the current snapshot
func (s *ResponsableStore) State() State[models.Responsable] {
	return s.store.State()
}

// Notifier returns the notice feed failures are reported to
func (s *ResponsableStore) Notifier() *Notifier {
	return s.notifier
}

// Load replaces the list with the server's
func (s *ResponsableStore) Load(ctx context.Context) error {
	s.setLoading()
	responsables, err := s.api.ListResponsables(ctx)
	if err != nil {
		return s.fail(err)
	}
	s.store.Dispatch(Action[models.Responsable]{Kind: ReplaceAll, Items: responsables})
	return nil
}

// Create adds a responsable
func (s *ResponsableStore) Create(ctx context.Context, req responsableservice.CreateResponsableRequest) (*models.Responsable, error) {
	s.setLoading()
	r, err := s.api.CreateResponsable(ctx, req)
	if err != nil {
		return nil, s.fail(err)
	}
	s.store.Dispatch(Action[models.Responsable]{Kind: Add, Item: *r})
	s.notifier.Exito("Responsable creado exitosamente")
	return r, nil
}

// Update applies a partial update
func (s *ResponsableStore) Update(ctx context.Context, id int, req responsableservice.UpdateResponsableRequest) (*models.Responsable, error) {
	s.setLoading()
	r, err := s.api.UpdateResponsable(ctx, id, req)
	if err != nil {
		return nil, s.fail(err)
	}
	s.store.Dispatch(Action[models.Responsable]{Kind: Update, Item: *r})
	s.notifier.Exito("Responsable actualizado exitosamente")
	return r, nil
}

// Delete removes a responsable
func (s *ResponsableStore) Delete(ctx context.Context, id int) error {
	s.setLoading()
	if err := s.api.DeleteResponsable(ctx, id); err != nil {
		return s.fail(err)
	}
	s.store.Dispatch(Action[models.Responsable]{Kind: Remove, ID: id})
	s.notifier.Exito("Responsable eliminado exitosamente")
	return nil
}

// Toggle flips the active flag
func (s *ResponsableStore) Toggle(ctx context.Context, id int) (*models.Responsable, error) {
	s.setLoading()
	r, err := s.api.ToggleResponsable(ctx, id)
	if err != nil {
		return nil, s.fail(err)
	}
	s.store.Dispatch(Action[models.Responsable]{Kind: Update, Item: *r})
	return r, nil
}

// Activos returns the cached active responsables
func (s *ResponsableStore) Activos() []models.Responsable {
	var out []models.Responsable
	for _, r := range s.store.State().Items {
		if r.Activo {
			out = append(out, r)
		}
	}
	return out
}

// Nombres returns the names of the cached active responsables
func (s *ResponsableStore) Nombres() []string {
	activos := s.Activos()
	nombres := make([]string, 0, len(activos))
	for _, r := range activos {
		nombres = append(nombres, r.Nombre)
	}
	return nombres
}

func (s *ResponsableStore) setLoading() {
	s.store.Dispatch(Action[models.Responsable]{Kind: SetLoading, Loading: true})
}

// fail shows the server message itself, which is specific for responsables
func (s *ResponsableStore) fail(err error) error {
	msg := MessageOf(err)
	s.store.Dispatch(Action[models.Responsable]{Kind: SetError, Error: msg})
	s.notifier.Error(msg)
	return err
}
