package responsable

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/tablero/internal/apperrors"
	"github.com/thenoetrevino/tablero/internal/database"
	"github.com/thenoetrevino/tablero/internal/events"
	"github.com/thenoetrevino/tablero/internal/models"
	"github.com/thenoetrevino/tablero/internal/testutil"
)

// ============================================================================
// TEST HELPERS
// ============================================================================

func setupService(t *testing.T) (Service, *database.Repository, *testutil.RecordingPublisher) {
	t.Helper()
	repo := testutil.SetupTestRepo(t)
	pub := testutil.NewRecordingPublisher()
	return NewService(repo, pub, nil), repo, pub
}

func ptr[T any](v T) *T { return &v }

// noUpdates is a store whose updates always fail
type noUpdates struct {
	*database.Repository
}

func (noUpdates) UpdateResponsable(context.Context, int, database.ResponsablePatch) (*models.Responsable, error) {
	return nil, errors.New("update not allowed")
}

// ============================================================================
// EMAIL VALIDATION
// ============================================================================

func TestValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"ana@empresa.com", true},
		{"a.b+c@sub.dominio.co", true},
		{"not-an-email", false},
		{"sin@punto", false},
		{"con espacio@empresa.com", false},
		{"@empresa.com", false},
		{"ana@@empresa.com", false},
	}
	for _, tc := range tests {
		t.Run(tc.email, func(t *testing.T) {
			assert.Equal(t, tc.want, validEmail(tc.email))
		})
	}
}

// ============================================================================
// CREATE
// ============================================================================

func TestCreate(t *testing.T) {
	svc, _, pub := setupService(t)

	r, err := svc.Create(context.Background(), CreateResponsableRequest{Nombre: " Lucía ", Email: "lucia@empresa.com"})
	require.NoError(t, err)
	assert.NotZero(t, r.ID)
	assert.Equal(t, "Lucía", r.Nombre)
	assert.True(t, r.Activo, "activo defaults to true")
	assert.Equal(t, []events.EventType{events.ResponsableCreado}, pub.Types())
}

func TestCreate_Inactive(t *testing.T) {
	svc, _, _ := setupService(t)

	r, err := svc.Create(context.Background(), CreateResponsableRequest{
		Nombre: "Pausado", Email: "pausado@empresa.com", Activo: ptr(false),
	})
	require.NoError(t, err)
	assert.False(t, r.Activo)
}

func TestCreate_InactiveIsOneWrite(t *testing.T) {
	repo := testutil.SetupTestRepo(t)
	svc := NewService(noUpdates{repo}, nil, nil)
	ctx := context.Background()

	r, err := svc.Create(ctx, CreateResponsableRequest{
		Nombre: "Pausado", Email: "pausado@empresa.com", Activo: ptr(false),
	})
	require.NoError(t, err)
	assert.False(t, r.Activo)

	stored, err := repo.GetResponsableByID(ctx, r.ID)
	require.NoError(t, err)
	assert.False(t, stored.Activo)
}

func TestCreate_Validation(t *testing.T) {
	svc, _, pub := setupService(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  CreateResponsableRequest
		want error
	}{
		{"missing nombre", CreateResponsableRequest{Email: "x@y.com"}, ErrNombreRequerido},
		{"missing email", CreateResponsableRequest{Nombre: "X"}, ErrEmailRequerido},
		{"bad email", CreateResponsableRequest{Nombre: "X", Email: "not-an-email"}, ErrEmailFormato},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tc.req)
			assert.ErrorIs(t, err, tc.want)
			assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
		})
	}
	assert.Empty(t, pub.Events())
}

func TestCreate_Conflicts(t *testing.T) {
	svc, _, _ := setupService(t)
	ctx := context.Background()

	// seeded default
	_, err := svc.Create(ctx, CreateResponsableRequest{Nombre: "Administrador", Email: "otro@empresa.com"})
	assert.ErrorIs(t, err, ErrNombreDuplicado)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))

	// the email only collides at the unique column
	_, err = svc.Create(ctx, CreateResponsableRequest{Nombre: "Nuevo Admin", Email: "admin@empresa.com"})
	assert.ErrorIs(t, err, ErrEmailDuplicado)
	assert.Equal(t, "Ya existe un responsable con ese email", apperrors.MessageOf(err, ""))
}

// ============================================================================
// GET / UPDATE / TOGGLE
// ============================================================================

func TestGet(t *testing.T) {
	svc, _, _ := setupService(t)
	ctx := context.Background()

	_, err := svc.Get(ctx, 0)
	assert.ErrorIs(t, err, ErrInvalidResponsable)

	_, err = svc.Get(ctx, 12345)
	assert.ErrorIs(t, err, ErrResponsableNotFound)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestList(t *testing.T) {
	svc, repo, _ := setupService(t)
	ctx := context.Background()

	all, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 7)

	_, err = repo.UpdateResponsable(ctx, all[0].ID, database.ResponsablePatch{Activo: ptr(false)})
	require.NoError(t, err)

	activos, err := svc.ListActivos(ctx)
	require.NoError(t, err)
	assert.Len(t, activos, 6)
	for i := 1; i < len(activos); i++ {
		assert.LessOrEqual(t, activos[i-1].Nombre, activos[i].Nombre)
	}
}

func TestUpdate(t *testing.T) {
	svc, repo, pub := setupService(t)
	ctx := context.Background()
	r := testutil.CreateTestResponsable(t, repo, "Temporal", "temporal@empresa.com")

	updated, err := svc.Update(ctx, r.ID, UpdateResponsableRequest{Email: ptr("nuevo@empresa.com")})
	require.NoError(t, err)
	assert.Equal(t, "nuevo@empresa.com", updated.Email)
	assert.Equal(t, "Temporal", updated.Nombre)
	assert.Equal(t, []events.EventType{events.ResponsableActualizado}, pub.Types())

	// keeping its own name is not a conflict
	_, err = svc.Update(ctx, r.ID, UpdateResponsableRequest{Nombre: ptr("Temporal")})
	assert.NoError(t, err)
}

func TestUpdate_Validation(t *testing.T) {
	svc, repo, _ := setupService(t)
	ctx := context.Background()
	r := testutil.CreateTestResponsable(t, repo, "Temporal", "temporal@empresa.com")

	_, err := svc.Update(ctx, 9999, UpdateResponsableRequest{Nombre: ptr("")})
	assert.ErrorIs(t, err, ErrResponsableNotFound, "existence is checked first")

	_, err = svc.Update(ctx, r.ID, UpdateResponsableRequest{Nombre: ptr(" ")})
	assert.ErrorIs(t, err, ErrNombreVacio)

	_, err = svc.Update(ctx, r.ID, UpdateResponsableRequest{Email: ptr("")})
	assert.ErrorIs(t, err, ErrEmailVacio)

	_, err = svc.Update(ctx, r.ID, UpdateResponsableRequest{Email: ptr("nope")})
	assert.ErrorIs(t, err, ErrEmailFormato)

	_, err = svc.Update(ctx, r.ID, UpdateResponsableRequest{Nombre: ptr("Administrador")})
	assert.ErrorIs(t, err, ErrNombreDuplicado)

	_, err = svc.Update(ctx, r.ID, UpdateResponsableRequest{Email: ptr("admin@empresa.com")})
	assert.ErrorIs(t, err, ErrEmailDuplicado)
}

func TestToggleActivo(t *testing.T) {
	svc, repo, _ := setupService(t)
	ctx := context.Background()
	r := testutil.CreateTestResponsable(t, repo, "Alterna", "alterna@empresa.com")

	off, err := svc.ToggleActivo(ctx, r.ID)
	require.NoError(t, err)
	assert.False(t, off.Activo)

	on, err := svc.ToggleActivo(ctx, r.ID)
	require.NoError(t, err)
	assert.True(t, on.Activo)

	_, err = svc.ToggleActivo(ctx, 9999)
	assert.ErrorIs(t, err, ErrResponsableNotFound)
}

// ============================================================================
// DELETE
// ============================================================================

func TestDelete_BlockedByTareas(t *testing.T) {
	svc, repo, _ := setupService(t)
	ctx := context.Background()
	r := testutil.CreateTestResponsable(t, repo, "Ocupado", "ocupado@empresa.com")
	testutil.CreateTestTarea(t, repo, "uno", "Ocupado", models.EstadoCreada)
	testutil.CreateTestTarea(t, repo, "dos", "Ocupado", models.EstadoFinalizada)

	err := svc.Delete(ctx, r.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTareasAsignadas))
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
	assert.Equal(t, "No se puede eliminar el responsable porque tiene 2 tareas asignadas", apperrors.MessageOf(err, ""))

	_, err = svc.Get(ctx, r.ID)
	assert.NoError(t, err, "still present")
}

func TestDelete(t *testing.T) {
	svc, repo, pub := setupService(t)
	ctx := context.Background()
	r := testutil.CreateTestResponsable(t, repo, "Libre", "libre@empresa.com")

	require.NoError(t, svc.Delete(ctx, r.ID))
	assert.Equal(t, []events.EventType{events.ResponsableEliminado}, pub.Types())

	assert.ErrorIs(t, svc.Delete(ctx, r.ID), ErrResponsableNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, -1), ErrInvalidResponsable)
}
