package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/tablero/internal/events"
	"github.com/thenoetrevino/tablero/internal/models"
	tareaservice "github.com/thenoetrevino/tablero/internal/services/tarea"
	"github.com/thenoetrevino/tablero/internal/testutil"
)

func TestNew(t *testing.T) {
	repo := testutil.SetupTestRepo(t)

	// Create app with no publisher
	app := New(repo)

	require.NotNil(t, app)
	assert.NotNil(t, app.TareaService)
	assert.NotNil(t, app.ResponsableService)
	assert.Nil(t, app.Publisher())
	assert.NotNil(t, app.Logger())
	assert.Equal(t, repo, app.Repo())
	assert.NoError(t, app.Close())
}

func TestNew_WithPublisher(t *testing.T) {
	repo := testutil.SetupTestRepo(t)
	pub := testutil.NewRecordingPublisher()

	app := New(repo, WithPublisher(pub), WithLogger(nil))

	_, err := app.TareaService.CreateTarea(context.Background(), tareaservice.CreateTareaRequest{
		Titulo:      "Cablear servicios",
		Descripcion: "desde el contenedor",
		Estado:      models.EstadoCreada,
		Responsable: "Administrador",
	})
	require.NoError(t, err)
	assert.Equal(t, []events.EventType{events.TareaCreada}, pub.Types())

	require.NoError(t, app.Close())
	assert.True(t, pub.Closed())
}
