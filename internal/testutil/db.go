// Package testutil holds the fixtures shared by service, API and CLI tests.
package testutil

import (
	"context"
	"testing"

	"github.com/thenoetrevino/tablero/internal/config"
	"github.com/thenoetrevino/tablero/internal/database"
	"github.com/thenoetrevino/tablero/internal/models"
)

// SetupTestDB creates an in-memory database with the full schema, the
// seeded responsables and the foreign key column
func SetupTestDB(t *testing.T) *database.DB {
	t.Helper()
	db, err := database.InitDB(context.Background(), config.DatabaseConfig{
		Driver:     config.DriverSQLite,
		SQLitePath: ":memory:",
	})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("Warning: db close error during cleanup: %v", err)
		}
	})
	return db
}

// SetupTestRepo wraps SetupTestDB in a Repository
func SetupTestRepo(t *testing.T) *database.Repository {
	t.Helper()
	return database.NewRepository(SetupTestDB(t))
}

// CreateTestTarea inserts a task in the given status and returns it
func CreateTestTarea(t *testing.T, repo database.TareaRepository, titulo, responsable string, estado models.Estado) *models.Tarea {
	t.Helper()
	tarea, err := repo.CreateTarea(context.Background(), database.TareaInput{
		Titulo:      titulo,
		Descripcion: "Descripción de " + titulo,
		Estado:      estado,
		Responsable: responsable,
		Prioridad:   models.PrioridadMedia,
		Etiquetas:   []string{},
	})
	if err != nil {
		t.Fatalf("Failed to create test tarea: %v", err)
	}
	return tarea
}

// CreateTestComentario attaches a plain comment to a task
func CreateTestComentario(t *testing.T, repo database.TareaRepository, tareaID int, contenido string) *models.Comentario {
	t.Helper()
	c, err := repo.CreateComentario(context.Background(), tareaID, "Tester", contenido, models.TipoComentarioComentario)
	if err != nil {
		t.Fatalf("Failed to create test comentario: %v", err)
	}
	return c
}

// CreateTestResponsable inserts an active responsable
func CreateTestResponsable(t *testing.T, repo database.ResponsableRepository, nombre, email string) *models.Responsable {
	t.Helper()
	r, err := repo.CreateResponsable(context.Background(), nombre, email, true)
	if err != nil {
		t.Fatalf("Failed to create test responsable: %v", err)
	}
	return r
}
