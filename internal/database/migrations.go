package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS responsables (
		id {{serial}},
		nombre TEXT NOT NULL UNIQUE,
		email TEXT NOT NULL UNIQUE,
		activo BOOLEAN NOT NULL DEFAULT TRUE,
		fecha_creacion {{timestamp}} NOT NULL,
		fecha_actualizacion {{timestamp}} NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS tareas (
		id {{serial}},
		titulo TEXT NOT NULL,
		descripcion TEXT NOT NULL,
		estado TEXT NOT NULL,
		responsable TEXT NOT NULL,
		fecha_creacion {{timestamp}} NOT NULL,
		fecha_vencimiento {{timestamp}},
		fecha_actualizacion {{timestamp}} NOT NULL,
		prioridad TEXT NOT NULL DEFAULT 'Media',
		etiquetas {{json}} NOT NULL DEFAULT '[]',
		tiempo_estimado {{float}},
		tiempo_trabajado {{float}} NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS comentarios (
		id {{serial}},
		tarea_id INTEGER NOT NULL REFERENCES tareas(id) ON DELETE CASCADE,
		autor TEXT NOT NULL,
		contenido TEXT NOT NULL,
		fecha_creacion {{timestamp}} NOT NULL,
		tipo TEXT NOT NULL DEFAULT 'comentario'
	)`,
	`CREATE INDEX IF NOT EXISTS idx_tareas_responsable ON tareas(responsable)`,
	`CREATE INDEX IF NOT EXISTS idx_comentarios_tarea ON comentarios(tarea_id, fecha_creacion)`,
}

// defaultResponsables are seeded into an empty responsables table
var defaultResponsables = []struct {
	nombre string
	email  string
}{
	{"Juan Henao", "juan.henao@empresa.com"},
	{"María García", "maria.garcia@empresa.com"},
	{"Carlos López", "carlos.lopez@empresa.com"},
	{"Ana Martínez", "ana.martinez@empresa.com"},
	{"Pedro Rodríguez", "pedro.rodriguez@empresa.com"},
	{"Laura Sánchez", "laura.sanchez@empresa.com"},
	{"Administrador", "admin@empresa.com"},
}

// runMigrations creates the schema, then runs the best-effort seed and
// foreign key steps. Only schema creation can fail startup.
func runMigrations(ctx context.Context, db *DB) error {
	types := db.dialect.columnTypes()
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, types.Replace(stmt)); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}

	if err := seedDefaultResponsables(ctx, db); err != nil {
		slog.Warn("failed to seed default responsables", "error", err)
	}

	if err := migrateResponsableFK(ctx, db); err != nil {
		slog.Warn("responsable foreign key migration failed", "error", err)
	}

	has, err := hasColumn(ctx, db.DB, db.dialect, "tareas", "responsable_id")
	if err != nil {
		slog.Warn("failed to inspect tareas schema", "error", err)
	}
	db.responsableFK = has

	return nil
}

// seedDefaultResponsables inserts the default responsables if the table is empty
func seedDefaultResponsables(ctx context.Context, db *DB) error {
	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM responsables").Scan(&count); err != nil {
		return err
	}

	// If responsables exist, don't seed
	if count > 0 {
		return nil
	}

	now := timestamp()
	stmt := db.dialect.Rebind(`INSERT INTO responsables (nombre, email, activo, fecha_creacion, fecha_actualizacion)
		VALUES (?, ?, TRUE, ?, ?)
		ON CONFLICT DO NOTHING`)
	for _, r := range defaultResponsables {
		if _, err := db.ExecContext(ctx, stmt, r.nombre, r.email, now, now); err != nil {
			return fmt.Errorf("failed to seed %s: %w", r.nombre, err)
		}
	}

	slog.Info("seeded default responsables", "count", len(defaultResponsables))
	return nil
}

// migrateResponsableFK adds tareas.responsable_id, backfills it from the
// stored assignee name and constrains it to responsables. It is a no-op
// once the column exists.
func migrateResponsableFK(ctx context.Context, db *DB) error {
	exists, err := hasColumn(ctx, db.DB, db.dialect, "tareas", "responsable_id")
	if err != nil {
		return fmt.Errorf("failed to check responsable_id column: %w", err)
	}

	if !exists {
		slog.Info("migrating tareas to responsable foreign key")
		err = withTx(ctx, db.DB, func(tx *sql.Tx) error {
			for _, stmt := range db.dialect.addResponsableFK() {
				if _, err := tx.ExecContext(ctx, stmt); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return err
		}
		slog.Info("responsable foreign key migration completed")
	}

	_, err = db.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS idx_tareas_responsable_id ON tareas(responsable_id)`)
	return err
}

// timestamp is the server-side clock for created/updated columns,
// truncated to the precision both drivers store
func timestamp() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
