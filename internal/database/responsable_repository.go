package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/thenoetrevino/tablero/internal/models"
)

// ResponsableRepo handles assignee database operations
type ResponsableRepo struct {
	db *DB
}

// NewResponsableRepo creates an assignee repository over db
func NewResponsableRepo(db *DB) *ResponsableRepo {
	return &ResponsableRepo{db: db}
}

// ResponsablePatch lists the columns to change; nil fields are left untouched
type ResponsablePatch struct {
	Nombre *string
	Email  *string
	Activo *bool
}

const responsableColumns = `id, nombre, email, activo, fecha_creacion, fecha_actualizacion`

// GetAll returns every assignee ordered by name
func (r *ResponsableRepo) GetAll(ctx context.Context) ([]*models.Responsable, error) {
	return r.list(ctx, `SELECT `+responsableColumns+` FROM responsables ORDER BY nombre`)
}

// GetActivos returns the active assignees ordered by name
func (r *ResponsableRepo) GetActivos(ctx context.Context) ([]*models.Responsable, error) {
	return r.list(ctx, `SELECT `+responsableColumns+` FROM responsables WHERE activo = TRUE ORDER BY nombre`)
}

// GetByID returns ErrNotFound if no assignee has that id
func (r *ResponsableRepo) GetByID(ctx context.Context, id int) (*models.Responsable, error) {
	return r.get(ctx, `SELECT `+responsableColumns+` FROM responsables WHERE id = ?`, id)
}

// GetByNombre is an exact, case-sensitive lookup. Returns ErrNotFound if absent.
func (r *ResponsableRepo) GetByNombre(ctx context.Context, nombre string) (*models.Responsable, error) {
	return r.get(ctx, `SELECT `+responsableColumns+` FROM responsables WHERE nombre = ?`, nombre)
}

// Create inserts an assignee in a single statement. Returns
// ErrDuplicateNombre or ErrDuplicateEmail when a unique column collides.
func (r *ResponsableRepo) Create(ctx context.Context, nombre, email string, activo bool) (*models.Responsable, error) {
	now := timestamp()

	var id int64
	err := r.db.QueryRowContext(ctx,
		r.db.dialect.Rebind(`INSERT INTO responsables (nombre, email, activo, fecha_creacion, fecha_actualizacion)
			VALUES (?, ?, ?, ?, ?) RETURNING id`),
		nombre, email, activo, now, now,
	).Scan(&id)
	if err != nil {
		if dup := r.duplicate(err); dup != nil {
			return nil, dup
		}
		return nil, fmt.Errorf("failed to create responsable: %w", err)
	}

	return &models.Responsable{
		ID:                 int(id),
		Nombre:             nombre,
		Email:              email,
		Activo:             activo,
		FechaCreacion:      now,
		FechaActualizacion: now,
	}, nil
}

// Update applies patch and refreshes fecha_actualizacion.
// Returns ErrNotFound, ErrDuplicateNombre or ErrDuplicateEmail.
func (r *ResponsableRepo) Update(ctx context.Context, id int, patch ResponsablePatch) (*models.Responsable, error) {
	var (
		sets []string
		args []any
	)
	if patch.Nombre != nil {
		sets = append(sets, "nombre = ?")
		args = append(args, *patch.Nombre)
	}
	if patch.Email != nil {
		sets = append(sets, "email = ?")
		args = append(args, *patch.Email)
	}
	if patch.Activo != nil {
		sets = append(sets, "activo = ?")
		args = append(args, *patch.Activo)
	}
	sets = append(sets, "fecha_actualizacion = ?")
	args = append(args, timestamp(), id)

	query := `UPDATE responsables SET ` + strings.Join(sets, ", ") + ` WHERE id = ?`
	res, err := r.db.ExecContext(ctx, r.db.dialect.Rebind(query), args...)
	if err != nil {
		if dup := r.duplicate(err); dup != nil {
			return nil, dup
		}
		return nil, fmt.Errorf("failed to update responsable %d: %w", id, err)
	}
	if err := rowsAffectedOrNotFound(res); err != nil {
		return nil, err
	}

	return r.GetByID(ctx, id)
}

// Delete removes an assignee. Returns ErrNotFound if absent.
func (r *ResponsableRepo) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, r.db.dialect.Rebind(`DELETE FROM responsables WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("failed to delete responsable %d: %w", id, err)
	}
	return rowsAffectedOrNotFound(res)
}

func (r *ResponsableRepo) list(ctx context.Context, query string, args ...any) ([]*models.Responsable, error) {
	rows, err := r.db.QueryContext(ctx, r.db.dialect.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list responsables: %w", err)
	}
	defer rows.Close()

	responsables := []*models.Responsable{}
	for rows.Next() {
		resp, err := scanResponsable(rows)
		if err != nil {
			return nil, err
		}
		responsables = append(responsables, resp)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return responsables, nil
}

func (r *ResponsableRepo) get(ctx context.Context, query string, args ...any) (*models.Responsable, error) {
	row := r.db.QueryRowContext(ctx, r.db.dialect.Rebind(query), args...)
	resp, err := scanResponsable(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// duplicate maps a unique violation to the column that collided
func (r *ResponsableRepo) duplicate(err error) error {
	target, ok := r.db.dialect.uniqueViolation(err)
	if !ok {
		return nil
	}
	if strings.Contains(target, "email") {
		return ErrDuplicateEmail
	}
	return ErrDuplicateNombre
}

type scanner interface {
	Scan(dest ...any) error
}

func scanResponsable(s scanner) (*models.Responsable, error) {
	var resp models.Responsable
	if err := s.Scan(
		&resp.ID, &resp.Nombre, &resp.Email, &resp.Activo,
		&resp.FechaCreacion, &resp.FechaActualizacion,
	); err != nil {
		return nil, err
	}
	resp.FechaCreacion = resp.FechaCreacion.UTC()
	resp.FechaActualizacion = resp.FechaActualizacion.UTC()
	return &resp, nil
}
