package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bytedance/sonic"

	"github.com/thenoetrevino/tablero/internal/models"
)

// TareaRepo handles all task and comment database operations
type TareaRepo struct {
	db *DB
}

// NewTareaRepo creates a task repository over db
func NewTareaRepo(db *DB) *TareaRepo {
	return &TareaRepo{db: db}
}

// TareaInput carries the columns written when a task is created
type TareaInput struct {
	Titulo           string
	Descripcion      string
	Estado           models.Estado
	Responsable      string
	FechaVencimiento *time.Time
	Prioridad        models.Prioridad
	Etiquetas        []string
	TiempoEstimado   *float64
}

// TareaPatch lists the columns to change; nil fields are left untouched
type TareaPatch struct {
	Titulo           *string
	Descripcion      *string
	Estado           *models.Estado
	Responsable      *string
	FechaVencimiento *time.Time
	Prioridad        *models.Prioridad
	Etiquetas        *[]string
	TiempoEstimado   *float64
	TiempoTrabajado  *float64

	// Clear* write NULL; they apply when the matching field is nil
	ClearFechaVencimiento bool
	ClearTiempoEstimado   bool
}

const tareaColumns = `t.id, t.titulo, t.descripcion, t.estado, t.responsable, t.fecha_creacion,
	t.fecha_vencimiento, t.fecha_actualizacion, t.prioridad, t.etiquetas,
	t.tiempo_estimado, t.tiempo_trabajado`

// responsableIDSubquery resolves the foreign key from an assignee name
const responsableIDSubquery = `(SELECT r.id FROM responsables r WHERE r.nombre = ?)`

// Create inserts a task and returns it with its id, timestamps and no comments
func (r *TareaRepo) Create(ctx context.Context, in TareaInput) (*models.Tarea, error) {
	etiquetas, err := encodeEtiquetas(in.Etiquetas)
	if err != nil {
		return nil, err
	}

	now := timestamp()
	cols := `titulo, descripcion, estado, responsable, fecha_creacion, fecha_vencimiento,
		fecha_actualizacion, prioridad, etiquetas, tiempo_estimado, tiempo_trabajado`
	vals := `?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0`
	args := []any{
		in.Titulo, in.Descripcion, string(in.Estado), in.Responsable, now,
		timePtrToNull(in.FechaVencimiento), now, string(in.Prioridad), etiquetas,
		floatPtrToNull(in.TiempoEstimado),
	}
	if r.db.responsableFK {
		cols += ", responsable_id"
		vals += ", " + responsableIDSubquery
		args = append(args, in.Responsable)
	}

	query := fmt.Sprintf(`INSERT INTO tareas (%s) VALUES (%s) RETURNING id`, cols, vals)

	var id int64
	if err := r.db.QueryRowContext(ctx, r.db.dialect.Rebind(query), args...).Scan(&id); err != nil {
		return nil, fmt.Errorf("failed to create tarea: %w", err)
	}

	return r.GetByID(ctx, int(id))
}

// GetAll retrieves every task, newest first, each with its comments
func (r *TareaRepo) GetAll(ctx context.Context) ([]*models.Tarea, error) {
	rows, err := r.db.QueryContext(ctx, r.selectTareas()+` ORDER BY t.fecha_creacion DESC, t.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tareas: %w", err)
	}

	tareas, err := scanTareas(rows)
	if err != nil {
		return nil, err
	}

	// comments are loaded once the task cursor is closed; sqlite runs on
	// a single connection
	for _, t := range tareas {
		if t.Comentarios, err = r.GetComentarios(ctx, t.ID); err != nil {
			return nil, err
		}
	}

	return tareas, nil
}

// GetByID retrieves a task with its comments. Returns ErrNotFound if absent.
func (r *TareaRepo) GetByID(ctx context.Context, id int) (*models.Tarea, error) {
	rows, err := r.db.QueryContext(ctx, r.db.dialect.Rebind(r.selectTareas()+` WHERE t.id = ?`), id)
	if err != nil {
		return nil, fmt.Errorf("failed to get tarea %d: %w", id, err)
	}

	tareas, err := scanTareas(rows)
	if err != nil {
		return nil, err
	}
	if len(tareas) == 0 {
		return nil, ErrNotFound
	}

	t := tareas[0]
	if t.Comentarios, err = r.GetComentarios(ctx, t.ID); err != nil {
		return nil, err
	}
	return t, nil
}

// Update applies patch in a single statement, always refreshing
// fecha_actualizacion, and returns the updated task.
// Returns ErrNotFound if no task has that id.
func (r *TareaRepo) Update(ctx context.Context, id int, patch TareaPatch) (*models.Tarea, error) {
	var (
		sets []string
		args []any
	)
	set := func(column string, value any) {
		sets = append(sets, column+" = ?")
		args = append(args, value)
	}

	if patch.Titulo != nil {
		set("titulo", *patch.Titulo)
	}
	if patch.Descripcion != nil {
		set("descripcion", *patch.Descripcion)
	}
	if patch.Estado != nil {
		set("estado", string(*patch.Estado))
	}
	if patch.Responsable != nil {
		set("responsable", *patch.Responsable)
		if r.db.responsableFK {
			sets = append(sets, "responsable_id = "+responsableIDSubquery)
			args = append(args, *patch.Responsable)
		}
	}
	if patch.FechaVencimiento != nil {
		set("fecha_vencimiento", timePtrToNull(patch.FechaVencimiento))
	} else if patch.ClearFechaVencimiento {
		sets = append(sets, "fecha_vencimiento = NULL")
	}
	if patch.Prioridad != nil {
		set("prioridad", string(*patch.Prioridad))
	}
	if patch.Etiquetas != nil {
		etiquetas, err := encodeEtiquetas(*patch.Etiquetas)
		if err != nil {
			return nil, err
		}
		set("etiquetas", etiquetas)
	}
	if patch.TiempoEstimado != nil {
		set("tiempo_estimado", *patch.TiempoEstimado)
	} else if patch.ClearTiempoEstimado {
		sets = append(sets, "tiempo_estimado = NULL")
	}
	if patch.TiempoTrabajado != nil {
		set("tiempo_trabajado", *patch.TiempoTrabajado)
	}
	set("fecha_actualizacion", timestamp())

	query := `UPDATE tareas SET ` + strings.Join(sets, ", ") + ` WHERE id = ?`
	args = append(args, id)

	res, err := r.db.ExecContext(ctx, r.db.dialect.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update tarea %d: %w", id, err)
	}
	if err := rowsAffectedOrNotFound(res); err != nil {
		return nil, err
	}

	return r.GetByID(ctx, id)
}

// Delete removes a task; its comments cascade. Returns ErrNotFound if absent.
func (r *TareaRepo) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, r.db.dialect.Rebind(`DELETE FROM tareas WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("failed to delete tarea %d: %w", id, err)
	}
	return rowsAffectedOrNotFound(res)
}

// CountByResponsable returns the number of tasks assigned to nombre
func (r *TareaRepo) CountByResponsable(ctx context.Context, nombre string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		r.db.dialect.Rebind(`SELECT COUNT(*) FROM tareas WHERE responsable = ?`), nombre,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count tareas for %s: %w", nombre, err)
	}
	return count, nil
}

// CreateComentario attaches a comment to a task
func (r *TareaRepo) CreateComentario(ctx context.Context, tareaID int, autor, contenido string, tipo models.TipoComentario) (*models.Comentario, error) {
	now := timestamp()

	var id int64
	err := r.db.QueryRowContext(ctx,
		r.db.dialect.Rebind(`INSERT INTO comentarios (tarea_id, autor, contenido, fecha_creacion, tipo)
			VALUES (?, ?, ?, ?, ?) RETURNING id`),
		tareaID, autor, contenido, now, string(tipo),
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("failed to create comentario: %w", err)
	}

	return &models.Comentario{
		ID:            int(id),
		TareaID:       tareaID,
		Autor:         autor,
		Contenido:     contenido,
		FechaCreacion: now,
		Tipo:          tipo,
	}, nil
}

// DeleteComentario removes a comment. Returns ErrNotFound if absent.
func (r *TareaRepo) DeleteComentario(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, r.db.dialect.Rebind(`DELETE FROM comentarios WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("failed to delete comentario %d: %w", id, err)
	}
	return rowsAffectedOrNotFound(res)
}

// GetComentarios returns a task's comments in creation order
func (r *TareaRepo) GetComentarios(ctx context.Context, tareaID int) ([]models.Comentario, error) {
	rows, err := r.db.QueryContext(ctx,
		r.db.dialect.Rebind(`SELECT id, tarea_id, autor, contenido, fecha_creacion, tipo
			FROM comentarios
			WHERE tarea_id = ?
			ORDER BY fecha_creacion ASC, id ASC`),
		tareaID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list comentarios for tarea %d: %w", tareaID, err)
	}
	defer rows.Close()

	comentarios := []models.Comentario{}
	for rows.Next() {
		var (
			c    models.Comentario
			tipo string
		)
		if err := rows.Scan(&c.ID, &c.TareaID, &c.Autor, &c.Contenido, &c.FechaCreacion, &tipo); err != nil {
			return nil, err
		}
		c.FechaCreacion = c.FechaCreacion.UTC()
		c.Tipo = models.TipoComentario(tipo)
		comentarios = append(comentarios, c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return comentarios, nil
}

func (r *TareaRepo) selectTareas() string {
	cols := tareaColumns
	if r.db.responsableFK {
		cols += ", t.responsable_id"
	} else {
		cols += ", NULL"
	}
	return `SELECT ` + cols + ` FROM tareas t`
}

// scanTareas reads every row and closes rows
func scanTareas(rows *sql.Rows) ([]*models.Tarea, error) {
	defer rows.Close()

	var tareas []*models.Tarea
	for rows.Next() {
		var (
			t                models.Tarea
			estado           string
			prioridad        string
			etiquetas        []byte
			fechaVencimiento sql.NullTime
			tiempoEstimado   sql.NullFloat64
			responsableID    sql.NullInt64
		)
		if err := rows.Scan(
			&t.ID, &t.Titulo, &t.Descripcion, &estado, &t.Responsable, &t.FechaCreacion,
			&fechaVencimiento, &t.FechaActualizacion, &prioridad, &etiquetas,
			&tiempoEstimado, &t.TiempoTrabajado, &responsableID,
		); err != nil {
			return nil, fmt.Errorf("failed to scan tarea: %w", err)
		}

		t.Estado = models.Estado(estado)
		t.Prioridad = models.Prioridad(prioridad)
		t.FechaCreacion = t.FechaCreacion.UTC()
		t.FechaActualizacion = t.FechaActualizacion.UTC()
		t.FechaVencimiento = nullTimeToPtr(fechaVencimiento)
		t.TiempoEstimado = nullFloat64ToPtr(tiempoEstimado)
		t.ResponsableID = nullInt64ToPtr(responsableID)
		t.Comentarios = []models.Comentario{}

		var err error
		if t.Etiquetas, err = decodeEtiquetas(etiquetas); err != nil {
			return nil, fmt.Errorf("failed to decode etiquetas of tarea %d: %w", t.ID, err)
		}

		tareas = append(tareas, &t)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tareas, nil
}

// encodeEtiquetas stores tags as a JSON array string (TEXT or JSONB)
func encodeEtiquetas(etiquetas []string) (string, error) {
	if etiquetas == nil {
		etiquetas = []string{}
	}
	data, err := sonic.Marshal(etiquetas)
	if err != nil {
		return "", fmt.Errorf("failed to encode etiquetas: %w", err)
	}
	return string(data), nil
}

func decodeEtiquetas(data []byte) ([]string, error) {
	etiquetas := []string{}
	if len(data) == 0 {
		return etiquetas, nil
	}
	if err := sonic.Unmarshal(data, &etiquetas); err != nil {
		return nil, err
	}
	if etiquetas == nil {
		etiquetas = []string{}
	}
	return etiquetas, nil
}

// IsNotFound reports whether err is ErrNotFound
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
