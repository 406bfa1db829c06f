package database

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"

	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// dialect captures the SQL differences between the supported drivers.
// Queries are written with ? placeholders and rebound per driver.
type dialect interface {
	Name() string
	Rebind(query string) string
	// columnTypes feeds the schema templates
	columnTypes() *strings.Replacer
	hasColumnQuery() string
	// addResponsableFK returns the statements that add and backfill
	// tareas.responsable_id, in order
	addResponsableFK() []string
	// uniqueViolation reports whether err is a unique constraint failure
	// and which constraint or column it names
	uniqueViolation(err error) (string, bool)
}

const backfillResponsableID = `UPDATE tareas
	SET responsable_id = (SELECT r.id FROM responsables r WHERE r.nombre = tareas.responsable)
	WHERE responsable_id IS NULL`

type sqliteDialect struct{}

func (sqliteDialect) Name() string { return "sqlite" }

func (sqliteDialect) Rebind(query string) string { return query }

func (sqliteDialect) columnTypes() *strings.Replacer {
	return strings.NewReplacer(
		"{{serial}}", "INTEGER PRIMARY KEY AUTOINCREMENT",
		"{{timestamp}}", "DATETIME",
		"{{json}}", "TEXT",
		"{{float}}", "REAL",
	)
}

func (sqliteDialect) hasColumnQuery() string {
	return `SELECT COUNT(*) FROM pragma_table_info(?) WHERE name = ?`
}

// SQLite cannot add a constraint to an existing table, so the reference
// is declared together with the column.
func (sqliteDialect) addResponsableFK() []string {
	return []string{
		`ALTER TABLE tareas ADD COLUMN responsable_id INTEGER REFERENCES responsables(id) ON DELETE SET NULL`,
		backfillResponsableID,
	}
}

func (sqliteDialect) uniqueViolation(err error) (string, bool) {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return "", false
	}
	if se.Code() != sqlite3.SQLITE_CONSTRAINT_UNIQUE {
		return "", false
	}
	// message format: "UNIQUE constraint failed: responsables.email"
	msg := se.Error()
	if i := strings.LastIndex(msg, ": "); i >= 0 {
		return msg[i+2:], true
	}
	return msg, true
}

type postgresDialect struct{}

func (postgresDialect) Name() string { return "postgres" }

// Rebind rewrites ? placeholders to $1, $2, ...
func (postgresDialect) Rebind(query string) string {
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

func (postgresDialect) columnTypes() *strings.Replacer {
	return strings.NewReplacer(
		"{{serial}}", "SERIAL PRIMARY KEY",
		"{{timestamp}}", "TIMESTAMPTZ",
		"{{json}}", "JSONB",
		"{{float}}", "DOUBLE PRECISION",
	)
}

func (postgresDialect) hasColumnQuery() string {
	return `SELECT COUNT(*) FROM information_schema.columns WHERE table_name = ? AND column_name = ?`
}

func (postgresDialect) addResponsableFK() []string {
	return []string{
		`ALTER TABLE tareas ADD COLUMN responsable_id INTEGER`,
		backfillResponsableID,
		`ALTER TABLE tareas ADD CONSTRAINT fk_tareas_responsable
			FOREIGN KEY (responsable_id) REFERENCES responsables (id) ON DELETE SET NULL`,
	}
}

func (postgresDialect) uniqueViolation(err error) (string, bool) {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return "", false
	}
	if pqErr.Code != "23505" {
		return "", false
	}
	return pqErr.Constraint, true
}

// hasColumn reports whether table has the named column
func hasColumn(ctx context.Context, db *sql.DB, d dialect, table, column string) (bool, error) {
	var count int
	err := db.QueryRowContext(ctx, d.Rebind(d.hasColumnQuery()), table, column).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
