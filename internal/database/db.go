// Package database handles the connection to the relational store (SQLite
// by default, Postgres optionally), the schema migrations and the
// repositories for tareas, comentarios and responsables.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/thenoetrevino/tablero/internal/config"

	_ "modernc.org/sqlite"
)

// DB is an open connection pool plus the dialect it speaks
type DB struct {
	*sql.DB
	dialect dialect

	// responsableFK is true once tareas.responsable_id exists
	responsableFK bool
}

// Dialect returns the driver name ("sqlite" or "postgres")
func (db *DB) Dialect() string {
	return db.dialect.Name()
}

// InitDB opens the configured store, verifies the connection and runs
// migrations.
func InitDB(ctx context.Context, cfg config.DatabaseConfig) (*DB, error) {
	var (
		db  *DB
		err error
	)

	switch cfg.Driver {
	case config.DriverPostgres:
		db, err = openPostgres(ctx, cfg.Postgres)
	case config.DriverSQLite, "":
		db, err = openSQLite(ctx, cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}

	if err := runMigrations(ctx, db); err != nil {
		closeQuietly(db)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

func openSQLite(ctx context.Context, path string) (*DB, error) {
	if path != ":memory:" && !strings.HasPrefix(path, "file:") {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	sqlDB, err := sql.Open("sqlite", sqliteDSN(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db := &DB{DB: sqlDB, dialect: sqliteDialect{}}

	// SQLite benefits from a single writer connection; it also keeps an
	// in-memory database alive across queries
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	pragmas := []struct {
		stmt string
		desc string
	}{
		{"PRAGMA foreign_keys = ON", "enable foreign keys"},
		{"PRAGMA journal_mode = WAL", "enable WAL mode"},
		{"PRAGMA busy_timeout = 5000", "set busy timeout"},
	}
	for _, p := range pragmas {
		if _, err := sqlDB.ExecContext(ctx, p.stmt); err != nil {
			slog.Error("Failed to "+p.desc, "error", err)
			closeQuietly(db)
			return nil, fmt.Errorf("failed to %s: %w", p.desc, err)
		}
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		closeQuietly(db)
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	return db, nil
}

// sqliteDSN asks the driver to store times as RFC 3339 style text so that
// ORDER BY on timestamp columns follows the clock
func sqliteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_time_format=sqlite"
}

func openPostgres(ctx context.Context, cfg config.PostgresConfig) (*DB, error) {
	sqlDB, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db := &DB{DB: sqlDB, dialect: postgresDialect{}}

	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetConnMaxIdleTime(30 * time.Second)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		closeQuietly(db)
		return nil, fmt.Errorf("database ping failed (%s:%d/%s): %w", cfg.Host, cfg.Port, cfg.Name, err)
	}

	slog.Info("connected to postgres", "host", cfg.Host, "port", cfg.Port, "db", cfg.Name)
	return db, nil
}

func closeQuietly(db *DB) {
	if closeErr := db.Close(); closeErr != nil {
		slog.Error("error closing db", "error", closeErr)
	}
}
