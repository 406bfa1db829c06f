package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// ErrNotFound is returned when a lookup, update or delete matches no row
var ErrNotFound = errors.New("record not found")

// Unique constraint failures on responsables, mapped from driver errors
var (
	ErrDuplicateNombre = errors.New("duplicate responsable nombre")
	ErrDuplicateEmail  = errors.New("duplicate responsable email")
)

// withTx executes a function within a database transaction.
// It automatically handles begin, rollback on error, and commit on success.
func withTx(ctx context.Context, db *sql.DB, fn func(*sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			slog.Error("failed to rollback transaction", "error", err)
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// rowsAffectedOrNotFound turns a zero-row result into ErrNotFound
func rowsAffectedOrNotFound(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// nullInt64ToPtr converts sql.NullInt64 to *int.
// Returns nil if the value is not valid.
func nullInt64ToPtr(nv sql.NullInt64) *int {
	if nv.Valid {
		val := int(nv.Int64)
		return &val
	}
	return nil
}

// nullFloat64ToPtr converts sql.NullFloat64 to *float64
func nullFloat64ToPtr(nf sql.NullFloat64) *float64 {
	if nf.Valid {
		val := nf.Float64
		return &val
	}
	return nil
}

// nullTimeToPtr converts sql.NullTime to *time.Time in UTC
func nullTimeToPtr(nt sql.NullTime) *time.Time {
	if nt.Valid {
		val := nt.Time.UTC()
		return &val
	}
	return nil
}

// timePtrToNull converts an optional time to a nullable column value
func timePtrToNull(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

// floatPtrToNull converts an optional float to a nullable column value
func floatPtrToNull(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}
