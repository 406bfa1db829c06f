package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	t.Parallel()

	assert.Equal(t, KindValidation, KindOf(Validation("x")))
	assert.Equal(t, KindNotFound, KindOf(NotFound("x")))
	assert.Equal(t, KindConflict, KindOf(Conflict("x")))
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
	assert.Equal(t, KindInternal, KindOf(nil))
}

func TestKindOf_ThroughFmtWrap(t *testing.T) {
	t.Parallel()

	base := NotFound("Tarea no encontrada")
	err := fmt.Errorf("failed to get task: %w", base)

	assert.Equal(t, KindNotFound, KindOf(err))
	assert.ErrorIs(t, err, base)
}

func TestWrap_KeepsSentinelAndCause(t *testing.T) {
	t.Parallel()

	base := Conflict("Ya existe un responsable con ese nombre")
	cause := errors.New("UNIQUE constraint failed: responsables.nombre")
	err := Wrap(base, cause)

	assert.ErrorIs(t, err, base)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, KindConflict, KindOf(err))
	assert.Equal(t, "Ya existe un responsable con ese nombre", MessageOf(err, "fallback"))
}

func TestMessageOf_HidesInternal(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "fallback", MessageOf(errors.New("pq: connection refused"), "fallback"))
	assert.Equal(t, "ID de tarea inválido", MessageOf(Validation("ID de tarea inválido"), "fallback"))
}

func TestKind_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "validation", KindValidation.String())
	assert.Equal(t, "not_found", KindNotFound.String())
	assert.Equal(t, "conflict", KindConflict.String())
	assert.Equal(t, "internal", KindInternal.String())
}
