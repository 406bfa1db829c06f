package responsable

import (
	"errors"

	"github.com/thenoetrevino/tablero/internal/apperrors"
)

// Responsable-related errors
var (
	// Validation errors
	ErrNombreRequerido    = apperrors.Validation("El nombre del responsable es requerido")
	ErrEmailRequerido     = apperrors.Validation("El email del responsable es requerido")
	ErrEmailFormato       = apperrors.Validation("El formato del email no es válido")
	ErrNombreVacio        = apperrors.Validation("El nombre del responsable no puede estar vacío")
	ErrEmailVacio         = apperrors.Validation("El email del responsable no puede estar vacío")
	ErrInvalidResponsable = apperrors.Validation("ID de responsable inválido")

	// Business logic errors
	ErrResponsableNotFound = apperrors.NotFound("Responsable no encontrado")
	ErrNombreDuplicado     = apperrors.Conflict("Ya existe un responsable con ese nombre")
	ErrEmailDuplicado      = apperrors.Conflict("Ya existe un responsable con ese email")
)

// ErrTareasAsignadas is the cause carried by the conflict returned when a
// responsable still has tasks
var ErrTareasAsignadas = errors.New("responsable has assigned tareas")

func tareasAsignadas(n int) error {
	return &apperrors.Error{
		Kind:    apperrors.KindConflict,
		Message: tareasAsignadasMsg(n),
		Err:     ErrTareasAsignadas,
	}
}
