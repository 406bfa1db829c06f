package tarea

import "github.com/thenoetrevino/tablero/internal/apperrors"

// Task-related errors
var (
	// Validation errors
	ErrTituloRequerido      = apperrors.Validation("El título es requerido")
	ErrDescripcionRequerida = apperrors.Validation("La descripción es requerida")
	ErrResponsableRequerido = apperrors.Validation("El responsable es requerido")
	ErrTituloVacio          = apperrors.Validation("El título no puede estar vacío")
	ErrDescripcionVacia     = apperrors.Validation("La descripción no puede estar vacía")
	ErrResponsableVacio     = apperrors.Validation("El responsable no puede estar vacío")
	ErrEstadoInvalido       = apperrors.Validation("Estado de tarea inválido")
	ErrPrioridadInvalida    = apperrors.Validation("Prioridad de tarea inválida")
	ErrTiempoInvalido       = apperrors.Validation("El tiempo no puede ser negativo")
	ErrInvalidTareaID       = apperrors.Validation("ID de tarea inválido")

	// Business logic errors
	ErrTareaNotFound = apperrors.NotFound("Tarea no encontrada")
)

// Comment errors
var (
	ErrAutorRequerido      = apperrors.Validation("El autor es requerido")
	ErrContenidoRequerido  = apperrors.Validation("El contenido del comentario es requerido")
	ErrTipoInvalido        = apperrors.Validation("Tipo de comentario inválido")
	ErrInvalidComentarioID = apperrors.Validation("ID de comentario inválido")
	ErrComentarioNotFound  = apperrors.NotFound("Comentario no encontrado")
)
