package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/thenoetrevino/tablero/internal/apperrors"
)

const (
	msgEndpointNoEncontrado = "Endpoint no encontrado"
	msgErrorInterno         = "Error interno del servidor"
	msgCuerpoInvalido       = "Cuerpo de la solicitud inválido"
)

var errCuerpo = apperrors.Validation(msgCuerpoInvalido)

func errCuerpoInvalido(cause error) error {
	return apperrors.Wrap(errCuerpo, cause)
}

// errorResponse is the body of every failed request
type errorResponse struct {
	Error string `json:"error"`
}

// messageResponse is the body of successful deletes
type messageResponse struct {
	Message string `json:"message"`
}

// statusFor maps an error kind to its HTTP status
func statusFor(kind apperrors.Kind) int {
	switch kind {
	case apperrors.KindValidation, apperrors.KindConflict:
		return http.StatusBadRequest
	case apperrors.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// translate turns any handler error into a status and body
func translate(err error) (int, errorResponse) {
	if e, ok := apperrors.As(err); ok && e.Kind != apperrors.KindInternal {
		return statusFor(e.Kind), errorResponse{Error: e.Message}
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		switch he.Code {
		case http.StatusNotFound, http.StatusMethodNotAllowed:
			return http.StatusNotFound, errorResponse{Error: msgEndpointNoEncontrado}
		case http.StatusUnsupportedMediaType, http.StatusBadRequest:
			return http.StatusBadRequest, errorResponse{Error: msgCuerpoInvalido}
		}
		if he.Code < http.StatusInternalServerError {
			if msg, ok := he.Message.(string); ok {
				return he.Code, errorResponse{Error: msg}
			}
			return he.Code, errorResponse{Error: http.StatusText(he.Code)}
		}
	}

	return http.StatusInternalServerError, errorResponse{Error: msgErrorInterno}
}

// errorHandler is installed as Echo's HTTPErrorHandler. Internal causes are
// logged and never sent to the client.
func errorHandler(logger *slog.Logger, metrics *Metrics) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := translate(err)
		if status >= http.StatusInternalServerError {
			logger.Error("request failed",
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"error", err)
		}
		metrics.IncErrors()

		var werr error
		if c.Request().Method == http.MethodHead {
			werr = c.NoContent(status)
		} else {
			werr = c.JSON(status, body)
		}
		if werr != nil {
			logger.Error("failed to write error response", "error", werr)
		}
	}
}
