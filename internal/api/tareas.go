package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/thenoetrevino/tablero/internal/models"
	tareaservice "github.com/thenoetrevino/tablero/internal/services/tarea"
)

type tareaHandlers struct {
	svc tareaservice.Service
}

func (h *tareaHandlers) list(c echo.Context) error {
	tareas, err := h.svc.ListTareas(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tareas)
}

func (h *tareaHandlers) get(c echo.Context) error {
	id, err := pathID(c, "id", tareaservice.ErrInvalidTareaID)
	if err != nil {
		return err
	}
	tarea, err := h.svc.GetTarea(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tarea)
}

func (h *tareaHandlers) create(c echo.Context) error {
	var req tareaservice.CreateTareaRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	tarea, err := h.svc.CreateTarea(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, tarea)
}

func (h *tareaHandlers) update(c echo.Context) error {
	id, err := pathID(c, "id", tareaservice.ErrInvalidTareaID)
	if err != nil {
		return err
	}
	var req tareaservice.UpdateTareaRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	tarea, err := h.svc.UpdateTarea(c.Request().Context(), id, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tarea)
}

func (h *tareaHandlers) delete(c echo.Context) error {
	id, err := pathID(c, "id", tareaservice.ErrInvalidTareaID)
	if err != nil {
		return err
	}
	if err := h.svc.DeleteTarea(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Tarea eliminada exitosamente"})
}

func (h *tareaHandlers) listByEstado(c echo.Context) error {
	estado := models.Estado(pathText(c, "estado"))
	tareas, err := h.svc.ListByEstado(c.Request().Context(), estado)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tareas)
}

func (h *tareaHandlers) listByResponsable(c echo.Context) error {
	tareas, err := h.svc.ListByResponsable(c.Request().Context(), pathText(c, "name"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tareas)
}

func (h *tareaHandlers) estadisticas(c echo.Context) error {
	stats, err := h.svc.Estadisticas(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

func (h *tareaHandlers) addComentario(c echo.Context) error {
	id, err := pathID(c, "id", tareaservice.ErrInvalidTareaID)
	if err != nil {
		return err
	}
	var req tareaservice.CreateComentarioRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	comentario, err := h.svc.AddComentario(c.Request().Context(), id, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, comentario)
}

func (h *tareaHandlers) deleteComentario(c echo.Context) error {
	id, err := pathID(c, "id", tareaservice.ErrInvalidComentarioID)
	if err != nil {
		return err
	}
	if err := h.svc.DeleteComentario(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Comentario eliminado exitosamente"})
}
