package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	responsableservice "github.com/thenoetrevino/tablero/internal/services/responsable"
)

type responsableHandlers struct {
	svc responsableservice.Service
}

func (h *responsableHandlers) list(c echo.Context) error {
	responsables, err := h.svc.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, responsables)
}

func (h *responsableHandlers) listActivos(c echo.Context) error {
	responsables, err := h.svc.ListActivos(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, responsables)
}

func (h *responsableHandlers) get(c echo.Context) error {
	id, err := pathID(c, "id", responsableservice.ErrInvalidResponsable)
	if err != nil {
		return err
	}
	r, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, r)
}

func (h *responsableHandlers) create(c echo.Context) error {
	var req responsableservice.CreateResponsableRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	r, err := h.svc.Create(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, r)
}

func (h *responsableHandlers) update(c echo.Context) error {
	id, err := pathID(c, "id", responsableservice.ErrInvalidResponsable)
	if err != nil {
		return err
	}
	var req responsableservice.UpdateResponsableRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	r, err := h.svc.Update(c.Request().Context(), id, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, r)
}

func (h *responsableHandlers) delete(c echo.Context) error {
	id, err := pathID(c, "id", responsableservice.ErrInvalidResponsable)
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *responsableHandlers) toggle(c echo.Context) error {
	id, err := pathID(c, "id", responsableservice.ErrInvalidResponsable)
	if err != nil {
		return err
	}
	r, err := h.svc.ToggleActivo(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, r)
}
