package api

import (
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/thenoetrevino/tablero/internal/app"
	"github.com/thenoetrevino/tablero/internal/apperrors"
)

// register wires up all API routes. Static segments are registered before
// the :id routes they share a prefix with.
func register(e *echo.Echo, a *app.App, s *Server) {
	th := &tareaHandlers{svc: a.TareaService}
	rh := &responsableHandlers{svc: a.ResponsableService}

	e.GET("/health", health)

	api := e.Group("/api")

	tareas := api.Group("/tareas")
	tareas.GET("/estadisticas", th.estadisticas)
	tareas.GET("/estado/:estado", th.listByEstado)
	tareas.GET("/responsable/:name", th.listByResponsable)
	tareas.DELETE("/comentarios/:id", th.deleteComentario)
	tareas.GET("", th.list)
	tareas.POST("", th.create)
	tareas.GET("/:id", th.get)
	tareas.PUT("/:id", th.update)
	tareas.DELETE("/:id", th.delete)
	tareas.POST("/:id/comentarios", th.addComentario)

	responsables := api.Group("/responsables")
	responsables.GET("/activos", rh.listActivos)
	responsables.GET("", rh.list)
	responsables.POST("", rh.create)
	responsables.GET("/:id", rh.get)
	responsables.PUT("/:id", rh.update)
	responsables.DELETE("/:id", rh.delete)
	responsables.PATCH("/:id/toggle", rh.toggle)

	api.GET("/eventos", s.stream)
	api.GET("/metricas", func(c echo.Context) error {
		return c.JSON(http.StatusOK, s.snapshot())
	})
}

type healthResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

func health(c echo.Context) error {
	return c.JSON(http.StatusOK, healthResponse{
		Status:    "OK",
		Message:   "Kanban API is running",
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
	})
}

// pathID parses a numeric path parameter, failing with invalid when it is
// not an integer. Range checks belong to the services.
func pathID(c echo.Context, name string, invalid *apperrors.Error) (int, error) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil {
		return 0, apperrors.Wrap(invalid, err)
	}
	return id, nil
}

// pathText returns a text path parameter decoded exactly once. Echo
// matches on the raw path only when the request carries one, and then the
// parameter is still escaped.
func pathText(c echo.Context, name string) string {
	value := c.Param(name)
	if c.Request().URL.RawPath == "" {
		return value
	}
	if v, err := url.PathUnescape(value); err == nil {
		return v
	}
	return value
}

// bindJSON decodes the request body into dst
func bindJSON(c echo.Context, dst any) error {
	if err := (&echo.DefaultBinder{}).BindBody(c, dst); err != nil {
		return errCuerpoInvalido(err)
	}
	return nil
}
