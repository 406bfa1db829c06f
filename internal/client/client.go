// Package client talks to the tablero API and keeps the local state the
// board and the CLI render from.
package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"

	"github.com/thenoetrevino/tablero/internal/models"
	responsableservice "github.com/thenoetrevino/tablero/internal/services/responsable"
	tareaservice "github.com/thenoetrevino/tablero/internal/services/tarea"
)

// DefaultTimeout bounds every non-streaming request
const DefaultTimeout = 10 * time.Second

// APIError is a non-2xx response
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (HTTP %d)", e.Message, e.Status)
}

// StatusOf returns the HTTP status carried by err, or 0
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// MessageOf returns the server message carried by err, else err's text
func MessageOf(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}

// Client is an HTTP client for the /api routes
type Client struct {
	baseURL string
	http    *http.Client
	stream  *http.Client
}

// New creates a client for baseURL, e.g. http://localhost:3000/api.
// timeout <= 0 uses DefaultTimeout.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		// the event stream stays open indefinitely
		stream: &http.Client{},
	}
}

// BaseURL returns the API root this client targets
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ============================================================================
// TAREAS
// ============================================================================

// ListTareas returns every task, newest first
func (c *Client) ListTareas(ctx context.Context) ([]models.Tarea, error) {
	var out []models.Tarea
	err := c.do(ctx, http.MethodGet, "/tareas", nil, &out)
	return out, err
}

// GetTarea returns one task
func (c *Client) GetTarea(ctx context.Context, id int) (*models.Tarea, error) {
	var out models.Tarea
	if err := c.do(ctx, http.MethodGet, "/tareas/"+strconv.Itoa(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateTarea creates a task
func (c *Client) CreateTarea(ctx context.Context, req tareaservice.CreateTareaRequest) (*models.Tarea, error) {
	var out models.Tarea
	if err := c.do(ctx, http.MethodPost, "/tareas", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateTarea applies a partial update
func (c *Client) UpdateTarea(ctx context.Context, id int, req tareaservice.UpdateTareaRequest) (*models.Tarea, error) {
	var out models.Tarea
	if err := c.do(ctx, http.MethodPut, "/tareas/"+strconv.Itoa(id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteTarea deletes a task and its comments
func (c *Client) DeleteTarea(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, "/tareas/"+strconv.Itoa(id), nil, nil)
}

// TareasPorEstado lists the tasks in one column
func (c *Client) TareasPorEstado(ctx context.Context, estado models.Estado) ([]models.Tarea, error) {
	var out []models.Tarea
	err := c.do(ctx, http.MethodGet, "/tareas/estado/"+url.PathEscape(string(estado)), nil, &out)
	return out, err
}

// TareasPorResponsable lists tasks whose assignee contains nombre
func (c *Client) TareasPorResponsable(ctx context.Context, nombre string) ([]models.Tarea, error) {
	var out []models.Tarea
	err := c.do(ctx, http.MethodGet, "/tareas/responsable/"+url.PathEscape(nombre), nil, &out)
	return out, err
}

// Estadisticas returns the per-estado and per-responsable counts
func (c *Client) Estadisticas(ctx context.Context) (models.Estadisticas, error) {
	var out models.Estadisticas
	err := c.do(ctx, http.MethodGet, "/tareas/estadisticas", nil, &out)
	return out, err
}

// AddComentario attaches a comment to a task
func (c *Client) AddComentario(ctx context.Context, tareaID int, req tareaservice.CreateComentarioRequest) (*models.Comentario, error) {
	var out models.Comentario
	if err := c.do(ctx, http.MethodPost, "/tareas/"+strconv.Itoa(tareaID)+"/comentarios", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteComentario deletes one comment
func (c *Client) DeleteComentario(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, "/tareas/comentarios/"+strconv.Itoa(id), nil, nil)
}

// ============================================================================
// RESPONSABLES
// ============================================================================

// ListResponsables returns every responsable ordered by name
func (c *Client) ListResponsables(ctx context.Context) ([]models.Responsable, error) {
	var out []models.Responsable
	err := c.do(ctx, http.MethodGet, "/responsables", nil, &out)
	return out, err
}

// ListResponsablesActivos returns the active responsables
func (c *Client) ListResponsablesActivos(ctx context.Context) ([]models.Responsable, error) {
	var out []models.Responsable
	err := c.do(ctx, http.MethodGet, "/responsables/activos", nil, &out)
	return out, err
}

// GetResponsable returns one responsable
func (c *Client) GetResponsable(ctx context.Context, id int) (*models.Responsable, error) {
	var out models.Responsable
	if err := c.do(ctx, http.MethodGet, "/responsables/"+strconv.Itoa(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateResponsable creates a responsable
func (c *Client) CreateResponsable(ctx context.Context, req responsableservice.CreateResponsableRequest) (*models.Responsable, error) {
	var out models.Responsable
	if err := c.do(ctx, http.MethodPost, "/responsables", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateResponsable applies a partial update
func (c *Client) UpdateResponsable(ctx context.Context, id int, req responsableservice.UpdateResponsableRequest) (*models.Responsable, error) {
	var out models.Responsable
	if err := c.do(ctx, http.MethodPut, "/responsables/"+strconv.Itoa(id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteResponsable deletes a responsable with no assigned tasks
func (c *Client) DeleteResponsable(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, "/responsables/"+strconv.Itoa(id), nil, nil)
}

// ToggleResponsable flips the active flag
func (c *Client) ToggleResponsable(ctx context.Context, id int) (*models.Responsable, error) {
	var out models.Responsable
	if err := c.do(ctx, http.MethodPatch, "/responsables/"+strconv.Itoa(id)+"/toggle", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ============================================================================
// TRANSPORT
// ============================================================================

// do sends body as JSON and decodes a 2xx response into out when non-nil
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := sonic.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp.StatusCode, data)
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := sonic.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func decodeAPIError(status int, data []byte) error {
	var body struct {
		Error string `json:"error"`
	}
	if err := sonic.Unmarshal(data, &body); err != nil || body.Error == "" {
		return &APIError{Status: status, Message: http.StatusText(status)}
	}
	return &APIError{Status: status, Message: body.Error}
}
