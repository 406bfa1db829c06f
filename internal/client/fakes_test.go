package client

import (
	"context"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/thenoetrevino/tablero/internal/events"
	"github.com/thenoetrevino/tablero/internal/models"
	tareaservice "github.com/thenoetrevino/tablero/internal/services/tarea"
)

// fakeTareaAPI is an in-memory TareaAPI. Setting fail makes every call
// return it.
type fakeTareaAPI struct {
	mu     sync.Mutex
	tareas []models.Tarea
	nextID int
	fail   error
	calls  []string
}

func newFakeTareaAPI(tareas ...models.Tarea) *fakeTareaAPI {
	f := &fakeTareaAPI{nextID: 1}
	for _, t := range tareas {
		f.tareas = append(f.tareas, t)
		f.nextID = max(f.nextID, t.ID+1)
	}
	return f
}

func (f *fakeTareaAPI) record(call string) error {
	f.calls = append(f.calls, call)
	return f.fail
}

func (f *fakeTareaAPI) ListTareas(context.Context) ([]models.Tarea, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("list"); err != nil {
		return nil, err
	}
	return slices.Clone(f.tareas), nil
}

func (f *fakeTareaAPI) CreateTarea(_ context.Context, req tareaservice.CreateTareaRequest) (*models.Tarea, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("create"); err != nil {
		return nil, err
	}
	prioridad := req.Prioridad
	if prioridad == "" {
		prioridad = models.PrioridadMedia
	}
	t := models.Tarea{
		ID:          f.nextID,
		Titulo:      req.Titulo,
		Descripcion: req.Descripcion,
		Estado:      req.Estado,
		Responsable: req.Responsable,
		Prioridad:   prioridad,
		Etiquetas:   req.Etiquetas,
	}
	f.nextID++
	f.tareas = append([]models.Tarea{t}, f.tareas...)
	return &t, nil
}

func (f *fakeTareaAPI) UpdateTarea(_ context.Context, id int, req tareaservice.UpdateTareaRequest) (*models.Tarea, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("update"); err != nil {
		return nil, err
	}
	for i := range f.tareas {
		if f.tareas[i].ID != id {
			continue
		}
		t := &f.tareas[i]
		if req.Titulo != nil {
			t.Titulo = *req.Titulo
		}
		if req.Descripcion != nil {
			t.Descripcion = *req.Descripcion
		}
		if req.Estado != nil {
			t.Estado = *req.Estado
		}
		if req.Responsable != nil {
			t.Responsable = *req.Responsable
		}
		if req.Prioridad != nil {
			t.Prioridad = *req.Prioridad
		}
		if req.Etiquetas != nil {
			t.Etiquetas = *req.Etiquetas
		}
		if req.TiempoTrabajado != nil {
			t.TiempoTrabajado = *req.TiempoTrabajado
		}
		out := t.Clone()
		return &out, nil
	}
	return nil, &APIError{Status: http.StatusNotFound, Message: "Tarea no encontrada"}
}

func (f *fakeTareaAPI) DeleteTarea(_ context.Context, id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("delete"); err != nil {
		return err
	}
	n := len(f.tareas)
	f.tareas = slices.DeleteFunc(f.tareas, func(t models.Tarea) bool { return t.ID == id })
	if len(f.tareas) == n {
		return &APIError{Status: http.StatusNotFound, Message: "Tarea no encontrada"}
	}
	return nil
}

func (f *fakeTareaAPI) AddComentario(_ context.Context, tareaID int, req tareaservice.CreateComentarioRequest) (*models.Comentario, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("comment"); err != nil {
		return nil, err
	}
	for i := range f.tareas {
		if f.tareas[i].ID == tareaID {
			c := models.Comentario{ID: len(f.tareas[i].Comentarios) + 1, TareaID: tareaID, Autor: req.Autor, Contenido: req.Contenido}
			f.tareas[i].Comentarios = append(f.tareas[i].Comentarios, c)
			return &c, nil
		}
	}
	return nil, &APIError{Status: http.StatusNotFound, Message: "Tarea no encontrada"}
}

func (f *fakeTareaAPI) DeleteComentario(context.Context, int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.record("uncomment")
}

func (f *fakeTareaAPI) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.calls)
}

// fakeStreamer emits its events once per Stream call, then ends the stream
type fakeStreamer struct {
	mu     sync.Mutex
	events []events.Event
	opened int
}

func (s *fakeStreamer) Stream(ctx context.Context, fn func(events.Event)) error {
	s.mu.Lock()
	s.opened++
	evs := slices.Clone(s.events)
	s.mu.Unlock()

	for _, ev := range evs {
		if ctx.Err() != nil {
			return nil
		}
		fn(ev)
	}
	return nil
}

func (s *fakeStreamer) Opened() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.opened
}

func tareaFixture(id int, titulo string, estado models.Estado) models.Tarea {
	return models.Tarea{
		ID:            id,
		Titulo:        titulo,
		Descripcion:   "descripción " + titulo,
		Estado:        estado,
		Responsable:   "Juan Henao",
		Prioridad:     models.PrioridadMedia,
		Etiquetas:     []string{},
		Comentarios:   []models.Comentario{},
		FechaCreacion: time.Date(2026, 1, id, 0, 0, 0, 0, time.UTC),
	}
}
