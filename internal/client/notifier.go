package client

import (
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Nivel is the severity of a Notice
type Nivel string

const (
	NivelInfo  Nivel = "info"
	NivelExito Nivel = "exito"
	NivelError Nivel = "error"
)

// Notice is a transient message for the user
type Notice struct {
	ID      string
	Nivel   Nivel
	Mensaje string
	Fecha   time.Time
}

// maxNotices bounds the retained history
const maxNotices = 50

// Notifier collects user-facing notices, newest first
type Notifier struct {
	mu      sync.Mutex
	notices []Notice
	subs    []func(Notice)
}

// NewNotifier creates an empty notifier
func NewNotifier() *Notifier {
	return &Notifier{}
}

// Push records a notice and hands it to subscribers
func (n *Notifier) Push(nivel Nivel, mensaje string) Notice {
	notice := Notice{
		ID:      uuid.NewString(),
		Nivel:   nivel,
		Mensaje: mensaje,
		Fecha:   time.Now(),
	}

	n.mu.Lock()
	n.notices = append([]Notice{notice}, n.notices...)
	if len(n.notices) > maxNotices {
		n.notices = n.notices[:maxNotices]
	}
	subs := slices.Clone(n.subs)
	n.mu.Unlock()

	for _, fn := range subs {
		fn(notice)
	}
	return notice
}

// Exito records a success notice
func (n *Notifier) Exito(mensaje string) { n.Push(NivelExito, mensaje) }

// Error records an error notice
func (n *Notifier) Error(mensaje string) { n.Push(NivelError, mensaje) }

// Recientes returns up to limit notices, newest first
func (n *Notifier) Recientes(limit int) []Notice {
	n.mu.Lock()
	defer n.mu.Unlock()
	if limit <= 0 || limit > len(n.notices) {
		limit = len(n.notices)
	}
	return slices.Clone(n.notices[:limit])
}

// Subscribe registers fn to run for every new notice
func (n *Notifier) Subscribe(fn func(Notice)) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.subs = append(n.subs, fn)
}
