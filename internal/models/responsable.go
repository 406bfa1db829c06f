package models

import "time"

// Responsable is a person eligible to be assigned tasks.
// Nombre and Email are unique across all responsables.
type Responsable struct {
	ID                 int       `json:"id"`
	Nombre             string    `json:"nombre"`
	Email              string    `json:"email"`
	Activo             bool      `json:"activo"`
	FechaCreacion      time.Time `json:"fechaCreacion"`
	FechaActualizacion time.Time `json:"fechaActualizacion"`
}

// GetID returns the responsable ID
func (r *Responsable) GetID() int {
	return r.ID
}
