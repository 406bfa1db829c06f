package tarea

import (
	"github.com/bytedance/sonic"
)

// updateTareaWire is UpdateTareaRequest without its JSON methods
type updateTareaWire UpdateTareaRequest

const (
	fieldFechaVencimiento = "fechaVencimiento"
	fieldTiempoEstimado   = "tiempoEstimado"
)

// MarshalJSON writes the set fields, plus null for the cleared ones
func (r UpdateTareaRequest) MarshalJSON() ([]byte, error) {
	data, err := sonic.Marshal(updateTareaWire(r))
	if err != nil {
		return nil, err
	}
	if !r.ClearFechaVencimiento && !r.ClearTiempoEstimado {
		return data, nil
	}

	var fields map[string]any
	if err := sonic.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	if r.ClearFechaVencimiento && r.FechaVencimiento == nil {
		fields[fieldFechaVencimiento] = nil
	}
	if r.ClearTiempoEstimado && r.TiempoEstimado == nil {
		fields[fieldTiempoEstimado] = nil
	}
	return sonic.Marshal(fields)
}

// UnmarshalJSON tells an explicit null apart from an absent field
func (r *UpdateTareaRequest) UnmarshalJSON(data []byte) error {
	var wire updateTareaWire
	if err := sonic.Unmarshal(data, &wire); err != nil {
		return err
	}
	var fields map[string]any
	if err := sonic.Unmarshal(data, &fields); err != nil {
		return err
	}

	*r = UpdateTareaRequest(wire)
	r.ClearFechaVencimiento = explicitNull(fields, fieldFechaVencimiento)
	r.ClearTiempoEstimado = explicitNull(fields, fieldTiempoEstimado)
	return nil
}

func explicitNull(fields map[string]any, key string) bool {
	v, ok := fields[key]
	return ok && v == nil
}
