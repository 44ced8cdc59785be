package dto

import "encoding/json"

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit" validate:"omitempty,min=1,max=100"`
	Offset int `query:"offset" validate:"omitempty,min=0"`
}

// DefaultPage aplica valores por defecto si Limit/Offset son cero.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total,omitempty"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Optional distingue "campo omitido" de "campo presente (incluso null)" en
// updates parciales. UnmarshalJSON solo corre si la clave aparece en el body,
// así que Set=false significa no tocar el campo y Set=true con Value=nil
// significa asignar null explícitamente (ej. quitar el negocio de un usuario).
type Optional[T any] struct {
	Set   bool
	Value *T
}

// UnmarshalJSON marca el campo como presente y decodifica el valor (o null).
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

// MarshalJSON serializa el valor o null (para ecos en respuestas de debug).
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set || o.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}
