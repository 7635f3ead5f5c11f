package dto

// MaxPageSize tope de filas por página en todos los listados.
const MaxPageSize = 100

// ClampPage normaliza limit/offset de query: fuera de rango vuelve al
// valor por defecto del listado y el offset nunca es negativo.
func ClampPage(limit, offset, def int) (int, int) {
	if limit <= 0 || limit > MaxPageSize {
		limit = def
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
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
