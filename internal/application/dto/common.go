package dto

// ErrorResponse cuerpo de error HTTP: código máquina, mensaje y detalles opcionales.
type ErrorResponse struct {
	Error   string         `json:"error"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// PageRequest paginación para listados (page empieza en 1).
type PageRequest struct {
	Page  int `query:"page"`
	Limit int `query:"limit"`
}

// Offset calcula el offset a partir de page/limit; 0 si no hay paginación.
func (p PageRequest) Offset() int {
	if p.Page > 1 && p.Limit > 0 {
		return (p.Page - 1) * p.Limit
	}
	return 0
}
