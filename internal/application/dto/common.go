package dto

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit" validate:"min=1,max=100"`
	Offset int `query:"offset" validate:"min=0"`
}

// DefaultPage aplica valores por defecto si Limit/Offset son cero.
func (p *PageRequest) DefaultPage(defaultLimit int) {
	if p.Limit <= 0 {
		p.Limit = defaultLimit
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

// BulkActionRequest acción masiva sobre un conjunto de IDs.
type BulkActionRequest struct {
	Action string   `json:"action" validate:"required,oneof=activate deactivate delete"`
	IDs    []string `json:"ids" validate:"required,min=1"`
}

// BulkActionResponse resultado de una acción masiva.
type BulkActionResponse struct {
	Action   string `json:"action"`
	Affected int    `json:"affected"`
}
