package entity

import "time"

// Warehouse representa una bodega o ubicación física/lógica de almacenamiento.
// A lo sumo una bodega por empresa debería ser la default (se resuelve al escribir,
// no por constraint de BD).
type Warehouse struct {
	ID        string
	CompanyID string
	Name      string
	Code      string // código corto (ej. WH-01)
	Address   string
	IsActive  bool
	IsDefault bool
	SortOrder int
	IsDeleted bool
	DeletedAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}
