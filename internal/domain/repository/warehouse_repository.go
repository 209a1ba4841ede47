package repository

import (
	"time"

	"github.com/tu-usuario/pos-catalogo/internal/domain/entity"
)

// WarehouseRepository define el puerto de persistencia para Warehouse (DIP).
type WarehouseRepository interface {
	Create(warehouse *entity.Warehouse) error
	GetByID(id string) (*entity.Warehouse, error)
	GetByCode(companyID, code string) (*entity.Warehouse, error)
	Update(warehouse *entity.Warehouse) error
	ListByCompany(companyID string, includeInactive bool) ([]*entity.Warehouse, error)
	SoftDelete(id string, at time.Time) error
	// SetDefault marca la bodega como default y desmarca las demás de la
	// empresa en la misma operación (a lo sumo una default).
	SetDefault(companyID, warehouseID string) error
}
