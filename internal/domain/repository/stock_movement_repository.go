package repository

import (
	"time"

	"github.com/tu-usuario/pos-catalogo/internal/domain/entity"
)

// StockMovementRepository define el puerto para el registro de auditoría de
// stock. Solo inserta y lee: los movimientos nunca se actualizan ni se borran.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	GetByID(id string) (*entity.StockMovement, error)
	ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
	ListByWarehouse(warehouseID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
}
