package repository

import "github.com/tu-usuario/pos-catalogo/internal/domain/entity"

// StockLevelRepository define el puerto para el stock por (producto, bodega).
type StockLevelRepository interface {
	Get(productID, warehouseID string) (*entity.StockLevel, error)
	Upsert(level *entity.StockLevel) error
	// ApplyDelta incrementa atómicamente la cantidad del par (crea la fila si
	// no existe) y devuelve la cantidad resultante.
	ApplyDelta(companyID, productID, warehouseID string, delta int) (int, error)
	ListByProduct(productID string) ([]*entity.StockLevel, error)
	ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.StockLevel, error)
}
