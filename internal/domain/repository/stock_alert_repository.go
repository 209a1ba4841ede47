package repository

import "github.com/tu-usuario/pos-catalogo/internal/domain/entity"

// StockAlertRepository define el puerto de persistencia para StockAlert (DIP).
type StockAlertRepository interface {
	Create(alert *entity.StockAlert) error
	GetByID(id string) (*entity.StockAlert, error)
	Update(alert *entity.StockAlert) error
	ListByStatus(companyID, status string, limit, offset int) ([]*entity.StockAlert, error)
	// FindActive devuelve la alerta activa del producto (nil si no hay).
	FindActive(productID string) (*entity.StockAlert, error)
}
