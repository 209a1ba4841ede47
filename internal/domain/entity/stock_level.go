package entity

import "time"

// StockLevel es el conteo desnormalizado de stock por par (producto, bodega).
// Único por (ProductID, WarehouseID).
type StockLevel struct {
	ID          string
	CompanyID   string
	ProductID   string
	WarehouseID string
	Quantity    int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
