package entity

import "time"

// Tipos de movimiento de stock.
const (
	MovementTypeIn         = "in"
	MovementTypeOut        = "out"
	MovementTypeAdjustment = "adjustment"
	MovementTypeTransfer   = "transfer"
	MovementTypeReturn     = "return"
	MovementTypeSale       = "sale"
)

// StockMovement es el registro de auditoría de cada cambio de stock.
// Append-only: nunca se actualiza ni se borra.
//
// Convención de signo: Quantity guarda la magnitud SIN signo; el tipo de
// movimiento lleva la dirección (in = entrada, adjustment/out/sale = salida).
type StockMovement struct {
	ID           string
	CompanyID    string
	ProductID    string
	WarehouseID  string // vacío si el movimiento no está atado a una bodega
	MovementType string
	Quantity     int    // magnitud, siempre >= 0
	Reference    string // número de venta, orden de compra, motivo del ajuste
	Notes        string
	CreatedBy    string // UserID; vacío para procesos automáticos
	CreatedAt    time.Time
}
