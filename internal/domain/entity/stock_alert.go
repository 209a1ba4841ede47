package entity

import "time"

// Estados de una alerta de stock bajo. Ciclo: active -> acknowledged -> resolved.
const (
	AlertStatusActive       = "active"
	AlertStatusAcknowledged = "acknowledged"
	AlertStatusResolved     = "resolved"
)

// StockAlert registra que un producto cayó a o por debajo de su umbral.
// CurrentStock y Threshold son snapshots al momento de crearla. Acknowledge
// es manual; la resolución puede ser manual o automática cuando el stock
// vuelve sobre el umbral.
type StockAlert struct {
	ID             string
	CompanyID      string
	ProductID      string
	WarehouseID    string // vacío si la alerta es sobre el stock total
	CurrentStock   int
	Threshold      int
	Status         string
	AcknowledgedAt *time.Time
	ResolvedAt     *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
