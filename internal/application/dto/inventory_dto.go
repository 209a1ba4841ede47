package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdjustStockRequest ajuste de stock de un producto referenciado por
// SKU, EAN-13 o nombre. Delta positivo ingresa, negativo descuenta.
// UnitCost, si viene en una entrada, actualiza el costo del producto por
// promedio ponderado.
type AdjustStockRequest struct {
	Reference   string           `json:"reference" validate:"required"`
	Delta       int              `json:"delta" validate:"required,ne=0"`
	Reason      string           `json:"reason"`
	UnitCost    *decimal.Decimal `json:"unit_cost,omitempty"`
	WarehouseID string           `json:"warehouse_id,omitempty"`
	UserID      string           `json:"user_id,omitempty"`
}

// AdjustStockResult resultado de un ajuste aplicado. NewCost solo viene
// cuando la entrada traía costo unitario y el promedio se recalculó.
type AdjustStockResult struct {
	ProductID    string           `json:"product_id"`
	ProductName  string           `json:"product_name"`
	SKU          string           `json:"sku"`
	OldStock     int              `json:"old_stock"`
	NewStock     int              `json:"new_stock"`
	Delta        int              `json:"delta"`
	NewCost      *decimal.Decimal `json:"new_cost,omitempty"`
	MovementID   string           `json:"movement_id"`
	MovementType string           `json:"movement_type"`
	LowStock     bool             `json:"low_stock"`
}

// BulkAdjustItem un ajuste dentro de un lote.
type BulkAdjustItem struct {
	Reference string `json:"reference" validate:"required"`
	Delta     int    `json:"delta" validate:"required,ne=0"`
}

// BulkAdjustStockRequest lote de ajustes independientes: el fallo de un
// ítem no detiene a los demás.
type BulkAdjustStockRequest struct {
	Items  []BulkAdjustItem `json:"items" validate:"required,min=1"`
	Reason string           `json:"reason"`
	UserID string           `json:"user_id,omitempty"`
}

// BulkAdjustStockResult resultado agregado del lote.
type BulkAdjustStockResult struct {
	Adjusted []AdjustStockResult `json:"adjusted"`
	NotFound []string            `json:"not_found,omitempty"`
	Summary  string              `json:"summary"`
}

// MovementResponse salida de un movimiento de stock.
type MovementResponse struct {
	ID           string    `json:"id"`
	ProductID    string    `json:"product_id"`
	WarehouseID  string    `json:"warehouse_id,omitempty"`
	MovementType string    `json:"movement_type"`
	Quantity     int       `json:"quantity"`
	Reference    string    `json:"reference,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	CreatedBy    string    `json:"created_by,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// MovementListRequest filtros del historial de movimientos.
type MovementListRequest struct {
	ProductID   string     `query:"product_id"`
	WarehouseID string     `query:"warehouse_id"`
	From        *time.Time `query:"from"`
	To          *time.Time `query:"to"`
	PageRequest
}

// AlertResponse salida de una alerta de stock bajo.
type AlertResponse struct {
	ID             string     `json:"id"`
	ProductID      string     `json:"product_id"`
	ProductName    string     `json:"product_name"`
	CurrentStock   int        `json:"current_stock"`
	Threshold      int        `json:"threshold"`
	Status         string     `json:"status"`
	AcknowledgedAt *time.Time `json:"acknowledged_at,omitempty"`
	ResolvedAt     *time.Time `json:"resolved_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}
