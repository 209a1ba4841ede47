package entity

import "time"

// InventorySettings son los toggles de inventario de una empresa.
// Una fila por empresa, creada perezosamente en el primer acceso
// (get-or-create, ver repository.SettingsRepository).
type InventorySettings struct {
	ID                   string
	CompanyID            string
	AllowNegativeStock   bool // permitir que el stock quede negativo en ajustes
	LowStockAlertEnabled bool // emitir alertas de stock bajo
	AutoGenerateSKU      bool // generar SKU automáticamente para productos nuevos
	BarcodeEnabled       bool // habilitar generación e impresión de códigos de barras
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// DefaultInventorySettings valores iniciales al crear la fila de una empresa.
func DefaultInventorySettings(companyID string) *InventorySettings {
	return &InventorySettings{
		CompanyID:            companyID,
		AllowNegativeStock:   false,
		LowStockAlertEnabled: true,
		AutoGenerateSKU:      true,
		BarcodeEnabled:       true,
	}
}
