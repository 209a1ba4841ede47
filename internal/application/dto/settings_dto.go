package dto

import "github.com/tu-usuario/pos-catalogo/internal/domain/entity"

// UpdateSettingsRequest cambios parciales de la configuración de inventario.
type UpdateSettingsRequest struct {
	AllowNegativeStock   *bool `json:"allow_negative_stock"`
	LowStockAlertEnabled *bool `json:"low_stock_alert_enabled"`
	AutoGenerateSKU      *bool `json:"auto_generate_sku"`
	BarcodeEnabled       *bool `json:"barcode_enabled"`
}

// SettingsResponse configuración de inventario de una empresa.
type SettingsResponse struct {
	CompanyID            string `json:"company_id"`
	AllowNegativeStock   bool   `json:"allow_negative_stock"`
	LowStockAlertEnabled bool   `json:"low_stock_alert_enabled"`
	AutoGenerateSKU      bool   `json:"auto_generate_sku"`
	BarcodeEnabled       bool   `json:"barcode_enabled"`
}

// SettingsFromEntity mapea la configuración a su DTO de salida.
func SettingsFromEntity(s *entity.InventorySettings) SettingsResponse {
	return SettingsResponse{
		CompanyID:            s.CompanyID,
		AllowNegativeStock:   s.AllowNegativeStock,
		LowStockAlertEnabled: s.LowStockAlertEnabled,
		AutoGenerateSKU:      s.AutoGenerateSKU,
		BarcodeEnabled:       s.BarcodeEnabled,
	}
}
