package dto

import (
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/pos-catalogo/internal/domain/repository"
)

// InventorySummaryResponse resumen de inventario para el dashboard.
type InventorySummaryResponse struct {
	TotalProducts   int             `json:"total_products"`
	InStock         int             `json:"in_stock"`
	OutOfStock      int             `json:"out_of_stock"`
	LowStock        int             `json:"low_stock"`
	TotalUnits      int             `json:"total_units"`
	TotalCategories int             `json:"total_categories"`
	InventoryValue  decimal.Decimal `json:"inventory_value"`
	CostValue       decimal.Decimal `json:"cost_value"`
	PotentialProfit decimal.Decimal `json:"potential_profit"`
}

// CategoryStatResponse agregados de una categoría.
type CategoryStatResponse struct {
	CategoryID   string          `json:"category_id"`
	Name         string          `json:"name"`
	Icon         string          `json:"icon"`
	Color        string          `json:"color"`
	ProductCount int             `json:"product_count"`
	TotalStock   int             `json:"total_stock"`
	TotalValue   decimal.Decimal `json:"total_value"`
}

// TopProductResponse producto destacado en un ranking.
type TopProductResponse struct {
	ProductID  string          `json:"product_id"`
	SKU        string          `json:"sku"`
	Name       string          `json:"name"`
	Stock      int             `json:"stock"`
	Price      decimal.Decimal `json:"price"`
	StockValue decimal.Decimal `json:"stock_value"`
}

// InventoryReportResponse reporte completo de inventario.
type InventoryReportResponse struct {
	Summary       InventorySummaryResponse `json:"summary"`
	ByCategory    []CategoryStatResponse   `json:"by_category"`
	TopByValue    []TopProductResponse     `json:"top_by_value"`
	TopByStock    []TopProductResponse     `json:"top_by_stock"`
	CriticalStock []TopProductResponse     `json:"critical_stock"`
}

// SummaryFromTotals mapea los agregados del repositorio al DTO de resumen.
func SummaryFromTotals(t *repository.InventoryTotals) InventorySummaryResponse {
	return InventorySummaryResponse{
		TotalProducts:   t.TotalProducts,
		InStock:         t.InStock,
		OutOfStock:      t.OutOfStock,
		LowStock:        t.LowStock,
		TotalUnits:      t.TotalUnits,
		TotalCategories: t.TotalCategories,
		InventoryValue:  t.InventoryValue,
		CostValue:       t.CostValue,
		PotentialProfit: t.InventoryValue.Sub(t.CostValue),
	}
}
