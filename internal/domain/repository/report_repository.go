package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/pos-catalogo/internal/domain/entity"
)

// InventoryTotals agregados globales del inventario de una empresa
// (solo productos activos y no eliminados).
type InventoryTotals struct {
	TotalProducts   int
	InStock         int
	OutOfStock      int
	LowStock        int // stock > 0 y <= umbral
	TotalUnits      int
	TotalCategories int
	InventoryValue  decimal.Decimal // sum(stock * price)
	CostValue       decimal.Decimal // sum(stock * cost)
}

// CategoryStat agregados por categoría para reportes.
type CategoryStat struct {
	CategoryID   string
	Name         string
	Icon         string
	Color        string
	ProductCount int
	TotalStock   int
	TotalValue   decimal.Decimal
}

// ReportRepository consultas de solo lectura para dashboard y reportes.
type ReportRepository interface {
	Totals(ctx context.Context, companyID string) (*InventoryTotals, error)
	CategoryStats(ctx context.Context, companyID string) ([]CategoryStat, error)
	TopProductsByValue(ctx context.Context, companyID string, limit int) ([]*entity.Product, error)
	TopProductsByStock(ctx context.Context, companyID string, limit int) ([]*entity.Product, error)
	// CriticalStock productos activos con 0 < stock <= umbral, orden ascendente por stock.
	CriticalStock(ctx context.Context, companyID string, limit int) ([]*entity.Product, error)
}
