package usecase

import (
	"context"

	"github.com/tu-usuario/pos-catalogo/internal/application/dto"
	"github.com/tu-usuario/pos-catalogo/internal/domain/entity"
	"github.com/tu-usuario/pos-catalogo/internal/domain/repository"
)

// topProductsLimit tamaño de los rankings del reporte.
const topProductsLimit = 10

// ReportUseCase reportes de solo lectura sobre el inventario.
type ReportUseCase struct {
	reports repository.ReportRepository
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(reports repository.ReportRepository) *ReportUseCase {
	return &ReportUseCase{reports: reports}
}

// Summary agregados globales para el dashboard.
func (uc *ReportUseCase) Summary(ctx context.Context, companyID string) (*dto.InventorySummaryResponse, error) {
	totals, err := uc.reports.Totals(ctx, companyID)
	if err != nil {
		return nil, err
	}
	resp := dto.SummaryFromTotals(totals)
	return &resp, nil
}

// FullReport resumen más desgloses por categoría, rankings y stock crítico.
func (uc *ReportUseCase) FullReport(ctx context.Context, companyID string) (*dto.InventoryReportResponse, error) {
	totals, err := uc.reports.Totals(ctx, companyID)
	if err != nil {
		return nil, err
	}
	stats, err := uc.reports.CategoryStats(ctx, companyID)
	if err != nil {
		return nil, err
	}
	byValue, err := uc.reports.TopProductsByValue(ctx, companyID, topProductsLimit)
	if err != nil {
		return nil, err
	}
	byStock, err := uc.reports.TopProductsByStock(ctx, companyID, topProductsLimit)
	if err != nil {
		return nil, err
	}
	critical, err := uc.reports.CriticalStock(ctx, companyID, topProductsLimit)
	if err != nil {
		return nil, err
	}

	out := &dto.InventoryReportResponse{
		Summary:       dto.SummaryFromTotals(totals),
		ByCategory:    make([]dto.CategoryStatResponse, 0, len(stats)),
		TopByValue:    toTopProducts(byValue),
		TopByStock:    toTopProducts(byStock),
		CriticalStock: toTopProducts(critical),
	}
	for _, s := range stats {
		out.ByCategory = append(out.ByCategory, dto.CategoryStatResponse{
			CategoryID:   s.CategoryID,
			Name:         s.Name,
			Icon:         s.Icon,
			Color:        s.Color,
			ProductCount: s.ProductCount,
			TotalStock:   s.TotalStock,
			TotalValue:   s.TotalValue,
		})
	}
	return out, nil
}

func toTopProducts(products []*entity.Product) []dto.TopProductResponse {
	out := make([]dto.TopProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, dto.TopProductResponse{
			ProductID:  p.ID,
			SKU:        p.SKU,
			Name:       p.Name,
			Stock:      p.Stock,
			Price:      p.Price,
			StockValue: p.Price.Mul(decimalFromInt(p.Stock)),
		})
	}
	return out
}
