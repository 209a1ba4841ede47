package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/pos-catalogo/internal/domain/entity"
	"github.com/tu-usuario/pos-catalogo/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas agregadas de solo lectura para dashboard y reportes.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// Totals agregados globales sobre productos activos y no eliminados.
func (r *ReportRepo) Totals(ctx context.Context, companyID string) (*repository.InventoryTotals, error) {
	var t repository.InventoryTotals
	err := r.q.QueryRow(ctx, `
		SELECT
			count(*),
			count(*) FILTER (WHERE stock > 0),
			count(*) FILTER (WHERE stock <= 0),
			count(*) FILTER (WHERE low_stock_threshold > 0 AND stock <= low_stock_threshold AND stock > 0),
			COALESCE(sum(GREATEST(stock, 0)), 0),
			COALESCE(sum(GREATEST(stock, 0) * price), 0),
			COALESCE(sum(GREATEST(stock, 0) * cost), 0)
		FROM products
		WHERE company_id = $1 AND is_active AND NOT is_deleted`,
		companyID,
	).Scan(&t.TotalProducts, &t.InStock, &t.OutOfStock, &t.LowStock,
		&t.TotalUnits, &t.InventoryValue, &t.CostValue)
	if err != nil {
		return nil, fmt.Errorf("inventory totals: %w", err)
	}

	err = r.q.QueryRow(ctx,
		`SELECT count(*) FROM categories WHERE company_id = $1 AND is_active AND NOT is_deleted`,
		companyID,
	).Scan(&t.TotalCategories)
	if err != nil {
		return nil, fmt.Errorf("count categories: %w", err)
	}
	return &t, nil
}

// CategoryStats agregados por categoría activa.
func (r *ReportRepo) CategoryStats(ctx context.Context, companyID string) ([]repository.CategoryStat, error) {
	rows, err := r.q.Query(ctx, `
		SELECT c.id, c.name, c.icon, c.color,
			count(p.id),
			COALESCE(sum(GREATEST(p.stock, 0)), 0),
			COALESCE(sum(GREATEST(p.stock, 0) * p.price), 0)
		FROM categories c
		LEFT JOIN product_categories pc ON pc.category_id = c.id
		LEFT JOIN products p ON p.id = pc.product_id AND p.is_active AND NOT p.is_deleted
		WHERE c.company_id = $1 AND c.is_active AND NOT c.is_deleted
		GROUP BY c.id, c.name, c.icon, c.color
		ORDER BY count(p.id) DESC, c.name`,
		companyID)
	if err != nil {
		return nil, fmt.Errorf("category stats: %w", err)
	}
	defer rows.Close()

	var stats []repository.CategoryStat
	for rows.Next() {
		var s repository.CategoryStat
		if err := rows.Scan(&s.CategoryID, &s.Name, &s.Icon, &s.Color,
			&s.ProductCount, &s.TotalStock, &s.TotalValue); err != nil {
			return nil, fmt.Errorf("scan category stat: %w", err)
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

// TopProductsByValue ranking por valor de inventario (stock * precio).
func (r *ReportRepo) TopProductsByValue(ctx context.Context, companyID string, limit int) ([]*entity.Product, error) {
	return r.topProducts(ctx, companyID, "GREATEST(p.stock, 0) * p.price DESC", limit)
}

// TopProductsByStock ranking por unidades en stock.
func (r *ReportRepo) TopProductsByStock(ctx context.Context, companyID string, limit int) ([]*entity.Product, error) {
	return r.topProducts(ctx, companyID, "p.stock DESC", limit)
}

// CriticalStock productos con 0 < stock <= umbral, del más escaso al menos.
func (r *ReportRepo) CriticalStock(ctx context.Context, companyID string, limit int) ([]*entity.Product, error) {
	query := `SELECT ` + prefixColumns("p") + ` FROM products p
		WHERE p.company_id = $1 AND p.is_active AND NOT p.is_deleted
			AND p.low_stock_threshold > 0 AND p.stock <= p.low_stock_threshold AND p.stock > 0
		ORDER BY p.stock ASC LIMIT $2`
	return r.queryProducts(ctx, query, companyID, limit)
}

func (r *ReportRepo) topProducts(ctx context.Context, companyID, orderBy string, limit int) ([]*entity.Product, error) {
	query := `SELECT ` + prefixColumns("p") + ` FROM products p
		WHERE p.company_id = $1 AND p.is_active AND NOT p.is_deleted
		ORDER BY ` + orderBy + ` LIMIT $2`
	return r.queryProducts(ctx, query, companyID, limit)
}

func (r *ReportRepo) queryProducts(ctx context.Context, query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("report products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
