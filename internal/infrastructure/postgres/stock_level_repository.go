package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/pos-catalogo/internal/domain/entity"
	"github.com/tu-usuario/pos-catalogo/internal/domain/repository"
)

var _ repository.StockLevelRepository = (*StockLevelRepo)(nil)

const stockLevelColumns = `id, company_id, product_id, warehouse_id, quantity, created_at, updated_at`

// StockLevelRepo implementación del puerto StockLevelRepository sobre PostgreSQL (usable con pool o tx).
type StockLevelRepo struct {
	q Querier
}

// NewStockLevelRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockLevelRepository(q Querier) *StockLevelRepo {
	return &StockLevelRepo{q: q}
}

// Get obtiene el nivel de stock del par (producto, bodega). nil si no hay fila.
func (r *StockLevelRepo) Get(productID, warehouseID string) (*entity.StockLevel, error) {
	query := `SELECT ` + stockLevelColumns + ` FROM stock_levels
		WHERE product_id = $1 AND warehouse_id = $2`
	sl, err := scanStockLevel(r.q.QueryRow(context.Background(), query, productID, warehouseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return sl, nil
}

// Upsert crea o reemplaza la fila del par (producto, bodega).
func (r *StockLevelRepo) Upsert(level *entity.StockLevel) error {
	query := `
		INSERT INTO stock_levels (` + stockLevelColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (product_id, warehouse_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query,
		level.ID, level.CompanyID, level.ProductID, level.WarehouseID,
		level.Quantity, level.CreatedAt, level.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert stock level: %w", err)
	}
	return nil
}

// ApplyDelta incrementa atómicamente la cantidad del par, creando la fila si
// no existe, y devuelve la cantidad resultante.
func (r *StockLevelRepo) ApplyDelta(companyID, productID, warehouseID string, delta int) (int, error) {
	query := `
		INSERT INTO stock_levels (id, company_id, product_id, warehouse_id, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, now(), now())
		ON CONFLICT (product_id, warehouse_id)
		DO UPDATE SET quantity = stock_levels.quantity + $5, updated_at = now()
		RETURNING quantity`
	var quantity int
	err := r.q.QueryRow(context.Background(), query,
		uuid.New().String(), companyID, productID, warehouseID, delta,
	).Scan(&quantity)
	if err != nil {
		return 0, fmt.Errorf("apply stock level delta: %w", err)
	}
	return quantity, nil
}

// ListByProduct desglose por bodega de un producto.
func (r *StockLevelRepo) ListByProduct(productID string) ([]*entity.StockLevel, error) {
	query := `SELECT ` + stockLevelColumns + ` FROM stock_levels WHERE product_id = $1 ORDER BY warehouse_id`
	return r.list(query, productID)
}

// ListByWarehouse niveles de una bodega, paginados.
func (r *StockLevelRepo) ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.StockLevel, error) {
	query := `SELECT ` + stockLevelColumns + ` FROM stock_levels
		WHERE warehouse_id = $1 ORDER BY product_id LIMIT $2 OFFSET $3`
	return r.list(query, warehouseID, limit, offset)
}

func (r *StockLevelRepo) list(query string, args ...any) ([]*entity.StockLevel, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock levels: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockLevel
	for rows.Next() {
		sl, err := scanStockLevel(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, sl)
	}
	return list, rows.Err()
}

func scanStockLevel(row pgx.Row) (*entity.StockLevel, error) {
	var sl entity.StockLevel
	err := row.Scan(&sl.ID, &sl.CompanyID, &sl.ProductID, &sl.WarehouseID, &sl.Quantity, &sl.CreatedAt, &sl.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan stock level: %w", err)
	}
	return &sl, nil
}
