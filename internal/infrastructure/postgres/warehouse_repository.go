package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/pos-catalogo/internal/domain"
	"github.com/tu-usuario/pos-catalogo/internal/domain/entity"
	"github.com/tu-usuario/pos-catalogo/internal/domain/repository"
)

var _ repository.WarehouseRepository = (*WarehouseRepo)(nil)

const warehouseColumns = `id, company_id, name, code, address, is_active, is_default,
	sort_order, is_deleted, deleted_at, created_at, updated_at`

// WarehouseRepo implementación del puerto WarehouseRepository sobre PostgreSQL (usable con pool o tx).
type WarehouseRepo struct {
	q Querier
}

// NewWarehouseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewWarehouseRepository(q Querier) *WarehouseRepo {
	return &WarehouseRepo{q: q}
}

// Create persiste una nueva bodega.
func (r *WarehouseRepo) Create(warehouse *entity.Warehouse) error {
	query := `
		INSERT INTO warehouses (` + warehouseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		warehouse.ID, warehouse.CompanyID, warehouse.Name, warehouse.Code, warehouse.Address,
		warehouse.IsActive, warehouse.IsDefault, warehouse.SortOrder, warehouse.IsDeleted,
		warehouse.DeletedAt, warehouse.CreatedAt, warehouse.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert warehouse: %w", err)
	}
	return nil
}

// GetByID obtiene una bodega por ID.
func (r *WarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	return r.getOne(`SELECT `+warehouseColumns+` FROM warehouses WHERE id = $1`, id)
}

// GetByCode obtiene una bodega no eliminada por empresa y código.
func (r *WarehouseRepo) GetByCode(companyID, code string) (*entity.Warehouse, error) {
	return r.getOne(
		`SELECT `+warehouseColumns+` FROM warehouses WHERE company_id = $1 AND code = $2 AND NOT is_deleted`,
		companyID, code,
	)
}

// Update actualiza una bodega.
func (r *WarehouseRepo) Update(warehouse *entity.Warehouse) error {
	query := `
		UPDATE warehouses SET name = $2, address = $3, is_active = $4, is_default = $5,
			sort_order = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		warehouse.ID, warehouse.Name, warehouse.Address, warehouse.IsActive, warehouse.IsDefault,
		warehouse.SortOrder, warehouse.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update warehouse: %w", err)
	}
	return nil
}

// ListByCompany lista las bodegas no eliminadas de la empresa.
func (r *WarehouseRepo) ListByCompany(companyID string, includeInactive bool) ([]*entity.Warehouse, error) {
	query := `SELECT ` + warehouseColumns + ` FROM warehouses
		WHERE company_id = $1 AND NOT is_deleted`
	if !includeInactive {
		query += ` AND is_active`
	}
	query += ` ORDER BY sort_order, name`
	rows, err := r.q.Query(context.Background(), query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list warehouses: %w", err)
	}
	defer rows.Close()
	var list []*entity.Warehouse
	for rows.Next() {
		w, err := scanWarehouse(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, w)
	}
	return list, rows.Err()
}

// SoftDelete marca la bodega como eliminada.
func (r *WarehouseRepo) SoftDelete(id string, at time.Time) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE warehouses SET is_deleted = true, is_active = false, deleted_at = $2, updated_at = $2
		 WHERE id = $1 AND NOT is_deleted`,
		id, at,
	)
	if err != nil {
		return fmt.Errorf("soft delete warehouse: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetDefault marca la bodega como default y desmarca las demás de la empresa.
// Dos statements sobre el mismo Querier: correr dentro de una tx si se
// necesita atomicidad estricta.
func (r *WarehouseRepo) SetDefault(companyID, warehouseID string) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx,
		`UPDATE warehouses SET is_default = false, updated_at = now()
		 WHERE company_id = $1 AND is_default AND id <> $2`,
		companyID, warehouseID,
	); err != nil {
		return fmt.Errorf("clear default warehouse: %w", err)
	}
	cmd, err := r.q.Exec(ctx,
		`UPDATE warehouses SET is_default = true, updated_at = now()
		 WHERE company_id = $1 AND id = $2 AND NOT is_deleted`,
		companyID, warehouseID,
	)
	if err != nil {
		return fmt.Errorf("set default warehouse: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *WarehouseRepo) getOne(query string, args ...any) (*entity.Warehouse, error) {
	w, err := scanWarehouse(r.q.QueryRow(context.Background(), query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return w, nil
}

func scanWarehouse(row pgx.Row) (*entity.Warehouse, error) {
	var w entity.Warehouse
	err := row.Scan(
		&w.ID, &w.CompanyID, &w.Name, &w.Code, &w.Address, &w.IsActive, &w.IsDefault,
		&w.SortOrder, &w.IsDeleted, &w.DeletedAt, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan warehouse: %w", err)
	}
	return &w, nil
}
