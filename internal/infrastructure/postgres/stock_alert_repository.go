package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/pos-catalogo/internal/domain"
	"github.com/tu-usuario/pos-catalogo/internal/domain/entity"
	"github.com/tu-usuario/pos-catalogo/internal/domain/repository"
)

var _ repository.StockAlertRepository = (*StockAlertRepo)(nil)

const alertColumns = `id, company_id, product_id, warehouse_id, current_stock, threshold,
	status, acknowledged_at, resolved_at, created_at, updated_at`

// StockAlertRepo implementación del puerto StockAlertRepository sobre PostgreSQL (usable con pool o tx).
type StockAlertRepo struct {
	q Querier
}

// NewStockAlertRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockAlertRepository(q Querier) *StockAlertRepo {
	return &StockAlertRepo{q: q}
}

// Create persiste una nueva alerta.
func (r *StockAlertRepo) Create(alert *entity.StockAlert) error {
	query := `
		INSERT INTO stock_alerts (` + alertColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		alert.ID, alert.CompanyID, alert.ProductID, nullIfEmpty(alert.WarehouseID),
		alert.CurrentStock, alert.Threshold, alert.Status, alert.AcknowledgedAt,
		alert.ResolvedAt, alert.CreatedAt, alert.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert stock alert: %w", err)
	}
	return nil
}

// GetByID obtiene una alerta por ID.
func (r *StockAlertRepo) GetByID(id string) (*entity.StockAlert, error) {
	a, err := scanAlert(r.q.QueryRow(context.Background(),
		`SELECT `+alertColumns+` FROM stock_alerts WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return a, nil
}

// Update actualiza el estado y snapshots de una alerta.
func (r *StockAlertRepo) Update(alert *entity.StockAlert) error {
	query := `
		UPDATE stock_alerts SET current_stock = $2, threshold = $3, status = $4,
			acknowledged_at = $5, resolved_at = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		alert.ID, alert.CurrentStock, alert.Threshold, alert.Status,
		alert.AcknowledgedAt, alert.ResolvedAt, alert.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update stock alert: %w", err)
	}
	return nil
}

// ListByStatus lista alertas de la empresa; status vacío trae todas.
func (r *StockAlertRepo) ListByStatus(companyID, status string, limit, offset int) ([]*entity.StockAlert, error) {
	query := `SELECT ` + alertColumns + ` FROM stock_alerts WHERE company_id = $1`
	args := []any{companyID}
	if status != "" {
		args = append(args, status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	args = append(args, limit, offset)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock alerts: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockAlert
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// FindActive devuelve la alerta activa del producto (nil si no hay).
func (r *StockAlertRepo) FindActive(productID string) (*entity.StockAlert, error) {
	a, err := scanAlert(r.q.QueryRow(context.Background(),
		`SELECT `+alertColumns+` FROM stock_alerts
		 WHERE product_id = $1 AND status = $2 ORDER BY created_at DESC LIMIT 1`,
		productID, entity.AlertStatusActive))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return a, nil
}

func scanAlert(row pgx.Row) (*entity.StockAlert, error) {
	var (
		a           entity.StockAlert
		warehouseID *string
	)
	err := row.Scan(
		&a.ID, &a.CompanyID, &a.ProductID, &warehouseID, &a.CurrentStock, &a.Threshold,
		&a.Status, &a.AcknowledgedAt, &a.ResolvedAt, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan stock alert: %w", err)
	}
	if warehouseID != nil {
		a.WarehouseID = *warehouseID
	}
	return &a, nil
}
