package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/pos-catalogo/internal/domain/entity"
	"github.com/tu-usuario/pos-catalogo/internal/domain/repository"
)

var _ repository.TaxClassRepository = (*TaxClassRepo)(nil)

const taxClassColumns = `id, company_id, name, rate, is_active, sort_order, created_at, updated_at`

// TaxClassRepo implementación del puerto TaxClassRepository sobre PostgreSQL (usable con pool o tx).
type TaxClassRepo struct {
	q Querier
}

// NewTaxClassRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTaxClassRepository(q Querier) *TaxClassRepo {
	return &TaxClassRepo{q: q}
}

// GetByID obtiene una clase de impuesto por ID.
func (r *TaxClassRepo) GetByID(id string) (*entity.TaxClass, error) {
	tc, err := scanTaxClass(r.q.QueryRow(context.Background(),
		`SELECT `+taxClassColumns+` FROM tax_classes WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return tc, nil
}

// ListByCompany lista las clases activas de la empresa.
func (r *TaxClassRepo) ListByCompany(companyID string) ([]*entity.TaxClass, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+taxClassColumns+` FROM tax_classes WHERE company_id = $1 AND is_active ORDER BY sort_order, name`,
		companyID)
	if err != nil {
		return nil, fmt.Errorf("list tax classes: %w", err)
	}
	defer rows.Close()
	var list []*entity.TaxClass
	for rows.Next() {
		tc, err := scanTaxClass(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, tc)
	}
	return list, rows.Err()
}

// StoreDefaults devuelve la clase default de la tienda (nil si no hay) y la
// tasa plana legacy de store_config.
func (r *TaxClassRepo) StoreDefaults(companyID string) (*entity.TaxClass, decimal.Decimal, error) {
	var (
		defaultTaxClassID *string
		flatRate          decimal.Decimal
	)
	err := r.q.QueryRow(context.Background(),
		`SELECT default_tax_class_id, tax_rate FROM store_config WHERE company_id = $1`, companyID,
	).Scan(&defaultTaxClassID, &flatRate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, decimal.Zero, nil
		}
		return nil, decimal.Zero, fmt.Errorf("get store config: %w", err)
	}
	if defaultTaxClassID == nil {
		return nil, flatRate, nil
	}
	tc, err := r.GetByID(*defaultTaxClassID)
	if err != nil {
		return nil, decimal.Zero, err
	}
	return tc, flatRate, nil
}

func scanTaxClass(row pgx.Row) (*entity.TaxClass, error) {
	var tc entity.TaxClass
	err := row.Scan(&tc.ID, &tc.CompanyID, &tc.Name, &tc.Rate, &tc.IsActive, &tc.SortOrder, &tc.CreatedAt, &tc.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan tax class: %w", err)
	}
	return &tc, nil
}
