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

var _ repository.VariantRepository = (*VariantRepo)(nil)

const variantColumns = `id, company_id, product_id, name, sku, attributes, price, cost,
	stock, image_path, is_active, is_deleted, deleted_at, created_at, updated_at`

// VariantRepo implementación del puerto VariantRepository sobre PostgreSQL (usable con pool o tx).
// SKU vacío se guarda como NULL para no chocar con el unique global.
type VariantRepo struct {
	q Querier
}

// NewVariantRepository construye el adaptador. Pasar pool o tx (Querier).
func NewVariantRepository(q Querier) *VariantRepo {
	return &VariantRepo{q: q}
}

// Create persiste una nueva variante.
func (r *VariantRepo) Create(variant *entity.ProductVariant) error {
	query := `
		INSERT INTO product_variants (` + variantColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(context.Background(), query,
		variant.ID, variant.CompanyID, variant.ProductID, variant.Name, nullIfEmpty(variant.SKU),
		variant.Attributes, variant.Price, variant.Cost, variant.Stock, variant.ImagePath,
		variant.IsActive, variant.IsDeleted, variant.DeletedAt, variant.CreatedAt, variant.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert variant: %w", err)
	}
	return nil
}

// GetByID obtiene una variante por ID.
func (r *VariantRepo) GetByID(id string) (*entity.ProductVariant, error) {
	return r.getOne(`SELECT `+variantColumns+` FROM product_variants WHERE id = $1`, id)
}

// GetBySKU obtiene una variante no eliminada por SKU (único global).
func (r *VariantRepo) GetBySKU(sku string) (*entity.ProductVariant, error) {
	return r.getOne(
		`SELECT `+variantColumns+` FROM product_variants WHERE sku = $1 AND NOT is_deleted`, sku)
}

// GetByProductAndName obtiene una variante no eliminada por producto y nombre (ci).
func (r *VariantRepo) GetByProductAndName(productID, name string) (*entity.ProductVariant, error) {
	return r.getOne(
		`SELECT `+variantColumns+` FROM product_variants
		 WHERE product_id = $1 AND lower(name) = lower($2) AND NOT is_deleted`,
		productID, name,
	)
}

// Update actualiza una variante.
func (r *VariantRepo) Update(variant *entity.ProductVariant) error {
	query := `
		UPDATE product_variants SET name = $2, sku = $3, attributes = $4, price = $5, cost = $6,
			stock = $7, image_path = $8, is_active = $9, updated_at = $10
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		variant.ID, variant.Name, nullIfEmpty(variant.SKU), variant.Attributes, variant.Price,
		variant.Cost, variant.Stock, variant.ImagePath, variant.IsActive, variant.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update variant: %w", err)
	}
	return nil
}

// ListByProduct lista las variantes no eliminadas de un producto.
func (r *VariantRepo) ListByProduct(productID string) ([]*entity.ProductVariant, error) {
	query := `SELECT ` + variantColumns + ` FROM product_variants
		WHERE product_id = $1 AND NOT is_deleted ORDER BY name`
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("list variants: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProductVariant
	for rows.Next() {
		v, err := scanVariant(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, v)
	}
	return list, rows.Err()
}

// SoftDelete marca la variante como eliminada.
func (r *VariantRepo) SoftDelete(id string, at time.Time) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE product_variants SET is_deleted = true, is_active = false, deleted_at = $2, updated_at = $2
		 WHERE id = $1 AND NOT is_deleted`,
		id, at,
	)
	if err != nil {
		return fmt.Errorf("soft delete variant: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *VariantRepo) getOne(query string, args ...any) (*entity.ProductVariant, error) {
	v, err := scanVariant(r.q.QueryRow(context.Background(), query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return v, nil
}

func scanVariant(row pgx.Row) (*entity.ProductVariant, error) {
	var (
		v   entity.ProductVariant
		sku *string
	)
	err := row.Scan(
		&v.ID, &v.CompanyID, &v.ProductID, &v.Name, &sku, &v.Attributes, &v.Price, &v.Cost,
		&v.Stock, &v.ImagePath, &v.IsActive, &v.IsDeleted, &v.DeletedAt, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan variant: %w", err)
	}
	if sku != nil {
		v.SKU = *sku
	}
	return &v, nil
}
