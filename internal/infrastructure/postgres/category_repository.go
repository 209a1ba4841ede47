package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/pos-catalogo/internal/domain"
	"github.com/tu-usuario/pos-catalogo/internal/domain/entity"
	"github.com/tu-usuario/pos-catalogo/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

const categoryColumns = `id, company_id, name, slug, icon, color, image_path, description,
	tax_class_id, is_active, sort_order, is_deleted, deleted_at, created_at, updated_at`

// CategoryRepo implementación del puerto CategoryRepository sobre PostgreSQL (usable con pool o tx).
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

// Create persiste una nueva categoría.
func (r *CategoryRepo) Create(category *entity.Category) error {
	query := `
		INSERT INTO categories (` + categoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(context.Background(), query,
		category.ID, category.CompanyID, category.Name, category.Slug, category.Icon, category.Color,
		category.ImagePath, category.Description, nullIfEmpty(category.TaxClassID), category.IsActive,
		category.SortOrder, category.IsDeleted, category.DeletedAt, category.CreatedAt, category.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// GetByID obtiene una categoría por ID.
func (r *CategoryRepo) GetByID(id string) (*entity.Category, error) {
	return r.getOne(`SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id)
}

// GetByName busca por nombre case-insensitive entre las no eliminadas.
func (r *CategoryRepo) GetByName(companyID, name string) (*entity.Category, error) {
	return r.getOne(
		`SELECT `+categoryColumns+` FROM categories WHERE company_id = $1 AND lower(name) = lower($2) AND NOT is_deleted`,
		companyID, name,
	)
}

// Update actualiza una categoría.
func (r *CategoryRepo) Update(category *entity.Category) error {
	query := `
		UPDATE categories SET name = $2, slug = $3, icon = $4, color = $5, image_path = $6,
			description = $7, tax_class_id = $8, is_active = $9, sort_order = $10, updated_at = $11
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		category.ID, category.Name, category.Slug, category.Icon, category.Color, category.ImagePath,
		category.Description, nullIfEmpty(category.TaxClassID), category.IsActive, category.SortOrder,
		category.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update category: %w", err)
	}
	return nil
}

// List lista categorías con búsqueda y filtros, más el total sin paginar.
func (r *CategoryRepo) List(f repository.CategoryFilter) ([]*entity.Category, int, error) {
	where := []string{"company_id = $1"}
	args := []any{f.CompanyID}

	if !f.IncludeDeleted {
		where = append(where, "NOT is_deleted")
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		n := len(args)
		where = append(where, fmt.Sprintf("(name ILIKE $%d OR description ILIKE $%d)", n, n))
	}
	switch f.Status {
	case "active":
		where = append(where, "is_active")
	case "inactive":
		where = append(where, "NOT is_active")
	}
	whereClause := strings.Join(where, " AND ")

	var total int
	if err := r.q.QueryRow(context.Background(),
		`SELECT count(*) FROM categories WHERE `+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count categories: %w", err)
	}

	orderBy := "sort_order ASC, name ASC"
	if f.SortField == "name" {
		orderBy = "name ASC"
	}
	if f.SortDesc {
		orderBy = strings.ReplaceAll(orderBy, "ASC", "DESC")
	}
	args = append(args, f.Limit, f.Offset)
	query := fmt.Sprintf(`SELECT %s FROM categories WHERE %s ORDER BY %s LIMIT $%d OFFSET $%d`,
		categoryColumns, whereClause, orderBy, len(args)-1, len(args))

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var list []*entity.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, c)
	}
	return list, total, rows.Err()
}

// ListByIDs trae las categorías no eliminadas del conjunto de IDs.
func (r *CategoryRepo) ListByIDs(companyID string, ids []string) ([]*entity.Category, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `SELECT ` + categoryColumns + ` FROM categories
		WHERE company_id = $1 AND id = ANY($2) AND NOT is_deleted ORDER BY sort_order, name`
	rows, err := r.q.Query(context.Background(), query, companyID, ids)
	if err != nil {
		return nil, fmt.Errorf("list categories by ids: %w", err)
	}
	defer rows.Close()
	var list []*entity.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// SoftDelete marca la categoría como eliminada y limpia sus relaciones con
// productos; los productos no se tocan.
func (r *CategoryRepo) SoftDelete(id string, at time.Time) error {
	ctx := context.Background()
	cmd, err := r.q.Exec(ctx,
		`UPDATE categories SET is_deleted = true, is_active = false, deleted_at = $2, updated_at = $2
		 WHERE id = $1 AND NOT is_deleted`,
		id, at,
	)
	if err != nil {
		return fmt.Errorf("soft delete category: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM product_categories WHERE category_id = $1`, id); err != nil {
		return fmt.Errorf("clear category relations: %w", err)
	}
	return nil
}

// SetActive activa o desactiva en lote, acotado a la empresa.
func (r *CategoryRepo) SetActive(companyID string, ids []string, active bool) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE categories SET is_active = $3, updated_at = now() WHERE company_id = $1 AND id = ANY($2) AND NOT is_deleted`,
		companyID, ids, active,
	)
	if err != nil {
		return fmt.Errorf("bulk set active categories: %w", err)
	}
	return nil
}

// SoftDeleteMany elimina en lote (soft delete), acotado a la empresa.
func (r *CategoryRepo) SoftDeleteMany(companyID string, ids []string, at time.Time) error {
	ctx := context.Background()
	_, err := r.q.Exec(ctx,
		`UPDATE categories SET is_deleted = true, is_active = false, deleted_at = $3, updated_at = $3
		 WHERE company_id = $1 AND id = ANY($2) AND NOT is_deleted`,
		companyID, ids, at,
	)
	if err != nil {
		return fmt.Errorf("bulk soft delete categories: %w", err)
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM product_categories WHERE category_id = ANY($1)`, ids); err != nil {
		return fmt.Errorf("clear category relations: %w", err)
	}
	return nil
}

// SlugExists verifica si el slug ya existe en la empresa (incluye eliminadas,
// los slugs no se reciclan).
func (r *CategoryRepo) SlugExists(companyID, slug string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM categories WHERE company_id = $1 AND slug = $2)`,
		companyID, slug,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("slug exists: %w", err)
	}
	return exists, nil
}

// ProductCount cuenta productos activos y no eliminados de la categoría.
func (r *CategoryRepo) ProductCount(categoryID string) (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(), `
		SELECT count(*) FROM product_categories pc
		JOIN products p ON p.id = pc.product_id
		WHERE pc.category_id = $1 AND p.is_active AND NOT p.is_deleted`,
		categoryID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count category products: %w", err)
	}
	return count, nil
}

func (r *CategoryRepo) getOne(query string, args ...any) (*entity.Category, error) {
	c, err := scanCategory(r.q.QueryRow(context.Background(), query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return c, nil
}

func scanCategory(row pgx.Row) (*entity.Category, error) {
	var (
		c          entity.Category
		taxClassID *string
	)
	err := row.Scan(
		&c.ID, &c.CompanyID, &c.Name, &c.Slug, &c.Icon, &c.Color, &c.ImagePath, &c.Description,
		&taxClassID, &c.IsActive, &c.SortOrder, &c.IsDeleted, &c.DeletedAt, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan category: %w", err)
	}
	if taxClassID != nil {
		c.TaxClassID = *taxClassID
	}
	return &c, nil
}
