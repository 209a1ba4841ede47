package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/pos-catalogo/internal/domain"
	"github.com/tu-usuario/pos-catalogo/internal/domain/entity"
	"github.com/tu-usuario/pos-catalogo/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, company_id, sku, ean13, name, description, product_type, price, cost,
	stock, low_stock_threshold, tax_class_id, image_path, is_active, is_deleted, deleted_at, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
// EAN13 vacío se guarda como NULL para que el unique global no choque entre vacíos.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.CompanyID, product.SKU, nullIfEmpty(product.EAN13),
		product.Name, product.Description, product.ProductType, product.Price, product.Cost,
		product.Stock, product.LowStockThreshold, nullIfEmpty(product.TaxClassID), product.ImagePath,
		product.IsActive, product.IsDeleted, product.DeletedAt, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID, con sus categorías cargadas.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.getOne(`SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

// GetByCompanyAndSKU obtiene un producto no eliminado por empresa y SKU.
func (r *ProductRepo) GetByCompanyAndSKU(companyID, sku string) (*entity.Product, error) {
	return r.getOne(
		`SELECT `+productColumns+` FROM products WHERE company_id = $1 AND sku = $2 AND NOT is_deleted`,
		companyID, sku,
	)
}

// FindByReference resuelve una referencia libre con precedencia SKU exacto ->
// EAN-13 exacto -> nombre exacto (ci) -> substring de nombre. Gana el primer
// match; las búsquedas por nombre desempatan por orden alfabético. Una
// referencia en blanco no matchea (el ILIKE con patrón vacío coincidiría con
// todos los nombres).
func (r *ProductRepo) FindByReference(companyID, ref string) (*entity.Product, error) {
	if strings.TrimSpace(ref) == "" {
		return nil, nil
	}
	queries := []string{
		`SELECT ` + productColumns + ` FROM products WHERE company_id = $1 AND sku = $2 AND NOT is_deleted`,
		`SELECT ` + productColumns + ` FROM products WHERE company_id = $1 AND ean13 = $2 AND NOT is_deleted`,
		`SELECT ` + productColumns + ` FROM products WHERE company_id = $1 AND lower(name) = lower($2) AND NOT is_deleted ORDER BY name LIMIT 1`,
		`SELECT ` + productColumns + ` FROM products WHERE company_id = $1 AND name ILIKE '%' || $2 || '%' AND NOT is_deleted ORDER BY name LIMIT 1`,
	}
	for _, query := range queries {
		p, err := r.getOne(query, companyID, ref)
		if err != nil {
			return nil, err
		}
		if p != nil {
			return p, nil
		}
	}
	return nil, nil
}

// Update actualiza los datos del producto. El stock NO se toca por aquí:
// todo cambio de stock pasa por ApplyStockDelta.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products SET sku = $2, ean13 = $3, name = $4, description = $5, price = $6, cost = $7,
			low_stock_threshold = $8, tax_class_id = $9, image_path = $10, is_active = $11, updated_at = $12
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.SKU, nullIfEmpty(product.EAN13), product.Name, product.Description,
		product.Price, product.Cost, product.LowStockThreshold, nullIfEmpty(product.TaxClassID),
		product.ImagePath, product.IsActive, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// SetCategories reemplaza la relación producto-categorías.
func (r *ProductRepo) SetCategories(productID string, categoryIDs []string) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx, `DELETE FROM product_categories WHERE product_id = $1`, productID); err != nil {
		return fmt.Errorf("clear product categories: %w", err)
	}
	for _, categoryID := range categoryIDs {
		_, err := r.q.Exec(ctx,
			`INSERT INTO product_categories (product_id, category_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			productID, categoryID,
		)
		if err != nil {
			return fmt.Errorf("insert product category: %w", err)
		}
	}
	return nil
}

// List lista productos con búsqueda, filtros y orden, más el total sin paginar.
func (r *ProductRepo) List(f repository.ProductFilter) ([]*entity.Product, int, error) {
	where := []string{"p.company_id = $1"}
	args := []any{f.CompanyID}

	if !f.IncludeDeleted {
		where = append(where, "NOT p.is_deleted")
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		n := len(args)
		where = append(where, fmt.Sprintf(`(p.name ILIKE $%d OR p.sku ILIKE $%d OR p.ean13 ILIKE $%d
			OR EXISTS (SELECT 1 FROM product_categories pc JOIN categories c ON c.id = pc.category_id
				WHERE pc.product_id = p.id AND c.name ILIKE $%d))`, n, n, n, n))
	}
	if f.CategoryID != "" {
		args = append(args, f.CategoryID)
		where = append(where, fmt.Sprintf(
			`EXISTS (SELECT 1 FROM product_categories pc WHERE pc.product_id = p.id AND pc.category_id = $%d)`,
			len(args)))
	}
	switch f.Status {
	case "active":
		where = append(where, "p.is_active")
	case "inactive":
		where = append(where, "NOT p.is_active")
	case "low_stock":
		where = append(where, "p.low_stock_threshold > 0 AND p.stock <= p.low_stock_threshold AND p.stock > 0")
	case "out_of_stock":
		where = append(where, "p.stock <= 0")
	}
	whereClause := strings.Join(where, " AND ")

	var total int
	countQuery := `SELECT count(*) FROM products p WHERE ` + whereClause
	if err := r.q.QueryRow(context.Background(), countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	orderBy := productOrderBy(f.SortField, f.SortDesc)
	args = append(args, f.Limit, f.Offset)
	query := fmt.Sprintf(`SELECT %s FROM products p WHERE %s ORDER BY %s LIMIT $%d OFFSET $%d`,
		prefixColumns("p"), whereClause, orderBy, len(args)-1, len(args))

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	if err := r.loadCategories(list); err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// SoftDelete marca el producto como eliminado, conservando su historial.
func (r *ProductRepo) SoftDelete(id string, at time.Time) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE products SET is_deleted = true, is_active = false, deleted_at = $2, updated_at = $2 WHERE id = $1 AND NOT is_deleted`,
		id, at,
	)
	if err != nil {
		return fmt.Errorf("soft delete product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetActive activa o desactiva en lote, acotado a la empresa.
func (r *ProductRepo) SetActive(companyID string, ids []string, active bool) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE products SET is_active = $3, updated_at = now() WHERE company_id = $1 AND id = ANY($2) AND NOT is_deleted`,
		companyID, ids, active,
	)
	if err != nil {
		return fmt.Errorf("bulk set active: %w", err)
	}
	return nil
}

// SoftDeleteMany elimina en lote (soft delete), acotado a la empresa.
func (r *ProductRepo) SoftDeleteMany(companyID string, ids []string, at time.Time) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE products SET is_deleted = true, is_active = false, deleted_at = $3, updated_at = $3
		 WHERE company_id = $1 AND id = ANY($2) AND NOT is_deleted`,
		companyID, ids, at,
	)
	if err != nil {
		return fmt.Errorf("bulk soft delete: %w", err)
	}
	return nil
}

// ApplyStockDelta aplica el delta con un solo UPDATE atómico; dos ajustes
// concurrentes sobre el mismo producto se serializan en la fila y ninguno
// pisa al otro. Con allowNegative en false, la condición de no-negatividad
// va en el mismo statement.
func (r *ProductRepo) ApplyStockDelta(productID string, delta int, allowNegative bool) (int, error) {
	query := `
		UPDATE products SET stock = stock + $2, updated_at = now()
		WHERE id = $1 AND NOT is_deleted
		RETURNING stock`
	if !allowNegative && delta < 0 {
		query = `
		UPDATE products SET stock = stock + $2, updated_at = now()
		WHERE id = $1 AND NOT is_deleted AND stock + $2 >= 0
		RETURNING stock`
	}
	var newStock int
	err := r.q.QueryRow(context.Background(), query, productID, delta).Scan(&newStock)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Sin fila: o el producto no existe o el delta dejaría stock negativo.
			exists, eerr := r.exists(productID)
			if eerr != nil {
				return 0, eerr
			}
			if !exists {
				return 0, domain.ErrNotFound
			}
			return 0, domain.ErrInsufficientStock
		}
		return 0, fmt.Errorf("apply stock delta: %w", err)
	}
	return newStock, nil
}

// ListWithoutEAN13 lista productos físicos no eliminados sin código asignado.
func (r *ProductRepo) ListWithoutEAN13(companyID string) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products
		WHERE company_id = $1 AND ean13 IS NULL AND product_type = 'physical' AND NOT is_deleted
		ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list products without ean13: %w", err)
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

// ExistsEAN13 verifica si el código ya está asignado a algún producto.
func (r *ProductRepo) ExistsEAN13(ean13 string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM products WHERE ean13 = $1)`, ean13,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists ean13: %w", err)
	}
	return exists, nil
}

// UpdateCost escribe solo el costo (costeo promedio ponderado en entradas).
func (r *ProductRepo) UpdateCost(productID string, cost decimal.Decimal) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE products SET cost = $2, updated_at = now() WHERE id = $1 AND NOT is_deleted`,
		productID, cost,
	)
	if err != nil {
		return fmt.Errorf("update cost: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateEAN13 asigna el código al producto.
func (r *ProductRepo) UpdateEAN13(productID, ean13 string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE products SET ean13 = $2, updated_at = now() WHERE id = $1`,
		productID, nullIfEmpty(ean13),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update ean13: %w", err)
	}
	return nil
}

func (r *ProductRepo) getOne(query string, args ...any) (*entity.Product, error) {
	row := r.q.QueryRow(context.Background(), query, args...)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if err := r.loadCategories([]*entity.Product{p}); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *ProductRepo) exists(productID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM products WHERE id = $1 AND NOT is_deleted)`, productID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("product exists: %w", err)
	}
	return exists, nil
}

// loadCategories llena CategoryIDs para un lote de productos en una sola consulta.
func (r *ProductRepo) loadCategories(products []*entity.Product) error {
	if len(products) == 0 {
		return nil
	}
	byID := make(map[string]*entity.Product, len(products))
	ids := make([]string, 0, len(products))
	for _, p := range products {
		byID[p.ID] = p
		ids = append(ids, p.ID)
	}
	rows, err := r.q.Query(context.Background(),
		`SELECT product_id, category_id FROM product_categories WHERE product_id = ANY($1)`, ids)
	if err != nil {
		return fmt.Errorf("load product categories: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var productID, categoryID string
		if err := rows.Scan(&productID, &categoryID); err != nil {
			return fmt.Errorf("scan product category: %w", err)
		}
		if p, ok := byID[productID]; ok {
			p.CategoryIDs = append(p.CategoryIDs, categoryID)
		}
	}
	return rows.Err()
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var (
		p          entity.Product
		ean13      *string
		taxClassID *string
	)
	err := row.Scan(
		&p.ID, &p.CompanyID, &p.SKU, &ean13, &p.Name, &p.Description, &p.ProductType,
		&p.Price, &p.Cost, &p.Stock, &p.LowStockThreshold, &taxClassID, &p.ImagePath,
		&p.IsActive, &p.IsDeleted, &p.DeletedAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan product: %w", err)
	}
	if ean13 != nil {
		p.EAN13 = *ean13
	}
	if taxClassID != nil {
		p.TaxClassID = *taxClassID
	}
	return &p, nil
}

// productOrderBy traduce el campo de orden a SQL con lista blanca.
func productOrderBy(field string, desc bool) string {
	col, ok := map[string]string{
		"name":       "p.name",
		"sku":        "p.sku",
		"price":      "p.price",
		"stock":      "p.stock",
		"created_at": "p.created_at",
	}[field]
	if !ok {
		col = "p.name"
	}
	if desc {
		return col + " DESC"
	}
	return col + " ASC"
}

func prefixColumns(alias string) string {
	cols := strings.Split(productColumns, ",")
	for i, c := range cols {
		cols[i] = alias + "." + strings.TrimSpace(c)
	}
	return strings.Join(cols, ", ")
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
