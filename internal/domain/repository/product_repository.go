package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/pos-catalogo/internal/domain/entity"
)

// ProductFilter criterios de listado de productos.
// Por defecto se excluyen los soft-deleted; IncludeDeleted los trae de vuelta
// (los dos scopes explícitos, sin filtro escondido en el storage).
type ProductFilter struct {
	CompanyID      string
	Search         string // icontains sobre nombre, SKU, EAN-13 y nombre de categoría
	CategoryID     string
	Status         string // "", active, inactive, low_stock, out_of_stock
	IncludeDeleted bool
	SortField      string // name, sku, price, stock, created_at
	SortDesc       bool
	Limit          int
	Offset         int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByCompanyAndSKU(companyID, sku string) (*entity.Product, error)
	// FindByReference resuelve una referencia libre con precedencia:
	// SKU exacto -> EAN-13 exacto -> nombre exacto (ci) -> substring de nombre.
	// Gana el primer match; nil si ninguno.
	FindByReference(companyID, ref string) (*entity.Product, error)
	Update(product *entity.Product) error
	SetCategories(productID string, categoryIDs []string) error
	List(f ProductFilter) ([]*entity.Product, int, error)
	SoftDelete(id string, at time.Time) error
	SetActive(companyID string, ids []string, active bool) error
	SoftDeleteMany(companyID string, ids []string, at time.Time) error

	// ApplyStockDelta aplica el delta con un incremento atómico en la BD
	// (UPDATE ... SET stock = stock + $n RETURNING stock). Con allowNegative
	// en false la condición stock+delta >= 0 va en el mismo statement;
	// sin fila afectada -> domain.ErrInsufficientStock.
	ApplyStockDelta(productID string, delta int, allowNegative bool) (int, error)

	// UpdateCost escribe solo el costo del producto (costeo promedio en
	// entradas de stock, sin pisar el resto de columnas).
	UpdateCost(productID string, cost decimal.Decimal) error

	ListWithoutEAN13(companyID string) ([]*entity.Product, error)
	ExistsEAN13(ean13 string) (bool, error)
	UpdateEAN13(productID, ean13 string) error
}
