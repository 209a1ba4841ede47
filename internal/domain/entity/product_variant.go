package entity

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// ProductVariant representa una variante de un producto (color, talla, peso, etc.).
// Se elimina en cascada con su producto. El nombre es único por producto y
// el SKU de la variante es único global.
type ProductVariant struct {
	ID         string
	CompanyID  string
	ProductID  string
	Name       string // ej. "Rojo XL", "Azul M", "1kg"
	SKU        string
	Attributes json.RawMessage // ej. {"color": "rojo", "talla": "XL"}
	Price      *decimal.Decimal // nil = hereda el precio del producto padre
	Cost       *decimal.Decimal // nil = hereda el costo del producto padre
	Stock      int
	ImagePath  string
	IsActive   bool
	IsDeleted  bool
	DeletedAt  *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsLowStock compara contra el umbral del producto padre, no uno propio.
// Umbral 0 desactiva la condición, igual que en Product.
func (v *ProductVariant) IsLowStock(parentThreshold int) bool {
	return parentThreshold > 0 && v.Stock <= parentThreshold
}
