package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TaxClass representa una clase de impuesto (ej. IVA general, reducido, exento).
// Los productos pueden referenciarla directamente (override) o heredarla de
// sus categorías o del default de la tienda (ver catalog.ResolveTaxClass).
type TaxClass struct {
	ID        string
	CompanyID string
	Name      string
	Rate      decimal.Decimal // porcentaje, ej. 21.00
	IsActive  bool
	SortOrder int
	CreatedAt time.Time
	UpdatedAt time.Time
}
