package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de producto. Los servicios nunca afectan stock.
const (
	ProductTypePhysical = "physical"
	ProductTypeService  = "service"
)

// Product representa un producto o SKU del catálogo.
// SKU es único por empresa; EAN13 es único global cuando está presente.
// Stock es el total del producto; el desglose por bodega vive en StockLevel.
type Product struct {
	ID                string
	CompanyID         string
	Name              string // normalizado: trim + primera letra mayúscula
	SKU               string
	EAN13             string // 13 dígitos con dígito de control; vacío si no tiene
	Description       string
	ProductType       string // physical | service
	Price             decimal.Decimal // precio de venta, >= 0
	Cost              decimal.Decimal // costo, >= 0, inicia en 0
	Stock             int             // puede ser negativo solo si la empresa lo permite
	LowStockThreshold int             // 0 = sin alertas para este producto
	CategoryIDs       []string        // relación muchos-a-muchos con Category
	TaxClassID        string          // override de clase de impuesto; vacío = heredar
	ImagePath         string
	IsActive          bool
	IsDeleted         bool
	DeletedAt         *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// IsLowStock indica si el stock está en o por debajo del umbral configurado.
// Umbral 0 desactiva la condición para este producto.
func (p *Product) IsLowStock() bool {
	return p.LowStockThreshold > 0 && p.Stock <= p.LowStockThreshold
}

// IsService indica si el producto es un servicio (no maneja stock).
func (p *Product) IsService() bool {
	return p.ProductType == ProductTypeService
}

// ProfitMargin devuelve el margen de ganancia como porcentaje:
// (precio - costo) / costo * 100. Si el costo es 0 devuelve 0 (sin división por cero).
func (p *Product) ProfitMargin() decimal.Decimal {
	if p.Cost.GreaterThan(decimal.Zero) {
		return p.Price.Sub(p.Cost).Div(p.Cost).Mul(decimal.NewFromInt(100))
	}
	return decimal.Zero
}

// Initial devuelve la inicial del nombre para avatares en UI.
func (p *Product) Initial() string {
	if p.Name == "" {
		return "?"
	}
	return string([]rune(p.Name)[0:1])
}
