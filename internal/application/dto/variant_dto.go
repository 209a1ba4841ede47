package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/pos-catalogo/internal/domain/entity"
)

// CreateVariantRequest entrada para crear una variante de producto.
type CreateVariantRequest struct {
	ProductID  string           `json:"product_id" validate:"required"`
	Name       string           `json:"name" validate:"required,min=1,max=100"`
	SKU        string           `json:"sku" validate:"omitempty,max=100"`
	Price      *decimal.Decimal `json:"price"`
	Cost       *decimal.Decimal `json:"cost"`
	Stock      int              `json:"stock"`
	Attributes json.RawMessage  `json:"attributes"`
}

// UpdateVariantRequest entrada para actualizar una variante.
type UpdateVariantRequest struct {
	Name       *string          `json:"name" validate:"omitempty,min=1,max=100"`
	SKU        *string          `json:"sku" validate:"omitempty,max=100"`
	Price      *decimal.Decimal `json:"price"`
	Cost       *decimal.Decimal `json:"cost"`
	Attributes json.RawMessage  `json:"attributes"`
	IsActive   *bool            `json:"is_active"`
}

// VariantResponse salida de una variante. Price y Cost ya vienen resueltos:
// si la variante no define los suyos, heredan los del producto padre.
type VariantResponse struct {
	ID         string          `json:"id"`
	ProductID  string          `json:"product_id"`
	Name       string          `json:"name"`
	SKU        string          `json:"sku,omitempty"`
	Price      decimal.Decimal `json:"price"`
	Cost       decimal.Decimal `json:"cost"`
	Stock      int             `json:"stock"`
	IsLowStock bool            `json:"is_low_stock"`
	Attributes json.RawMessage `json:"attributes,omitempty"`
	IsActive   bool            `json:"is_active"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// VariantFromEntity mapea la variante a su DTO resolviendo la herencia de
// precio y costo contra el producto padre.
func VariantFromEntity(v *entity.ProductVariant, parent *entity.Product) VariantResponse {
	price := parent.Price
	if v.Price != nil {
		price = *v.Price
	}
	cost := parent.Cost
	if v.Cost != nil {
		cost = *v.Cost
	}
	return VariantResponse{
		ID:         v.ID,
		ProductID:  v.ProductID,
		Name:       v.Name,
		SKU:        v.SKU,
		Price:      price,
		Cost:       cost,
		Stock:      v.Stock,
		IsLowStock: v.IsLowStock(parent.LowStockThreshold),
		Attributes: v.Attributes,
		IsActive:   v.IsActive,
		CreatedAt:  v.CreatedAt,
		UpdatedAt:  v.UpdatedAt,
	}
}
