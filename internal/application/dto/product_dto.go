package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/pos-catalogo/internal/domain/entity"
)

// CreateProductRequest entrada para crear un producto.
// SKU vacío dispara la autogeneración si la empresa la tiene habilitada.
type CreateProductRequest struct {
	SKU               string          `json:"sku" validate:"omitempty,max=100"`
	EAN13             string          `json:"ean13" validate:"omitempty,len=13"`
	Name              string          `json:"name" validate:"required,min=1,max=200"`
	Description       string          `json:"description"`
	ProductType       string          `json:"product_type" validate:"omitempty,oneof=physical service"`
	Price             decimal.Decimal `json:"price"`
	Cost              decimal.Decimal `json:"cost"`
	Stock             int             `json:"stock"`
	LowStockThreshold *int            `json:"low_stock_threshold"`
	CategoryIDs       []string        `json:"category_ids"`
	TaxClassID        string          `json:"tax_class_id"`
	ImagePath         string          `json:"image_path"`
}

// UpdateProductRequest entrada para actualizar un producto. El stock no se
// toca por aquí: todo cambio de stock pasa por el ajuste con auditoría.
type UpdateProductRequest struct {
	SKU               *string          `json:"sku" validate:"omitempty,max=100"`
	EAN13             *string          `json:"ean13" validate:"omitempty,len=13"`
	Name              *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description       *string          `json:"description"`
	Price             *decimal.Decimal `json:"price"`
	Cost              *decimal.Decimal `json:"cost"`
	LowStockThreshold *int             `json:"low_stock_threshold"`
	CategoryIDs       []string         `json:"category_ids"`
	TaxClassID        *string          `json:"tax_class_id"`
	ImagePath         *string          `json:"image_path"`
	IsActive          *bool            `json:"is_active"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID                string          `json:"id"`
	CompanyID         string          `json:"company_id"`
	SKU               string          `json:"sku"`
	EAN13             string          `json:"ean13,omitempty"`
	Name              string          `json:"name"`
	Description       string          `json:"description,omitempty"`
	ProductType       string          `json:"product_type"`
	Price             decimal.Decimal `json:"price"`
	Cost              decimal.Decimal `json:"cost"`
	ProfitMargin      decimal.Decimal `json:"profit_margin"`
	Stock             int             `json:"stock"`
	LowStockThreshold int             `json:"low_stock_threshold"`
	IsLowStock        bool            `json:"is_low_stock"`
	CategoryIDs       []string        `json:"category_ids,omitempty"`
	TaxClassID        string          `json:"tax_class_id,omitempty"`
	TaxRate           decimal.Decimal `json:"tax_rate"`
	ImagePath         string          `json:"image_path,omitempty"`
	Initial           string          `json:"initial"`
	IsActive          bool            `json:"is_active"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// ProductListRequest filtros de listado de productos.
type ProductListRequest struct {
	Search     string `query:"search"`
	CategoryID string `query:"category_id"`
	Status     string `query:"status" validate:"omitempty,oneof=active inactive low_stock out_of_stock"`
	SortField  string `query:"sort" validate:"omitempty,oneof=name sku price stock created_at"`
	SortDesc   bool   `query:"desc"`
	PageRequest
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// ProductFromEntity mapea la entidad a su DTO de salida. taxRate es la tasa
// efectiva ya resuelta (override, categoría o default de tienda).
func ProductFromEntity(p *entity.Product, taxRate decimal.Decimal) ProductResponse {
	return ProductResponse{
		ID:                p.ID,
		CompanyID:         p.CompanyID,
		SKU:               p.SKU,
		EAN13:             p.EAN13,
		Name:              p.Name,
		Description:       p.Description,
		ProductType:       p.ProductType,
		Price:             p.Price,
		Cost:              p.Cost,
		ProfitMargin:      p.ProfitMargin(),
		Stock:             p.Stock,
		LowStockThreshold: p.LowStockThreshold,
		IsLowStock:        p.IsLowStock(),
		CategoryIDs:       p.CategoryIDs,
		TaxClassID:        p.TaxClassID,
		TaxRate:           taxRate,
		ImagePath:         p.ImagePath,
		Initial:           p.Initial(),
		IsActive:          p.IsActive,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}
