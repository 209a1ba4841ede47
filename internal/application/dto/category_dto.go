package dto

import (
	"time"

	"github.com/tu-usuario/pos-catalogo/internal/domain/entity"
)

// CreateCategoryRequest entrada para crear una categoría.
// Icon y Color vacíos toman los defaults de configuración.
type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Icon        string `json:"icon"`
	Color       string `json:"color" validate:"omitempty,hexcolor"`
	ImagePath   string `json:"image_path"`
	Description string `json:"description"`
	TaxClassID  string `json:"tax_class_id"`
	SortOrder   int    `json:"sort_order"`
}

// UpdateCategoryRequest entrada para actualizar una categoría.
type UpdateCategoryRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=100"`
	Icon        *string `json:"icon"`
	Color       *string `json:"color" validate:"omitempty,hexcolor"`
	ImagePath   *string `json:"image_path"`
	Description *string `json:"description"`
	TaxClassID  *string `json:"tax_class_id"`
	SortOrder   *int    `json:"sort_order"`
	IsActive    *bool   `json:"is_active"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID           string    `json:"id"`
	CompanyID    string    `json:"company_id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	Icon         string    `json:"icon"`
	Color        string    `json:"color"`
	ImagePath    string    `json:"image_path,omitempty"`
	Description  string    `json:"description,omitempty"`
	TaxClassID   string    `json:"tax_class_id,omitempty"`
	SortOrder    int       `json:"sort_order"`
	Initial      string    `json:"initial"`
	ProductCount int       `json:"product_count"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CategoryListRequest filtros de listado de categorías.
type CategoryListRequest struct {
	Search    string `query:"search"`
	Status    string `query:"status" validate:"omitempty,oneof=active inactive"`
	SortField string `query:"sort" validate:"omitempty,oneof=name sort_order"`
	SortDesc  bool   `query:"desc"`
	PageRequest
}

// CategoryListResponse lista paginada de categorías.
type CategoryListResponse struct {
	Items []CategoryResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// CategoryFromEntity mapea la entidad a su DTO de salida.
func CategoryFromEntity(c *entity.Category, productCount int) CategoryResponse {
	return CategoryResponse{
		ID:           c.ID,
		CompanyID:    c.CompanyID,
		Name:         c.Name,
		Slug:         c.Slug,
		Icon:         c.Icon,
		Color:        c.Color,
		ImagePath:    c.ImagePath,
		Description:  c.Description,
		TaxClassID:   c.TaxClassID,
		SortOrder:    c.SortOrder,
		Initial:      c.Initial(),
		ProductCount: productCount,
		IsActive:     c.IsActive,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}
