package entity

import "time"

// Category representa una categoría de productos del catálogo.
// El slug se deriva del nombre y es único por empresa (ver catalog.UniqueSlug).
type Category struct {
	ID          string
	CompanyID   string
	Name        string // normalizado: trim + primera letra mayúscula
	Slug        string
	Icon        string // nombre de icono (ej. cafe-outline, pizza-outline)
	Color       string // color hex (ej. #3880ff)
	ImagePath   string // vacío si no tiene imagen
	Description string
	TaxClassID  string // clase de impuesto por defecto para sus productos; vacío = ninguna
	IsActive    bool
	SortOrder   int
	IsDeleted   bool
	DeletedAt   *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Initial devuelve la inicial del nombre para avatares en UI.
func (c *Category) Initial() string {
	if c.Name == "" {
		return "?"
	}
	return string([]rune(c.Name)[0:1])
}
