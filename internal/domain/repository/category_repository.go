package repository

import (
	"time"

	"github.com/tu-usuario/pos-catalogo/internal/domain/entity"
)

// CategoryFilter criterios de listado de categorías.
type CategoryFilter struct {
	CompanyID      string
	Search         string // icontains sobre nombre y descripción
	Status         string // "", active, inactive
	IncludeDeleted bool
	SortField      string // name, sort_order
	SortDesc       bool
	Limit          int
	Offset         int
}

// CategoryRepository define el puerto de persistencia para Category (DIP).
type CategoryRepository interface {
	Create(category *entity.Category) error
	GetByID(id string) (*entity.Category, error)
	// GetByName busca por nombre case-insensitive entre las no eliminadas.
	GetByName(companyID, name string) (*entity.Category, error)
	Update(category *entity.Category) error
	List(f CategoryFilter) ([]*entity.Category, int, error)
	ListByIDs(companyID string, ids []string) ([]*entity.Category, error)
	SoftDelete(id string, at time.Time) error
	SetActive(companyID string, ids []string, active bool) error
	SoftDeleteMany(companyID string, ids []string, at time.Time) error
	SlugExists(companyID, slug string) (bool, error)
	// ProductCount cuenta productos activos y no eliminados de la categoría.
	ProductCount(categoryID string) (int, error)
}
