package repository

import (
	"time"

	"github.com/tu-usuario/pos-catalogo/internal/domain/entity"
)

// VariantRepository define el puerto de persistencia para ProductVariant (DIP).
// Las variantes se eliminan en cascada con su producto (FK ON DELETE CASCADE).
type VariantRepository interface {
	Create(variant *entity.ProductVariant) error
	GetByID(id string) (*entity.ProductVariant, error)
	GetBySKU(sku string) (*entity.ProductVariant, error)
	GetByProductAndName(productID, name string) (*entity.ProductVariant, error)
	Update(variant *entity.ProductVariant) error
	ListByProduct(productID string) ([]*entity.ProductVariant, error)
	SoftDelete(id string, at time.Time) error
}
