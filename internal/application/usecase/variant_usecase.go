package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/pos-catalogo/internal/application/dto"
	"github.com/tu-usuario/pos-catalogo/internal/domain"
	"github.com/tu-usuario/pos-catalogo/internal/domain/entity"
	"github.com/tu-usuario/pos-catalogo/internal/domain/repository"
)

// VariantUseCase casos de uso para variantes de producto.
type VariantUseCase struct {
	variants repository.VariantRepository
	products repository.ProductRepository
}

// NewVariantUseCase construye el caso de uso.
func NewVariantUseCase(variants repository.VariantRepository, products repository.ProductRepository) *VariantUseCase {
	return &VariantUseCase{variants: variants, products: products}
}

// Create crea una variante. El nombre es único dentro del producto y el SKU,
// si viene, es único globalmente.
func (uc *VariantUseCase) Create(in dto.CreateVariantRequest) (*dto.VariantResponse, error) {
	parent, err := uc.products.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if parent == nil {
		return nil, domain.ErrNotFound
	}
	if parent.IsService() {
		return nil, domain.ErrInvalidInput
	}
	dup, err := uc.variants.GetByProductAndName(in.ProductID, in.Name)
	if err != nil {
		return nil, err
	}
	if dup != nil {
		return nil, domain.ErrDuplicate
	}
	if in.SKU != "" {
		existing, err := uc.variants.GetBySKU(in.SKU)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
	}
	if in.Stock < 0 {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	variant := &entity.ProductVariant{
		ID:         uuid.New().String(),
		CompanyID:  parent.CompanyID,
		ProductID:  in.ProductID,
		Name:       in.Name,
		SKU:        in.SKU,
		Price:      in.Price,
		Cost:       in.Cost,
		Stock:      in.Stock,
		Attributes: in.Attributes,
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.variants.Create(variant); err != nil {
		return nil, err
	}
	resp := dto.VariantFromEntity(variant, parent)
	return &resp, nil
}

// Update actualiza una variante.
func (uc *VariantUseCase) Update(id string, in dto.UpdateVariantRequest) (*dto.VariantResponse, error) {
	variant, err := uc.variants.GetByID(id)
	if err != nil {
		return nil, err
	}
	if variant == nil {
		return nil, domain.ErrNotFound
	}
	parent, err := uc.products.GetByID(variant.ProductID)
	if err != nil {
		return nil, err
	}
	if parent == nil {
		return nil, domain.ErrNotFound
	}

	if in.Name != nil && *in.Name != variant.Name {
		dup, err := uc.variants.GetByProductAndName(variant.ProductID, *in.Name)
		if err != nil {
			return nil, err
		}
		if dup != nil && dup.ID != variant.ID {
			return nil, domain.ErrDuplicate
		}
		variant.Name = *in.Name
	}
	if in.SKU != nil && *in.SKU != variant.SKU {
		if *in.SKU != "" {
			existing, err := uc.variants.GetBySKU(*in.SKU)
			if err != nil {
				return nil, err
			}
			if existing != nil && existing.ID != variant.ID {
				return nil, domain.ErrDuplicate
			}
		}
		variant.SKU = *in.SKU
	}
	if in.Price != nil {
		variant.Price = in.Price
	}
	if in.Cost != nil {
		variant.Cost = in.Cost
	}
	if len(in.Attributes) > 0 {
		variant.Attributes = in.Attributes
	}
	if in.IsActive != nil {
		variant.IsActive = *in.IsActive
	}
	variant.UpdatedAt = time.Now()
	if err := uc.variants.Update(variant); err != nil {
		return nil, err
	}
	resp := dto.VariantFromEntity(variant, parent)
	return &resp, nil
}

// ListByProduct lista las variantes de un producto.
func (uc *VariantUseCase) ListByProduct(productID string) ([]dto.VariantResponse, error) {
	parent, err := uc.products.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if parent == nil {
		return nil, domain.ErrNotFound
	}
	variants, err := uc.variants.ListByProduct(productID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.VariantResponse, 0, len(variants))
	for _, v := range variants {
		out = append(out, dto.VariantFromEntity(v, parent))
	}
	return out, nil
}

// Delete elimina una variante (soft delete).
func (uc *VariantUseCase) Delete(id string) error {
	variant, err := uc.variants.GetByID(id)
	if err != nil {
		return err
	}
	if variant == nil {
		return domain.ErrNotFound
	}
	return uc.variants.SoftDelete(id, time.Now())
}
