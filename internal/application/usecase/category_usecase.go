package usecase

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/pos-catalogo/internal/application/dto"
	"github.com/tu-usuario/pos-catalogo/internal/domain"
	"github.com/tu-usuario/pos-catalogo/internal/domain/catalog"
	"github.com/tu-usuario/pos-catalogo/internal/domain/entity"
	"github.com/tu-usuario/pos-catalogo/internal/domain/repository"
	"github.com/tu-usuario/pos-catalogo/pkg/config"
)

// CategoryUseCase casos de uso CRUD para categorías.
type CategoryUseCase struct {
	categories repository.CategoryRepository
	cfg        config.InventoryConfig
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(categories repository.CategoryRepository, cfg config.InventoryConfig) *CategoryUseCase {
	return &CategoryUseCase{categories: categories, cfg: cfg}
}

// Create crea una categoría. El nombre se capitaliza, el slug se deriva del
// nombre y se hace único por empresa con sufijo numérico; icon y color vacíos
// toman los defaults configurados.
func (uc *CategoryUseCase) Create(companyID string, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	name := catalog.Capitalize(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.categories.GetByName(companyID, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	slug, err := uc.uniqueSlug(companyID, name)
	if err != nil {
		return nil, err
	}

	icon := in.Icon
	if icon == "" {
		icon = uc.cfg.DefaultCategoryIcon
	}
	color := in.Color
	if color == "" {
		color = uc.cfg.DefaultCategoryColor
	}

	now := time.Now()
	category := &entity.Category{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		Name:        name,
		Slug:        slug,
		Icon:        icon,
		Color:       color,
		ImagePath:   in.ImagePath,
		Description: in.Description,
		TaxClassID:  in.TaxClassID,
		SortOrder:   in.SortOrder,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.categories.Create(category); err != nil {
		return nil, err
	}
	resp := dto.CategoryFromEntity(category, 0)
	return &resp, nil
}

// GetOrCreateByName devuelve la categoría con ese nombre (ci) o la crea con
// defaults. Lo usa el importador CSV para autocrear categorías.
func (uc *CategoryUseCase) GetOrCreateByName(companyID, name string) (*entity.Category, error) {
	name = catalog.Capitalize(name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.categories.GetByName(companyID, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}
	created, err := uc.Create(companyID, dto.CreateCategoryRequest{Name: name})
	if err != nil {
		return nil, err
	}
	return uc.categories.GetByID(created.ID)
}

// GetByID obtiene una categoría con su conteo de productos.
func (uc *CategoryUseCase) GetByID(id string) (*dto.CategoryResponse, error) {
	category, err := uc.categories.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	count, err := uc.categories.ProductCount(id)
	if err != nil {
		return nil, err
	}
	resp := dto.CategoryFromEntity(category, count)
	return &resp, nil
}

// Update actualiza una categoría. Un cambio de nombre regenera el slug.
func (uc *CategoryUseCase) Update(id string, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	category, err := uc.categories.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		name := catalog.Capitalize(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		if name != category.Name {
			other, err := uc.categories.GetByName(category.CompanyID, name)
			if err != nil {
				return nil, err
			}
			if other != nil && other.ID != category.ID {
				return nil, domain.ErrDuplicate
			}
			slug, err := uc.uniqueSlug(category.CompanyID, name)
			if err != nil {
				return nil, err
			}
			category.Name = name
			category.Slug = slug
		}
	}
	if in.Icon != nil {
		category.Icon = *in.Icon
	}
	if in.Color != nil {
		category.Color = *in.Color
	}
	if in.ImagePath != nil {
		category.ImagePath = *in.ImagePath
	}
	if in.Description != nil {
		category.Description = *in.Description
	}
	if in.TaxClassID != nil {
		category.TaxClassID = *in.TaxClassID
	}
	if in.SortOrder != nil {
		category.SortOrder = *in.SortOrder
	}
	if in.IsActive != nil {
		category.IsActive = *in.IsActive
	}
	category.UpdatedAt = time.Now()
	if err := uc.categories.Update(category); err != nil {
		return nil, err
	}
	count, err := uc.categories.ProductCount(id)
	if err != nil {
		return nil, err
	}
	resp := dto.CategoryFromEntity(category, count)
	return &resp, nil
}

// Delete elimina una categoría (soft delete). Los productos quedan sin la
// relación pero no se tocan.
func (uc *CategoryUseCase) Delete(id string) error {
	category, err := uc.categories.GetByID(id)
	if err != nil {
		return err
	}
	if category == nil {
		return domain.ErrNotFound
	}
	return uc.categories.SoftDelete(id, time.Now())
}

// List lista categorías con su conteo de productos.
func (uc *CategoryUseCase) List(companyID string, in dto.CategoryListRequest) (*dto.CategoryListResponse, error) {
	in.DefaultPage(uc.cfg.ItemsPerPage)
	filter := repository.CategoryFilter{
		CompanyID: companyID,
		Search:    strings.TrimSpace(in.Search),
		Status:    in.Status,
		SortField: in.SortField,
		SortDesc:  in.SortDesc,
		Limit:     in.Limit,
		Offset:    in.Offset,
	}
	items, total, err := uc.categories.List(filter)
	if err != nil {
		return nil, err
	}
	out := &dto.CategoryListResponse{
		Items: make([]dto.CategoryResponse, 0, len(items)),
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}
	for _, c := range items {
		count, err := uc.categories.ProductCount(c.ID)
		if err != nil {
			return nil, err
		}
		out.Items = append(out.Items, dto.CategoryFromEntity(c, count))
	}
	return out, nil
}

// BulkAction aplica activate/deactivate/delete sobre un conjunto de IDs.
func (uc *CategoryUseCase) BulkAction(companyID string, in dto.BulkActionRequest) (*dto.BulkActionResponse, error) {
	if len(in.IDs) == 0 {
		return nil, domain.ErrInvalidInput
	}
	var err error
	switch in.Action {
	case "activate":
		err = uc.categories.SetActive(companyID, in.IDs, true)
	case "deactivate":
		err = uc.categories.SetActive(companyID, in.IDs, false)
	case "delete":
		err = uc.categories.SoftDeleteMany(companyID, in.IDs, time.Now())
	default:
		return nil, domain.ErrInvalidInput
	}
	if err != nil {
		return nil, err
	}
	return &dto.BulkActionResponse{Action: in.Action, Affected: len(in.IDs)}, nil
}

func (uc *CategoryUseCase) uniqueSlug(companyID, name string) (string, error) {
	return catalog.UniqueSlug(catalog.Slugify(name), func(slug string) (bool, error) {
		return uc.categories.SlugExists(companyID, slug)
	})
}
