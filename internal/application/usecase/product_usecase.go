package usecase

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/pos-catalogo/internal/application/dto"
	"github.com/tu-usuario/pos-catalogo/internal/domain"
	"github.com/tu-usuario/pos-catalogo/internal/domain/catalog"
	"github.com/tu-usuario/pos-catalogo/internal/domain/entity"
	"github.com/tu-usuario/pos-catalogo/internal/domain/events"
	"github.com/tu-usuario/pos-catalogo/internal/domain/repository"
	"github.com/tu-usuario/pos-catalogo/pkg/config"
)

// maxSKUAttempts intentos de autogeneración antes de rendirse.
const maxSKUAttempts = 100

// ProductUseCase casos de uso CRUD del catálogo de productos. El stock no se
// modifica por aquí: todo cambio pasa por el ajuste con auditoría.
type ProductUseCase struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	taxClasses repository.TaxClassRepository
	settings   repository.SettingsRepository
	bus        *events.Bus
	cfg        config.InventoryConfig
	rng        *rand.Rand
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	products repository.ProductRepository,
	categories repository.CategoryRepository,
	taxClasses repository.TaxClassRepository,
	settings repository.SettingsRepository,
	bus *events.Bus,
	cfg config.InventoryConfig,
	rng *rand.Rand,
) *ProductUseCase {
	return &ProductUseCase{
		products:   products,
		categories: categories,
		taxClasses: taxClasses,
		settings:   settings,
		bus:        bus,
		cfg:        cfg,
		rng:        rng,
	}
}

// Create crea un producto. El nombre se normaliza con capitalización simple,
// el SKU vacío se autogenera si la empresa lo tiene habilitado y el EAN-13,
// si viene, debe tener dígito de control válido y ser único.
func (uc *ProductUseCase) Create(companyID, userID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := catalog.Capitalize(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}

	sku := strings.TrimSpace(in.SKU)
	if sku == "" {
		cfg, err := uc.settings.GetOrCreate(companyID)
		if err != nil {
			return nil, err
		}
		if !cfg.AutoGenerateSKU {
			return nil, domain.ErrInvalidInput
		}
		sku, err = uc.generateSKU(companyID, name)
		if err != nil {
			return nil, err
		}
	} else {
		existing, err := uc.products.GetByCompanyAndSKU(companyID, sku)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
	}

	if in.EAN13 != "" {
		if !catalog.ValidEAN13(in.EAN13) {
			return nil, domain.ErrInvalidInput
		}
		taken, err := uc.products.ExistsEAN13(in.EAN13)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, domain.ErrDuplicate
		}
	}

	productType := in.ProductType
	if productType == "" {
		productType = entity.ProductTypePhysical
	}
	threshold := uc.cfg.DefaultLowStockThreshold
	if in.LowStockThreshold != nil {
		threshold = *in.LowStockThreshold
	}
	if threshold < 0 || in.Stock < 0 || in.Price.IsNegative() || in.Cost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	product := &entity.Product{
		ID:                uuid.New().String(),
		CompanyID:         companyID,
		SKU:               sku,
		EAN13:             in.EAN13,
		Name:              name,
		Description:       in.Description,
		ProductType:       productType,
		Price:             in.Price,
		Cost:              in.Cost,
		Stock:             in.Stock,
		LowStockThreshold: threshold,
		CategoryIDs:       in.CategoryIDs,
		TaxClassID:        in.TaxClassID,
		ImagePath:         in.ImagePath,
		IsActive:          true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if product.IsService() {
		product.Stock = 0
		product.LowStockThreshold = 0
	}

	if err := uc.bus.ApplyProductDataFilters(product, nil, userID); err != nil {
		return nil, err
	}
	if err := uc.products.Create(product); err != nil {
		return nil, err
	}
	if len(product.CategoryIDs) > 0 {
		if err := uc.products.SetCategories(product.ID, product.CategoryIDs); err != nil {
			return nil, err
		}
	}
	uc.bus.PublishProductCreated(events.ProductEvent{Product: product, Sender: events.SenderInventory})

	return uc.toResponse(product)
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.products.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return uc.toResponse(product)
}

// GetByReference resuelve SKU exacto, EAN-13, nombre exacto o substring.
func (uc *ProductUseCase) GetByReference(companyID, ref string) (*dto.ProductResponse, error) {
	product, err := uc.products.FindByReference(companyID, ref)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return uc.toResponse(product)
}

// Update actualiza un producto. Stock y Cost histórico no se tocan por aquí.
func (uc *ProductUseCase) Update(id, userID string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.products.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	before := *product

	if in.SKU != nil && *in.SKU != product.SKU {
		sku := strings.TrimSpace(*in.SKU)
		if sku == "" {
			return nil, domain.ErrInvalidInput
		}
		other, err := uc.products.GetByCompanyAndSKU(product.CompanyID, sku)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != product.ID {
			return nil, domain.ErrDuplicate
		}
		product.SKU = sku
	}
	if in.EAN13 != nil && *in.EAN13 != product.EAN13 {
		if *in.EAN13 != "" {
			if !catalog.ValidEAN13(*in.EAN13) {
				return nil, domain.ErrInvalidInput
			}
			taken, err := uc.products.ExistsEAN13(*in.EAN13)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, domain.ErrDuplicate
			}
		}
		product.EAN13 = *in.EAN13
	}
	if in.Name != nil {
		name := catalog.Capitalize(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		product.Name = name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.Price = *in.Price
	}
	if in.Cost != nil {
		if in.Cost.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.Cost = *in.Cost
	}
	if in.LowStockThreshold != nil {
		if *in.LowStockThreshold < 0 {
			return nil, domain.ErrInvalidInput
		}
		product.LowStockThreshold = *in.LowStockThreshold
	}
	if in.TaxClassID != nil {
		product.TaxClassID = *in.TaxClassID
	}
	if in.ImagePath != nil {
		product.ImagePath = *in.ImagePath
	}
	if in.IsActive != nil {
		product.IsActive = *in.IsActive
	}
	if in.CategoryIDs != nil {
		product.CategoryIDs = in.CategoryIDs
	}
	product.UpdatedAt = time.Now()

	if err := uc.bus.ApplyProductDataFilters(product, &before, userID); err != nil {
		return nil, err
	}
	if err := uc.products.Update(product); err != nil {
		return nil, err
	}
	if in.CategoryIDs != nil {
		if err := uc.products.SetCategories(product.ID, product.CategoryIDs); err != nil {
			return nil, err
		}
	}
	uc.bus.PublishProductUpdated(events.ProductEvent{Product: product, Sender: events.SenderInventory})

	return uc.toResponse(product)
}

// Delete elimina un producto (soft delete). El historial de movimientos se
// conserva intacto.
func (uc *ProductUseCase) Delete(id string) error {
	product, err := uc.products.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	if err := uc.products.SoftDelete(id, time.Now()); err != nil {
		return err
	}
	uc.bus.PublishProductDeleted(events.ProductEvent{Product: product, Sender: events.SenderInventory})
	return nil
}

// ToggleActive invierte el estado activo del producto.
func (uc *ProductUseCase) ToggleActive(id string) (*dto.ProductResponse, error) {
	product, err := uc.products.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	product.IsActive = !product.IsActive
	product.UpdatedAt = time.Now()
	if err := uc.products.Update(product); err != nil {
		return nil, err
	}
	uc.bus.PublishProductUpdated(events.ProductEvent{Product: product, Sender: events.SenderInventory})
	return uc.toResponse(product)
}

// List lista productos con búsqueda, filtro por categoría y estado. El
// filtro pasa por los suscriptores de OnProductList antes de la consulta.
func (uc *ProductUseCase) List(companyID, userID string, in dto.ProductListRequest) (*dto.ProductListResponse, error) {
	in.DefaultPage(uc.cfg.ItemsPerPage)
	filter := repository.ProductFilter{
		CompanyID:  companyID,
		Search:     strings.TrimSpace(in.Search),
		CategoryID: in.CategoryID,
		Status:     in.Status,
		SortField:  in.SortField,
		SortDesc:   in.SortDesc,
		Limit:      in.Limit,
		Offset:     in.Offset,
	}
	if err := uc.bus.ApplyProductListFilters(&filter, userID); err != nil {
		return nil, err
	}
	items, total, err := uc.products.List(filter)
	if err != nil {
		return nil, err
	}
	out := &dto.ProductListResponse{
		Items: make([]dto.ProductResponse, 0, len(items)),
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}
	for _, p := range items {
		resp, err := uc.toResponse(p)
		if err != nil {
			return nil, err
		}
		out.Items = append(out.Items, *resp)
	}
	return out, nil
}

// BulkAction aplica activate/deactivate/delete sobre un conjunto de IDs.
func (uc *ProductUseCase) BulkAction(companyID string, in dto.BulkActionRequest) (*dto.BulkActionResponse, error) {
	if len(in.IDs) == 0 {
		return nil, domain.ErrInvalidInput
	}
	var err error
	switch in.Action {
	case "activate":
		err = uc.products.SetActive(companyID, in.IDs, true)
	case "deactivate":
		err = uc.products.SetActive(companyID, in.IDs, false)
	case "delete":
		err = uc.products.SoftDeleteMany(companyID, in.IDs, time.Now())
	default:
		return nil, domain.ErrInvalidInput
	}
	if err != nil {
		return nil, err
	}
	return &dto.BulkActionResponse{Action: in.Action, Affected: len(in.IDs)}, nil
}

// generateSKU construye un SKU a partir del prefijo del nombre más un sufijo
// numérico aleatorio, con reintentos acotados contra duplicados.
func (uc *ProductUseCase) generateSKU(companyID, name string) (string, error) {
	prefix := skuPrefix(name)
	for i := 0; i < maxSKUAttempts; i++ {
		candidate := fmt.Sprintf("%s-%04d", prefix, uc.rng.Intn(10000))
		existing, err := uc.products.GetByCompanyAndSKU(companyID, candidate)
		if err != nil {
			return "", err
		}
		if existing == nil {
			return candidate, nil
		}
	}
	return "", domain.ErrConflict
}

// skuPrefix toma las primeras tres letras del slug del nombre, "PRD" si no
// alcanzan.
func skuPrefix(name string) string {
	slug := strings.ReplaceAll(catalog.Slugify(name), "-", "")
	if len(slug) < 3 {
		return "PRD"
	}
	return strings.ToUpper(slug[:3])
}

// toResponse resuelve la tasa efectiva de impuesto y arma el DTO de salida.
func (uc *ProductUseCase) toResponse(p *entity.Product) (*dto.ProductResponse, error) {
	rate, err := uc.effectiveTaxRate(p)
	if err != nil {
		return nil, err
	}
	resp := dto.ProductFromEntity(p, rate)
	return &resp, nil
}

// effectiveTaxRate aplica la precedencia override -> categoría -> default de
// tienda -> tasa plana.
func (uc *ProductUseCase) effectiveTaxRate(p *entity.Product) (decimal.Decimal, error) {
	var cats []*entity.Category
	if len(p.CategoryIDs) > 0 {
		var err error
		cats, err = uc.categories.ListByIDs(p.CompanyID, p.CategoryIDs)
		if err != nil {
			return decimal.Zero, err
		}
	}
	defaultClass, flatRate, err := uc.taxClasses.StoreDefaults(p.CompanyID)
	if err != nil {
		return decimal.Zero, err
	}
	lookup := func(id string) *entity.TaxClass {
		tc, err := uc.taxClasses.GetByID(id)
		if err != nil {
			return nil
		}
		return tc
	}
	defaults := catalog.StoreTaxDefaults{DefaultTaxClass: defaultClass, FlatRate: flatRate}
	return catalog.EffectiveTaxRate(p, cats, lookup, defaults), nil
}
