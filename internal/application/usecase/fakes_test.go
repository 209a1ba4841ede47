package usecase_test

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/pos-catalogo/internal/domain"
	"github.com/tu-usuario/pos-catalogo/internal/domain/entity"
	"github.com/tu-usuario/pos-catalogo/internal/domain/repository"
)

// Fakes en memoria para los casos de uso del catálogo. Los tests de esta
// capa son secuenciales, así que no llevan mutex.

type fakeProductRepo struct {
	products   map[string]*entity.Product
	lastFilter repository.ProductFilter // último filtro recibido en List
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: make(map[string]*entity.Product)}
	for _, p := range products {
		cp := *p
		r.products[p.ID] = &cp
	}
	return r
}

func (r *fakeProductRepo) Create(p *entity.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	if p, ok := r.products[id]; ok && !p.IsDeleted {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeProductRepo) GetByCompanyAndSKU(companyID, sku string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.CompanyID == companyID && p.SKU == sku && !p.IsDeleted {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) FindByReference(companyID, ref string) (*entity.Product, error) {
	if p, _ := r.GetByCompanyAndSKU(companyID, ref); p != nil {
		return p, nil
	}
	lower := strings.ToLower(ref)
	for _, p := range r.products {
		if p.CompanyID == companyID && !p.IsDeleted && (p.EAN13 == ref || strings.ToLower(p.Name) == lower) {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) Update(p *entity.Product) error {
	if _, ok := r.products[p.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) SetCategories(productID string, categoryIDs []string) error {
	if p, ok := r.products[productID]; ok {
		p.CategoryIDs = append([]string(nil), categoryIDs...)
	}
	return nil
}

func (r *fakeProductRepo) List(f repository.ProductFilter) ([]*entity.Product, int, error) {
	r.lastFilter = f
	var out []*entity.Product
	for _, p := range r.products {
		if p.CompanyID != f.CompanyID {
			continue
		}
		if !f.IncludeDeleted && p.IsDeleted {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (r *fakeProductRepo) SoftDelete(id string, at time.Time) error {
	p, ok := r.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.IsDeleted = true
	p.DeletedAt = &at
	p.IsActive = false
	return nil
}

func (r *fakeProductRepo) SetActive(companyID string, ids []string, active bool) error {
	for _, id := range ids {
		if p, ok := r.products[id]; ok && p.CompanyID == companyID {
			p.IsActive = active
		}
	}
	return nil
}

func (r *fakeProductRepo) SoftDeleteMany(companyID string, ids []string, at time.Time) error {
	for _, id := range ids {
		if p, ok := r.products[id]; ok && p.CompanyID == companyID {
			p.IsDeleted = true
			p.DeletedAt = &at
			p.IsActive = false
		}
	}
	return nil
}

func (r *fakeProductRepo) ApplyStockDelta(productID string, delta int, allowNegative bool) (int, error) {
	p, ok := r.products[productID]
	if !ok {
		return 0, domain.ErrNotFound
	}
	if delta < 0 && !allowNegative && p.Stock+delta < 0 {
		return 0, domain.ErrInsufficientStock
	}
	p.Stock += delta
	return p.Stock, nil
}

func (r *fakeProductRepo) UpdateCost(productID string, cost decimal.Decimal) error {
	p, ok := r.products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	p.Cost = cost
	return nil
}

func (r *fakeProductRepo) ListWithoutEAN13(companyID string) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.products {
		if p.CompanyID == companyID && !p.IsDeleted && p.EAN13 == "" && p.ProductType == entity.ProductTypePhysical {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) ExistsEAN13(ean13 string) (bool, error) {
	for _, p := range r.products {
		if p.EAN13 == ean13 {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeProductRepo) UpdateEAN13(productID, ean13 string) error {
	p, ok := r.products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	p.EAN13 = ean13
	return nil
}

type fakeCategoryRepo struct {
	categories map[string]*entity.Category
	counts     map[string]int // productos por categoría, seteado por los tests
}

func newFakeCategoryRepo(categories ...*entity.Category) *fakeCategoryRepo {
	r := &fakeCategoryRepo{
		categories: make(map[string]*entity.Category),
		counts:     make(map[string]int),
	}
	for _, c := range categories {
		cp := *c
		r.categories[c.ID] = &cp
	}
	return r
}

func (r *fakeCategoryRepo) Create(c *entity.Category) error {
	cp := *c
	r.categories[c.ID] = &cp
	return nil
}

func (r *fakeCategoryRepo) GetByID(id string) (*entity.Category, error) {
	if c, ok := r.categories[id]; ok && !c.IsDeleted {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeCategoryRepo) GetByName(companyID, name string) (*entity.Category, error) {
	for _, c := range r.categories {
		if c.CompanyID == companyID && !c.IsDeleted && strings.EqualFold(c.Name, name) {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeCategoryRepo) Update(c *entity.Category) error {
	if _, ok := r.categories[c.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *c
	r.categories[c.ID] = &cp
	return nil
}

func (r *fakeCategoryRepo) List(f repository.CategoryFilter) ([]*entity.Category, int, error) {
	var out []*entity.Category
	for _, c := range r.categories {
		if c.CompanyID == f.CompanyID && (f.IncludeDeleted || !c.IsDeleted) {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, len(out), nil
}

func (r *fakeCategoryRepo) ListByIDs(companyID string, ids []string) ([]*entity.Category, error) {
	var out []*entity.Category
	for _, id := range ids {
		if c, ok := r.categories[id]; ok && c.CompanyID == companyID && !c.IsDeleted {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeCategoryRepo) SoftDelete(id string, at time.Time) error {
	c, ok := r.categories[id]
	if !ok {
		return domain.ErrNotFound
	}
	c.IsDeleted = true
	c.DeletedAt = &at
	return nil
}

func (r *fakeCategoryRepo) SetActive(companyID string, ids []string, active bool) error {
	for _, id := range ids {
		if c, ok := r.categories[id]; ok && c.CompanyID == companyID {
			c.IsActive = active
		}
	}
	return nil
}

func (r *fakeCategoryRepo) SoftDeleteMany(companyID string, ids []string, at time.Time) error {
	for _, id := range ids {
		_ = r.SoftDelete(id, at)
	}
	return nil
}

func (r *fakeCategoryRepo) SlugExists(companyID, slug string) (bool, error) {
	// Los slugs no se reciclan: los eliminados también cuentan.
	for _, c := range r.categories {
		if c.CompanyID == companyID && c.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeCategoryRepo) ProductCount(categoryID string) (int, error) {
	return r.counts[categoryID], nil
}

type fakeTaxClassRepo struct {
	classes      map[string]*entity.TaxClass
	defaultClass *entity.TaxClass
	flatRate     decimal.Decimal
}

func newFakeTaxClassRepo(classes ...*entity.TaxClass) *fakeTaxClassRepo {
	r := &fakeTaxClassRepo{classes: make(map[string]*entity.TaxClass)}
	for _, tc := range classes {
		cp := *tc
		r.classes[tc.ID] = &cp
	}
	return r
}

func (r *fakeTaxClassRepo) GetByID(id string) (*entity.TaxClass, error) {
	if tc, ok := r.classes[id]; ok {
		cp := *tc
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeTaxClassRepo) ListByCompany(companyID string) ([]*entity.TaxClass, error) {
	var out []*entity.TaxClass
	for _, tc := range r.classes {
		if tc.CompanyID == companyID {
			cp := *tc
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeTaxClassRepo) StoreDefaults(companyID string) (*entity.TaxClass, decimal.Decimal, error) {
	return r.defaultClass, r.flatRate, nil
}

type fakeWarehouseRepo struct {
	warehouses map[string]*entity.Warehouse
}

func newFakeWarehouseRepo(warehouses ...*entity.Warehouse) *fakeWarehouseRepo {
	r := &fakeWarehouseRepo{warehouses: make(map[string]*entity.Warehouse)}
	for _, w := range warehouses {
		cp := *w
		r.warehouses[w.ID] = &cp
	}
	return r
}

func (r *fakeWarehouseRepo) Create(w *entity.Warehouse) error {
	cp := *w
	r.warehouses[w.ID] = &cp
	return nil
}

func (r *fakeWarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	if w, ok := r.warehouses[id]; ok && !w.IsDeleted {
		cp := *w
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeWarehouseRepo) GetByCode(companyID, code string) (*entity.Warehouse, error) {
	for _, w := range r.warehouses {
		if w.CompanyID == companyID && w.Code == code && !w.IsDeleted {
			cp := *w
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeWarehouseRepo) Update(w *entity.Warehouse) error {
	if _, ok := r.warehouses[w.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *w
	r.warehouses[w.ID] = &cp
	return nil
}

func (r *fakeWarehouseRepo) ListByCompany(companyID string, includeInactive bool) ([]*entity.Warehouse, error) {
	var out []*entity.Warehouse
	for _, w := range r.warehouses {
		if w.CompanyID == companyID && !w.IsDeleted && (includeInactive || w.IsActive) {
			cp := *w
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeWarehouseRepo) SoftDelete(id string, at time.Time) error {
	w, ok := r.warehouses[id]
	if !ok {
		return domain.ErrNotFound
	}
	w.IsDeleted = true
	w.DeletedAt = &at
	return nil
}

func (r *fakeWarehouseRepo) SetDefault(companyID, warehouseID string) error {
	for _, w := range r.warehouses {
		if w.CompanyID == companyID {
			w.IsDefault = w.ID == warehouseID
		}
	}
	return nil
}

type fakeVariantRepo struct {
	variants map[string]*entity.ProductVariant
}

func newFakeVariantRepo(variants ...*entity.ProductVariant) *fakeVariantRepo {
	r := &fakeVariantRepo{variants: make(map[string]*entity.ProductVariant)}
	for _, v := range variants {
		cp := *v
		r.variants[v.ID] = &cp
	}
	return r
}

func (r *fakeVariantRepo) Create(v *entity.ProductVariant) error {
	cp := *v
	r.variants[v.ID] = &cp
	return nil
}

func (r *fakeVariantRepo) GetByID(id string) (*entity.ProductVariant, error) {
	if v, ok := r.variants[id]; ok && !v.IsDeleted {
		cp := *v
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeVariantRepo) GetBySKU(sku string) (*entity.ProductVariant, error) {
	for _, v := range r.variants {
		if v.SKU == sku && !v.IsDeleted {
			cp := *v
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeVariantRepo) GetByProductAndName(productID, name string) (*entity.ProductVariant, error) {
	for _, v := range r.variants {
		if v.ProductID == productID && strings.EqualFold(v.Name, name) && !v.IsDeleted {
			cp := *v
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeVariantRepo) Update(v *entity.ProductVariant) error {
	if _, ok := r.variants[v.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *v
	r.variants[v.ID] = &cp
	return nil
}

func (r *fakeVariantRepo) ListByProduct(productID string) ([]*entity.ProductVariant, error) {
	var out []*entity.ProductVariant
	for _, v := range r.variants {
		if v.ProductID == productID && !v.IsDeleted {
			cp := *v
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeVariantRepo) SoftDelete(id string, at time.Time) error {
	v, ok := r.variants[id]
	if !ok {
		return domain.ErrNotFound
	}
	v.IsDeleted = true
	v.DeletedAt = &at
	return nil
}

type fakeSettingsRepo struct {
	settings *entity.InventorySettings
}

func newFakeSettingsRepo(companyID string) *fakeSettingsRepo {
	return &fakeSettingsRepo{settings: entity.DefaultInventorySettings(companyID)}
}

func (r *fakeSettingsRepo) GetOrCreate(companyID string) (*entity.InventorySettings, error) {
	cp := *r.settings
	return &cp, nil
}

func (r *fakeSettingsRepo) Update(s *entity.InventorySettings) error {
	cp := *s
	r.settings = &cp
	return nil
}
