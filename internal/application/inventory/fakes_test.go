package inventory_test

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/pos-catalogo/internal/application/inventory"
	"github.com/tu-usuario/pos-catalogo/internal/domain"
	"github.com/tu-usuario/pos-catalogo/internal/domain/entity"
	"github.com/tu-usuario/pos-catalogo/internal/domain/repository"
)

// Fakes en memoria para ejercitar el workflow sin base de datos. El mutex en
// memProductRepo importa: los tests de concurrencia aplican deltas en paralelo.

type memProductRepo struct {
	mu       sync.Mutex
	products map[string]*entity.Product
}

func newMemProductRepo(products ...*entity.Product) *memProductRepo {
	r := &memProductRepo{products: make(map[string]*entity.Product)}
	for _, p := range products {
		cp := *p
		r.products[p.ID] = &cp
	}
	return r
}

func (r *memProductRepo) Create(p *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.products[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (r *memProductRepo) GetByCompanyAndSKU(companyID, sku string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		if p.CompanyID == companyID && p.SKU == sku && !p.IsDeleted {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memProductRepo) FindByReference(companyID, ref string) (*entity.Product, error) {
	if strings.TrimSpace(ref) == "" {
		return nil, nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	match := func(pred func(*entity.Product) bool) *entity.Product {
		for _, p := range r.products {
			if p.CompanyID == companyID && !p.IsDeleted && pred(p) {
				cp := *p
				return &cp
			}
		}
		return nil
	}
	lower := strings.ToLower(ref)
	if p := match(func(p *entity.Product) bool { return p.SKU == ref }); p != nil {
		return p, nil
	}
	if p := match(func(p *entity.Product) bool { return p.EAN13 != "" && p.EAN13 == ref }); p != nil {
		return p, nil
	}
	if p := match(func(p *entity.Product) bool { return strings.ToLower(p.Name) == lower }); p != nil {
		return p, nil
	}
	return match(func(p *entity.Product) bool { return strings.Contains(strings.ToLower(p.Name), lower) }), nil
}

func (r *memProductRepo) Update(p *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[p.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *memProductRepo) SetCategories(productID string, categoryIDs []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.products[productID]; ok {
		p.CategoryIDs = append([]string(nil), categoryIDs...)
	}
	return nil
}

func (r *memProductRepo) List(f repository.ProductFilter) ([]*entity.Product, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Product
	for _, p := range r.products {
		if p.CompanyID == f.CompanyID && (f.IncludeDeleted || !p.IsDeleted) {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, len(out), nil
}

func (r *memProductRepo) SoftDelete(id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.IsDeleted = true
	p.DeletedAt = &at
	p.IsActive = false
	return nil
}

func (r *memProductRepo) SetActive(companyID string, ids []string, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range ids {
		if p, ok := r.products[id]; ok && p.CompanyID == companyID {
			p.IsActive = active
		}
	}
	return nil
}

func (r *memProductRepo) SoftDeleteMany(companyID string, ids []string, at time.Time) error {
	for _, id := range ids {
		_ = r.SoftDelete(id, at)
	}
	return nil
}

func (r *memProductRepo) ApplyStockDelta(productID string, delta int, allowNegative bool) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[productID]
	if !ok || p.IsDeleted {
		return 0, domain.ErrNotFound
	}
	if delta < 0 && !allowNegative && p.Stock+delta < 0 {
		return 0, domain.ErrInsufficientStock
	}
	p.Stock += delta
	return p.Stock, nil
}

func (r *memProductRepo) UpdateCost(productID string, cost decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[productID]
	if !ok || p.IsDeleted {
		return domain.ErrNotFound
	}
	p.Cost = cost
	return nil
}

func (r *memProductRepo) ListWithoutEAN13(companyID string) ([]*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Product
	for _, p := range r.products {
		if p.CompanyID == companyID && !p.IsDeleted && p.EAN13 == "" && p.ProductType == entity.ProductTypePhysical {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memProductRepo) ExistsEAN13(ean13 string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		if p.EAN13 == ean13 {
			return true, nil
		}
	}
	return false, nil
}

func (r *memProductRepo) UpdateEAN13(productID, ean13 string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	p.EAN13 = ean13
	return nil
}

type memMovementRepo struct {
	mu        sync.Mutex
	movements []*entity.StockMovement
}

func (r *memMovementRepo) Create(m *entity.StockMovement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *m
	r.movements = append(r.movements, &cp)
	return nil
}

func (r *memMovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.movements {
		if m.ID == id {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memMovementRepo) ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.StockMovement
	for _, m := range r.movements {
		if m.ProductID == productID {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memMovementRepo) ListByWarehouse(warehouseID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.StockMovement
	for _, m := range r.movements {
		if m.WarehouseID == warehouseID {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memMovementRepo) all() []*entity.StockMovement {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*entity.StockMovement(nil), r.movements...)
}

type memSettingsRepo struct {
	mu       sync.Mutex
	settings *entity.InventorySettings
}

func newMemSettingsRepo(companyID string) *memSettingsRepo {
	return &memSettingsRepo{settings: entity.DefaultInventorySettings(companyID)}
}

func (r *memSettingsRepo) GetOrCreate(companyID string) (*entity.InventorySettings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *r.settings
	return &cp, nil
}

func (r *memSettingsRepo) Update(s *entity.InventorySettings) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *s
	r.settings = &cp
	return nil
}

type memAlertRepo struct {
	mu     sync.Mutex
	alerts map[string]*entity.StockAlert
}

func newMemAlertRepo() *memAlertRepo {
	return &memAlertRepo{alerts: make(map[string]*entity.StockAlert)}
}

func (r *memAlertRepo) Create(a *entity.StockAlert) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *a
	r.alerts[a.ID] = &cp
	return nil
}

func (r *memAlertRepo) GetByID(id string) (*entity.StockAlert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.alerts[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, nil
}

func (r *memAlertRepo) Update(a *entity.StockAlert) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.alerts[a.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *a
	r.alerts[a.ID] = &cp
	return nil
}

func (r *memAlertRepo) ListByStatus(companyID, status string, limit, offset int) ([]*entity.StockAlert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.StockAlert
	for _, a := range r.alerts {
		if a.CompanyID == companyID && (status == "" || a.Status == status) {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memAlertRepo) FindActive(productID string) (*entity.StockAlert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.alerts {
		if a.ProductID == productID && a.Status == entity.AlertStatusActive {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

type memWarehouseRepo struct {
	mu         sync.Mutex
	warehouses map[string]*entity.Warehouse
}

func newMemWarehouseRepo(warehouses ...*entity.Warehouse) *memWarehouseRepo {
	r := &memWarehouseRepo{warehouses: make(map[string]*entity.Warehouse)}
	for _, w := range warehouses {
		cp := *w
		r.warehouses[w.ID] = &cp
	}
	return r
}

func (r *memWarehouseRepo) Create(w *entity.Warehouse) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *w
	r.warehouses[w.ID] = &cp
	return nil
}

func (r *memWarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if w, ok := r.warehouses[id]; ok && !w.IsDeleted {
		cp := *w
		return &cp, nil
	}
	return nil, nil
}

func (r *memWarehouseRepo) GetByCode(companyID, code string) (*entity.Warehouse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, w := range r.warehouses {
		if w.CompanyID == companyID && w.Code == code && !w.IsDeleted {
			cp := *w
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memWarehouseRepo) Update(w *entity.Warehouse) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *w
	r.warehouses[w.ID] = &cp
	return nil
}

func (r *memWarehouseRepo) ListByCompany(companyID string, includeInactive bool) ([]*entity.Warehouse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Warehouse
	for _, w := range r.warehouses {
		if w.CompanyID == companyID && !w.IsDeleted && (includeInactive || w.IsActive) {
			cp := *w
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memWarehouseRepo) SoftDelete(id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.warehouses[id]
	if !ok {
		return domain.ErrNotFound
	}
	w.IsDeleted = true
	w.DeletedAt = &at
	return nil
}

func (r *memWarehouseRepo) SetDefault(companyID, warehouseID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, w := range r.warehouses {
		if w.CompanyID == companyID {
			w.IsDefault = w.ID == warehouseID
		}
	}
	return nil
}

type memLevelRepo struct {
	mu     sync.Mutex
	levels map[string]*entity.StockLevel // key productID|warehouseID
}

func newMemLevelRepo() *memLevelRepo {
	return &memLevelRepo{levels: make(map[string]*entity.StockLevel)}
}

func levelKey(productID, warehouseID string) string { return productID + "|" + warehouseID }

func (r *memLevelRepo) Get(productID, warehouseID string) (*entity.StockLevel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if l, ok := r.levels[levelKey(productID, warehouseID)]; ok {
		cp := *l
		return &cp, nil
	}
	return nil, nil
}

func (r *memLevelRepo) Upsert(l *entity.StockLevel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *l
	r.levels[levelKey(l.ProductID, l.WarehouseID)] = &cp
	return nil
}

func (r *memLevelRepo) ApplyDelta(companyID, productID, warehouseID string, delta int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := levelKey(productID, warehouseID)
	l, ok := r.levels[key]
	if !ok {
		l = &entity.StockLevel{CompanyID: companyID, ProductID: productID, WarehouseID: warehouseID}
		r.levels[key] = l
	}
	l.Quantity += delta
	return l.Quantity, nil
}

func (r *memLevelRepo) ListByProduct(productID string) ([]*entity.StockLevel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.StockLevel
	for _, l := range r.levels {
		if l.ProductID == productID {
			cp := *l
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memLevelRepo) ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.StockLevel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.StockLevel
	for _, l := range r.levels {
		if l.WarehouseID == warehouseID {
			cp := *l
			out = append(out, &cp)
		}
	}
	return out, nil
}

// memTxRunner no tiene transacciones reales: ejecuta fn contra los mismos
// fakes. El incremento atómico de memProductRepo preserva la semántica que
// los tests de concurrencia necesitan.
type memTxRunner struct {
	products  *memProductRepo
	movements *memMovementRepo
	levels    *memLevelRepo
}

func (t *memTxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
	levelRepo repository.StockLevelRepository,
) error) error {
	return fn(t.products, t.movements, t.levels)
}

var _ inventory.TxRunner = (*memTxRunner)(nil)
