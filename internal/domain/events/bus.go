// Package events implementa el bus de eventos tipado del módulo: señales
// broadcast (fire-and-forget, varios suscriptores independientes) y hooks
// síncronos (el before puede vetar). Registro explícito al arranque, sin
// reflexión ni despacho dinámico.
package events

import (
	"sync"

	"github.com/tu-usuario/pos-catalogo/internal/domain/entity"
	"github.com/tu-usuario/pos-catalogo/internal/domain/repository"
)

// Remitentes conocidos, para que los suscriptores distingan el origen del cambio.
const (
	SenderInventory = "inventory"
	SenderSales     = "sales"
	SenderImport    = "import"
	SenderAssistant = "assistant"
)

// StockChange es el contexto que reciben los hooks before/after de un cambio de stock.
type StockChange struct {
	Product     *entity.Product
	OldQuantity int
	NewQuantity int
	Reason      string
	UserID      string
}

// StockChanged es la señal emitida tras aplicar un cambio de stock
// (desde este módulo o desde cualquier otro que la emita, ej. ventas).
type StockChanged struct {
	ProductID   string
	ProductName string
	OldQuantity int
	NewQuantity int
	Reason      string
	ReferenceID string
	Sender      string
}

// LowStockAlert es la señal emitida cuando un producto cae a o por debajo de su mínimo.
type LowStockAlert struct {
	Product      *entity.Product
	CurrentStock int
	MinimumStock int
	Sender       string
}

// ProductEvent acompaña las señales product_created/updated/deleted.
type ProductEvent struct {
	Product *entity.Product
	Sender  string
}

// BeforeStockChangeHook puede vetar el cambio devolviendo un error;
// el workflow aborta sin mutar estado.
type BeforeStockChangeHook func(StockChange) error

// AfterStockChangeHook es solo observador.
type AfterStockChangeHook func(StockChange)

// ProductDataFilter transforma los datos de un producto antes de persistir.
// data es el producto a guardar (mutable); existing es nil en creaciones.
type ProductDataFilter func(data *entity.Product, existing *entity.Product, userID string) error

// ProductListFilter ajusta el filtro de un listado de productos antes de
// ejecutar la consulta (ej. restringir por permisos del usuario). Un error
// rechaza el listado.
type ProductListFilter func(filter *repository.ProductFilter, userID string) error

// Bus mantiene las listas de suscriptores. Seguro para uso concurrente;
// la publicación es síncrona y en orden de registro.
type Bus struct {
	mu sync.RWMutex

	beforeStockChange []BeforeStockChangeHook
	afterStockChange  []AfterStockChangeHook
	productDataFilter []ProductDataFilter
	productListFilter []ProductListFilter

	stockChanged   []func(StockChanged)
	lowStockAlert  []func(LowStockAlert)
	productCreated []func(ProductEvent)
	productUpdated []func(ProductEvent)
	productDeleted []func(ProductEvent)
}

// NewBus construye un bus vacío.
func NewBus() *Bus {
	return &Bus{}
}

// ── Registro ──────────────────────────────────────────────────────────────────

func (b *Bus) OnBeforeStockChange(fn BeforeStockChangeHook) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.beforeStockChange = append(b.beforeStockChange, fn)
}

func (b *Bus) OnAfterStockChange(fn AfterStockChangeHook) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.afterStockChange = append(b.afterStockChange, fn)
}

func (b *Bus) OnProductData(fn ProductDataFilter) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.productDataFilter = append(b.productDataFilter, fn)
}

func (b *Bus) OnProductList(fn ProductListFilter) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.productListFilter = append(b.productListFilter, fn)
}

func (b *Bus) OnStockChanged(fn func(StockChanged)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stockChanged = append(b.stockChanged, fn)
}

func (b *Bus) OnLowStockAlert(fn func(LowStockAlert)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lowStockAlert = append(b.lowStockAlert, fn)
}

func (b *Bus) OnProductCreated(fn func(ProductEvent)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.productCreated = append(b.productCreated, fn)
}

func (b *Bus) OnProductUpdated(fn func(ProductEvent)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.productUpdated = append(b.productUpdated, fn)
}

func (b *Bus) OnProductDeleted(fn func(ProductEvent)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.productDeleted = append(b.productDeleted, fn)
}

// ── Publicación ───────────────────────────────────────────────────────────────

// PublishBeforeStockChange ejecuta los hooks en orden; el primer error veta
// el cambio y se propaga al caller.
func (b *Bus) PublishBeforeStockChange(ev StockChange) error {
	b.mu.RLock()
	hooks := b.beforeStockChange
	b.mu.RUnlock()
	for _, fn := range hooks {
		if err := fn(ev); err != nil {
			return err
		}
	}
	return nil
}

func (b *Bus) PublishAfterStockChange(ev StockChange) {
	b.mu.RLock()
	hooks := b.afterStockChange
	b.mu.RUnlock()
	for _, fn := range hooks {
		fn(ev)
	}
}

// ApplyProductDataFilters pasa el producto por los filtros registrados antes
// de persistir; un error rechaza la operación completa.
func (b *Bus) ApplyProductDataFilters(data, existing *entity.Product, userID string) error {
	b.mu.RLock()
	filters := b.productDataFilter
	b.mu.RUnlock()
	for _, fn := range filters {
		if err := fn(data, existing, userID); err != nil {
			return err
		}
	}
	return nil
}

// ApplyProductListFilters pasa el filtro de listado por los suscriptores en
// orden de registro antes de consultar.
func (b *Bus) ApplyProductListFilters(filter *repository.ProductFilter, userID string) error {
	b.mu.RLock()
	filters := b.productListFilter
	b.mu.RUnlock()
	for _, fn := range filters {
		if err := fn(filter, userID); err != nil {
			return err
		}
	}
	return nil
}

func (b *Bus) PublishStockChanged(ev StockChanged) {
	b.mu.RLock()
	subs := b.stockChanged
	b.mu.RUnlock()
	for _, fn := range subs {
		fn(ev)
	}
}

func (b *Bus) PublishLowStockAlert(ev LowStockAlert) {
	b.mu.RLock()
	subs := b.lowStockAlert
	b.mu.RUnlock()
	for _, fn := range subs {
		fn(ev)
	}
}

func (b *Bus) PublishProductCreated(ev ProductEvent) {
	b.mu.RLock()
	subs := b.productCreated
	b.mu.RUnlock()
	for _, fn := range subs {
		fn(ev)
	}
}

func (b *Bus) PublishProductUpdated(ev ProductEvent) {
	b.mu.RLock()
	subs := b.productUpdated
	b.mu.RUnlock()
	for _, fn := range subs {
		fn(ev)
	}
}

func (b *Bus) PublishProductDeleted(ev ProductEvent) {
	b.mu.RLock()
	subs := b.productDeleted
	b.mu.RUnlock()
	for _, fn := range subs {
		fn(ev)
	}
}
