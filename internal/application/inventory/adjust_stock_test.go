package inventory_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/pos-catalogo/internal/application/dto"
	"github.com/tu-usuario/pos-catalogo/internal/application/inventory"
	"github.com/tu-usuario/pos-catalogo/internal/domain"
	"github.com/tu-usuario/pos-catalogo/internal/domain/entity"
	"github.com/tu-usuario/pos-catalogo/internal/domain/events"
)

const companyID = "co-1"

type adjustFixture struct {
	uc         *inventory.AdjustStockUseCase
	products   *memProductRepo
	movements  *memMovementRepo
	levels     *memLevelRepo
	settings   *memSettingsRepo
	warehouses *memWarehouseRepo
	bus        *events.Bus
}

func newAdjustFixture(products ...*entity.Product) *adjustFixture {
	productRepo := newMemProductRepo(products...)
	movementRepo := &memMovementRepo{}
	levelRepo := newMemLevelRepo()
	settingsRepo := newMemSettingsRepo(companyID)
	warehouseRepo := newMemWarehouseRepo()
	bus := events.NewBus()
	tx := &memTxRunner{products: productRepo, movements: movementRepo, levels: levelRepo}
	uc := inventory.NewAdjustStockUseCase(tx, productRepo, movementRepo, settingsRepo, warehouseRepo, bus, zerolog.Nop())
	return &adjustFixture{
		uc:         uc,
		products:   productRepo,
		movements:  movementRepo,
		levels:     levelRepo,
		settings:   settingsRepo,
		warehouses: warehouseRepo,
		bus:        bus,
	}
}

func physicalProduct(id, name, sku string, stock int) *entity.Product {
	return &entity.Product{
		ID:          id,
		CompanyID:   companyID,
		Name:        name,
		SKU:         sku,
		ProductType: entity.ProductTypePhysical,
		Stock:       stock,
		IsActive:    true,
	}
}

func TestAdjustStock_EntradaRegistraMovimientoIn(t *testing.T) {
	f := newAdjustFixture(physicalProduct("p-1", "Café molido", "CAF-0001", 10))

	res, err := f.uc.AdjustStock(context.Background(), companyID, dto.AdjustStockRequest{
		Reference: "CAF-0001",
		Delta:     5,
		Reason:    "compra proveedor",
		UserID:    "u-1",
	})
	require.NoError(t, err)

	assert.Equal(t, 10, res.OldStock)
	assert.Equal(t, 15, res.NewStock)
	assert.Equal(t, entity.MovementTypeIn, res.MovementType)

	movements := f.movements.all()
	require.Len(t, movements, 1)
	assert.Equal(t, entity.MovementTypeIn, movements[0].MovementType)
	assert.Equal(t, 5, movements[0].Quantity, "la cantidad es la magnitud")
	assert.Equal(t, "compra proveedor", movements[0].Reference, "el motivo viaja en Reference")
	assert.Equal(t, "u-1", movements[0].CreatedBy)
	assert.Equal(t, res.MovementID, movements[0].ID)

	p, _ := f.products.GetByID("p-1")
	assert.Equal(t, 15, p.Stock)
}

func TestAdjustStock_SalidaRegistraAdjustmentConMagnitud(t *testing.T) {
	f := newAdjustFixture(physicalProduct("p-1", "Café molido", "CAF-0001", 10))

	res, err := f.uc.AdjustStock(context.Background(), companyID, dto.AdjustStockRequest{
		Reference: "CAF-0001",
		Delta:     -4,
		Reason:    "merma",
	})
	require.NoError(t, err)

	assert.Equal(t, 6, res.NewStock)
	assert.Equal(t, entity.MovementTypeAdjustment, res.MovementType)

	movements := f.movements.all()
	require.Len(t, movements, 1)
	assert.Equal(t, 4, movements[0].Quantity, "magnitud sin signo aunque el delta sea negativo")
}

func TestAdjustStock_EntradaConCostoPromedia(t *testing.T) {
	p := physicalProduct("p-1", "Café molido", "CAF-0001", 10)
	p.Cost = decimal.RequireFromString("8.00")
	f := newAdjustFixture(p)

	unitCost := decimal.RequireFromString("14.00")
	res, err := f.uc.AdjustStock(context.Background(), companyID, dto.AdjustStockRequest{
		Reference: "CAF-0001",
		Delta:     5,
		UnitCost:  &unitCost,
		Reason:    "compra proveedor",
	})
	require.NoError(t, err)

	// (10*8 + 5*14) / 15 = 10.00
	require.NotNil(t, res.NewCost)
	assert.True(t, res.NewCost.Equal(decimal.RequireFromString("10")), "got %s", res.NewCost)

	stored, _ := f.products.GetByID("p-1")
	assert.True(t, stored.Cost.Equal(decimal.RequireFromString("10")))
}

func TestAdjustStock_CostoSoloEnEntradas(t *testing.T) {
	f := newAdjustFixture(physicalProduct("p-1", "Café", "CAF-0001", 10))

	cost := decimal.RequireFromString("14.00")
	_, err := f.uc.AdjustStock(context.Background(), companyID, dto.AdjustStockRequest{
		Reference: "CAF-0001",
		Delta:     -2,
		UnitCost:  &cost,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "una salida no lleva costo unitario")

	negative := decimal.RequireFromString("-1")
	_, err = f.uc.AdjustStock(context.Background(), companyID, dto.AdjustStockRequest{
		Reference: "CAF-0001",
		Delta:     5,
		UnitCost:  &negative,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Sin costo unitario el costo no se toca.
	res, err := f.uc.AdjustStock(context.Background(), companyID, dto.AdjustStockRequest{Reference: "CAF-0001", Delta: 5})
	require.NoError(t, err)
	assert.Nil(t, res.NewCost)
}

func TestAdjustStock_DeltaCeroEsInvalido(t *testing.T) {
	f := newAdjustFixture(physicalProduct("p-1", "Café", "CAF-0001", 10))
	_, err := f.uc.AdjustStock(context.Background(), companyID, dto.AdjustStockRequest{Reference: "CAF-0001", Delta: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAdjustStock_ReferenciaNoEncontrada(t *testing.T) {
	f := newAdjustFixture(physicalProduct("p-1", "Café", "CAF-0001", 10))
	_, err := f.uc.AdjustStock(context.Background(), companyID, dto.AdjustStockRequest{Reference: "NO-EXISTE", Delta: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAdjustStock_ReferenciaEnBlancoNoResuelve(t *testing.T) {
	f := newAdjustFixture(physicalProduct("p-1", "Café", "CAF-0001", 10))

	// Sin el corte, el fallback por substring de nombre coincidiría con
	// cualquier producto y el ajuste caería sobre uno arbitrario.
	for _, ref := range []string{"", "   "} {
		_, err := f.uc.AdjustStock(context.Background(), companyID, dto.AdjustStockRequest{Reference: ref, Delta: 5})
		assert.ErrorIs(t, err, domain.ErrNotFound, "referencia %q", ref)
	}

	p, _ := f.products.GetByID("p-1")
	assert.Equal(t, 10, p.Stock, "nada se mutó")
	assert.Empty(t, f.movements.all())
}

func TestAdjustStock_ServicioRechazado(t *testing.T) {
	svc := physicalProduct("p-1", "Envío a domicilio", "SRV-0001", 0)
	svc.ProductType = entity.ProductTypeService
	f := newAdjustFixture(svc)
	_, err := f.uc.AdjustStock(context.Background(), companyID, dto.AdjustStockRequest{Reference: "SRV-0001", Delta: 3})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "los servicios no manejan stock")
}

// Precedencia de resolución: SKU exacto > EAN exacto > nombre exacto > substring.
func TestAdjustStock_PrecedenciaDeReferencia(t *testing.T) {
	bySKU := physicalProduct("p-sku", "Producto A", "5901234123457", 10)
	byEAN := physicalProduct("p-ean", "Producto B", "OTRO-SKU", 10)
	byEAN.EAN13 = "5901234123457"
	f := newAdjustFixture(bySKU, byEAN)

	// La referencia coincide con el SKU de uno y el EAN del otro: gana el SKU.
	res, err := f.uc.AdjustStock(context.Background(), companyID, dto.AdjustStockRequest{Reference: "5901234123457", Delta: 1})
	require.NoError(t, err)
	assert.Equal(t, "p-sku", res.ProductID)

	// Nombre exacto (case-insensitive).
	res, err = f.uc.AdjustStock(context.Background(), companyID, dto.AdjustStockRequest{Reference: "producto b", Delta: 1})
	require.NoError(t, err)
	assert.Equal(t, "p-ean", res.ProductID)
}

func TestAdjustStock_StockInsuficienteSinNegativos(t *testing.T) {
	f := newAdjustFixture(physicalProduct("p-1", "Café", "CAF-0001", 3))

	_, err := f.uc.AdjustStock(context.Background(), companyID, dto.AdjustStockRequest{Reference: "CAF-0001", Delta: -5})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Nada quedó registrado: ni stock mutado ni movimiento.
	p, _ := f.products.GetByID("p-1")
	assert.Equal(t, 3, p.Stock)
	assert.Empty(t, f.movements.all())
}

func TestAdjustStock_NegativoPermitidoPorConfiguracion(t *testing.T) {
	f := newAdjustFixture(physicalProduct("p-1", "Café", "CAF-0001", 3))
	cfg, _ := f.settings.GetOrCreate(companyID)
	cfg.AllowNegativeStock = true
	require.NoError(t, f.settings.Update(cfg))

	res, err := f.uc.AdjustStock(context.Background(), companyID, dto.AdjustStockRequest{Reference: "CAF-0001", Delta: -5})
	require.NoError(t, err)
	assert.Equal(t, -2, res.NewStock)
}

func TestAdjustStock_HooksBeforeYAfter(t *testing.T) {
	f := newAdjustFixture(physicalProduct("p-1", "Café", "CAF-0001", 10))

	var calls []string
	f.bus.OnBeforeStockChange(func(ch events.StockChange) error {
		calls = append(calls, "before")
		assert.Equal(t, 10, ch.OldQuantity)
		assert.Equal(t, 15, ch.NewQuantity)
		return nil
	})
	f.bus.OnAfterStockChange(func(ch events.StockChange) {
		calls = append(calls, "after")
		assert.Equal(t, 15, ch.NewQuantity)
	})
	var signal events.StockChanged
	f.bus.OnStockChanged(func(sig events.StockChanged) {
		calls = append(calls, "signal")
		signal = sig
	})

	res, err := f.uc.AdjustStock(context.Background(), companyID, dto.AdjustStockRequest{Reference: "CAF-0001", Delta: 5, Reason: "conteo"})
	require.NoError(t, err)

	assert.Equal(t, []string{"before", "after", "signal"}, calls)
	assert.Equal(t, "p-1", signal.ProductID)
	assert.Equal(t, res.MovementID, signal.ReferenceID, "la señal referencia el movimiento")
	assert.Equal(t, events.SenderInventory, signal.Sender)
}

func TestAdjustStock_VetoDelHookAbortaSinMutar(t *testing.T) {
	f := newAdjustFixture(physicalProduct("p-1", "Café", "CAF-0001", 10))
	f.bus.OnBeforeStockChange(func(events.StockChange) error {
		return errors.New("producto congelado por inventario físico")
	})
	afterCalled := false
	f.bus.OnAfterStockChange(func(events.StockChange) { afterCalled = true })

	_, err := f.uc.AdjustStock(context.Background(), companyID, dto.AdjustStockRequest{Reference: "CAF-0001", Delta: 5})
	require.Error(t, err)

	p, _ := f.products.GetByID("p-1")
	assert.Equal(t, 10, p.Stock, "el veto aborta antes de tocar estado")
	assert.Empty(t, f.movements.all())
	assert.False(t, afterCalled)
}

func TestAdjustStock_ConBodegaActualizaNivel(t *testing.T) {
	f := newAdjustFixture(physicalProduct("p-1", "Café", "CAF-0001", 10))
	require.NoError(t, f.warehouses.Create(&entity.Warehouse{ID: "wh-1", CompanyID: companyID, Name: "Central", Code: "WH-01", IsActive: true}))

	_, err := f.uc.AdjustStock(context.Background(), companyID, dto.AdjustStockRequest{
		Reference:   "CAF-0001",
		Delta:       5,
		WarehouseID: "wh-1",
	})
	require.NoError(t, err)

	level, err := f.levels.Get("p-1", "wh-1")
	require.NoError(t, err)
	require.NotNil(t, level)
	assert.Equal(t, 5, level.Quantity, "el nivel por bodega acompaña el ajuste")

	movements := f.movements.all()
	require.Len(t, movements, 1)
	assert.Equal(t, "wh-1", movements[0].WarehouseID)
}

func TestAdjustStock_BodegaDeOtraEmpresaNoEncontrada(t *testing.T) {
	f := newAdjustFixture(physicalProduct("p-1", "Café", "CAF-0001", 10))
	require.NoError(t, f.warehouses.Create(&entity.Warehouse{ID: "wh-ajeno", CompanyID: "otra-empresa", Code: "WH-09", IsActive: true}))

	_, err := f.uc.AdjustStock(context.Background(), companyID, dto.AdjustStockRequest{
		Reference:   "CAF-0001",
		Delta:       5,
		WarehouseID: "wh-ajeno",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAdjustStock_ConcurrenciaAplicaAmbosDeltas(t *testing.T) {
	f := newAdjustFixture(physicalProduct("p-1", "Café", "CAF-0001", 100))

	var wg sync.WaitGroup
	errs := make([]error, 2)
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, errs[0] = f.uc.AdjustStock(context.Background(), companyID, dto.AdjustStockRequest{Reference: "CAF-0001", Delta: 5})
	}()
	go func() {
		defer wg.Done()
		_, errs[1] = f.uc.AdjustStock(context.Background(), companyID, dto.AdjustStockRequest{Reference: "CAF-0001", Delta: -3})
	}()
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])

	p, _ := f.products.GetByID("p-1")
	assert.Equal(t, 102, p.Stock, "ambos deltas aplicados sin pisarse")
	assert.Len(t, f.movements.all(), 2, "cada ajuste deja su fila de auditoría")
}

func TestBulkAdjustStock_FalloParcial(t *testing.T) {
	f := newAdjustFixture(
		physicalProduct("p-1", "Café", "CAF-0001", 10),
		physicalProduct("p-2", "Azúcar", "AZU-0001", 20),
	)

	res, err := f.uc.BulkAdjustStock(context.Background(), companyID, dto.BulkAdjustStockRequest{
		Items: []dto.BulkAdjustItem{
			{Reference: "CAF-0001", Delta: 5},
			{Reference: "FANTASMA", Delta: 1},
			{Reference: "AZU-0001", Delta: -2},
		},
		Reason: "conteo mensual",
	})
	require.NoError(t, err)

	assert.Len(t, res.Adjusted, 2)
	assert.Equal(t, []string{"FANTASMA"}, res.NotFound, "el no encontrado no detiene el lote")
	assert.Equal(t, "2 productos ajustados, 1 no encontrados", res.Summary)

	caf, _ := f.products.GetByID("p-1")
	azu, _ := f.products.GetByID("p-2")
	assert.Equal(t, 15, caf.Stock)
	assert.Equal(t, 18, azu.Stock)
}

func TestBulkAdjustStock_ItemInvalidoNoDetieneElLote(t *testing.T) {
	f := newAdjustFixture(
		physicalProduct("p-1", "Café", "CAF-0001", 10),
		physicalProduct("p-2", "Azúcar", "AZU-0001", 20),
	)

	// Delta cero y referencia en blanco fallan por ítem; los demás siguen.
	res, err := f.uc.BulkAdjustStock(context.Background(), companyID, dto.BulkAdjustStockRequest{
		Items: []dto.BulkAdjustItem{
			{Reference: "CAF-0001", Delta: 5},
			{Reference: "AZU-0001", Delta: 0},
			{Reference: "", Delta: 3},
			{Reference: "AZU-0001", Delta: -2},
		},
	})
	require.NoError(t, err)

	assert.Len(t, res.Adjusted, 2)
	assert.Equal(t, []string{"AZU-0001", ""}, res.NotFound)
	assert.Equal(t, "2 productos ajustados, 2 no encontrados", res.Summary)

	caf, _ := f.products.GetByID("p-1")
	azu, _ := f.products.GetByID("p-2")
	assert.Equal(t, 15, caf.Stock)
	assert.Equal(t, 18, azu.Stock, "el ajuste posterior al ítem inválido sí se aplica")
}

func TestBulkAdjustStock_LoteVacioEsInvalido(t *testing.T) {
	f := newAdjustFixture()
	_, err := f.uc.BulkAdjustStock(context.Background(), companyID, dto.BulkAdjustStockRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMovementHistory_PorProducto(t *testing.T) {
	f := newAdjustFixture(physicalProduct("p-1", "Café", "CAF-0001", 10))
	_, err := f.uc.AdjustStock(context.Background(), companyID, dto.AdjustStockRequest{Reference: "CAF-0001", Delta: 5, Reason: "compra"})
	require.NoError(t, err)
	_, err = f.uc.AdjustStock(context.Background(), companyID, dto.AdjustStockRequest{Reference: "CAF-0001", Delta: -2, Reason: "merma"})
	require.NoError(t, err)

	history, err := f.uc.MovementHistory(dto.MovementListRequest{ProductID: "p-1"})
	require.NoError(t, err)
	require.Len(t, history, 2)

	// Sin producto ni bodega no hay qué listar.
	_, err = f.uc.MovementHistory(dto.MovementListRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
