package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/pos-catalogo/internal/application/dto"
	"github.com/tu-usuario/pos-catalogo/internal/domain"
	"github.com/tu-usuario/pos-catalogo/internal/domain/costing"
	"github.com/tu-usuario/pos-catalogo/internal/domain/entity"
	"github.com/tu-usuario/pos-catalogo/internal/domain/events"
	"github.com/tu-usuario/pos-catalogo/internal/domain/repository"
)

// AdjustStockUseCase aplica ajustes de stock con auditoría transaccional:
// el incremento atómico sobre products y el movimiento de auditoría se
// confirman o revierten juntos. Las señales se emiten después del commit.
type AdjustStockUseCase struct {
	txRunner   TxRunner
	products   repository.ProductRepository
	movements  repository.StockMovementRepository
	settings   repository.SettingsRepository
	warehouses repository.WarehouseRepository
	bus        *events.Bus
	log        zerolog.Logger
}

// NewAdjustStockUseCase construye el caso de uso.
func NewAdjustStockUseCase(
	txRunner TxRunner,
	products repository.ProductRepository,
	movements repository.StockMovementRepository,
	settings repository.SettingsRepository,
	warehouses repository.WarehouseRepository,
	bus *events.Bus,
	log zerolog.Logger,
) *AdjustStockUseCase {
	return &AdjustStockUseCase{
		txRunner:   txRunner,
		products:   products,
		movements:  movements,
		settings:   settings,
		warehouses: warehouses,
		bus:        bus,
		log:        log,
	}
}

// AdjustStock ajusta el stock de un producto resuelto por referencia libre.
// Delta positivo registra un movimiento "in", negativo un "adjustment";
// la cantidad del movimiento siempre es la magnitud (el signo vive en el
// par old/new del resultado y de la señal).
func (uc *AdjustStockUseCase) AdjustStock(ctx context.Context, companyID string, in dto.AdjustStockRequest) (*dto.AdjustStockResult, error) {
	if in.Delta == 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.UnitCost != nil && (in.Delta < 0 || in.UnitCost.IsNegative()) {
		return nil, domain.ErrInvalidInput
	}
	// Una referencia en blanco no resuelve a nada: sin este corte la búsqueda
	// por substring de nombre coincidiría con cualquier producto.
	if strings.TrimSpace(in.Reference) == "" {
		return nil, domain.ErrNotFound
	}
	product, err := uc.products.FindByReference(companyID, in.Reference)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if product.IsService() {
		return nil, domain.ErrInvalidInput
	}

	cfg, err := uc.settings.GetOrCreate(companyID)
	if err != nil {
		return nil, err
	}
	if in.Delta < 0 && !cfg.AllowNegativeStock && product.Stock+in.Delta < 0 {
		return nil, domain.ErrInsufficientStock
	}
	if in.WarehouseID != "" {
		warehouse, err := uc.warehouses.GetByID(in.WarehouseID)
		if err != nil {
			return nil, err
		}
		if warehouse == nil || warehouse.CompanyID != companyID {
			return nil, domain.ErrNotFound
		}
	}

	change := events.StockChange{
		Product:     product,
		OldQuantity: product.Stock,
		NewQuantity: product.Stock + in.Delta,
		Reason:      in.Reason,
		UserID:      in.UserID,
	}
	if err := uc.bus.PublishBeforeStockChange(change); err != nil {
		return nil, err
	}

	movementType := entity.MovementTypeAdjustment
	if in.Delta > 0 {
		movementType = entity.MovementTypeIn
	}
	quantity := in.Delta
	if quantity < 0 {
		quantity = -quantity
	}

	var (
		newStock int
		newCost  *decimal.Decimal
	)
	movement := &entity.StockMovement{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		ProductID:    product.ID,
		WarehouseID:  in.WarehouseID,
		MovementType: movementType,
		Quantity:     quantity,
		Reference:    in.Reason,
		CreatedBy:    in.UserID,
		CreatedAt:    time.Now(),
	}
	err = uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movementRepo repository.StockMovementRepository,
		levelRepo repository.StockLevelRepository,
	) error {
		var err error
		newStock, err = productRepo.ApplyStockDelta(product.ID, in.Delta, cfg.AllowNegativeStock)
		if err != nil {
			return err
		}
		if in.UnitCost != nil {
			// Entrada con costo: promedio ponderado sobre el stock previo.
			cost := costing.WeightedAverage(
				decimalFromInt(newStock-in.Delta),
				product.Cost,
				decimalFromInt(in.Delta),
				*in.UnitCost,
			)
			if err := productRepo.UpdateCost(product.ID, cost); err != nil {
				return err
			}
			newCost = &cost
		}
		if in.WarehouseID != "" {
			if _, err := levelRepo.ApplyDelta(companyID, product.ID, in.WarehouseID, in.Delta); err != nil {
				return err
			}
		}
		return movementRepo.Create(movement)
	})
	if err != nil {
		return nil, err
	}

	oldStock := newStock - in.Delta
	product.Stock = newStock
	if newCost != nil {
		product.Cost = *newCost
	}
	applied := events.StockChange{
		Product:     product,
		OldQuantity: oldStock,
		NewQuantity: newStock,
		Reason:      in.Reason,
		UserID:      in.UserID,
	}
	uc.bus.PublishAfterStockChange(applied)
	uc.bus.PublishStockChanged(events.StockChanged{
		ProductID:   product.ID,
		ProductName: product.Name,
		OldQuantity: oldStock,
		NewQuantity: newStock,
		Reason:      in.Reason,
		ReferenceID: movement.ID,
		Sender:      events.SenderInventory,
	})

	uc.log.Info().
		Str("product_id", product.ID).
		Str("sku", product.SKU).
		Int("delta", in.Delta).
		Int("old_stock", oldStock).
		Int("new_stock", newStock).
		Str("movement_id", movement.ID).
		Msg("ajuste de stock aplicado")

	return &dto.AdjustStockResult{
		ProductID:    product.ID,
		ProductName:  product.Name,
		SKU:          product.SKU,
		OldStock:     oldStock,
		NewStock:     newStock,
		Delta:        in.Delta,
		NewCost:      newCost,
		MovementID:   movement.ID,
		MovementType: movementType,
		LowStock:     product.IsLowStock(),
	}, nil
}

// BulkAdjustStock aplica un lote de ajustes independientes. Cada ítem corre
// en su propia transacción: un ítem que falla (referencia no encontrada o en
// blanco, delta cero, stock insuficiente) no detiene el resto y queda
// reportado en not_found.
func (uc *AdjustStockUseCase) BulkAdjustStock(ctx context.Context, companyID string, in dto.BulkAdjustStockRequest) (*dto.BulkAdjustStockResult, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	result := &dto.BulkAdjustStockResult{}
	for _, item := range in.Items {
		adjusted, err := uc.AdjustStock(ctx, companyID, dto.AdjustStockRequest{
			Reference: item.Reference,
			Delta:     item.Delta,
			Reason:    in.Reason,
			UserID:    in.UserID,
		})
		if err != nil {
			result.NotFound = append(result.NotFound, item.Reference)
			continue
		}
		result.Adjusted = append(result.Adjusted, *adjusted)
	}
	result.Summary = fmt.Sprintf("%d productos ajustados, %d no encontrados",
		len(result.Adjusted), len(result.NotFound))
	return result, nil
}

// MovementHistory historial de movimientos de un producto o bodega.
func (uc *AdjustStockUseCase) MovementHistory(in dto.MovementListRequest) ([]dto.MovementResponse, error) {
	in.DefaultPage(50)
	var (
		movements []*entity.StockMovement
		err       error
	)
	switch {
	case in.ProductID != "":
		movements, err = uc.movements.ListByProduct(in.ProductID, in.From, in.To, in.Limit, in.Offset)
	case in.WarehouseID != "":
		movements, err = uc.movements.ListByWarehouse(in.WarehouseID, in.From, in.To, in.Limit, in.Offset)
	default:
		return nil, domain.ErrInvalidInput
	}
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, dto.MovementResponse{
			ID:           m.ID,
			ProductID:    m.ProductID,
			WarehouseID:  m.WarehouseID,
			MovementType: m.MovementType,
			Quantity:     m.Quantity,
			Reference:    m.Reference,
			Notes:        m.Notes,
			CreatedBy:    m.CreatedBy,
			CreatedAt:    m.CreatedAt,
		})
	}
	return out, nil
}
