package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tu-usuario/pos-catalogo/internal/application/dto"
	"github.com/tu-usuario/pos-catalogo/internal/domain"
	"github.com/tu-usuario/pos-catalogo/internal/domain/entity"
	"github.com/tu-usuario/pos-catalogo/internal/domain/events"
	"github.com/tu-usuario/pos-catalogo/internal/domain/repository"
)

// LowStockEvaluator escucha stock_changed y decide si el producto cruzó su
// umbral. Es stateless: evalúa contra el estado actual en cada señal, así
// reacciona igual a cambios hechos por este módulo o por cualquier otro
// emisor (ej. ventas). Umbral 0 desactiva la alerta para ese producto.
type LowStockEvaluator struct {
	products repository.ProductRepository
	settings repository.SettingsRepository
	alerts   repository.StockAlertRepository
	bus      *events.Bus
	log      zerolog.Logger
}

// NewLowStockEvaluator construye el evaluador y lo suscribe al bus.
func NewLowStockEvaluator(
	products repository.ProductRepository,
	settings repository.SettingsRepository,
	alerts repository.StockAlertRepository,
	bus *events.Bus,
	log zerolog.Logger,
) *LowStockEvaluator {
	ev := &LowStockEvaluator{
		products: products,
		settings: settings,
		alerts:   alerts,
		bus:      bus,
		log:      log,
	}
	bus.OnStockChanged(ev.handleStockChanged)
	return ev
}

func (ev *LowStockEvaluator) handleStockChanged(sig events.StockChanged) {
	product, err := ev.products.GetByID(sig.ProductID)
	if err != nil || product == nil {
		return
	}
	cfg, err := ev.settings.GetOrCreate(product.CompanyID)
	if err != nil {
		ev.log.Error().Err(err).Str("product_id", product.ID).Msg("no se pudo leer la configuración de alertas")
		return
	}
	if !cfg.LowStockAlertEnabled {
		return
	}

	low := product.LowStockThreshold > 0 && sig.NewQuantity <= product.LowStockThreshold
	active, err := ev.alerts.FindActive(product.ID)
	if err != nil {
		ev.log.Error().Err(err).Str("product_id", product.ID).Msg("no se pudo consultar alertas activas")
		return
	}

	if !low {
		// Recuperado: la alerta activa se resuelve sola.
		if active != nil {
			now := time.Now()
			active.Status = entity.AlertStatusResolved
			active.ResolvedAt = &now
			active.UpdatedAt = now
			if err := ev.alerts.Update(active); err != nil {
				ev.log.Error().Err(err).Str("alert_id", active.ID).Msg("no se pudo resolver la alerta")
			}
		}
		return
	}

	if active != nil {
		// Ya hay alerta activa: se refresca el snapshot de stock. La señal
		// se emite igual, cada caída que califica la reciben los suscriptores.
		active.CurrentStock = sig.NewQuantity
		active.Threshold = product.LowStockThreshold
		active.UpdatedAt = time.Now()
		if err := ev.alerts.Update(active); err != nil {
			ev.log.Error().Err(err).Str("alert_id", active.ID).Msg("no se pudo actualizar la alerta")
		}
	} else {
		now := time.Now()
		alert := &entity.StockAlert{
			ID:           uuid.New().String(),
			CompanyID:    product.CompanyID,
			ProductID:    product.ID,
			CurrentStock: sig.NewQuantity,
			Threshold:    product.LowStockThreshold,
			Status:       entity.AlertStatusActive,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := ev.alerts.Create(alert); err != nil {
			ev.log.Error().Err(err).Str("product_id", product.ID).Msg("no se pudo crear la alerta")
			return
		}
	}
	ev.bus.PublishLowStockAlert(events.LowStockAlert{
		Product:      product,
		CurrentStock: sig.NewQuantity,
		MinimumStock: product.LowStockThreshold,
		Sender:       sig.Sender,
	})
	ev.log.Warn().
		Str("product_id", product.ID).
		Str("sku", product.SKU).
		Int("stock", sig.NewQuantity).
		Int("threshold", product.LowStockThreshold).
		Msg("stock bajo")
}

// StockAlertUseCase gestión del ciclo de vida de las alertas.
type StockAlertUseCase struct {
	alerts   repository.StockAlertRepository
	products repository.ProductRepository
}

// NewStockAlertUseCase construye el caso de uso.
func NewStockAlertUseCase(alerts repository.StockAlertRepository, products repository.ProductRepository) *StockAlertUseCase {
	return &StockAlertUseCase{alerts: alerts, products: products}
}

// List lista alertas por estado ("" trae todas).
func (uc *StockAlertUseCase) List(companyID, status string, limit, offset int) ([]dto.AlertResponse, error) {
	if limit <= 0 {
		limit = 50
	}
	alerts, err := uc.alerts.ListByStatus(companyID, status, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AlertResponse, 0, len(alerts))
	for _, a := range alerts {
		name := ""
		if p, err := uc.products.GetByID(a.ProductID); err == nil && p != nil {
			name = p.Name
		}
		out = append(out, toAlertResponse(a, name))
	}
	return out, nil
}

// Acknowledge marca una alerta activa como vista.
func (uc *StockAlertUseCase) Acknowledge(id string) (*dto.AlertResponse, error) {
	return uc.transition(id, entity.AlertStatusActive, entity.AlertStatusAcknowledged)
}

// Resolve cierra una alerta activa o vista.
func (uc *StockAlertUseCase) Resolve(id string) (*dto.AlertResponse, error) {
	alert, err := uc.alerts.GetByID(id)
	if err != nil {
		return nil, err
	}
	if alert == nil {
		return nil, domain.ErrNotFound
	}
	if alert.Status == entity.AlertStatusResolved {
		return nil, domain.ErrConflict
	}
	now := time.Now()
	alert.Status = entity.AlertStatusResolved
	alert.ResolvedAt = &now
	alert.UpdatedAt = now
	if err := uc.alerts.Update(alert); err != nil {
		return nil, err
	}
	resp := toAlertResponse(alert, uc.productName(alert.ProductID))
	return &resp, nil
}

func (uc *StockAlertUseCase) transition(id, from, to string) (*dto.AlertResponse, error) {
	alert, err := uc.alerts.GetByID(id)
	if err != nil {
		return nil, err
	}
	if alert == nil {
		return nil, domain.ErrNotFound
	}
	if alert.Status != from {
		return nil, domain.ErrConflict
	}
	now := time.Now()
	alert.Status = to
	if to == entity.AlertStatusAcknowledged {
		alert.AcknowledgedAt = &now
	}
	alert.UpdatedAt = now
	if err := uc.alerts.Update(alert); err != nil {
		return nil, err
	}
	resp := toAlertResponse(alert, uc.productName(alert.ProductID))
	return &resp, nil
}

func (uc *StockAlertUseCase) productName(productID string) string {
	if p, err := uc.products.GetByID(productID); err == nil && p != nil {
		return p.Name
	}
	return ""
}

func toAlertResponse(a *entity.StockAlert, productName string) dto.AlertResponse {
	return dto.AlertResponse{
		ID:             a.ID,
		ProductID:      a.ProductID,
		ProductName:    productName,
		CurrentStock:   a.CurrentStock,
		Threshold:      a.Threshold,
		Status:         a.Status,
		AcknowledgedAt: a.AcknowledgedAt,
		ResolvedAt:     a.ResolvedAt,
		CreatedAt:      a.CreatedAt,
	}
}
