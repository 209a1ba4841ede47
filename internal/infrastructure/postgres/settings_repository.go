package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/pos-catalogo/internal/domain/entity"
	"github.com/tu-usuario/pos-catalogo/internal/domain/repository"
)

var _ repository.SettingsRepository = (*SettingsRepo)(nil)

const settingsColumns = `id, company_id, allow_negative_stock, low_stock_alert_enabled,
	auto_generate_sku, barcode_enabled, created_at, updated_at`

// SettingsRepo implementación del puerto SettingsRepository sobre PostgreSQL (usable con pool o tx).
type SettingsRepo struct {
	q Querier
}

// NewSettingsRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSettingsRepository(q Querier) *SettingsRepo {
	return &SettingsRepo{q: q}
}

// GetOrCreate devuelve la fila de la empresa, creándola con defaults si no
// existe. El INSERT con ON CONFLICT hace el get-or-create en un solo paso,
// sin carrera entre dos primeras lecturas concurrentes.
func (r *SettingsRepo) GetOrCreate(companyID string) (*entity.InventorySettings, error) {
	s, err := r.get(companyID)
	if err != nil {
		return nil, err
	}
	if s != nil {
		return s, nil
	}

	defaults := entity.DefaultInventorySettings(companyID)
	defaults.ID = uuid.New().String()
	now := time.Now()
	defaults.CreatedAt = now
	defaults.UpdatedAt = now

	_, err = r.q.Exec(context.Background(), `
		INSERT INTO inventory_settings (`+settingsColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (company_id) DO NOTHING`,
		defaults.ID, defaults.CompanyID, defaults.AllowNegativeStock, defaults.LowStockAlertEnabled,
		defaults.AutoGenerateSKU, defaults.BarcodeEnabled, defaults.CreatedAt, defaults.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert inventory settings: %w", err)
	}
	// Releer: si otro proceso ganó la carrera, devolvemos su fila.
	return r.get(companyID)
}

// Update persiste los toggles.
func (r *SettingsRepo) Update(settings *entity.InventorySettings) error {
	settings.UpdatedAt = time.Now()
	_, err := r.q.Exec(context.Background(), `
		UPDATE inventory_settings SET allow_negative_stock = $2, low_stock_alert_enabled = $3,
			auto_generate_sku = $4, barcode_enabled = $5, updated_at = $6
		WHERE company_id = $1`,
		settings.CompanyID, settings.AllowNegativeStock, settings.LowStockAlertEnabled,
		settings.AutoGenerateSKU, settings.BarcodeEnabled, settings.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update inventory settings: %w", err)
	}
	return nil
}

func (r *SettingsRepo) get(companyID string) (*entity.InventorySettings, error) {
	var s entity.InventorySettings
	err := r.q.QueryRow(context.Background(),
		`SELECT `+settingsColumns+` FROM inventory_settings WHERE company_id = $1`, companyID,
	).Scan(
		&s.ID, &s.CompanyID, &s.AllowNegativeStock, &s.LowStockAlertEnabled,
		&s.AutoGenerateSKU, &s.BarcodeEnabled, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory settings: %w", err)
	}
	return &s, nil
}
