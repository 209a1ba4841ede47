package repository

import "github.com/tu-usuario/pos-catalogo/internal/domain/entity"

// SettingsRepository define el puerto para la configuración de inventario
// por empresa. GetOrCreate implementa el singleton perezoso: si la empresa
// aún no tiene fila, se crea con los defaults.
type SettingsRepository interface {
	GetOrCreate(companyID string) (*entity.InventorySettings, error)
	Update(settings *entity.InventorySettings) error
}
