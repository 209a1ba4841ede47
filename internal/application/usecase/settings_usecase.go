package usecase

import (
	"github.com/tu-usuario/pos-catalogo/internal/application/dto"
	"github.com/tu-usuario/pos-catalogo/internal/domain/repository"
)

// SettingsUseCase lectura y actualización de la configuración de inventario
// por empresa (singleton perezoso).
type SettingsUseCase struct {
	settings repository.SettingsRepository
}

// NewSettingsUseCase construye el caso de uso.
func NewSettingsUseCase(settings repository.SettingsRepository) *SettingsUseCase {
	return &SettingsUseCase{settings: settings}
}

// Get devuelve la configuración de la empresa, creándola con defaults si es
// la primera vez.
func (uc *SettingsUseCase) Get(companyID string) (*dto.SettingsResponse, error) {
	s, err := uc.settings.GetOrCreate(companyID)
	if err != nil {
		return nil, err
	}
	resp := dto.SettingsFromEntity(s)
	return &resp, nil
}

// Update aplica cambios parciales sobre la configuración.
func (uc *SettingsUseCase) Update(companyID string, in dto.UpdateSettingsRequest) (*dto.SettingsResponse, error) {
	s, err := uc.settings.GetOrCreate(companyID)
	if err != nil {
		return nil, err
	}
	if in.AllowNegativeStock != nil {
		s.AllowNegativeStock = *in.AllowNegativeStock
	}
	if in.LowStockAlertEnabled != nil {
		s.LowStockAlertEnabled = *in.LowStockAlertEnabled
	}
	if in.AutoGenerateSKU != nil {
		s.AutoGenerateSKU = *in.AutoGenerateSKU
	}
	if in.BarcodeEnabled != nil {
		s.BarcodeEnabled = *in.BarcodeEnabled
	}
	if err := uc.settings.Update(s); err != nil {
		return nil, err
	}
	resp := dto.SettingsFromEntity(s)
	return &resp, nil
}
