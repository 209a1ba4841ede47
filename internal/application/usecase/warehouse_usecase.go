package usecase

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/pos-catalogo/internal/application/dto"
	"github.com/tu-usuario/pos-catalogo/internal/domain"
	"github.com/tu-usuario/pos-catalogo/internal/domain/entity"
	"github.com/tu-usuario/pos-catalogo/internal/domain/repository"
)

// WarehouseUseCase casos de uso para bodegas.
type WarehouseUseCase struct {
	warehouses repository.WarehouseRepository
}

// NewWarehouseUseCase construye el caso de uso.
func NewWarehouseUseCase(warehouses repository.WarehouseRepository) *WarehouseUseCase {
	return &WarehouseUseCase{warehouses: warehouses}
}

// Create crea una bodega. El código es único por empresa; la primera bodega
// de la empresa queda como default automáticamente.
func (uc *WarehouseUseCase) Create(companyID string, in dto.CreateWarehouseRequest) (*dto.WarehouseResponse, error) {
	code := strings.ToUpper(strings.TrimSpace(in.Code))
	if code == "" || strings.TrimSpace(in.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.warehouses.GetByCode(companyID, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	current, err := uc.warehouses.ListByCompany(companyID, true)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	warehouse := &entity.Warehouse{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Name:      strings.TrimSpace(in.Name),
		Code:      code,
		Address:   in.Address,
		IsDefault: len(current) == 0 || in.IsDefault,
		SortOrder: in.SortOrder,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.warehouses.Create(warehouse); err != nil {
		return nil, err
	}
	if warehouse.IsDefault && len(current) > 0 {
		if err := uc.warehouses.SetDefault(companyID, warehouse.ID); err != nil {
			return nil, err
		}
	}
	resp := dto.WarehouseFromEntity(warehouse)
	return &resp, nil
}

// GetByID obtiene una bodega por ID.
func (uc *WarehouseUseCase) GetByID(id string) (*dto.WarehouseResponse, error) {
	warehouse, err := uc.warehouses.GetByID(id)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, domain.ErrNotFound
	}
	resp := dto.WarehouseFromEntity(warehouse)
	return &resp, nil
}

// Update actualiza una bodega. El código no se cambia una vez creado.
func (uc *WarehouseUseCase) Update(id string, in dto.UpdateWarehouseRequest) (*dto.WarehouseResponse, error) {
	warehouse, err := uc.warehouses.GetByID(id)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, domain.ErrInvalidInput
		}
		warehouse.Name = strings.TrimSpace(*in.Name)
	}
	if in.Address != nil {
		warehouse.Address = *in.Address
	}
	if in.SortOrder != nil {
		warehouse.SortOrder = *in.SortOrder
	}
	if in.IsActive != nil {
		if !*in.IsActive && warehouse.IsDefault {
			return nil, domain.ErrConflict
		}
		warehouse.IsActive = *in.IsActive
	}
	warehouse.UpdatedAt = time.Now()
	if err := uc.warehouses.Update(warehouse); err != nil {
		return nil, err
	}
	resp := dto.WarehouseFromEntity(warehouse)
	return &resp, nil
}

// SetDefault marca la bodega como default de su empresa.
func (uc *WarehouseUseCase) SetDefault(id string) error {
	warehouse, err := uc.warehouses.GetByID(id)
	if err != nil {
		return err
	}
	if warehouse == nil {
		return domain.ErrNotFound
	}
	if !warehouse.IsActive {
		return domain.ErrConflict
	}
	return uc.warehouses.SetDefault(warehouse.CompanyID, warehouse.ID)
}

// List lista las bodegas de la empresa.
func (uc *WarehouseUseCase) List(companyID string, includeInactive bool) ([]dto.WarehouseResponse, error) {
	warehouses, err := uc.warehouses.ListByCompany(companyID, includeInactive)
	if err != nil {
		return nil, err
	}
	out := make([]dto.WarehouseResponse, 0, len(warehouses))
	for _, w := range warehouses {
		out = append(out, dto.WarehouseFromEntity(w))
	}
	return out, nil
}

// Delete elimina una bodega (soft delete). La default no se puede eliminar.
func (uc *WarehouseUseCase) Delete(id string) error {
	warehouse, err := uc.warehouses.GetByID(id)
	if err != nil {
		return err
	}
	if warehouse == nil {
		return domain.ErrNotFound
	}
	if warehouse.IsDefault {
		return domain.ErrConflict
	}
	return uc.warehouses.SoftDelete(id, time.Now())
}
