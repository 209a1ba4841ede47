package repository

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/pos-catalogo/internal/domain/entity"
)

// TaxClassRepository define el puerto de lectura de clases de impuesto.
type TaxClassRepository interface {
	GetByID(id string) (*entity.TaxClass, error)
	ListByCompany(companyID string) ([]*entity.TaxClass, error)
	// StoreDefaults devuelve la clase default de la tienda (nil si no hay)
	// y la tasa plana legacy que se usa cuando ninguna clase aplica.
	StoreDefaults(companyID string) (*entity.TaxClass, decimal.Decimal, error)
}
