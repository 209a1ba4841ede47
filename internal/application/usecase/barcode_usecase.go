package usecase

import (
	"github.com/tu-usuario/pos-catalogo/internal/domain"
	"github.com/tu-usuario/pos-catalogo/internal/domain/catalog"
	"github.com/tu-usuario/pos-catalogo/internal/domain/entity"
	"github.com/tu-usuario/pos-catalogo/internal/domain/repository"
)

// BarcodeRenderer genera la imagen SVG de un código de barras.
type BarcodeRenderer interface {
	RenderSVG(value, format string) ([]byte, error)
}

// LabelSheetGenerator arma la hoja PDF de etiquetas de productos.
type LabelSheetGenerator interface {
	Generate(products []*entity.Product) ([]byte, error)
}

// BarcodeUseCase salida de códigos de barras: SVG individual y hoja de
// etiquetas. Toda la salida respeta el flag barcode_enabled de la empresa.
type BarcodeUseCase struct {
	products repository.ProductRepository
	settings repository.SettingsRepository
	renderer BarcodeRenderer
	labels   LabelSheetGenerator
}

// NewBarcodeUseCase construye el caso de uso.
func NewBarcodeUseCase(
	products repository.ProductRepository,
	settings repository.SettingsRepository,
	renderer BarcodeRenderer,
	labels LabelSheetGenerator,
) *BarcodeUseCase {
	return &BarcodeUseCase{products: products, settings: settings, renderer: renderer, labels: labels}
}

// RenderProductSVG devuelve el código de barras del producto en SVG.
// Usa el EAN-13 si lo tiene, Code 128 sobre el SKU si no.
func (uc *BarcodeUseCase) RenderProductSVG(productID string) ([]byte, error) {
	product, err := uc.products.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.checkEnabled(product.CompanyID); err != nil {
		return nil, err
	}
	value, format := barcodeValueFor(product)
	if err := catalog.ValidateBarcodeValue(value, format); err != nil {
		return nil, err
	}
	return uc.renderer.RenderSVG(value, format)
}

// LabelSheet genera la hoja PDF de etiquetas para los productos indicados.
func (uc *BarcodeUseCase) LabelSheet(companyID string, productIDs []string) ([]byte, error) {
	if len(productIDs) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.checkEnabled(companyID); err != nil {
		return nil, err
	}
	products := make([]*entity.Product, 0, len(productIDs))
	for _, id := range productIDs {
		p, err := uc.products.GetByID(id)
		if err != nil {
			return nil, err
		}
		if p == nil || p.CompanyID != companyID {
			return nil, domain.ErrNotFound
		}
		products = append(products, p)
	}
	return uc.labels.Generate(products)
}

func (uc *BarcodeUseCase) checkEnabled(companyID string) error {
	cfg, err := uc.settings.GetOrCreate(companyID)
	if err != nil {
		return err
	}
	if !cfg.BarcodeEnabled {
		return domain.ErrFeatureDisabled
	}
	return nil
}

// barcodeValueFor elige valor y formato: EAN-13 si existe, Code 128 del SKU.
func barcodeValueFor(p *entity.Product) (string, string) {
	if p.EAN13 != "" {
		return p.EAN13, catalog.BarcodeFormatEAN13
	}
	return p.SKU, catalog.BarcodeFormatCode128
}
