package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/pos-catalogo/internal/application/usecase"
	"github.com/tu-usuario/pos-catalogo/internal/domain"
	"github.com/tu-usuario/pos-catalogo/internal/domain/catalog"
	"github.com/tu-usuario/pos-catalogo/internal/domain/entity"
)

type recordingRenderer struct {
	value  string
	format string
}

func (r *recordingRenderer) RenderSVG(value, format string) ([]byte, error) {
	r.value = value
	r.format = format
	return []byte("<svg/>"), nil
}

type recordingLabels struct {
	products []*entity.Product
}

func (g *recordingLabels) Generate(products []*entity.Product) ([]byte, error) {
	g.products = products
	return []byte("%PDF-1.4"), nil
}

func newBarcodeFixture(products ...*entity.Product) (*usecase.BarcodeUseCase, *recordingRenderer, *recordingLabels, *fakeSettingsRepo) {
	renderer := &recordingRenderer{}
	labels := &recordingLabels{}
	settings := newFakeSettingsRepo(companyID)
	uc := usecase.NewBarcodeUseCase(newFakeProductRepo(products...), settings, renderer, labels)
	return uc, renderer, labels, settings
}

func TestRenderProductSVG_EligeFormatoPorEAN(t *testing.T) {
	withEAN := &entity.Product{ID: "p-1", CompanyID: companyID, SKU: "CAF-0001", Name: "Café", ProductType: entity.ProductTypePhysical, EAN13: "5901234123457"}
	withoutEAN := &entity.Product{ID: "p-2", CompanyID: companyID, SKU: "AZU-0001", Name: "Azúcar", ProductType: entity.ProductTypePhysical}
	uc, renderer, _, _ := newBarcodeFixture(withEAN, withoutEAN)

	_, err := uc.RenderProductSVG("p-1")
	require.NoError(t, err)
	assert.Equal(t, "5901234123457", renderer.value)
	assert.Equal(t, catalog.BarcodeFormatEAN13, renderer.format)

	_, err = uc.RenderProductSVG("p-2")
	require.NoError(t, err)
	assert.Equal(t, "AZU-0001", renderer.value)
	assert.Equal(t, catalog.BarcodeFormatCode128, renderer.format, "sin EAN cae a Code 128 del SKU")
}

func TestRenderProductSVG_FlagDeshabilitado(t *testing.T) {
	p := &entity.Product{ID: "p-1", CompanyID: companyID, SKU: "CAF-0001", Name: "Café", ProductType: entity.ProductTypePhysical}
	uc, _, _, settings := newBarcodeFixture(p)
	cfg, _ := settings.GetOrCreate(companyID)
	cfg.BarcodeEnabled = false
	require.NoError(t, settings.Update(cfg))

	_, err := uc.RenderProductSVG("p-1")
	assert.ErrorIs(t, err, domain.ErrFeatureDisabled)

	_, err = uc.LabelSheet(companyID, []string{"p-1"})
	assert.ErrorIs(t, err, domain.ErrFeatureDisabled)
}

func TestLabelSheet(t *testing.T) {
	uc, _, labels, _ := newBarcodeFixture(
		&entity.Product{ID: "p-1", CompanyID: companyID, SKU: "CAF-0001", Name: "Café", ProductType: entity.ProductTypePhysical},
		&entity.Product{ID: "p-2", CompanyID: "otra-empresa", SKU: "X-1", Name: "Ajeno", ProductType: entity.ProductTypePhysical},
	)

	out, err := uc.LabelSheet(companyID, []string{"p-1"})
	require.NoError(t, err)
	assert.NotEmpty(t, out)
	require.Len(t, labels.products, 1)
	assert.Equal(t, "p-1", labels.products[0].ID)

	// Productos de otra empresa no entran en la hoja.
	_, err = uc.LabelSheet(companyID, []string{"p-2"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.LabelSheet(companyID, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
