// Package pdf genera la hoja de etiquetas de productos para imprimir:
// una grilla A4 con nombre, precio y código de barras por producto.
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/tu-usuario/pos-catalogo/internal/application/usecase"
	"github.com/tu-usuario/pos-catalogo/internal/domain/entity"
)

var _ usecase.LabelSheetGenerator = (*LabelGenerator)(nil)

// labelsPerRow etiquetas por fila en la grilla A4.
const labelsPerRow = 3

// LabelGenerator implementa usecase.LabelSheetGenerator usando Maroto v2.
type LabelGenerator struct{}

// NewLabelGenerator construye el generador.
func NewLabelGenerator() *LabelGenerator { return &LabelGenerator{} }

// Generate arma la hoja de etiquetas y devuelve los bytes del PDF.
// Cada etiqueta lleva nombre, precio y el código de barras del producto
// (EAN-13 si lo tiene, Code 128 del SKU si no).
func (g *LabelGenerator) Generate(products []*entity.Product) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(8).WithRightMargin(8).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle("Etiquetas de productos", true).
		Build()

	m := maroto.New(cfg)

	for start := 0; start < len(products); start += labelsPerRow {
		end := start + labelsPerRow
		if end > len(products) {
			end = len(products)
		}
		m.AddRows(labelRow(products[start:end]))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generar hoja de etiquetas: %w", err)
	}
	return doc.GetBytes(), nil
}

// labelRow arma una fila de la grilla; las celdas sobrantes quedan vacías.
func labelRow(products []*entity.Product) core.Row {
	colSize := 12 / labelsPerRow
	cols := make([]core.Col, 0, labelsPerRow)
	for _, p := range products {
		cols = append(cols, labelCol(p, colSize))
	}
	for len(cols) < labelsPerRow {
		cols = append(cols, col.New(colSize))
	}
	return row.New(32).Add(cols...)
}

func labelCol(p *entity.Product, size int) core.Col {
	barcodeValue := p.EAN13
	if barcodeValue == "" {
		barcodeValue = p.SKU
	}
	return col.New(size).Add(
		text.New(p.Name, props.Text{
			Top:   1,
			Size:  8,
			Style: fontstyle.Bold,
			Align: align.Center,
		}),
		text.New(fmt.Sprintf("$ %s", p.Price.StringFixed(2)), props.Text{
			Top:   6,
			Size:  8,
			Align: align.Center,
		}),
		code.NewBar(barcodeValue, props.Barcode{
			Top:     11,
			Left:    4,
			Percent: 80,
			Proportion: props.Proportion{
				Width:  16,
				Height: 5,
			},
		}),
		text.New(barcodeValue, props.Text{
			Top:   28,
			Size:  6,
			Align: align.Center,
		}),
	)
}
