// Package barcode genera códigos de barras en SVG (EAN-13 y Code 128).
// La codificación de barras la hace boombuler/barcode; el documento SVG se
// arma con etree a partir de las columnas del código renderizado.
package barcode

import (
	"fmt"
	"image/color"
	"strconv"

	"github.com/beevik/etree"
	bbarcode "github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	"github.com/boombuler/barcode/ean"

	"github.com/tu-usuario/pos-catalogo/internal/application/usecase"
	"github.com/tu-usuario/pos-catalogo/internal/domain/catalog"
)

var _ usecase.BarcodeRenderer = (*SVGGenerator)(nil)

// Dimensiones del SVG generado, en unidades de usuario.
const (
	moduleWidth = 2  // ancho de cada módulo (barra mínima)
	barHeight   = 60 // alto de las barras
	textHeight  = 14 // franja inferior para el texto legible
)

// SVGGenerator renderiza códigos de barras como SVG. Si el valor no se puede
// codificar, devuelve un SVG vacío en lugar de fallar: la UI muestra un hueco
// y el resto de la etiqueta sigue sirviendo.
type SVGGenerator struct{}

// NewSVGGenerator construye el generador.
func NewSVGGenerator() *SVGGenerator { return &SVGGenerator{} }

// RenderSVG genera el SVG del código. format es uno de los formatos de
// catalog (ean13, code128).
func (g *SVGGenerator) RenderSVG(value, format string) ([]byte, error) {
	bc, err := encode(value, format)
	if err != nil {
		return []byte("<svg></svg>"), nil
	}
	return buildSVG(bc, value)
}

func encode(value, format string) (bbarcode.Barcode, error) {
	switch format {
	case catalog.BarcodeFormatEAN13:
		return ean.Encode(value)
	case catalog.BarcodeFormatCode128:
		return code128.Encode(value)
	default:
		return nil, fmt.Errorf("formato no soportado: %s", format)
	}
}

// buildSVG recorre las columnas del código y colapsa las barras contiguas en
// un rect por corrida, con el valor legible debajo.
func buildSVG(bc bbarcode.Barcode, value string) ([]byte, error) {
	bounds := bc.Bounds()
	modules := bounds.Dx()
	width := modules * moduleWidth
	height := barHeight + textHeight

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	svg := doc.CreateElement("svg")
	svg.CreateAttr("xmlns", "http://www.w3.org/2000/svg")
	svg.CreateAttr("width", strconv.Itoa(width))
	svg.CreateAttr("height", strconv.Itoa(height))
	svg.CreateAttr("viewBox", fmt.Sprintf("0 0 %d %d", width, height))

	background := svg.CreateElement("rect")
	background.CreateAttr("width", strconv.Itoa(width))
	background.CreateAttr("height", strconv.Itoa(height))
	background.CreateAttr("fill", "#ffffff")

	y := bounds.Min.Y
	for x := bounds.Min.X; x < bounds.Max.X; {
		if !isBlack(bc.At(x, y)) {
			x++
			continue
		}
		run := 0
		for x+run < bounds.Max.X && isBlack(bc.At(x+run, y)) {
			run++
		}
		rect := svg.CreateElement("rect")
		rect.CreateAttr("x", strconv.Itoa((x-bounds.Min.X)*moduleWidth))
		rect.CreateAttr("y", "0")
		rect.CreateAttr("width", strconv.Itoa(run*moduleWidth))
		rect.CreateAttr("height", strconv.Itoa(barHeight))
		rect.CreateAttr("fill", "#000000")
		x += run
	}

	label := svg.CreateElement("text")
	label.CreateAttr("x", strconv.Itoa(width/2))
	label.CreateAttr("y", strconv.Itoa(barHeight+textHeight-3))
	label.CreateAttr("text-anchor", "middle")
	label.CreateAttr("font-family", "monospace")
	label.CreateAttr("font-size", strconv.Itoa(textHeight-4))
	label.SetText(value)

	return doc.WriteToBytes()
}

func isBlack(c color.Color) bool {
	r, g, b, _ := c.RGBA()
	return r == 0 && g == 0 && b == 0
}
