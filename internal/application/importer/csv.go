// Package importer implementa la importación y exportación CSV del catálogo.
// Las filas se procesan de forma independiente: una fila inválida se reporta
// con su número de línea y no detiene el resto del archivo.
package importer

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/pos-catalogo/internal/domain"
)

// Encabezados reconocidos (case-insensitive). name es el único obligatorio.
// category (singular) se acepta como alias de categories.
const (
	colName        = "name"
	colSKU         = "sku"
	colEAN13       = "ean13"
	colPrice       = "price"
	colCost        = "cost"
	colStock       = "stock"
	colThreshold   = "low_stock_threshold"
	colCategories  = "categories"
	colCategory    = "category"
	colDescription = "description"
	colProductType = "product_type"
)

// ProductRow una fila del CSV de productos ya parseada. Categories trae los
// nombres de la columna categories separados por comas.
type ProductRow struct {
	Line        int // línea del archivo, 1-based, para reportar errores
	Name        string
	SKU         string
	EAN13       string
	Price       decimal.Decimal
	Cost        decimal.Decimal
	Stock       int
	Threshold   *int
	Categories  []string
	Description string
	ProductType string
}

// RowError error de una fila concreta.
type RowError struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

// ReadProductRows parsea el CSV completo. Los encabezados se reconocen sin
// distinguir mayúsculas; las columnas desconocidas se ignoran. Las filas con
// errores de formato se devuelven aparte sin abortar la lectura.
func ReadProductRows(r io.Reader) ([]ProductRow, []RowError, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil, domain.ErrInvalidInput
	}
	if err != nil {
		return nil, nil, err
	}
	index := indexHeader(header)
	if _, ok := index[colName]; !ok {
		return nil, nil, domain.ErrInvalidInput
	}

	var (
		rows    []ProductRow
		rowErrs []RowError
		line    = 1
	)
	for {
		record, err := reader.Read()
		line++
		if err == io.EOF {
			break
		}
		if err != nil {
			rowErrs = append(rowErrs, RowError{Line: line, Message: err.Error()})
			continue
		}
		row, perr := parseRow(record, index, line)
		if perr != nil {
			rowErrs = append(rowErrs, *perr)
			continue
		}
		rows = append(rows, row)
	}
	return rows, rowErrs, nil
}

func indexHeader(header []string) map[string]int {
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return index
}

func parseRow(record []string, index map[string]int, line int) (ProductRow, *RowError) {
	get := func(col string) string {
		i, ok := index[col]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	categories := get(colCategories)
	if categories == "" {
		categories = get(colCategory)
	}
	row := ProductRow{
		Line:        line,
		Name:        get(colName),
		SKU:         get(colSKU),
		EAN13:       get(colEAN13),
		Categories:  splitCategories(categories),
		Description: get(colDescription),
		ProductType: strings.ToLower(get(colProductType)),
	}
	if row.Name == "" {
		return row, &RowError{Line: line, Message: "nombre vacío"}
	}

	var err error
	if s := get(colPrice); s != "" {
		if row.Price, err = decimal.NewFromString(s); err != nil || row.Price.IsNegative() {
			return row, &RowError{Line: line, Message: "precio inválido: " + s}
		}
	}
	if s := get(colCost); s != "" {
		if row.Cost, err = decimal.NewFromString(s); err != nil || row.Cost.IsNegative() {
			return row, &RowError{Line: line, Message: "costo inválido: " + s}
		}
	}
	if s := get(colStock); s != "" {
		if row.Stock, err = strconv.Atoi(s); err != nil || row.Stock < 0 {
			return row, &RowError{Line: line, Message: "stock inválido: " + s}
		}
	}
	if s := get(colThreshold); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return row, &RowError{Line: line, Message: "umbral inválido: " + s}
		}
		row.Threshold = &n
	}
	return row, nil
}

// splitCategories separa la columna categories por comas, descartando vacíos.
func splitCategories(s string) []string {
	var names []string
	for _, part := range strings.Split(s, ",") {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}
