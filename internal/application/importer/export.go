package importer

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/tu-usuario/pos-catalogo/internal/domain/repository"
)

// exportPageSize tamaño de página al recorrer el catálogo.
const exportPageSize = 500

// Exporter vuelca el catálogo a CSV con los mismos encabezados que acepta
// el importador, para que un export sea reimportable tal cual.
type Exporter struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
}

// NewExporter construye el exportador.
func NewExporter(products repository.ProductRepository, categories repository.CategoryRepository) *Exporter {
	return &Exporter{products: products, categories: categories}
}

// ExportProducts escribe todos los productos no eliminados de la empresa.
func (e *Exporter) ExportProducts(w io.Writer, companyID string) error {
	cw := csv.NewWriter(w)
	header := []string{colName, colSKU, colEAN13, colPrice, colCost, colStock, colThreshold, colCategories, colDescription, colProductType}
	if err := cw.Write(header); err != nil {
		return err
	}

	offset := 0
	for {
		items, _, err := e.products.List(repository.ProductFilter{
			CompanyID: companyID,
			SortField: "name",
			Limit:     exportPageSize,
			Offset:    offset,
		})
		if err != nil {
			return err
		}
		for _, p := range items {
			names, err := e.categoryNames(companyID, p.CategoryIDs)
			if err != nil {
				return err
			}
			record := []string{
				p.Name,
				p.SKU,
				p.EAN13,
				p.Price.String(),
				p.Cost.String(),
				strconv.Itoa(p.Stock),
				strconv.Itoa(p.LowStockThreshold),
				strings.Join(names, ","),
				p.Description,
				p.ProductType,
			}
			if err := cw.Write(record); err != nil {
				return err
			}
		}
		if len(items) < exportPageSize {
			break
		}
		offset += exportPageSize
	}
	cw.Flush()
	return cw.Error()
}

// ExportCategories escribe todas las categorías no eliminadas de la empresa.
func (e *Exporter) ExportCategories(w io.Writer, companyID string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"name", "slug", "icon", "color", "description", "sort_order", "is_active"}); err != nil {
		return err
	}

	offset := 0
	for {
		items, _, err := e.categories.List(repository.CategoryFilter{
			CompanyID: companyID,
			SortField: "sort_order",
			Limit:     exportPageSize,
			Offset:    offset,
		})
		if err != nil {
			return err
		}
		for _, c := range items {
			record := []string{
				c.Name,
				c.Slug,
				c.Icon,
				c.Color,
				c.Description,
				strconv.Itoa(c.SortOrder),
				strconv.FormatBool(c.IsActive),
			}
			if err := cw.Write(record); err != nil {
				return err
			}
		}
		if len(items) < exportPageSize {
			break
		}
		offset += exportPageSize
	}
	cw.Flush()
	return cw.Error()
}

func (e *Exporter) categoryNames(companyID string, ids []string) ([]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cats, err := e.categories.ListByIDs(companyID, ids)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(cats))
	for _, c := range cats {
		names = append(names, c.Name)
	}
	return names, nil
}
