package importer

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/tu-usuario/pos-catalogo/internal/application/dto"
	"github.com/tu-usuario/pos-catalogo/internal/application/usecase"
	"github.com/tu-usuario/pos-catalogo/internal/domain/catalog"
	"github.com/tu-usuario/pos-catalogo/internal/domain/repository"
)

// ImportResult resumen de una importación.
type ImportResult struct {
	Created int        `json:"created"`
	Updated int        `json:"updated"`
	Errors  []RowError `json:"errors,omitempty"`
}

// Summary texto corto del resultado.
func (r *ImportResult) Summary() string {
	return fmt.Sprintf("%d creados, %d actualizados, %d con error",
		r.Created, r.Updated, len(r.Errors))
}

// ProductImporter importa productos desde CSV. El SKU es la clave de upsert:
// si existe se actualizan los datos, si no se crea el producto. Las categorías
// referenciadas por nombre se autocrean con defaults.
type ProductImporter struct {
	products   repository.ProductRepository
	productUC  *usecase.ProductUseCase
	categoryUC *usecase.CategoryUseCase
	log        zerolog.Logger
}

// NewProductImporter construye el importador.
func NewProductImporter(
	products repository.ProductRepository,
	productUC *usecase.ProductUseCase,
	categoryUC *usecase.CategoryUseCase,
	log zerolog.Logger,
) *ProductImporter {
	return &ProductImporter{
		products:   products,
		productUC:  productUC,
		categoryUC: categoryUC,
		log:        log,
	}
}

// Import lee el CSV y aplica las filas una a una. userID queda como autor en
// los filtros de datos de producto.
func (imp *ProductImporter) Import(companyID, userID string, r io.Reader) (*ImportResult, error) {
	rows, rowErrs, err := ReadProductRows(r)
	if err != nil {
		return nil, err
	}
	result := &ImportResult{Errors: rowErrs}
	for _, row := range rows {
		created, err := imp.importRow(companyID, userID, row)
		if err != nil {
			result.Errors = append(result.Errors, RowError{Line: row.Line, Message: err.Error()})
			continue
		}
		if created {
			result.Created++
		} else {
			result.Updated++
		}
	}
	imp.log.Info().
		Int("created", result.Created).
		Int("updated", result.Updated).
		Int("errors", len(result.Errors)).
		Msg("importación de productos terminada")
	return result, nil
}

func (imp *ProductImporter) importRow(companyID, userID string, row ProductRow) (bool, error) {
	var categoryIDs []string
	for _, name := range row.Categories {
		category, err := imp.categoryUC.GetOrCreateByName(companyID, name)
		if err != nil {
			return false, err
		}
		categoryIDs = append(categoryIDs, category.ID)
	}

	if row.SKU != "" {
		existing, err := imp.products.GetByCompanyAndSKU(companyID, row.SKU)
		if err != nil {
			return false, err
		}
		if existing != nil {
			name := catalog.Capitalize(row.Name)
			update := dto.UpdateProductRequest{
				Name:  &name,
				Price: &row.Price,
				Cost:  &row.Cost,
			}
			if row.EAN13 != "" && row.EAN13 != existing.EAN13 {
				update.EAN13 = &row.EAN13
			}
			if row.Description != "" {
				update.Description = &row.Description
			}
			if row.Threshold != nil {
				update.LowStockThreshold = row.Threshold
			}
			if len(categoryIDs) > 0 {
				update.CategoryIDs = categoryIDs
			}
			_, err = imp.productUC.Update(existing.ID, userID, update)
			return false, err
		}
	}

	_, err := imp.productUC.Create(companyID, userID, dto.CreateProductRequest{
		SKU:               row.SKU,
		EAN13:             row.EAN13,
		Name:              row.Name,
		Description:       row.Description,
		ProductType:       row.ProductType,
		Price:             row.Price,
		Cost:              row.Cost,
		Stock:             row.Stock,
		LowStockThreshold: row.Threshold,
		CategoryIDs:       categoryIDs,
	})
	return true, err
}
