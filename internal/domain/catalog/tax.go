package catalog

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/pos-catalogo/internal/domain/entity"
)

// StoreTaxDefaults valores de impuesto a nivel tienda, usados como último
// eslabón de la cadena de herencia.
type StoreTaxDefaults struct {
	DefaultTaxClass *entity.TaxClass
	FlatRate        decimal.Decimal // tasa plana legacy cuando ninguna clase aplica
}

// ResolveTaxClass resuelve la clase de impuesto efectiva de un producto:
//  1. override propio del producto;
//  2. primera clase entre sus categorías, iteradas por (sort_order, name)
//     para que el resultado sea determinista;
//  3. default de la tienda.
//
// Devuelve nil solo si ningún nivel define una clase.
func ResolveTaxClass(
	p *entity.Product,
	categories []*entity.Category,
	lookup func(taxClassID string) *entity.TaxClass,
	defaults StoreTaxDefaults,
) *entity.TaxClass {
	if p.TaxClassID != "" {
		if tc := lookup(p.TaxClassID); tc != nil {
			return tc
		}
	}

	sorted := make([]*entity.Category, len(categories))
	copy(sorted, categories)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].SortOrder != sorted[j].SortOrder {
			return sorted[i].SortOrder < sorted[j].SortOrder
		}
		return sorted[i].Name < sorted[j].Name
	})
	for _, c := range sorted {
		if c.TaxClassID == "" {
			continue
		}
		if tc := lookup(c.TaxClassID); tc != nil {
			return tc
		}
	}

	return defaults.DefaultTaxClass
}

// EffectiveTaxRate devuelve la tasa efectiva como porcentaje (ej. 21.00).
// Si la cadena completa no define clase, cae a la tasa plana legacy.
func EffectiveTaxRate(
	p *entity.Product,
	categories []*entity.Category,
	lookup func(taxClassID string) *entity.TaxClass,
	defaults StoreTaxDefaults,
) decimal.Decimal {
	if tc := ResolveTaxClass(p, categories, lookup, defaults); tc != nil {
		return tc.Rate
	}
	return defaults.FlatRate
}
