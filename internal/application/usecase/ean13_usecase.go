package usecase

import (
	"math/rand"

	"github.com/rs/zerolog"

	"github.com/tu-usuario/pos-catalogo/internal/domain/catalog"
	"github.com/tu-usuario/pos-catalogo/internal/domain/repository"
)

// maxEANAttempts intentos de generación por producto antes de saltarlo.
const maxEANAttempts = 100

// PopulateEAN13Result resumen de una corrida de asignación de códigos.
type PopulateEAN13Result struct {
	Assigned int
	Skipped  int
}

// PopulateEAN13UseCase asigna códigos EAN-13 internos (prefijo 200) a los
// productos que no tienen uno. Los colisionados tras agotar los reintentos se
// saltan con warning en lugar de abortar la corrida.
type PopulateEAN13UseCase struct {
	products repository.ProductRepository
	rng      *rand.Rand
	log      zerolog.Logger
}

// NewPopulateEAN13UseCase construye el caso de uso.
func NewPopulateEAN13UseCase(products repository.ProductRepository, rng *rand.Rand, log zerolog.Logger) *PopulateEAN13UseCase {
	return &PopulateEAN13UseCase{products: products, rng: rng, log: log}
}

// Run recorre los productos sin EAN-13 de la empresa y les asigna uno único.
func (uc *PopulateEAN13UseCase) Run(companyID string) (*PopulateEAN13Result, error) {
	pending, err := uc.products.ListWithoutEAN13(companyID)
	if err != nil {
		return nil, err
	}
	result := &PopulateEAN13Result{}
	for _, p := range pending {
		code, ok, err := uc.generateUnique()
		if err != nil {
			return nil, err
		}
		if !ok {
			result.Skipped++
			uc.log.Warn().
				Str("product_id", p.ID).
				Str("sku", p.SKU).
				Int("attempts", maxEANAttempts).
				Msg("no se encontró un EAN-13 libre, producto saltado")
			continue
		}
		if err := uc.products.UpdateEAN13(p.ID, code); err != nil {
			return nil, err
		}
		result.Assigned++
		uc.log.Info().
			Str("product_id", p.ID).
			Str("sku", p.SKU).
			Str("ean13", code).
			Msg("EAN-13 asignado")
	}
	return result, nil
}

func (uc *PopulateEAN13UseCase) generateUnique() (string, bool, error) {
	for i := 0; i < maxEANAttempts; i++ {
		code := catalog.GenerateEAN13(uc.rng)
		taken, err := uc.products.ExistsEAN13(code)
		if err != nil {
			return "", false, err
		}
		if !taken {
			return code, true, nil
		}
	}
	return "", false, nil
}
