package inventory

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/pos-catalogo/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que el cambio de stock y su
// movimiento de auditoría se confirman o revierten juntos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		movementRepo repository.StockMovementRepository,
		levelRepo repository.StockLevelRepository,
	) error) error
}

// decimalFromInt convierte cantidades enteras de stock a decimal para el
// costeo promedio.
func decimalFromInt(n int) decimal.Decimal {
	return decimal.NewFromInt(int64(n))
}
