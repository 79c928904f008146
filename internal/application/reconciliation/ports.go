package reconciliation

import (
	"context"

	"github.com/verone/stock-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza la atomicidad por línea del emisor
// de movimientos: movimiento, línea y niveles de stock se confirman juntos o
// no se confirman.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		lineRepo repository.OrderLineRepository,
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
	) error) error
}
