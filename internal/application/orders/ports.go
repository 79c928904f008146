package orders

import (
	"context"

	"github.com/verone/stock-api/internal/domain/repository"
)

// TxRunner transacción con los repositorios de órdenes: creación de orden con
// líneas, y reserva/liberación de previsión junto al cambio de estado.
type TxRunner interface {
	RunOrders(ctx context.Context, fn func(
		orderRepo repository.OrderRepository,
		lineRepo repository.OrderLineRepository,
		productRepo repository.ProductRepository,
	) error) error
}
