package repository

import (
	"github.com/shopspring/decimal"
	"github.com/verone/stock-api/internal/domain/entity"
)

// OrderLineRepository puerto de persistencia para líneas de orden.
// Usado dentro de transacciones para garantizar consistencia del ledger.
type OrderLineRepository interface {
	CreateBatch(lines []*entity.OrderLine) error
	ListByOrder(orderID string) ([]*entity.OrderLine, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE).
	GetForUpdate(id string) (*entity.OrderLine, error)
	// UpdateFulfilled fija el acumulado cumplido de la línea (solo crece).
	UpdateFulfilled(id string, fulfilled decimal.Decimal) error
}
