package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderLine una entrada producto/cantidad dentro de una orden.
// Invariante: 0 <= FulfilledQty <= OrderedQty en todo momento.
// OrderedQty es inmutable tras la creación; FulfilledQty solo crece
// (mutada exclusivamente por el motor de reconciliación).
type OrderLine struct {
	ID           string
	OrderID      string
	ProductID    string
	OrderedQty   decimal.Decimal
	FulfilledQty decimal.Decimal
	UnitPrice    decimal.Decimal // precio de compra o venta según el lado de la orden
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Remaining cantidad pendiente por recibir/expedir.
func (l *OrderLine) Remaining() decimal.Decimal {
	return l.OrderedQty.Sub(l.FulfilledQty)
}

// IsFulfilled la línea está completamente cumplida.
func (l *OrderLine) IsFulfilled() bool {
	return l.FulfilledQty.GreaterThanOrEqual(l.OrderedQty)
}
