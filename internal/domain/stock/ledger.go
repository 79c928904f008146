package stock

import (
	"github.com/shopspring/decimal"
	"github.com/verone/stock-api/internal/domain"
	"github.com/verone/stock-api/internal/domain/entity"
)

// ValidateCumulative valida la cantidad acumulada reportada para una línea y
// devuelve el delta incremental (servicio de dominio, función pura).
//
// El caller reporta el total acumulado que afirma haber recibido/expedido,
// no un delta: delta = reported - FulfilledQty. Falla con ErrInvalidQuantity
// si reported < FulfilledQty (regresión) o reported > OrderedQty
// (sobre-cumplimiento). Reportar de nuevo el mismo acumulado produce delta
// cero, lo que hace los reintentos idempotentes.
func ValidateCumulative(line *entity.OrderLine, reported decimal.Decimal) (decimal.Decimal, error) {
	if line == nil {
		return decimal.Zero, domain.ErrUnknownLine
	}
	if reported.LessThan(line.FulfilledQty) {
		return decimal.Zero, domain.ErrInvalidQuantity
	}
	if reported.GreaterThan(line.OrderedQty) {
		return decimal.Zero, domain.ErrInvalidQuantity
	}
	return reported.Sub(line.FulfilledQty), nil
}
