package reconciliation

import (
	"github.com/shopspring/decimal"
	"github.com/verone/stock-api/internal/domain"
	"github.com/verone/stock-api/internal/domain/entity"
	"github.com/verone/stock-api/internal/domain/stock"
)

// Event un reporte de cumplimiento para una línea: el total acumulado que el
// caller afirma, no un delta. Transitorio: solo su Movement derivado se persiste.
type Event struct {
	OrderLineID string
	QtyReported decimal.Decimal
}

// LineUpdate resultado de validar un evento con delta distinto de cero.
type LineUpdate struct {
	LineID          string
	ProductID       string
	NewFulfilledQty decimal.Decimal
	Delta           decimal.Decimal
}

// Reconcile valida un lote de eventos contra sus líneas y produce las
// actualizaciones a emitir, en el orden en que el caller envió los eventos.
//
// Todo-o-nada: si un solo evento falla (ErrInvalidQuantity, ErrUnknownLine)
// el lote completo se rechaza antes de cualquier escritura; aplicar un lote
// parcial dejaría el ledger inconsistente con el conteo físico del caller.
// Los eventos con delta cero se omiten: un reporte sin cambio no debe crear
// movimientos de delta cero (el ledger exige deltas distintos de cero).
func Reconcile(events []Event, lines map[string]*entity.OrderLine) ([]LineUpdate, error) {
	updates := make([]LineUpdate, 0, len(events))
	for _, ev := range events {
		line, ok := lines[ev.OrderLineID]
		if !ok {
			return nil, domain.ErrUnknownLine
		}
		delta, err := stock.ValidateCumulative(line, ev.QtyReported)
		if err != nil {
			return nil, err
		}
		if delta.IsZero() {
			continue
		}
		updates = append(updates, LineUpdate{
			LineID:          line.ID,
			ProductID:       line.ProductID,
			NewFulfilledQty: ev.QtyReported,
			Delta:           delta,
		})
	}
	return updates, nil
}
