package stock

import "github.com/verone/stock-api/internal/domain/entity"

// ResolveStatus deriva el estado agregado de la orden a partir de sus líneas
// (función pura). fulfilled si todas las líneas están completas; pending si
// todas siguen en cero; partially_fulfilled en cualquier otro caso.
// Una orden sin líneas resuelve a pending.
// Se invoca una vez por lote, después de que el emisor de movimientos
// termina, de modo que el estado siempre refleja líneas ya confirmadas.
func ResolveStatus(lines []*entity.OrderLine) string {
	if len(lines) == 0 {
		return entity.OrderStatusPending
	}
	allFulfilled := true
	anyProgress := false
	for _, l := range lines {
		if l.IsFulfilled() {
			anyProgress = true
			continue
		}
		allFulfilled = false
		if l.FulfilledQty.IsPositive() {
			anyProgress = true
		}
	}
	switch {
	case allFulfilled:
		return entity.OrderStatusFulfilled
	case anyProgress:
		return entity.OrderStatusPartiallyFulfilled
	default:
		return entity.OrderStatusPending
	}
}
