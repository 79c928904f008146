package entity

import "time"

// Lado de la orden: compra (recepciones de proveedor) o venta (expediciones a cliente).
const (
	OrderSidePurchase = "purchase"
	OrderSideSales    = "sales"
)

// Estados del ciclo de vida de una orden.
// draft -> pending (validada) -> partially_fulfilled -> fulfilled; cancelled en cualquier punto previo.
// Los tres estados de cumplimiento se derivan exclusivamente de las líneas (ver stock.ResolveStatus);
// nunca retroceden porque fulfilled_quantity es monótona.
const (
	OrderStatusDraft              = "draft"
	OrderStatusPending            = "pending"
	OrderStatusPartiallyFulfilled = "partially_fulfilled"
	OrderStatusFulfilled          = "fulfilled"
	OrderStatusCancelled          = "cancelled"
)

// Order agrega líneas de compra o venta. Status se deriva del estado de las
// líneas y se persiste después de cada lote de reconciliación.
type Order struct {
	ID        string
	Reference string // ej. PO-2025-0042, SO-2025-0131
	Side      string // purchase | sales
	Status    string
	Notes     string
	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time

	Lines []*OrderLine
}

// IsDeletable solo draft y cancelled pueden eliminarse.
func (o *Order) IsDeletable() bool {
	return o.Status == OrderStatusDraft || o.Status == OrderStatusCancelled
}
