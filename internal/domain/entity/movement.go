package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock.
const (
	MovementKindIN  = "IN"  // entrada (recepción de compra)
	MovementKindOUT = "OUT" // salida (expedición de venta)
)

// Tipo de previsión que un movimiento consume (columna forecast_type).
const (
	ForecastTypeIn  = "in"
	ForecastTypeOut = "out"
)

// Motivos detallados de movimiento (enum de la DB original).
const (
	ReasonPurchaseReception   = "purchase_reception"
	ReasonSale                = "sale"
	ReasonReturnSupplier      = "return_supplier"
	ReasonReturnCustomer      = "return_customer"
	ReasonInventoryCorrection = "inventory_correction"
	ReasonWriteOff            = "write_off"
	ReasonSampleClient        = "sample_client"
	ReasonSampleShowroom      = "sample_showroom"
	ReasonDamageTransport     = "damage_transport"
	ReasonDamageHandling      = "damage_handling"
)

// Movement registro inmutable de un delta de stock (append-only).
// Delta siempre positivo; Kind da la dirección. La suma de los Delta de una
// línea en su dirección es igual al FulfilledQty actual de esa línea.
// Nunca se actualiza ni se elimina; nunca se persiste con Delta cero.
type Movement struct {
	ID          string
	BatchID     string // agrupa los movimientos de un mismo lote de reconciliación
	OrderLineID string
	ProductID   string
	Kind        string // IN | OUT
	Delta       decimal.Decimal
	Reason      string
	// QtyBefore/QtyAfter stock real del producto alrededor del movimiento,
	// capturado bajo el row lock de la transacción por línea.
	QtyBefore decimal.Decimal
	QtyAfter  decimal.Decimal
	// AffectsForecast true si el movimiento consume una reserva de previsión
	// (reemplazo explícito del trigger handle_purchase_order_forecast).
	AffectsForecast bool
	ForecastType    string // in | out, vacío si AffectsForecast es false
	Notes           string
	CreatedAt       time.Time
	CreatedBy       string // UserID
}
