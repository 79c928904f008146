package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/verone/stock-api/internal/domain/entity"
)

// FulfillmentEventRequest un evento del body: total acumulado afirmado para
// una línea (no un delta).
type FulfillmentEventRequest struct {
	OrderLineID string          `json:"order_line_id"`
	QtyReported decimal.Decimal `json:"quantity_reported"`
}

// FulfillmentBatchRequest body para POST /api/orders/:id/receptions y /shipments.
type FulfillmentBatchRequest struct {
	Events []FulfillmentEventRequest `json:"events"`
	Notes  string                    `json:"notes,omitempty"`
}

// MovementResponse un movimiento de stock en respuestas.
type MovementResponse struct {
	ID              string          `json:"id"`
	BatchID         string          `json:"batch_id"`
	OrderLineID     string          `json:"order_line_id"`
	ProductID       string          `json:"product_id"`
	Kind            string          `json:"kind"`
	Delta           decimal.Decimal `json:"delta"`
	Reason          string          `json:"reason"`
	QtyBefore       decimal.Decimal `json:"quantity_before"`
	QtyAfter        decimal.Decimal `json:"quantity_after"`
	AffectsForecast bool            `json:"affects_forecast"`
	ForecastType    string          `json:"forecast_type,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	CreatedBy       string          `json:"created_by,omitempty"`
}

// FulfillmentBatchResponse respuesta de un lote aplicado.
type FulfillmentBatchResponse struct {
	OrderStatus string             `json:"order_status"`
	Movements   []MovementResponse `json:"movements"`
}

// ToMovementResponse mapea la entidad a la respuesta HTTP.
func ToMovementResponse(m *entity.Movement) MovementResponse {
	return MovementResponse{
		ID:              m.ID,
		BatchID:         m.BatchID,
		OrderLineID:     m.OrderLineID,
		ProductID:       m.ProductID,
		Kind:            m.Kind,
		Delta:           m.Delta,
		Reason:          m.Reason,
		QtyBefore:       m.QtyBefore,
		QtyAfter:        m.QtyAfter,
		AffectsForecast: m.AffectsForecast,
		ForecastType:    m.ForecastType,
		CreatedAt:       m.CreatedAt,
		CreatedBy:       m.CreatedBy,
	}
}
