package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/verone/stock-api/internal/domain/entity"
)

// CreateOrderLineRequest una línea del body de creación de orden.
type CreateOrderLineRequest struct {
	ProductID string           `json:"product_id"`
	Quantity  decimal.Decimal  `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"` // por defecto: costo (compra) o precio (venta) del producto
}

// CreateOrderRequest body para POST /api/orders.
type CreateOrderRequest struct {
	Reference string                   `json:"reference"`
	Side      string                   `json:"side"` // purchase | sales
	Notes     string                   `json:"notes,omitempty"`
	Lines     []CreateOrderLineRequest `json:"lines"`
}

// OrderLineResponse una línea en respuestas de orden.
type OrderLineResponse struct {
	ID           string          `json:"id"`
	ProductID    string          `json:"product_id"`
	OrderedQty   decimal.Decimal `json:"ordered_quantity"`
	FulfilledQty decimal.Decimal `json:"fulfilled_quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
}

// OrderResponse respuesta de orden con líneas.
type OrderResponse struct {
	ID        string              `json:"id"`
	Reference string              `json:"reference"`
	Side      string              `json:"side"`
	Status    string              `json:"status"`
	Notes     string              `json:"notes,omitempty"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
	Lines     []OrderLineResponse `json:"lines,omitempty"`
}

// ToOrderResponse mapea la entidad a la respuesta HTTP.
func ToOrderResponse(o *entity.Order) OrderResponse {
	resp := OrderResponse{
		ID:        o.ID,
		Reference: o.Reference,
		Side:      o.Side,
		Status:    o.Status,
		Notes:     o.Notes,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
	for _, l := range o.Lines {
		resp.Lines = append(resp.Lines, OrderLineResponse{
			ID:           l.ID,
			ProductID:    l.ProductID,
			OrderedQty:   l.OrderedQty,
			FulfilledQty: l.FulfilledQty,
			UnitPrice:    l.UnitPrice,
		})
	}
	return resp
}
