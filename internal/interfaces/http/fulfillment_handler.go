package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/verone/stock-api/internal/application/dto"
	"github.com/verone/stock-api/internal/application/reconciliation"
	"github.com/verone/stock-api/internal/domain/entity"
)

// FulfillmentHandler maneja recepciones de compra y expediciones de venta (protegido).
type FulfillmentHandler struct {
	uc *reconciliation.UseCase
}

// NewFulfillmentHandler construye el handler.
func NewFulfillmentHandler(uc *reconciliation.UseCase) *FulfillmentHandler {
	return &FulfillmentHandler{uc: uc}
}

// ReceiveItems godoc
// @Summary      Registrar una recepción de compra (cantidades acumuladas por línea)
// @Tags         fulfillment
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la orden de compra"
// @Param        body  body  dto.FulfillmentBatchRequest  true  "events: [{order_line_id, quantity_reported}]"
// @Success      200   {object}  dto.FulfillmentBatchResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/receptions [post]
func (h *FulfillmentHandler) ReceiveItems(c *fiber.Ctx) error {
	return h.apply(c, entity.OrderSidePurchase)
}

// ShipItems godoc
// @Summary      Registrar una expedición de venta (cantidades acumuladas por línea)
// @Tags         fulfillment
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la orden de venta"
// @Param        body  body  dto.FulfillmentBatchRequest  true  "events: [{order_line_id, quantity_reported}]"
// @Success      200   {object}  dto.FulfillmentBatchResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/shipments [post]
func (h *FulfillmentHandler) ShipItems(c *fiber.Ctx) error {
	return h.apply(c, entity.OrderSideSales)
}

func (h *FulfillmentHandler) apply(c *fiber.Ctx, side string) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.FulfillmentBatchRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	events := make([]reconciliation.Event, 0, len(in.Events))
	for _, ev := range in.Events {
		if ev.OrderLineID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "order_line_id requerido en cada evento"})
		}
		events = append(events, reconciliation.Event{OrderLineID: ev.OrderLineID, QtyReported: ev.QtyReported})
	}

	result, err := h.uc.ReconcileAndEmit(c.Context(), c.Params("id"), side, events, in.Notes, userID)
	if err != nil {
		return errorResponse(c, err)
	}

	resp := dto.FulfillmentBatchResponse{
		OrderStatus: result.OrderStatus,
		Movements:   make([]dto.MovementResponse, 0, len(result.Movements)),
	}
	for _, m := range result.Movements {
		resp.Movements = append(resp.Movements, dto.ToMovementResponse(m))
	}
	return c.JSON(resp)
}
