package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/verone/stock-api/internal/application/dto"
	"github.com/verone/stock-api/internal/domain/repository"
)

// MovementHandler expone el historial de movimientos de stock (protegido, solo lectura).
type MovementHandler struct {
	movRepo repository.MovementRepository
}

// NewMovementHandler construye el handler.
func NewMovementHandler(movRepo repository.MovementRepository) *MovementHandler {
	return &MovementHandler{movRepo: movRepo}
}

// List godoc
// @Summary      Historial de movimientos de stock
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        product_id     query  string  false  "Filtrar por producto"
// @Param        order_line_id  query  string  false  "Filtrar por línea de orden"
// @Param        kind           query  string  false  "IN | OUT"
// @Param        reason         query  string  false  "Motivo (purchase_reception, sale, ...)"
// @Param        from           query  string  false  "RFC3339"
// @Param        to             query  string  false  "RFC3339"
// @Success      200  {array}   dto.MovementResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/stock/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()

	filter := repository.MovementFilter{
		ProductID:   c.Query("product_id"),
		OrderLineID: c.Query("order_line_id"),
		Kind:        c.Query("kind"),
		Reason:      c.Query("reason"),
		Limit:       page.Limit,
		Offset:      page.Offset,
	}
	if from := c.Query("from"); from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from debe ser RFC3339"})
		}
		filter.From = &t
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to debe ser RFC3339"})
		}
		filter.To = &t
	}

	movements, err := h.movRepo.List(filter)
	if err != nil {
		return errorResponse(c, err)
	}
	out := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, dto.ToMovementResponse(m))
	}
	return c.JSON(fiber.Map{"total": len(out), "movements": out})
}
