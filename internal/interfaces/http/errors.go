package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/verone/stock-api/internal/application/dto"
	"github.com/verone/stock-api/internal/domain"
)

// errorResponse mapea errores de dominio a respuestas HTTP estructuradas.
// Ningún error cruza el límite del handler sin convertirse en JSON.
func errorResponse(c *fiber.Ctx, err error) error {
	var pErr *domain.PersistenceError
	if errors.As(err, &pErr) {
		// Fallo a mitad de lote: si la causa es de dominio se mapea igual,
		// pero siempre se reportan las líneas pendientes para el reenvío.
		status := fiber.StatusInternalServerError
		code := "PERSISTENCE_FAILURE"
		if errors.Is(pErr.Err, domain.ErrInsufficientStock) {
			status = fiber.StatusConflict
			code = "INSUFFICIENT_STOCK"
		}
		return c.Status(status).JSON(dto.ErrorResponse{
			Code:         code,
			Message:      pErr.Error(),
			PendingLines: pErr.Pending,
		})
	}
	switch {
	case errors.Is(err, domain.ErrInvalidQuantity):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUANTITY", Message: "cantidad reportada fuera de rango (regresión o sobre-cumplimiento)"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrUnknownLine):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "UNKNOWN_LINE", Message: "línea no pertenece a la orden"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "recurso duplicado"})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "conflicto con el estado actual"})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente"})
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrUserNotFound):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado"})
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "EMAIL_EXISTS", Message: "el email ya está registrado"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
