package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/verone/stock-api/internal/application/dto"
	"github.com/verone/stock-api/pkg/ratelimit"
)

// RateLimitMiddleware limita peticiones por cliente (usuario autenticado o
// IP) contra un store inyectado, en lugar del mapa global del sistema original.
func RateLimitMiddleware(store *ratelimit.Store, preset ratelimit.Preset) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := GetUserID(c)
		if key == "" {
			key = c.IP()
		}
		res := store.Check(key, preset)
		c.Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
		if !res.Allowed {
			c.Set("Retry-After", strconv.Itoa(int(res.RetryAfter.Seconds())+1))
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
				Code:    "RATE_LIMITED",
				Message: "demasiadas peticiones, reintente más tarde",
			})
		}
		return c.Next()
	}
}
