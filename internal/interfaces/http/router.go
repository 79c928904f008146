package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/verone/stock-api/internal/application/auth"
	"github.com/verone/stock-api/internal/application/catalog"
	"github.com/verone/stock-api/internal/application/orders"
	"github.com/verone/stock-api/internal/application/reconciliation"
	"github.com/verone/stock-api/internal/domain/entity"
	"github.com/verone/stock-api/internal/domain/repository"
	"github.com/verone/stock-api/pkg/ratelimit"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.UseCase
	OrderUC       *orders.UseCase
	FulfillmentUC *reconciliation.UseCase
	CatalogUC     *catalog.UseCase
	MovementRepo  repository.MovementRepository
	JWTSecret     string
	RateLimiter   *ratelimit.Store
	RatePreset    ratelimit.Preset
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	limiter := RateLimitMiddleware(deps.RateLimiter, deps.RatePreset)

	// Auth (público): limitado por IP, sin usuario todavía
	authGroup := api.Group("/auth", limiter)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token). El limitador va después del
	// auth para que la clave sea el usuario y no la IP compartida.
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret), limiter)

	// Orders (protegido)
	orderGroup := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC)
	orderGroup.Post("/", orderHandler.Create)
	orderGroup.Get("/", orderHandler.List)
	orderGroup.Get("/:id", orderHandler.GetByID)
	orderGroup.Delete("/:id", orderHandler.Delete)
	orderGroup.Post("/:id/validate", orderHandler.Validate)
	orderGroup.Post("/:id/cancel", orderHandler.Cancel)

	// Recepciones y expediciones: solo admin y operarios de almacén
	fulfillmentHandler := NewFulfillmentHandler(deps.FulfillmentUC)
	warehouseOnly := RequireRole(entity.RoleAdmin, entity.RoleStock)
	orderGroup.Post("/:id/receptions", warehouseOnly, fulfillmentHandler.ReceiveItems)
	orderGroup.Post("/:id/shipments", warehouseOnly, fulfillmentHandler.ShipItems)

	// Stock movements (protegido, solo lectura)
	stockGroup := protected.Group("/stock")
	movementHandler := NewMovementHandler(deps.MovementRepo)
	stockGroup.Get("/movements", movementHandler.List)

	// Products (protegido)
	productGroup := protected.Group("/products")
	productHandler := NewProductHandler(deps.CatalogUC)
	productGroup.Post("/", RequireRole(entity.RoleAdmin, entity.RoleCommerce), productHandler.Create)
	productGroup.Get("/", productHandler.List)
	productGroup.Get("/:id", productHandler.GetByID)
}
