package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/rapidxcel-logistics/internal/application/auth"
	"github.com/jhoicas/rapidxcel-logistics/internal/application/inventory"
	"github.com/jhoicas/rapidxcel-logistics/internal/domain/entity"
	"github.com/jhoicas/rapidxcel-logistics/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	StockUC      *inventory.StockUseCase // nil = sin /inventory
	CookieSecure bool
	Logger       *logger.Logger
}

// Router registra las rutas de la API de identidad.
func Router(app *fiber.App, deps RouterDeps) {
	authHandler := NewAuthHandler(deps.AuthUC, deps.CookieSecure, deps.Logger)

	// Auth (público)
	authGroup := app.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Auth (requiere sesión)
	requireSession := AuthMiddleware(deps.AuthUC)
	authGroup.Post("/logout", requireSession, authHandler.Logout)
	authGroup.Get("/profile", requireSession, authHandler.Profile)

	if deps.StockUC != nil {
		inventoryHandler := NewInventoryHandler(deps.StockUC, deps.Logger)
		app.Get("/inventory/stocks", requireSession, RequireRole(entity.RoleInventoryManager), inventoryHandler.ListStocks)
	}
}
