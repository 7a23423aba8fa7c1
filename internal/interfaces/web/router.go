package web

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/rapidxcel-logistics/internal/application/session"
	"github.com/jhoicas/rapidxcel-logistics/internal/domain/navigation"
)

// RouterDeps dependencias del router del dashboard.
type RouterDeps struct {
	Handler      *Handler
	Sessions     *session.Manager
	CookieSecure bool
	Metrics      fiber.Handler // nil = sin /metrics
	AppName      string
}

// Router registra las rutas del dashboard.
func Router(app *fiber.App, deps RouterDeps) {
	h := deps.Handler

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName, "sessions": deps.Sessions.Len()})
	})
	if deps.Metrics != nil {
		app.Get("/metrics", deps.Metrics)
	}

	withSession := app.Group("", SessionMiddleware(deps.Sessions, deps.CookieSecure))

	// Público
	withSession.Get(navigation.PublicEntryPath, h.Home)
	withSession.Post("/login", h.Login)
	withSession.Post("/register", h.Register)
	withSession.Get(navigation.LogoutPath, h.Logout)
	withSession.Post(navigation.LogoutPath, h.Logout)
	withSession.Get("/session", h.Session)

	// Protegido: todo pasa por el resolver y navigation.Decide
	withSession.Get(ReportPath, h.StockReport)
	withSession.Get(navigation.DashboardPrefix, h.Dashboard)
	withSession.Get(navigation.DashboardPrefix+"/*", h.Dashboard)
}
