package web

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	g "maragu.dev/gomponents"

	"github.com/jhoicas/rapidxcel-logistics/internal/application/dto"
	"github.com/jhoicas/rapidxcel-logistics/internal/application/profile"
	"github.com/jhoicas/rapidxcel-logistics/internal/domain"
	"github.com/jhoicas/rapidxcel-logistics/internal/domain/entity"
	"github.com/jhoicas/rapidxcel-logistics/internal/domain/navigation"
	"github.com/jhoicas/rapidxcel-logistics/internal/infrastructure/backend"
	"github.com/jhoicas/rapidxcel-logistics/pkg/logger"
)

// Backend operaciones de cuenta del backend de identidad.
// Lo implementa *backend.Client.
type Backend interface {
	Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error)
	Register(ctx context.Context, in dto.RegisterRequest) (string, error)
	Logout(ctx context.Context, credential string) error
}

// ReportGenerator reporte de inventario en PDF.
type ReportGenerator interface {
	GenerateStockReport(ctx context.Context, manager *entity.User, stocks []entity.Stock, at time.Time) ([]byte, error)
	LowStock() int
}

// DecisionRecorder cuenta decisiones de ruteo.
type DecisionRecorder interface {
	ObserveDecision(decision string)
}

// Handler páginas del dashboard.
type Handler struct {
	resolver     *profile.Resolver
	backend      Backend
	reports      ReportGenerator
	decisions    DecisionRecorder
	cookieSecure bool
	log          *logger.Logger
}

// HandlerDeps dependencias del handler.
type HandlerDeps struct {
	Resolver     *profile.Resolver
	Backend      Backend
	Reports      ReportGenerator
	Decisions    DecisionRecorder
	CookieSecure bool
	Logger       *logger.Logger
}

// NewHandler construye el handler.
func NewHandler(deps HandlerDeps) *Handler {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	return &Handler{
		resolver:     deps.Resolver,
		backend:      deps.Backend,
		reports:      deps.Reports,
		decisions:    deps.Decisions,
		cookieSecure: deps.CookieSecure,
		log:          log.Named("web"),
	}
}

func render(c *fiber.Ctx, status int, node g.Node) error {
	c.Status(status).Type("html", "utf-8")
	return node.Render(c)
}

// Home GET /: entrada pública.
func (h *Handler) Home(c *fiber.Ctx) error {
	return render(c, fiber.StatusOK, publicPage(flash{Message: c.Query("msg")}))
}

// Login POST /login: reenvía al backend; si autentica guarda la credencial
// en rx_token y entra al dashboard.
func (h *Handler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil || in.Email == "" || in.Password == "" {
		return render(c, fiber.StatusBadRequest, publicPage(flash{Message: "Email and password are required", Error: true}))
	}
	out, err := h.backend.Login(c.UserContext(), in)
	if err != nil {
		h.log.Info().Err(err).Msg("login rechazado")
		return render(c, statusOf(err), publicPage(flash{Message: backend.MessageOf(err, "Login failed, try again later"), Error: true}))
	}
	setTokenCookie(c, out.Token, out.ExpiresAt, h.cookieSecure)
	return c.Redirect(navigation.LandingPath, fiber.StatusSeeOther)
}

// Register POST /register.
func (h *Handler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return render(c, fiber.StatusBadRequest, publicPage(flash{Message: "Request payload is missing", Error: true}))
	}
	msg, err := h.backend.Register(c.UserContext(), in)
	if err != nil {
		h.log.Info().Err(err).Msg("registro rechazado")
		return render(c, statusOf(err), publicPage(flash{Message: backend.MessageOf(err, "Registration failed, try again later"), Error: true}))
	}
	return render(c, fiber.StatusOK, publicPage(flash{Message: msg + ". You can now log in."}))
}

// Logout GET|POST /logout: avisa al backend (sin importar la respuesta),
// limpia la sesión y la credencial, y vuelve a la entrada pública.
func (h *Handler) Logout(c *fiber.Ctx) error {
	store := StoreOf(c)
	if cred := c.Cookies(TokenCookie); cred != "" {
		if err := h.backend.Logout(c.UserContext(), cred); err != nil {
			h.log.Warn().Err(err).Str("session", store.ID()).Msg("logout en backend fallido; se limpia igual")
		}
	}
	if err := store.Clear(context.WithoutCancel(c.UserContext())); err != nil {
		h.log.Error().Err(err).Str("session", store.ID()).Msg("limpiar pista de sesión")
	}
	clearTokenCookie(c, h.cookieSecure)
	return c.Redirect(navigation.PublicEntryPath, fiber.StatusSeeOther)
}

// resolve verifica identidad y decide qué hacer con el path pedido.
func (h *Handler) resolve(c *fiber.Ctx) (entity.SessionState, navigation.Decision) {
	store := StoreOf(c)
	state := h.resolver.Resolve(c.UserContext(), store, c.Cookies(TokenCookie))
	d := navigation.Decide(state, c.Path())
	if h.decisions != nil {
		h.decisions.ObserveDecision(d.Kind.String())
	}
	h.log.Debug().Str("session", store.ID()).Str("path", c.Path()).Str("decision", d.Kind.String()).Msg("navegación")
	return state, d
}

// follow responde las decisiones que no son Render.
func (h *Handler) follow(c *fiber.Ctx, state entity.SessionState, d navigation.Decision) error {
	switch d.Kind {
	case navigation.Loading:
		return render(c, fiber.StatusOK, loadingPage(state.User))
	case navigation.RedirectPublic, navigation.RedirectLanding:
		return c.Redirect(d.Location, fiber.StatusSeeOther)
	default:
		return c.Redirect(navigation.LandingPath, fiber.StatusSeeOther)
	}
}

// Dashboard GET /dashboard/*: página protegida del rol.
func (h *Handler) Dashboard(c *fiber.Ctx) error {
	state, d := h.resolve(c)
	if d.Kind != navigation.Render {
		return h.follow(c, state, d)
	}
	title, content := routePage(d.Route, state.User, h.reports.LowStock())
	return render(c, fiber.StatusOK, shell(state.User, d.Route, title, content...))
}

// StockReport GET /dashboard/stock-management/report.pdf.
func (h *Handler) StockReport(c *fiber.Ctx) error {
	state, d := h.resolve(c)
	if d.Kind != navigation.Render {
		return h.follow(c, state, d)
	}
	pdf, err := h.reports.GenerateStockReport(c.UserContext(), state.User, state.User.Stocks, time.Now())
	if err != nil {
		h.log.Error().Err(err).Msg("generar reporte de stock")
		return fiber.NewError(fiber.StatusInternalServerError, "no se pudo generar el reporte")
	}
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="stock-report.pdf"`)
	c.Type("pdf")
	return c.Send(pdf)
}

// SessionView JSON del estado de la sesión tras resolver: estado, rol,
// barra lateral y rutas habilitadas. No redirige.
type SessionView struct {
	State      string             `json:"state"`
	Role       string             `json:"role,omitempty"`
	Navigation []navigation.Entry `json:"navigation"`
	Routes     []string           `json:"routes"`
}

// Session GET /session.
func (h *Handler) Session(c *fiber.Ctx) error {
	state := h.resolver.Resolve(c.UserContext(), StoreOf(c), c.Cookies(TokenCookie))
	role := state.Role()
	view := SessionView{State: state.Status.String(), Navigation: []navigation.Entry{}, Routes: []string{}}
	if role.Known() {
		view.Role = string(role)
		view.Navigation = navigation.EntriesFor(role)
		for _, k := range navigation.RoutesFor(role).Keys() {
			view.Routes = append(view.Routes, string(k))
		}
	}
	return c.JSON(view)
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusBadGateway
	}
}
