package web_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/rapidxcel-logistics/internal/application/auth"
	"github.com/jhoicas/rapidxcel-logistics/internal/application/dto"
	"github.com/jhoicas/rapidxcel-logistics/internal/application/profile"
	"github.com/jhoicas/rapidxcel-logistics/internal/application/session"
	"github.com/jhoicas/rapidxcel-logistics/internal/domain"
	"github.com/jhoicas/rapidxcel-logistics/internal/domain/entity"
	"github.com/jhoicas/rapidxcel-logistics/internal/infrastructure/backend"
	"github.com/jhoicas/rapidxcel-logistics/internal/infrastructure/memory"
	"github.com/jhoicas/rapidxcel-logistics/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/rapidxcel-logistics/internal/interfaces/http"
	"github.com/jhoicas/rapidxcel-logistics/internal/interfaces/web"
	"github.com/jhoicas/rapidxcel-logistics/internal/observability"
)

// ──────────────────────────────────────────────────────────────────────────────
// Harness: API de identidad real (memoria) + dashboard
// ──────────────────────────────────────────────────────────────────────────────

type harness struct {
	app         *fiber.App
	hints       *memory.HintRepo
	sessions    *session.Manager
	collections *memory.CollectionRepo
	client      *backend.Client
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	cols := memory.NewCollectionRepository()
	uc := auth.NewAuthUseCase(memory.NewUserRepository(), cols, memory.NewRevocationRepository(),
		auth.JWTConfig{Secret: "test-secret", ExpMinutes: 30, Issuer: "rx-test"})
	api := fiber.New()
	apphttp.Router(api, apphttp.RouterDeps{AuthUC: uc})
	srv := httptest.NewServer(adaptor.FiberApp(api))
	t.Cleanup(srv.Close)

	client := backend.NewClient(srv.URL, 5*time.Second, nil)
	h := &harness{hints: memory.NewHintRepository(), collections: cols, client: client}
	h.sessions = session.NewManager(h.hints, time.Hour, nil)
	h.app = dashboard(h.sessions, client, client)
	return h
}

func dashboard(sessions *session.Manager, identity profile.IdentityChecker, be web.Backend) *fiber.App {
	metrics := observability.NewMetrics()
	handler := web.NewHandler(web.HandlerDeps{
		Resolver:  profile.NewResolver(identity, metrics, nil),
		Backend:   be,
		Reports:   pdf.NewStockReportGenerator(5),
		Decisions: metrics,
	})
	app := fiber.New()
	web.Router(app, web.RouterDeps{Handler: handler, Sessions: sessions, Metrics: metrics.Handler()})
	return app
}

// browser cookies acumuladas entre requests.
type browser map[string]string

func (b browser) do(t *testing.T, app *fiber.App, method, path string, form url.Values) *http.Response {
	t.Helper()
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for k, v := range b {
		req.AddCookie(&http.Cookie{Name: k, Value: v})
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	for _, c := range resp.Cookies() {
		if c.Value == "" {
			delete(b, c.Name)
		} else {
			b[c.Name] = c.Value
		}
	}
	return resp
}

func (h *harness) signUpAndLogin(t *testing.T, role entity.Role) browser {
	t.Helper()
	email := strings.ReplaceAll(strings.ToLower(string(role)), " ", "-") + "@rx.test"
	b := browser{}
	resp := b.do(t, h.app, http.MethodPost, "/register", url.Values{
		"name": {"Test " + string(role)}, "email": {email}, "password": {"password123"}, "role": {string(role)},
	})
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = b.do(t, h.app, http.MethodPost, "/login", url.Values{"email": {email}, "password": {"password123"}})
	resp.Body.Close()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/dashboard/overview", resp.Header.Get("Location"))
	require.NotEmpty(t, b[web.TokenCookie])
	require.NotEmpty(t, b[web.SessionCookie])
	return b
}

func bodyOf(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(raw)
}

// ──────────────────────────────────────────────────────────────────────────────
// Resolución y redirecciones
// ──────────────────────────────────────────────────────────────────────────────

func TestDashboard_SinSesionRedirigeAEntradaPublica(t *testing.T) {
	h := newHarness(t)
	b := browser{}
	resp := b.do(t, h.app, http.MethodGet, "/dashboard/overview", nil)
	resp.Body.Close()

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))
	_, ok := h.sessions.Open(b[web.SessionCookie]).Get()
	assert.False(t, ok, "store vacío")
}

func TestDashboard_PistaPresenteYCredencialInvalidaLimpia(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	sid := "5f0c7c1e-1111-4c4c-9d9d-000000000001"
	require.NoError(t, h.hints.Set(ctx, "user:"+sid, []byte(`{"id":"u1","role":"Supplier"}`), 0))

	b := browser{web.SessionCookie: sid, web.TokenCookie: "token-vencido"}
	resp := b.do(t, h.app, http.MethodGet, "/dashboard/products", nil)
	resp.Body.Close()

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))
	assert.Equal(t, 0, h.hints.Len(), "la pista obsoleta se borra")
}

func TestDashboard_SupplierVeSuBarraYSusRutas(t *testing.T) {
	h := newHarness(t)
	b := h.signUpAndLogin(t, entity.RoleSupplier)

	resp := b.do(t, h.app, http.MethodGet, "/dashboard/overview", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	html := bodyOf(t, resp)
	assert.Contains(t, html, `href="/dashboard/products"`)
	assert.Contains(t, html, `href="/dashboard/supply-orders"`)
	assert.Contains(t, html, `href="/logout"`)
	assert.NotContains(t, html, `href="/dashboard/notifications"`)
	assert.Less(t, strings.Index(html, "/dashboard/products"), strings.Index(html, "/dashboard/supply-orders"))

	resp = b.do(t, h.app, http.MethodGet, "/dashboard/products", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, bodyOf(t, resp), "No products.")

	resp = b.do(t, h.app, http.MethodGet, "/dashboard/stock-management", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/dashboard/overview", resp.Header.Get("Location"))
}

func TestDashboard_CourierVeSusEntregas(t *testing.T) {
	h := newHarness(t)
	b := h.signUpAndLogin(t, entity.RoleCourierService)
	me, err := h.client.Profile(context.Background(), b[web.TokenCookie])
	require.NoError(t, err)
	h.collections.SeedCourierOrders(me.ID, entity.Order{
		ID: "ord-1", ShippingAddress: "12 Dock Rd", ConsignmentWeight: decimal.RequireFromString("3.5"),
		ShippingCost: decimal.RequireFromString("7.25"), Status: entity.OrderStatusInTransit,
		Items: []entity.OrderItem{{StockID: "SKU-1", Name: "Cajas", Quantity: 2}},
	})
	h.collections.SeedCourierOrders("otro-courier", entity.Order{ID: "ord-ajena", ShippingAddress: "99 Elsewhere"})

	resp := b.do(t, h.app, http.MethodGet, "/dashboard/courier-service", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	html := bodyOf(t, resp)
	assert.Contains(t, html, "12 Dock Rd")
	assert.Contains(t, html, "3.50 kg")
	assert.Contains(t, html, "Cajas")
	assert.Contains(t, html, "$7.25")
	assert.Contains(t, html, "In Transit")
	assert.NotContains(t, html, "99 Elsewhere")
}

func TestDashboard_ManagerVeDirectorioDeProveedores(t *testing.T) {
	h := newHarness(t)
	h.collections.SeedSuppliers(entity.Supplier{ID: "s1", Name: "Acme Pallets", Email: "acme@rx.test", PhoneNumber: "555-0100", Address: "1 Port St"})
	b := h.signUpAndLogin(t, entity.RoleInventoryManager)

	resp := b.do(t, h.app, http.MethodGet, "/dashboard/suppliers", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	html := bodyOf(t, resp)
	assert.Contains(t, html, "Acme Pallets")
	assert.Contains(t, html, "acme@rx.test")
	assert.Contains(t, html, "1 Port St")
}

func TestDashboard_CustomerEnRutaCourierVaAlOverview(t *testing.T) {
	h := newHarness(t)
	b := h.signUpAndLogin(t, entity.RoleCustomer)

	for _, path := range []string{"/dashboard/courier-service", "/dashboard/courier-service/123", "/dashboard/no-existe", "/dashboard"} {
		resp := b.do(t, h.app, http.MethodGet, path, nil)
		resp.Body.Close()
		assert.Equal(t, http.StatusSeeOther, resp.StatusCode, path)
		assert.Equal(t, "/dashboard/overview", resp.Header.Get("Location"), path)
	}
}

func TestDashboard_ManagerDescargaReporte(t *testing.T) {
	h := newHarness(t)
	b := h.signUpAndLogin(t, entity.RoleInventoryManager)

	resp := b.do(t, h.app, http.MethodGet, web.ReportPath, nil)
	body := bodyOf(t, resp)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.True(t, strings.HasPrefix(body, "%PDF"))
}

func TestDashboard_ReporteBloqueadoParaOtrosRoles(t *testing.T) {
	h := newHarness(t)
	b := h.signUpAndLogin(t, entity.RoleCourierService)

	resp := b.do(t, h.app, http.MethodGet, web.ReportPath, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/dashboard/overview", resp.Header.Get("Location"))
}

func TestSession_JSON(t *testing.T) {
	h := newHarness(t)
	b := h.signUpAndLogin(t, entity.RoleInventoryManager)

	resp := b.do(t, h.app, http.MethodGet, "/session", nil)
	defer resp.Body.Close()
	var view web.SessionView
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&view))

	assert.Equal(t, "authenticated", view.State)
	assert.Equal(t, "Inventory Manager", view.Role)
	assert.Equal(t, []string{"overview", "suppliers", "stock-management", "stock-replenishment", "orders"}, view.Routes)
	require.Len(t, view.Navigation, 6)
	assert.Equal(t, "Logout", view.Navigation[5].Label)
}

func TestSession_JSONSinSesion(t *testing.T) {
	h := newHarness(t)
	resp := browser{}.do(t, h.app, http.MethodGet, "/session", nil)
	defer resp.Body.Close()
	var view web.SessionView
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&view))
	assert.Equal(t, "unauthenticated", view.State)
	assert.Empty(t, view.Routes)
}

// ──────────────────────────────────────────────────────────────────────────────
// Login / logout
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_CredencialesInvalidasMuestraMensaje(t *testing.T) {
	h := newHarness(t)
	b := browser{}
	resp := b.do(t, h.app, http.MethodPost, "/login", url.Values{"email": {"nadie@rx.test"}, "password": {"x"}})

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, bodyOf(t, resp), "Invalid credentials")
	assert.Empty(t, b[web.TokenCookie])
}

func TestLogout_RevocaYLimpia(t *testing.T) {
	h := newHarness(t)
	b := h.signUpAndLogin(t, entity.RoleCustomer)
	token := b[web.TokenCookie]

	resp := b.do(t, h.app, http.MethodGet, "/dashboard/overview", nil)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, 1, h.hints.Len())

	resp = b.do(t, h.app, http.MethodPost, "/logout", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))
	assert.Empty(t, b[web.TokenCookie])
	assert.Equal(t, 0, h.hints.Len())

	_, err := h.client.Profile(context.Background(), token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized, "el backend revocó el token")
}

// failingBackend el backend rechaza el logout.
type failingBackend struct{}

func (failingBackend) Login(context.Context, dto.LoginRequest) (*dto.LoginResponse, error) {
	return nil, domain.ErrUpstream
}
func (failingBackend) Register(context.Context, dto.RegisterRequest) (string, error) {
	return "", domain.ErrUpstream
}
func (failingBackend) Logout(context.Context, string) error { return errors.New("connection refused") }

type fixedIdentity struct{ user *entity.User }

func (f fixedIdentity) Profile(context.Context, string) (*entity.User, error) { return f.user, nil }

func TestLogout_LimpiaAunqueElBackendFalle(t *testing.T) {
	hints := memory.NewHintRepository()
	sessions := session.NewManager(hints, time.Hour, nil)
	app := dashboard(sessions, fixedIdentity{&entity.User{ID: "u1", Role: entity.RoleCustomer}}, failingBackend{})

	sid := "5f0c7c1e-1111-4c4c-9d9d-000000000002"
	b := browser{web.SessionCookie: sid, web.TokenCookie: "tok"}
	resp := b.do(t, app, http.MethodGet, "/dashboard/notifications", nil)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = b.do(t, app, http.MethodGet, "/logout", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))
	_, ok := sessions.Open(sid).Get()
	assert.False(t, ok)
	assert.Equal(t, 0, hints.Len())
}

func TestMetrics_Expuestas(t *testing.T) {
	h := newHarness(t)
	resp := browser{}.do(t, h.app, http.MethodGet, "/dashboard/overview", nil)
	resp.Body.Close()

	resp = browser{}.do(t, h.app, http.MethodGet, "/metrics", nil)
	body := bodyOf(t, resp)
	assert.Contains(t, body, `rx_dashboard_resolutions_total{outcome="unauthenticated"} 1`)
	assert.Contains(t, body, `rx_dashboard_route_decisions_total{decision="redirect_public"} 1`)
}

// gatedIdentity retiene cada verificación hasta que el test la libera.
type gatedIdentity struct {
	entered map[string]chan struct{}
	release map[string]chan *entity.User
}

func newGatedIdentity(creds ...string) *gatedIdentity {
	g := &gatedIdentity{entered: map[string]chan struct{}{}, release: map[string]chan *entity.User{}}
	for _, c := range creds {
		g.entered[c] = make(chan struct{})
		g.release[c] = make(chan *entity.User, 1)
	}
	return g
}

func (g *gatedIdentity) Profile(ctx context.Context, credential string) (*entity.User, error) {
	release, ok := g.release[credential]
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	close(g.entered[credential])
	select {
	case u := <-release:
		if u == nil {
			return nil, domain.ErrUnauthorized
		}
		return u, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func sendAsync(app *fiber.App, sid, token string) <-chan *http.Response {
	out := make(chan *http.Response, 1)
	go func() {
		req := httptest.NewRequest(http.MethodGet, "/dashboard/overview", nil)
		req.AddCookie(&http.Cookie{Name: web.SessionCookie, Value: sid})
		req.AddCookie(&http.Cookie{Name: web.TokenCookie, Value: token})
		resp, err := app.Test(req, -1)
		if err != nil {
			resp = nil
		}
		out <- resp
	}()
	return out
}

func waitFor(t *testing.T, ch <-chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(5 * time.Second):
		t.Fatal("la verificación no llegó al backend")
	}
}

func awaitResponse(t *testing.T, ch <-chan *http.Response) *http.Response {
	t.Helper()
	select {
	case resp := <-ch:
		require.NotNil(t, resp)
		return resp
	case <-time.After(5 * time.Second):
		t.Fatal("sin respuesta del dashboard")
		return nil
	}
}

// Una verificación vieja que termina mientras otra más nueva sin pista sigue
// en vuelo deja la sesión en Resolving sin usuario: se muestra la página de
// carga, nunca contenido protegido ni un error.
func TestDashboard_ResolucionSuperadaSinPistaMuestraCarga(t *testing.T) {
	identity := newGatedIdentity("tok-a", "tok-c")
	sessions := session.NewManager(memory.NewHintRepository(), time.Hour, nil)
	app := dashboard(sessions, identity, failingBackend{})
	sid := "5f0c7c1e-1111-4c4c-9d9d-000000000003"

	first := sendAsync(app, sid, "tok-a")
	waitFor(t, identity.entered["tok-a"])

	rejected := awaitResponse(t, sendAsync(app, sid, "tok-b"))
	rejected.Body.Close()
	require.Equal(t, http.StatusSeeOther, rejected.StatusCode)

	latest := sendAsync(app, sid, "tok-c")
	waitFor(t, identity.entered["tok-c"])

	identity.release["tok-a"] <- &entity.User{ID: "u1", Name: "Ana", Role: entity.RoleSupplier}
	resp := awaitResponse(t, first)
	body := bodyOf(t, resp)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Verifying your session")
	assert.NotContains(t, body, "Last signed in")
	assert.NotContains(t, body, `class="sidebar"`)

	identity.release["tok-c"] <- nil
	resp = awaitResponse(t, latest)
	resp.Body.Close()
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))
}
