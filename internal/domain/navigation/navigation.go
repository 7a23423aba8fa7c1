// Package navigation deriva, a partir del rol, la barra lateral del dashboard
// y el conjunto de rutas protegidas alcanzables. Todo es puro: sin estado ni
// efectos, recalculado en cada render.
package navigation

import (
	"strings"

	"github.com/jhoicas/rapidxcel-logistics/internal/domain/entity"
)

// Rutas fijas.
const (
	PublicEntryPath = "/"
	DashboardPrefix = "/dashboard"
	LandingPath     = DashboardPrefix + "/overview"
	LogoutPath      = "/logout"
)

// RouteKey identifica un subárbol de rutas protegidas (/dashboard/<key>/...).
type RouteKey string

const (
	RouteOverview           RouteKey = "overview"
	RouteSuppliers          RouteKey = "suppliers"
	RouteStockManagement    RouteKey = "stock-management"
	RouteStockReplenishment RouteKey = "stock-replenishment"
	RouteOrders             RouteKey = "orders"
	RouteProducts           RouteKey = "products"
	RouteSupplyOrders       RouteKey = "supply-orders"
	RouteNotifications      RouteKey = "notifications"
	RouteCourierService     RouteKey = "courier-service"
)

// AllRoutes todas las rutas protegidas en orden declarado.
func AllRoutes() []RouteKey {
	return []RouteKey{
		RouteOverview,
		RouteSuppliers,
		RouteStockManagement,
		RouteStockReplenishment,
		RouteOrders,
		RouteProducts,
		RouteSupplyOrders,
		RouteNotifications,
		RouteCourierService,
	}
}

// Path ruta absoluta del subárbol.
func (k RouteKey) Path() string {
	return DashboardPrefix + "/" + string(k)
}

// Entry ítem de la barra lateral.
type Entry struct {
	Label string `json:"label"`
	Path  string `json:"path"`
}

var (
	overviewEntry = Entry{Label: "Overview", Path: LandingPath}
	logoutEntry   = Entry{Label: "Logout", Path: LogoutPath}
)

// feature asocia etiqueta de navegación y ruta: una sola tabla alimenta
// EntriesFor y RoutesFor, así no pueden desalinearse.
type feature struct {
	label string
	route RouteKey
}

// featuresFor tabla rol -> funcionalidades, en orden de la barra lateral.
func featuresFor(role entity.Role) []feature {
	switch role {
	case entity.RoleCourierService:
		return []feature{
			{"Courier Service", RouteCourierService},
		}
	case entity.RoleInventoryManager:
		return []feature{
			{"Suppliers Management", RouteSuppliers},
			{"Stock Management", RouteStockManagement},
			{"Stock Replenishment", RouteStockReplenishment},
			{"My Orders", RouteOrders},
		}
	case entity.RoleSupplier:
		return []feature{
			{"Products", RouteProducts},
			{"Supply Orders", RouteSupplyOrders},
		}
	case entity.RoleCustomer:
		return []feature{
			{"Products", RouteProducts},
			{"Notifications", RouteNotifications},
		}
	case entity.RoleUnknown:
		return nil
	default:
		return nil
	}
}

// EntriesFor barra lateral del rol: Overview, entradas propias del rol en
// orden fijo y Logout al final. Rol desconocido -> solo Overview y Logout.
func EntriesFor(role entity.Role) []Entry {
	features := featuresFor(role)
	entries := make([]Entry, 0, len(features)+2)
	entries = append(entries, overviewEntry)
	for _, f := range features {
		entries = append(entries, Entry{Label: f.label, Path: f.route.Path()})
	}
	return append(entries, logoutEntry)
}

// RoutesFor rutas protegidas habilitadas para el rol. Overview está siempre
// presente para un rol conocido; rol desconocido -> conjunto vacío.
func RoutesFor(role entity.Role) RouteSet {
	if !role.Known() {
		return RouteSet{}
	}
	features := featuresFor(role)
	set := make(RouteSet, len(features)+1)
	set[RouteOverview] = struct{}{}
	for _, f := range features {
		set[f.route] = struct{}{}
	}
	return set
}

// RouteSet conjunto de rutas habilitadas.
type RouteSet map[RouteKey]struct{}

// Has informa si la ruta está habilitada.
func (s RouteSet) Has(k RouteKey) bool {
	_, ok := s[k]
	return ok
}

// Keys rutas del conjunto en orden declarado (AllRoutes).
func (s RouteSet) Keys() []RouteKey {
	keys := make([]RouteKey, 0, len(s))
	for _, k := range AllRoutes() {
		if s.Has(k) {
			keys = append(keys, k)
		}
	}
	return keys
}

// RouteOf identifica a qué subárbol protegido pertenece un path.
// Devuelve false si el path no está bajo /dashboard/<key>.
func RouteOf(path string) (RouteKey, bool) {
	rest, ok := strings.CutPrefix(path, DashboardPrefix+"/")
	if !ok {
		return "", false
	}
	segment, _, _ := strings.Cut(rest, "/")
	for _, k := range AllRoutes() {
		if string(k) == segment {
			return k, true
		}
	}
	return "", false
}
