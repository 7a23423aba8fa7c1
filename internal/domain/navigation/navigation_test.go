package navigation_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/rapidxcel-logistics/internal/domain/entity"
	"github.com/jhoicas/rapidxcel-logistics/internal/domain/navigation"
)

func labels(entries []navigation.Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Label)
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Barra lateral
// ──────────────────────────────────────────────────────────────────────────────

func TestEntriesFor_TablaPorRol(t *testing.T) {
	cases := map[entity.Role][]string{
		entity.RoleCourierService:   {"Overview", "Courier Service", "Logout"},
		entity.RoleInventoryManager: {"Overview", "Suppliers Management", "Stock Management", "Stock Replenishment", "My Orders", "Logout"},
		entity.RoleSupplier:         {"Overview", "Products", "Supply Orders", "Logout"},
		entity.RoleCustomer:         {"Overview", "Products", "Notifications", "Logout"},
		entity.RoleUnknown:          {"Overview", "Logout"},
		entity.Role("Admin"):        {"Overview", "Logout"},
	}
	for role, want := range cases {
		t.Run(role.String(), func(t *testing.T) {
			got := labels(navigation.EntriesFor(role))
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("EntriesFor(%q) mismatch (-want +got):\n%s", role, diff)
			}
		})
	}
}

func TestEntriesFor_OrdenEstable(t *testing.T) {
	for _, role := range entity.AllRoles() {
		first := navigation.EntriesFor(role)
		for i := 0; i < 5; i++ {
			if diff := cmp.Diff(first, navigation.EntriesFor(role)); diff != "" {
				t.Fatalf("EntriesFor(%q) no es determinista:\n%s", role, diff)
			}
		}
	}
}

func TestEntriesFor_OverviewPrimeroLogoutUltimo(t *testing.T) {
	for _, role := range append(entity.AllRoles(), entity.RoleUnknown) {
		entries := navigation.EntriesFor(role)
		require.GreaterOrEqual(t, len(entries), 2)
		assert.Equal(t, navigation.Entry{Label: "Overview", Path: "/dashboard/overview"}, entries[0])
		assert.Equal(t, navigation.Entry{Label: "Logout", Path: "/logout"}, entries[len(entries)-1])
	}
}

func TestEntriesFor_Supplier(t *testing.T) {
	want := []navigation.Entry{
		{Label: "Overview", Path: "/dashboard/overview"},
		{Label: "Products", Path: "/dashboard/products"},
		{Label: "Supply Orders", Path: "/dashboard/supply-orders"},
		{Label: "Logout", Path: "/logout"},
	}
	if diff := cmp.Diff(want, navigation.EntriesFor(entity.RoleSupplier)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Rutas
// ──────────────────────────────────────────────────────────────────────────────

func TestRoutesFor_Supplier(t *testing.T) {
	got := navigation.RoutesFor(entity.RoleSupplier).Keys()
	want := []navigation.RouteKey{navigation.RouteOverview, navigation.RouteProducts, navigation.RouteSupplyOrders}
	assert.Equal(t, want, got)
}

func TestRoutesFor_RolDesconocidoVacio(t *testing.T) {
	assert.Empty(t, navigation.RoutesFor(entity.RoleUnknown))
	assert.Empty(t, navigation.RoutesFor(entity.Role("supplier")), "el rol debe venir normalizado")
}

// Cada entrada visible (salvo Overview/Logout) tiene su ruta habilitada y viceversa.
func TestNavegacionYRutas_Biyeccion(t *testing.T) {
	for _, role := range entity.AllRoles() {
		t.Run(role.String(), func(t *testing.T) {
			entries := navigation.EntriesFor(role)
			fromNav := map[navigation.RouteKey]int{}
			for _, e := range entries[1 : len(entries)-1] {
				key, ok := navigation.RouteOf(e.Path)
				require.True(t, ok, "la entrada %q debe apuntar a una ruta protegida", e.Label)
				fromNav[key]++
			}

			routes := navigation.RoutesFor(role)
			for key, n := range fromNav {
				assert.Equal(t, 1, n, "ruta %q duplicada en la barra", key)
				assert.True(t, routes.Has(key), "entrada sin ruta habilitada: %q", key)
			}
			for _, key := range routes.Keys() {
				if key == navigation.RouteOverview {
					continue
				}
				assert.Contains(t, fromNav, key, "ruta habilitada sin entrada visible: %q", key)
			}
		})
	}
}

// Todo rol del conjunto cerrado tiene fila en la tabla.
func TestTablaExhaustiva(t *testing.T) {
	for _, role := range entity.AllRoles() {
		assert.Greater(t, len(navigation.EntriesFor(role)), 2, "rol sin entradas: %q", role)
		assert.Greater(t, len(navigation.RoutesFor(role)), 1, "rol sin rutas: %q", role)
	}
}

func TestRouteOf(t *testing.T) {
	cases := []struct {
		path string
		key  navigation.RouteKey
		ok   bool
	}{
		{"/dashboard/overview", navigation.RouteOverview, true},
		{"/dashboard/products/order-preview", navigation.RouteProducts, true},
		{"/dashboard/stock-management/report.pdf", navigation.RouteStockManagement, true},
		{"/dashboard/unknown", "", false},
		{"/dashboard", "", false},
		{"/logout", "", false},
		{"/dashboard/productsx", "", false},
	}
	for _, tc := range cases {
		key, ok := navigation.RouteOf(tc.path)
		assert.Equal(t, tc.ok, ok, tc.path)
		assert.Equal(t, tc.key, key, tc.path)
	}
}
