package navigation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/rapidxcel-logistics/internal/domain/entity"
	"github.com/jhoicas/rapidxcel-logistics/internal/domain/navigation"
)

func authenticatedAs(role entity.Role) entity.SessionState {
	return entity.Authenticated(&entity.User{ID: "u-1", Role: role})
}

func TestDecide_SinSesionRedirigeAPublica(t *testing.T) {
	d := navigation.Decide(entity.Unauthenticated(), "/dashboard/overview")
	assert.Equal(t, navigation.RedirectPublic, d.Kind)
	assert.Equal(t, "/", d.Location)
}

func TestDecide_ResolviendoMuestraCarga(t *testing.T) {
	hint := &entity.User{ID: "u-1", Role: entity.RoleInventoryManager}
	d := navigation.Decide(entity.Resolving(hint), "/dashboard/stock-management")
	assert.Equal(t, navigation.Loading, d.Kind, "la pista no habilita contenido protegido")
}

func TestDecide_CustomerEnRutaDeCourierRedirigeAOverview(t *testing.T) {
	d := navigation.Decide(authenticatedAs(entity.RoleCustomer), "/dashboard/courier-service")
	assert.Equal(t, navigation.RedirectLanding, d.Kind)
	assert.Equal(t, "/dashboard/overview", d.Location)
}

func TestDecide_RutaHabilitada(t *testing.T) {
	d := navigation.Decide(authenticatedAs(entity.RoleSupplier), "/dashboard/supply-orders/")
	assert.Equal(t, navigation.Render, d.Kind)
	assert.Equal(t, navigation.RouteSupplyOrders, d.Route)

	d = navigation.Decide(authenticatedAs(entity.RoleSupplier), "/dashboard/products")
	assert.Equal(t, navigation.Render, d.Kind, "Products del Supplier tiene ruta")
}

func TestDecide_RaizYRutaInexistenteVanAlLanding(t *testing.T) {
	for _, p := range []string{"/dashboard", "/dashboard/", "/dashboard/no-existe"} {
		d := navigation.Decide(authenticatedAs(entity.RoleCourierService), p)
		assert.Equal(t, navigation.RedirectLanding, d.Kind, p)
		assert.Equal(t, navigation.LandingPath, d.Location, p)
	}
}

func TestDecide_OverviewSiempreParaRolConocido(t *testing.T) {
	for _, role := range entity.AllRoles() {
		d := navigation.Decide(authenticatedAs(role), "/dashboard/overview")
		assert.Equal(t, navigation.Render, d.Kind, role.String())
	}
}

func TestDecide_AutenticadoConRolDesconocidoFallaCerrado(t *testing.T) {
	d := navigation.Decide(authenticatedAs(entity.RoleUnknown), "/dashboard/overview")
	assert.Equal(t, navigation.RedirectPublic, d.Kind)
}
