package navigation

import (
	"strings"

	"github.com/jhoicas/rapidxcel-logistics/internal/domain/entity"
)

// DecisionKind resultado de evaluar una navegación contra el estado de sesión.
type DecisionKind int

const (
	// Render la ruta está habilitada: se muestra.
	Render DecisionKind = iota
	// Loading la verificación de identidad sigue en vuelo.
	Loading
	// RedirectPublic sin sesión: a la página pública.
	RedirectPublic
	// RedirectLanding ruta deshabilitada o inexistente: al Overview.
	RedirectLanding
)

func (k DecisionKind) String() string {
	switch k {
	case Render:
		return "render"
	case Loading:
		return "loading"
	case RedirectPublic:
		return "redirect_public"
	default:
		return "redirect_landing"
	}
}

// Decision qué hacer con una navegación. Location solo aplica a redirecciones.
type Decision struct {
	Kind     DecisionKind
	Route    RouteKey
	Location string
}

// Decide evalúa un path protegido contra el estado actual de la sesión.
// Nunca produce página en blanco: todo lo que no se renderiza redirige.
func Decide(state entity.SessionState, path string) Decision {
	switch state.Status {
	case entity.StatusResolving:
		return Decision{Kind: Loading}
	case entity.StatusAuthenticated:
	default:
		return Decision{Kind: RedirectPublic, Location: PublicEntryPath}
	}

	role := state.Role()
	if !role.Known() {
		return Decision{Kind: RedirectPublic, Location: PublicEntryPath}
	}

	clean := "/" + strings.Trim(path, "/")
	key, ok := RouteOf(clean)
	if !ok || !RoutesFor(role).Has(key) {
		return Decision{Kind: RedirectLanding, Location: LandingPath}
	}
	return Decision{Kind: Render, Route: key}
}
