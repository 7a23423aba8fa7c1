package entity

// SessionStatus estados de la sesión del dashboard.
type SessionStatus int

const (
	StatusUnauthenticated SessionStatus = iota
	StatusResolving
	StatusAuthenticated
)

func (s SessionStatus) String() string {
	switch s {
	case StatusResolving:
		return "resolving"
	case StatusAuthenticated:
		return "authenticated"
	default:
		return "unauthenticated"
	}
}

// SessionState estado actual de una sesión. En Resolving, User es la pista
// durable (puede ser nil) y nunca habilita contenido protegido.
type SessionState struct {
	Status SessionStatus
	User   *User
}

// Resolving estado mientras la verificación de identidad está en vuelo.
func Resolving(hint *User) SessionState {
	return SessionState{Status: StatusResolving, User: hint}
}

// Authenticated estado con usuario confirmado por el backend.
func Authenticated(u *User) SessionState {
	if u == nil {
		return Unauthenticated()
	}
	return SessionState{Status: StatusAuthenticated, User: u}
}

// Unauthenticated estado sin sesión activa.
func Unauthenticated() SessionState {
	return SessionState{Status: StatusUnauthenticated}
}

// Role rol efectivo: solo cuenta si la sesión está autenticada.
func (s SessionState) Role() Role {
	if s.Status != StatusAuthenticated || s.User == nil {
		return RoleUnknown
	}
	return s.User.Role
}
