// Package profile resuelve quién es el usuario actual en cada entrada a una
// página protegida, conciliando la pista durable con el backend.
package profile

import (
	"context"
	"errors"

	"github.com/jhoicas/rapidxcel-logistics/internal/application/session"
	"github.com/jhoicas/rapidxcel-logistics/internal/domain"
	"github.com/jhoicas/rapidxcel-logistics/internal/domain/entity"
	"github.com/jhoicas/rapidxcel-logistics/pkg/logger"
)

// Resultados de una resolución (etiqueta de métrica).
const (
	OutcomeAuthenticated   = "authenticated"
	OutcomeUnauthenticated = "unauthenticated"
	OutcomeSuperseded      = "superseded"
	OutcomeAbandoned       = "abandoned"
)

// IdentityChecker verificación de identidad contra el backend.
// Lo implementa *backend.Client.
type IdentityChecker interface {
	Profile(ctx context.Context, credential string) (*entity.User, error)
}

// Recorder registra el resultado de cada resolución.
type Recorder interface {
	ObserveResolution(outcome string)
}

type nopRecorder struct{}

func (nopRecorder) ObserveResolution(string) {}

// Resolver máquina de estados Resolving -> Authenticated | Unauthenticated.
// Siempre consulta al backend; la pista solo alimenta el estado Resolving.
type Resolver struct {
	identity IdentityChecker
	recorder Recorder
	log      *logger.Logger
}

// NewResolver construye el resolver. recorder puede ser nil.
func NewResolver(identity IdentityChecker, recorder Recorder, log *logger.Logger) *Resolver {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Resolver{identity: identity, recorder: recorder, log: log.Named("profile")}
}

// Resolve verifica la identidad de la sesión con la credencial dada y deja el
// Store en el estado correspondiente. Falla cerrado: cualquier error de red,
// credencial ausente o rol fuera del conjunto cerrado es Unauthenticated.
// No reintenta.
func (r *Resolver) Resolve(ctx context.Context, store *session.Store, credential string) entity.SessionState {
	ticket := store.Begin(ctx)
	outcome := r.check(ctx, store.ID(), credential)

	if ctx.Err() != nil {
		// el request que inició la resolución ya no existe
		store.Abandon(ticket)
		r.recorder.ObserveResolution(OutcomeAbandoned)
		return entity.Unauthenticated()
	}

	state, applied, err := store.Commit(context.WithoutCancel(ctx), ticket, outcome)
	if err != nil {
		r.log.Warn().Err(err).Str("session", store.ID()).Msg("persistir pista de sesión")
	}

	if !applied {
		r.recorder.ObserveResolution(OutcomeSuperseded)
		if outcome.Status != entity.StatusAuthenticated {
			return entity.Unauthenticated()
		}
		return state
	}

	if state.Status == entity.StatusAuthenticated {
		r.recorder.ObserveResolution(OutcomeAuthenticated)
	} else {
		r.recorder.ObserveResolution(OutcomeUnauthenticated)
	}
	return state
}

func (r *Resolver) check(ctx context.Context, sid, credential string) entity.SessionState {
	if credential == "" {
		r.log.Debug().Str("session", sid).Msg("sin credencial")
		return entity.Unauthenticated()
	}
	user, err := r.identity.Profile(ctx, credential)
	if err != nil {
		ev := r.log.Info()
		if !errors.Is(err, domain.ErrUnauthorized) {
			ev = r.log.Warn()
		}
		ev.Err(err).Str("session", sid).Msg("verificación de identidad fallida")
		return entity.Unauthenticated()
	}
	if user == nil || user.ID == "" || !user.Role.Known() {
		r.log.Warn().Str("session", sid).Msg("perfil sin id o con rol desconocido")
		return entity.Unauthenticated()
	}
	r.log.Debug().Str("session", sid).Str("role", string(user.Role)).Msg("identidad verificada")
	return entity.Authenticated(user)
}
