// Package session mantiene, por sesión de navegador, el usuario resuelto y
// la pista durable que sobrevive reinicios. La pista nunca es autoritativa:
// solo la verificación de identidad contra el backend habilita contenido.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jhoicas/rapidxcel-logistics/internal/domain"
	"github.com/jhoicas/rapidxcel-logistics/internal/domain/entity"
	"github.com/jhoicas/rapidxcel-logistics/internal/domain/repository"
	"github.com/jhoicas/rapidxcel-logistics/pkg/logger"
)

// HintKeyPrefix prefijo fijo de la ranura durable; la clave completa es user:<sid>.
const HintKeyPrefix = "user:"

// Ticket identifica una resolución iniciada. Gana la iniciada más recientemente.
type Ticket struct {
	gen uint64
}

// Store handle de una sesión. Seguro para uso concurrente.
type Store struct {
	sid   string
	hints repository.HintRepository
	ttl   time.Duration
	log   *logger.Logger

	mu        sync.Mutex
	user      *entity.User
	state     entity.SessionState
	initiated uint64 // último ticket emitido
	committed uint64 // último ticket aplicado
	inflight  int
	lastUsed  time.Time
}

func newStore(sid string, hints repository.HintRepository, ttl time.Duration, log *logger.Logger) *Store {
	return &Store{
		sid:      sid,
		hints:    hints,
		ttl:      ttl,
		log:      log,
		state:    entity.Unauthenticated(),
		lastUsed: time.Now(),
	}
}

// ID id de la sesión.
func (s *Store) ID() string { return s.sid }

func (s *Store) hintKey() string { return HintKeyPrefix + s.sid }

// Get devuelve el usuario guardado en esta sesión, si hay.
func (s *Store) Get() (*entity.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastUsed = time.Now()
	return s.user, s.user != nil
}

// State estado actual de la sesión.
func (s *Store) State() entity.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Hint lee la pista durable. Un contenido ilegible se trata como ausente y se borra.
func (s *Store) Hint(ctx context.Context) (*entity.User, bool) {
	raw, err := s.hints.Get(ctx, s.hintKey())
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.log.Warn().Err(err).Str("session", s.sid).Msg("leer pista de sesión")
		}
		return nil, false
	}
	var h hint
	if err := json.Unmarshal(raw, &h); err != nil || !entity.ParseRole(h.Role).Known() || h.ID == "" {
		s.log.Warn().Str("session", s.sid).Msg("pista de sesión corrupta, se descarta")
		_ = s.hints.Delete(ctx, s.hintKey())
		return nil, false
	}
	return h.toEntity(), true
}

// Set guarda el usuario y escribe la pista durable. Invalida resoluciones en vuelo.
func (s *Store) Set(ctx context.Context, user *entity.User) error {
	if user == nil {
		return fmt.Errorf("session: usuario nil: %w", domain.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.initiated++
	s.committed = s.initiated
	return s.applyLocked(ctx, entity.Authenticated(user))
}

// Clear borra usuario y pista. Idempotente. Invalida resoluciones en vuelo.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.initiated++
	s.committed = s.initiated
	return s.applyLocked(ctx, entity.Unauthenticated())
}

// Begin abre una resolución: emite un ticket nuevo y pasa la sesión a
// Resolving con la mejor pista disponible (memoria, luego durable).
func (s *Store) Begin(ctx context.Context) Ticket {
	s.mu.Lock()
	hint := s.user
	s.mu.Unlock()
	if hint == nil {
		hint, _ = s.Hint(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.initiated++
	s.inflight++
	s.lastUsed = time.Now()
	s.state = entity.Resolving(hint)
	return Ticket{gen: s.initiated}
}

// Commit aplica el resultado de una resolución si no hay otra más reciente
// ya aplicada. Devuelve el estado vigente y si este resultado se aplicó.
func (s *Store) Commit(ctx context.Context, t Ticket, outcome entity.SessionState) (entity.SessionState, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inflight--
	if t.gen < s.committed {
		return s.state, false, nil
	}
	s.committed = t.gen
	err := s.applyLocked(ctx, outcome)
	return s.state, true, err
}

// Abandon descarta una resolución cuyo request ya terminó.
func (s *Store) Abandon(t Ticket) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inflight--
	if t.gen == s.initiated && s.state.Status == entity.StatusResolving {
		if s.user != nil {
			s.state = entity.Authenticated(s.user)
		} else {
			s.state = entity.Unauthenticated()
		}
	}
}

func (s *Store) applyLocked(ctx context.Context, outcome entity.SessionState) error {
	s.lastUsed = time.Now()
	if outcome.Status == entity.StatusAuthenticated && outcome.User != nil {
		s.user = outcome.User
		s.state = entity.Authenticated(outcome.User)
		raw, err := json.Marshal(hintFrom(outcome.User))
		if err != nil {
			return fmt.Errorf("session: serializar pista: %w", err)
		}
		if err := s.hints.Set(ctx, s.hintKey(), raw, s.ttl); err != nil {
			return fmt.Errorf("session: escribir pista: %w", err)
		}
		return nil
	}
	s.user = nil
	s.state = entity.Unauthenticated()
	if err := s.hints.Delete(ctx, s.hintKey()); err != nil {
		return fmt.Errorf("session: borrar pista: %w", err)
	}
	return nil
}

func (s *Store) idleSince(now time.Time) (time.Duration, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastUsed), s.inflight > 0
}

// hint forma serializada de la pista. Solo identidad y rol: las colecciones
// se vuelven a pedir en cada resolución.
type hint struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func hintFrom(u *entity.User) hint {
	return hint{ID: u.ID, Name: u.Name, Email: u.Email, Role: string(u.Role)}
}

func (h hint) toEntity() *entity.User {
	return &entity.User{ID: h.ID, Name: h.Name, Email: h.Email, Role: entity.ParseRole(h.Role)}
}
