package session

import (
	"sync"
	"time"

	"github.com/jhoicas/rapidxcel-logistics/internal/domain/repository"
	"github.com/jhoicas/rapidxcel-logistics/pkg/logger"
)

// Manager entrega un único Store por id de sesión. Se crea en la raíz de la
// aplicación y se inyecta a quien necesite identidad.
type Manager struct {
	hints repository.HintRepository
	ttl   time.Duration
	log   *logger.Logger

	mu     sync.Mutex
	stores map[string]*Store
}

// NewManager construye el manager sobre un repositorio de pistas.
func NewManager(hints repository.HintRepository, hintTTL time.Duration, log *logger.Logger) *Manager {
	if log == nil {
		log = logger.Nop()
	}
	return &Manager{
		hints:  hints,
		ttl:    hintTTL,
		log:    log.Named("session"),
		stores: make(map[string]*Store),
	}
}

// Open devuelve el Store de la sesión, creándolo si no existe.
func (m *Manager) Open(sid string) *Store {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.stores[sid]
	if !ok {
		s = newStore(sid, m.hints, m.ttl, m.log)
		m.stores[sid] = s
	}
	return s
}

// Len cantidad de sesiones en memoria.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.stores)
}

// Prune libera los handles sin uso por más de idle y sin resoluciones en
// vuelo. La pista durable no se toca. Devuelve cuántos liberó.
func (m *Manager) Prune(idle time.Duration) int {
	now := time.Now()
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for sid, s := range m.stores {
		since, busy := s.idleSince(now)
		if !busy && since > idle {
			delete(m.stores, sid)
			n++
		}
	}
	return n
}
