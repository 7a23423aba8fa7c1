// Package memory adaptadores en proceso para desarrollo sin Redis y tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/rapidxcel-logistics/internal/domain"
	"github.com/jhoicas/rapidxcel-logistics/internal/domain/repository"
)

var _ repository.HintRepository = (*HintRepo)(nil)

type hintEntry struct {
	value     []byte
	expiresAt time.Time // cero = sin expiración
}

// HintRepo HintRepository sobre un map protegido por mutex.
type HintRepo struct {
	mu      sync.Mutex
	entries map[string]hintEntry
	now     func() time.Time
}

// NewHintRepository construye el repositorio vacío.
func NewHintRepository() *HintRepo {
	return &HintRepo{entries: make(map[string]hintEntry), now: time.Now}
}

// Get devuelve una copia del valor o domain.ErrNotFound.
func (r *HintRepo) Get(_ context.Context, key string) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if !e.expiresAt.IsZero() && !r.now().Before(e.expiresAt) {
		delete(r.entries, key)
		return nil, domain.ErrNotFound
	}
	return append([]byte(nil), e.value...), nil
}

// Set guarda una copia del valor. ttl <= 0 = sin expiración.
func (r *HintRepo) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e := hintEntry{value: append([]byte(nil), value...)}
	if ttl > 0 {
		e.expiresAt = r.now().Add(ttl)
	}
	r.entries[key] = e
	return nil
}

// Delete borra la clave; no falla si no existe.
func (r *HintRepo) Delete(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, key)
	return nil
}

// Len cantidad de claves guardadas (incluye expiradas aún no leídas).
func (r *HintRepo) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
