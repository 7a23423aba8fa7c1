package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/rapidxcel-logistics/internal/domain/repository"
)

var _ repository.RevocationRepository = (*RevocationRepo)(nil)

// RevocationRepo lista de jti revocados en memoria.
type RevocationRepo struct {
	mu      sync.Mutex
	revoked map[string]time.Time
}

// NewRevocationRepository construye la lista vacía.
func NewRevocationRepository() *RevocationRepo {
	return &RevocationRepo{revoked: make(map[string]time.Time)}
}

// Revoke marca el jti como revocado hasta until.
func (r *RevocationRepo) Revoke(_ context.Context, jti string, until time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.revoked[jti] = until
	return nil
}

// IsRevoked informa si el jti sigue revocado.
func (r *RevocationRepo) IsRevoked(_ context.Context, jti string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	until, ok := r.revoked[jti]
	if !ok {
		return false, nil
	}
	if time.Now().After(until) {
		delete(r.revoked, jti)
		return false, nil
	}
	return true, nil
}
