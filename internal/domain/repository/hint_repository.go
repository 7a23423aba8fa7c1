package repository

import (
	"context"
	"time"
)

// HintRepository ranura clave/valor para la pista durable de sesión.
// Get devuelve domain.ErrNotFound si la clave no existe.
type HintRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
