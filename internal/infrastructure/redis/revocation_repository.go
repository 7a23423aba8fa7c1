package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/rapidxcel-logistics/internal/domain/repository"
)

var _ repository.RevocationRepository = (*RevocationRepo)(nil)

// RevocationRepo jti revocados como claves con TTL hasta la expiración del token.
type RevocationRepo struct {
	rdb    goredis.Cmdable
	prefix string
}

// NewRevocationRepository construye el adaptador.
func NewRevocationRepository(rdb goredis.Cmdable, prefix string) *RevocationRepo {
	return &RevocationRepo{rdb: rdb, prefix: prefix}
}

// Revoke marca el jti hasta until; si until ya pasó no hace nada.
func (r *RevocationRepo) Revoke(ctx context.Context, jti string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}
	if err := r.rdb.Set(ctx, r.prefix+jti, 1, ttl).Err(); err != nil {
		return fmt.Errorf("redis revocar token: %w", err)
	}
	return nil
}

// IsRevoked consulta si el jti está en la lista.
func (r *RevocationRepo) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := r.rdb.Exists(ctx, r.prefix+jti).Result()
	if err != nil {
		return false, fmt.Errorf("redis consultar revocación: %w", err)
	}
	return n > 0, nil
}
