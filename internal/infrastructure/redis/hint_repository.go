package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/rapidxcel-logistics/internal/domain"
	"github.com/jhoicas/rapidxcel-logistics/internal/domain/repository"
)

var _ repository.HintRepository = (*HintRepo)(nil)

// HintRepo HintRepository sobre Redis (GET/SET EX/DEL).
type HintRepo struct {
	rdb    goredis.Cmdable
	prefix string
}

// NewHintRepository construye el adaptador. prefix aísla las claves (p. ej. "rx:dashboard:").
func NewHintRepository(rdb goredis.Cmdable, prefix string) *HintRepo {
	return &HintRepo{rdb: rdb, prefix: prefix}
}

// Get devuelve el valor o domain.ErrNotFound.
func (r *HintRepo) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.rdb.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get pista: %w", err)
	}
	return val, nil
}

// Set escribe el valor con expiración (ttl <= 0 = sin expiración).
func (r *HintRepo) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	if err := r.rdb.Set(ctx, r.prefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set pista: %w", err)
	}
	return nil
}

// Delete borra la clave; DEL sobre clave inexistente no es error.
func (r *HintRepo) Delete(ctx context.Context, key string) error {
	if err := r.rdb.Del(ctx, r.prefix+key).Err(); err != nil {
		return fmt.Errorf("redis del pista: %w", err)
	}
	return nil
}
