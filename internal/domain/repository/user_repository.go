package repository

import (
	"context"

	"github.com/jhoicas/rapidxcel-logistics/internal/domain/entity"
)

// UserRepository puerto de persistencia para User (DIP).
// Los Find* devuelven (nil, nil) si no existe.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
}
