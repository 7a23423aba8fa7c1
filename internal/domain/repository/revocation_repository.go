package repository

import (
	"context"
	"time"
)

// RevocationRepository lista de tokens revocados por logout, indexada por jti.
// Las entradas pueden expirar cuando el token mismo expira.
type RevocationRepository interface {
	Revoke(ctx context.Context, jti string, until time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}
