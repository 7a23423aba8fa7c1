package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrInvalidRole        = errors.New("rol desconocido")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrTokenRevoked       = errors.New("token revocado")
	ErrUpstream           = errors.New("backend no disponible o respuesta inesperada")
)
