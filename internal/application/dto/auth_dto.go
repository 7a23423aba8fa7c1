package dto

import "time"

// RegisterRequest entrada para registro: todos los campos son obligatorios.
// role se valida contra el conjunto cerrado de roles (tag "role").
type RegisterRequest struct {
	Name     string `json:"name" form:"name" validate:"required,max=200"`
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required,min=8"`
	Role     string `json:"role" form:"role" validate:"required,role"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

// LoginResponse salida de login. El token también viaja en la cookie rx_token.
type LoginResponse struct {
	Message   string    `json:"message"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// MessageResponse respuesta con solo un mensaje (register, logout).
type MessageResponse struct {
	Message string `json:"message"`
}
