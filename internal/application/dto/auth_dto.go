package dto

import "time"

// LoginRequest credenciales del panel.
type LoginRequest struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

// SignUpRequest registro de una cuenta nueva en el proveedor de auth. No otorga acceso
// al panel: eso requiere una fila en admins.
type SignUpRequest struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required,min=6"`
}

// UserResponse usuario autenticado.
type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// LoginResponse token de sesión devuelto a clientes JSON.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}
