package ports

import (
	"context"
	"time"
)

// User usuario del proveedor de autenticación.
type User struct {
	ID    string
	Email string
}

// Session sesión emitida por el proveedor tras un login correcto.
type Session struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
	User         User
}

// AuthProvider puerto de salida hacia el servicio de autenticación gestionado
// (Supabase GoTrue). El contexto debe llevar timeout: son llamadas de red.
type AuthProvider interface {
	// SignIn valida email/password. domain.ErrUnauthorized si las credenciales no sirven.
	SignIn(ctx context.Context, email, password string) (*Session, error)
	// SignUp registra una cuenta nueva.
	SignUp(ctx context.Context, email, password string) (*User, error)
	// SignOut invalida el token en el proveedor.
	SignOut(ctx context.Context, accessToken string) error
	// GetUser resuelve el usuario de un access token. domain.ErrUnauthorized si no es válido.
	GetUser(ctx context.Context, accessToken string) (*User, error)
}
