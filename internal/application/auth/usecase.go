package auth

import (
	"context"
	"errors"

	"github.com/jhoicas/everest-site/internal/application/dto"
	"github.com/jhoicas/everest-site/internal/application/ports"
	"github.com/jhoicas/everest-site/internal/domain"
)

// AuthUseCase login, registro, logout y verificación de sesión del panel.
type AuthUseCase struct {
	provider   ports.AuthProvider
	authorizer *AdminAuthorizer
	events     *SessionEvents
}

// NewAuthUseCase construye el caso de uso. events puede ser nil.
func NewAuthUseCase(provider ports.AuthProvider, authorizer *AdminAuthorizer, events *SessionEvents) *AuthUseCase {
	return &AuthUseCase{provider: provider, authorizer: authorizer, events: events}
}

// Login valida credenciales con el proveedor y exige membresía en admins. Un usuario
// válido que no es administrador recibe domain.ErrForbidden y su sesión se cierra.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*ports.Session, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	sess, err := uc.provider.SignIn(ctx, in.Email, in.Password)
	if err != nil {
		return nil, err
	}
	ok, err := uc.authorizer.IsAdmin(ctx, sess.User.ID)
	if err != nil {
		return nil, err
	}
	if !ok {
		_ = uc.provider.SignOut(ctx, sess.AccessToken)
		uc.publish(SessionEvent{Kind: SessionRejected, UserID: sess.User.ID, Email: sess.User.Email})
		return nil, domain.ErrForbidden
	}
	uc.publish(SessionEvent{Kind: SignedIn, UserID: sess.User.ID, Email: sess.User.Email})
	return sess, nil
}

// SignUp registra una cuenta en el proveedor. No concede acceso al panel.
func (uc *AuthUseCase) SignUp(ctx context.Context, in dto.SignUpRequest) (*dto.UserResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	u, err := uc.provider.SignUp(ctx, in.Email, in.Password)
	if err != nil {
		return nil, err
	}
	uc.publish(SessionEvent{Kind: SignedUp, UserID: u.ID, Email: u.Email})
	return &dto.UserResponse{ID: u.ID, Email: u.Email}, nil
}

// Logout cierra la sesión en el proveedor. Un token ya vencido no es error.
func (uc *AuthUseCase) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	u, _ := uc.provider.GetUser(ctx, token)
	err := uc.provider.SignOut(ctx, token)
	if err != nil && !errors.Is(err, domain.ErrUnauthorized) {
		return err
	}
	ev := SessionEvent{Kind: SignedOut}
	if u != nil {
		ev.UserID, ev.Email = u.ID, u.Email
	}
	uc.publish(ev)
	return nil
}

// Authenticate resuelve el usuario del token y verifica que sea administrador.
// domain.ErrUnauthorized sin sesión válida; domain.ErrForbidden si no es admin.
func (uc *AuthUseCase) Authenticate(ctx context.Context, token string) (*ports.User, error) {
	if token == "" {
		return nil, domain.ErrUnauthorized
	}
	u, err := uc.provider.GetUser(ctx, token)
	if err != nil {
		return nil, err
	}
	ok, err := uc.authorizer.IsAdmin(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	if !ok {
		uc.publish(SessionEvent{Kind: SessionRejected, UserID: u.ID, Email: u.Email})
		return nil, domain.ErrForbidden
	}
	return u, nil
}

func (uc *AuthUseCase) publish(ev SessionEvent) {
	if uc.events != nil {
		uc.events.Publish(ev)
	}
}
