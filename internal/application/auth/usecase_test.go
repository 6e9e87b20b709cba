package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/everest-site/internal/application/auth"
	"github.com/jhoicas/everest-site/internal/application/dto"
	"github.com/jhoicas/everest-site/internal/application/ports"
	"github.com/jhoicas/everest-site/internal/domain"
	"github.com/jhoicas/everest-site/internal/infrastructure/memstore"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

var ctx = context.Background()

const (
	adminID    = "00000000-0000-0000-0000-000000000001"
	visitorID  = "00000000-0000-0000-0000-000000000002"
	adminEmail = "admin@everest.example"
	password   = "s3cret-pass"
)

// fakeProvider acepta un único par email/password por usuario y emite tokens "tok-<id>".
type fakeProvider struct {
	users     map[string]ports.User // email -> user
	signedOut []string
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{users: map[string]ports.User{
		adminEmail:            {ID: adminID, Email: adminEmail},
		"visitor@example.com": {ID: visitorID, Email: "visitor@example.com"},
	}}
}

func (p *fakeProvider) SignIn(_ context.Context, email, pw string) (*ports.Session, error) {
	u, ok := p.users[email]
	if !ok || pw != password {
		return nil, domain.ErrUnauthorized
	}
	return &ports.Session{AccessToken: "tok-" + u.ID, User: u}, nil
}

func (p *fakeProvider) SignUp(_ context.Context, email, _ string) (*ports.User, error) {
	if _, ok := p.users[email]; ok {
		return nil, domain.ErrDuplicate
	}
	u := ports.User{ID: "new-" + email, Email: email}
	p.users[email] = u
	return &u, nil
}

func (p *fakeProvider) SignOut(_ context.Context, token string) error {
	p.signedOut = append(p.signedOut, token)
	return nil
}

func (p *fakeProvider) GetUser(_ context.Context, token string) (*ports.User, error) {
	for _, u := range p.users {
		if token == "tok-"+u.ID {
			u := u
			return &u, nil
		}
	}
	return nil, domain.ErrUnauthorized
}

type setup struct {
	provider *fakeProvider
	authz    *auth.AdminAuthorizer
	events   *auth.SessionEvents
	seen     []auth.SessionEvent
	uc       *auth.AuthUseCase
}

func newSetup(t *testing.T) *setup {
	t.Helper()
	s := &setup{provider: newFakeProvider(), events: auth.NewSessionEvents()}
	s.authz = auth.NewAdminAuthorizer(memstore.New())
	_, err := s.authz.Grant(ctx, adminID, adminEmail)
	require.NoError(t, err)
	unsubscribe, err := s.events.Subscribe(func(ev auth.SessionEvent) { s.seen = append(s.seen, ev) })
	require.NoError(t, err)
	t.Cleanup(unsubscribe)
	s.uc = auth.NewAuthUseCase(s.provider, s.authz, s.events)
	return s
}

func kinds(evs []auth.SessionEvent) []auth.SessionKind {
	out := make([]auth.SessionKind, len(evs))
	for i, e := range evs {
		out[i] = e.Kind
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_Administrador(t *testing.T) {
	s := newSetup(t)

	sess, err := s.uc.Login(ctx, dto.LoginRequest{Email: adminEmail, Password: password})
	require.NoError(t, err)
	assert.Equal(t, "tok-"+adminID, sess.AccessToken)
	assert.Equal(t, []auth.SessionKind{auth.SignedIn}, kinds(s.seen))
	assert.False(t, s.seen[0].At.IsZero())
}

func TestLogin_NoAdministradorCierraSesion(t *testing.T) {
	s := newSetup(t)

	_, err := s.uc.Login(ctx, dto.LoginRequest{Email: "visitor@example.com", Password: password})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Equal(t, []string{"tok-" + visitorID}, s.provider.signedOut, "la sesión del proveedor se cierra")
	assert.Equal(t, []auth.SessionKind{auth.SessionRejected}, kinds(s.seen))
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	s := newSetup(t)

	_, err := s.uc.Login(ctx, dto.LoginRequest{Email: adminEmail, Password: "wrong"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Empty(t, s.seen)
}

func TestLogin_Validacion(t *testing.T) {
	s := newSetup(t)

	_, err := s.uc.Login(ctx, dto.LoginRequest{Email: "no-es-email"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAuthenticate(t *testing.T) {
	s := newSetup(t)

	u, err := s.uc.Authenticate(ctx, "tok-"+adminID)
	require.NoError(t, err)
	assert.Equal(t, adminEmail, u.Email)

	_, err = s.uc.Authenticate(ctx, "tok-"+visitorID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = s.uc.Authenticate(ctx, "basura")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = s.uc.Authenticate(ctx, "")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAuthenticate_RevocarQuitaAcceso(t *testing.T) {
	s := newSetup(t)
	require.NoError(t, s.authz.Revoke(ctx, adminID))

	_, err := s.uc.Authenticate(ctx, "tok-"+adminID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestSignUp_NoDaAcceso(t *testing.T) {
	s := newSetup(t)

	u, err := s.uc.SignUp(ctx, dto.SignUpRequest{Email: "new@example.com", Password: "123456"})
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", u.Email)

	ok, err := s.authz.IsAdmin(ctx, u.ID)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, []auth.SessionKind{auth.SignedUp}, kinds(s.seen))
}

func TestLogout(t *testing.T) {
	s := newSetup(t)

	require.NoError(t, s.uc.Logout(ctx, "tok-"+adminID))
	require.Len(t, s.seen, 1)
	assert.Equal(t, auth.SignedOut, s.seen[0].Kind)
	assert.Equal(t, adminEmail, s.seen[0].Email)

	require.NoError(t, s.uc.Logout(ctx, ""), "sin token no hace nada")
	assert.Len(t, s.seen, 1)
}

func TestAdminAuthorizer_GrantRepetido(t *testing.T) {
	s := newSetup(t)

	_, err := s.authz.Grant(ctx, adminID, adminEmail)
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	admins, err := s.authz.List(ctx)
	require.NoError(t, err)
	require.Len(t, admins, 1)
	assert.Equal(t, adminEmail, admins[0].Email)
}

func TestSessionEvents_Unsubscribe(t *testing.T) {
	events := auth.NewSessionEvents()
	var n int
	unsubscribe, err := events.Subscribe(func(auth.SessionEvent) { n++ })
	require.NoError(t, err)

	events.Publish(auth.SessionEvent{Kind: auth.SignedIn})
	unsubscribe()
	events.Publish(auth.SessionEvent{Kind: auth.SignedOut})

	assert.Equal(t, 1, n)
}
