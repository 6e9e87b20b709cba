package supabase_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/everest-site/internal/domain"
	"github.com/jhoicas/everest-site/internal/infrastructure/supabase"
	"github.com/jhoicas/everest-site/pkg/config"
	pkgjwt "github.com/jhoicas/everest-site/pkg/jwt"
)

const (
	anonKey  = "anon-key"
	secret   = "super-secret-jwt-token-with-at-least-32-characters"
	userID   = "5c0a2a1e-0000-4000-8000-000000000001"
	userMail = "admin@everest.example"
)

// goTrue servidor falso con las rutas que usa el cliente.
func goTrue(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/v1/token", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, anonKey, r.Header.Get("apikey"))
		assert.Equal(t, "password", r.URL.Query().Get("grant_type"))
		body, _ := io.ReadAll(r.Body)
		if !strings.Contains(string(body), `"password":"good"`) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = io.WriteString(w, `{"error":"invalid_grant","error_description":"Invalid login credentials"}`)
			return
		}
		_, _ = io.WriteString(w, `{"access_token":"at-1","token_type":"bearer","expires_in":3600,"expires_at":1900000000,
			"refresh_token":"rt-1","user":{"id":"`+userID+`","email":"`+userMail+`"}}`)
	})
	mux.HandleFunc("/auth/v1/signup", func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if strings.Contains(string(body), "taken@") {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = io.WriteString(w, `{"code":422,"msg":"User already registered"}`)
			return
		}
		// con confirmación por email GoTrue devuelve el usuario suelto
		_, _ = io.WriteString(w, `{"id":"new-user","email":"new@example.com"}`)
	})
	mux.HandleFunc("/auth/v1/user", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer at-1" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = io.WriteString(w, `{"msg":"invalid JWT"}`)
			return
		}
		_, _ = io.WriteString(w, `{"id":"`+userID+`","email":"`+userMail+`"}`)
	})
	mux.HandleFunc("/auth/v1/logout", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer at-1", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusNoContent)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newClient(t *testing.T, jwtSecret string) *supabase.AuthClient {
	srv := goTrue(t)
	return supabase.NewAuthClient(config.SupabaseConfig{URL: srv.URL, AnonKey: anonKey, JWTSecret: jwtSecret}).
		WithHTTPClient(srv.Client())
}

func TestSignIn(t *testing.T) {
	c := newClient(t, "")

	sess, err := c.SignIn(context.Background(), userMail, "good")
	require.NoError(t, err)
	assert.Equal(t, "at-1", sess.AccessToken)
	assert.Equal(t, "rt-1", sess.RefreshToken)
	assert.Equal(t, int64(1900000000), sess.ExpiresAt.Unix())
	assert.Equal(t, userID, sess.User.ID)
}

func TestSignIn_CredencialesInvalidas(t *testing.T) {
	c := newClient(t, "")

	_, err := c.SignIn(context.Background(), userMail, "bad")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Contains(t, err.Error(), "Invalid login credentials")
}

func TestSignUp(t *testing.T) {
	c := newClient(t, "")

	u, err := c.SignUp(context.Background(), "new@example.com", "123456")
	require.NoError(t, err)
	assert.Equal(t, "new-user", u.ID)

	_, err = c.SignUp(context.Background(), "taken@example.com", "123456")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGetUser_PorRed(t *testing.T) {
	c := newClient(t, "")

	u, err := c.GetUser(context.Background(), "at-1")
	require.NoError(t, err)
	assert.Equal(t, userMail, u.Email)

	_, err = c.GetUser(context.Background(), "expirado")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = c.GetUser(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestGetUser_ValidacionLocal(t *testing.T) {
	c := newClient(t, secret)

	tok, err := pkgjwt.Generate(secret, userID, userMail, "supabase", 10)
	require.NoError(t, err)

	u, err := c.GetUser(context.Background(), tok)
	require.NoError(t, err)
	assert.Equal(t, userID, u.ID)

	// "at-1" no es un JWT: con secret no se consulta /user
	_, err = c.GetUser(context.Background(), "at-1")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestSignOut(t *testing.T) {
	c := newClient(t, "")
	assert.NoError(t, c.SignOut(context.Background(), "at-1"))
}

func TestServicioCaido(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()
	c := supabase.NewAuthClient(config.SupabaseConfig{URL: srv.URL}).WithHTTPClient(srv.Client())

	_, err := c.SignIn(context.Background(), userMail, "good")
	assert.ErrorIs(t, err, domain.ErrUnavailable)
}
