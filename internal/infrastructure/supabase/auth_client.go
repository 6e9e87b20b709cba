// Package supabase adaptador del servicio de autenticación gestionado (Supabase GoTrue).
package supabase

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/jhoicas/everest-site/internal/application/ports"
	"github.com/jhoicas/everest-site/internal/domain"
	"github.com/jhoicas/everest-site/pkg/config"
	"github.com/jhoicas/everest-site/pkg/jwt"
	jsoniter "github.com/json-iterator/go"
)

var _ ports.AuthProvider = (*AuthClient)(nil)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// AuthClient cliente REST de GoTrue. Con JWTSecret configurado los access tokens se
// validan localmente (HS256) sin ir a la red.
type AuthClient struct {
	baseURL    string
	anonKey    string
	jwtSecret  string
	httpClient *http.Client
}

// NewAuthClient construye el cliente a partir de la configuración de Supabase.
func NewAuthClient(cfg config.SupabaseConfig) *AuthClient {
	return &AuthClient{
		baseURL:   cfg.URL + "/auth/v1",
		anonKey:   cfg.AnonKey,
		jwtSecret: cfg.JWTSecret,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// WithHTTPClient reemplaza el cliente HTTP (tests).
func (c *AuthClient) WithHTTPClient(hc *http.Client) *AuthClient {
	c.httpClient = hc
	return c
}

// ── Estructuras del protocolo GoTrue ─────────────────────────────────────────

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userPayload struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type tokenResponse struct {
	AccessToken  string      `json:"access_token"`
	TokenType    string      `json:"token_type"`
	ExpiresIn    int         `json:"expires_in"`
	ExpiresAt    int64       `json:"expires_at"`
	RefreshToken string      `json:"refresh_token"`
	User         userPayload `json:"user"`
}

// signUpResponse con confirmación por email GoTrue devuelve el usuario suelto; con
// autoconfirm devuelve una sesión con el usuario anidado.
type signUpResponse struct {
	userPayload
	User *userPayload `json:"user"`
}

type errorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
	Msg              string `json:"msg"`
	Message          string `json:"message"`
	ErrorCode        string `json:"error_code"`
}

func (e errorResponse) text() string {
	for _, s := range []string{e.ErrorDescription, e.Msg, e.Message, e.Error} {
		if s != "" {
			return s
		}
	}
	return ""
}

// ── Implementación del puerto ─────────────────────────────────────────────────

// SignIn login con email y password (grant_type=password).
func (c *AuthClient) SignIn(ctx context.Context, email, password string) (*ports.Session, error) {
	var out tokenResponse
	q := url.Values{"grant_type": {"password"}}
	if err := c.do(ctx, http.MethodPost, "/token?"+q.Encode(), "", credentials{email, password}, &out); err != nil {
		return nil, err
	}
	if out.AccessToken == "" {
		return nil, fmt.Errorf("auth: respuesta sin access_token: %w", domain.ErrUnavailable)
	}
	expires := time.Now().Add(time.Duration(out.ExpiresIn) * time.Second)
	if out.ExpiresAt > 0 {
		expires = time.Unix(out.ExpiresAt, 0)
	}
	return &ports.Session{
		AccessToken:  out.AccessToken,
		RefreshToken: out.RefreshToken,
		ExpiresAt:    expires,
		User:         ports.User{ID: out.User.ID, Email: out.User.Email},
	}, nil
}

// SignUp registra una cuenta.
func (c *AuthClient) SignUp(ctx context.Context, email, password string) (*ports.User, error) {
	var out signUpResponse
	if err := c.do(ctx, http.MethodPost, "/signup", "", credentials{email, password}, &out); err != nil {
		return nil, err
	}
	u := out.userPayload
	if out.User != nil {
		u = *out.User
	}
	return &ports.User{ID: u.ID, Email: u.Email}, nil
}

// SignOut invalida la sesión del token.
func (c *AuthClient) SignOut(ctx context.Context, accessToken string) error {
	return c.do(ctx, http.MethodPost, "/logout", accessToken, nil, nil)
}

// GetUser resuelve el usuario del token: localmente si hay secret, si no con /user.
func (c *AuthClient) GetUser(ctx context.Context, accessToken string) (*ports.User, error) {
	if accessToken == "" {
		return nil, domain.ErrUnauthorized
	}
	if c.jwtSecret != "" {
		id, email, err := jwt.Parse(c.jwtSecret, accessToken)
		if err != nil {
			return nil, fmt.Errorf("auth: token: %v: %w", err, domain.ErrUnauthorized)
		}
		return &ports.User{ID: id, Email: email}, nil
	}
	var out userPayload
	if err := c.do(ctx, http.MethodGet, "/user", accessToken, nil, &out); err != nil {
		return nil, err
	}
	if out.ID == "" {
		return nil, domain.ErrUnauthorized
	}
	return &ports.User{ID: out.ID, Email: out.Email}, nil
}

func (c *AuthClient) do(ctx context.Context, method, path, bearer string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("auth: serializar request: %w", err)
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("auth: crear HTTP request: %w", err)
	}
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("auth: llamada HTTP fallida: %v: %w", err, domain.ErrUnavailable)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 256*1024))
	if err != nil {
		return fmt.Errorf("auth: leer respuesta: %w", err)
	}

	if resp.StatusCode >= 300 {
		var e errorResponse
		_ = json.Unmarshal(raw, &e)
		return statusError(resp.StatusCode, e.text())
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("auth: deserializar respuesta: %w", err)
	}
	return nil
}

func statusError(status int, msg string) error {
	switch {
	case status == http.StatusBadRequest, status == http.StatusUnauthorized:
		return fmt.Errorf("auth: %s: %w", msg, domain.ErrUnauthorized)
	case status == http.StatusForbidden:
		return fmt.Errorf("auth: %s: %w", msg, domain.ErrForbidden)
	case status == http.StatusUnprocessableEntity:
		// usuario ya registrado, password débil
		return fmt.Errorf("auth: %s: %w", msg, domain.ErrInvalidInput)
	case status == http.StatusTooManyRequests, status >= 500:
		return fmt.Errorf("auth: HTTP %d %s: %w", status, msg, domain.ErrUnavailable)
	default:
		return fmt.Errorf("auth: HTTP %d: %s", status, msg)
	}
}
