package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/everest-site/internal/application/auth"
	"github.com/jhoicas/everest-site/internal/application/dto"
	"github.com/jhoicas/everest-site/internal/domain"
	"github.com/jhoicas/everest-site/pkg/logger"
)

// Locals keys del usuario autenticado en Fiber.
const (
	LocalUserID    = "user_id"
	LocalUserEmail = "user_email"
)

// SessionCookie cookie con el access token de Supabase (cifrada por encryptcookie).
const SessionCookie = "sb-access-token"

const loginPath = "/admin/login"

// RequireAdmin exige una sesión válida de un usuario presente en admins. El token sale
// de la cookie de sesión o de un header Authorization: Bearer. Para páginas HTML la
// falta de sesión redirige al login; para JSON responde 401/403.
func RequireAdmin(authUC *auth.AuthUseCase, log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, bearer, err := sessionToken(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		if token == "" {
			return deny(c, bearer, domain.ErrUnauthorized)
		}
		user, err := authUC.Authenticate(c.UserContext(), token)
		if err != nil {
			if !errors.Is(err, domain.ErrUnauthorized) && !errors.Is(err, domain.ErrForbidden) {
				log.Error().Err(err).Str("path", c.Path()).Msg("verificación de sesión")
			}
			if !bearer {
				c.ClearCookie(SessionCookie)
			}
			return deny(c, bearer, err)
		}
		c.Locals(LocalUserID, user.ID)
		c.Locals(LocalUserEmail, user.Email)
		return c.Next()
	}
}

// sessionToken devuelve el token y si vino por header. Un header mal formado es error.
func sessionToken(c *fiber.Ctx) (token string, bearer bool, err error) {
	if h := c.Get(fiber.HeaderAuthorization); h != "" {
		parts := strings.SplitN(h, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return "", true, errors.New("authorization mal formado")
		}
		return strings.TrimSpace(parts[1]), true, nil
	}
	return c.Cookies(SessionCookie), false, nil
}

func deny(c *fiber.Ctx, bearer bool, err error) error {
	if bearer || wantsJSON(c) {
		status, code := statusFor(err)
		if status != fiber.StatusForbidden {
			status, code = fiber.StatusUnauthorized, "UNAUTHORIZED"
		}
		return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: "admin session required"})
	}
	return c.Redirect(loginPath, fiber.StatusSeeOther)
}

// GetUserID devuelve el UserID del contexto (después de RequireAdmin).
func GetUserID(c *fiber.Ctx) string {
	v := c.Locals(LocalUserID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetUserEmail devuelve el email del administrador autenticado.
func GetUserEmail(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserEmail).(string)
	return s
}
