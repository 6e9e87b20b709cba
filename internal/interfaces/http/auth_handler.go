package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/everest-site/internal/application/auth"
	"github.com/jhoicas/everest-site/internal/application/dto"
	"github.com/jhoicas/everest-site/internal/domain"
	"github.com/jhoicas/everest-site/pkg/logger"
)

// AuthHandler login, logout y registro del panel.
type AuthHandler struct {
	uc           *auth.AuthUseCase
	secureCookie bool
	log          *logger.Logger
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, secureCookie bool, log *logger.Logger) *AuthHandler {
	return &AuthHandler{uc: uc, secureCookie: secureCookie, log: log}
}

// LoginPage formulario de acceso.
func (h *AuthHandler) LoginPage(c *fiber.Ctx) error {
	return h.loginPage(c, fiber.StatusOK, "", popFlash(c))
}

func (h *AuthHandler) loginPage(c *fiber.Ctx, status int, email string, flash *Flash) error {
	c.Status(status)
	return c.Render("admin/login", fiber.Map{"Email": email, "Flash": flash}, "layouts/admin")
}

// Login godoc
// @Summary      Iniciar sesión en el panel
// @Tags         auth
// @Accept       json,x-www-form-urlencoded
// @Produce      json,html
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /admin/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		if wantsJSON(c) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
		}
		return h.loginPage(c, fiber.StatusBadRequest, "", &Flash{Kind: "error", Message: msgRequired})
	}
	sess, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		msg := loginMessage(err)
		if wantsJSON(c) {
			return jsonError(c, err, msg)
		}
		status, _ := statusFor(err)
		return h.loginPage(c, status, in.Email, &Flash{Kind: "error", Message: msg})
	}

	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    sess.AccessToken,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		HTTPOnly: true,
		Secure:   h.secureCookie,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	if wantsJSON(c) {
		return c.JSON(dto.LoginResponse{
			Token:     sess.AccessToken,
			ExpiresAt: sess.ExpiresAt,
			User:      dto.UserResponse{ID: sess.User.ID, Email: sess.User.Email},
		})
	}
	return c.Redirect("/admin/dashboard", fiber.StatusSeeOther)
}

func loginMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return "Please enter your email and password"
	case errors.Is(err, domain.ErrUnauthorized):
		return "Invalid email or password"
	case errors.Is(err, domain.ErrForbidden):
		return "This account does not have admin access"
	default:
		return "Could not sign in. Please try again."
	}
}

// Logout cierra la sesión en el proveedor y borra la cookie.
// @Router       /admin/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	token, _, _ := sessionToken(c)
	if err := h.uc.Logout(c.UserContext(), token); err != nil {
		// la cookie se borra igual: el token vence solo
		h.log.Warn().Err(err).Msg("cerrar sesión en el proveedor")
	}
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Secure:   h.secureCookie,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	if wantsJSON(c) {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.Redirect(loginPath, fiber.StatusSeeOther)
}

// SignUp godoc
// @Summary      Registrar cuenta (sin acceso al panel hasta que se otorgue)
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SignUpRequest  true  "email, password"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/auth/signup [post]
func (h *AuthHandler) SignUp(c *fiber.Ctx) error {
	var in dto.SignUpRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	user, err := h.uc.SignUp(c.UserContext(), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return jsonError(c, err, "Invalid email or password (min 6 characters)")
		}
		h.log.Error().Err(err).Msg("registro de cuenta")
		return jsonError(c, err, "Could not create account")
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}
