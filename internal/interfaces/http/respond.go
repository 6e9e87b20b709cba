package http

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/jhoicas/everest-site/internal/application/dto"
	"github.com/jhoicas/everest-site/internal/domain"
)

// Mensajes que ve el usuario del panel. Un mensaje por acción, sin detalle técnico.
const (
	msgRequired = "Please fill required fields"
	msgImageURL = "Please provide an image URL"
)

// wantsJSON true si el cliente pidió JSON (Accept o Content-Type application/json).
func wantsJSON(c *fiber.Ctx) bool {
	if strings.Contains(c.Get(fiber.HeaderAccept), fiber.MIMEApplicationJSON) {
		return true
	}
	return strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON)
}

// statusFor traduce un error de dominio a status HTTP y código de ErrorResponse.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusConflict, "DUPLICATE"
	case errors.Is(err, domain.ErrReorderFailed):
		return fiber.StatusConflict, "REORDER_FAILED"
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, "CONFLICT"
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, domain.ErrUnavailable):
		return fiber.StatusServiceUnavailable, "UNAVAILABLE"
	case errors.Is(err, context.DeadlineExceeded):
		return fiber.StatusGatewayTimeout, "TIMEOUT"
	default:
		return fiber.StatusInternalServerError, "INTERNAL"
	}
}

// jsonError responde el error como dto.ErrorResponse. message es el texto genérico
// de la acción; para validación se agrega el detalle por campo.
func jsonError(c *fiber.Ctx, err error, message string) error {
	status, code := statusFor(err)
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: message, Fields: dto.FieldsOf(err)})
}

// failMessage mensaje de flash para un error de una acción del panel: validación
// usa el mensaje de campos obligatorios, cualquier otro error el genérico de la acción.
func failMessage(err error, action string) string {
	if errors.Is(err, domain.ErrInvalidInput) {
		return msgRequired
	}
	return action
}

// ── Flash (mensaje de una sola lectura, sesión de Fiber) ─────────────────────

const (
	flashCookie  = "everest_flash"
	flashKindKey = "flash_kind"
	flashMsgKey  = "flash_message"
	flashLocals  = "flash_store"
)

// Flash mensaje a mostrar en la próxima página renderizada.
type Flash struct {
	Kind    string // success | error
	Message string
}

// NewFlashStore sesiones cortas que solo guardan el flash de la próxima página.
// El cookie lleva el id de sesión; el mensaje queda del lado del servidor.
func NewFlashStore(secure bool) *session.Store {
	return session.New(session.Config{
		KeyLookup:      "cookie:" + flashCookie,
		CookiePath:     "/",
		CookieHTTPOnly: true,
		CookieSecure:   secure,
		CookieSameSite: fiber.CookieSameSiteLaxMode,
		Expiration:     time.Minute,
	})
}

// withFlashStore deja el store en Locals para setFlash y popFlash.
func withFlashStore(store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(flashLocals, store)
		return c.Next()
	}
}

func flashSession(c *fiber.Ctx) *session.Session {
	store, ok := c.Locals(flashLocals).(*session.Store)
	if !ok {
		return nil
	}
	sess, err := store.Get(c)
	if err != nil {
		return nil
	}
	return sess
}

func setFlash(c *fiber.Ctx, kind, message string) {
	sess := flashSession(c)
	if sess == nil {
		return
	}
	sess.Set(flashKindKey, kind)
	sess.Set(flashMsgKey, message)
	_ = sess.Save()
}

// popFlash lee y borra el flash. nil si no hay.
func popFlash(c *fiber.Ctx) *Flash {
	sess := flashSession(c)
	if sess == nil || sess.Fresh() {
		return nil
	}
	msg, _ := sess.Get(flashMsgKey).(string)
	kind, _ := sess.Get(flashKindKey).(string)
	_ = sess.Destroy()
	if msg == "" {
		return nil
	}
	return &Flash{Kind: kind, Message: msg}
}

// done responde una mutación del panel: JSON con status y cuerpo, o flash + redirect (PRG).
func done(c *fiber.Ctx, status int, body any, redirectTo, message string) error {
	if wantsJSON(c) {
		if body == nil {
			return c.SendStatus(status)
		}
		return c.Status(status).JSON(body)
	}
	if message != "" {
		setFlash(c, "success", message)
	}
	return c.Redirect(redirectTo, fiber.StatusSeeOther)
}

// fail responde el error de una mutación del panel: JSON o flash + redirect.
func fail(c *fiber.Ctx, err error, redirectTo, action string) error {
	return failWith(c, err, redirectTo, failMessage(err, action))
}

// failWith igual que fail con el mensaje ya decidido.
func failWith(c *fiber.Ctx, err error, redirectTo, message string) error {
	if wantsJSON(c) {
		return jsonError(c, err, message)
	}
	setFlash(c, "error", message)
	return c.Redirect(redirectTo, fiber.StatusSeeOther)
}

// badBody cuerpo que no se pudo interpretar.
func badBody(c *fiber.Ctx, redirectTo string) error {
	if wantsJSON(c) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	setFlash(c, "error", msgRequired)
	return c.Redirect(redirectTo, fiber.StatusSeeOther)
}
