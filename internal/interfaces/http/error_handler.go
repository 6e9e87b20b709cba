package http

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/everest-site/internal/application/dto"
	"github.com/jhoicas/everest-site/pkg/logger"
)

// ErrorHandler respuesta final para errores que ningún handler resolvió. Las rutas
// /api y los clientes JSON reciben dto.ErrorResponse; el resto una página de texto.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status, code := statusFor(err)
		message := "Something went wrong. Please try again."

		var fe *fiber.Error
		switch {
		case errors.As(err, &fe):
			status, code, message = fe.Code, "HTTP_ERROR", fe.Message
		case errors.Is(err, context.Canceled):
			// el cliente se fue: no hay a quién responder
			log.Debug().Str("path", c.Path()).Msg("petición cancelada")
			return nil
		}
		if status >= fiber.StatusInternalServerError {
			log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error no controlado")
		}

		if wantsJSON(c) || strings.HasPrefix(c.Path(), "/api/") {
			return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: message})
		}
		c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
		return c.Status(status).SendString(message)
	}
}
