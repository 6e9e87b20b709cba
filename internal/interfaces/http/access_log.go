package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/everest-site/pkg/logger"
)

// AccessLog registra una línea por petición con método, ruta, status y duración.
func AccessLog(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			// el error handler de Fiber todavía no escribió el status
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error().Err(err)
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("took", time.Since(start)).
			Str("ip", c.IP()).
			Msg("http")
		return err
	}
}
