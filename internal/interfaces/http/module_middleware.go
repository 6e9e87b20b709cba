package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/everest-site/internal/application/dto"
)

// featureChecker es el contrato mínimo que necesita el middleware para saber si una
// funcionalidad opcional está configurada. Lo implementa *usecase.MediaUseCase.
type featureChecker interface {
	Enabled() bool
}

// RequireFeature devuelve un middleware que corta la petición cuando la funcionalidad
// no está configurada en este despliegue (por ejemplo, subida de imágenes sin bucket).
//
// Comportamiento:
//   - 503 Service Unavailable → la funcionalidad no está configurada.
//   - En peticiones HTML vuelve a redirect con un flash de error.
func RequireFeature(name string, checker featureChecker, redirectTo string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if checker.Enabled() {
			return c.Next()
		}
		if wantsJSON(c) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "FEATURE_DISABLED",
				Message: "'" + name + "' is not configured",
			})
		}
		setFlash(c, "error", "'"+name+"' is not configured")
		return c.Redirect(redirectTo, fiber.StatusSeeOther)
	}
}
