package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/everest-site/internal/application/dto"
	"github.com/jhoicas/everest-site/internal/application/usecase"
	"github.com/jhoicas/everest-site/pkg/logger"
)

const settingsTab = "/admin/dashboard?tab=settings"

// SettingsHandler configuración del sitio (registro único).
type SettingsHandler struct {
	uc    *usecase.SettingsUseCase
	media *usecase.MediaUseCase
	log   *logger.Logger
}

// NewSettingsHandler construye el handler.
func NewSettingsHandler(uc *usecase.SettingsUseCase, media *usecase.MediaUseCase, log *logger.Logger) *SettingsHandler {
	return &SettingsHandler{uc: uc, media: media, log: log}
}

// Get godoc
// @Summary      Obtener configuración (se crea con valores por defecto la primera vez)
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  entity.SiteSettings
// @Router       /admin/settings [get]
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	if !wantsJSON(c) {
		return c.Redirect(settingsTab, fiber.StatusSeeOther)
	}
	out, err := h.uc.GetOrCreate(c.UserContext())
	if err != nil {
		return jsonError(c, err, "Error loading settings")
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Guardar configuración
// @Tags         admin
// @Security     Bearer
// @Accept       json,x-www-form-urlencoded,multipart/form-data
// @Produce      json
// @Param        body  body  dto.SettingsRequest  true  "Configuración completa"
// @Success      200   {object}  entity.SiteSettings
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /admin/settings [put]
func (h *SettingsHandler) Update(c *fiber.Ctx) error {
	var in dto.SettingsRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c, settingsTab)
	}
	logo, err := formImage(c, h.media, "logo_file", "branding")
	if err != nil {
		h.log.Warn().Err(err).Msg("subir logo")
		return failWith(c, err, settingsTab, uploadMessage(err))
	}
	if logo != "" {
		in.LogoURL = logo
	}

	out, err := h.uc.Update(c.UserContext(), in)
	if err != nil {
		h.log.Warn().Err(err).Msg("guardar configuración")
		return fail(c, err, settingsTab, "Error saving settings")
	}
	h.log.Info().Str("user_id", GetUserID(c)).Msg("configuración del sitio actualizada")
	return done(c, fiber.StatusOK, out, settingsTab, "Settings saved successfully!")
}
