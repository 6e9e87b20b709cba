package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/everest-site/internal/application/dto"
	"github.com/jhoicas/everest-site/internal/application/usecase"
	"github.com/jhoicas/everest-site/internal/domain"
	"github.com/jhoicas/everest-site/internal/domain/ordering"
	"github.com/jhoicas/everest-site/pkg/logger"
)

const pagesTab = "/admin/dashboard?tab=pages"

// PageHandler visibilidad y orden del menú público.
type PageHandler struct {
	uc  *usecase.PageUseCase
	log *logger.Logger
}

// NewPageHandler construye el handler.
func NewPageHandler(uc *usecase.PageUseCase, log *logger.Logger) *PageHandler {
	return &PageHandler{uc: uc, log: log}
}

// List godoc
// @Summary      Listar páginas del menú
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  entity.Page
// @Router       /admin/pages [get]
func (h *PageHandler) List(c *fiber.Ctx) error {
	if !wantsJSON(c) {
		return c.Redirect(pagesTab, fiber.StatusSeeOther)
	}
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return jsonError(c, err, "Error loading pages")
	}
	return c.JSON(out)
}

// Toggle godoc
// @Summary      Mostrar u ocultar una página del menú
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la página"
// @Success      200  {object}  map[string]bool
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /admin/pages/{id}/toggle [post]
func (h *PageHandler) Toggle(c *fiber.Ctx) error {
	enabled, err := h.uc.Toggle(c.UserContext(), c.Params("id"))
	if err != nil {
		h.log.Warn().Err(err).Str("id", c.Params("id")).Msg("cambiar visibilidad de página")
		return failWith(c, err, pagesTab, "Error updating page")
	}
	return done(c, fiber.StatusOK, fiber.Map{"is_enabled": enabled}, pagesTab, "")
}

// Move godoc
// @Summary      Mover una página arriba o abajo
// @Tags         admin
// @Security     Bearer
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Param        id    path  string           true  "ID de la página"
// @Param        body  body  dto.MoveRequest  true  "up | down"
// @Success      200   {array}   entity.Page
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /admin/pages/{id}/move [post]
func (h *PageHandler) Move(c *fiber.Ctx) error {
	var in dto.MoveRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c, pagesTab)
	}
	if in.Direction == "" {
		in.Direction = c.Query("direction")
	}
	if err := dto.Validate(in); err != nil {
		return fail(c, err, pagesTab, "")
	}
	dir, _ := ordering.ParseDirection(in.Direction)

	pages, err := h.uc.Move(c.UserContext(), c.Params("id"), dir)
	if err != nil {
		h.log.Error().Err(err).Str("id", c.Params("id")).Str("direction", in.Direction).Msg("reordenar páginas")
		msg := "Error updating page"
		if errors.Is(err, domain.ErrReorderFailed) {
			msg = "Could not save the new order. Please try again."
		}
		return failWith(c, err, pagesTab, msg)
	}
	return done(c, fiber.StatusOK, pages, pagesTab, "")
}
