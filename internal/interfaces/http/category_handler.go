package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/everest-site/internal/application/dto"
	"github.com/jhoicas/everest-site/internal/application/usecase"
	"github.com/jhoicas/everest-site/pkg/logger"
)

const categoriesTab = "/admin/dashboard?tab=categories"

// CategoryHandler CRUD de categorías del panel.
type CategoryHandler struct {
	uc  *usecase.CategoryUseCase
	log *logger.Logger
}

// NewCategoryHandler construye el handler.
func NewCategoryHandler(uc *usecase.CategoryUseCase, log *logger.Logger) *CategoryHandler {
	return &CategoryHandler{uc: uc, log: log}
}

// List godoc
// @Summary      Listar categorías
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  entity.Category
// @Router       /admin/categories [get]
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	if !wantsJSON(c) {
		return c.Redirect(categoriesTab, fiber.StatusSeeOther)
	}
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return jsonError(c, err, "Error loading categories")
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear categoría
// @Tags         admin
// @Security     Bearer
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Param        body  body  dto.CategoryRequest  true  "Datos de la categoría"
// @Success      201   {object}  entity.Category
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /admin/categories [post]
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c, categoriesTab)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		h.log.Warn().Err(err).Msg("crear categoría")
		return fail(c, err, categoriesTab, "Error saving category")
	}
	return done(c, fiber.StatusCreated, out, categoriesTab, "")
}

// Update godoc
// @Summary      Actualizar categoría
// @Tags         admin
// @Security     Bearer
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Param        id    path  string  true  "ID de la categoría"
// @Param        body  body  dto.CategoryRequest  true  "Datos de la categoría"
// @Success      200   {object}  entity.Category
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /admin/categories/{id} [put]
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	var in dto.CategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c, categoriesTab)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		h.log.Warn().Err(err).Str("id", c.Params("id")).Msg("actualizar categoría")
		return fail(c, err, categoriesTab+"&edit="+c.Params("id"), "Error saving category")
	}
	return done(c, fiber.StatusOK, out, categoriesTab, "")
}

// Delete godoc
// @Summary      Eliminar categoría
// @Tags         admin
// @Security     Bearer
// @Param        id   path  string  true  "ID de la categoría"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /admin/categories/{id} [delete]
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		h.log.Warn().Err(err).Str("id", c.Params("id")).Msg("eliminar categoría")
		return failWith(c, err, categoriesTab, "Error deleting category")
	}
	return done(c, fiber.StatusNoContent, nil, categoriesTab, "")
}
