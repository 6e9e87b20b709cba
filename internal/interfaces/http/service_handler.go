package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/everest-site/internal/application/dto"
	"github.com/jhoicas/everest-site/internal/application/usecase"
	"github.com/jhoicas/everest-site/pkg/logger"
)

const servicesTab = "/admin/dashboard?tab=services"

// ServiceHandler CRUD de servicios del panel.
type ServiceHandler struct {
	uc  *usecase.ServiceUseCase
	log *logger.Logger
}

// NewServiceHandler construye el handler.
func NewServiceHandler(uc *usecase.ServiceUseCase, log *logger.Logger) *ServiceHandler {
	return &ServiceHandler{uc: uc, log: log}
}

// List godoc
// @Summary      Listar servicios
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  entity.Service
// @Router       /admin/services [get]
func (h *ServiceHandler) List(c *fiber.Ctx) error {
	if !wantsJSON(c) {
		return c.Redirect(servicesTab, fiber.StatusSeeOther)
	}
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return jsonError(c, err, "Error loading services")
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear servicio
// @Tags         admin
// @Security     Bearer
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Param        body  body  dto.ServiceRequest  true  "Datos del servicio"
// @Success      201   {object}  entity.Service
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /admin/services [post]
func (h *ServiceHandler) Create(c *fiber.Ctx) error {
	var in dto.ServiceRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c, servicesTab)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		h.log.Warn().Err(err).Msg("crear servicio")
		return fail(c, err, servicesTab, "Error saving service")
	}
	return done(c, fiber.StatusCreated, out, servicesTab, "")
}

// Update godoc
// @Summary      Actualizar servicio
// @Tags         admin
// @Security     Bearer
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Param        id    path  string  true  "ID del servicio"
// @Param        body  body  dto.ServiceRequest  true  "Datos del servicio"
// @Success      200   {object}  entity.Service
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /admin/services/{id} [put]
func (h *ServiceHandler) Update(c *fiber.Ctx) error {
	back := servicesTab + "&edit=" + c.Params("id")
	var in dto.ServiceRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c, back)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		h.log.Warn().Err(err).Str("id", c.Params("id")).Msg("actualizar servicio")
		return fail(c, err, back, "Error saving service")
	}
	return done(c, fiber.StatusOK, out, servicesTab, "")
}

// Delete godoc
// @Summary      Eliminar servicio
// @Tags         admin
// @Security     Bearer
// @Param        id   path  string  true  "ID del servicio"
// @Success      204
// @Router       /admin/services/{id} [delete]
func (h *ServiceHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		h.log.Warn().Err(err).Str("id", c.Params("id")).Msg("eliminar servicio")
		return failWith(c, err, servicesTab, "Error deleting service")
	}
	return done(c, fiber.StatusNoContent, nil, servicesTab, "")
}
