package http

import (
	"bytes"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/everest-site/internal/application/usecase"
	"github.com/jhoicas/everest-site/pkg/logger"
)

const inquiriesTab = "/admin/dashboard?tab=inquiries"

// InquiryHandler consultas recibidas por el formulario de contacto.
type InquiryHandler struct {
	uc  *usecase.InquiryUseCase
	log *logger.Logger
}

// NewInquiryHandler construye el handler.
func NewInquiryHandler(uc *usecase.InquiryUseCase, log *logger.Logger) *InquiryHandler {
	return &InquiryHandler{uc: uc, log: log}
}

// List godoc
// @Summary      Listar consultas (más recientes primero)
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  entity.Inquiry
// @Router       /admin/inquiries [get]
func (h *InquiryHandler) List(c *fiber.Ctx) error {
	if !wantsJSON(c) {
		return c.Redirect(inquiriesTab, fiber.StatusSeeOther)
	}
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return jsonError(c, err, "Error loading inquiries")
	}
	return c.JSON(out)
}

// ToggleRead godoc
// @Summary      Marcar consulta como leída / no leída
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la consulta"
// @Success      200  {object}  map[string]bool
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /admin/inquiries/{id}/read [post]
func (h *InquiryHandler) ToggleRead(c *fiber.Ctx) error {
	id := c.Params("id")
	read, err := h.uc.ToggleRead(c.UserContext(), id)
	if err != nil {
		h.log.Warn().Err(err).Str("id", id).Msg("marcar consulta")
		return failWith(c, err, inquiriesTab+"&id="+id, "Error updating inquiry")
	}
	return done(c, fiber.StatusOK, fiber.Map{"is_read": read}, inquiriesTab+"&id="+id, "")
}

// Delete godoc
// @Summary      Eliminar consulta
// @Tags         admin
// @Security     Bearer
// @Param        id   path  string  true  "ID de la consulta"
// @Success      204
// @Router       /admin/inquiries/{id} [delete]
func (h *InquiryHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		h.log.Warn().Err(err).Str("id", c.Params("id")).Msg("eliminar consulta")
		return failWith(c, err, inquiriesTab, "Error deleting inquiry")
	}
	return done(c, fiber.StatusNoContent, nil, inquiriesTab, "")
}

// Export godoc
// @Summary      Exportar consultas a CSV
// @Tags         admin
// @Security     Bearer
// @Produce      text/csv
// @Success      200
// @Router       /admin/inquiries/export.csv [get]
func (h *InquiryHandler) Export(c *fiber.Ctx) error {
	var buf bytes.Buffer
	n, err := h.uc.ExportCSV(c.UserContext(), &buf)
	if err != nil {
		h.log.Error().Err(err).Msg("exportar consultas")
		return failWith(c, err, inquiriesTab, "Error exporting inquiries")
	}
	h.log.Info().Int("rows", n).Str("user_id", GetUserID(c)).Msg("consultas exportadas")
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="inquiries-%s.csv"`, time.Now().Format("2006-01-02")))
	return c.Send(buf.Bytes())
}
