package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/everest-site/internal/application/dto"
	"github.com/jhoicas/everest-site/internal/application/usecase"
	"github.com/jhoicas/everest-site/pkg/logger"
)

const productsTab = "/admin/dashboard?tab=products"

// ProductHandler CRUD de productos del panel.
type ProductHandler struct {
	uc    *usecase.ProductUseCase
	media *usecase.MediaUseCase
	log   *logger.Logger
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase, media *usecase.MediaUseCase, log *logger.Logger) *ProductHandler {
	return &ProductHandler{uc: uc, media: media, log: log}
}

// List godoc
// @Summary      Listar productos
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        category_id  query  string  false  "Filtrar por categoría"
// @Success      200  {array}  entity.Product
// @Router       /admin/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	if !wantsJSON(c) {
		return c.Redirect(productsTab, fiber.StatusSeeOther)
	}
	out, err := h.uc.ListByCategory(c.UserContext(), c.Query("category_id"))
	if err != nil {
		return jsonError(c, err, "Error loading products")
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  entity.Product
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /admin/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	if !wantsJSON(c) {
		return c.Redirect(productsTab+"&edit="+c.Params("id"), fiber.StatusSeeOther)
	}
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return jsonError(c, err, "Error loading product")
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "product not found"})
	}
	return c.JSON(out)
}

// bind lee el formulario o el JSON y, si vino un archivo, lo sube como imagen principal.
// Con handled=true la respuesta de error ya se escribió.
func (h *ProductHandler) bind(c *fiber.Ctx, in *dto.ProductRequest, back string) (handled bool, err error) {
	if err := c.BodyParser(in); err != nil {
		return true, badBody(c, back)
	}
	url, err := formImage(c, h.media, "image_file", "products")
	if err != nil {
		h.log.Warn().Err(err).Msg("subir imagen de producto")
		return true, failWith(c, err, back, uploadMessage(err))
	}
	if url != "" {
		in.ImageURL = url
	}
	return false, nil
}

// Create godoc
// @Summary      Crear producto
// @Tags         admin
// @Security     Bearer
// @Accept       json,x-www-form-urlencoded,multipart/form-data
// @Produce      json
// @Param        body  body  dto.ProductRequest  true  "Datos del producto"
// @Success      201   {object}  entity.Product
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /admin/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.ProductRequest
	if handled, err := h.bind(c, &in, productsTab); handled {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		h.log.Warn().Err(err).Msg("crear producto")
		return fail(c, err, productsTab, "Error saving product")
	}
	return done(c, fiber.StatusCreated, out, productsTab, "")
}

// Update godoc
// @Summary      Actualizar producto
// @Tags         admin
// @Security     Bearer
// @Accept       json,x-www-form-urlencoded,multipart/form-data
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.ProductRequest  true  "Datos del producto"
// @Success      200   {object}  entity.Product
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /admin/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	back := productsTab + "&edit=" + c.Params("id")
	var in dto.ProductRequest
	if handled, err := h.bind(c, &in, back); handled {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		h.log.Warn().Err(err).Str("id", c.Params("id")).Msg("actualizar producto")
		return fail(c, err, back, "Error saving product")
	}
	return done(c, fiber.StatusOK, out, productsTab, "")
}

// Delete godoc
// @Summary      Eliminar producto
// @Tags         admin
// @Security     Bearer
// @Param        id   path  string  true  "ID del producto"
// @Success      204
// @Router       /admin/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		h.log.Warn().Err(err).Str("id", c.Params("id")).Msg("eliminar producto")
		return failWith(c, err, productsTab, "Error deleting product")
	}
	return done(c, fiber.StatusNoContent, nil, productsTab, "")
}
