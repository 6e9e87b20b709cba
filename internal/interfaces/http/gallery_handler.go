package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/everest-site/internal/application/dto"
	"github.com/jhoicas/everest-site/internal/application/usecase"
	"github.com/jhoicas/everest-site/internal/domain"
	"github.com/jhoicas/everest-site/pkg/logger"
)

const galleryTab = "/admin/dashboard?tab=gallery"

// GalleryHandler imágenes de la galería del panel.
type GalleryHandler struct {
	uc    *usecase.GalleryUseCase
	media *usecase.MediaUseCase
	log   *logger.Logger
}

// NewGalleryHandler construye el handler.
func NewGalleryHandler(uc *usecase.GalleryUseCase, media *usecase.MediaUseCase, log *logger.Logger) *GalleryHandler {
	return &GalleryHandler{uc: uc, media: media, log: log}
}

// List godoc
// @Summary      Listar imágenes de la galería
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  entity.GalleryImage
// @Router       /admin/gallery [get]
func (h *GalleryHandler) List(c *fiber.Ctx) error {
	if !wantsJSON(c) {
		return c.Redirect(galleryTab, fiber.StatusSeeOther)
	}
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return jsonError(c, err, "Error loading gallery")
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Agregar imagen a la galería (URL o archivo)
// @Tags         admin
// @Security     Bearer
// @Accept       json,x-www-form-urlencoded,multipart/form-data
// @Produce      json
// @Param        body  body  dto.GalleryImageRequest  true  "Datos de la imagen"
// @Success      201   {object}  entity.GalleryImage
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /admin/gallery [post]
func (h *GalleryHandler) Create(c *fiber.Ctx) error {
	var in dto.GalleryImageRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c, galleryTab)
	}
	url, err := formImage(c, h.media, "image_file", "gallery")
	if err != nil {
		h.log.Warn().Err(err).Msg("subir imagen de galería")
		return failWith(c, err, galleryTab, uploadMessage(err))
	}
	if url != "" {
		in.ImageURL = url
	}

	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		h.log.Warn().Err(err).Msg("crear imagen de galería")
		msg := "Error saving image"
		if errors.Is(err, domain.ErrInvalidInput) {
			msg = msgImageURL
			if in.ImageURL != "" {
				msg = msgRequired
			}
		}
		return failWith(c, err, galleryTab, msg)
	}
	return done(c, fiber.StatusCreated, out, galleryTab, "")
}

// Delete godoc
// @Summary      Eliminar imagen de la galería
// @Tags         admin
// @Security     Bearer
// @Param        id   path  string  true  "ID de la imagen"
// @Success      204
// @Router       /admin/gallery/{id} [delete]
func (h *GalleryHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		h.log.Warn().Err(err).Str("id", c.Params("id")).Msg("eliminar imagen de galería")
		return failWith(c, err, galleryTab, "Error deleting image")
	}
	return done(c, fiber.StatusNoContent, nil, galleryTab, "")
}
