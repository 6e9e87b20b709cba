package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/everest-site/internal/application/dto"
	"github.com/jhoicas/everest-site/internal/application/usecase"
	"github.com/jhoicas/everest-site/internal/domain"
	"github.com/jhoicas/everest-site/pkg/logger"
)

// Carpetas permitidas en el bucket.
var uploadFolders = map[string]bool{
	"products":   true,
	"categories": true,
	"gallery":    true,
	"branding":   true,
}

// UploadResponse URL pública de una imagen subida.
type UploadResponse struct {
	URL string `json:"url"`
}

// MediaHandler subida de imágenes del panel.
type MediaHandler struct {
	uc  *usecase.MediaUseCase
	log *logger.Logger
}

// NewMediaHandler construye el handler.
func NewMediaHandler(uc *usecase.MediaUseCase, log *logger.Logger) *MediaHandler {
	return &MediaHandler{uc: uc, log: log}
}

// Upload godoc
// @Summary      Subir imagen
// @Tags         admin
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        folder  query     string  true  "products | categories | gallery | branding"
// @Param        file    formData  file    true  "Imagen (jpeg, png, webp, gif; máx. 8 MB)"
// @Success      201     {object}  UploadResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      503     {object}  dto.ErrorResponse
// @Router       /admin/uploads [post]
func (h *MediaHandler) Upload(c *fiber.Ctx) error {
	folder := c.Query("folder")
	if !uploadFolders[folder] {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "unknown folder"})
	}
	url, err := formImage(c, h.uc, "file", folder)
	if err != nil {
		return jsonError(c, err, uploadMessage(err))
	}
	if url == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "file is required"})
	}
	h.log.Info().Str("url", url).Str("user_id", GetUserID(c)).Msg("imagen subida")
	return c.Status(fiber.StatusCreated).JSON(UploadResponse{URL: url})
}

// formImage sube el archivo del campo field si el formulario trae uno. Devuelve ""
// sin error cuando no hay archivo.
func formImage(c *fiber.Ctx, media *usecase.MediaUseCase, field, folder string) (string, error) {
	fh, err := c.FormFile(field)
	if err != nil || fh == nil || fh.Size == 0 {
		return "", nil
	}
	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("upload: abrir archivo: %w", err)
	}
	defer f.Close()
	return media.UploadImage(c.UserContext(), folder, fh.Header.Get(fiber.HeaderContentType), f, fh.Size)
}

func uploadMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return "Image must be JPEG, PNG, WebP or GIF up to 8 MB"
	case errors.Is(err, domain.ErrUnavailable):
		return "Image uploads are not available"
	default:
		return "Error uploading image"
	}
}
