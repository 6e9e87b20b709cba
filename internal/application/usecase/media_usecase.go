package usecase

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/jhoicas/everest-site/internal/application/ports"
	"github.com/jhoicas/everest-site/internal/domain"
)

// MaxUploadBytes tamaño máximo de una imagen subida.
const MaxUploadBytes = 8 << 20

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// MediaUseCase sube imágenes al almacenamiento de objetos.
type MediaUseCase struct {
	storage ports.ObjectStorage
}

// NewMediaUseCase construye el caso de uso. storage nil deja las subidas deshabilitadas.
func NewMediaUseCase(storage ports.ObjectStorage) *MediaUseCase {
	return &MediaUseCase{storage: storage}
}

// Enabled true si hay almacenamiento configurado.
func (uc *MediaUseCase) Enabled() bool { return uc.storage != nil }

// UploadImage guarda la imagen bajo folder/<uuid><ext> y devuelve su URL pública.
func (uc *MediaUseCase) UploadImage(ctx context.Context, folder, contentType string, body io.Reader, size int64) (string, error) {
	if uc.storage == nil {
		return "", domain.ErrUnavailable
	}
	ct := strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
	ext, ok := allowedImageTypes[ct]
	if !ok {
		return "", fmt.Errorf("%w: tipo de imagen no soportado %q", domain.ErrInvalidInput, contentType)
	}
	if size <= 0 || size > MaxUploadBytes {
		return "", fmt.Errorf("%w: tamaño de imagen fuera de rango", domain.ErrInvalidInput)
	}
	key := path.Join(folder, uuid.New().String()+ext)
	return uc.storage.Upload(ctx, key, ct, body, size)
}
