package ports

import (
	"context"
	"io"
)

// ObjectStorage almacenamiento de archivos subidos desde el panel (imágenes).
type ObjectStorage interface {
	// Upload guarda el objeto y devuelve su URL pública.
	Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error)
}
