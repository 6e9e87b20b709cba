// Package share adaptadores de infraestructura para compartir productos.
package share

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path"
	"strings"
	"time"

	domainshare "github.com/jhoicas/everest-site/internal/domain/share"
)

var _ domainshare.ImageFetcher = (*HTTPImageFetcher)(nil)

// MaxImageBytes tope de descarga de una imagen adjunta.
const MaxImageBytes = 5 << 20

// HTTPImageFetcher descarga la imagen del producto para adjuntarla al share nativo.
type HTTPImageFetcher struct {
	httpClient *http.Client
}

// NewHTTPImageFetcher construye el fetcher con timeout propio.
func NewHTTPImageFetcher() *HTTPImageFetcher {
	return &HTTPImageFetcher{httpClient: &http.Client{Timeout: 10 * time.Second}}
}

// WithHTTPClient reemplaza el cliente HTTP (tests).
func (f *HTTPImageFetcher) WithHTTPClient(hc *http.Client) *HTTPImageFetcher {
	f.httpClient = hc
	return f
}

// Fetch descarga url. Falla si la respuesta no es una imagen o supera MaxImageBytes.
func (f *HTTPImageFetcher) Fetch(ctx context.Context, url string) (domainshare.Attachment, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domainshare.Attachment{}, fmt.Errorf("share: crear request: %w", err)
	}
	resp, err := f.httpClient.Do(req)
	if err != nil {
		return domainshare.Attachment{}, fmt.Errorf("share: descargar imagen: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domainshare.Attachment{}, fmt.Errorf("share: imagen HTTP %d", resp.StatusCode)
	}
	ct := resp.Header.Get("Content-Type")
	mediaType, _, _ := mime.ParseMediaType(ct)
	if !strings.HasPrefix(mediaType, "image/") {
		return domainshare.Attachment{}, fmt.Errorf("share: %q no es una imagen", ct)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxImageBytes+1))
	if err != nil {
		return domainshare.Attachment{}, fmt.Errorf("share: leer imagen: %w", err)
	}
	if len(body) > MaxImageBytes {
		return domainshare.Attachment{}, fmt.Errorf("share: imagen mayor a %d bytes", MaxImageBytes)
	}
	return domainshare.Attachment{Name: fileName(req.URL.Path, mediaType), ContentType: mediaType, Body: body}, nil
}

func fileName(urlPath, mediaType string) string {
	name := path.Base(urlPath)
	if name == "." || name == "/" || name == "" {
		name = "product"
	}
	if path.Ext(name) == "" {
		if exts, _ := mime.ExtensionsByType(mediaType); len(exts) > 0 {
			name += exts[0]
		}
	}
	return name
}
