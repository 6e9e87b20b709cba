package http_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func siteJS(t *testing.T) string {
	t.Helper()
	app, _ := buildTestApp(t)
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/static/js/site.js", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

// El slug del formulario de categorías es el mismo que slug.FromName: minúsculas y
// cada bloque de espacios por "-", sin quitar signos ni acentos.
func TestSiteJS_SlugIgualAlDelServidor(t *testing.T) {
	js := siteJS(t)

	assert.Contains(t, js, `return s.toLowerCase().replace(/\s+/g, '-');`)
	assert.NotContains(t, js, `[^a-z0-9]`)
}

func TestSiteJS_ShareNativoAdjuntaImagen(t *testing.T) {
	js := siteJS(t)

	assert.Contains(t, js, `navigator.canShare({ files: [file] })`)
	assert.Contains(t, js, `data-share-image`)
	assert.Contains(t, js, `return navigator.share(data);`)
}
