package share_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/everest-site/internal/infrastructure/share"
)

// imageServer sirve un PNG chico, un HTML, una imagen demasiado grande y un 404.
func imageServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/img/pump.png", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write([]byte("\x89PNG"))
	})
	mux.HandleFunc("/img/sin-extension", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg; charset=binary")
		_, _ = w.Write([]byte("jpeg"))
	})
	mux.HandleFunc("/page", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<html></html>"))
	})
	mux.HandleFunc("/img/huge.jpg", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write(bytes.Repeat([]byte{0xff}, share.MaxImageBytes+1))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newFetcher(srv *httptest.Server) *share.HTTPImageFetcher {
	return share.NewHTTPImageFetcher().WithHTTPClient(srv.Client())
}

func TestFetch_Imagen(t *testing.T) {
	srv := imageServer(t)

	att, err := newFetcher(srv).Fetch(context.Background(), srv.URL+"/img/pump.png")
	require.NoError(t, err)
	assert.Equal(t, "pump.png", att.Name)
	assert.Equal(t, "image/png", att.ContentType)
	assert.Equal(t, []byte("\x89PNG"), att.Body)
}

func TestFetch_NombreSinExtension(t *testing.T) {
	srv := imageServer(t)

	att, err := newFetcher(srv).Fetch(context.Background(), srv.URL+"/img/sin-extension")
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", att.ContentType)
	assert.NotEqual(t, "sin-extension", att.Name, "se agrega la extensión del tipo")
	assert.Contains(t, att.Name, "sin-extension.")
}

func TestFetch_NoEsImagen(t *testing.T) {
	srv := imageServer(t)

	_, err := newFetcher(srv).Fetch(context.Background(), srv.URL+"/page")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no es una imagen")
}

func TestFetch_SuperaElTope(t *testing.T) {
	srv := imageServer(t)

	_, err := newFetcher(srv).Fetch(context.Background(), srv.URL+"/img/huge.jpg")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "imagen mayor a")
}

func TestFetch_RespuestaNoOK(t *testing.T) {
	srv := imageServer(t)

	_, err := newFetcher(srv).Fetch(context.Background(), srv.URL+"/img/falta.png")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 404")
}
