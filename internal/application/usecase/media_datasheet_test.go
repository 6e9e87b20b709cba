package usecase_test

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/everest-site/internal/application/dto"
	"github.com/jhoicas/everest-site/internal/application/ports"
	"github.com/jhoicas/everest-site/internal/application/usecase"
	"github.com/jhoicas/everest-site/internal/domain"
)

// ──────────────────────────────────────────────────────────────────────────────
// Subida de imágenes
// ──────────────────────────────────────────────────────────────────────────────

type memObjects struct {
	keys  []string
	types []string
}

func (m *memObjects) Upload(_ context.Context, key, contentType string, body io.Reader, _ int64) (string, error) {
	if _, err := io.ReadAll(body); err != nil {
		return "", err
	}
	m.keys = append(m.keys, key)
	m.types = append(m.types, contentType)
	return "https://cdn.example/" + key, nil
}

func TestUploadImage(t *testing.T) {
	objects := &memObjects{}
	uc := usecase.NewMediaUseCase(objects)
	require.True(t, uc.Enabled())

	url, err := uc.UploadImage(ctx, "products", "image/PNG; charset=binary", strings.NewReader("png"), 3)
	require.NoError(t, err)

	require.Len(t, objects.keys, 1)
	assert.True(t, strings.HasPrefix(objects.keys[0], "products/"))
	assert.True(t, strings.HasSuffix(objects.keys[0], ".png"))
	assert.Equal(t, "image/png", objects.types[0])
	assert.Equal(t, "https://cdn.example/"+objects.keys[0], url)
}

func TestUploadImage_Rechazos(t *testing.T) {
	uc := usecase.NewMediaUseCase(&memObjects{})

	_, err := uc.UploadImage(ctx, "gallery", "application/pdf", strings.NewReader("x"), 1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.UploadImage(ctx, "gallery", "image/jpeg", strings.NewReader(""), 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.UploadImage(ctx, "gallery", "image/jpeg", strings.NewReader("x"), usecase.MaxUploadBytes+1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUploadImage_SinAlmacenamiento(t *testing.T) {
	uc := usecase.NewMediaUseCase(nil)
	assert.False(t, uc.Enabled())

	_, err := uc.UploadImage(ctx, "gallery", "image/jpeg", strings.NewReader("x"), 1)
	assert.ErrorIs(t, err, domain.ErrUnavailable)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ficha técnica
// ──────────────────────────────────────────────────────────────────────────────

type captureGenerator struct {
	got ports.Datasheet
}

func (g *captureGenerator) Generate(_ context.Context, d ports.Datasheet) ([]byte, error) {
	g.got = d
	return []byte("%PDF-1.4"), nil
}

func TestDatasheetGenerate(t *testing.T) {
	f := newFixture()
	cat := f.category(t, "Pumps", "pumps")
	p := f.product(t, "Gear Pump", cat.ID, false)
	_, err := f.settings.Update(ctx, dto.SettingsRequest{CompanyName: "Everest Hydro", Phone: "+91 1234"})
	require.NoError(t, err)

	gen := &captureGenerator{}
	shareUC := usecase.NewShareUseCase(f.products, "https://everest.example/")
	uc := usecase.NewDatasheetUseCase(f.products, f.categories, f.settings, shareUC, gen)

	pdf, name, err := uc.Generate(ctx, p.Slug)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4"), pdf)
	assert.Equal(t, "gear-pump-datasheet.pdf", name)
	assert.Equal(t, "Pumps", gen.got.Category)
	assert.Equal(t, "Everest Hydro", gen.got.Settings.CompanyName)
	assert.Equal(t, "https://everest.example/products/gear-pump", gen.got.URL)
}

func TestDatasheetGenerate_ProductoInexistente(t *testing.T) {
	f := newFixture()
	uc := usecase.NewDatasheetUseCase(f.products, f.categories, f.settings,
		usecase.NewShareUseCase(f.products, "https://everest.example"), &captureGenerator{})

	_, _, err := uc.Generate(ctx, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Configuración
// ──────────────────────────────────────────────────────────────────────────────

func TestSettingsGetOrCreate_UnaSolaFila(t *testing.T) {
	f := newFixture()

	a, err := f.settings.GetOrCreate(ctx)
	require.NoError(t, err)
	b, err := f.settings.GetOrCreate(ctx)
	require.NoError(t, err)

	assert.Equal(t, a.ID, b.ID)
	assert.Len(t, f.store.Rows("site_settings"), 1)
}

func TestSettingsUpdate_ColorInvalido(t *testing.T) {
	f := newFixture()

	_, err := f.settings.Update(ctx, dto.SettingsRequest{CompanyName: "Everest", PrimaryColor: "blue"})
	require.Error(t, err)
	assert.Equal(t, "primary_color", dto.FieldsOf(err)[0].Field)
}

func TestSettingsUpdate_SinNombreDeEmpresa(t *testing.T) {
	f := newFixture()

	s, err := f.settings.Update(ctx, dto.SettingsRequest{Phone: "+91 1"})
	require.NoError(t, err)
	assert.Equal(t, "+91 1", s.Phone)
	assert.Empty(t, s.CompanyName)
}

// ──────────────────────────────────────────────────────────────────────────────
// Galería
// ──────────────────────────────────────────────────────────────────────────────

func TestGalleryCreate_SoloURL(t *testing.T) {
	f := newFixture()

	g, err := f.gallery.Create(ctx, dto.GalleryImageRequest{ImageURL: "https://x/img.jpg"})
	require.NoError(t, err)
	assert.Empty(t, g.Title)
	assert.Len(t, f.store.Rows("gallery_images"), 1)
}

func TestGalleryCreate_SinURL(t *testing.T) {
	f := newFixture()

	_, err := f.gallery.Create(ctx, dto.GalleryImageRequest{Title: "Plant"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, "image_url", dto.FieldsOf(err)[0].Field)
}
