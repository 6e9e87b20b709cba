package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/everest-site/internal/application/auth"
	"github.com/jhoicas/everest-site/internal/application/dto"
	"github.com/jhoicas/everest-site/internal/application/ports"
	"github.com/jhoicas/everest-site/internal/application/usecase"
	"github.com/jhoicas/everest-site/internal/domain"
	"github.com/jhoicas/everest-site/internal/domain/entity"
	"github.com/jhoicas/everest-site/internal/infrastructure/memstore"
	apphttp "github.com/jhoicas/everest-site/internal/interfaces/http"
	"github.com/jhoicas/everest-site/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	adminID    = "00000000-0000-0000-0000-000000000001"
	visitorID  = "00000000-0000-0000-0000-000000000002"
	adminEmail = "admin@everest.example"
	adminToken = "tok-" + adminID
)

// tokenProvider reconoce tokens "tok-<id>"; el login no se usa en estos tests.
type tokenProvider struct{}

func (tokenProvider) SignIn(context.Context, string, string) (*ports.Session, error) {
	return nil, domain.ErrUnauthorized
}

func (tokenProvider) SignUp(_ context.Context, email, _ string) (*ports.User, error) {
	return &ports.User{ID: "new", Email: email}, nil
}

func (tokenProvider) SignOut(context.Context, string) error { return nil }

func (tokenProvider) GetUser(_ context.Context, token string) (*ports.User, error) {
	switch token {
	case adminToken:
		return &ports.User{ID: adminID, Email: adminEmail}, nil
	case "tok-" + visitorID:
		return &ports.User{ID: visitorID, Email: "visitor@example.com"}, nil
	}
	return nil, domain.ErrUnauthorized
}

type nopGenerator struct{}

func (nopGenerator) Generate(context.Context, ports.Datasheet) ([]byte, error) {
	return []byte("%PDF-1.4"), nil
}

// buildTestApp arma el router completo sobre un memstore con un administrador.
func buildTestApp(t *testing.T) (*fiber.App, *memstore.Store) {
	t.Helper()
	store := memstore.New()
	log := logger.Nop()

	authz := auth.NewAdminAuthorizer(store)
	_, err := authz.Grant(context.Background(), adminID, adminEmail)
	require.NoError(t, err)

	settings := usecase.NewSettingsUseCase(store)
	pages := usecase.NewPageUseCase(store)
	categories := usecase.NewCategoryUseCase(store)
	products := usecase.NewProductUseCase(store)
	services := usecase.NewServiceUseCase(store)
	gallery := usecase.NewGalleryUseCase(store)
	shareUC := usecase.NewShareUseCase(products, "https://everest.example")

	app := fiber.New(fiber.Config{
		Views:        apphttp.NewViews(),
		ErrorHandler: apphttp.ErrorHandler(log),
	})
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:         auth.NewAuthUseCase(tokenProvider{}, authz, auth.NewSessionEvents()),
		SiteUC:         usecase.NewSiteUseCase(settings, pages, categories, products, services, gallery, usecase.NewTestimonialUseCase(store)),
		SettingsUC:     settings,
		CategoryUC:     categories,
		ProductUC:      products,
		ServiceUC:      services,
		GalleryUC:      gallery,
		InquiryUC:      usecase.NewInquiryUseCase(store, ports.NopNotifier{}, "", log),
		PageUC:         pages,
		DashboardUC:    usecase.NewDashboardUseCase(store),
		MediaUC:        usecase.NewMediaUseCase(nil),
		ShareUC:        shareUC,
		DatasheetUC:    usecase.NewDatasheetUseCase(products, categories, settings, shareUC, nopGenerator{}),
		BaseURL:        "https://everest.example",
		RequestTimeout: 5 * time.Second,
		Log:            log,
	})
	return app, store
}

func jsonRequest(method, target, token, body string) *http.Request {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	req.Header.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	return req
}

func formRequest(target string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	return req
}

func errorBody(t *testing.T, resp *http.Response) dto.ErrorResponse {
	t.Helper()
	var out dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// RequireAdmin
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireAdmin_HTMLSinSesionRedirigeAlLogin(t *testing.T) {
	app, _ := buildTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/admin/login", resp.Header.Get(fiber.HeaderLocation))
}

func TestRequireAdmin_JSONSinSesion(t *testing.T) {
	app, _ := buildTestApp(t)

	resp, err := app.Test(jsonRequest(http.MethodGet, "/admin/categories", "", ""))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNAUTHORIZED", errorBody(t, resp).Code)
}

func TestRequireAdmin_TokenInvalido(t *testing.T) {
	app, _ := buildTestApp(t)

	resp, err := app.Test(jsonRequest(http.MethodGet, "/admin/categories", "vencido", ""))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireAdmin_UsuarioSinPermiso(t *testing.T) {
	app, _ := buildTestApp(t)

	resp, err := app.Test(jsonRequest(http.MethodGet, "/admin/categories", "tok-"+visitorID, ""))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", errorBody(t, resp).Code)
}

func TestRequireAdmin_HeaderMalFormado(t *testing.T) {
	app, _ := buildTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/admin/categories", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Token abc")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", errorBody(t, resp).Code)
}

func TestRequireAdmin_CookieDeSesion(t *testing.T) {
	app, _ := buildTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/admin/categories", nil)
	req.AddCookie(&http.Cookie{Name: apphttp.SessionCookie, Value: adminToken})
	resp, err := app.Test(req)
	require.NoError(t, err)
	// con sesión el listado HTML vuelve a la pestaña del panel
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/admin/dashboard?tab=categories", resp.Header.Get(fiber.HeaderLocation))
}

// ──────────────────────────────────────────────────────────────────────────────
// RequireFeature
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireFeature_SubidasSinConfigurar(t *testing.T) {
	app, _ := buildTestApp(t)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/admin/uploads", adminToken, ""))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "FEATURE_DISABLED", errorBody(t, resp).Code)

	req := httptest.NewRequest(http.MethodPost, "/admin/uploads", nil)
	req.AddCookie(&http.Cookie{Name: apphttp.SessionCookie, Value: adminToken})
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/admin/dashboard", resp.Header.Get(fiber.HeaderLocation))
}

// ──────────────────────────────────────────────────────────────────────────────
// CRUD JSON de categorías
// ──────────────────────────────────────────────────────────────────────────────

func TestCategorias_CRUD(t *testing.T) {
	app, store := buildTestApp(t)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/admin/categories", adminToken,
		`{"name":"Air Compressors","slug":"air-compressors"}`))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var created entity.Category
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "air-compressors", created.Slug)

	resp, err = app.Test(jsonRequest(http.MethodPost, "/admin/categories", adminToken,
		`{"name":"Otra","slug":"air-compressors"}`))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "DUPLICATE", errorBody(t, resp).Code)

	resp, err = app.Test(jsonRequest(http.MethodPut, "/admin/categories/"+created.ID, adminToken,
		`{"name":"Compressors","slug":"compressors"}`))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(jsonRequest(http.MethodGet, "/admin/categories", adminToken, ""))
	require.NoError(t, err)
	var list []entity.Category
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	require.Len(t, list, 1)
	assert.Equal(t, "Compressors", list[0].Name)

	resp, err = app.Test(jsonRequest(http.MethodDelete, "/admin/categories/"+created.ID, adminToken, ""))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	assert.Empty(t, store.Rows("categories"))
}

func TestCategorias_Validacion(t *testing.T) {
	app, _ := buildTestApp(t)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/admin/categories", adminToken, `{"slug":"x"}`))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	body := errorBody(t, resp)
	assert.Equal(t, "VALIDATION", body.Code)
	assert.Equal(t, "Please fill required fields", body.Message)
	require.NotEmpty(t, body.Fields)
	assert.Equal(t, "name", body.Fields[0].Field)
}

// ──────────────────────────────────────────────────────────────────────────────
// Formulario de contacto
// ──────────────────────────────────────────────────────────────────────────────

func TestContacto_PostRedirectGet(t *testing.T) {
	app, store := buildTestApp(t)

	resp, err := app.Test(formRequest("/contact", url.Values{
		"name":    {"Ravi Kumar"},
		"phone":   {"+91 98765 43210"},
		"email":   {"ravi@example.com"},
		"message": {"Need a quote"},
	}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/contact", resp.Header.Get(fiber.HeaderLocation))

	var flash *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == "everest_flash" {
			flash = c
		}
	}
	require.NotNil(t, flash, "el mensaje de confirmación queda en la sesión de flash")
	assert.True(t, flash.HttpOnly)
	assert.NotContains(t, flash.Value, "success", "el cookie solo lleva el id de sesión")

	// la página siguiente muestra el mensaje una sola vez
	req := httptest.NewRequest(http.MethodGet, "/contact", nil)
	req.AddCookie(&http.Cookie{Name: flash.Name, Value: flash.Value})
	page, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, page.StatusCode)
	html, err := io.ReadAll(page.Body)
	require.NoError(t, err)
	assert.Contains(t, string(html), "Thank you!")
	assert.Contains(t, string(html), "flash-success")

	again := httptest.NewRequest(http.MethodGet, "/contact", nil)
	again.AddCookie(&http.Cookie{Name: flash.Name, Value: flash.Value})
	page, err = app.Test(again)
	require.NoError(t, err)
	html, err = io.ReadAll(page.Body)
	require.NoError(t, err)
	assert.NotContains(t, string(html), "Thank you!")

	rows := store.Rows("inquiries")
	require.Len(t, rows, 1)
	assert.Equal(t, false, rows[0]["is_read"])
}

func TestContacto_JSONInvalido(t *testing.T) {
	app, store := buildTestApp(t)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/contact", "", `{"name":"Ravi","email":"no-es-email"}`))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", errorBody(t, resp).Code)
	assert.Empty(t, store.Rows("inquiries"))
}
