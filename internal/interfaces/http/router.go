package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/jhoicas/everest-site/internal/application/auth"
	"github.com/jhoicas/everest-site/internal/application/dto"
	"github.com/jhoicas/everest-site/internal/application/usecase"
	"github.com/jhoicas/everest-site/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	SiteUC         *usecase.SiteUseCase
	SettingsUC     *usecase.SettingsUseCase
	CategoryUC     *usecase.CategoryUseCase
	ProductUC      *usecase.ProductUseCase
	ServiceUC      *usecase.ServiceUseCase
	GalleryUC      *usecase.GalleryUseCase
	InquiryUC      *usecase.InquiryUseCase
	PageUC         *usecase.PageUseCase
	DashboardUC    *usecase.DashboardUseCase
	MediaUC        *usecase.MediaUseCase
	ShareUC        *usecase.ShareUseCase
	DatasheetUC    *usecase.DatasheetUseCase
	BaseURL        string
	SecureCookie   bool
	// ContactLimit envíos del formulario de contacto por IP y minuto. 0 = sin límite.
	ContactLimit   int
	// RequestTimeout plazo de cada petición. 0 = sin plazo.
	RequestTimeout time.Duration
	Log            *logger.Logger
}

// Router registra las rutas del sitio público, del panel y de la API JSON.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}

	app.Use("/static", StaticHandler())
	app.Use(requestDeadline(deps.RequestTimeout))
	app.Use(withFlashStore(NewFlashStore(deps.SecureCookie)))

	// Sitio público
	siteHandler := NewSiteHandler(deps.SiteUC, deps.InquiryUC, deps.ShareUC, log)
	shareHandler := NewShareHandler(deps.ShareUC, deps.DatasheetUC, deps.PageUC, deps.CategoryUC, deps.ProductUC, deps.BaseURL, log)
	app.Get("/", siteHandler.Home)
	app.Get("/about", siteHandler.Static("about", "About Us"))
	app.Get("/privacy", siteHandler.Static("privacy", "Privacy Policy"))
	app.Get("/terms", siteHandler.Static("terms", "Terms & Conditions"))
	app.Get("/products", siteHandler.Products)
	app.Get("/products/:slug", siteHandler.ProductDetail)
	app.Get("/products/:slug/datasheet.pdf", shareHandler.Datasheet)
	app.Get("/services", siteHandler.Services)
	app.Get("/gallery", siteHandler.Gallery)
	app.Get("/contact", siteHandler.Contact)
	app.Post("/contact", contactLimiter(deps.ContactLimit), siteHandler.SubmitContact)
	app.Get("/sitemap.xml", shareHandler.Sitemap)

	// API JSON pública
	api := app.Group("/api")
	api.Get("/products/:slug/share", shareHandler.Share)

	authHandler := NewAuthHandler(deps.AuthUC, deps.SecureCookie, log)
	api.Post("/auth/signup", authHandler.SignUp)

	// Sesión del panel
	app.Get("/admin/login", authHandler.LoginPage)
	app.Post("/admin/login", authHandler.Login)
	app.Post("/admin/logout", authHandler.Logout)
	app.Get("/admin", func(c *fiber.Ctx) error {
		return c.Redirect("/admin/dashboard", fiber.StatusSeeOther)
	})

	// Panel (requiere sesión de administrador)
	admin := app.Group("/admin", RequireAdmin(deps.AuthUC, log))

	dashboardHandler := NewDashboardHandler(DashboardDeps{
		Counts:     deps.DashboardUC,
		Settings:   deps.SettingsUC,
		Categories: deps.CategoryUC,
		Products:   deps.ProductUC,
		Services:   deps.ServiceUC,
		Gallery:    deps.GalleryUC,
		Inquiries:  deps.InquiryUC,
		Pages:      deps.PageUC,
		Media:      deps.MediaUC,
	}, log)
	admin.Get("/dashboard", dashboardHandler.Show)
	admin.Get("/api/counts", dashboardHandler.Counts)

	// Settings
	settingsHandler := NewSettingsHandler(deps.SettingsUC, deps.MediaUC, log)
	admin.Get("/settings", settingsHandler.Get)
	admin.Post("/settings", settingsHandler.Update)
	admin.Put("/settings", settingsHandler.Update)

	// Categories
	categories := admin.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC, log)
	categories.Get("/", categoryHandler.List)
	categories.Post("/", categoryHandler.Create)
	categories.Post("/:id", categoryHandler.Update)
	categories.Put("/:id", categoryHandler.Update)
	categories.Post("/:id/delete", categoryHandler.Delete)
	categories.Delete("/:id", categoryHandler.Delete)

	// Products
	products := admin.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.MediaUC, log)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/:id", productHandler.Update)
	products.Put("/:id", productHandler.Update)
	products.Post("/:id/delete", productHandler.Delete)
	products.Delete("/:id", productHandler.Delete)

	// Services
	services := admin.Group("/services")
	serviceHandler := NewServiceHandler(deps.ServiceUC, log)
	services.Get("/", serviceHandler.List)
	services.Post("/", serviceHandler.Create)
	services.Post("/:id", serviceHandler.Update)
	services.Put("/:id", serviceHandler.Update)
	services.Post("/:id/delete", serviceHandler.Delete)
	services.Delete("/:id", serviceHandler.Delete)

	// Gallery
	gallery := admin.Group("/gallery")
	galleryHandler := NewGalleryHandler(deps.GalleryUC, deps.MediaUC, log)
	gallery.Get("/", galleryHandler.List)
	gallery.Post("/", galleryHandler.Create)
	gallery.Post("/:id/delete", galleryHandler.Delete)
	gallery.Delete("/:id", galleryHandler.Delete)

	// Pages (menú público)
	pages := admin.Group("/pages")
	pageHandler := NewPageHandler(deps.PageUC, log)
	pages.Get("/", pageHandler.List)
	pages.Post("/:id/toggle", pageHandler.Toggle)
	pages.Post("/:id/move", pageHandler.Move)

	// Inquiries
	inquiries := admin.Group("/inquiries")
	inquiryHandler := NewInquiryHandler(deps.InquiryUC, log)
	inquiries.Get("/", inquiryHandler.List)
	inquiries.Get("/export.csv", inquiryHandler.Export)
	inquiries.Post("/:id/read", inquiryHandler.ToggleRead)
	inquiries.Post("/:id/delete", inquiryHandler.Delete)
	inquiries.Delete("/:id", inquiryHandler.Delete)

	// Uploads (solo con almacenamiento configurado)
	mediaHandler := NewMediaHandler(deps.MediaUC, log)
	admin.Post("/uploads", RequireFeature("uploads", deps.MediaUC, "/admin/dashboard"), mediaHandler.Upload)
}

// contactLimiter limita los envíos del formulario por IP. Al exceder, las peticiones
// JSON reciben 429 y las del formulario vuelven a /contact con un flash.
func contactLimiter(max int) fiber.Handler {
	if max <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			const msg = "Too many messages. Please try again in a minute."
			if wantsJSON(c) {
				return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{Code: "RATE_LIMITED", Message: msg})
			}
			setFlash(c, "error", msg)
			return c.Redirect("/contact", fiber.StatusSeeOther)
		},
	})
}

// requestDeadline ata c.UserContext() a un plazo. Las cargas de cada vista y las
// consultas en curso se cancelan al vencer; fasthttp no avisa si el cliente corta.
func requestDeadline(d time.Duration) fiber.Handler {
	if d <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), d)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}
