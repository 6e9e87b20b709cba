package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/encryptcookie"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/everest-site/internal/application/auth"
	"github.com/jhoicas/everest-site/internal/application/ports"
	"github.com/jhoicas/everest-site/internal/application/usecase"
	"github.com/jhoicas/everest-site/internal/infrastructure/mail"
	infrapdf "github.com/jhoicas/everest-site/internal/infrastructure/pdf"
	"github.com/jhoicas/everest-site/internal/infrastructure/postgres"
	"github.com/jhoicas/everest-site/internal/infrastructure/storage"
	"github.com/jhoicas/everest-site/internal/infrastructure/supabase"
	httpRouter "github.com/jhoicas/everest-site/internal/interfaces/http"
	"github.com/jhoicas/everest-site/pkg/config"
	"github.com/jhoicas/everest-site/pkg/logger"
	jsoniter "github.com/json-iterator/go"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:        cfg.App.Env,
		Level:      cfg.Log.Level,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("base_url", cfg.App.BaseURL).
		Msg("iniciando aplicación")

	ctx := context.Background()

	if cfg.DB.AutoMigrate {
		if err := migrate(cfg.DB.ConnectionString(), log); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()
	store := postgres.NewStore(pool)

	// Aviso por correo de consultas nuevas (opcional)
	var notifier ports.InquiryNotifier = ports.NopNotifier{}
	var mailer *mail.InquiryNotifier
	if cfg.SMTP.Enabled() {
		mailer, err = mail.NewInquiryNotifier(cfg.SMTP, 2, log)
		if err != nil {
			log.Fatal().Err(err).Msg("notificador SMTP")
		}
		notifier = mailer
	} else {
		log.Warn().Msg("SMTP sin configurar: las consultas nuevas no se avisan por correo")
	}

	// Subida de imágenes (opcional). Sin bucket el panel solo acepta URLs.
	var objects ports.ObjectStorage
	if cfg.Storage.Enabled() {
		s3, err := storage.NewS3ObjectStorage(ctx, cfg.Storage)
		if err != nil {
			log.Fatal().Err(err).Msg("almacenamiento de objetos")
		}
		objects = s3
	} else {
		log.Warn().Msg("almacenamiento sin configurar: subida de imágenes deshabilitada")
	}

	settingsUC := usecase.NewSettingsUseCase(store)
	pageUC := usecase.NewPageUseCase(store)
	categoryUC := usecase.NewCategoryUseCase(store)
	productUC := usecase.NewProductUseCase(store)
	serviceUC := usecase.NewServiceUseCase(store)
	galleryUC := usecase.NewGalleryUseCase(store)
	testimonialUC := usecase.NewTestimonialUseCase(store)
	inquiryUC := usecase.NewInquiryUseCase(store, notifier, cfg.SMTP.To, log)
	dashboardUC := usecase.NewDashboardUseCase(store)
	mediaUC := usecase.NewMediaUseCase(objects)
	shareUC := usecase.NewShareUseCase(productUC, cfg.App.BaseURL)
	datasheetUC := usecase.NewDatasheetUseCase(productUC, categoryUC, settingsUC, shareUC, infrapdf.NewDatasheetGenerator())
	siteUC := usecase.NewSiteUseCase(settingsUC, pageUC, categoryUC, productUC, serviceUC, galleryUC, testimonialUC)

	if n, err := pageUC.EnsureDefaults(ctx); err != nil {
		log.Warn().Err(err).Msg("páginas por defecto")
	} else if n > 0 {
		log.Info().Int("created", n).Msg("páginas por defecto creadas")
	}

	// Sesiones: Supabase Auth + tabla admins
	events := auth.NewSessionEvents()
	unsubscribe, err := events.Subscribe(func(ev auth.SessionEvent) {
		log.Info().
			Str("kind", string(ev.Kind)).
			Str("user_id", ev.UserID).
			Str("email", ev.Email).
			Time("at", ev.At).
			Msg("sesión")
	})
	if err != nil {
		log.Fatal().Err(err).Msg("suscripción a eventos de sesión")
	}
	defer unsubscribe()
	authUC := auth.NewAuthUseCase(
		supabase.NewAuthClient(cfg.Supabase),
		auth.NewAdminAuthorizer(store),
		events,
	)

	cookieKey := cfg.App.CookieKey
	if cookieKey == "" {
		cookieKey = encryptcookie.GenerateKey()
		log.Warn().Msg("COOKIE_KEY vacío: se generó una clave; las sesiones no sobreviven a un reinicio")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		Views:        httpRouter.NewViews(),
		ErrorHandler: httpRouter.ErrorHandler(log),
		JSONEncoder:  jsoniter.ConfigCompatibleWithStandardLibrary.Marshal,
		JSONDecoder:  jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal,
		BodyLimit:    10 * 1024 * 1024,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.AccessLog(log))
	app.Use(encryptcookie.New(encryptcookie.Config{Key: cookieKey}))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Everest Site API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		SiteUC:         siteUC,
		SettingsUC:     settingsUC,
		CategoryUC:     categoryUC,
		ProductUC:      productUC,
		ServiceUC:      serviceUC,
		GalleryUC:      galleryUC,
		InquiryUC:      inquiryUC,
		PageUC:         pageUC,
		DashboardUC:    dashboardUC,
		MediaUC:        mediaUC,
		ShareUC:        shareUC,
		DatasheetUC:    datasheetUC,
		BaseURL:        cfg.App.BaseURL,
		SecureCookie:   cfg.App.SecureCookie,
		ContactLimit:   cfg.HTTP.ContactLimit,
		RequestTimeout: cfg.HTTP.RequestTimeout,
		Log:            log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	if mailer != nil {
		if err := mailer.Close(5 * time.Second); err != nil {
			log.Warn().Err(err).Msg("avisos de correo pendientes al cerrar")
		}
	}

	log.Info().Msg("aplicación detenida")
}

func migrate(dsn string, log *logger.Logger) error {
	m, err := postgres.NewMigrator(dsn, log)
	if err != nil {
		return err
	}
	defer m.Close()
	return m.Up()
}
