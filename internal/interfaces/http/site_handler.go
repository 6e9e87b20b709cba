package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/everest-site/internal/application/dto"
	"github.com/jhoicas/everest-site/internal/application/usecase"
	"github.com/jhoicas/everest-site/internal/application/view"
	"github.com/jhoicas/everest-site/internal/domain"
	"github.com/jhoicas/everest-site/internal/domain/catalog"
	"github.com/jhoicas/everest-site/internal/domain/entity"
	"github.com/jhoicas/everest-site/pkg/logger"
)

const (
	msgInquirySent   = "Thank you! We'll get back to you soon."
	msgInquiryFailed = "Error sending inquiry. Please try again."
)

// SiteHandler páginas públicas del sitio.
type SiteHandler struct {
	site      *usecase.SiteUseCase
	inquiries *usecase.InquiryUseCase
	share     *usecase.ShareUseCase
	log       *logger.Logger
}

// NewSiteHandler construye el handler.
func NewSiteHandler(site *usecase.SiteUseCase, inquiries *usecase.InquiryUseCase, share *usecase.ShareUseCase, log *logger.Logger) *SiteHandler {
	return &SiteHandler{site: site, inquiries: inquiries, share: share, log: log}
}

// render dibuja name dentro del layout público con la marca, el menú y el flash.
func (h *SiteHandler) render(c *fiber.Ctx, name string, l *usecase.Layout, data fiber.Map) error {
	data["Site"] = layoutSettings(l)
	data["Nav"] = l.Nav.Data
	data["Path"] = c.Path()
	if _, ok := data["Flash"]; !ok {
		data["Flash"] = popFlash(c)
	}
	return c.Render(name, data, "layouts/main")
}

func layoutSettings(l *usecase.Layout) entity.SiteSettings {
	if l.Settings.Loaded() {
		return l.Settings.Data
	}
	return entity.DefaultSiteSettings()
}

// Home portada.
func (h *SiteHandler) Home(c *fiber.Ctx) error {
	v, err := h.site.Home(c.UserContext())
	if err != nil {
		return err
	}
	return h.render(c, "site/home", &v.Layout, fiber.Map{"View": v})
}

// Static páginas sin datos propios (about, privacy, terms).
func (h *SiteHandler) Static(name, title string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		l, err := h.site.Layout(c.UserContext())
		if err != nil {
			return err
		}
		return h.render(c, "site/"+name, l, fiber.Map{"Title": title})
	}
}

// Products catálogo, filtrable con ?category=<slug>.
func (h *SiteHandler) Products(c *fiber.Ctx) error {
	v, err := h.site.Products(c.UserContext(), c.Query("category"))
	if err != nil {
		return err
	}
	return h.render(c, "site/products", &v.Layout, fiber.Map{"Title": "Products", "View": v})
}

// ProductDetail ficha del producto. Un slug que no existe vuelve al catálogo.
// ?img=<i> elige la imagen del carrusel.
func (h *SiteHandler) ProductDetail(c *fiber.Ctx) error {
	v, err := h.site.ProductDetail(c.UserContext(), c.Params("slug"))
	if err != nil {
		if view.IsCancelled(err) {
			return err
		}
		h.log.Error().Err(err).Str("slug", c.Params("slug")).Msg("cargar producto")
	}
	if v == nil {
		return c.Redirect("/products", fiber.StatusSeeOther)
	}

	extra := make([]string, 0, len(v.Images.Data))
	for _, img := range v.Images.Data {
		extra = append(extra, img.ImageURL)
	}
	carousel := catalog.NewCarousel(v.Product.ImageURL, extra, c.QueryInt("img", 0))
	payload := h.share.PayloadFor(v.Product)

	return h.render(c, "site/product_detail", &v.Layout, fiber.Map{
		"Title":    v.Product.Name,
		"View":     v,
		"Carousel": carousel,
		"Share":    h.share.Response(payload),
	})
}

// Services página de servicios.
func (h *SiteHandler) Services(c *fiber.Ctx) error {
	v, err := h.site.Services(c.UserContext())
	if err != nil {
		return err
	}
	return h.render(c, "site/services", &v.Layout, fiber.Map{"Title": "Services", "View": v})
}

// Gallery página de galería.
func (h *SiteHandler) Gallery(c *fiber.Ctx) error {
	v, err := h.site.Gallery(c.UserContext())
	if err != nil {
		return err
	}
	return h.render(c, "site/gallery", &v.Layout, fiber.Map{"Title": "Gallery", "View": v})
}

// Contact formulario de contacto.
func (h *SiteHandler) Contact(c *fiber.Ctx) error {
	return h.contactPage(c, fiber.StatusOK, dto.ContactRequest{}, nil)
}

func (h *SiteHandler) contactPage(c *fiber.Ctx, status int, form dto.ContactRequest, flash *Flash) error {
	v, err := h.site.Contact(c.UserContext())
	if err != nil {
		return err
	}
	data := fiber.Map{"Title": "Contact Us", "View": v, "Form": form}
	if flash != nil {
		data["Flash"] = flash
	}
	c.Status(status)
	return h.render(c, "site/contact", &v.Layout, data)
}

// SubmitContact godoc
// @Summary      Enviar consulta
// @Tags         site
// @Accept       json,x-www-form-urlencoded
// @Produce      json,html
// @Param        body  body  dto.ContactRequest  true  "Consulta"
// @Success      201   {object}  entity.Inquiry
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /contact [post]
func (h *SiteHandler) SubmitContact(c *fiber.Ctx) error {
	var in dto.ContactRequest
	if err := c.BodyParser(&in); err != nil {
		if wantsJSON(c) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
		}
		return h.contactPage(c, fiber.StatusBadRequest, in, &Flash{Kind: "error", Message: msgRequired})
	}
	inq, err := h.inquiries.Submit(c.UserContext(), in)
	if err != nil {
		if !errors.Is(err, domain.ErrInvalidInput) {
			h.log.Error().Err(err).Msg("guardar consulta")
		}
		msg := failMessage(err, msgInquiryFailed)
		if wantsJSON(c) {
			return jsonError(c, err, msg)
		}
		// los campos se conservan para poder corregir y reenviar
		status, _ := statusFor(err)
		return h.contactPage(c, status, in, &Flash{Kind: "error", Message: msg})
	}
	return done(c, fiber.StatusCreated, inq, "/contact", msgInquirySent)
}
