package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/everest-site/internal/application/dto"
	"github.com/jhoicas/everest-site/internal/application/usecase"
	"github.com/jhoicas/everest-site/internal/application/view"
	"github.com/jhoicas/everest-site/internal/domain"
	"github.com/jhoicas/everest-site/internal/domain/entity"
	"github.com/jhoicas/everest-site/internal/infrastructure/sitemap"
	"github.com/jhoicas/everest-site/pkg/logger"
)

// ShareHandler salidas de un producto fuera del HTML: mensaje para compartir, ficha
// técnica PDF y sitemap.
type ShareHandler struct {
	share      *usecase.ShareUseCase
	datasheets *usecase.DatasheetUseCase
	pages      *usecase.PageUseCase
	categories *usecase.CategoryUseCase
	products   *usecase.ProductUseCase
	baseURL    string
	log        *logger.Logger
}

// NewShareHandler construye el handler.
func NewShareHandler(
	share *usecase.ShareUseCase,
	datasheets *usecase.DatasheetUseCase,
	pages *usecase.PageUseCase,
	categories *usecase.CategoryUseCase,
	products *usecase.ProductUseCase,
	baseURL string,
	log *logger.Logger,
) *ShareHandler {
	return &ShareHandler{
		share:      share,
		datasheets: datasheets,
		pages:      pages,
		categories: categories,
		products:   products,
		baseURL:    baseURL,
		log:        log,
	}
}

// Share godoc
// @Summary      Mensaje para compartir un producto
// @Tags         site
// @Produce      json
// @Param        slug  path  string  true  "Slug del producto"
// @Success      200   {object}  dto.ShareResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{slug}/share [get]
func (h *ShareHandler) Share(c *fiber.Ctx) error {
	p, err := h.share.Payload(c.UserContext(), c.Params("slug"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "product not found"})
		}
		h.log.Error().Err(err).Msg("armar mensaje para compartir")
		return jsonError(c, err, "could not load product")
	}
	return c.JSON(h.share.Response(p))
}

// Datasheet godoc
// @Summary      Ficha técnica PDF del producto
// @Tags         site
// @Produce      application/pdf
// @Param        slug  path  string  true  "Slug del producto"
// @Success      200
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /products/{slug}/datasheet.pdf [get]
func (h *ShareHandler) Datasheet(c *fiber.Ctx) error {
	pdf, filename, err := h.datasheets.Generate(c.UserContext(), c.Params("slug"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Redirect("/products", fiber.StatusSeeOther)
		}
		h.log.Error().Err(err).Str("slug", c.Params("slug")).Msg("generar ficha técnica")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "could not generate datasheet"})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="%s"`, filename))
	return c.Send(pdf)
}

// Sitemap genera /sitemap.xml con las páginas visibles, las categorías y los productos.
// Una sección que no carga se omite.
func (h *ShareHandler) Sitemap(c *fiber.Ctx) error {
	var (
		pages      view.Section[[]entity.Page]
		categories view.Section[[]entity.Category]
		products   view.Section[[]entity.Product]
	)
	g := view.NewGroup(c.UserContext())
	view.Go(g, &pages, h.pages.ListEnabled)
	view.Go(g, &categories, h.categories.List)
	view.Go(g, &products, h.products.List)
	if err := g.Wait(); err != nil {
		return err
	}
	for _, failed := range []error{pages.Err, categories.Err, products.Err} {
		if failed != nil {
			h.log.Warn().Err(failed).Msg("sitemap incompleto")
		}
	}
	out, err := sitemap.Build(h.baseURL, sitemap.Entries(pages.Data, categories.Data, products.Data))
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationXMLCharsetUTF8)
	return c.Send(out)
}
