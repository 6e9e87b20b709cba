package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/everest-site/internal/application/dto"
	"github.com/jhoicas/everest-site/internal/application/usecase"
	"github.com/jhoicas/everest-site/internal/application/view"
	"github.com/jhoicas/everest-site/internal/domain/entity"
	"github.com/jhoicas/everest-site/pkg/logger"
)

// AdminTab pestaña del panel.
type AdminTab struct {
	ID    string
	Label string
}

// AdminTabs pestañas en el orden en que se muestran.
var AdminTabs = []AdminTab{
	{"dashboard", "Dashboard"},
	{"settings", "Settings"},
	{"categories", "Categories"},
	{"products", "Products"},
	{"services", "Services"},
	{"gallery", "Gallery"},
	{"inquiries", "Inquiries"},
	{"pages", "Pages"},
}

func validTab(tab string) bool {
	for _, t := range AdminTabs {
		if t.ID == tab {
			return true
		}
	}
	return false
}

// DashboardView datos de una pestaña del panel. Solo se cargan las secciones que usa
// la pestaña activa.
type DashboardView struct {
	Tab   string
	Tabs  []AdminTab
	User  string
	Flash *Flash

	Counts         dto.DashboardCounts
	Unread         int
	UploadsEnabled bool
	ServiceIcons   []string

	Settings   view.Section[*entity.SiteSettings]
	Categories view.Section[[]entity.Category]
	Products   view.Section[[]entity.Product]
	Services   view.Section[[]entity.Service]
	Gallery    view.Section[[]entity.GalleryImage]
	Inquiries  view.Section[[]entity.Inquiry]
	Pages      view.Section[[]entity.Page]

	// registro en edición (?edit=<id>) o consulta seleccionada (?id=<id>)
	EditCategory    *entity.Category
	EditProduct     *entity.Product
	EditSpecs       string
	EditService     *entity.Service
	SelectedInquiry *entity.Inquiry
	CategoryNames   map[string]string
}

// DashboardHandler página del panel con sus pestañas.
type DashboardHandler struct {
	counts     *usecase.DashboardUseCase
	settings   *usecase.SettingsUseCase
	categories *usecase.CategoryUseCase
	products   *usecase.ProductUseCase
	services   *usecase.ServiceUseCase
	gallery    *usecase.GalleryUseCase
	inquiries  *usecase.InquiryUseCase
	pages      *usecase.PageUseCase
	media      *usecase.MediaUseCase
	log        *logger.Logger
}

// DashboardDeps casos de uso que lee el panel.
type DashboardDeps struct {
	Counts     *usecase.DashboardUseCase
	Settings   *usecase.SettingsUseCase
	Categories *usecase.CategoryUseCase
	Products   *usecase.ProductUseCase
	Services   *usecase.ServiceUseCase
	Gallery    *usecase.GalleryUseCase
	Inquiries  *usecase.InquiryUseCase
	Pages      *usecase.PageUseCase
	Media      *usecase.MediaUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(d DashboardDeps, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{
		counts:     d.Counts,
		settings:   d.Settings,
		categories: d.Categories,
		products:   d.Products,
		services:   d.Services,
		gallery:    d.Gallery,
		inquiries:  d.Inquiries,
		pages:      d.Pages,
		media:      d.Media,
		log:        log,
	}
}

// Counts godoc
// @Summary      Contadores del panel
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardCounts
// @Router       /admin/api/counts [get]
func (h *DashboardHandler) Counts(c *fiber.Ctx) error {
	counts, err := h.counts.Counts(c.UserContext())
	if err != nil {
		// los contadores que fallaron quedan en 0
		h.log.Warn().Err(err).Msg("contadores del panel")
	}
	return c.JSON(counts)
}

// Show GET /admin/dashboard?tab=<tab>[&edit=<id>|&id=<id>]
func (h *DashboardHandler) Show(c *fiber.Ctx) error {
	tab := c.Query("tab", "dashboard")
	if !validTab(tab) {
		tab = "dashboard"
	}
	ctx := c.UserContext()
	v := &DashboardView{
		Tab:            tab,
		Tabs:           AdminTabs,
		User:           GetUserEmail(c),
		Flash:          popFlash(c),
		UploadsEnabled: h.media.Enabled(),
		ServiceIcons:   entity.ServiceIcons,
	}

	g := view.NewGroup(ctx)
	switch tab {
	case "dashboard":
		counts, err := h.counts.Counts(ctx)
		if err != nil {
			h.log.Warn().Err(err).Msg("contadores del panel")
		}
		v.Counts = counts
	case "settings":
		view.Go(g, &v.Settings, h.settings.GetOrCreate)
	case "categories":
		view.Go(g, &v.Categories, h.categories.List)
	case "products":
		view.Go(g, &v.Products, h.products.List)
		view.Go(g, &v.Categories, h.categories.List)
	case "services":
		view.Go(g, &v.Services, h.services.List)
	case "gallery":
		view.Go(g, &v.Gallery, h.gallery.List)
	case "inquiries":
		view.Go(g, &v.Inquiries, h.inquiries.List)
		view.Go(g, &v.Categories, h.categories.List)
	case "pages":
		view.Go(g, &v.Pages, func(ctx context.Context) ([]entity.Page, error) {
			if _, err := h.pages.EnsureDefaults(ctx); err != nil {
				return nil, err
			}
			return h.pages.List(ctx)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	for _, err := range []error{v.Settings.Err, v.Categories.Err, v.Products.Err, v.Services.Err, v.Gallery.Err, v.Inquiries.Err, v.Pages.Err} {
		if err != nil {
			h.log.Error().Err(err).Str("tab", tab).Msg("cargar sección del panel")
		}
	}
	h.selection(c, v)
	return c.Render("admin/dashboard", v, "layouts/admin")
}

// selection resuelve el registro en edición o la consulta seleccionada.
func (h *DashboardHandler) selection(c *fiber.Ctx, v *DashboardView) {
	edit, selected := c.Query("edit"), c.Query("id")
	for i := range v.Categories.Data {
		if v.Categories.Data[i].ID == edit && v.Tab == "categories" {
			v.EditCategory = &v.Categories.Data[i]
		}
	}
	for i := range v.Products.Data {
		if v.Products.Data[i].ID == edit {
			v.EditProduct = &v.Products.Data[i]
			v.EditSpecs = dto.FormatSpecificationsText(v.EditProduct.Specifications)
		}
	}
	for i := range v.Services.Data {
		if v.Services.Data[i].ID == edit {
			v.EditService = &v.Services.Data[i]
		}
	}
	for i := range v.Inquiries.Data {
		if !v.Inquiries.Data[i].IsRead {
			v.Unread++
		}
		if v.Inquiries.Data[i].ID == selected {
			v.SelectedInquiry = &v.Inquiries.Data[i]
		}
	}
	if len(v.Categories.Data) > 0 {
		v.CategoryNames = make(map[string]string, len(v.Categories.Data))
		for _, cat := range v.Categories.Data {
			v.CategoryNames[cat.ID] = cat.Name
		}
	}
}
