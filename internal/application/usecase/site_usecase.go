package usecase

import (
	"context"

	"github.com/jhoicas/everest-site/internal/application/view"
	"github.com/jhoicas/everest-site/internal/domain/entity"
)

// Layout datos comunes a todas las páginas públicas: marca y menú.
type Layout struct {
	Settings view.Section[entity.SiteSettings]
	Nav      view.Section[[]entity.Page]
}

// HomeView secciones de la portada.
type HomeView struct {
	Layout
	Categories   view.Section[[]entity.Category]
	Featured     view.Section[[]entity.Product]
	Testimonials view.Section[[]entity.Testimonial]
}

// ProductsView catálogo, opcionalmente filtrado por categoría.
type ProductsView struct {
	Layout
	Categories view.Section[[]entity.Category]
	Products   view.Section[[]entity.Product]
	// ActiveCategory slug aplicado; vacío si se muestran todos (o el slug no existe).
	ActiveCategory string
}

// ProductDetailView detalle de un producto.
type ProductDetailView struct {
	Layout
	Product  entity.Product
	Category view.Section[*entity.Category]
	Images   view.Section[[]entity.ProductImage]
	Similar  view.Section[[]entity.Product]
}

// ServicesView página de servicios.
type ServicesView struct {
	Layout
	Services view.Section[[]entity.Service]
}

// GalleryView página de galería.
type GalleryView struct {
	Layout
	Images view.Section[[]entity.GalleryImage]
}

// ContactView formulario de contacto (categorías para el selector).
type ContactView struct {
	Layout
	Categories view.Section[[]entity.Category]
}

// SiteUseCase arma las vistas públicas cargando cada sección en paralelo. Una sección
// que falla queda en estado error y la página se dibuja igual.
type SiteUseCase struct {
	settings     *SettingsUseCase
	pages        *PageUseCase
	categories   *CategoryUseCase
	products     *ProductUseCase
	services     *ServiceUseCase
	gallery      *GalleryUseCase
	testimonials *TestimonialUseCase
}

// NewSiteUseCase construye el caso de uso.
func NewSiteUseCase(
	settings *SettingsUseCase,
	pages *PageUseCase,
	categories *CategoryUseCase,
	products *ProductUseCase,
	services *ServiceUseCase,
	gallery *GalleryUseCase,
	testimonials *TestimonialUseCase,
) *SiteUseCase {
	return &SiteUseCase{
		settings:     settings,
		pages:        pages,
		categories:   categories,
		products:     products,
		services:     services,
		gallery:      gallery,
		testimonials: testimonials,
	}
}

func (uc *SiteUseCase) layout(g *view.Group, l *Layout) {
	view.Go(g, &l.Settings, uc.settings.Public)
	view.Go(g, &l.Nav, uc.pages.ListEnabled)
}

// Layout solo los datos comunes (páginas estáticas: about, privacy, terms).
func (uc *SiteUseCase) Layout(ctx context.Context) (*Layout, error) {
	var out Layout
	g := view.NewGroup(ctx)
	uc.layout(g, &out)
	return &out, g.Wait()
}

// Home portada: categorías, destacados y testimonios.
func (uc *SiteUseCase) Home(ctx context.Context) (*HomeView, error) {
	var out HomeView
	g := view.NewGroup(ctx)
	uc.layout(g, &out.Layout)
	view.Go(g, &out.Categories, uc.categories.List)
	view.Go(g, &out.Featured, func(ctx context.Context) ([]entity.Product, error) {
		return uc.products.Featured(ctx, FeaturedLimit)
	})
	view.Go(g, &out.Testimonials, uc.testimonials.ListActive)
	return &out, g.Wait()
}

// Products catálogo. Un slug de categoría desconocido muestra todos los productos.
func (uc *SiteUseCase) Products(ctx context.Context, categorySlug string) (*ProductsView, error) {
	var out ProductsView
	g := view.NewGroup(ctx)
	uc.layout(g, &out.Layout)
	view.Go(g, &out.Categories, uc.categories.List)
	view.Go(g, &out.Products, func(ctx context.Context) ([]entity.Product, error) {
		categoryID := ""
		if categorySlug != "" {
			c, err := uc.categories.GetBySlug(ctx, categorySlug)
			if err != nil {
				return nil, err
			}
			if c != nil {
				categoryID = c.ID
				out.ActiveCategory = c.Slug
			}
		}
		return uc.products.ListByCategory(ctx, categoryID)
	})
	return &out, g.Wait()
}

// ProductDetail detalle por slug. Devuelve (nil, nil) si el producto no existe.
func (uc *SiteUseCase) ProductDetail(ctx context.Context, slug string) (*ProductDetailView, error) {
	p, err := uc.products.GetBySlug(ctx, slug)
	if err != nil || p == nil {
		return nil, err
	}
	out := ProductDetailView{Product: *p}
	g := view.NewGroup(ctx)
	uc.layout(g, &out.Layout)
	view.Go(g, &out.Category, func(ctx context.Context) (*entity.Category, error) {
		return uc.categories.GetByID(ctx, p.CategoryID)
	})
	view.Go(g, &out.Images, func(ctx context.Context) ([]entity.ProductImage, error) {
		return uc.products.Images(ctx, p.ID)
	})
	view.Go(g, &out.Similar, func(ctx context.Context) ([]entity.Product, error) {
		return uc.products.Similar(ctx, *p, SimilarLimit)
	})
	return &out, g.Wait()
}

// Services página de servicios.
func (uc *SiteUseCase) Services(ctx context.Context) (*ServicesView, error) {
	var out ServicesView
	g := view.NewGroup(ctx)
	uc.layout(g, &out.Layout)
	view.Go(g, &out.Services, uc.services.List)
	return &out, g.Wait()
}

// Gallery página de galería.
func (uc *SiteUseCase) Gallery(ctx context.Context) (*GalleryView, error) {
	var out GalleryView
	g := view.NewGroup(ctx)
	uc.layout(g, &out.Layout)
	view.Go(g, &out.Images, uc.gallery.List)
	return &out, g.Wait()
}

// Contact página de contacto.
func (uc *SiteUseCase) Contact(ctx context.Context) (*ContactView, error) {
	var out ContactView
	g := view.NewGroup(ctx)
	uc.layout(g, &out.Layout)
	view.Go(g, &out.Categories, uc.categories.List)
	return &out, g.Wait()
}
