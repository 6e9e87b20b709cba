package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/everest-site/internal/application/ports"
	"github.com/jhoicas/everest-site/internal/domain"
)

// DatasheetUseCase genera la ficha técnica PDF de un producto.
type DatasheetUseCase struct {
	products   *ProductUseCase
	categories *CategoryUseCase
	settings   *SettingsUseCase
	share      *ShareUseCase
	generator  ports.DatasheetGenerator
}

// NewDatasheetUseCase construye el caso de uso.
func NewDatasheetUseCase(
	products *ProductUseCase,
	categories *CategoryUseCase,
	settings *SettingsUseCase,
	share *ShareUseCase,
	generator ports.DatasheetGenerator,
) *DatasheetUseCase {
	return &DatasheetUseCase{
		products:   products,
		categories: categories,
		settings:   settings,
		share:      share,
		generator:  generator,
	}
}

// Generate devuelve el PDF y el nombre de archivo sugerido.
// domain.ErrNotFound si el producto no existe.
func (uc *DatasheetUseCase) Generate(ctx context.Context, slug string) (pdf []byte, filename string, err error) {
	p, err := uc.products.GetBySlug(ctx, slug)
	if err != nil {
		return nil, "", fmt.Errorf("datasheet: obtener producto: %w", err)
	}
	if p == nil {
		return nil, "", domain.ErrNotFound
	}

	// la categoría es opcional en la ficha: si falla se omite
	category := ""
	if p.CategoryID != "" {
		if c, err := uc.categories.GetByID(ctx, p.CategoryID); err == nil && c != nil {
			category = c.Name
		}
	}
	settings, err := uc.settings.Public(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("datasheet: obtener configuración: %w", err)
	}

	pdf, err = uc.generator.Generate(ctx, ports.Datasheet{
		Product:  *p,
		Category: category,
		Settings: settings,
		URL:      uc.share.ProductURL(p.Slug),
	})
	if err != nil {
		return nil, "", err
	}
	return pdf, p.Slug + "-datasheet.pdf", nil
}
