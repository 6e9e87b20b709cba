package usecase

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/jhoicas/everest-site/internal/application/dto"
	"github.com/jhoicas/everest-site/pkg/slug"
)

// CatalogRow fila del CSV de importación de productos. specifications admite
// varias líneas "clave: valor" dentro de la celda entrecomillada.
type CatalogRow struct {
	Category        string `csv:"category"`
	Name            string `csv:"name"`
	Slug            string `csv:"slug"`
	Description     string `csv:"description"`
	LongDescription string `csv:"long_description"`
	ImageURL        string `csv:"image_url"`
	PriceRange      string `csv:"price_range"`
	IsFeatured      bool   `csv:"is_featured"`
	Specifications  string `csv:"specifications"`
}

// ImportResult resumen de una importación.
type ImportResult struct {
	CategoriesCreated int
	ProductsCreated   int
	ProductsUpdated   int
	// Skipped filas rechazadas con su motivo (línea del CSV, cabecera = 1).
	Skipped []string
}

// CatalogImportUseCase carga productos desde CSV. Las categorías se buscan por slug
// (derivado de la columna category) y se crean si faltan; los productos con slug
// existente se actualizan.
type CatalogImportUseCase struct {
	categories *CategoryUseCase
	products   *ProductUseCase
}

// NewCatalogImportUseCase construye el caso de uso.
func NewCatalogImportUseCase(categories *CategoryUseCase, products *ProductUseCase) *CatalogImportUseCase {
	return &CatalogImportUseCase{categories: categories, products: products}
}

// Import lee el CSV completo (UTF-8) y aplica cada fila. Una fila inválida no corta
// la importación; un error de la base de datos sí.
func (uc *CatalogImportUseCase) Import(ctx context.Context, r io.Reader) (ImportResult, error) {
	var rows []CatalogRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return ImportResult{}, fmt.Errorf("leer CSV: %w", err)
	}

	var res ImportResult
	categoryIDs := map[string]string{}
	for i, row := range rows {
		line := i + 2
		name := strings.TrimSpace(row.Name)
		catName := strings.TrimSpace(row.Category)
		if name == "" || catName == "" {
			res.Skipped = append(res.Skipped, fmt.Sprintf("línea %d: name y category son obligatorios", line))
			continue
		}

		catSlug := slug.FromName(catName)
		catID, ok := categoryIDs[catSlug]
		if !ok {
			cat, err := uc.categories.GetBySlug(ctx, catSlug)
			if err != nil {
				return res, err
			}
			if cat == nil {
				cat, err = uc.categories.Create(ctx, dto.CategoryRequest{Name: catName, Slug: catSlug})
				if err != nil {
					return res, fmt.Errorf("línea %d: crear categoría %q: %w", line, catName, err)
				}
				res.CategoriesCreated++
			}
			catID = cat.ID
			categoryIDs[catSlug] = catID
		}

		in := dto.ProductRequest{
			Name:               name,
			Slug:               strings.TrimSpace(row.Slug),
			CategoryID:         catID,
			Description:        row.Description,
			LongDescription:    row.LongDescription,
			ImageURL:           strings.TrimSpace(row.ImageURL),
			PriceRange:         row.PriceRange,
			IsFeatured:         row.IsFeatured,
			SpecificationsText: row.Specifications,
		}
		if in.Slug == "" {
			in.Slug = slug.FromName(name)
		}
		if _, err := in.ResolveSpecifications(); err != nil {
			res.Skipped = append(res.Skipped, fmt.Sprintf("línea %d: %v", line, err))
			continue
		}

		existing, err := uc.products.GetBySlug(ctx, in.Slug)
		if err != nil {
			return res, err
		}
		if existing != nil {
			if _, err := uc.products.Update(ctx, existing.ID, in); err != nil {
				return res, fmt.Errorf("línea %d: actualizar %q: %w", line, in.Slug, err)
			}
			res.ProductsUpdated++
			continue
		}
		if _, err := uc.products.Create(ctx, in); err != nil {
			return res, fmt.Errorf("línea %d: crear %q: %w", line, in.Slug, err)
		}
		res.ProductsCreated++
	}
	return res, nil
}
