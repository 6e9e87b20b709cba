package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jhoicas/everest-site/internal/application/dto"
	"github.com/jhoicas/everest-site/internal/application/usecase"
	"github.com/jhoicas/everest-site/internal/domain/entity"
	"github.com/jhoicas/everest-site/internal/infrastructure/memstore"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

var ctx = context.Background()

type fixture struct {
	store      *memstore.Store
	settings   *usecase.SettingsUseCase
	pages      *usecase.PageUseCase
	categories *usecase.CategoryUseCase
	products   *usecase.ProductUseCase
	services   *usecase.ServiceUseCase
	gallery    *usecase.GalleryUseCase
}

func newFixture() *fixture {
	store := memstore.New()
	return &fixture{
		store:      store,
		settings:   usecase.NewSettingsUseCase(store),
		pages:      usecase.NewPageUseCase(store),
		categories: usecase.NewCategoryUseCase(store),
		products:   usecase.NewProductUseCase(store),
		services:   usecase.NewServiceUseCase(store),
		gallery:    usecase.NewGalleryUseCase(store),
	}
}

func (f *fixture) category(t *testing.T, name, slug string) *entity.Category {
	t.Helper()
	c, err := f.categories.Create(ctx, dto.CategoryRequest{Name: name, Slug: slug})
	require.NoError(t, err)
	return c
}

func (f *fixture) product(t *testing.T, name, categoryID string, featured bool) *entity.Product {
	t.Helper()
	p, err := f.products.Create(ctx, dto.ProductRequest{Name: name, CategoryID: categoryID, IsFeatured: featured})
	require.NoError(t, err)
	return p
}

func pageLabels(pages []entity.Page) []string {
	out := make([]string, len(pages))
	for i, p := range pages {
		out[i] = p.Label
	}
	return out
}
