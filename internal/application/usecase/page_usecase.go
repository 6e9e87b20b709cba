package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jhoicas/everest-site/internal/domain"
	"github.com/jhoicas/everest-site/internal/domain/entity"
	"github.com/jhoicas/everest-site/internal/domain/ordering"
	"github.com/jhoicas/everest-site/internal/domain/repository"
)

// PageUseCase entradas del menú: listado, visibilidad y orden.
type PageUseCase struct {
	store repository.Store
}

// NewPageUseCase construye el caso de uso.
func NewPageUseCase(store repository.Store) *PageUseCase {
	return &PageUseCase{store: store}
}

// DefaultPages menú inicial del sitio.
var DefaultPages = []entity.Page{
	{Label: "Home", Path: "/"},
	{Label: "About", Path: "/about"},
	{Label: "Products", Path: "/products"},
	{Label: "Services", Path: "/services"},
	{Label: "Gallery", Path: "/gallery"},
	{Label: "Contact", Path: "/contact"},
}

// EnsureDefaults crea el menú por defecto si la tabla está vacía. Devuelve cuántas creó.
func (uc *PageUseCase) EnsureDefaults(ctx context.Context) (int, error) {
	n, err := uc.store.Count(ctx, repository.TablePages, repository.Query{})
	if err != nil || n > 0 {
		return 0, err
	}
	pages := append([]entity.Page(nil), DefaultPages...)
	ordering.Renumber(pages)
	for _, p := range pages {
		row := repository.Row{
			"id":         uuid.New().String(),
			"label":      p.Label,
			"path":       p.Path,
			"is_enabled": true,
			"sort_order": p.SortOrder,
		}
		if _, err := uc.store.Insert(ctx, repository.TablePages, row); err != nil {
			return 0, err
		}
	}
	return len(pages), nil
}

// List todas las páginas en orden.
func (uc *PageUseCase) List(ctx context.Context) ([]entity.Page, error) {
	return selectAll[entity.Page](ctx, uc.store, repository.TablePages, bySortOrder)
}

// ListEnabled páginas visibles en el menú público.
func (uc *PageUseCase) ListEnabled(ctx context.Context) ([]entity.Page, error) {
	return selectAll[entity.Page](ctx, uc.store, repository.TablePages, bySortOrder.Where("is_enabled", true))
}

// Toggle invierte is_enabled y devuelve el nuevo valor.
func (uc *PageUseCase) Toggle(ctx context.Context, id string) (bool, error) {
	p, err := selectOne[entity.Page](ctx, uc.store, repository.TablePages, repository.Query{}.Where("id", id))
	if err != nil {
		return false, err
	}
	if p == nil {
		return false, domain.ErrNotFound
	}
	next := !p.IsEnabled
	if err := uc.store.Update(ctx, repository.TablePages, id, repository.Row{"is_enabled": next}); err != nil {
		return false, err
	}
	return next, nil
}

// Move mueve la página id un lugar en dir y renumera toda la lista. Mover la primera
// hacia arriba o la última hacia abajo no escribe nada y devuelve la lista tal cual.
// El nuevo orden se guarda con un único Store.Reorder: si falla no queda nada a medias
// y el error es domain.ErrReorderFailed (repetir el movimiento es seguro).
func (uc *PageUseCase) Move(ctx context.Context, id string, dir ordering.Direction) ([]entity.Page, error) {
	pages, err := uc.List(ctx)
	if err != nil {
		return nil, err
	}
	index := -1
	for i := range pages {
		if pages[i].ID == id {
			index = i
			break
		}
	}
	if index < 0 {
		return nil, domain.ErrNotFound
	}

	moved, ok := ordering.Move(pages, index, dir)
	if !ok {
		return pages, nil
	}
	updates := make([]repository.SortUpdate, 0, len(moved))
	for _, p := range moved {
		updates = append(updates, repository.SortUpdate{ID: p.ID, SortOrder: p.SortOrder})
	}
	if err := uc.store.Reorder(ctx, repository.TablePages, updates); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrReorderFailed, err)
	}
	return moved, nil
}
