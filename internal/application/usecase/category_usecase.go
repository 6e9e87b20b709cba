package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/jhoicas/everest-site/internal/application/dto"
	"github.com/jhoicas/everest-site/internal/domain"
	"github.com/jhoicas/everest-site/internal/domain/entity"
	"github.com/jhoicas/everest-site/internal/domain/repository"
)

// CategoryUseCase CRUD de categorías.
type CategoryUseCase struct {
	store repository.Store
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(store repository.Store) *CategoryUseCase {
	return &CategoryUseCase{store: store}
}

// List devuelve las categorías ordenadas por sort_order.
func (uc *CategoryUseCase) List(ctx context.Context) ([]entity.Category, error) {
	return selectAll[entity.Category](ctx, uc.store, repository.TableCategories, bySortOrder)
}

// GetByID obtiene una categoría; nil si no existe.
func (uc *CategoryUseCase) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	if id == "" {
		return nil, nil
	}
	return selectOne[entity.Category](ctx, uc.store, repository.TableCategories, repository.Query{}.Where("id", id))
}

// GetBySlug obtiene una categoría por slug; nil si no existe.
func (uc *CategoryUseCase) GetBySlug(ctx context.Context, slug string) (*entity.Category, error) {
	return selectOne[entity.Category](ctx, uc.store, repository.TableCategories, repository.Query{}.Where("slug", slug))
}

// Create crea una categoría al final de la lista. Slug repetido -> domain.ErrDuplicate.
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CategoryRequest) (*entity.Category, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	order, err := nextSortOrder(ctx, uc.store, repository.TableCategories)
	if err != nil {
		return nil, err
	}
	c := entity.Category{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Slug:        in.Slug,
		Description: in.Description,
		ImageURL:    in.ImageURL,
		SortOrder:   order,
	}
	row := categoryRow(c)
	row["id"] = c.ID
	row["sort_order"] = c.SortOrder
	if _, err := uc.store.Insert(ctx, repository.TableCategories, row); err != nil {
		return nil, err
	}
	return &c, nil
}

// Update reemplaza los campos editables; conserva sort_order.
func (uc *CategoryUseCase) Update(ctx context.Context, id string, in dto.CategoryRequest) (*entity.Category, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	c := entity.Category{ID: id, Name: in.Name, Slug: in.Slug, Description: in.Description, ImageURL: in.ImageURL}
	if err := uc.store.Update(ctx, repository.TableCategories, id, categoryRow(c)); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, id)
}

// Delete elimina una categoría. Con productos asociados el backend responde domain.ErrConflict.
func (uc *CategoryUseCase) Delete(ctx context.Context, id string) error {
	return uc.store.Delete(ctx, repository.TableCategories, id)
}

func categoryRow(c entity.Category) repository.Row {
	return repository.Row{
		"name":        c.Name,
		"slug":        c.Slug,
		"description": c.Description,
		"image_url":   c.ImageURL,
	}
}
