package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/jhoicas/everest-site/internal/application/dto"
	"github.com/jhoicas/everest-site/internal/domain"
	"github.com/jhoicas/everest-site/internal/domain/entity"
	"github.com/jhoicas/everest-site/internal/domain/repository"
)

// GalleryUseCase alta, listado y baja de imágenes de la galería.
type GalleryUseCase struct {
	store repository.Store
}

// NewGalleryUseCase construye el caso de uso.
func NewGalleryUseCase(store repository.Store) *GalleryUseCase {
	return &GalleryUseCase{store: store}
}

// List devuelve las imágenes ordenadas por sort_order.
func (uc *GalleryUseCase) List(ctx context.Context) ([]entity.GalleryImage, error) {
	return selectAll[entity.GalleryImage](ctx, uc.store, repository.TableGalleryImages, bySortOrder)
}

// Create agrega una imagen al final. La URL es obligatoria (pegada o resultado de una subida).
func (uc *GalleryUseCase) Create(ctx context.Context, in dto.GalleryImageRequest) (*entity.GalleryImage, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if in.ImageURL == "" {
		return nil, &dto.ValidationError{Fields: []dto.FieldDetail{{Field: "image_url", Message: "This field is required"}}}
	}
	order, err := nextSortOrder(ctx, uc.store, repository.TableGalleryImages)
	if err != nil {
		return nil, err
	}
	g := entity.GalleryImage{
		ID:          uuid.New().String(),
		Title:       in.Title,
		ImageURL:    in.ImageURL,
		Description: in.Description,
		SortOrder:   order,
	}
	row := repository.Row{
		"id":          g.ID,
		"title":       g.Title,
		"image_url":   g.ImageURL,
		"description": g.Description,
		"sort_order":  g.SortOrder,
	}
	if _, err := uc.store.Insert(ctx, repository.TableGalleryImages, row); err != nil {
		return nil, err
	}
	return &g, nil
}

// Delete elimina una imagen.
func (uc *GalleryUseCase) Delete(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	return uc.store.Delete(ctx, repository.TableGalleryImages, id)
}
