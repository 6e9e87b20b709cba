package usecase

import (
	"context"

	"github.com/jhoicas/everest-site/internal/domain/entity"
	"github.com/jhoicas/everest-site/internal/domain/repository"
)

// TestimonialUseCase lectura de testimonios activos para la portada.
type TestimonialUseCase struct {
	store repository.Store
}

// NewTestimonialUseCase construye el caso de uso.
func NewTestimonialUseCase(store repository.Store) *TestimonialUseCase {
	return &TestimonialUseCase{store: store}
}

// ListActive testimonios con is_active, en orden.
func (uc *TestimonialUseCase) ListActive(ctx context.Context) ([]entity.Testimonial, error) {
	return selectAll[entity.Testimonial](ctx, uc.store, repository.TableTestimonials, bySortOrder.Where("is_active", true))
}
