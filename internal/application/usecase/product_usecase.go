package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/jhoicas/everest-site/internal/application/dto"
	"github.com/jhoicas/everest-site/internal/domain"
	"github.com/jhoicas/everest-site/internal/domain/entity"
	"github.com/jhoicas/everest-site/internal/domain/repository"
	"github.com/jhoicas/everest-site/pkg/slug"
)

const (
	// FeaturedLimit productos destacados en la portada.
	FeaturedLimit = 6
	// SimilarLimit productos relacionados en el detalle.
	SimilarLimit = 6
)

// ProductUseCase lectura pública y CRUD de productos del catálogo.
type ProductUseCase struct {
	store repository.Store
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(store repository.Store) *ProductUseCase {
	return &ProductUseCase{store: store}
}

// List devuelve todos los productos ordenados por sort_order.
func (uc *ProductUseCase) List(ctx context.Context) ([]entity.Product, error) {
	return selectAll[entity.Product](ctx, uc.store, repository.TableProducts, bySortOrder)
}

// ListByCategory filtra por category_id; vacío devuelve todos.
func (uc *ProductUseCase) ListByCategory(ctx context.Context, categoryID string) ([]entity.Product, error) {
	q := bySortOrder
	if categoryID != "" {
		q = q.Where("category_id", categoryID)
	}
	return selectAll[entity.Product](ctx, uc.store, repository.TableProducts, q)
}

// Featured hasta limit productos con is_featured.
func (uc *ProductUseCase) Featured(ctx context.Context, limit int) ([]entity.Product, error) {
	q := bySortOrder.Where("is_featured", true).Take(limit)
	return selectAll[entity.Product](ctx, uc.store, repository.TableProducts, q)
}

// GetBySlug obtiene un producto por slug; nil si no existe.
func (uc *ProductUseCase) GetBySlug(ctx context.Context, s string) (*entity.Product, error) {
	if s == "" {
		return nil, nil
	}
	return selectOne[entity.Product](ctx, uc.store, repository.TableProducts, repository.Query{}.Where("slug", s))
}

// GetByID obtiene un producto por id; nil si no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return selectOne[entity.Product](ctx, uc.store, repository.TableProducts, repository.Query{}.Where("id", id))
}

// Images imágenes adicionales de un producto, en orden.
func (uc *ProductUseCase) Images(ctx context.Context, productID string) ([]entity.ProductImage, error) {
	q := bySortOrder.Where("product_id", productID)
	return selectAll[entity.ProductImage](ctx, uc.store, repository.TableProductImages, q)
}

// Similar otros productos de la misma categoría, sin incluir p.
func (uc *ProductUseCase) Similar(ctx context.Context, p entity.Product, limit int) ([]entity.Product, error) {
	if p.CategoryID == "" {
		return []entity.Product{}, nil
	}
	q := bySortOrder.Where("category_id", p.CategoryID).WhereNot("id", p.ID).Take(limit)
	return selectAll[entity.Product](ctx, uc.store, repository.TableProducts, q)
}

// Create crea un producto. Sin slug se deriva del nombre.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.ProductRequest) (*entity.Product, error) {
	p, err := productFromRequest(in)
	if err != nil {
		return nil, err
	}
	order, err := nextSortOrder(ctx, uc.store, repository.TableProducts)
	if err != nil {
		return nil, err
	}
	p.ID = uuid.New().String()
	p.SortOrder = order
	row := productRow(p)
	row["id"] = p.ID
	row["sort_order"] = p.SortOrder
	if _, err := uc.store.Insert(ctx, repository.TableProducts, row); err != nil {
		return nil, err
	}
	return &p, nil
}

// Update reemplaza los campos editables; conserva sort_order.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.ProductRequest) (*entity.Product, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	p, err := productFromRequest(in)
	if err != nil {
		return nil, err
	}
	if err := uc.store.Update(ctx, repository.TableProducts, id, productRow(p)); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, id)
}

// Delete elimina un producto.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	return uc.store.Delete(ctx, repository.TableProducts, id)
}

func productFromRequest(in dto.ProductRequest) (entity.Product, error) {
	if err := dto.Validate(in); err != nil {
		return entity.Product{}, err
	}
	specs, err := in.ResolveSpecifications()
	if err != nil {
		return entity.Product{}, err
	}
	s := in.Slug
	if s == "" {
		s = slug.FromName(in.Name)
	}
	return entity.Product{
		Name:            in.Name,
		Slug:            s,
		CategoryID:      in.CategoryID,
		Description:     in.Description,
		LongDescription: in.LongDescription,
		ImageURL:        in.ImageURL,
		PriceRange:      in.PriceRange,
		Specifications:  specs,
		IsFeatured:      in.IsFeatured,
	}, nil
}

func productRow(p entity.Product) repository.Row {
	specs := map[string]any(p.Specifications)
	if specs == nil {
		specs = map[string]any{}
	}
	return repository.Row{
		"name":             p.Name,
		"slug":             p.Slug,
		"category_id":      p.CategoryID,
		"description":      p.Description,
		"long_description": p.LongDescription,
		"image_url":        p.ImageURL,
		"price_range":      p.PriceRange,
		"specifications":   specs,
		"is_featured":      p.IsFeatured,
	}
}
