package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/jhoicas/everest-site/internal/application/dto"
	"github.com/jhoicas/everest-site/internal/domain"
	"github.com/jhoicas/everest-site/internal/domain/entity"
	"github.com/jhoicas/everest-site/internal/domain/repository"
)

// ServiceUseCase CRUD de servicios.
type ServiceUseCase struct {
	store repository.Store
}

// NewServiceUseCase construye el caso de uso.
func NewServiceUseCase(store repository.Store) *ServiceUseCase {
	return &ServiceUseCase{store: store}
}

// List devuelve los servicios ordenados por sort_order.
func (uc *ServiceUseCase) List(ctx context.Context) ([]entity.Service, error) {
	return selectAll[entity.Service](ctx, uc.store, repository.TableServices, bySortOrder)
}

// GetByID obtiene un servicio; nil si no existe.
func (uc *ServiceUseCase) GetByID(ctx context.Context, id string) (*entity.Service, error) {
	return selectOne[entity.Service](ctx, uc.store, repository.TableServices, repository.Query{}.Where("id", id))
}

// Create crea un servicio. Sin icono se usa "zap".
func (uc *ServiceUseCase) Create(ctx context.Context, in dto.ServiceRequest) (*entity.Service, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	order, err := nextSortOrder(ctx, uc.store, repository.TableServices)
	if err != nil {
		return nil, err
	}
	s := entity.Service{
		ID:          uuid.New().String(),
		Title:       in.Title,
		Description: in.Description,
		Icon:        iconOrDefault(in.Icon),
		SortOrder:   order,
	}
	row := serviceRow(s)
	row["id"] = s.ID
	row["sort_order"] = s.SortOrder
	if _, err := uc.store.Insert(ctx, repository.TableServices, row); err != nil {
		return nil, err
	}
	return &s, nil
}

// Update reemplaza título, descripción e icono.
func (uc *ServiceUseCase) Update(ctx context.Context, id string, in dto.ServiceRequest) (*entity.Service, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	s := entity.Service{ID: id, Title: in.Title, Description: in.Description, Icon: iconOrDefault(in.Icon)}
	if err := uc.store.Update(ctx, repository.TableServices, id, serviceRow(s)); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, id)
}

// Delete elimina un servicio.
func (uc *ServiceUseCase) Delete(ctx context.Context, id string) error {
	return uc.store.Delete(ctx, repository.TableServices, id)
}

func iconOrDefault(icon string) string {
	if icon == "" {
		return entity.IconZap
	}
	return icon
}

func serviceRow(s entity.Service) repository.Row {
	return repository.Row{
		"title":       s.Title,
		"description": s.Description,
		"icon":        s.Icon,
	}
}
