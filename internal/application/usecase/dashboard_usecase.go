package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jhoicas/everest-site/internal/application/dto"
	"github.com/jhoicas/everest-site/internal/domain/repository"
	"golang.org/x/sync/errgroup"
)

// DashboardUseCase contadores de la pestaña principal del panel.
type DashboardUseCase struct {
	store repository.Store
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(store repository.Store) *DashboardUseCase {
	return &DashboardUseCase{store: store}
}

// Counts cuenta productos, consultas, categorías y servicios en paralelo. Un conteo
// que falla queda en 0; los errores se devuelven juntos para registrarlos.
func (uc *DashboardUseCase) Counts(ctx context.Context) (dto.DashboardCounts, error) {
	var (
		out  dto.DashboardCounts
		mu   sync.Mutex
		errs []error
		g    errgroup.Group
	)
	count := func(table string, dst *int) {
		g.Go(func() error {
			n, err := uc.store.Count(ctx, table, repository.Query{})
			if err != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf("contar %s: %w", table, err))
				mu.Unlock()
				return nil
			}
			*dst = n
			return nil
		})
	}
	count(repository.TableProducts, &out.Products)
	count(repository.TableInquiries, &out.Inquiries)
	count(repository.TableCategories, &out.Categories)
	count(repository.TableServices, &out.Services)
	_ = g.Wait()
	return out, errors.Join(errs...)
}
