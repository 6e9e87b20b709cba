package auth

import (
	"context"
	"time"

	"github.com/jhoicas/everest-site/internal/domain"
	"github.com/jhoicas/everest-site/internal/domain/entity"
	"github.com/jhoicas/everest-site/internal/domain/repository"
)

// AdminAuthorizer decide quién puede entrar al panel: una fila en admins con el id
// del usuario de auth.
type AdminAuthorizer struct {
	store repository.Store
}

// NewAdminAuthorizer construye el autorizador.
func NewAdminAuthorizer(store repository.Store) *AdminAuthorizer {
	return &AdminAuthorizer{store: store}
}

// IsAdmin true si userID tiene membresía.
func (a *AdminAuthorizer) IsAdmin(ctx context.Context, userID string) (bool, error) {
	if userID == "" {
		return false, nil
	}
	n, err := a.store.Count(ctx, repository.TableAdmins, repository.Query{}.Where("id", userID))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Grant da acceso al panel. Repetir el alta devuelve domain.ErrDuplicate.
func (a *AdminAuthorizer) Grant(ctx context.Context, userID, email string) (*entity.Admin, error) {
	if userID == "" {
		return nil, domain.ErrInvalidInput
	}
	adm := entity.Admin{ID: userID, Email: email, CreatedAt: time.Now().UTC()}
	row := repository.Row{"id": adm.ID, "email": adm.Email, "created_at": adm.CreatedAt}
	if _, err := a.store.Insert(ctx, repository.TableAdmins, row); err != nil {
		return nil, err
	}
	return &adm, nil
}

// Revoke quita el acceso.
func (a *AdminAuthorizer) Revoke(ctx context.Context, userID string) error {
	return a.store.Delete(ctx, repository.TableAdmins, userID)
}

// List administradores registrados.
func (a *AdminAuthorizer) List(ctx context.Context) ([]entity.Admin, error) {
	rows, err := a.store.Select(ctx, repository.TableAdmins, repository.Query{}.Order("created_at"))
	if err != nil {
		return nil, err
	}
	return repository.DecodeAll[entity.Admin](rows)
}
