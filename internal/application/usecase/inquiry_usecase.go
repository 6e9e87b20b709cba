package usecase

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/google/uuid"
	"github.com/jhoicas/everest-site/internal/application/dto"
	"github.com/jhoicas/everest-site/internal/application/ports"
	"github.com/jhoicas/everest-site/internal/domain"
	"github.com/jhoicas/everest-site/internal/domain/entity"
	"github.com/jhoicas/everest-site/internal/domain/repository"
	"github.com/jhoicas/everest-site/pkg/logger"
)

// InquiryUseCase consultas del formulario de contacto: alta pública y gestión en el panel.
type InquiryUseCase struct {
	store     repository.Store
	notifier  ports.InquiryNotifier
	recipient string
	log       *logger.Logger
	now       func() time.Time
}

// NewInquiryUseCase construye el caso de uso. recipient vacío usa el email de site_settings.
func NewInquiryUseCase(store repository.Store, notifier ports.InquiryNotifier, recipient string, log *logger.Logger) *InquiryUseCase {
	if notifier == nil {
		notifier = ports.NopNotifier{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &InquiryUseCase{store: store, notifier: notifier, recipient: recipient, log: log, now: time.Now}
}

// Submit guarda una consulta nueva (no leída) y avisa a la empresa. Un fallo del aviso
// se registra pero no invalida el envío.
func (uc *InquiryUseCase) Submit(ctx context.Context, in dto.ContactRequest) (*entity.Inquiry, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	inq := entity.Inquiry{
		ID:         uuid.New().String(),
		Name:       in.Name,
		Company:    in.Company,
		Phone:      in.Phone,
		Email:      in.Email,
		CategoryID: in.CategoryID,
		Message:    in.Message,
		IsRead:     false,
		CreatedAt:  uc.now().UTC(),
	}
	row := repository.Row{
		"id":         inq.ID,
		"name":       inq.Name,
		"company":    inq.Company,
		"phone":      inq.Phone,
		"email":      inq.Email,
		"message":    inq.Message,
		"is_read":    inq.IsRead,
		"created_at": inq.CreatedAt,
	}
	// category_id es opcional; vacío se guarda como NULL
	if inq.CategoryID != "" {
		row["category_id"] = inq.CategoryID
	}
	if _, err := uc.store.Insert(ctx, repository.TableInquiries, row); err != nil {
		return nil, err
	}

	if to := uc.recipientFor(ctx); to != "" {
		if err := uc.notifier.NotifyInquiry(ctx, inq, to); err != nil {
			uc.log.Warn().Err(err).Str("inquiry_id", inq.ID).Msg("no se pudo encolar el aviso de consulta")
		}
	}
	return &inq, nil
}

func (uc *InquiryUseCase) recipientFor(ctx context.Context) string {
	if uc.recipient != "" {
		return uc.recipient
	}
	s, err := selectOne[entity.SiteSettings](ctx, uc.store, repository.TableSiteSettings, repository.Query{})
	if err != nil || s == nil {
		return ""
	}
	return s.Email
}

// List devuelve las consultas, las más recientes primero.
func (uc *InquiryUseCase) List(ctx context.Context) ([]entity.Inquiry, error) {
	return selectAll[entity.Inquiry](ctx, uc.store, repository.TableInquiries, repository.Query{}.OrderDesc("created_at"))
}

// CountUnread cuenta las consultas sin leer.
func (uc *InquiryUseCase) CountUnread(ctx context.Context) (int, error) {
	return uc.store.Count(ctx, repository.TableInquiries, repository.Query{}.Where("is_read", false))
}

// ToggleRead invierte is_read y devuelve el nuevo valor.
func (uc *InquiryUseCase) ToggleRead(ctx context.Context, id string) (bool, error) {
	inq, err := selectOne[entity.Inquiry](ctx, uc.store, repository.TableInquiries, repository.Query{}.Where("id", id))
	if err != nil {
		return false, err
	}
	if inq == nil {
		return false, domain.ErrNotFound
	}
	next := !inq.IsRead
	if err := uc.store.Update(ctx, repository.TableInquiries, id, repository.Row{"is_read": next}); err != nil {
		return false, err
	}
	return next, nil
}

// Delete elimina una consulta.
func (uc *InquiryUseCase) Delete(ctx context.Context, id string) error {
	return uc.store.Delete(ctx, repository.TableInquiries, id)
}

// ExportCSV escribe todas las consultas como CSV (cabecera incluida).
func (uc *InquiryUseCase) ExportCSV(ctx context.Context, w io.Writer) (int, error) {
	list, err := uc.List(ctx)
	if err != nil {
		return 0, err
	}
	if err := gocsv.Marshal(list, w); err != nil {
		return 0, fmt.Errorf("exportar consultas: %w", err)
	}
	return len(list), nil
}
