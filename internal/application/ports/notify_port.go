package ports

import (
	"context"

	"github.com/jhoicas/everest-site/internal/domain/entity"
)

// InquiryNotifier avisa a la empresa de una consulta nueva. Debe volver rápido: el
// envío real puede quedar en segundo plano.
type InquiryNotifier interface {
	NotifyInquiry(ctx context.Context, inquiry entity.Inquiry, recipient string) error
}

// NopNotifier no envía nada (SMTP sin configurar).
type NopNotifier struct{}

func (NopNotifier) NotifyInquiry(context.Context, entity.Inquiry, string) error { return nil }
