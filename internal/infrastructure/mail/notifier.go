// Package mail envía por SMTP el aviso de consultas nuevas del formulario de contacto.
package mail

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/everest-site/internal/application/ports"
	"github.com/jhoicas/everest-site/internal/domain/entity"
	"github.com/jhoicas/everest-site/pkg/config"
	"github.com/jhoicas/everest-site/pkg/logger"
	"github.com/panjf2000/ants/v2"
	"gopkg.in/gomail.v2"
)

var _ ports.InquiryNotifier = (*InquiryNotifier)(nil)

// Sender entrega un mensaje armado. *gomail.Dialer lo implementa.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// InquiryNotifier arma el correo y lo envía en un pool acotado de workers, así el
// POST de contacto no espera al servidor SMTP.
type InquiryNotifier struct {
	sender Sender
	from   string
	pool   *ants.Pool
	log    *logger.Logger
}

// NewInquiryNotifier crea el notificador con un dialer SMTP.
func NewInquiryNotifier(cfg config.SMTPConfig, workers int, log *logger.Logger) (*InquiryNotifier, error) {
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)
	from := cfg.From
	if from == "" {
		from = cfg.User
	}
	return NewInquiryNotifierWithSender(d, from, workers, log)
}

// NewInquiryNotifierWithSender igual que NewInquiryNotifier con un Sender propio.
func NewInquiryNotifierWithSender(sender Sender, from string, workers int, log *logger.Logger) (*InquiryNotifier, error) {
	if workers <= 0 {
		workers = 2
	}
	// Nonblocking: si todos los workers están ocupados Submit falla en vez de bloquear la petición.
	pool, err := ants.NewPool(workers, ants.WithNonblocking(true))
	if err != nil {
		return nil, fmt.Errorf("mail: crear pool: %w", err)
	}
	if log == nil {
		log = logger.Nop()
	}
	return &InquiryNotifier{sender: sender, from: from, pool: pool, log: log}, nil
}

// NotifyInquiry encola el envío. Solo falla si no se pudo encolar.
func (n *InquiryNotifier) NotifyInquiry(_ context.Context, inq entity.Inquiry, recipient string) error {
	msg := n.message(inq, recipient)
	return n.pool.Submit(func() {
		start := time.Now()
		if err := n.sender.DialAndSend(msg); err != nil {
			n.log.Error().Err(err).Str("inquiry_id", inq.ID).Msg("aviso de consulta no enviado")
			return
		}
		n.log.Info().Str("inquiry_id", inq.ID).Dur("took", time.Since(start)).Msg("aviso de consulta enviado")
	})
}

// Close espera a que terminen los envíos en curso (hasta timeout) y libera el pool.
func (n *InquiryNotifier) Close(timeout time.Duration) error {
	return n.pool.ReleaseTimeout(timeout)
}

func (n *InquiryNotifier) message(inq entity.Inquiry, recipient string) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", recipient)
	if inq.Email != "" {
		m.SetHeader("Reply-To", inq.Email)
	}
	m.SetHeader("Subject", "New inquiry from "+inq.Name)
	m.SetBody("text/plain", Body(inq))
	return m
}

// Body texto del aviso.
func Body(inq entity.Inquiry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Name: %s\n", inq.Name)
	if inq.Company != "" {
		fmt.Fprintf(&b, "Company: %s\n", inq.Company)
	}
	fmt.Fprintf(&b, "Phone: %s\n", inq.Phone)
	fmt.Fprintf(&b, "Email: %s\n", inq.Email)
	fmt.Fprintf(&b, "Received: %s\n\n", inq.CreatedAt.Format(time.RFC1123))
	b.WriteString(inq.Message)
	b.WriteString("\n")
	return b.String()
}
