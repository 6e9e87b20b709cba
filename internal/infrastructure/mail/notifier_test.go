package mail_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"gopkg.in/gomail.v2"

	"github.com/jhoicas/everest-site/internal/domain/entity"
	"github.com/jhoicas/everest-site/internal/infrastructure/mail"
)

// chanSender entrega cada mensaje por un canal; con block espera antes de "enviar".
type chanSender struct {
	sent  chan *gomail.Message
	block chan struct{}
	err   error
}

func (s *chanSender) DialAndSend(msgs ...*gomail.Message) error {
	if s.block != nil {
		<-s.block
	}
	for _, m := range msgs {
		s.sent <- m
	}
	return s.err
}

var inquiry = entity.Inquiry{
	ID:        "inq-1",
	Name:      "Ravi Kumar",
	Company:   "Kumar Industries",
	Phone:     "+91 98765 43210",
	Email:     "ravi@example.com",
	Message:   "Need a quote",
	CreatedAt: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
}

func TestNotifyInquiry_EnviaEnSegundoPlano(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	sender := &chanSender{sent: make(chan *gomail.Message, 1)}
	n, err := mail.NewInquiryNotifierWithSender(sender, "site@everest.example", 2, nil)
	require.NoError(t, err)

	require.NoError(t, n.NotifyInquiry(context.Background(), inquiry, "sales@everest.example"))

	select {
	case m := <-sender.sent:
		assert.Equal(t, []string{"site@everest.example"}, m.GetHeader("From"))
		assert.Equal(t, []string{"sales@everest.example"}, m.GetHeader("To"))
		assert.Equal(t, []string{"ravi@example.com"}, m.GetHeader("Reply-To"))
		assert.Equal(t, []string{"New inquiry from Ravi Kumar"}, m.GetHeader("Subject"))
	case <-time.After(2 * time.Second):
		t.Fatal("el aviso no se envió")
	}
	require.NoError(t, n.Close(2*time.Second))
}

func TestNotifyInquiry_FalloDelSMTPNoSeDevuelve(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	sender := &chanSender{sent: make(chan *gomail.Message, 1), err: errors.New("535 auth failed")}
	n, err := mail.NewInquiryNotifierWithSender(sender, "site@everest.example", 1, nil)
	require.NoError(t, err)

	assert.NoError(t, n.NotifyInquiry(context.Background(), inquiry, "sales@everest.example"))
	<-sender.sent
	require.NoError(t, n.Close(2*time.Second))
}

func TestNotifyInquiry_PoolLlenoNoBloquea(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	block := make(chan struct{})
	sender := &chanSender{sent: make(chan *gomail.Message, 2), block: block}
	n, err := mail.NewInquiryNotifierWithSender(sender, "site@everest.example", 1, nil)
	require.NoError(t, err)

	require.NoError(t, n.NotifyInquiry(context.Background(), inquiry, "sales@everest.example"))
	// el único worker está ocupado
	err = n.NotifyInquiry(context.Background(), inquiry, "sales@everest.example")
	assert.ErrorIs(t, err, ants.ErrPoolOverload)

	close(block)
	<-sender.sent
	require.NoError(t, n.Close(2*time.Second))
}

func TestBody(t *testing.T) {
	body := mail.Body(inquiry)

	assert.Contains(t, body, "Name: Ravi Kumar\n")
	assert.Contains(t, body, "Company: Kumar Industries\n")
	assert.Contains(t, body, "Phone: +91 98765 43210\n")
	assert.Contains(t, body, "Email: ravi@example.com\n")
	assert.Contains(t, body, "Received: Fri, 01 Mar 2024 10:00:00 UTC\n\nNeed a quote\n")

	noCompany := inquiry
	noCompany.Company = ""
	assert.NotContains(t, mail.Body(noCompany), "Company:")
}
