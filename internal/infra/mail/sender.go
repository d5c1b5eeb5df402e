package mail

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"html/template"

	"gopkg.in/gomail.v2"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

//go:embed templates/client_email.html
var clientEmailHTML string

var clientEmailTmpl = template.Must(template.New("client_email").Parse(clientEmailHTML))

// Dialer é a parte do gomail.Dialer usada aqui.
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

func NewEmailSender(host string, port int, user, password, from string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
		dialer:   gomail.NewDialer(host, port, user, password),
	}
}

// WithDialer troca o transporte SMTP (usado nos testes).
func (s *EmailSender) WithDialer(d Dialer) *EmailSender {
	s.dialer = d
	return s
}

// Send implementa usecase.EmailDispatcher via SMTP, com o mesmo conjunto
// de parâmetros do provedor EmailJS.
func (s *EmailSender) Send(ctx context.Context, msg entity.EmailMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var body bytes.Buffer
	err := clientEmailTmpl.Execute(&body, clientEmailData{
		ToName:  msg.ToName,
		Message: msg.Message,
		From:    s.From,
	})
	if err != nil {
		return fmt.Errorf("erro ao processar template: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetAddressHeader("To", msg.ToEmail, msg.ToName)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Message)
	m.AddAlternative("text/html", body.String())

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("erro ao enviar email SMTP: %w", err)
	}
	return nil
}
