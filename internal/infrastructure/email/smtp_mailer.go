package email

import (
	"fmt"

	"gopkg.in/gomail.v2"

	appstock "github.com/jhoicas/stock-management-api/internal/application/stock"
)

var _ appstock.Mailer = (*SMTPMailer)(nil)

// SMTPMailer envía correos de notificación vía SMTP usando gomail.
type SMTPMailer struct {
	host string
	port int
	user string
	pass string
	from string
}

// NewSMTPMailer construye el mailer SMTP.
func NewSMTPMailer(host string, port int, user, pass, from string) *SMTPMailer {
	return &SMTPMailer{host: host, port: port, user: user, pass: pass, from: from}
}

// Send envía un correo de texto plano.
func (m *SMTPMailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	dialer := gomail.NewDialer(m.host, m.port, m.user, m.pass)
	if err := dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("enviar correo a %s: %w", to, err)
	}
	return nil
}
