package email

import (
	appstock "github.com/jhoicas/stock-management-api/internal/application/stock"
	"github.com/jhoicas/stock-management-api/pkg/logger"
)

var _ appstock.Mailer = (*LogMailer)(nil)

// LogMailer implementación de Mailer para development: escribe el correo en el
// log en vez de enviarlo. Se inyecta cuando SMTP_HOST no está configurado.
type LogMailer struct {
	log *logger.Logger
}

func NewLogMailer(log *logger.Logger) *LogMailer {
	return &LogMailer{log: log}
}

// Send registra el correo sin enviarlo.
func (m *LogMailer) Send(to, subject, body string) error {
	m.log.Info().
		Str("to", to).
		Str("subject", subject).
		Str("body", body).
		Msg("correo simulado (SMTP no configurado)")
	return nil
}
