package mail

import (
	"context"

	"github.com/jhoicas/tienda-api/internal/application/ports"
	"github.com/jhoicas/tienda-api/pkg/logger"
)

var _ ports.Mailer = (*LogMailer)(nil)

// LogMailer escribe el correo al log en lugar de enviarlo. Se usa en
// development cuando no hay SMTP configurado: el enlace de recuperación queda
// visible en la consola.
type LogMailer struct {
	log *logger.Logger
}

// NewLogMailer construye el mailer de desarrollo.
func NewLogMailer(log *logger.Logger) *LogMailer {
	return &LogMailer{log: log}
}

// Send registra destino, asunto y cuerpo; nunca falla.
func (m *LogMailer) Send(_ context.Context, to, subject, htmlBody string) error {
	m.log.Info().
		Str("to", to).
		Str("subject", subject).
		Str("body", htmlBody).
		Msg("correo simulado (sin SMTP configurado)")
	return nil
}
