package ports

import "context"

// Mailer define el puerto de salida para entrega de mensajes (recuperación de
// contraseña). Cualquier adaptador (SMTP, log en development, mock en tests)
// debe implementar esta interfaz. El éxito o fallo de Send es la única señal
// que usa el ciclo de recuperación para decidir el rollback del token.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}
