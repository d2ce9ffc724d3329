package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// El handler HTTP los traduce a códigos de estado; ver interfaces/http.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")

	// ErrInvalidCredentials cubre email desconocido y contraseña incorrecta
	// por igual: el login nunca revela cuál de los dos falló.
	ErrInvalidCredentials = errors.New("email o contraseña inválidos")

	// ErrResetTokenInvalid cubre token de recuperación inexistente y expirado
	// por igual, para no servir de oráculo.
	ErrResetTokenInvalid = errors.New("token de recuperación inválido o expirado")

	ErrPasswordMismatch = errors.New("las contraseñas no coinciden")
	ErrUnauthorized     = errors.New("no autorizado")
	ErrForbidden        = errors.New("acceso denegado")
	ErrValidation       = errors.New("entrada inválida")
)
