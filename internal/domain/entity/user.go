package entity

import "time"

// Role es el rol cerrado de un usuario. Se modela como tipo propio (no string
// suelto) para que un rol inválido sea detectable en construcción, no en el
// chequeo de autorización.
type Role string

// Roles válidos para User.
const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// Valid indica si el rol pertenece al conjunto cerrado.
func (r Role) Valid() bool {
	return r == RoleCustomer || r == RoleAdmin
}

// User representa un principal del sistema (cliente o administrador).
// El email se persiste en minúsculas; la comparación es case-insensitive.
//
// Invariante: ResetTokenHash y ResetTokenExpiry están ambos presentes o ambos
// ausentes. Solo se guarda el hash SHA-256 del secreto de recuperación, nunca
// el secreto en claro.
type User struct {
	ID               string
	Email            string
	Name             string
	PasswordHash     string // bcrypt hash, nunca se serializa hacia afuera
	Role             Role
	ResetTokenHash   *string
	ResetTokenExpiry *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// HasActiveResetToken indica si existe un token de recuperación aún vigente.
func (u *User) HasActiveResetToken(now time.Time) bool {
	return u.ResetTokenHash != nil && u.ResetTokenExpiry != nil && u.ResetTokenExpiry.After(now)
}
