package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/pkg/password"
)

// resetSecretBytes bytes aleatorios del secreto; en hex son 64 caracteres.
const resetSecretBytes = 32

// RequestReset inicia la recuperación de contraseña en dos fases:
// guardar hash+expiración del secreto, luego intentar la entrega por correo.
// Si la entrega falla se limpian ambos campos (rollback) para que no quede un
// token válido huérfano, y el fallo se propaga al llamador.
// El secreto en claro solo viaja en el correo; nunca se persiste.
func (uc *UseCase) RequestReset(ctx context.Context, email string) error {
	user, err := uc.users.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}

	rawSecret, err := newResetSecret()
	if err != nil {
		return err
	}
	expiry := uc.now().Add(uc.cfg.ResetTokenTTL)
	// Un nuevo token reemplaza al anterior: a lo sumo uno activo por usuario.
	if err := uc.users.SetResetToken(ctx, user.ID, HashResetSecret(rawSecret), expiry); err != nil {
		return err
	}

	resetURL := fmt.Sprintf("%s/api/v1/password/reset/%s", uc.cfg.FrontendURL, rawSecret)
	body := resetEmailBody(user.Name, resetURL)
	if err := uc.mailer.Send(ctx, user.Email, "Recuperación de contraseña", body); err != nil {
		// Fase de reversa: sin entrega no debe sobrevivir un token válido.
		if clearErr := uc.users.ClearResetToken(ctx, user.ID); clearErr != nil {
			return fmt.Errorf("entrega de correo falló (%v) y rollback del token falló: %w", err, clearErr)
		}
		return fmt.Errorf("entrega de correo de recuperación: %w", err)
	}
	return nil
}

// ResetPassword consume el token de recuperación exactamente una vez:
// valida el secreto contra el hash almacenado con expiración vigente, reemplaza
// la contraseña, limpia los campos de recuperación y emite sesión (auto-login).
// "No coincide" y "expiró" devuelven el mismo error.
func (uc *UseCase) ResetPassword(ctx context.Context, rawSecret string, in dto.ResetPasswordRequest) (*SessionResult, error) {
	if in.Password != in.ConfirmPassword {
		return nil, domain.ErrPasswordMismatch
	}
	user, err := uc.users.FindByResetTokenHash(ctx, HashResetSecret(rawSecret), uc.now())
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrResetTokenInvalid
	}
	hash, err := password.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	// UpdatePassword limpia reset_token_hash y reset_token_expiry en la misma
	// sentencia: el token queda consumido.
	if err := uc.users.UpdatePassword(ctx, user.ID, hash, uc.now()); err != nil {
		return nil, err
	}
	user.PasswordHash = hash
	user.ResetTokenHash = nil
	user.ResetTokenExpiry = nil
	return uc.issueSession(user)
}

// newResetSecret genera el secreto aleatorio que viaja en el enlace del correo.
func newResetSecret() (string, error) {
	b := make([]byte, resetSecretBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// HashResetSecret deriva el hash SHA-256 (hex) que sí se persiste.
// Exportado para que los tests de integración construyan fixtures.
func HashResetSecret(rawSecret string) string {
	sum := sha256.Sum256([]byte(rawSecret))
	return hex.EncodeToString(sum[:])
}

// resetEmailBody arma el cuerpo HTML del correo de recuperación.
func resetEmailBody(name, resetURL string) string {
	return fmt.Sprintf(`<p>Hola %s,</p>
<p>Recibimos una solicitud para restablecer tu contraseña. El enlace vence pronto:</p>
<p><a href="%s">%s</a></p>
<p>Si no solicitaste el cambio, ignora este correo; tu contraseña actual sigue vigente.</p>`,
		name, resetURL, resetURL)
}
