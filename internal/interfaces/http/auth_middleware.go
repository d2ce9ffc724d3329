package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
	"github.com/jhoicas/tienda-api/pkg/token"
)

// SessionCookie nombre de la cookie HTTP-only que lleva el token de sesión.
const SessionCookie = "token"

// localUser clave de c.Locals donde queda el principal resuelto.
const localUser = "current_user"

// AuthMiddleware resuelve el principal de cada petición protegida:
// lee la cookie de sesión, verifica el token y recarga el usuario desde la DB
// (un usuario borrado tras emitir el token queda fuera aunque la firma sea
// válida). El usuario resuelto queda en c.Locals: es el único conducto por el
// que los handlers saben quién llama.
func AuthMiddleware(codec *token.Codec, users repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cookie := c.Cookies(SessionCookie)
		if cookie == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "inicia sesión para acceder"})
		}
		userID, err := codec.Verify(cookie)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "sesión inválida o expirada"})
		}
		user, err := users.FindByID(c.Context(), userID)
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "AUTH_CHECK_FAILED", Message: "no se pudo verificar la sesión, intente más tarde"})
		}
		if user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "sesión inválida o expirada"})
		}
		c.Locals(localUser, user)
		return c.Next()
	}
}

// RequireRole autoriza contra un allow-list de roles por ruta. Debe usarse
// DESPUÉS de AuthMiddleware. Función pura de (rol del principal, allow-list):
// sin I/O ni efectos.
func RequireRole(allowed ...entity.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "inicia sesión para acceder"})
		}
		for _, role := range allowed {
			if user.Role == role {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol sin permiso para esta ruta"})
	}
}

// CurrentUser devuelve el principal resuelto por AuthMiddleware.
// nil solo si el middleware no corrió (error de programación en el router).
func CurrentUser(c *fiber.Ctx) *entity.User {
	user, _ := c.Locals(localUser).(*entity.User)
	return user
}

// setSessionCookie emite la cookie de sesión HTTP-only con expiración = TTL del token.
func setSessionCookie(c *fiber.Ctx, tok string, ttl time.Duration) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    tok,
		Expires:  time.Now().Add(ttl),
		HTTPOnly: true,
		Path:     "/",
	})
}

// clearSessionCookie sobrescribe la cookie con valor vacío y expiración en
// epoch: es la única forma de invalidar una sesión antes de su expiración
// natural (no hay lista de revocación en el servidor).
func clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Path:     "/",
	})
}
