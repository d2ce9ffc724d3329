package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/tienda-api/internal/application/auth"
	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/pkg/token"
)

// AuthHandler maneja sesión, perfil y recuperación de contraseña.
// El token de sesión viaja en la cookie HTTP-only `token`; además se devuelve
// en el cuerpo para clientes no-navegador.
type AuthHandler struct {
	uc    *auth.UseCase
	codec *token.Codec
	env   string
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.UseCase, codec *token.Codec, env string) *AuthHandler {
	return &AuthHandler{uc: uc, codec: codec, env: env}
}

// Register godoc
// @Summary      Registrar usuario
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "name, email, password"
// @Success      201   {object}  dto.SessionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/v1/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name, email y password son requeridos"})
	}
	if len(in.Password) < 8 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "password debe tener al menos 8 caracteres"})
	}
	out, err := h.uc.Register(c.Context(), in)
	if err != nil {
		return respondError(c, h.env, err)
	}
	setSessionCookie(c, out.Token, h.codec.TTL())
	return c.Status(fiber.StatusCreated).JSON(dto.SessionResponse{Token: out.Token, User: out.User})
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.SessionResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/v1/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Email == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email y password son requeridos"})
	}
	out, err := h.uc.Login(c.Context(), in)
	if err != nil {
		return respondError(c, h.env, err)
	}
	setSessionCookie(c, out.Token, h.codec.TTL())
	return c.JSON(dto.SessionResponse{Token: out.Token, User: out.User})
}

// Logout godoc
// @Summary      Cerrar sesión
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /api/v1/logout [get]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	// Idempotente: sobrescribir la cookie no falla aunque no hubiera sesión.
	clearSessionCookie(c)
	return c.JSON(fiber.Map{"message": "sesión cerrada"})
}

// ForgotPassword godoc
// @Summary      Solicitar recuperación de contraseña
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ForgotPasswordRequest  true  "email"
// @Success      200   {object}  map[string]string
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/v1/password/forgot [post]
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var in dto.ForgotPasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email es requerido"})
	}
	if err := h.uc.RequestReset(c.Context(), in.Email); err != nil {
		return respondError(c, h.env, err)
	}
	return c.JSON(fiber.Map{"message": "correo de recuperación enviado a " + auth.NormalizeEmail(in.Email)})
}

// ResetPassword godoc
// @Summary      Restablecer contraseña con el token del correo
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        token  path  string  true  "secreto del enlace de recuperación"
// @Param        body   body  dto.ResetPasswordRequest  true  "password, confirm_password"
// @Success      200    {object}  dto.SessionResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Failure      404    {object}  dto.ErrorResponse
// @Router       /api/v1/password/reset/{token} [put]
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	rawSecret := c.Params("token")
	var in dto.ResetPasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if len(in.Password) < 8 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "password debe tener al menos 8 caracteres"})
	}
	out, err := h.uc.ResetPassword(c.Context(), rawSecret, in)
	if err != nil {
		return respondError(c, h.env, err)
	}
	// Auto-login tras el reset.
	setSessionCookie(c, out.Token, h.codec.TTL())
	return c.JSON(dto.SessionResponse{Token: out.Token, User: out.User})
}

// Me godoc
// @Summary      Perfil del usuario autenticado
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.UserResponse
// @Router       /api/v1/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	out, err := h.uc.Me(c.Context(), CurrentUser(c).ID)
	if err != nil {
		return respondError(c, h.env, err)
	}
	return c.JSON(out)
}

// UpdatePassword godoc
// @Summary      Cambiar contraseña (autenticado)
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdatePasswordRequest  true  "old_password, new_password"
// @Success      200   {object}  map[string]string
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/v1/password/update [put]
func (h *AuthHandler) UpdatePassword(c *fiber.Ctx) error {
	var in dto.UpdatePasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if len(in.NewPassword) < 8 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "new_password debe tener al menos 8 caracteres"})
	}
	if err := h.uc.UpdatePassword(c.Context(), CurrentUser(c).ID, in); err != nil {
		return respondError(c, h.env, err)
	}
	return c.JSON(fiber.Map{"message": "contraseña actualizada"})
}

// UpdateProfile godoc
// @Summary      Actualizar perfil propio (nombre y email; nunca el rol)
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateProfileRequest  true  "name, email"
// @Success      200   {object}  dto.UserResponse
// @Router       /api/v1/profile/update [put]
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	var in dto.UpdateProfileRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Name == "" || in.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name y email son requeridos"})
	}
	out, err := h.uc.UpdateProfile(c.Context(), CurrentUser(c).ID, in)
	if err != nil {
		return respondError(c, h.env, err)
	}
	return c.JSON(out)
}
