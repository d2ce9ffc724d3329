package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/ports"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
	"github.com/jhoicas/tienda-api/pkg/password"
	"github.com/jhoicas/tienda-api/pkg/token"
)

// Config parámetros del ciclo de recuperación.
type Config struct {
	ResetTokenTTL time.Duration
	FrontendURL   string
}

// UseCase casos de uso de sesión: registro, login, cambio de contraseña,
// perfil y recuperación. No toca cookies: ese efecto vive en la capa HTTP.
type UseCase struct {
	users  repository.UserRepository
	mailer ports.Mailer
	codec  *token.Codec
	cfg    Config
	now    func() time.Time
}

// NewUseCase construye el caso de uso de auth.
func NewUseCase(users repository.UserRepository, mailer ports.Mailer, codec *token.Codec, cfg Config) *UseCase {
	return &UseCase{users: users, mailer: mailer, codec: codec, cfg: cfg, now: time.Now}
}

// SessionResult token de sesión emitido más el usuario resuelto.
type SessionResult struct {
	Token string
	User  dto.UserResponse
}

// Register crea el usuario con rol customer y emite el token de sesión.
// No se pre-consulta la existencia del email: el índice único de la DB decide
// al perdedor de un registro concurrente (domain.ErrEmailAlreadyExists).
func (uc *UseCase) Register(ctx context.Context, in dto.RegisterRequest) (*SessionResult, error) {
	hash, err := password.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        NormalizeEmail(in.Email),
		Name:         in.Name,
		PasswordHash: hash,
		Role:         entity.RoleCustomer,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return uc.issueSession(user)
}

// Login verifica email/contraseña y emite el token de sesión.
// Email desconocido y contraseña incorrecta devuelven el mismo error.
func (uc *UseCase) Login(ctx context.Context, in dto.LoginRequest) (*SessionResult, error) {
	user, err := uc.users.FindByEmail(ctx, NormalizeEmail(in.Email))
	if err != nil {
		return nil, err
	}
	if user == nil || !password.Verify(in.Password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}
	return uc.issueSession(user)
}

// Me devuelve el perfil del usuario autenticado.
func (uc *UseCase) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := uc.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return toUserResponse(user), nil
}

// UpdatePassword reemplaza la contraseña previa verificación de la actual.
// El token de sesión vigente NO se invalida: expira de forma natural
// (limitación aceptada, sin lista de revocación).
func (uc *UseCase) UpdatePassword(ctx context.Context, userID string, in dto.UpdatePasswordRequest) error {
	user, err := uc.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if !password.Verify(in.OldPassword, user.PasswordHash) {
		return domain.ErrInvalidCredentials
	}
	hash, err := password.Hash(in.NewPassword)
	if err != nil {
		return err
	}
	return uc.users.UpdatePassword(ctx, user.ID, hash, uc.now())
}

// UpdateProfile actualiza nombre y email propios. El rol no es modificable por
// esta vía; solo un admin puede cambiarlo.
func (uc *UseCase) UpdateProfile(ctx context.Context, userID string, in dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := uc.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	user.Name = in.Name
	user.Email = NormalizeEmail(in.Email)
	user.UpdatedAt = uc.now()
	if err := uc.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

func (uc *UseCase) issueSession(user *entity.User) (*SessionResult, error) {
	tok, err := uc.codec.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	return &SessionResult{Token: tok, User: *toUserResponse(user)}, nil
}

// NormalizeEmail baja el email a minúsculas para comparación case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
