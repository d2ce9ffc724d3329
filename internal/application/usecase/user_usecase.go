package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/query"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// userFilterOptions campos filtrables del listado de usuarios (admin).
var userFilterOptions = query.Options{
	Filterable: map[string]bool{
		"role":  true,
		"email": true,
	},
}

// UserUseCase gestión de usuarios por un admin: la única vía para cambiar roles.
type UserUseCase struct {
	users    repository.UserRepository
	pageSize int
}

// NewUserUseCase construye el caso de uso de administración de usuarios.
func NewUserUseCase(users repository.UserRepository, pageSize int) *UserUseCase {
	return &UserUseCase{users: users, pageSize: pageSize}
}

// List devuelve la página de usuarios según los query params de la petición.
func (uc *UserUseCase) List(ctx context.Context, params map[string]string) (*dto.UserListResponse, error) {
	spec, err := query.Parse(params, userFilterOptions)
	if err != nil {
		return nil, err
	}
	users, total, err := uc.users.ListFiltered(ctx, spec, uc.pageSize)
	if err != nil {
		return nil, err
	}
	out := &dto.UserListResponse{
		ListMeta: dto.ListMeta{Page: spec.Page, PageSize: uc.pageSize, TotalMatching: total},
		Items:    make([]dto.UserResponse, 0, len(users)),
	}
	for _, u := range users {
		out.Items = append(out.Items, *toUserResponse(u))
	}
	return out, nil
}

// GetByID devuelve un usuario o ErrUserNotFound.
func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := uc.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return toUserResponse(user), nil
}

// Update modifica nombre, email o rol. Un rol fuera del conjunto cerrado se
// rechaza antes de tocar la DB.
func (uc *UserUseCase) Update(ctx context.Context, id string, in dto.AdminUpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if in.Name != "" {
		user.Name = in.Name
	}
	if in.Email != "" {
		user.Email = normalizeEmail(in.Email)
	}
	if in.Role != "" {
		role := entity.Role(in.Role)
		if !role.Valid() {
			return nil, fmt.Errorf("%w: rol '%s' desconocido", domain.ErrValidation, in.Role)
		}
		user.Role = role
	}
	user.UpdatedAt = time.Now()
	if err := uc.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Delete elimina un usuario. Sus tokens de sesión en circulación quedan
// inservibles: el gate de autenticación recarga el principal en cada petición.
func (uc *UserUseCase) Delete(ctx context.Context, id string) error {
	user, err := uc.users.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	return uc.users.Delete(ctx, id)
}
