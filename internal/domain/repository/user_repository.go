package repository

import (
	"context"
	"time"

	"github.com/jhoicas/tienda-api/internal/application/query"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// La implementación vive en infrastructure.
//
// Create no va precedido de una lectura de existencia: el índice único de
// email resuelve la carrera entre dos registros concurrentes y la
// implementación devuelve domain.ErrEmailAlreadyExists en el perdedor.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByResetTokenHash busca el usuario cuyo reset_token_hash coincide y
	// cuya expiración es posterior a now. No distingue "no existe" de "expiró":
	// ambos devuelven (nil, nil).
	FindByResetTokenHash(ctx context.Context, hash string, now time.Time) (*entity.User, error)

	// Update persiste email, nombre y rol. No toca el hash de contraseña ni
	// los campos de recuperación.
	Update(ctx context.Context, user *entity.User) error

	// UpdatePassword reemplaza el hash y limpia los campos de recuperación en
	// la misma sentencia.
	UpdatePassword(ctx context.Context, id, passwordHash string, now time.Time) error

	// SetResetToken guarda hash+expiración del token de recuperación,
	// reemplazando cualquier token anterior (a lo sumo uno activo por usuario).
	SetResetToken(ctx context.Context, id, tokenHash string, expiry time.Time) error

	// ClearResetToken limpia ambos campos de recuperación (rollback de entrega
	// fallida o consumo del token).
	ClearResetToken(ctx context.Context, id string) error

	// ListFiltered aplica la Spec y devuelve la página de usuarios más el total
	// que coincide con los filtros antes de paginar.
	ListFiltered(ctx context.Context, spec *query.Spec, pageSize int) ([]*entity.User, int, error)

	Delete(ctx context.Context, id string) error
}
