package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/tienda-api/internal/application/query"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// Columnas filtrables del listado admin de usuarios.
var userFilterColumns = map[string]filterColumn{
	"role":  {column: "role"},
	"email": {column: "email"},
}

const userColumns = `id, email, name, password_hash, role, reset_token_hash, reset_token_expiry, created_at, updated_at`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios. Pasar pool o tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste un nuevo usuario. El índice único de email resuelve el
// registro duplicado (incluida la carrera entre dos registros concurrentes).
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	sql := `
		INSERT INTO users (id, email, name, password_hash, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, sql,
		user.ID, user.Email, user.Name, user.PasswordHash, string(user.Role),
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// FindByID obtiene un usuario por ID. (nil, nil) si no existe.
func (r *UserRepo) FindByID(ctx context.Context, id string) (*entity.User, error) {
	return r.scanOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// FindByEmail obtiene un usuario por email (ya normalizado a minúsculas).
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.scanOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

// FindByResetTokenHash busca por hash de token de recuperación con expiración
// vigente. No existe y expirado son indistinguibles: ambos (nil, nil).
func (r *UserRepo) FindByResetTokenHash(ctx context.Context, hash string, now time.Time) (*entity.User, error) {
	sql := `SELECT ` + userColumns + ` FROM users WHERE reset_token_hash = $1 AND reset_token_expiry > $2`
	return r.scanOne(ctx, sql, hash, now)
}

// Update persiste email, nombre y rol. El hash de contraseña y los campos de
// recuperación tienen sentencias propias y no se tocan aquí.
func (r *UserRepo) Update(ctx context.Context, user *entity.User) error {
	sql := `UPDATE users SET email = $2, name = $3, role = $4, updated_at = $5 WHERE id = $1`
	_, err := r.q.Exec(ctx, sql, user.ID, user.Email, user.Name, string(user.Role), user.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// UpdatePassword reemplaza el hash y limpia los campos de recuperación en la
// misma sentencia (consumo del token, si lo había).
func (r *UserRepo) UpdatePassword(ctx context.Context, id, passwordHash string, now time.Time) error {
	sql := `
		UPDATE users
		SET password_hash = $2, reset_token_hash = NULL, reset_token_expiry = NULL, updated_at = $3
		WHERE id = $1`
	_, err := r.q.Exec(ctx, sql, id, passwordHash, now)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

// SetResetToken guarda hash+expiración, reemplazando cualquier token anterior.
func (r *UserRepo) SetResetToken(ctx context.Context, id, tokenHash string, expiry time.Time) error {
	sql := `UPDATE users SET reset_token_hash = $2, reset_token_expiry = $3 WHERE id = $1`
	_, err := r.q.Exec(ctx, sql, id, tokenHash, expiry)
	if err != nil {
		return fmt.Errorf("set reset token: %w", err)
	}
	return nil
}

// ClearResetToken limpia ambos campos de recuperación.
func (r *UserRepo) ClearResetToken(ctx context.Context, id string) error {
	sql := `UPDATE users SET reset_token_hash = NULL, reset_token_expiry = NULL WHERE id = $1`
	_, err := r.q.Exec(ctx, sql, id)
	if err != nil {
		return fmt.Errorf("clear reset token: %w", err)
	}
	return nil
}

// ListFiltered aplica la Spec y devuelve página + total antes de paginar.
func (r *UserRepo) ListFiltered(ctx context.Context, spec *query.Spec, pageSize int) ([]*entity.User, int, error) {
	where, args, err := buildFilterClause(spec, userFilterColumns, "name")
	if err != nil {
		return nil, 0, err
	}

	var total int
	countSQL := fmt.Sprintf(`SELECT COUNT(*) FROM users %s`, where)
	if err := r.q.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	pageSQL := fmt.Sprintf(`SELECT %s FROM users %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		userColumns, where, len(args)+1, len(args)+2)
	rows, err := r.q.Query(ctx, pageSQL, append(args, pageSize, spec.Offset(pageSize))...)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var list []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, u)
	}
	return list, total, rows.Err()
}

// Delete elimina un usuario por ID.
func (r *UserRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

func (r *UserRepo) scanOne(ctx context.Context, sql string, args ...any) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	var role string
	err := row.Scan(
		&u.ID, &u.Email, &u.Name, &u.PasswordHash, &role,
		&u.ResetTokenHash, &u.ResetTokenExpiry, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	u.Role = entity.Role(role)
	return &u, nil
}
