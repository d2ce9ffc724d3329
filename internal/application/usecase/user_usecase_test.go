package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/query"
	"github.com/jhoicas/tienda-api/internal/application/usecase"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

// fakeAdminUserRepo fake mínimo para la administración de usuarios.
// Solo se ejercitan FindByID, Update, Delete y ListFiltered.
type fakeAdminUserRepo struct {
	byID  map[string]*entity.User
	total int
}

func newFakeAdminUserRepo() *fakeAdminUserRepo {
	return &fakeAdminUserRepo{byID: map[string]*entity.User{
		"u-1": {ID: "u-1", Email: "cliente@ejemplo.com", Name: "Cliente", Role: entity.RoleCustomer},
	}}
}

func (r *fakeAdminUserRepo) FindByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeAdminUserRepo) Update(_ context.Context, user *entity.User) error {
	cp := *user
	r.byID[user.ID] = &cp
	return nil
}

func (r *fakeAdminUserRepo) Delete(_ context.Context, id string) error {
	delete(r.byID, id)
	return nil
}

func (r *fakeAdminUserRepo) ListFiltered(_ context.Context, _ *query.Spec, _ int) ([]*entity.User, int, error) {
	var out []*entity.User
	for _, u := range r.byID {
		cp := *u
		out = append(out, &cp)
	}
	return out, r.total, nil
}

func (r *fakeAdminUserRepo) Create(context.Context, *entity.User) error        { return nil }
func (r *fakeAdminUserRepo) ClearResetToken(context.Context, string) error     { return nil }
func (r *fakeAdminUserRepo) FindByEmail(context.Context, string) (*entity.User, error) {
	return nil, nil
}
func (r *fakeAdminUserRepo) FindByResetTokenHash(context.Context, string, time.Time) (*entity.User, error) {
	return nil, nil
}
func (r *fakeAdminUserRepo) UpdatePassword(context.Context, string, string, time.Time) error {
	return nil
}
func (r *fakeAdminUserRepo) SetResetToken(context.Context, string, string, time.Time) error {
	return nil
}

func TestAdminUpdate_CambiaElRolDentroDelConjuntoCerrado(t *testing.T) {
	repo := newFakeAdminUserRepo()
	uc := usecase.NewUserUseCase(repo, 20)

	out, err := uc.Update(context.Background(), "u-1", dto.AdminUpdateUserRequest{Role: "admin"})
	require.NoError(t, err)
	assert.Equal(t, "admin", out.Role)
	assert.Equal(t, entity.RoleAdmin, repo.byID["u-1"].Role)
}

func TestAdminUpdate_RolDesconocido_RetornaErrValidation(t *testing.T) {
	repo := newFakeAdminUserRepo()
	uc := usecase.NewUserUseCase(repo, 20)

	_, err := uc.Update(context.Background(), "u-1", dto.AdminUpdateUserRequest{Role: "superuser"})
	assert.ErrorIs(t, err, domain.ErrValidation,
		"un rol fuera del conjunto cerrado se rechaza antes de tocar la DB")
	assert.Equal(t, entity.RoleCustomer, repo.byID["u-1"].Role, "el usuario no debe cambiar")
}

func TestAdminUpdate_CamposVaciosNoSeTocan(t *testing.T) {
	repo := newFakeAdminUserRepo()
	uc := usecase.NewUserUseCase(repo, 20)

	out, err := uc.Update(context.Background(), "u-1", dto.AdminUpdateUserRequest{Name: "Renombrado"})
	require.NoError(t, err)
	assert.Equal(t, "Renombrado", out.Name)
	assert.Equal(t, "cliente@ejemplo.com", out.Email)
	assert.Equal(t, "customer", out.Role)
}

func TestAdminUpdate_UsuarioInexistente_RetornaUserNotFound(t *testing.T) {
	uc := usecase.NewUserUseCase(newFakeAdminUserRepo(), 20)

	_, err := uc.Update(context.Background(), "no-existe", dto.AdminUpdateUserRequest{Name: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestAdminList_TotalAntesDePaginar(t *testing.T) {
	repo := newFakeAdminUserRepo()
	repo.total = 57 // el COUNT corre sin LIMIT/OFFSET
	uc := usecase.NewUserUseCase(repo, 20)

	out, err := uc.List(context.Background(), map[string]string{"page": "3", "role": "customer"})
	require.NoError(t, err)
	assert.Equal(t, 3, out.Page)
	assert.Equal(t, 20, out.PageSize)
	assert.Equal(t, 57, out.TotalMatching,
		"el total refleja los filtros, no la página devuelta")
}

func TestAdminDelete_UsuarioInexistente_RetornaUserNotFound(t *testing.T) {
	uc := usecase.NewUserUseCase(newFakeAdminUserRepo(), 20)
	assert.ErrorIs(t, uc.Delete(context.Background(), "no-existe"), domain.ErrUserNotFound)
}
