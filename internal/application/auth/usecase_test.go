package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-management-api/internal/application/auth"
	"github.com/jhoicas/stock-management-api/internal/application/dto"
	"github.com/jhoicas/stock-management-api/internal/domain"
	"github.com/jhoicas/stock-management-api/internal/domain/entity"
	"github.com/jhoicas/stock-management-api/internal/domain/repository"
)

// memUserRepo repositorio de usuarios en memoria.
type memUserRepo struct {
	users    map[string]*entity.User
	emailErr error
}

var _ repository.UserRepository = (*memUserRepo)(nil)

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*entity.User)}
}

func (r *memUserRepo) Create(_ context.Context, user *entity.User) error {
	for _, u := range r.users {
		if u.Email == user.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	if r.emailErr != nil {
		return nil, r.emailErr
	}
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func newTestAuth() (*auth.AuthUseCase, *memUserRepo) {
	repo := newMemUserRepo()
	uc := auth.NewAuthUseCase(repo, auth.JWTConfig{
		Secret:     "secreto-de-test",
		ExpMinutes: 60,
		Issuer:     "stock-management-api",
	})
	return uc, repo
}

func TestRegisterUser_OK(t *testing.T) {
	uc, repo := newTestAuth()

	out, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{
		Email:    "ana@empresa.com",
		Password: "clave-larga-1",
		Name:     "Ana",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out.ID)
	assert.Equal(t, "ana@empresa.com", out.Email)
	assert.Equal(t, entity.RoleStaff, out.Role, "sin rol explícito se asigna staff")
	assert.Equal(t, "active", out.Status)

	stored, err := repo.GetByID(context.Background(), out.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotEqual(t, "clave-larga-1", stored.PasswordHash, "la password se guarda hasheada")
}

func TestRegisterUser_EmailDuplicado(t *testing.T) {
	uc, _ := newTestAuth()

	_, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{
		Email: "ana@empresa.com", Password: "clave-larga-1",
	})
	require.NoError(t, err)

	_, err = uc.RegisterUser(context.Background(), dto.RegisterRequest{
		Email: "ana@empresa.com", Password: "otra-clave-22",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegisterUser_ErrorAlConsultarEmail(t *testing.T) {
	uc, repo := newTestAuth()
	repo.emailErr = errors.New("bd caída")

	_, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{
		Email: "ana@empresa.com", Password: "clave-larga-1",
	})
	require.ErrorContains(t, err, "bd caída",
		"el fallo de la consulta se propaga, no se trata como email libre")
	assert.Empty(t, repo.users, "no debe crearse el usuario")
}

func TestLogin_OK(t *testing.T) {
	uc, _ := newTestAuth()

	_, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{
		Email: "ana@empresa.com", Password: "clave-larga-1", Role: entity.RoleAdmin,
	})
	require.NoError(t, err)

	out, err := uc.Login(context.Background(), dto.LoginRequest{
		Email: "ana@empresa.com", Password: "clave-larga-1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, entity.RoleAdmin, out.User.Role)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	uc, _ := newTestAuth()

	_, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{
		Email: "ana@empresa.com", Password: "clave-larga-1",
	})
	require.NoError(t, err)

	_, err = uc.Login(context.Background(), dto.LoginRequest{
		Email: "nadie@empresa.com", Password: "clave-larga-1",
	})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = uc.Login(context.Background(), dto.LoginRequest{
		Email: "ana@empresa.com", Password: "incorrecta",
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
