package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/EspacioDatos-api/internal/application/auth"
	"github.com/jhoicas/EspacioDatos-api/internal/application/dto"
	"github.com/jhoicas/EspacioDatos-api/internal/domain"
	"github.com/jhoicas/EspacioDatos-api/internal/domain/entity"
	"github.com/jhoicas/EspacioDatos-api/internal/infrastructure/memory"
	pkgjwt "github.com/jhoicas/EspacioDatos-api/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests"

func newAuth(t *testing.T) (*auth.AuthUseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	hash, err := auth.HashPassword("asesor123")
	require.NoError(t, err)
	require.NoError(t, store.Users().Create(context.Background(), &entity.User{
		ID: "u-1", Email: "asesor@espaciodatos.com", Name: "Asesor", PasswordHash: hash, Role: entity.RoleAsesor,
	}))
	uc := auth.NewAuthUseCase(store.Users(), auth.JWTConfig{Secret: testSecret, ExpMinutes: 60, Issuer: "test"})
	return uc, store
}

func TestLogin_EmailSinDistinguirMayusculas(t *testing.T) {
	uc, _ := newAuth(t)

	res, err := uc.Login(context.Background(), dto.LoginRequest{Email: "Asesor@EspacioDatos.com", Password: "asesor123"})
	require.NoError(t, err)
	require.NotNil(t, res.User.Role)
	assert.Equal(t, entity.RoleAsesor, *res.User.Role)

	id, err := pkgjwt.Parse(testSecret, res.Token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", id.UserID)
	assert.Equal(t, entity.RoleAsesor, id.Role)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	uc, _ := newAuth(t)
	ctx := context.Background()

	_, err := uc.Login(ctx, dto.LoginRequest{Email: "asesor@espaciodatos.com", Password: "mala"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@espaciodatos.com", Password: "asesor123"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestRegister_SinRolYEmailUnico(t *testing.T) {
	uc, store := newAuth(t)
	ctx := context.Background()

	res, err := uc.Register(ctx, dto.RegisterRequest{Email: " Nuevo@Empresa.es ", Password: "secreto1", Name: "Nuevo"})
	require.NoError(t, err)
	assert.Nil(t, res.User.Role, "el autorregistro no asigna rol")
	assert.Equal(t, "nuevo@empresa.es", res.User.Email)

	stored, err := store.Users().GetByEmail(ctx, "nuevo@empresa.es")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotEqual(t, "secreto1", stored.PasswordHash)

	_, err = uc.Register(ctx, dto.RegisterRequest{Email: "NUEVO@empresa.es", Password: "otro123", Name: "X"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestMe(t *testing.T) {
	uc, _ := newAuth(t)
	me, err := uc.Me(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Equal(t, "asesor@espaciodatos.com", me.Email)

	_, err = uc.Me(context.Background(), "borrado")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
