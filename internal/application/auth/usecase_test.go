package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/verone/stock-api/internal/application/auth"
	"github.com/verone/stock-api/internal/application/dto"
	"github.com/verone/stock-api/internal/domain"
	"github.com/verone/stock-api/internal/domain/entity"
	pkgjwt "github.com/verone/stock-api/pkg/jwt"
)

type fakeUserRepo struct {
	byEmail map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: make(map[string]*entity.User)}
}

func (r *fakeUserRepo) Create(u *entity.User) error {
	r.byEmail[u.Email] = u
	return nil
}
func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}
func (r *fakeUserRepo) FindByEmail(email string) (*entity.User, error) {
	return r.byEmail[email], nil
}

var testCfg = auth.JWTConfig{Secret: "test-secret", ExpMinutes: 60, Issuer: "stock-api-test"}

func TestRegister_HasheaYAsignaRolPorDefecto(t *testing.T) {
	repo := newFakeUserRepo()
	uc := auth.NewUseCase(repo, testCfg)

	resp, err := uc.Register(dto.RegisterRequest{Email: "marie@verone.fr", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleStock, resp.Role)
	assert.Equal(t, "active", resp.Status)

	stored := repo.byEmail["marie@verone.fr"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "secret123", stored.PasswordHash, "el password nunca se guarda en claro")
}

func TestRegister_EmailDuplicado(t *testing.T) {
	repo := newFakeUserRepo()
	uc := auth.NewUseCase(repo, testCfg)

	_, err := uc.Register(dto.RegisterRequest{Email: "marie@verone.fr", Password: "secret123"})
	require.NoError(t, err)
	_, err = uc.Register(dto.RegisterRequest{Email: "marie@verone.fr", Password: "otro"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegister_EntradaInvalida(t *testing.T) {
	uc := auth.NewUseCase(newFakeUserRepo(), testCfg)
	_, err := uc.Register(dto.RegisterRequest{Email: "", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin_GeneraTokenConRol(t *testing.T) {
	repo := newFakeUserRepo()
	uc := auth.NewUseCase(repo, testCfg)

	_, err := uc.Register(dto.RegisterRequest{Email: "marie@verone.fr", Password: "secret123", Role: entity.RoleAdmin})
	require.NoError(t, err)

	resp, err := uc.Login(dto.LoginRequest{Email: "marie@verone.fr", Password: "secret123"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)

	userID, role, err := pkgjwt.Parse(testCfg.Secret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, userID)
	assert.Equal(t, entity.RoleAdmin, role)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	repo := newFakeUserRepo()
	uc := auth.NewUseCase(repo, testCfg)

	_, err := uc.Register(dto.RegisterRequest{Email: "marie@verone.fr", Password: "secret123"})
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Email: "marie@verone.fr", Password: "equivocado"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(dto.LoginRequest{Email: "nadie@verone.fr", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestLogin_UsuarioInactivo(t *testing.T) {
	repo := newFakeUserRepo()
	uc := auth.NewUseCase(repo, testCfg)

	_, err := uc.Register(dto.RegisterRequest{Email: "marie@verone.fr", Password: "secret123"})
	require.NoError(t, err)
	repo.byEmail["marie@verone.fr"].Status = "disabled"

	_, err = uc.Login(dto.LoginRequest{Email: "marie@verone.fr", Password: "secret123"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
