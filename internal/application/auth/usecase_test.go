package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/pos-movil/internal/application/auth"
	"github.com/tu-usuario/pos-movil/internal/application/dto"
	"github.com/tu-usuario/pos-movil/internal/domain"
	"github.com/tu-usuario/pos-movil/internal/domain/entity"
	"github.com/tu-usuario/pos-movil/internal/domain/repository"
	pkgjwt "github.com/tu-usuario/pos-movil/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fake UserRepository en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeUserRepo struct {
	byEmail map[string]*entity.User
}

var _ repository.UserRepository = (*fakeUserRepo)(nil)

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: make(map[string]*entity.User)}
}

func (r *fakeUserRepo) Create(user *entity.User) error {
	if _, ok := r.byEmail[user.Email]; ok {
		return domain.ErrEmailAlreadyExists
	}
	cp := *user
	r.byEmail[user.Email] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) Update(user *entity.User) error                     { return nil }
func (r *fakeUserRepo) List(limit, offset int) ([]*entity.User, error)     { return nil, nil }

func newAuthUC(repo repository.UserRepository) *auth.AuthUseCase {
	return auth.NewAuthUseCase(repo, auth.JWTConfig{
		Secret:     "test-secret-key-for-unit-tests",
		ExpMinutes: 60,
		Issuer:     "pos-movil-test",
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// Registro
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterUser_HasheaPasswordYAsignaRolPorDefecto(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newAuthUC(repo)

	out, err := uc.RegisterUser(dto.RegisterRequest{
		Email:    "caja@pos.test",
		Password: "secreta123",
		Name:     "Caja Uno",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.RoleCajero, out.Role, "sin rol explícito debe quedar cajero")
	assert.Equal(t, entity.UserStatusActive, out.Status)

	stored := repo.byEmail["caja@pos.test"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "secreta123", stored.PasswordHash, "nunca se guarda la password en claro")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secreta123")))
}

func TestRegisterUser_EmailDuplicado_Conflict(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newAuthUC(repo)

	_, err := uc.RegisterUser(dto.RegisterRequest{Email: "caja@pos.test", Password: "secreta123"})
	require.NoError(t, err)

	_, err = uc.RegisterUser(dto.RegisterRequest{Email: "caja@pos.test", Password: "otraclave99"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegisterUser_Validaciones(t *testing.T) {
	uc := newAuthUC(newFakeUserRepo())

	_, err := uc.RegisterUser(dto.RegisterRequest{Email: "", Password: "corta", Role: "gerente"})
	verr, ok := domain.AsValidationError(err)
	require.True(t, ok)
	assert.Contains(t, verr.Fields, "email")
	assert.Contains(t, verr.Fields, "password")
	assert.Contains(t, verr.Fields, "role")
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_GeneraTokenConClaims(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newAuthUC(repo)

	_, err := uc.RegisterUser(dto.RegisterRequest{
		Email: "admin@pos.test", Password: "secreta123", Role: entity.RoleAdmin,
	})
	require.NoError(t, err)

	out, err := uc.Login(dto.LoginRequest{Email: "admin@pos.test", Password: "secreta123"})
	require.NoError(t, err)
	require.NotEmpty(t, out.Token)

	claims, err := pkgjwt.Parse("test-secret-key-for-unit-tests", out.Token)
	require.NoError(t, err)
	assert.Equal(t, out.User.ID, claims.UserID)
	assert.Equal(t, "admin@pos.test", claims.Email)
	assert.Equal(t, entity.RoleAdmin, claims.Role)
}

func TestLogin_PasswordIncorrecta_Unauthorized(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newAuthUC(repo)
	_, err := uc.RegisterUser(dto.RegisterRequest{Email: "caja@pos.test", Password: "secreta123"})
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Email: "caja@pos.test", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInexistente(t *testing.T) {
	uc := newAuthUC(newFakeUserRepo())

	_, err := uc.Login(dto.LoginRequest{Email: "nadie@pos.test", Password: "loquesea1"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestLogin_UsuarioInactivo_Forbidden(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newAuthUC(repo)
	_, err := uc.RegisterUser(dto.RegisterRequest{Email: "ex@pos.test", Password: "secreta123"})
	require.NoError(t, err)
	repo.byEmail["ex@pos.test"].Status = entity.UserStatusInactive

	_, err = uc.Login(dto.LoginRequest{Email: "ex@pos.test", Password: "secreta123"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
