package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Rowther/multitenantcrm/internal/application/auth"
	"github.com/Rowther/multitenantcrm/internal/application/dto"
	"github.com/Rowther/multitenantcrm/internal/domain"
	"github.com/Rowther/multitenantcrm/internal/domain/entity"
	"github.com/Rowther/multitenantcrm/pkg/config"
	pkgjwt "github.com/Rowther/multitenantcrm/pkg/jwt"
)

type fakeUserRepo struct {
	byEmail    map[string]*entity.User
	lastLogins []string
}

func (r *fakeUserRepo) Create(u *entity.User) error             { return nil }
func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) { return nil, nil }
func (r *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	return r.byEmail[email], nil
}
func (r *fakeUserRepo) UpdateLastLogin(id string) error {
	r.lastLogins = append(r.lastLogins, id)
	return nil
}
func (r *fakeUserRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.User, error) {
	return nil, nil
}

var testJWT = config.JWTConfig{Secret: "secret-de-test", Expiration: 60, Issuer: "test"}

func newLoginHarness(t *testing.T) (*auth.UseCase, *fakeUserRepo) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("correcta123"), bcrypt.MinCost)
	require.NoError(t, err)
	repo := &fakeUserRepo{byEmail: map[string]*entity.User{
		"ana@acme.com": {
			ID: "u-1", CompanyID: "co-1", Role: entity.RoleAdmin,
			Email: "ana@acme.com", PasswordHash: string(hash), IsActive: true,
		},
		"baja@acme.com": {
			ID: "u-2", CompanyID: "co-1", Role: entity.RoleEmployee,
			Email: "baja@acme.com", PasswordHash: string(hash), IsActive: false,
		},
	}}
	return auth.NewUseCase(repo, testJWT), repo
}

func TestLogin_CredencialesValidasEmiteToken(t *testing.T) {
	uc, repo := newLoginHarness(t)

	out, err := uc.Login(context.Background(), dto.LoginRequest{
		Email: "ana@acme.com", Password: "correcta123",
	})
	require.NoError(t, err)
	require.NotEmpty(t, out.Token)
	assert.Equal(t, "u-1", out.User.ID)

	// El token lleva los claims del tenant y del rol.
	userID, companyID, role, err := pkgjwt.Parse(testJWT.Secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", userID)
	assert.Equal(t, "co-1", companyID)
	assert.Equal(t, entity.RoleAdmin, role)

	assert.Equal(t, []string{"u-1"}, repo.lastLogins,
		"el login exitoso registra last_login")
}

func TestLogin_MismaRespuestaParaEmailYPasswordIncorrectos(t *testing.T) {
	uc, repo := newLoginHarness(t)

	// Email inexistente, contraseña incorrecta y cuenta inactiva responden
	// idéntico para no filtrar cuáles emails existen.
	_, err := uc.Login(context.Background(), dto.LoginRequest{
		Email: "nadie@acme.com", Password: "loquesea",
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(context.Background(), dto.LoginRequest{
		Email: "ana@acme.com", Password: "incorrecta",
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(context.Background(), dto.LoginRequest{
		Email: "baja@acme.com", Password: "correcta123",
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	assert.Empty(t, repo.lastLogins, "los intentos fallidos no tocan last_login")
}

func TestLogin_CamposVaciosSonValidacion(t *testing.T) {
	uc, _ := newLoginHarness(t)

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "ana@acme.com", Password: ""})
	assert.ErrorIs(t, err, domain.ErrValidation)
}
